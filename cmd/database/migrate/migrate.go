package migration

import (
	"fmt"
	"kedaistock-backend/entities"
	"log"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entities.Branch{}); err != nil {
		log.Fatalf("Error migrating branch database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.User{}); err != nil {
		log.Fatalf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.StaffMember{}); err != nil {
		log.Fatalf("Error migrating staff member database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Category{}); err != nil {
		log.Fatalf("Error migrating category database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Ingredient{}); err != nil {
		log.Fatalf("Error migrating ingredient database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.StockItem{}); err != nil {
		log.Fatalf("Error migrating stock item database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.StockCheck{}, &entities.StockCheckItem{}); err != nil {
		log.Fatalf("Error migrating stock check database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Request{}, &entities.RequestItem{}); err != nil {
		log.Fatalf("Error migrating request database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
