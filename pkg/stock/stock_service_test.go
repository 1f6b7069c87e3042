package stock

import (
	"context"
	"errors"
	"fmt"
	"kedaistock-backend/domain"
	"kedaistock-backend/entities"
	"kedaistock-backend/pkg/branch"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&entities.Branch{},
		&entities.User{},
		&entities.StaffMember{},
		&entities.Category{},
		&entities.Ingredient{},
		&entities.StockItem{},
		&entities.StockCheck{},
		&entities.StockCheckItem{},
		&entities.Request{},
		&entities.RequestItem{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

type fixture struct {
	branch *entities.Branch
	owner  *entities.User
	coffee *entities.Ingredient
	sugar  *entities.Ingredient
	stocks map[string]*entities.StockItem // ingredient id -> row
}

func seedStock(t *testing.T, db *gorm.DB) fixture {
	t.Helper()

	b := &entities.Branch{ID: uuid.New(), Name: "Central Kitchen"}
	if err := db.Create(b).Error; err != nil {
		t.Fatalf("seed branch: %v", err)
	}

	owner := &entities.User{ID: uuid.New(), Name: "Owner", Email: "owner@kedaistock.test", Role: domain.RoleOwner}
	if err := db.Create(owner).Error; err != nil {
		t.Fatalf("seed owner: %v", err)
	}

	category := &entities.Category{ID: uuid.New(), Name: "Beverage Base"}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}

	coffee := &entities.Ingredient{ID: uuid.New(), Name: "Coffee Beans", Unit: "kg", CategoryID: category.ID}
	sugar := &entities.Ingredient{ID: uuid.New(), Name: "Sugar", Unit: "kg", CategoryID: category.ID}
	if err := db.Create([]*entities.Ingredient{coffee, sugar}).Error; err != nil {
		t.Fatalf("seed ingredients: %v", err)
	}

	stocks := map[string]*entities.StockItem{
		coffee.ID.String(): {ID: uuid.New(), BranchID: b.ID, IngredientID: coffee.ID, OnHandQty: 5, ReorderPoint: 2},
		sugar.ID.String():  {ID: uuid.New(), BranchID: b.ID, IngredientID: sugar.ID, OnHandQty: 10, ReorderPoint: 3},
	}
	for _, item := range stocks {
		if err := db.Create(item).Error; err != nil {
			t.Fatalf("seed stock item: %v", err)
		}
	}

	return fixture{branch: b, owner: owner, coffee: coffee, sugar: sugar, stocks: stocks}
}

func newStockService(db *gorm.DB) StockService {
	return NewStockService(NewStockRepository(db), branch.NewBranchRepository(db))
}

func ownerScope(f fixture) branch.Scope {
	return branch.Scope{UserID: f.owner.ID.String(), Role: domain.RoleOwner}
}

func TestSaveStockCheckRecordsBeforeAfterAndDiff(t *testing.T) {
	db := newTestDB(t)
	f := seedStock(t, db)
	service := newStockService(db)

	res, err := service.SaveStockCheck(context.Background(), ownerScope(f), domain.SaveStockCheckRequest{
		BranchID: f.branch.ID.String(),
		Items: []domain.StockCheckEdit{
			{IngredientID: f.coffee.ID.String(), CountedQty: 8},
		},
	})
	if err != nil {
		t.Fatalf("save stock check: %v", err)
	}
	if res.ItemsChanged != 1 {
		t.Fatalf("expected 1 changed item, got %d", res.ItemsChanged)
	}
	if res.StockCheckID == "" {
		t.Fatal("expected a stock check id")
	}

	var item entities.StockCheckItem
	if err := db.Where("stock_check_id = ?", res.StockCheckID).First(&item).Error; err != nil {
		t.Fatalf("load check item: %v", err)
	}
	if item.OnHandBefore != 5 || item.OnHandAfter != 8 || item.QtyDiff != 3 {
		t.Fatalf("unexpected audit row: before=%v after=%v diff=%v", item.OnHandBefore, item.OnHandAfter, item.QtyDiff)
	}

	var stock entities.StockItem
	if err := db.Where("ingredient_id = ?", f.coffee.ID).First(&stock).Error; err != nil {
		t.Fatalf("load stock item: %v", err)
	}
	if stock.OnHandQty != 8 || stock.LastChange != 3 {
		t.Fatalf("stock item not updated: on_hand=%v last_change=%v", stock.OnHandQty, stock.LastChange)
	}
}

func TestSaveStockCheckWithNoEffectiveChangesWritesNothing(t *testing.T) {
	db := newTestDB(t)
	f := seedStock(t, db)
	service := newStockService(db)

	res, err := service.SaveStockCheck(context.Background(), ownerScope(f), domain.SaveStockCheckRequest{
		BranchID: f.branch.ID.String(),
		Items: []domain.StockCheckEdit{
			{IngredientID: f.coffee.ID.String(), CountedQty: 5},
			{IngredientID: f.sugar.ID.String(), CountedQty: 10},
		},
	})
	if err != nil {
		t.Fatalf("save stock check: %v", err)
	}
	if res.ItemsChanged != 0 {
		t.Fatalf("expected no changed items, got %d", res.ItemsChanged)
	}
	if res.StockCheckID != "" {
		t.Fatal("expected no stock check row for a no-op save")
	}

	var count int64
	if err := db.Model(&entities.StockCheck{}).Count(&count).Error; err != nil {
		t.Fatalf("count stock checks: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 stock check rows, got %d", count)
	}
}

func TestSaveStockCheckRejectsNegativeCounts(t *testing.T) {
	db := newTestDB(t)
	f := seedStock(t, db)
	service := newStockService(db)

	_, err := service.SaveStockCheck(context.Background(), ownerScope(f), domain.SaveStockCheckRequest{
		BranchID: f.branch.ID.String(),
		Items: []domain.StockCheckEdit{
			{IngredientID: f.coffee.ID.String(), CountedQty: -1},
		},
	})
	if !errors.Is(err, domain.ErrNegativeOnHand) {
		t.Fatalf("expected ErrNegativeOnHand, got %v", err)
	}
}

func TestSaveStockCheckRejectsUnknownIngredient(t *testing.T) {
	db := newTestDB(t)
	f := seedStock(t, db)
	service := newStockService(db)

	_, err := service.SaveStockCheck(context.Background(), ownerScope(f), domain.SaveStockCheckRequest{
		BranchID: f.branch.ID.String(),
		Items: []domain.StockCheckEdit{
			{IngredientID: uuid.NewString(), CountedQty: 4},
		},
	})
	if !errors.Is(err, domain.ErrStockItemNotFound) {
		t.Fatalf("expected ErrStockItemNotFound, got %v", err)
	}
}

func TestApplyQuickDeltasAdjustsRelativeToCurrent(t *testing.T) {
	db := newTestDB(t)
	f := seedStock(t, db)
	service := newStockService(db)

	res, err := service.ApplyQuickDeltas(context.Background(), ownerScope(f), f.branch.ID.String(), map[string]float64{
		f.coffee.ID.String(): 3,
		f.sugar.ID.String():  -2,
	})
	if err != nil {
		t.Fatalf("apply quick deltas: %v", err)
	}
	if res.ItemsChanged != 2 {
		t.Fatalf("expected 2 changed items, got %d", res.ItemsChanged)
	}

	var coffeeStock, sugarStock entities.StockItem
	if err := db.Where("ingredient_id = ?", f.coffee.ID).First(&coffeeStock).Error; err != nil {
		t.Fatalf("load coffee stock: %v", err)
	}
	if err := db.Where("ingredient_id = ?", f.sugar.ID).First(&sugarStock).Error; err != nil {
		t.Fatalf("load sugar stock: %v", err)
	}
	if coffeeStock.OnHandQty != 8 {
		t.Fatalf("expected coffee on hand 8, got %v", coffeeStock.OnHandQty)
	}
	if sugarStock.OnHandQty != 8 {
		t.Fatalf("expected sugar on hand 8, got %v", sugarStock.OnHandQty)
	}

	// the relative update is audited like any other stock check
	var auditCount int64
	if err := db.Model(&entities.StockCheckItem{}).Count(&auditCount).Error; err != nil {
		t.Fatalf("count audit rows: %v", err)
	}
	if auditCount != 2 {
		t.Fatalf("expected 2 audit rows, got %d", auditCount)
	}
}

func TestApplyQuickDeltasRejectsGoingNegative(t *testing.T) {
	db := newTestDB(t)
	f := seedStock(t, db)
	service := newStockService(db)

	_, err := service.ApplyQuickDeltas(context.Background(), ownerScope(f), f.branch.ID.String(), map[string]float64{
		f.coffee.ID.String(): -6,
	})
	if !errors.Is(err, domain.ErrNegativeOnHand) {
		t.Fatalf("expected ErrNegativeOnHand, got %v", err)
	}

	var stock entities.StockItem
	if err := db.Where("ingredient_id = ?", f.coffee.ID).First(&stock).Error; err != nil {
		t.Fatalf("load stock item: %v", err)
	}
	if stock.OnHandQty != 5 {
		t.Fatalf("expected on hand unchanged at 5, got %v", stock.OnHandQty)
	}
}

func TestSaveStockCheckRollsBackWhenAuditWriteFails(t *testing.T) {
	db := newTestDB(t)
	f := seedStock(t, db)
	service := newStockService(db)

	// force a failure mid-transaction, after the parent check row
	trigger := `CREATE TRIGGER block_check_items BEFORE INSERT ON stock_check_items
		BEGIN SELECT RAISE(ABORT, 'audit write blocked'); END;`
	if err := db.Exec(trigger).Error; err != nil {
		t.Fatalf("install trigger: %v", err)
	}

	_, err := service.SaveStockCheck(context.Background(), ownerScope(f), domain.SaveStockCheckRequest{
		BranchID: f.branch.ID.String(),
		Items:    []domain.StockCheckEdit{{IngredientID: f.coffee.ID.String(), CountedQty: 9}},
	})

	var partial *domain.PartialWriteError
	if !errors.As(err, &partial) {
		t.Fatalf("expected PartialWriteError, got %v", err)
	}

	var checks, items int64
	if err := db.Model(&entities.StockCheck{}).Count(&checks).Error; err != nil {
		t.Fatalf("count checks: %v", err)
	}
	if err := db.Model(&entities.StockCheckItem{}).Count(&items).Error; err != nil {
		t.Fatalf("count check items: %v", err)
	}
	if checks != 0 || items != 0 {
		t.Fatalf("expected rollback to leave zero rows, got %d checks and %d items", checks, items)
	}

	var stock entities.StockItem
	if err := db.Where("ingredient_id = ?", f.coffee.ID).First(&stock).Error; err != nil {
		t.Fatalf("load stock item: %v", err)
	}
	if stock.OnHandQty != 5 || stock.LastChange != 0 {
		t.Fatalf("expected on-hand untouched, got on_hand=%v last_change=%v", stock.OnHandQty, stock.LastChange)
	}
}

func TestGetActivityReturnsLatestChecksFirst(t *testing.T) {
	db := newTestDB(t)
	f := seedStock(t, db)
	service := newStockService(db)
	scope := ownerScope(f)

	for i, qty := range []float64{6, 7} {
		_, err := service.SaveStockCheck(context.Background(), scope, domain.SaveStockCheckRequest{
			BranchID: f.branch.ID.String(),
			Items:    []domain.StockCheckEdit{{IngredientID: f.coffee.ID.String(), CountedQty: qty}},
		})
		if err != nil {
			t.Fatalf("save check %d: %v", i, err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	activity, err := service.GetActivity(context.Background(), scope, f.branch.ID.String(), 10)
	if err != nil {
		t.Fatalf("get activity: %v", err)
	}
	if len(activity) != 2 {
		t.Fatalf("expected 2 activity rows, got %d", len(activity))
	}
	if activity[0].OnHandAfter != 7 {
		t.Fatalf("expected most recent check first, got after=%v", activity[0].OnHandAfter)
	}
	if activity[0].IngredientName != "Coffee Beans" {
		t.Fatalf("expected ingredient name on activity, got %q", activity[0].IngredientName)
	}
}

func TestGetStatsCountsLowStock(t *testing.T) {
	db := newTestDB(t)
	f := seedStock(t, db)
	service := newStockService(db)
	scope := ownerScope(f)

	// drop coffee to its reorder point
	_, err := service.SaveStockCheck(context.Background(), scope, domain.SaveStockCheckRequest{
		BranchID: f.branch.ID.String(),
		Items:    []domain.StockCheckEdit{{IngredientID: f.coffee.ID.String(), CountedQty: 2}},
	})
	if err != nil {
		t.Fatalf("save check: %v", err)
	}

	stats, err := service.GetStats(context.Background(), scope, f.branch.ID.String())
	if err != nil {
		t.Fatalf("get stats: %v", err)
	}
	if stats.TotalItems != 2 {
		t.Fatalf("expected 2 total items, got %d", stats.TotalItems)
	}
	if stats.LowStockItems != 1 {
		t.Fatalf("expected 1 low stock item, got %d", stats.LowStockItems)
	}
	if stats.PendingRequests != 0 {
		t.Fatalf("expected 0 pending requests, got %d", stats.PendingRequests)
	}
}

func TestStaffCannotTouchAnotherBranch(t *testing.T) {
	db := newTestDB(t)
	f := seedStock(t, db)
	service := newStockService(db)

	staffScope := branch.Scope{UserID: uuid.NewString(), Role: domain.RoleStaff, BranchID: uuid.NewString()}

	_, err := service.GetStockItems(context.Background(), staffScope, f.branch.ID.String())
	if !errors.Is(err, domain.ErrBranchNotVisible) {
		t.Fatalf("expected ErrBranchNotVisible, got %v", err)
	}
}
