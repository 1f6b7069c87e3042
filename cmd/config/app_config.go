package config

import (
	"kedaistock-backend/internal/api/handlers"
	"kedaistock-backend/internal/api/routes"
	"kedaistock-backend/internal/middleware"
	"kedaistock-backend/internal/utils"
	"kedaistock-backend/internal/utils/storage"
	"kedaistock-backend/pkg/branch"
	"kedaistock-backend/pkg/ingredient"
	"kedaistock-backend/pkg/jwt"
	"kedaistock-backend/pkg/realtime"
	"kedaistock-backend/pkg/request"
	"kedaistock-backend/pkg/stock"
	"kedaistock-backend/pkg/user"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Jakarta",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	broker := newBroker()

	// Repository
	userRepository := user.NewUserRepository(db)
	branchRepository := branch.NewBranchRepository(db)
	ingredientRepository := ingredient.NewIngredientRepository(db)
	stockRepository := stock.NewStockRepository(db)
	requestRepository := request.NewRequestRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	branchService := branch.NewBranchService(branchRepository)
	ingredientService := ingredient.NewIngredientService(ingredientRepository, s3)
	stockService := stock.NewStockService(stockRepository, branchRepository)
	requestService := request.NewRequestService(requestRepository, branchRepository, stockService, broker)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	branchHandler := handlers.NewBranchHandler(branchService, validator)
	ingredientHandler := handlers.NewIngredientHandler(ingredientService, validator)
	stockHandler := handlers.NewStockHandler(stockService, validator)
	requestHandler := handlers.NewRequestHandler(requestService, broker, validator)

	// routes
	routesConfig := routes.Config{
		App:               app,
		UserHandler:       userHandler,
		BranchHandler:     branchHandler,
		IngredientHandler: ingredientHandler,
		StockHandler:      stockHandler,
		RequestHandler:    requestHandler,
		Middleware:        middlewares,
		JWTService:        jwtService,
	}
	routesConfig.Setup()
	return app, nil
}

// newBroker wires the realtime change feed. A configured Redis address
// enables cross-instance fanout; otherwise events stay in process.
func newBroker() realtime.Broker {
	addr := utils.GetConfig("REDIS_ADDR")
	if addr == "" {
		return realtime.NewMemoryBroker()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: utils.GetConfig("REDIS_PASSWORD"),
	})
	return realtime.NewRedisBroker(client)
}
