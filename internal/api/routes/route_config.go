package routes

import (
	"kedaistock-backend/internal/api/handlers"
	"kedaistock-backend/internal/middleware"
	"kedaistock-backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App               *fiber.App
	UserHandler       handlers.UserHandler
	BranchHandler     handlers.BranchHandler
	IngredientHandler handlers.IngredientHandler
	StockHandler      handlers.StockHandler
	RequestHandler    handlers.RequestHandler
	Middleware        middleware.Middleware
	JWTService        jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Branches()
	c.Ingredients()
	c.Stock()
	c.Requests()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	// user routes
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
	}
}

func (c *Config) Branches() {
	branches := c.App.Group("/api/v1/branches", c.Middleware.AuthMiddleware(c.JWTService))

	branches.Get("", c.BranchHandler.GetBranches)
	branches.Post("", c.Middleware.OwnerOnly(), c.BranchHandler.CreateBranch)
	branches.Put("/:id", c.Middleware.OwnerOnly(), c.BranchHandler.UpdateBranch)
	branches.Delete("/:id", c.Middleware.OwnerOnly(), c.BranchHandler.DeleteBranch)

	staff := c.App.Group("/api/v1/staff", c.Middleware.AuthMiddleware(c.JWTService))
	staff.Get("", c.BranchHandler.GetStaffMembers)
	staff.Post("", c.BranchHandler.CreateStaffMember)
	staff.Delete("/:id", c.BranchHandler.DeleteStaffMember)
}

func (c *Config) Ingredients() {
	categories := c.App.Group("/api/v1/categories", c.Middleware.AuthMiddleware(c.JWTService))
	categories.Get("", c.IngredientHandler.GetCategories)
	categories.Post("", c.Middleware.OwnerOnly(), c.IngredientHandler.CreateCategory)

	ingredients := c.App.Group("/api/v1/ingredients", c.Middleware.AuthMiddleware(c.JWTService))
	ingredients.Get("", c.IngredientHandler.GetIngredients)
	ingredients.Post("", c.Middleware.OwnerOnly(), c.IngredientHandler.CreateIngredient)
	ingredients.Put("/:id", c.Middleware.OwnerOnly(), c.IngredientHandler.UpdateIngredient)
	ingredients.Delete("/:id", c.Middleware.OwnerOnly(), c.IngredientHandler.DeleteIngredient)
	ingredients.Post("/:id/image", c.Middleware.OwnerOnly(), c.IngredientHandler.UploadIngredientImage)
}

func (c *Config) Stock() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)

	c.App.Get("/api/v1/stock-items", auth, c.StockHandler.GetStockItems)
	c.App.Post("/api/v1/stock-items", auth, c.StockHandler.RegisterStockItem)
	c.App.Post("/api/v1/stock-checks", auth, c.StockHandler.SaveStockCheck)
	c.App.Get("/api/v1/stock-activity", auth, c.StockHandler.GetActivity)
	c.App.Get("/api/v1/stock-stats", auth, c.StockHandler.GetStats)
}

func (c *Config) Requests() {
	requests := c.App.Group("/api/v1/requests", c.Middleware.AuthMiddleware(c.JWTService))

	requests.Get("", c.RequestHandler.GetRequests)
	requests.Post("", c.RequestHandler.CreateRequest)
	requests.Get("/events", c.RequestHandler.StreamEvents)
	requests.Delete("/:id", c.RequestHandler.DeleteRequest)
	requests.Patch("/:id/fulfill", c.RequestHandler.FulfillRequest)

	c.App.Post("/api/v1/quick-requests", c.Middleware.AuthMiddleware(c.JWTService), c.RequestHandler.SubmitQuickRequest)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
