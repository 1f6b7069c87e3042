package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"kedaistock-backend/domain"
	"kedaistock-backend/entities"
	"kedaistock-backend/internal/api/presenters"
	"kedaistock-backend/pkg/branch"
	"kedaistock-backend/pkg/realtime"
	"kedaistock-backend/pkg/request"
	"kedaistock-backend/pkg/stock"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newQuickRequestApp(t *testing.T) *fiber.App {
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

	broker := realtime.NewMemoryBroker()
	branchRepository := branch.NewBranchRepository(db)
	stockService := stock.NewStockService(stock.NewStockRepository(db), branchRepository)
	requestService := request.NewRequestService(request.NewRequestRepository(db), branchRepository, stockService, broker)
	handler := NewRequestHandler(requestService, broker, validator.New())

	app := fiber.New()
	app.Post("/api/v1/quick-requests", func(c *fiber.Ctx) error {
		c.Locals("user_id", uuid.NewString())
		c.Locals("role", domain.RoleOwner)
		c.Locals("branch_id", "")
		return c.Next()
	}, handler.SubmitQuickRequest)
	return app
}

func postQuickRequest(t *testing.T, app *fiber.App, payload map[string]any) (*http.Response, presenters.Response) {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/quick-requests", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app test: %v", err)
	}

	var parsed presenters.Response
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return res, parsed
}

func TestSubmitQuickRequestRejectsMalformedPayload(t *testing.T) {
	app := newQuickRequestApp(t)

	tests := []struct {
		name    string
		payload map[string]any
	}{
		{
			name: "branch id is not a uuid",
			payload: map[string]any{
				"branch_id": "not-a-uuid",
				"staff_id":  uuid.NewString(),
				"action":    domain.QuickActionRequest,
				"items":     []map[string]any{{"ingredient_id": uuid.NewString(), "quantity": 1}},
			},
		},
		{
			name: "unknown action",
			payload: map[string]any{
				"branch_id": uuid.NewString(),
				"staff_id":  uuid.NewString(),
				"action":    "archive",
				"items":     []map[string]any{{"ingredient_id": uuid.NewString(), "quantity": 1}},
			},
		},
		{
			name: "missing staff id",
			payload: map[string]any{
				"branch_id": uuid.NewString(),
				"action":    domain.QuickActionRequest,
				"items":     []map[string]any{{"ingredient_id": uuid.NewString(), "quantity": 1}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, parsed := postQuickRequest(t, app, tt.payload)
			if res.StatusCode != fiber.StatusBadRequest {
				t.Fatalf("expected 400, got %d", res.StatusCode)
			}
			if parsed.Status {
				t.Fatal("expected failed response status")
			}
			if parsed.Message != domain.MessageFailedQuickRequest {
				t.Fatalf("unexpected message %q", parsed.Message)
			}
		})
	}
}

func TestSubmitQuickRequestWellFormedPayloadReachesService(t *testing.T) {
	app := newQuickRequestApp(t)

	// valid shape but nothing seeded: the service, not the validator, must
	// reject it
	res, parsed := postQuickRequest(t, app, map[string]any{
		"branch_id": uuid.NewString(),
		"staff_id":  uuid.NewString(),
		"action":    domain.QuickActionRequest,
		"items":     []map[string]any{{"ingredient_id": uuid.NewString(), "quantity": 1}},
	})
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.StatusCode)
	}
	if parsed.Error != domain.ErrStaffNotFound.Error() {
		t.Fatalf("expected staff lookup error from the service, got %q", parsed.Error)
	}
}
