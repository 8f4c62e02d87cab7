package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/shop-backend/config"
	"github.com/ikkim/shop-backend/internal/app/controller"
	"github.com/ikkim/shop-backend/internal/app/repository"
	"github.com/ikkim/shop-backend/internal/app/service"
	"github.com/ikkim/shop-backend/internal/db"
	apperrors "github.com/ikkim/shop-backend/internal/errors"
	"github.com/ikkim/shop-backend/internal/middleware"
	"github.com/ikkim/shop-backend/internal/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type TestServer struct {
	Router *gin.Engine
}

func setupIntegrationTest(t *testing.T) *TestServer {
	// Setup database
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	// Setup repositories
	customerRepo := repository.NewCustomerRepository(testDB)
	categoryRepo := repository.NewCategoryRepository(testDB)
	shopItemRepo := repository.NewShopItemRepository(testDB)
	orderItemRepo := repository.NewOrderItemRepository(testDB)
	orderRepo := repository.NewOrderRepository(testDB)

	// Setup services
	customerService := service.NewCustomerService(customerRepo, orderRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	shopItemService := service.NewShopItemService(testDB, shopItemRepo, categoryRepo)
	orderItemService := service.NewOrderItemService(orderItemRepo, shopItemRepo, orderRepo)
	orderService := service.NewOrderService(testDB, orderRepo, orderItemRepo, customerRepo, shopItemRepo)

	cfg := &config.Config{
		Server: config.ServerConfig{GinMode: gin.TestMode},
		CORS:   config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
	}

	r := router.NewRouter(
		controller.NewCustomerController(customerService),
		controller.NewCategoryController(categoryService),
		controller.NewShopItemController(shopItemService),
		controller.NewOrderItemController(orderItemService),
		controller.NewOrderController(orderService),
		cfg,
	)

	return &TestServer{Router: r.Setup()}
}

func (ts *TestServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	var raw []byte
	if body != nil {
		var err error
		raw, err = json.Marshal(body)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	ts.Router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func path(prefix string, id uint) string {
	return prefix + "/" + strconv.FormatUint(uint64(id), 10)
}

func TestCompleteOrderJourney(t *testing.T) {
	ts := setupIntegrationTest(t)

	t.Log("Step 1: Create customer")
	w := ts.do(t, http.MethodPost, "/customers", gin.H{"name": "John", "surname": "Doe", "email": "john@example.com"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	customer := decode[controller.CustomerResponse](t, w)
	assert.NotZero(t, customer.ID)

	t.Log("Step 2: Create category")
	w = ts.do(t, http.MethodPost, "/categories", gin.H{"title": "Books", "description": "Printed and digital books"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	category := decode[controller.CategoryResponse](t, w)
	assert.Equal(t, uint(1), category.ID)

	t.Log("Step 3: Create shop item")
	w = ts.do(t, http.MethodPost, "/items", gin.H{
		"title":        "Py Book",
		"description":  "Learn Python",
		"price":        29.99,
		"category_ids": []uint{category.ID},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	item := decode[controller.ShopItemResponse](t, w)
	assert.Equal(t, "29.99", item.Price.String())
	require.Len(t, item.Categories, 1)
	assert.Equal(t, category.ID, item.Categories[0].ID)
	assert.Equal(t, "Books", item.Categories[0].Title)

	t.Log("Step 4: Create order")
	w = ts.do(t, http.MethodPost, "/orders", gin.H{
		"customer_id": customer.ID,
		"items":       []gin.H{{"shop_item_id": item.ID, "quantity": 2}},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	order := decode[controller.OrderResponse](t, w)
	assert.Equal(t, customer.ID, order.CustomerID)
	assert.Equal(t, "john@example.com", order.Customer.Email)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)
	require.NotNil(t, order.Items[0].OrderID)
	assert.Equal(t, order.ID, *order.Items[0].OrderID)
	assert.Equal(t, "Py Book", order.Items[0].ShopItem.Title)
	assert.Len(t, order.Items[0].ShopItem.Categories, 1)

	t.Log("Step 5: Order is listed")
	w = ts.do(t, http.MethodGet, "/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]controller.OrderResponse](t, w), 1)

	t.Log("Step 6: Item in use cannot be deleted")
	w = ts.do(t, http.MethodDelete, path("/items", item.ID), nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, apperrors.ShopItemInUse, decode[apperrors.ErrorResponse](t, w).Error)

	t.Log("Step 7: Delete order")
	w = ts.do(t, http.MethodDelete, path("/orders", order.ID), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, order.ID, decode[controller.OrderResponse](t, w).ID)

	w = ts.do(t, http.MethodGet, path("/orders", order.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apperrors.OrderNotFound, decode[apperrors.ErrorResponse](t, w).Error)

	w = ts.do(t, http.MethodGet, "/order_items", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())

	t.Log("Step 8: Item is free again")
	w = ts.do(t, http.MethodDelete, path("/shop_items", item.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestOrderJourney_InvalidReferenceLeavesNothing(t *testing.T) {
	ts := setupIntegrationTest(t)

	w := ts.do(t, http.MethodPost, "/customers", gin.H{"name": "Jane", "surname": "Smith", "email": "jane@example.com"})
	require.Equal(t, http.StatusOK, w.Code)
	customer := decode[controller.CustomerResponse](t, w)

	w = ts.do(t, http.MethodPost, "/shop_items", gin.H{"title": "Pen", "description": "Blue ink", "price": 1.5})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	item := decode[controller.ShopItemResponse](t, w)

	w = ts.do(t, http.MethodPost, "/orders", gin.H{
		"customer_id": customer.ID,
		"items": []gin.H{
			{"shop_item_id": item.ID, "quantity": 1},
			{"shop_item_id": 999, "quantity": 1},
		},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	body := decode[apperrors.ErrorResponse](t, w)
	assert.Equal(t, apperrors.ShopItemNotFound, body.Error)
	assert.Equal(t, "Shop item 999 not found", body.Message)

	w = ts.do(t, http.MethodGet, "/orders", nil)
	assert.Equal(t, "[]", w.Body.String())
	w = ts.do(t, http.MethodGet, "/order_items", nil)
	assert.Equal(t, "[]", w.Body.String())
}

func TestRouter_RootAndHealth(t *testing.T) {
	ts := setupIntegrationTest(t)

	w := ts.do(t, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Welcome to the Online Shop API", decode[map[string]string](t, w)["message"])
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	w = ts.do(t, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", decode[map[string]string](t, w)["status"])
}

func TestRouter_CORS(t *testing.T) {
	ts := setupIntegrationTest(t)

	req := httptest.NewRequest(http.MethodOptions, "/customers", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	ts.Router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://evil.test")
	w = httptest.NewRecorder()
	ts.Router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_RecoversPanic(t *testing.T) {
	ts := setupIntegrationTest(t)
	ts.Router.GET("/boom", func(c *gin.Context) {
		panic("nil map write")
	})

	w := ts.do(t, http.MethodGet, "/boom", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decode[apperrors.ErrorResponse](t, w)
	assert.Equal(t, apperrors.InternalServerError, body.Error)
	assert.Equal(t, "Internal server error", body.Message)
	assert.NotContains(t, w.Body.String(), "nil map write")

	w = ts.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
