package errors

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestParseError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		context  string
		wantCode string
		wantMsg  string
	}{
		{
			name:     "record not found",
			err:      gorm.ErrRecordNotFound,
			context:  "get customer",
			wantCode: ResourceNotFound,
			wantMsg:  "Customer not found",
		},
		{
			name:     "wrapped not found for order item",
			err:      fmt.Errorf("lookup: %w", gorm.ErrRecordNotFound),
			context:  "get order item",
			wantCode: ResourceNotFound,
			wantMsg:  "Order item not found",
		},
		{
			name:     "translated duplicate key",
			err:      gorm.ErrDuplicatedKey,
			context:  "create category",
			wantCode: ResourceAlreadyExists,
		},
		{
			name:     "sqlite unique email",
			err:      errors.New("UNIQUE constraint failed: customers.email"),
			context:  "create customer",
			wantCode: CustomerEmailExists,
			wantMsg:  "Email already registered",
		},
		{
			name:     "postgres unique email",
			err:      errors.New(`ERROR: duplicate key value violates unique constraint "idx_customers_email" (SQLSTATE 23505)`),
			context:  "update customer",
			wantCode: CustomerEmailExists,
		},
		{
			name:     "foreign key on delete",
			err:      errors.New("FOREIGN KEY constraint failed"),
			context:  "delete shop item",
			wantCode: ResourceConflict,
		},
		{
			name:     "foreign key on insert",
			err:      gorm.ErrForeignKeyViolated,
			context:  "create order",
			wantCode: ResourceNotFound,
		},
		{
			name:     "anything else",
			err:      errors.New("disk I/O error"),
			context:  "update order",
			wantCode: InternalDatabaseError,
			wantMsg:  "Failed to update resource",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := ParseError(tt.err, tt.context)
			assert.Equal(t, tt.wantCode, info.Code)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, info.Message)
			}
			assert.NotContains(t, info.Message, "SQLSTATE")
		})
	}
}

func TestRespondWithParsedError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		err        error
		wantStatus int
	}{
		{gorm.ErrRecordNotFound, http.StatusNotFound},
		{errors.New("UNIQUE constraint failed: customers.email"), http.StatusBadRequest},
		{errors.New("FOREIGN KEY constraint failed"), http.StatusConflict},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			RespondWithParsedError(c, tt.err, "delete customer")
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.True(t, c.IsAborted())
		})
	}
}

func TestResponseHelpers(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name        string
		respond     func(c *gin.Context)
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{"not found", func(c *gin.Context) { NotFound(c, OrderNotFound, "Order not found") }, http.StatusNotFound, OrderNotFound, "Order not found"},
		{"conflict", func(c *gin.Context) { Conflict(c, ShopItemInUse, "in use") }, http.StatusConflict, ShopItemInUse, "in use"},
		{"bad request", func(c *gin.Context) { BadRequest(c, CustomerEmailExists, "taken") }, http.StatusBadRequest, CustomerEmailExists, "taken"},
		{"internal default message", func(c *gin.Context) { InternalError(c, "") }, http.StatusInternalServerError, InternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			tt.respond(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, fmt.Sprintf(`{"error":%q,"message":%q}`, tt.wantCode, tt.wantMessage), w.Body.String())
		})
	}
}
