package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo pairs an error code with a message safe to show to clients.
type ErrorInfo struct {
	Code    string
	Message string
}

// IsUniqueViolation reports whether err comes from a unique constraint.
// gorm translates driver errors to gorm.ErrDuplicatedKey when TranslateError
// is on; the message checks cover connections opened without it.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "sqlstate 23505")
}

// IsForeignKeyViolation reports whether err comes from a foreign key constraint.
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "foreign key constraint") ||
		strings.Contains(msg, "sqlstate 23503")
}

// ParseError converts a storage error into a client-facing code and message
// without leaking driver text. context names the failed action, e.g. "create customer".
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{Code: InternalServerError, Message: "Internal server error"}
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{Code: ResourceNotFound, Message: getNotFoundMessage(context)}
	}

	if IsUniqueViolation(err) {
		return parseDuplicateKeyError(err.Error())
	}

	if IsForeignKeyViolation(err) {
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "still referenced") || strings.Contains(context, "delete") {
			return ErrorInfo{Code: ResourceConflict, Message: "Resource is still referenced by other records"}
		}
		return ErrorInfo{Code: ResourceNotFound, Message: "Referenced resource not found"}
	}

	return ErrorInfo{Code: InternalDatabaseError, Message: getDefaultErrorMessage(context)}
}

func parseDuplicateKeyError(errStr string) ErrorInfo {
	if strings.Contains(strings.ToLower(errStr), "email") {
		return ErrorInfo{Code: CustomerEmailExists, Message: "Email already registered"}
	}
	return ErrorInfo{Code: ResourceAlreadyExists, Message: "Resource already exists"}
}

func getNotFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "customer"):
		return "Customer not found"
	case strings.Contains(contextLower, "category"):
		return "Category not found"
	case strings.Contains(contextLower, "order item"):
		return "Order item not found"
	case strings.Contains(contextLower, "order"):
		return "Order not found"
	case strings.Contains(contextLower, "item"):
		return "Shop item not found"
	}
	return "Resource not found"
}

func getDefaultErrorMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "create"):
		return "Failed to create resource"
	case strings.Contains(contextLower, "update"):
		return "Failed to update resource"
	case strings.Contains(contextLower, "delete"):
		return "Failed to delete resource"
	}
	return "Internal server error"
}
