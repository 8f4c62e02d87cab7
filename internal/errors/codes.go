package errors

// Error codes returned in the "error" field of every error body.
// Format: CATEGORY_SPECIFIC_DETAIL

const (
	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT" // malformed body or query
	ValidationInvalidID    = "VALIDATION_INVALID_ID"    // path id is not a positive integer
	ValidationInvalidRange = "VALIDATION_INVALID_RANGE" // skip/limit/price/quantity out of range

	// ==================== Resource (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT" // still referenced by other rows

	// ==================== Shop entities ====================
	CustomerNotFound    = "CUSTOMER_NOT_FOUND"
	CustomerEmailExists = "CUSTOMER_EMAIL_EXISTS"
	CustomerHasOrders   = "CUSTOMER_HAS_ORDERS"
	CategoryNotFound    = "CATEGORY_NOT_FOUND"
	ShopItemNotFound    = "SHOP_ITEM_NOT_FOUND"
	ShopItemInUse       = "SHOP_ITEM_IN_USE"
	OrderItemNotFound   = "ORDER_ITEM_NOT_FOUND"
	OrderNotFound       = "ORDER_NOT_FOUND"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
)
