package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/shop-backend/internal/app/service"
	"github.com/ikkim/shop-backend/internal/middleware"
	"github.com/shopspring/decimal"
)

type ShopItemController struct {
	itemService service.ShopItemService
}

func NewShopItemController(itemService service.ShopItemService) *ShopItemController {
	return &ShopItemController{
		itemService: itemService,
	}
}

// ShopItemRequest accepts price as a JSON number or a numeric string.
// description must be present but may be empty.
type ShopItemRequest struct {
	Title       string           `json:"title" binding:"required"`
	Description *string          `json:"description" binding:"required"`
	Price       *decimal.Decimal `json:"price" binding:"required"`
	CategoryIDs []uint           `json:"category_ids"`
}

// PatchShopItemRequest leaves categories untouched when category_ids is
// absent; an explicit [] clears them.
type PatchShopItemRequest struct {
	Title       *string          `json:"title" binding:"omitnil,min=1"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	CategoryIDs *[]uint          `json:"category_ids"`
}

// ListShopItems returns items with their categories
// GET /items
func (ctrl *ShopItemController) ListShopItems(c *gin.Context) {
	skip, limit, ok := bindPage(c)
	if !ok {
		return
	}

	items, err := ctrl.itemService.List(c.Request.Context(), skip, limit)
	if err != nil {
		respondServiceError(c, err, "list shop items")
		return
	}

	middleware.GetLoggerFromContext(c).Debug("Shop items fetched", map[string]interface{}{
		"count": len(items),
	})
	c.JSON(http.StatusOK, newShopItemResponses(items))
}

// GET /items/:id
func (ctrl *ShopItemController) GetShopItem(c *gin.Context) {
	id, ok := parseID(c, "id", "shop item")
	if !ok {
		return
	}

	item, err := ctrl.itemService.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "get shop item")
		return
	}

	c.JSON(http.StatusOK, newShopItemResponse(item))
}

// CreateShopItem creates an item linked to existing categories
// POST /items
func (ctrl *ShopItemController) CreateShopItem(c *gin.Context) {
	var req ShopItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := ctrl.itemService.Create(c.Request.Context(), service.ShopItemInput{
		Title:       req.Title,
		Description: *req.Description,
		Price:       *req.Price,
		CategoryIDs: req.CategoryIDs,
	})
	if err != nil {
		respondServiceError(c, err, "create shop item")
		return
	}

	middleware.GetLoggerFromContext(c).Info("Shop item created successfully", map[string]interface{}{
		"shop_item_id": item.ID,
		"title":        item.Title,
	})
	c.JSON(http.StatusOK, newShopItemResponse(item))
}

// UpdateShopItem replaces every field; the category set becomes exactly
// category_ids
// PUT /items/:id
func (ctrl *ShopItemController) UpdateShopItem(c *gin.Context) {
	id, ok := parseID(c, "id", "shop item")
	if !ok {
		return
	}

	var req ShopItemRequest
	if !bindJSON(c, &req) {
		return
	}

	categoryIDs := req.CategoryIDs
	if categoryIDs == nil {
		categoryIDs = []uint{}
	}

	ctrl.applyUpdate(c, id, service.ShopItemUpdate{
		Title:       &req.Title,
		Description: req.Description,
		Price:       req.Price,
		CategoryIDs: &categoryIDs,
	})
}

// PATCH /items/:id
func (ctrl *ShopItemController) PatchShopItem(c *gin.Context) {
	id, ok := parseID(c, "id", "shop item")
	if !ok {
		return
	}

	var req PatchShopItemRequest
	if !bindJSON(c, &req) {
		return
	}

	ctrl.applyUpdate(c, id, service.ShopItemUpdate{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		CategoryIDs: req.CategoryIDs,
	})
}

func (ctrl *ShopItemController) applyUpdate(c *gin.Context, id uint, update service.ShopItemUpdate) {
	item, err := ctrl.itemService.Update(c.Request.Context(), id, update)
	if err != nil {
		respondServiceError(c, err, "update shop item")
		return
	}

	middleware.GetLoggerFromContext(c).Info("Shop item updated successfully", map[string]interface{}{
		"shop_item_id":   item.ID,
		"category_count": len(item.Categories),
	})
	c.JSON(http.StatusOK, newShopItemResponse(item))
}

// DELETE /items/:id
func (ctrl *ShopItemController) DeleteShopItem(c *gin.Context) {
	id, ok := parseID(c, "id", "shop item")
	if !ok {
		return
	}

	item, err := ctrl.itemService.Delete(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "delete shop item")
		return
	}

	c.JSON(http.StatusOK, newShopItemResponse(item))
}
