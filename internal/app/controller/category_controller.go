package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/shop-backend/internal/app/service"
	"github.com/ikkim/shop-backend/internal/middleware"
)

type CategoryController struct {
	categoryService service.CategoryService
}

func NewCategoryController(categoryService service.CategoryService) *CategoryController {
	return &CategoryController{
		categoryService: categoryService,
	}
}

type CategoryRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
}

type PatchCategoryRequest struct {
	Title       *string `json:"title" binding:"omitnil,min=1"`
	Description *string `json:"description" binding:"omitnil,min=1"`
}

// GET /categories
func (ctrl *CategoryController) ListCategories(c *gin.Context) {
	skip, limit, ok := bindPage(c)
	if !ok {
		return
	}

	categories, err := ctrl.categoryService.List(c.Request.Context(), skip, limit)
	if err != nil {
		respondServiceError(c, err, "list categories")
		return
	}

	c.JSON(http.StatusOK, newCategoryResponses(categories))
}

// GET /categories/:id
func (ctrl *CategoryController) GetCategory(c *gin.Context) {
	id, ok := parseID(c, "id", "category")
	if !ok {
		return
	}

	category, err := ctrl.categoryService.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "get category")
		return
	}

	c.JSON(http.StatusOK, newCategoryResponse(category))
}

// POST /categories
func (ctrl *CategoryController) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	category, err := ctrl.categoryService.Create(c.Request.Context(), service.CategoryInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(c, err, "create category")
		return
	}

	middleware.GetLoggerFromContext(c).Info("Category created successfully", map[string]interface{}{
		"category_id": category.ID,
		"title":       category.Title,
	})
	c.JSON(http.StatusOK, newCategoryResponse(category))
}

// PUT /categories/:id
func (ctrl *CategoryController) UpdateCategory(c *gin.Context) {
	id, ok := parseID(c, "id", "category")
	if !ok {
		return
	}

	var req CategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	ctrl.applyUpdate(c, id, service.CategoryUpdate{
		Title:       &req.Title,
		Description: &req.Description,
	})
}

// PATCH /categories/:id
func (ctrl *CategoryController) PatchCategory(c *gin.Context) {
	id, ok := parseID(c, "id", "category")
	if !ok {
		return
	}

	var req PatchCategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	ctrl.applyUpdate(c, id, service.CategoryUpdate{
		Title:       req.Title,
		Description: req.Description,
	})
}

func (ctrl *CategoryController) applyUpdate(c *gin.Context, id uint, update service.CategoryUpdate) {
	category, err := ctrl.categoryService.Update(c.Request.Context(), id, update)
	if err != nil {
		respondServiceError(c, err, "update category")
		return
	}

	c.JSON(http.StatusOK, newCategoryResponse(category))
}

// DELETE /categories/:id
func (ctrl *CategoryController) DeleteCategory(c *gin.Context) {
	id, ok := parseID(c, "id", "category")
	if !ok {
		return
	}

	category, err := ctrl.categoryService.Delete(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "delete category")
		return
	}

	c.JSON(http.StatusOK, newCategoryResponse(category))
}
