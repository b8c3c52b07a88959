package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"blogmaster/models"
	"blogmaster/utils"
)

// CategoryController manages post categories. Creation and removal are wired
// behind the admin guard in the router.
type CategoryController struct {
	db *gorm.DB
}

// NewCategoryController creates a CategoryController.
func NewCategoryController(db *gorm.DB) *CategoryController {
	return &CategoryController{db: db}
}

// All lists every category.
func (c *CategoryController) All(ctx *gin.Context) {
	var categories []models.Category
	if err := c.db.Order("created_at DESC").Find(&categories).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50030, "failed to list categories: "+err.Error())
		return
	}
	utils.Success(ctx, categories)
}

// GetByID returns a single category.
func (c *CategoryController) GetByID(ctx *gin.Context) {
	var category models.Category
	if err := c.db.First(&category, "id = ?", ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40410, "category not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50031, "failed to load category: "+err.Error())
		return
	}
	utils.Success(ctx, category)
}

type categoryCreateRequest struct {
	Name        string `json:"name" binding:"required,min=3,max=20"`
	Description string `json:"description" binding:"required,min=12,max=550"`
}

// Create adds a category. Duplicate names answer 409, backed by the unique
// index for the concurrent case.
func (c *CategoryController) Create(ctx *gin.Context) {
	var req categoryCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40030, "invalid request payload: "+err.Error())
		return
	}

	var existing models.Category
	err := c.db.Where("name = ?", req.Name).First(&existing).Error
	if err == nil {
		utils.Error(ctx, http.StatusConflict, 40910, "category already exists")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.Error(ctx, http.StatusInternalServerError, 50032, "failed to create category: "+err.Error())
		return
	}

	category := models.Category{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := c.db.Create(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Error(ctx, http.StatusConflict, 40911, "category already exists")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50033, "failed to create category: "+err.Error())
		return
	}

	utils.Sugar.Infow("category created", "name", category.Name)
	utils.Created(ctx, category)
}

// Remove deletes a category. Removal is rejected while posts still reference
// it, so no post is ever left with a dangling category id.
func (c *CategoryController) Remove(ctx *gin.Context) {
	var category models.Category
	if err := c.db.First(&category, "id = ?", ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40411, "category not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50034, "failed to load category: "+err.Error())
		return
	}

	var refs int64
	if err := c.db.Model(&models.Post{}).Where("category_id = ?", category.ID).Count(&refs).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50035, "failed to remove category: "+err.Error())
		return
	}
	if refs > 0 {
		utils.Error(ctx, http.StatusConflict, 40912, "category is still referenced by posts")
		return
	}

	if err := c.db.Delete(&category).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50036, "failed to remove category: "+err.Error())
		return
	}

	utils.Sugar.Infow("category removed", "name", category.Name)
	utils.NoContent(ctx)
}
