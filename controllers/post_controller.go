package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"blogmaster/config"
	"blogmaster/models"
	"blogmaster/utils"
)

// PostController manages CRUD operations for posts.
type PostController struct {
	db  *gorm.DB
	cfg config.AppConfig
}

// NewPostController creates a PostController.
func NewPostController(db *gorm.DB, cfg config.AppConfig) *PostController {
	return &PostController{db: db, cfg: cfg}
}

// All lists every post, newest first.
func (p *PostController) All(ctx *gin.Context) {
	var posts []models.Post
	if err := p.db.Order("created_at DESC").Find(&posts).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50040, "failed to list posts: "+err.Error())
		return
	}
	utils.Success(ctx, posts)
}

// GetByID returns a single post.
func (p *PostController) GetByID(ctx *gin.Context) {
	var post models.Post
	if err := p.db.First(&post, "id = ?", ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40420, "post not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50041, "failed to load post: "+err.Error())
		return
	}
	utils.Success(ctx, post)
}

// GetByIDForUser returns one of the caller's own posts. The lookup is scoped
// to the caller, so foreign posts answer 404.
func (p *PostController) GetByIDForUser(ctx *gin.Context) {
	user, ok := caller(ctx)
	if !ok {
		return
	}
	var post models.Post
	if err := p.db.Where("id = ? AND user_id = ?", ctx.Param("id"), user.ID).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40426, "post not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50053, "failed to load post: "+err.Error())
		return
	}
	utils.Success(ctx, post)
}

// AllByUser lists the caller's own posts.
func (p *PostController) AllByUser(ctx *gin.Context) {
	user, ok := caller(ctx)
	if !ok {
		return
	}
	var posts []models.Post
	if err := p.db.Where("user_id = ?", user.ID).Order("created_at DESC").Find(&posts).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50042, "failed to list posts: "+err.Error())
		return
	}
	utils.Success(ctx, posts)
}

// AllByCategory lists posts of an existing category.
func (p *PostController) AllByCategory(ctx *gin.Context) {
	var category models.Category
	if err := p.db.First(&category, "id = ?", ctx.Param("category_id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40421, "category not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50043, "failed to load category: "+err.Error())
		return
	}

	var posts []models.Post
	if err := p.db.Where("category_id = ?", category.ID).Order("created_at DESC").Find(&posts).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50044, "failed to list posts: "+err.Error())
		return
	}
	utils.Success(ctx, posts)
}

// Create stores the uploaded image first and only then creates the post row,
// so a post never references a file that does not exist. Multipart fields:
// title, content, category_id, image.
func (p *PostController) Create(ctx *gin.Context) {
	user, ok := caller(ctx)
	if !ok {
		return
	}

	title := utils.Sanitize(strings.TrimSpace(ctx.PostForm("title")))
	if n := utf8.RuneCountInString(title); n < 3 || n > 100 {
		utils.Error(ctx, http.StatusBadRequest, 40040, "title must be between 3 and 100 characters")
		return
	}
	content := utils.Sanitize(strings.TrimSpace(ctx.PostForm("content")))
	if utf8.RuneCountInString(content) < 3 {
		utils.Error(ctx, http.StatusBadRequest, 40041, "content must be at least 3 characters")
		return
	}
	categoryID, err := strconv.ParseUint(ctx.PostForm("category_id"), 10, 64)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40042, "invalid category id")
		return
	}

	var category models.Category
	if err := p.db.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40422, "category not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50045, "failed to load category: "+err.Error())
		return
	}

	imageHeader, err := ctx.FormFile("image")
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40043, "image file is required")
		return
	}

	storedName, err := utils.SaveImage(imageHeader, p.cfg.UploadDir)
	if err != nil {
		if errors.Is(err, utils.ErrInvalidImageType) {
			utils.Error(ctx, http.StatusBadRequest, 40044, err.Error())
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50046, "failed to save image: "+err.Error())
		return
	}

	post := models.Post{
		UserID:     user.ID,
		CategoryID: category.ID,
		Title:      title,
		Content:    content,
		Image:      storedName,
	}
	if err := p.db.Create(&post).Error; err != nil {
		utils.RemoveImage(p.cfg.UploadDir, storedName)
		utils.Error(ctx, http.StatusInternalServerError, 50047, "failed to create post: "+err.Error())
		return
	}

	utils.Sugar.Infow("post created", "title", post.Title, "user_id", user.ID)
	utils.Created(ctx, post)
}

type postUpdateRequest struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	Image      string `json:"image"`
	CategoryID uint   `json:"category_id"`
}

// Update applies a partial update to the caller's own post. The lookup is
// scoped to the caller, so foreign posts answer 404. Empty fields retain the
// stored values.
func (p *PostController) Update(ctx *gin.Context) {
	user, ok := caller(ctx)
	if !ok {
		return
	}

	var req postUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40045, "invalid request payload: "+err.Error())
		return
	}

	var post models.Post
	if err := p.db.Where("id = ? AND user_id = ?", ctx.Param("id"), user.ID).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40423, "post not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50048, "failed to load post: "+err.Error())
		return
	}

	if req.Title != "" {
		title := utils.Sanitize(strings.TrimSpace(req.Title))
		if n := utf8.RuneCountInString(title); n < 3 || n > 100 {
			utils.Error(ctx, http.StatusBadRequest, 40046, "title must be between 3 and 100 characters")
			return
		}
		post.Title = title
	}
	if req.Content != "" {
		content := utils.Sanitize(strings.TrimSpace(req.Content))
		if utf8.RuneCountInString(content) < 3 {
			utils.Error(ctx, http.StatusBadRequest, 40047, "content must be at least 3 characters")
			return
		}
		post.Content = content
	}
	if req.Image != "" {
		post.Image = req.Image
	}
	if req.CategoryID != 0 {
		var category models.Category
		if err := p.db.First(&category, req.CategoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.Error(ctx, http.StatusNotFound, 40424, "category not found")
				return
			}
			utils.Error(ctx, http.StatusInternalServerError, 50049, "failed to load category: "+err.Error())
			return
		}
		post.CategoryID = category.ID
	}

	if err := p.db.Save(&post).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50050, "failed to update post: "+err.Error())
		return
	}

	utils.Sugar.Infow("post updated", "post_id", post.ID, "user_id", user.ID)
	utils.NoContent(ctx)
}

// Remove deletes the caller's own post and its comments.
func (p *PostController) Remove(ctx *gin.Context) {
	user, ok := caller(ctx)
	if !ok {
		return
	}

	var post models.Post
	if err := p.db.Where("id = ? AND user_id = ?", ctx.Param("id"), user.ID).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40425, "post not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50051, "failed to load post: "+err.Error())
		return
	}

	if err := p.db.Transaction(func(tx *gorm.DB) error {
		return removePostCascade(tx, post.ID)
	}); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50052, "failed to remove post: "+err.Error())
		return
	}

	utils.Sugar.Infow("post removed", "post_id", post.ID, "user_id", user.ID)
	utils.NoContent(ctx)
}

// removePostCascade deletes a post together with its comments, inside the
// caller's transaction.
func removePostCascade(tx *gorm.DB, postID uint) error {
	if err := tx.Where("post_id = ?", postID).Delete(&models.Comment{}).Error; err != nil {
		return err
	}
	return tx.Delete(&models.Post{}, postID).Error
}
