package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"blogmaster/models"
	"blogmaster/utils"
)

// CommentController manages replies to posts.
type CommentController struct {
	db *gorm.DB
}

// NewCommentController creates a CommentController.
func NewCommentController(db *gorm.DB) *CommentController {
	return &CommentController{db: db}
}

// AllForPost lists the comments of an existing post.
func (c *CommentController) AllForPost(ctx *gin.Context) {
	var post models.Post
	if err := c.db.First(&post, "id = ?", ctx.Param("post_id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40430, "post not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50060, "failed to load post: "+err.Error())
		return
	}

	var comments []models.Comment
	if err := c.db.Where("post_id = ?", post.ID).Order("created_at ASC, id ASC").Find(&comments).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50061, "failed to list comments: "+err.Error())
		return
	}
	utils.Success(ctx, comments)
}

type commentCreateRequest struct {
	Content string `json:"content" binding:"required"`
}

// Create adds a comment to an existing post, authored by the caller.
func (c *CommentController) Create(ctx *gin.Context) {
	user, ok := caller(ctx)
	if !ok {
		return
	}

	var post models.Post
	if err := c.db.First(&post, "id = ?", ctx.Param("post_id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40431, "post not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50062, "failed to load post: "+err.Error())
		return
	}

	var req commentCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40050, "invalid request payload: "+err.Error())
		return
	}

	comment := models.Comment{
		PostID:  post.ID,
		UserID:  user.ID,
		Content: utils.Sanitize(req.Content),
	}
	if err := c.db.Create(&comment).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50063, "failed to create comment: "+err.Error())
		return
	}

	utils.Sugar.Infow("comment created", "post_id", post.ID, "user_id", user.ID)
	utils.Created(ctx, comment)
}

// Remove deletes the caller's own comment. The post must still exist and the
// lookup is scoped to the caller, so foreign comments answer 404.
func (c *CommentController) Remove(ctx *gin.Context) {
	user, ok := caller(ctx)
	if !ok {
		return
	}

	var post models.Post
	if err := c.db.First(&post, "id = ?", ctx.Param("post_id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40432, "post not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50064, "failed to load post: "+err.Error())
		return
	}

	var comment models.Comment
	if err := c.db.Where("id = ? AND user_id = ?", ctx.Param("comment_id"), user.ID).First(&comment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40433, "comment not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50065, "failed to load comment: "+err.Error())
		return
	}

	if err := c.db.Delete(&comment).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50066, "failed to remove comment: "+err.Error())
		return
	}

	utils.Sugar.Infow("comment removed", "comment_id", comment.ID, "user_id", user.ID)
	utils.NoContent(ctx)
}
