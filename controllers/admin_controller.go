package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"blogmaster/models"
	"blogmaster/utils"
)

// AdminController exposes moderation endpoints. Every route is wired behind
// both the auth and the admin guard.
type AdminController struct {
	db *gorm.DB
}

// NewAdminController creates an AdminController.
func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{db: db}
}

// RemovePost deletes any post regardless of ownership, with its comments.
func (a *AdminController) RemovePost(ctx *gin.Context) {
	var post models.Post
	if err := a.db.First(&post, "id = ?", ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40440, "post not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50070, "failed to load post: "+err.Error())
		return
	}

	if err := a.db.Transaction(func(tx *gorm.DB) error {
		return removePostCascade(tx, post.ID)
	}); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50071, "failed to remove post: "+err.Error())
		return
	}

	utils.Sugar.Infow("post removed by admin", "post_id", post.ID, "title", post.Title)
	utils.NoContent(ctx)
}

// AllUsers lists every user.
func (a *AdminController) AllUsers(ctx *gin.Context) {
	var users []models.User
	if err := a.db.Order("created_at DESC").Find(&users).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50072, "failed to list users: "+err.Error())
		return
	}
	utils.Success(ctx, users)
}

// RemoveUser force-removes a user. Only inactive, non-admin users may be
// removed; their posts and comments go with them.
func (a *AdminController) RemoveUser(ctx *gin.Context) {
	var user models.User
	if err := a.db.First(&user, "id = ?", ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40441, "user not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50073, "failed to load user: "+err.Error())
		return
	}

	if user.IsAdmin {
		utils.Error(ctx, http.StatusForbidden, 40310, "user "+user.Username+" is admin")
		return
	}
	if user.IsActive {
		utils.Error(ctx, http.StatusForbidden, 40311, "user "+user.Username+" is active")
		return
	}

	if err := a.db.Transaction(func(tx *gorm.DB) error {
		return removeUserCascade(tx, user.ID)
	}); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50074, "failed to remove user: "+err.Error())
		return
	}

	utils.Sugar.Infow("user removed by admin", "username", user.Username)
	utils.NoContent(ctx)
}
