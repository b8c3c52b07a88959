package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"blogmaster/models"
	"blogmaster/utils"
)

// UserController exposes self-service account operations.
type UserController struct {
	db *gorm.DB
}

// NewUserController creates a UserController.
func NewUserController(db *gorm.DB) *UserController {
	return &UserController{db: db}
}

// Me returns the authenticated user's own record.
func (u *UserController) Me(ctx *gin.Context) {
	user, ok := caller(ctx)
	if !ok {
		return
	}
	utils.Sugar.Infow("current user fetched", "username", user.Username)
	utils.Success(ctx, user)
}

type passwordUpdateRequest struct {
	OldPassword       string `json:"old_password" binding:"required"`
	NewPassword       string `json:"new_password" binding:"required,min=8,max=64"`
	ConfirmedPassword string `json:"confirmed_password" binding:"required"`
}

// UpdatePassword replaces the caller's password after checking the old one.
func (u *UserController) UpdatePassword(ctx *gin.Context) {
	user, ok := caller(ctx)
	if !ok {
		return
	}

	var req passwordUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload: "+err.Error())
		return
	}

	if req.NewPassword != req.ConfirmedPassword {
		utils.Error(ctx, http.StatusBadRequest, 40021, "passwords do not match")
		return
	}

	if !utils.CheckPassword(user.PasswordHash, req.OldPassword) {
		utils.Error(ctx, http.StatusUnauthorized, 40111, "invalid old password")
		return
	}

	hash, err := utils.HashPassword(req.ConfirmedPassword)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50020, "failed to hash password")
		return
	}

	if err := u.db.Model(user).Update("password_hash", hash).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to update password: "+err.Error())
		return
	}

	utils.Sugar.Infow("password updated", "username", user.Username)
	utils.NoContent(ctx)
}

// SetActive toggles the caller's active flag.
func (u *UserController) SetActive(ctx *gin.Context) {
	user, ok := caller(ctx)
	if !ok {
		return
	}

	if err := u.db.Model(user).Update("is_active", !user.IsActive).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50022, "failed to update active status: "+err.Error())
		return
	}

	utils.Sugar.Infow("active status toggled", "username", user.Username, "is_active", !user.IsActive)
	utils.NoContent(ctx)
}

// Remove deletes the caller's own record together with their posts and
// comments, and the comments left by others on those posts.
func (u *UserController) Remove(ctx *gin.Context) {
	user, ok := caller(ctx)
	if !ok {
		return
	}

	err := u.db.Transaction(func(tx *gorm.DB) error {
		return removeUserCascade(tx, user.ID)
	})
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50023, "failed to remove user: "+err.Error())
		return
	}

	utils.Sugar.Infow("user removed", "username", user.Username)
	utils.NoContent(ctx)
}

// removeUserCascade deletes a user and every row referencing them, inside the
// caller's transaction.
func removeUserCascade(tx *gorm.DB, userID uint) error {
	postIDs := tx.Model(&models.Post{}).Select("id").Where("user_id = ?", userID)
	if err := tx.Where("post_id IN (?)", postIDs).Delete(&models.Comment{}).Error; err != nil {
		return err
	}
	if err := tx.Where("user_id = ?", userID).Delete(&models.Comment{}).Error; err != nil {
		return err
	}
	if err := tx.Where("user_id = ?", userID).Delete(&models.Post{}).Error; err != nil {
		return err
	}
	return tx.Delete(&models.User{}, userID).Error
}
