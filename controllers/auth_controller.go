package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"blogmaster/config"
	"blogmaster/middleware"
	"blogmaster/models"
	"blogmaster/utils"
)

// AuthController handles signup and login.
type AuthController struct {
	db  *gorm.DB
	cfg config.AppConfig
}

// NewAuthController creates an AuthController.
func NewAuthController(db *gorm.DB, cfg config.AppConfig) *AuthController {
	return &AuthController{db: db, cfg: cfg}
}

type signupRequest struct {
	Username string `json:"username" binding:"required,min=3,max=20"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=64"`
}

// Signup registers a new user. A duplicate email answers 409; the unique
// indexes on email and username back the check under concurrent signups.
func (a *AuthController) Signup(ctx *gin.Context) {
	var req signupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40010, "invalid request payload: "+err.Error())
		return
	}

	var existing models.User
	err := a.db.Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		utils.Error(ctx, http.StatusConflict, 40901, "user already exists, please login")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.Error(ctx, http.StatusInternalServerError, 50010, "failed to create user: "+err.Error())
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50011, "failed to hash password")
		return
	}

	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := a.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Error(ctx, http.StatusConflict, 40902, "username or email already taken")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50012, "failed to create user: "+err.Error())
		return
	}

	utils.Sugar.Infow("new user created", "username", user.Username)
	utils.Created(ctx, user)
}

type loginRequest struct {
	Username string `form:"username" binding:"required"` // carries the email
	Password string `form:"password" binding:"required"`
}

// Login verifies form credentials and issues a bearer token.
func (a *AuthController) Login(ctx *gin.Context) {
	var req loginRequest
	if err := ctx.ShouldBind(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40011, "username and password are required")
		return
	}

	var user models.User
	if err := a.db.Where("email = ?", req.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40402, "user not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50013, "failed to login user: "+err.Error())
		return
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "invalid password")
		return
	}

	token, err := utils.GenerateToken(a.cfg.JWTSecret, user.Email, a.cfg.TokenTTL)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50014, "failed to issue token")
		return
	}

	utils.Sugar.Infow("user logged in", "username", user.Username)
	utils.Success(ctx, gin.H{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// caller returns the authenticated user resolved by the auth middleware. The
// guard runs first on every protected route, so a miss means a wiring bug.
func caller(ctx *gin.Context) (*models.User, bool) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40107, "unauthorized")
	}
	return user, ok
}
