package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"blogmaster/config"
	"blogmaster/models"
	"blogmaster/routes"
	"blogmaster/utils"
)

// apiSuite spins up the full router against a fresh in-memory sqlite database
// for every test.
type apiSuite struct {
	suite.Suite
	db     *gorm.DB
	cfg    config.AppConfig
	router *gin.Engine
}

func (s *apiSuite) SetupTest() {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	s.Require().NoError(err)
	s.Require().NoError(db.AutoMigrate(&models.User{}, &models.Category{}, &models.Post{}, &models.Comment{}))

	s.db = db
	s.cfg = config.AppConfig{
		AppPort:        "8080",
		GinMode:        "test",
		JWTSecret:      "test-secret",
		TokenTTL:       time.Hour,
		UploadDir:      filepath.Join(s.T().TempDir(), "images"),
		StaticDir:      s.T().TempDir(),
		AllowedOrigins: []string{"*"},
	}
	s.router = routes.SetupRouter(db, s.cfg)
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (s *apiSuite) decode(w *httptest.ResponseRecorder) envelope {
	var env envelope
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func (s *apiSuite) decodeData(w *httptest.ResponseRecorder, out interface{}) {
	env := s.decode(w)
	s.Require().NoError(json.Unmarshal(env.Data, out))
}

func (s *apiSuite) serve(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *apiSuite) doJSON(method, path string, payload interface{}, token string) *httptest.ResponseRecorder {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		s.Require().NoError(err)
		body = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return s.serve(req, token)
}

func (s *apiSuite) doForm(method, path string, form url.Values, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return s.serve(req, token)
}

func (s *apiSuite) doMultipart(path string, fields map[string]string, filename string, contents []byte, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for key, value := range fields {
		s.Require().NoError(w.WriteField(key, value))
	}
	if filename != "" {
		fw, err := w.CreateFormFile("image", filename)
		s.Require().NoError(err)
		_, err = fw.Write(contents)
		s.Require().NoError(err)
	}
	s.Require().NoError(w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return s.serve(req, token)
}

func (s *apiSuite) createUser(username, email, password string, admin, active bool) models.User {
	hash, err := utils.HashPassword(password)
	s.Require().NoError(err)
	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      admin,
		IsActive:     active,
	}
	s.Require().NoError(s.db.Create(&user).Error)
	return user
}

func (s *apiSuite) tokenFor(email string) string {
	token, err := utils.GenerateToken(s.cfg.JWTSecret, email, s.cfg.TokenTTL)
	s.Require().NoError(err)
	return token
}

func (s *apiSuite) createCategory(name, description string) models.Category {
	category := models.Category{Name: name, Description: description}
	s.Require().NoError(s.db.Create(&category).Error)
	return category
}

func (s *apiSuite) createPost(user models.User, category models.Category, title, content string) models.Post {
	post := models.Post{
		UserID:     user.ID,
		CategoryID: category.ID,
		Title:      title,
		Content:    content,
		Image:      "stored.png",
	}
	s.Require().NoError(s.db.Create(&post).Error)
	return post
}

func (s *apiSuite) createComment(user models.User, post models.Post, content string) models.Comment {
	comment := models.Comment{UserID: user.ID, PostID: post.ID, Content: content}
	s.Require().NoError(s.db.Create(&comment).Error)
	return comment
}

func itoa(id uint) string {
	return fmt.Sprintf("%d", id)
}

func (s *apiSuite) count(model interface{}) int64 {
	var n int64
	s.Require().NoError(s.db.Model(model).Count(&n).Error)
	return n
}
