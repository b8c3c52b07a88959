package controllers_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/suite"

	"blogmaster/models"
	"blogmaster/utils"
)

type UserSuite struct {
	apiSuite
}

func TestUserSuite(t *testing.T) {
	suite.Run(t, new(UserSuite))
}

func (s *UserSuite) TestUpdatePasswordMismatch() {
	s.createUser("alice", "a@x.com", "password1", false, true)

	w := s.doJSON(http.MethodPut, "/api/v1/user/password-update", map[string]string{
		"old_password":       "password1",
		"new_password":       "password2",
		"confirmed_password": "password3",
	}, s.tokenFor("a@x.com"))
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *UserSuite) TestUpdatePasswordWrongOldPassword() {
	s.createUser("alice", "a@x.com", "password1", false, true)

	w := s.doJSON(http.MethodPut, "/api/v1/user/password-update", map[string]string{
		"old_password":       "wrongpass",
		"new_password":       "password2",
		"confirmed_password": "password2",
	}, s.tokenFor("a@x.com"))
	s.Equal(http.StatusUnauthorized, w.Code)

	var stored models.User
	s.Require().NoError(s.db.First(&stored, "email = ?", "a@x.com").Error)
	s.True(utils.CheckPassword(stored.PasswordHash, "password1"))
}

func (s *UserSuite) TestUpdatePasswordSuccess() {
	s.createUser("alice", "a@x.com", "password1", false, true)

	w := s.doJSON(http.MethodPut, "/api/v1/user/password-update", map[string]string{
		"old_password":       "password1",
		"new_password":       "password2",
		"confirmed_password": "password2",
	}, s.tokenFor("a@x.com"))
	s.Equal(http.StatusNoContent, w.Code)
	s.Empty(w.Body.String())

	login := s.doForm(http.MethodPost, "/api/v1/auth/login", url.Values{
		"username": {"a@x.com"},
		"password": {"password2"},
	}, "")
	s.Equal(http.StatusOK, login.Code)
}

func (s *UserSuite) TestSetActiveToggles() {
	s.createUser("alice", "a@x.com", "password1", false, true)
	token := s.tokenFor("a@x.com")

	w := s.doJSON(http.MethodPut, "/api/v1/user/set-active", nil, token)
	s.Equal(http.StatusNoContent, w.Code)

	var stored models.User
	s.Require().NoError(s.db.First(&stored, "email = ?", "a@x.com").Error)
	s.False(stored.IsActive)

	w = s.doJSON(http.MethodPut, "/api/v1/user/set-active", nil, token)
	s.Equal(http.StatusNoContent, w.Code)

	s.Require().NoError(s.db.First(&stored, "email = ?", "a@x.com").Error)
	s.True(stored.IsActive)
}

func (s *UserSuite) TestRemoveDeletesUserAndOwnedRows() {
	alice := s.createUser("alice", "a@x.com", "password1", false, true)
	bob := s.createUser("bob", "b@x.com", "password1", false, true)
	category := s.createCategory("tech", "all about technology")
	alicePost := s.createPost(alice, category, "alice post", "hello world")
	bobPost := s.createPost(bob, category, "bob post", "hello world")
	s.createComment(alice, bobPost, "alice on bob")
	s.createComment(bob, alicePost, "bob on alice")

	w := s.doJSON(http.MethodDelete, "/api/v1/user/remove", nil, s.tokenFor("a@x.com"))
	s.Equal(http.StatusNoContent, w.Code)

	s.EqualValues(1, s.count(&models.User{}))
	var posts []models.Post
	s.Require().NoError(s.db.Find(&posts).Error)
	s.Require().Len(posts, 1)
	s.Equal(bob.ID, posts[0].UserID)

	// alice's comments and all comments on her posts are gone
	s.EqualValues(0, s.count(&models.Comment{}))

	// the token no longer resolves
	me := s.doJSON(http.MethodGet, "/api/v1/user/me", nil, s.tokenFor("a@x.com"))
	s.Equal(http.StatusNotFound, me.Code)
}
