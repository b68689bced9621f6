package controllers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/gin-gonic/gin"

	"github.com/cppla/goblog/controllers"
	"github.com/cppla/goblog/models"
	"github.com/cppla/goblog/utils"
)

func newAuthRouter(repo *fakeUserRepo, userID uint) *gin.Engine {
	ac := controllers.NewAuthController(repo)
	r := gin.New()
	r.POST("/api/v1/auth/register", ac.Register)
	r.POST("/api/v1/auth/login", ac.Login)
	r.GET("/api/v1/auth/me", asUser(userID, "tester"), ac.Me)
	return r
}

func TestRegister(t *testing.T) {
	c := qt.New(t)
	repo := newFakeUserRepo()
	r := newAuthRouter(repo, 0)

	w, env := doRequest(t, r, http.MethodPost, "/api/v1/auth/register", gin.H{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "s3cret-pass",
	})
	c.Assert(w.Code, qt.Equals, http.StatusOK)

	var data struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	c.Assert(json.Unmarshal(env.Data, &data), qt.IsNil)
	c.Assert(data.Token, qt.Not(qt.Equals), "")
	c.Assert(data.User.Username, qt.Equals, "alice")

	claims, err := utils.ParseToken(data.Token)
	c.Assert(err, qt.IsNil)
	c.Assert(claims.UserID, qt.Equals, data.User.ID)

	// the stored password is a hash, never the plaintext
	stored, err := repo.FindByUsername(nil, "alice")
	c.Assert(err, qt.IsNil)
	c.Assert(stored, qt.IsNotNil)
	c.Assert(stored.PasswordHash, qt.Not(qt.Equals), "s3cret-pass")
	c.Assert(utils.CheckPassword(stored.PasswordHash, "s3cret-pass"), qt.IsTrue)
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name string
		body gin.H
	}{
		{name: "missing username", body: gin.H{"email": "a@example.com", "password": "s3cret"}},
		{name: "short username", body: gin.H{"username": "ab", "email": "a@example.com", "password": "s3cret"}},
		{name: "bad email", body: gin.H{"username": "alice", "email": "nope", "password": "s3cret"}},
		{name: "short password", body: gin.H{"username": "alice", "email": "a@example.com", "password": "12345"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := qt.New(t)
			r := newAuthRouter(newFakeUserRepo(), 0)
			w, _ := doRequest(t, r, http.MethodPost, "/api/v1/auth/register", tt.body)
			c.Assert(w.Code, qt.Equals, http.StatusBadRequest)
		})
	}
}

func TestRegisterDuplicates(t *testing.T) {
	c := qt.New(t)
	repo := newFakeUserRepo()
	repo.add("alice", "alice@example.com", "hash")
	r := newAuthRouter(repo, 0)

	w, _ := doRequest(t, r, http.MethodPost, "/api/v1/auth/register", gin.H{
		"username": "alice",
		"email":    "other@example.com",
		"password": "s3cret-pass",
	})
	c.Assert(w.Code, qt.Equals, http.StatusConflict)

	w, _ = doRequest(t, r, http.MethodPost, "/api/v1/auth/register", gin.H{
		"username": "alice2",
		"email":    "alice@example.com",
		"password": "s3cret-pass",
	})
	c.Assert(w.Code, qt.Equals, http.StatusConflict)
}

func TestLogin(t *testing.T) {
	c := qt.New(t)
	repo := newFakeUserRepo()
	hash, err := utils.HashPassword("s3cret-pass")
	c.Assert(err, qt.IsNil)
	repo.add("alice", "alice@example.com", hash)
	r := newAuthRouter(repo, 0)

	w, env := doRequest(t, r, http.MethodPost, "/api/v1/auth/login", gin.H{
		"email":    "alice@example.com",
		"password": "s3cret-pass",
	})
	c.Assert(w.Code, qt.Equals, http.StatusOK)

	var data struct {
		Token string `json:"token"`
	}
	c.Assert(json.Unmarshal(env.Data, &data), qt.IsNil)
	c.Assert(data.Token, qt.Not(qt.Equals), "")
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	c := qt.New(t)
	repo := newFakeUserRepo()
	hash, err := utils.HashPassword("s3cret-pass")
	c.Assert(err, qt.IsNil)
	repo.add("alice", "alice@example.com", hash)
	r := newAuthRouter(repo, 0)

	w, _ := doRequest(t, r, http.MethodPost, "/api/v1/auth/login", gin.H{
		"email":    "alice@example.com",
		"password": "wrong",
	})
	c.Assert(w.Code, qt.Equals, http.StatusUnauthorized)

	// unknown email is indistinguishable from a bad password
	w, _ = doRequest(t, r, http.MethodPost, "/api/v1/auth/login", gin.H{
		"email":    "nobody@example.com",
		"password": "s3cret-pass",
	})
	c.Assert(w.Code, qt.Equals, http.StatusUnauthorized)
}

func TestMe(t *testing.T) {
	c := qt.New(t)
	repo := newFakeUserRepo()
	id := repo.add("alice", "alice@example.com", "hash")
	r := newAuthRouter(repo, id)

	w, env := doRequest(t, r, http.MethodGet, "/api/v1/auth/me", nil)
	c.Assert(w.Code, qt.Equals, http.StatusOK)

	var data struct {
		User models.User `json:"user"`
	}
	c.Assert(json.Unmarshal(env.Data, &data), qt.IsNil)
	c.Assert(data.User.Username, qt.Equals, "alice")

	r = newAuthRouter(repo, 999)
	w, _ = doRequest(t, r, http.MethodGet, "/api/v1/auth/me", nil)
	c.Assert(w.Code, qt.Equals, http.StatusNotFound)
}
