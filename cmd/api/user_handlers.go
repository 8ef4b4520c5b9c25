package main

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mercatto/storefront/internal/config"
	"github.com/mercatto/storefront/internal/httpx"
	"github.com/mercatto/storefront/internal/user"
)

func registerHandler(users user.Repository, cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req user.RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.Fail(c, http.StatusBadRequest, "name, a valid email and a password of at least 8 characters are required")
			return
		}
		hash, err := user.HashPassword(req.Password)
		if err != nil {
			log.Printf("[user] hash: %v", err)
			httpx.Fail(c, http.StatusInternalServerError, "something went wrong")
			return
		}
		u := &user.User{
			ID:           uuid.NewString(),
			Name:         req.Name,
			Email:        req.Email,
			PasswordHash: hash,
		}
		if err := users.Create(c.Request.Context(), u); err != nil {
			if errors.Is(err, user.ErrAlreadyExist) {
				httpx.Fail(c, http.StatusConflict, "user already exists")
				return
			}
			log.Printf("[user] create: %v", err)
			httpx.Fail(c, http.StatusInternalServerError, "something went wrong")
			return
		}
		token, err := user.IssueToken(cfg.JWTSecret, u.ID, user.RoleUser, cfg.TokenTTL)
		if err != nil {
			log.Printf("[user] token: %v", err)
			httpx.Fail(c, http.StatusInternalServerError, "something went wrong")
			return
		}
		httpx.OK(c, http.StatusCreated, gin.H{"token": token})
	}
}

func loginHandler(users user.Repository, cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req user.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.Fail(c, http.StatusBadRequest, "email and password are required")
			return
		}
		u, err := users.GetByEmail(c.Request.Context(), req.Email)
		if err != nil || !user.CheckPassword(u.PasswordHash, req.Password) {
			httpx.Fail(c, http.StatusUnauthorized, "invalid credentials")
			return
		}
		token, err := user.IssueToken(cfg.JWTSecret, u.ID, user.RoleUser, cfg.TokenTTL)
		if err != nil {
			log.Printf("[user] token: %v", err)
			httpx.Fail(c, http.StatusInternalServerError, "something went wrong")
			return
		}
		httpx.OK(c, http.StatusOK, gin.H{"token": token})
	}
}

// adminLoginHandler exchanges the configured admin credentials for an
// admin-role token. There is no admin record in the database.
func adminLoginHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req user.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.Fail(c, http.StatusBadRequest, "email and password are required")
			return
		}
		if cfg.AdminEmail == "" || req.Email != cfg.AdminEmail || req.Password != cfg.AdminPassword {
			httpx.Fail(c, http.StatusUnauthorized, "invalid credentials")
			return
		}
		token, err := user.IssueToken(cfg.JWTSecret, cfg.AdminEmail, user.RoleAdmin, cfg.TokenTTL)
		if err != nil {
			log.Printf("[user] token: %v", err)
			httpx.Fail(c, http.StatusInternalServerError, "something went wrong")
			return
		}
		httpx.OK(c, http.StatusOK, gin.H{"token": token})
	}
}
