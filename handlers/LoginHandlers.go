package handlers

import (
	"log"
	"net/http"
	"strings"

	"feasibility/models"
	"feasibility/utils"

	"github.com/gin-gonic/gin"
)

const adminContextKey = "admin"

// AdminLogin handles admin authentication
// @Summary Login admin
// @Description Authenticate the rules administrator and return an access token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login credentials"
// @Success 200 {object} models.LoginResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /api/login [post]
func AdminLogin(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		if env.Auth.JWTSecret == "" || env.Auth.AdminPasswordHash == "" {
			utils.ErrorResponse(c, http.StatusServiceUnavailable, "admin login is disabled", "JWT_SECRET and ADMIN_PASSWORD_HASH must be set")
			return
		}

		var req models.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err.Error())
			return
		}

		if req.Username != env.Auth.AdminUser || !utils.ValidatePassword(env.Auth.AdminPasswordHash, req.Password) {
			log.Printf("[auth] failed login for %q from %s", req.Username, c.ClientIP())
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid credentials", "")
			return
		}

		token, err := utils.GenerateJWT(req.Username, env.Auth.JWTSecret)
		if err != nil {
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to generate token", err.Error())
			return
		}

		c.JSON(http.StatusOK, models.LoginResponse{
			Message:     "Login successful",
			AccessToken: token,
			ExpiresIn:   int(utils.AccessTokenTTL.Seconds()),
		})
	}
}

// RequireAdmin rejects requests without a valid admin bearer token.
func RequireAdmin(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Missing Authorization header", "")
			c.Abort()
			return
		}

		const bearerPrefix = "Bearer "
		token := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
		if token == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Authorization header missing token", "")
			c.Abort()
			return
		}

		sub, err := utils.ValidateJWT(token, env.Auth.JWTSecret)
		if err != nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid token", err.Error())
			c.Abort()
			return
		}
		if sub != env.Auth.AdminUser {
			utils.ErrorResponse(c, http.StatusForbidden, "Not an administrator", "")
			c.Abort()
			return
		}

		c.Set(adminContextKey, sub)
		c.Next()
	}
}
