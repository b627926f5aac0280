package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/penpalhq/penpals-backend/internal/usecase/account"
)

type AuthHandler struct {
	accountUseCase *account.AccountUseCase
}

func NewAuthHandler(accountUseCase *account.AccountUseCase) *AuthHandler {
	return &AuthHandler{accountUseCase: accountUseCase}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req account.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	acc, err := h.accountUseCase.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"msg":        "Account created successfully",
		"account_id": acc.ID,
	})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req account.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	token, acc, err := h.accountUseCase.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"account_id":   acc.ID,
	})
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	v, exists := c.Get("token_claims")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}
	claims := v.(*account.TokenClaims)

	if err := h.accountUseCase.Logout(c.Request.Context(), claims.JTI, claims.ExpiresAt); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Logged out"})
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}

	details, err := h.accountUseCase.GetDetails(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, details)
}
