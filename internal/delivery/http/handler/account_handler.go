package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/penpalhq/penpals-backend/internal/usecase/account"
)

type AccountHandler struct {
	accountUseCase *account.AccountUseCase
}

func NewAccountHandler(accountUseCase *account.AccountUseCase) *AccountHandler {
	return &AccountHandler{accountUseCase: accountUseCase}
}

// Get handles GET /account
func (h *AccountHandler) Get(c *gin.Context) {
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

// Update handles PUT /account
func (h *AccountHandler) Update(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}

	var req account.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	acc, err := h.accountUseCase.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"msg":     "Account updated successfully",
		"account": acc,
	})
}

// Delete handles DELETE /account
func (h *AccountHandler) Delete(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}

	deletedClassrooms, err := h.accountUseCase.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"msg":                "Account deleted successfully",
		"deleted_classrooms": deletedClassrooms,
	})
}

// Classrooms handles GET /account/classrooms
func (h *AccountHandler) Classrooms(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}

	details, err := h.accountUseCase.GetDetails(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"classrooms":  details.Classrooms,
		"total_count": len(details.Classrooms),
		"account_id":  id,
	})
}

// Stats handles GET /account/stats
func (h *AccountHandler) Stats(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}

	stats, err := h.accountUseCase.Stats(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
