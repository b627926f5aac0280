package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/penpalhq/penpals-backend/internal/usecase/relation"
)

type RelationHandler struct {
	relationUseCase *relation.RelationUseCase
}

func NewRelationHandler(relationUseCase *relation.RelationUseCase) *RelationHandler {
	return &RelationHandler{relationUseCase: relationUseCase}
}

type connectRequest struct {
	FromProfileID int `json:"from_profile_id" binding:"required"`
}

// Connect handles POST /profiles/:profile_id/connect
func (h *RelationHandler) Connect(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}
	toProfileID, ok := profileParam(c)
	if !ok {
		return
	}

	var req connectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if err := h.relationUseCase.Connect(c.Request.Context(), id, req.FromProfileID, toProfileID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"msg":             "Profiles connected successfully",
		"from_profile_id": req.FromProfileID,
		"to_profile_id":   toProfileID,
	})
}

// Disconnect handles DELETE /profiles/:profile_id/disconnect
func (h *RelationHandler) Disconnect(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}
	toProfileID, ok := profileParam(c)
	if !ok {
		return
	}

	var req connectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if err := h.relationUseCase.Disconnect(c.Request.Context(), id, req.FromProfileID, toProfileID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Profiles disconnected successfully"})
}

// Friends handles GET /profiles/:profile_id/friends
func (h *RelationHandler) Friends(c *gin.Context) {
	profileID, ok := profileParam(c)
	if !ok {
		return
	}

	list, err := h.relationUseCase.Friends(c.Request.Context(), profileID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}
