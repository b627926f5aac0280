package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/penpalhq/penpals-backend/internal/usecase/profile"
	"github.com/penpalhq/penpals-backend/internal/usecase/relation"
)

type ProfileHandler struct {
	profileUseCase  *profile.ProfileUseCase
	relationUseCase *relation.RelationUseCase
}

func NewProfileHandler(profileUseCase *profile.ProfileUseCase, relationUseCase *relation.RelationUseCase) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase:  profileUseCase,
		relationUseCase: relationUseCase,
	}
}

func profileParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("profile_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid profile_id"})
		return 0, false
	}
	return id, true
}

// Create handles POST /profiles
func (h *ProfileHandler) Create(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}

	var req profile.CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	created, err := h.profileUseCase.Create(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"msg":     "Profile created successfully",
		"profile": created,
	})
}

// Get handles GET /profiles/:profile_id
func (h *ProfileHandler) Get(c *gin.Context) {
	profileID, ok := profileParam(c)
	if !ok {
		return
	}

	p, err := h.profileUseCase.Get(c.Request.Context(), profileID)
	if err != nil {
		respondError(c, err)
		return
	}

	friends, err := h.relationUseCase.Friends(c.Request.Context(), profileID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile": p,
		"friends": friends.Friends,
	})
}

// Update handles PUT /profiles/:profile_id
func (h *ProfileHandler) Update(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}
	profileID, ok := profileParam(c)
	if !ok {
		return
	}

	var req profile.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	updated, err := h.profileUseCase.Update(c.Request.Context(), id, profileID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"msg":     "Profile updated successfully",
		"profile": updated,
	})
}

// Delete handles DELETE /profiles/:profile_id
func (h *ProfileHandler) Delete(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}
	profileID, ok := profileParam(c)
	if !ok {
		return
	}

	deletedConnections, err := h.profileUseCase.Delete(c.Request.Context(), id, profileID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"msg":                 "Profile deleted successfully",
		"deleted_connections": deletedConnections,
	})
}

// Search handles POST /profiles/search
func (h *ProfileHandler) Search(c *gin.Context) {
	var req profile.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	results, err := h.profileUseCase.Search(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"matched_profiles": results,
		"total_results":    len(results),
	})
}
