package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/penpalhq/penpals-backend/internal/infrastructure/vectorindex"
)

// DocumentHandler exposes the raw vector collection for diagnostics and
// bulk maintenance. Responses carry the index's result envelopes as-is.
type DocumentHandler struct {
	index *vectorindex.Index
}

func NewDocumentHandler(index *vectorindex.Index) *DocumentHandler {
	return &DocumentHandler{index: index}
}

type uploadDocumentsRequest struct {
	Documents []string                 `json:"documents" binding:"required,min=1"`
	Metadatas []map[string]interface{} `json:"metadatas"`
	IDs       []string                 `json:"ids"`
}

type queryDocumentsRequest struct {
	Query    string                 `json:"query" binding:"required"`
	NResults int                    `json:"n_results"`
	Where    map[string]interface{} `json:"where"`
}

type deleteDocumentsRequest struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}

type updateDocumentRequest struct {
	ID       string                 `json:"id" binding:"required"`
	Document string                 `json:"document" binding:"required"`
	Metadata map[string]interface{} `json:"metadata"`
}

// Upload handles POST /documents/upload
func (h *DocumentHandler) Upload(c *gin.Context) {
	var req uploadDocumentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result := h.index.Add(c.Request.Context(), req.Documents, req.Metadatas, req.IDs)
	if result.Status != vectorindex.StatusSuccess {
		c.JSON(http.StatusInternalServerError, result)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// Query handles POST /documents/query
func (h *DocumentHandler) Query(c *gin.Context) {
	var req queryDocumentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	if req.NResults <= 0 {
		req.NResults = 5
	}

	result := h.index.Query(c.Request.Context(), req.Query, req.NResults, req.Where)
	if result.Status != vectorindex.StatusSuccess {
		c.JSON(http.StatusInternalServerError, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Delete handles DELETE /documents
func (h *DocumentHandler) Delete(c *gin.Context) {
	var req deleteDocumentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result := h.index.Delete(c.Request.Context(), req.IDs)
	if result.Status != vectorindex.StatusSuccess {
		c.JSON(http.StatusInternalServerError, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Update handles PUT /documents
func (h *DocumentHandler) Update(c *gin.Context) {
	var req updateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result := h.index.Update(c.Request.Context(), req.ID, req.Document, req.Metadata)
	if result.Status != vectorindex.StatusSuccess {
		c.JSON(http.StatusInternalServerError, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Info handles GET /documents/info
func (h *DocumentHandler) Info(c *gin.Context) {
	result := h.index.Info(c.Request.Context())
	if result.Status != vectorindex.StatusSuccess {
		c.JSON(http.StatusInternalServerError, result)
		return
	}
	c.JSON(http.StatusOK, result)
}
