package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/penpalhq/penpals-backend/internal/usecase/post"
)

type PostHandler struct {
	postUseCase *post.PostUseCase
}

func NewPostHandler(postUseCase *post.PostUseCase) *PostHandler {
	return &PostHandler{postUseCase: postUseCase}
}

func postParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("post_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid post_id"})
		return 0, false
	}
	return id, true
}

// Create handles POST /posts
func (h *PostHandler) Create(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}

	var req post.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	created, err := h.postUseCase.Create(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"msg":  "Post created successfully",
		"post": created,
	})
}

// Get handles GET /posts/:post_id
func (h *PostHandler) Get(c *gin.Context) {
	postID, ok := postParam(c)
	if !ok {
		return
	}

	p, err := h.postUseCase.Get(c.Request.Context(), postID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// Update handles PUT /posts/:post_id
func (h *PostHandler) Update(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}
	postID, ok := postParam(c)
	if !ok {
		return
	}

	var req post.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	updated, err := h.postUseCase.Update(c.Request.Context(), id, postID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"msg":  "Post updated successfully",
		"post": updated,
	})
}

// Delete handles DELETE /posts/:post_id
func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}
	postID, ok := postParam(c)
	if !ok {
		return
	}

	if err := h.postUseCase.Delete(c.Request.Context(), id, postID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Post deleted successfully"})
}
