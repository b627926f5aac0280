package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/penpalhq/penpals-backend/internal/domain"
	"github.com/penpalhq/penpals-backend/internal/usecase/account"
	"github.com/penpalhq/penpals-backend/internal/usecase/matching"
	"github.com/penpalhq/penpals-backend/internal/usecase/profile"
)

// ErrorResponse represents error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError maps usecase errors onto HTTP status codes. Unknown
// errors become opaque 500s so internals never leak to clients.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrProfileNotFound),
		errors.Is(err, domain.ErrPostNotFound),
		errors.Is(err, domain.ErrRelationNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrRelationExists):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrNotProfileOwner):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrSelfRelation),
		errors.Is(err, account.ErrWeakPassword),
		errors.Is(err, profile.ErrInvalidAvailability),
		errors.Is(err, matching.ErrEmptyQuery):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}

// accountID pulls the authenticated account id set by the auth
// middleware; aborts with 401 when missing.
func accountID(c *gin.Context) (int, bool) {
	v, exists := c.Get("account_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return 0, false
	}
	return v.(int), true
}
