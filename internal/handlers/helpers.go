package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"resto_pos_backend/internal/middleware"
	"resto_pos_backend/internal/services"
	"resto_pos_backend/pkg/utils"
)

// parseIDParam reads a positive int64 path parameter, responding with 400
// itself when the value is malformed.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid "+name+" parameter.", "must be a positive integer"))
		return 0, false
	}
	return id, true
}

// actorFromContext builds the request-scoped authorization context from
// the claims stored by the auth middleware.
func actorFromContext(c *gin.Context) (services.Actor, bool) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Authentication required.", ""))
		return services.Actor{}, false
	}
	return services.Actor{
		UserID:      claims.UserID,
		Username:    claims.Username,
		Permissions: claims.Permissions,
	}, true
}

// pagination reads page/page_size query parameters with sane defaults.
func pagination(c *gin.Context) (page, pageSize int) {
	page = 1
	pageSize = 20
	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(c.Query("page_size")); err == nil && v > 0 && v <= 100 {
		pageSize = v
	}
	return page, pageSize
}
