package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/prasadasw/examportal/internal/middleware"
	"github.com/prasadasw/examportal/internal/pkg/apperrors"
)

// principalID returns the authenticated principal id set by the auth
// middleware.
func principalID(ctx *gin.Context) (int64, error) {
	id, ok := middleware.PrincipalID(ctx)
	if !ok {
		return 0, apperrors.ErrTokenInvalid
	}
	return id, nil
}

// pathID parses a numeric path parameter.
func pathID(ctx *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("Invalid " + name + " parameter")
	}
	return id, nil
}

// pagination reads page/pageSize query parameters. Out-of-range values are
// clamped downstream.
func pagination(ctx *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ = strconv.Atoi(ctx.DefaultQuery("pageSize", "20"))
	return page, pageSize
}

// optionalIDQuery parses an optional numeric query parameter.
func optionalIDQuery(ctx *gin.Context, name string) (*int64, error) {
	raw := ctx.Query(name)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, apperrors.NewValidationError("Invalid " + name + " parameter")
	}
	return &id, nil
}
