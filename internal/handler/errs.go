package handler

import (
	"errors"
	"net/http"

	"Orbit_Community/internal/pkg"

	"github.com/gin-gonic/gin"
)

// httpStatus 业务错误分类 → HTTP 状态码，core 内部不感知传输层
func httpStatus(err error) int {
	switch {
	case errors.Is(err, pkg.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, pkg.ErrForbidden), errors.Is(err, pkg.ErrImmutableOwner):
		return http.StatusForbidden
	case errors.Is(err, pkg.ErrAlreadyMember):
		return http.StatusConflict
	case errors.Is(err, pkg.ErrPrerequisiteNotMet),
		errors.Is(err, pkg.ErrAttendanceDisabled),
		errors.Is(err, pkg.ErrInvalidState):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	c.JSON(httpStatus(err), gin.H{"msg": err.Error()})
}

func pathID(c *gin.Context, name string) (uint64, bool) {
	id, err := parseUint(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid " + name})
		return 0, false
	}
	return id, true
}
