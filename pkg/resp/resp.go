package resp

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/omarbeegsi189-star/online-food-order-system/pkg/apperr"
)

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "data": data})
}
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, gin.H{"ok": true, "data": data})
}
func BadRequest(c *gin.Context, msg string) {
	fail(c, http.StatusBadRequest, string(apperr.KindValidation), msg)
}
func Unauthorized(c *gin.Context, msg string) {
	fail(c, http.StatusUnauthorized, "unauthorized", msg)
}
func Forbidden(c *gin.Context, msg string) {
	fail(c, http.StatusForbidden, string(apperr.KindForbidden), msg)
}
func ServerError(c *gin.Context) {
	fail(c, http.StatusInternalServerError, string(apperr.KindPersistence), "internal error")
}

// Error renders err by its apperr kind. Persistence failures never leak driver
// detail to the client.
func Error(c *gin.Context, err error) {
	var e *apperr.Error
	if !errors.As(err, &e) {
		_ = c.Error(err)
		ServerError(c)
		return
	}
	_ = c.Error(err)
	msg := err.Error()
	if e.Kind == apperr.KindPersistence {
		msg = "persistence failure, please retry"
	}
	fail(c, apperr.HTTPStatus(e.Kind), string(e.Kind), msg)
}

func fail(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"ok": false, "code": code, "error": msg})
}
