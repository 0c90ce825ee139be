package respond

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// IDParam parses a positive integer path parameter, answering 422 when it is not one.
func IDParam(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		Error(c, http.StatusUnprocessableEntity, name+" must be a positive integer")
		return 0, false
	}
	return id, true
}

// BindJSON binds the body into req, answering 422 when binding or validation fails.
func BindJSON(c *gin.Context, req any) bool {
	RegisterValidators()
	if err := c.ShouldBindJSON(req); err != nil {
		Error(c, http.StatusUnprocessableEntity, validationMessage(err))
		return false
	}
	return true
}

// QueryID parses an optional positive integer query parameter. ok is false after a 422 was sent.
func QueryID(c *gin.Context, name string) (id int64, present bool, ok bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, false, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		Error(c, http.StatusUnprocessableEntity, name+" must be a positive integer")
		return 0, true, false
	}
	return id, true, true
}
