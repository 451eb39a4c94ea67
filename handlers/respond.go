package handlers

import (
	"errors"
	"net/http"

	"tourbook/middleware"
	"tourbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// statusRule maps a service error to the status it is reported with.
type statusRule struct {
	err    error
	status int
}

// respondError writes the first matching rule's status with the error text.
// Unmatched errors are logged and hidden behind a generic 500.
func respondError(c *gin.Context, err error, rules ...statusRule) {
	for _, r := range rules {
		if errors.Is(err, r.err) {
			utils.JSONError(c, r.status, err.Error())
			return
		}
	}
	getLogger(c).Error("Request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error")
}

func badRequest(c *gin.Context, err error) {
	getLogger(c).Debug("Invalid request body", zap.Error(err))
	utils.JSONError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
}

// success writes {"status":"success", ...body}.
func success(c *gin.Context, status int, body gin.H) {
	if body == nil {
		body = gin.H{}
	}
	body["status"] = "success"
	c.JSON(status, body)
}

// mustSession is only used behind JWTAuthMiddleware; a missing session aborts with 401.
func mustSession(c *gin.Context) (*middleware.Session, bool) {
	sess, ok := middleware.SessionFrom(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, middleware.ErrUnauthenticated.Error())
		return nil, false
	}
	return sess, true
}
