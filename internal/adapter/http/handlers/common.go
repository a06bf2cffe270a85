package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"fieldservice_billing/internal/infrastructure/logger"
	"fieldservice_billing/pkg"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	errInvalidPayload = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request payload", http.StatusBadRequest)
	errMissingID      = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Missing resource id", http.StatusBadRequest)
)

// now is the clock used to derive effective quote status in responses.
var now = func() time.Time { return time.Now().UTC() }

func pathID(c *gin.Context, name string) (string, bool) {
	id := strings.TrimSpace(c.Param(name))
	if id == "" {
		c.JSON(errMissingID.HTTPStatus, errMissingID.ToHTTPError())
		return "", false
	}
	return id, true
}

// bind decodes the JSON body into dst. An empty body is accepted when
// optional is true.
func bind(c *gin.Context, dst any, optional bool) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if optional && errors.Is(err, io.EOF) {
			return true
		}
		logger.FromContext(c.Request.Context()).Debug("[http][handler] invalid payload", zap.Error(err))
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return false
	}
	return true
}

func respondError(c *gin.Context, area string, err error) {
	appErr := pkg.FromDomain(err)
	log := logger.FromContext(c.Request.Context())
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		log.Error("["+area+"][handler] request failed", zap.String("code", appErr.Code), zap.Error(err))
	} else {
		log.Info("["+area+"][handler] request rejected", zap.String("code", appErr.Code), zap.Error(err))
	}
	_ = c.Error(err)
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}
