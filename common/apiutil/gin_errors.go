package apiutil

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GenericFailureMessage is the only failure text callers ever see
const GenericFailureMessage = "An error occurred"

// WriteGenericFailure logs err and answers 500 with a plain-text body.
// The cause is attached to the gin context for the access log, never to
// the response.
func WriteGenericFailure(c *gin.Context, logger *zap.Logger, err error) {
	logger.Error("Error", zap.String("path", c.FullPath()), zap.Error(err))
	_ = c.Error(err)
	c.String(http.StatusInternalServerError, GenericFailureMessage)
}
