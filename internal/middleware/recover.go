package middleware

import (
	"net/http"
	"runtime/debug"

	"bloomfundr-settlement/internal/constant"
	"bloomfundr-settlement/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func Recover(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.WithFields(logrus.Fields{
					"path":     c.Request.URL.Path,
					"trace_id": TraceID(c),
					"stack":    string(debug.Stack()),
				}).Errorf("[HTTP] panic: %v", r)
				resp := utils.Error(constant.CodeSystemError)
				resp.TraceID = TraceID(c)
				c.AbortWithStatusJSON(http.StatusInternalServerError, resp)
			}
		}()
		c.Next()
	}
}
