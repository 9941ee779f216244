package middleware

import (
	"crypto/subtle"
	"net/http"

	"bloomfundr-settlement/internal/constant"
	"bloomfundr-settlement/internal/utils"

	"github.com/gin-gonic/gin"
)

const InternalTokenHeader = "X-Internal-Token"

// InternalAuth guards operator and simulation endpoints with a shared token.
// An empty configured token rejects every request.
func InternalAuth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got := c.GetHeader(InternalTokenHeader)
		if token == "" || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			resp := utils.Error(constant.CodeTokenInvalid)
			resp.TraceID = TraceID(c)
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp)
			return
		}
		c.Next()
	}
}
