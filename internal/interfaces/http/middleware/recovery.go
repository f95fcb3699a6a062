package middleware

import (
	"net"
	"net/http/httputil"
	"os"
	"runtime/debug"
	"strings"

	"github.com/gin-gonic/gin"

	"inkwell/internal/resource/jsonapi"
	"inkwell/internal/shared/logger"
)

// Recovery turns panics into opaque server errors. Broken client connections
// are logged and dropped without a response body.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		if checkBrokenConnection(recovered) {
			logger.Error("connection broken during request",
				"path", c.Request.URL.Path,
				"method", c.Request.Method,
				"error", recovered)
			c.Abort()
			return
		}

		httpRequest, _ := httputil.DumpRequest(c.Request, false)
		headers := strings.Split(string(httpRequest), "\r\n")
		for idx, header := range headers {
			current := strings.Split(header, ":")
			if current[0] == "Authorization" {
				headers[idx] = current[0] + ": *"
			}
		}

		logger.Error("panic recovered",
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"headers", headers,
			"error", recovered,
			"stack", string(debug.Stack()))

		jsonapi.ServerError(c)
		c.Abort()
	})
}

func checkBrokenConnection(recovered interface{}) bool {
	netErr, ok := recovered.(*net.OpError)
	if !ok {
		return false
	}

	sysErr, ok := netErr.Err.(*os.SyscallError)
	if !ok {
		return false
	}

	errMsg := strings.ToLower(sysErr.Error())
	return strings.Contains(errMsg, "broken pipe") ||
		strings.Contains(errMsg, "connection reset by peer")
}
