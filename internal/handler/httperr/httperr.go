package httperr

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Code    string `json:"code,omitempty"`
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	AbortWithCode(c, status, err, "", msg, detail)
}

// AbortWithCode additionally attaches a machine-readable error code so clients
// can branch without parsing the message text.
func AbortWithCode(c *gin.Context, status int, err error, code string, msg string, detail any) {
	resp := Response{Status: status}
	resp.Error.Code = code
	resp.Error.Message = msg
	resp.Detail = detail

	if err != nil {
		_ = c.Error(gin.Error{
			Err:  err,
			Type: gin.ErrorTypePublic,
			Meta: resp,
		})
	}
	c.AbortWithStatusJSON(status, resp)
}

// AbortWithRetryAfter sets the Retry-After header (whole seconds, rounded up)
// before writing the error body.
func AbortWithRetryAfter(c *gin.Context, status int, err error, code string, msg string, retryAfter time.Duration) {
	secs := int64(retryAfter / time.Second)
	if retryAfter%time.Second != 0 {
		secs++
	}
	if secs < 1 {
		secs = 1
	}
	c.Header("Retry-After", strconv.FormatInt(secs, 10))
	AbortWithCode(c, status, err, code, msg, nil)
}
