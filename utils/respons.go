package utils

import (
	"github.com/gin-gonic/gin"
)

// JSONResponse is the envelope every storefront endpoint answers with.
// Status is true exactly when the HTTP code is 2xx.
type JSONResponse struct {
	Status    bool        `json:"status"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Status:    code >= 200 && code < 300,
		Message:   message,
		Data:      data,
		RequestID: c.GetHeader("X-Request-ID"),
	})
}

// RespondError answers with err's message and no data. The error is also
// attached to the gin context so the request logger reports it.
func RespondError(c *gin.Context, code int, err error) {
	c.Error(err)
	c.JSON(code, JSONResponse{
		Status:    false,
		Message:   err.Error(),
		RequestID: c.GetHeader("X-Request-ID"),
	})
}
