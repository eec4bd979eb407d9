package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSONResponse is the envelope of every API answer.
type JSONResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

// RespondError answers with err as the message. Server errors are also
// logged and attached to the gin context.
func RespondError(c *gin.Context, code int, err error) {
	if code >= http.StatusInternalServerError {
		_ = c.Error(err)
		Error().WithError(err).WithField("path", c.Request.URL.Path).Error("request failed")
	}
	c.JSON(code, JSONResponse{
		Status:  false,
		Message: err.Error(),
	})
}
