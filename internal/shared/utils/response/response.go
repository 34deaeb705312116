package response

import "github.com/gin-gonic/gin"

// StandardApiResponse is the envelope every endpoint answers with, success
// and error alike, so clients parse one shape.
type StandardApiResponse struct {
	Status     string      `json:"status"`
	StatusCode int         `json:"status_code"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
	Errors     interface{} `json:"errors,omitempty"`
}

// RespondJSON writes the envelope. Status is "success" or "error"; data and
// errors are mutually exclusive in practice but not enforced.
func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}
