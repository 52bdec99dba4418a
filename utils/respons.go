package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type JSONResponse struct {
	Status  bool              `json:"status"`
	Message string            `json:"message"`
	Data    interface{}       `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, err error) {
	c.JSON(code, JSONResponse{
		Status:  false,
		Message: err.Error(),
		Data:    nil,
	})
}

// RespondAppError memetakan AppError ke status code + envelope. Cause dari
// TransactionFailed hanya masuk log, tidak ikut ke response body.
func RespondAppError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		ErrorLogger.Printf("unexpected error: %v", err)
		c.JSON(http.StatusInternalServerError, JSONResponse{
			Status:  false,
			Message: "internal server error",
		})
		return
	}

	if appErr.Kind == ErrTransactionFailed {
		ErrorLogger.Printf("transaction failed: %v", appErr.Cause)
	}

	c.JSON(appErr.HTTPStatus(), JSONResponse{
		Status:  false,
		Message: appErr.Message,
		Errors:  appErr.Fields,
	})
}
