package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devusSs/hostbridge/internal/server/responses"
)

// NoRoute handles requests with invalid routes
func NoRoute(c *gin.Context) {
	resp := responses.Error{
		Code:         http.StatusNotFound,
		ErrorCode:    responses.CodeNotFound,
		ErrorMessage: "The requested resource was not found",
	}
	c.JSON(resp.Code, resp)
}

// NoMethod handles requests with invalid methods
func NoMethod(c *gin.Context) {
	resp := responses.Error{
		Code:         http.StatusMethodNotAllowed,
		ErrorCode:    responses.CodeMethodNotAllowed,
		ErrorMessage: "The requested method is not allowed",
	}
	c.JSON(resp.Code, resp)
}

// HomeRoute handles requests to the home route
func HomeRoute(c *gin.Context) {
	resp := responses.Success{
		Code: http.StatusOK,
		Data: "hostbridge API",
	}
	c.JSON(resp.Code, resp)
}

func success(c *gin.Context, data interface{}) {
	resp := responses.Success{
		Code: http.StatusOK,
		Data: data,
	}
	c.JSON(resp.Code, resp)
}

func failure(c *gin.Context, code int, errorCode string, err error) {
	resp := responses.Error{
		Code:         code,
		ErrorCode:    errorCode,
		ErrorMessage: err.Error(),
	}
	c.JSON(resp.Code, resp)
}
