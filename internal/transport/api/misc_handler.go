package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	HomeText     = "LMS Backend is Running Successfully!"
	PongText     = "Pong"
	NotFoundText = "OOPS!! 404 page not found"
)

func Home(c *gin.Context) {
	c.String(http.StatusOK, HomeText)
}

func Ping(c *gin.Context) {
	c.String(http.StatusOK, PongText)
}

func NotFound(c *gin.Context) {
	c.String(http.StatusNotFound, NotFoundText)
}
