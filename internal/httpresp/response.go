package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func OK(c *gin.Context, data gin.H) {
	data["success"] = true
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data gin.H) {
	data["success"] = true
	c.JSON(http.StatusCreated, data)
}
