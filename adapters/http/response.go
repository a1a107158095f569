package http

import "github.com/gin-gonic/gin"

// respond writes the uniform success envelope.
func respond(c *gin.Context, status int, data gin.H) {
	c.JSON(status, gin.H{"success": true, "data": data})
}
