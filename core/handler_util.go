package core

import "github.com/gin-gonic/gin"

// respond writes the unified envelope {"status","message","data"} with a
// null data payload. The envelope status mirrors the HTTP status.
func respond(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"status": status, "message": message, "data": nil})
}

// respondData writes the unified envelope with a data payload and no message.
func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"status": status, "message": nil, "data": data})
}
