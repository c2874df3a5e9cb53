package api

import "github.com/gin-gonic/gin"

// errBody is the JSON shape for every error response: {"error": "..."}.
type errBody struct {
	Error string `json:"error"`
}

func jsonError(c *gin.Context, status int, message string) {
	c.JSON(status, errBody{Error: message})
}
