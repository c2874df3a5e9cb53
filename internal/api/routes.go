// Package api mounts the route surface and implements the ingest, read and
// health handlers described in spec.md §4.4-§4.7.
package api

import (
	"regexp"

	"github.com/gin-gonic/gin"

	"imagecdn/internal/cdn"
	"imagecdn/internal/config"
	"imagecdn/internal/signature"
)

// filenamePattern matches "{(a_)?hash:40hex}.{png|gif}" — the router-level
// constraint spec.md §4.4 places on the read route. Gin's router does not
// support per-segment regexes the way the original's framework does, so
// readHandler enforces this gate itself, before any other work, producing
// the same 404-and-stop behavior a router-level rejection would.
var filenamePattern = regexp.MustCompile(`^(a_)?([0-9a-fA-F]{40})\.(png|gif)$`)

// Deps bundles what every handler needs: the connected cache/storage
// handle, the firewall policy and the signature verifier.
type Deps struct {
	Cdn      *cdn.Connected
	Firewall config.Firewall
	Verifier *signature.Verifier
}

// NewRouter builds the gin engine with CORS (any origin, no credentials)
// and the three route groups.
func NewRouter(deps Deps) *gin.Engine {
	r := gin.Default()

	r.Use(corsMiddleware())

	r.GET("/health", deps.health)
	r.GET("/:class/:id/:filename", deps.read)
	r.POST("/:class/:id", deps.ingest)

	return r
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
