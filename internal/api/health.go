package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"imagecdn/internal/applog"
	"imagecdn/internal/firewall"
)

// health implements GET /health — spec.md §4.4, guarded by the bearer
// secret, not the IP allowlist.
func (d Deps) health(c *gin.Context) {
	if !firewall.CheckBearer(c.Request, firewall.Secret()) {
		applog.Warn("rejected health check with bad or missing bearer secret")
		jsonError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	health, err := d.Cdn.CacheHealth(c.Request.Context())
	if err != nil {
		jsonError(c, http.StatusInternalServerError, "Error reading from redis")
		return
	}

	c.JSON(http.StatusOK, health)
}
