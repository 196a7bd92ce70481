package middleware

import "github.com/gin-gonic/gin"

// NoStore disables response caching on every route. Balances are sensitive
// and must never be served stale from a shared cache.
func NoStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
		c.Header("Pragma", "no-cache")
		c.Header("Expires", "0")
		c.Next()
	}
}
