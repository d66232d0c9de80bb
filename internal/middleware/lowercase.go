package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// caseSensitivePrefixes lists path prefixes whose trailing segment must keep
// its case: static assets map to case-sensitive filenames on disk, and
// receipt URLs embed gateway payment ids that are matched exactly against the
// payment history.
var caseSensitivePrefixes = []string{
	"/static/",
	"/hostel/receipt/",
	"/fees/receipt/",
}

// LowercasePath redirects page requests whose path contains uppercase
// characters to the lowercase equivalent, so /Hostel and /HOSTEL land on
// /hostel. Only GETs are considered: the JSON action and payment-callback
// endpoints are all POSTs, and a redirect would drop their bodies. Paths
// carrying case-sensitive identifiers are passed through as-is.
func LowercasePath() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		path := c.Request.URL.Path
		lower := strings.ToLower(path)
		if lower == path {
			c.Next()
			return
		}
		for _, prefix := range caseSensitivePrefixes {
			if strings.HasPrefix(lower, prefix) {
				c.Next()
				return
			}
		}

		target := lower
		if raw := c.Request.URL.RawQuery; raw != "" {
			target += "?" + raw
		}
		c.Redirect(http.StatusMovedPermanently, target)
		c.Abort()
	}
}
