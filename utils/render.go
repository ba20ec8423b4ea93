package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NotFoundPage renders the shared 404 page for unknown routes, slugs,
// usernames and post ids.
func NotFoundPage(ctx *gin.Context) {
	ctx.HTML(http.StatusNotFound, "404.html", gin.H{
		"Path": ctx.Request.URL.Path,
	})
	ctx.Abort()
}

// CSRFFailurePage renders the 403 page shown when the CSRF check fails.
func CSRFFailurePage(ctx *gin.Context) {
	ctx.HTML(http.StatusForbidden, "csrf_failure.html", gin.H{})
	ctx.Abort()
}
