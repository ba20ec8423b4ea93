package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	csrf "github.com/utrack/gin-csrf"

	"github.com/yatube/yatube/config"
	"github.com/yatube/yatube/middleware"
	"github.com/yatube/yatube/utils"
)

// currentUserID returns the authenticated viewer's ID from the request context.
func currentUserID(ctx *gin.Context) (uint, bool) {
	value, exists := ctx.Get(middleware.ContextUserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok
}

func currentUsername(ctx *gin.Context) string {
	value, _ := ctx.Get(middleware.ContextUsernameKey)
	name, _ := value.(string)
	return name
}

// render writes an HTML page with the shared viewer context filled in.
func render(ctx *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Viewer"] = currentUsername(ctx)
	ctx.HTML(status, name, data)
}

// csrfToken returns the per-session CSRF token for form templates.
func csrfToken(ctx *gin.Context) string {
	if config.Get().DisableCSRF {
		return ""
	}
	return csrf.GetToken(ctx)
}

// serverError logs the failure and answers with a plain 500.
func serverError(ctx *gin.Context, err error) {
	if utils.Sugar != nil {
		utils.Sugar.Errorf("internal error on %s: %v", ctx.Request.URL.Path, err)
	}
	ctx.String(http.StatusInternalServerError, "internal server error")
	ctx.Abort()
}

// safeNext keeps post-login redirects on-site.
func safeNext(next string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return "/"
}
