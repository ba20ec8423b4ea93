package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yatube/yatube/utils"
)

const (
	// ContextUserIDKey is the key used to store the authenticated user ID in Gin context.
	ContextUserIDKey = "user_id"
	// ContextUsernameKey stores the username inside Gin context.
	ContextUsernameKey = "username"

	// SessionCookieName is the HTTP-only cookie carrying the signed session token.
	SessionCookieName = "yatube_session"

	// LoginPath is where guests are sent when a route requires identity.
	LoginPath = "/users/login/"
)

// CurrentUser resolves the session cookie into a viewer identity when one is
// present and valid. It never blocks the request; public pages use the
// identity only to personalize (e.g. the profile "following" flag).
func CurrentUser() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, err := ctx.Cookie(SessionCookieName)
		if err != nil || token == "" {
			ctx.Next()
			return
		}
		if utils.IsTokenBlacklisted(token) {
			ctx.Next()
			return
		}
		claims, err := utils.ParseToken(token)
		if err != nil {
			ctx.Next()
			return
		}
		ctx.Set(ContextUserIDKey, claims.UserID)
		ctx.Set(ContextUsernameKey, claims.Username)
		ctx.Next()
	}
}

// LoginRequired redirects guests to the login page with a next parameter
// pointing back at the requested URL. Authenticated requests pass through.
func LoginRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if _, ok := ctx.Get(ContextUserIDKey); !ok {
			ctx.Redirect(http.StatusFound, LoginPath+"?next="+ctx.Request.URL.RequestURI())
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}
