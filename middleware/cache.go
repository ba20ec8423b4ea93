package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yatube/yatube/utils"
)

// CachePage serves a previously rendered response body from Redis for ttl,
// keyed by request URI so each ?page= window caches separately. The cache is
// never invalidated on writes; entries simply expire. Only successful
// responses are stored.
//
// Pages carry viewer-specific chrome, so only guest requests touch the
// cache; authenticated viewers always render fresh.
func CachePage(ttl time.Duration) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if _, ok := ctx.Get(ContextUserIDKey); ok {
			ctx.Next()
			return
		}

		key := utils.PageCachePrefix + ctx.Request.URL.RequestURI()
		if b, ok := utils.CacheGetBytes(key); ok {
			ctx.Data(http.StatusOK, "text/html; charset=utf-8", b)
			ctx.Abort()
			return
		}

		w := &bodyCaptureWriter{ResponseWriter: ctx.Writer}
		ctx.Writer = w
		ctx.Next()

		if w.Status() == http.StatusOK {
			utils.CacheSetBytes(key, w.body.Bytes(), ttl)
		}
	}
}

// bodyCaptureWriter tees the rendered body so it can be stored after the
// handler completes.
type bodyCaptureWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyCaptureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyCaptureWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
