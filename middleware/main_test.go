package middleware

import (
	"fmt"
	"os"
	"strconv"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"

	"github.com/yatube/yatube/config"
)

var mr *miniredis.Miniredis

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	var err error
	mr, err = miniredis.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "miniredis: %v\n", err)
		os.Exit(1)
	}
	redisPort, _ := strconv.Atoi(mr.Port())

	config.Set(config.AppConfig{
		SecretKey:          "test-secret",
		RedisHost:          mr.Host(),
		RedisPort:          redisPort,
		RateLimitPerMinute: 1000000,
	})

	code := m.Run()
	mr.Close()
	os.Exit(code)
}
