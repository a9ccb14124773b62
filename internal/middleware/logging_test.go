package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRequestLogger_PreservesBodies(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestLogger())
	r.POST("/echo", func(c *gin.Context) {
		b, _ := io.ReadAll(c.Request.Body)
		c.String(http.StatusOK, string(b))
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"query":"hello"}`)))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, `{"query":"hello"}`, rr.Body.String())
}

func TestBodyLogWriter_CapsCapturedBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	var captured string
	r.Use(func(c *gin.Context) {
		c.Next()
		if w, ok := c.Writer.(*bodyLogWriter); ok {
			captured = w.body.String()
		}
	})
	r.Use(RequestLogger())
	long := strings.Repeat("a", maxLoggedBody+10)
	r.GET("/long", func(c *gin.Context) {
		c.String(http.StatusOK, long)
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/long", http.NoBody))

	assert.Equal(t, long, rr.Body.String())
	assert.Len(t, captured, maxLoggedBody)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate([]byte("abc")))
	assert.Equal(t, strings.Repeat("x", maxLoggedBody)+"...", truncate([]byte(strings.Repeat("x", maxLoggedBody+1))))
}
