package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddleware_RecordsDurationAndCount(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/api/test/:id", func(c *gin.Context) {
		c.String(http.StatusTeapot, "ok")
	})

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/api/test/:id", "418"))

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/test/42", http.NoBody))

	assert.Equal(t, http.StatusTeapot, rr.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/api/test/:id", "418")))
	assert.Positive(t, testutil.CollectAndCount(httpRequestDuration))
}

func TestMiddleware_UnknownRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "unknown", "404"))

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/nope", http.NoBody))

	assert.Equal(t, before+1, testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "unknown", "404")))
}

func TestObserveLyricsFetch(t *testing.T) {
	before := testutil.ToFloat64(lyricsFetchTotal.WithLabelValues(LyricsResultFetched))
	ObserveLyricsFetch(LyricsResultFetched)
	assert.Equal(t, before+1, testutil.ToFloat64(lyricsFetchTotal.WithLabelValues(LyricsResultFetched)))
}
