package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-heatmap/internal/adapters/dateformat"
	adapterHTTP "github.com/comitanigiacomo/kanso-heatmap/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-heatmap/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-heatmap/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-heatmap/internal/core/services"
)

var testNow = time.Date(2024, time.May, 6, 10, 0, 0, 0, time.UTC)

// fakeAuth trusts X-User-ID so handler tests do not need tokens.
func fakeAuth(c *gin.Context) {
	if id := c.GetHeader("X-User-ID"); id != "" {
		c.Set(middleware.ContextUserIDKey, id)
	}
	c.Next()
}

func setupRouter() (*gin.Engine, *repository.InMemoryEntityStore) {
	gin.SetMode(gin.TestMode)

	store := repository.NewInMemoryEntityStore()
	formatter := dateformat.New(time.UTC)
	clock := func() time.Time { return testNow }

	entityHandler := adapterHTTP.NewEntityHandler(
		services.NewEntityService(store, formatter, "en").WithClock(clock), formatter)
	heatmapHandler := adapterHTTP.NewHeatmapHandler(
		services.NewHeatmapService(store, formatter, "en").WithClock(clock))

	r := gin.New()
	api := r.Group("/api/v1")
	api.Use(fakeAuth)
	entityHandler.RegisterRoutes(api)
	heatmapHandler.RegisterRoutes(api)
	return r, store
}

func do(r *gin.Engine, method, path, user, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req, _ = http.NewRequest(method, path, nil)
	} else {
		req, _ = http.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if user != "" {
		req.Header.Set("X-User-ID", user)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
}
