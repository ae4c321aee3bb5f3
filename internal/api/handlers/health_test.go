package handlers_test

import (
	"net/http"
	"testing"

	"teamup-backend/internal/api/handlers"
	"teamup-backend/internal/testutils"

	"github.com/stretchr/testify/assert"
)

func TestHealthEndpoints(t *testing.T) {
	httpSuite := testutils.SetupHTTPTest()
	handler := handlers.NewHealthHandler(nil)
	httpSuite.Router.GET("/health", handler.Health)
	httpSuite.Router.GET("/health/live", handler.Live)

	t.Run("health", func(t *testing.T) {
		w := httpSuite.MakeRequest(http.MethodGet, "/health", nil)

		var body map[string]string
		testutils.AssertJSONResponse(t, w, http.StatusOK, &body)
		assert.Equal(t, "ok", body["status"])
	})

	t.Run("liveness", func(t *testing.T) {
		w := httpSuite.MakeRequest(http.MethodGet, "/health/live", nil)

		var body map[string]string
		testutils.AssertJSONResponse(t, w, http.StatusOK, &body)
		assert.Equal(t, "alive", body["status"])
	})
}
