package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/envport/internal/database"
	"github.com/mrlokans/envport/internal/database/environments"
	"github.com/mrlokans/envport/internal/migrations"
)

func setupHealthTestDB(t *testing.T) *database.Database {
	t.Helper()

	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "health.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func getHealth(t *testing.T, controller *HealthController) (*httptest.ResponseRecorder, HealthResponse) {
	t.Helper()

	router := gin.New()
	router.GET("/health", controller.Status)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	router.ServeHTTP(w, req)

	var response HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return w, response
}

type failingCounter struct{}

func (failingCounter) Count(context.Context) (int64, error) {
	return 0, errors.New("table missing")
}

func TestHealthController_Status(t *testing.T) {
	t.Run("reports stored environments", func(t *testing.T) {
		db := setupHealthTestDB(t)
		store := environments.NewRepository(db.DB)
		_, err := store.AddEnvironment(context.Background(), migrations.NewDemoEnvironment())
		require.NoError(t, err)

		w, response := getHealth(t, NewHealthController(db, store, "1.0.0", false))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "healthy", response.Status)
		assert.Equal(t, "1.0.0", response.Version)
		assert.Equal(t, "ok", response.Checks["database"])
		assert.Equal(t, "ok (1 stored)", response.Checks["environments"])
		require.NotNil(t, response.Environments)
		assert.Equal(t, int64(1), *response.Environments)
		assert.Equal(t, "disabled", response.Checks["task_queue"])
		assert.Contains(t, response.Time, "T")
	})

	t.Run("reports missing dependencies as not configured", func(t *testing.T) {
		w, response := getHealth(t, NewHealthController(nil, nil, "1.0.0", true))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "healthy", response.Status)
		assert.Equal(t, "not configured", response.Checks["database"])
		assert.Equal(t, "not configured", response.Checks["environments"])
		assert.Nil(t, response.Environments)
		assert.Equal(t, "enabled", response.Checks["task_queue"])
	})

	t.Run("returns unhealthy when database connection is closed", func(t *testing.T) {
		db, err := database.NewDatabase(filepath.Join(t.TempDir(), "closed.db"))
		require.NoError(t, err)
		store := environments.NewRepository(db.DB)
		require.NoError(t, db.Close())

		w, response := getHealth(t, NewHealthController(db, store, "1.0.0", false))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "unhealthy", response.Status)
		assert.Contains(t, response.Checks["database"], "error")
		assert.Equal(t, "skipped", response.Checks["environments"])
	})

	t.Run("returns unhealthy when the store fails", func(t *testing.T) {
		w, response := getHealth(t, NewHealthController(nil, failingCounter{}, "", false))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "error: table missing", response.Checks["environments"])
	})
}

func TestHealthResponse_OmitsEmptyFields(t *testing.T) {
	response := HealthResponse{
		Status: "healthy",
		Time:   "2024-01-01T12:00:00Z",
		Checks: map[string]string{},
	}

	jsonBytes, err := json.Marshal(response)
	require.NoError(t, err)

	assert.NotContains(t, string(jsonBytes), "version")
	assert.NotContains(t, string(jsonBytes), "environments")
}
