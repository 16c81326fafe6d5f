package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/envport/internal/clipboard"
	"github.com/mrlokans/envport/internal/config"
	"github.com/mrlokans/envport/internal/database"
	"github.com/mrlokans/envport/internal/database/environments"
	"github.com/mrlokans/envport/internal/database/settings"
	"github.com/mrlokans/envport/internal/entities"
	"github.com/mrlokans/envport/internal/exporters"
	"github.com/mrlokans/envport/internal/importexport"
	"github.com/mrlokans/envport/internal/logging"
	"github.com/mrlokans/envport/internal/messages"
	"github.com/mrlokans/envport/internal/migrations"
	"github.com/mrlokans/envport/internal/notify"
	"github.com/mrlokans/envport/internal/openapi"
	"github.com/mrlokans/envport/internal/settingsstore"
	"github.com/mrlokans/envport/internal/storage"
)

type stubFetcher struct {
	body string
	err  error
}

func (f stubFetcher) Get(_ context.Context, _ string) (string, error) {
	return f.body, f.err
}

type testServer struct {
	router    *gin.Engine
	store     *environments.Repository
	files     *storage.Files
	clipboard *clipboard.Memory
	settings  *settingsstore.SettingsStore
}

func newTestServer(t *testing.T, fetcher stubFetcher) *testServer {
	t.Helper()

	db, err := database.NewDatabase(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ts := &testServer{
		store:     environments.NewRepository(db.DB),
		files:     storage.NewFiles(afero.NewMemMapFs()),
		clipboard: clipboard.NewMemory(),
	}
	ts.settings = settingsstore.New(settings.NewRepository(db.DB), config.RemoteSync{Schedule: "0 * * * *"})

	toasts := notify.NewToastQueue(0)
	svc := importexport.NewService(importexport.Deps{
		Store:      ts.store,
		Converter:  openapi.NewConverter(ts.files),
		Files:      ts.files,
		Clipboard:  ts.clipboard,
		Fetcher:    fetcher,
		Notifier:   notify.NewDispatcher(logging.Discard(), toasts),
		Serializer: exporters.NativeSerializer{Version: "1.0.0"},
		Logger:     logging.Discard(),
	})

	ts.router = NewRouter(RouterConfig{
		Database:      db,
		ImportExport:  svc,
		Environments:  ts.store,
		Toasts:        toasts,
		Clipboard:     ts.clipboard,
		SettingsStore: ts.settings,
		Version:       "test",
	})
	return ts
}

func (ts *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case []byte:
		reader = bytes.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func exportDocument(t *testing.T, envs ...*entities.Environment) []byte {
	t.Helper()
	doc := entities.ExportDocument{Source: "mockoon:1.0.0"}
	for _, env := range envs {
		item, err := json.Marshal(env)
		require.NoError(t, err)
		doc.Data = append(doc.Data, entities.ImportItem{Type: entities.ImportItemEnvironment, Item: item})
	}
	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	return raw
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestRouter_Ping(t *testing.T) {
	ts := newTestServer(t, stubFetcher{})

	w := ts.do(t, "GET", "/ping", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pong")
}

func TestRouter_UploadAndList(t *testing.T) {
	ts := newTestServer(t, stubFetcher{})
	env := migrations.NewDemoEnvironment()

	w := ts.do(t, "POST", "/api/import", exportDocument(t, env))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[ImportResponse](t, w)
	require.Len(t, resp.Outcomes, 1)
	assert.Equal(t, 1, resp.Summary.Committed)
	assert.Equal(t, env.UUID, resp.Outcomes[0].UUID)

	w = ts.do(t, "GET", "/api/environments", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[struct {
		Environments []entities.EnvironmentRecord `json:"environments"`
		ActiveUUID   string                       `json:"active_uuid"`
	}](t, w)
	require.Len(t, list.Environments, 1)
	assert.Equal(t, "Demo API", list.Environments[0].Name)
	assert.Equal(t, env.UUID, list.ActiveUUID)

	w = ts.do(t, "GET", "/api/environments/active", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, env.UUID, decode[entities.Environment](t, w).UUID)

	w = ts.do(t, "GET", "/api/environments/"+env.UUID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[entities.Environment](t, w).Routes, len(env.Routes))
}

func TestRouter_UploadErrors(t *testing.T) {
	ts := newTestServer(t, stubFetcher{})

	t.Run("invalid json", func(t *testing.T) {
		w := ts.do(t, "POST", "/api/import", []byte("{not json"))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "parse_error")
	})

	t.Run("empty body", func(t *testing.T) {
		w := ts.do(t, "POST", "/api/import", []byte{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("json that is not an export document", func(t *testing.T) {
		w := ts.do(t, "POST", "/api/import", []byte(`{"hello":"world"}`))
		require.Equal(t, http.StatusOK, w.Code)
		resp := decode[ImportResponse](t, w)
		assert.Empty(t, resp.Outcomes)
	})
}

func TestRouter_Environments_NotFound(t *testing.T) {
	ts := newTestServer(t, stubFetcher{})

	assert.Equal(t, http.StatusNotFound, ts.do(t, "GET", "/api/environments/active", nil).Code)
	assert.Equal(t, http.StatusNotFound, ts.do(t, "GET", "/api/environments/missing", nil).Code)
	assert.Equal(t, http.StatusNotFound, ts.do(t, "PUT", "/api/environments/active", SetActiveRequest{UUID: "missing"}).Code)
	assert.Equal(t, http.StatusBadRequest, ts.do(t, "PUT", "/api/environments/active", []byte(`{}`)).Code)
}

func TestRouter_SetActive(t *testing.T) {
	ts := newTestServer(t, stubFetcher{})
	first := migrations.NewEnvironment("First")
	second := migrations.NewEnvironment("Second")
	require.Equal(t, http.StatusOK, ts.do(t, "POST", "/api/import", exportDocument(t, first, second)).Code)

	w := ts.do(t, "PUT", "/api/environments/active", SetActiveRequest{UUID: first.UUID})
	require.Equal(t, http.StatusOK, w.Code)

	active, err := ts.store.GetActiveEnvironment(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first.UUID, active.UUID)
}

func TestRouter_ImportURL(t *testing.T) {
	env := migrations.NewDemoEnvironment()

	t.Run("imports inline", func(t *testing.T) {
		ts := newTestServer(t, stubFetcher{body: string(exportDocument(t, env))})

		w := ts.do(t, "POST", "/api/import/url", ImportURLRequest{URL: "https://example.com/env.json"})

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, 1, decode[ImportResponse](t, w).Summary.Committed)
	})

	t.Run("fetch failure is a bad gateway", func(t *testing.T) {
		ts := newTestServer(t, stubFetcher{err: errors.New("connection refused")})

		w := ts.do(t, "POST", "/api/import/url", ImportURLRequest{URL: "https://example.com/env.json"})

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Contains(t, w.Body.String(), "fetch_error")
	})

	t.Run("rejects non-http urls", func(t *testing.T) {
		ts := newTestServer(t, stubFetcher{})

		w := ts.do(t, "POST", "/api/import/url", ImportURLRequest{URL: "file:///etc/passwd"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("async without task client runs inline", func(t *testing.T) {
		ts := newTestServer(t, stubFetcher{body: string(exportDocument(t, env))})

		w := ts.do(t, "POST", "/api/import/url", ImportURLRequest{URL: "https://example.com/env.json", Async: true})

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRouter_MenuExportFile(t *testing.T) {
	ts := newTestServer(t, stubFetcher{})
	env := migrations.NewDemoEnvironment()
	require.Equal(t, http.StatusOK, ts.do(t, "POST", "/api/import", exportDocument(t, env)).Code)
	ts.do(t, "GET", "/api/toasts", nil)

	w := ts.do(t, "POST", "/api/menu/EXPORT_FILE", TriggerRequest{SavePath: "/out/env.json"})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[TriggerResponse](t, w)
	assert.Empty(t, resp.Error)
	require.NotEmpty(t, resp.Toasts)
	assert.Equal(t, messages.ToastSuccess, resp.Toasts[len(resp.Toasts)-1].Type)

	data, err := ts.files.ReadFile("/out/env.json")
	require.NoError(t, err)
	assert.Contains(t, string(data), env.UUID)

	// toasts were handed back with the trigger response
	w = ts.do(t, "GET", "/api/toasts", nil)
	assert.JSONEq(t, `{"toasts":[]}`, w.Body.String())
}

func TestRouter_MenuToastsBelongToTheRequest(t *testing.T) {
	ts := newTestServer(t, stubFetcher{})

	tooNew := migrations.NewEnvironment("Future")
	tooNew.LastMigration = migrations.HighestMigrationID + 1
	ts.do(t, "POST", "/api/import", exportDocument(t, tooNew))

	w := ts.do(t, "POST", "/api/menu/IMPORT_OPENAPI_FILE", nil)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[TriggerResponse](t, w)
	assert.Empty(t, resp.Error)
	assert.NotNil(t, resp.Toasts)
	assert.Empty(t, resp.Toasts)

	// the unrelated warning is still waiting on the shared queue
	w = ts.do(t, "GET", "/api/toasts", nil)
	toasts := decode[struct {
		Toasts []notify.Toast `json:"toasts"`
	}](t, w).Toasts
	require.Len(t, toasts, 1)
	assert.Equal(t, messages.ToastWarning, toasts[0].Type)
	assert.Equal(t, messages.EnvironmentMoreRecentVersion.String(), toasts[0].Code)
}

func TestRouter_MenuCancelledDialog(t *testing.T) {
	ts := newTestServer(t, stubFetcher{})

	w := ts.do(t, "POST", "/api/menu/IMPORT_FILE", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[TriggerResponse](t, w).Error)
}

func TestRouter_MenuUnknownID(t *testing.T) {
	ts := newTestServer(t, stubFetcher{})

	w := ts.do(t, "POST", "/api/menu/NOT_A_MENU", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_MenuListsIDs(t *testing.T) {
	ts := newTestServer(t, stubFetcher{})

	w := ts.do(t, "GET", "/api/menu", nil)

	require.Equal(t, http.StatusOK, w.Code)
	ids := decode[struct {
		IDs []importexport.MenuID `json:"ids"`
	}](t, w).IDs
	assert.Equal(t, importexport.MenuIDs(), ids)
}

func TestRouter_ClipboardEnvironment(t *testing.T) {
	ts := newTestServer(t, stubFetcher{})

	t.Run("wrong format raises an error toast", func(t *testing.T) {
		require.Equal(t, http.StatusOK, ts.do(t, "PUT", "/api/clipboard", ClipboardBody{Text: `{"hello":"world"}`}).Code)

		w := ts.do(t, "POST", "/api/menu/NEW_ENVIRONMENT_CLIPBOARD", nil)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		resp := decode[TriggerResponse](t, w)
		assert.NotEmpty(t, resp.Error)
		require.NotEmpty(t, resp.Toasts)
		assert.Equal(t, messages.ToastError, resp.Toasts[0].Type)
	})

	t.Run("export document is imported", func(t *testing.T) {
		env := migrations.NewEnvironment("From clipboard")
		doc := exportDocument(t, env)
		require.Equal(t, http.StatusOK, ts.do(t, "PUT", "/api/clipboard", ClipboardBody{Text: string(doc)}).Code)

		w := ts.do(t, "POST", "/api/menu/NEW_ENVIRONMENT_CLIPBOARD", nil)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		active, err := ts.store.GetActiveEnvironment(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "From clipboard", active.Name)
	})

	t.Run("copy environment back to clipboard", func(t *testing.T) {
		require.Equal(t, http.StatusOK, ts.do(t, "PUT", "/api/clipboard", ClipboardBody{Text: ""}).Code)

		w := ts.do(t, "POST", "/api/menu/COPY_ENVIRONMENT_CLIPBOARD", nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = ts.do(t, "GET", "/api/clipboard", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, decode[ClipboardBody](t, w).Text, "From clipboard")
	})
}

func TestRouter_CopyRoute(t *testing.T) {
	ts := newTestServer(t, stubFetcher{})

	t.Run("no active environment", func(t *testing.T) {
		w := ts.do(t, "POST", "/api/routes/some-route/copy", nil)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	env := migrations.NewDemoEnvironment()
	require.Equal(t, http.StatusOK, ts.do(t, "POST", "/api/import", exportDocument(t, env)).Code)

	t.Run("unknown route", func(t *testing.T) {
		w := ts.do(t, "POST", "/api/routes/some-route/copy", nil)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("copies route", func(t *testing.T) {
		route := env.Routes[0]
		w := ts.do(t, "POST", "/api/routes/"+route.UUID+"/copy", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		text, err := ts.clipboard.ReadText(context.Background())
		require.NoError(t, err)
		assert.Contains(t, text, route.UUID)
	})
}

func TestRouter_OptionalRoutesNotRegistered(t *testing.T) {
	db, err := database.NewDatabase(":memory:")
	require.NoError(t, err)
	defer db.Close()

	router := NewRouter(RouterConfig{
		Database:     db,
		Environments: environments.NewRepository(db.DB),
		Toasts:       notify.NewToastQueue(0),
		Clipboard:    clipboard.NewMemory(),
	})

	for _, path := range []string{"/api/audit", "/api/tasks/types", "/api/settings/remote-sync"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", path, nil))
		assert.Equal(t, http.StatusNotFound, w.Code, path)
	}
}

func TestRouter_ReadOnly(t *testing.T) {
	router := NewRouter(RouterConfig{ReadOnly: true, Version: "test"})

	req := httptest.NewRequest(http.MethodPost, "/api/import", bytes.NewReader([]byte("{}")))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "demo_mode")

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
