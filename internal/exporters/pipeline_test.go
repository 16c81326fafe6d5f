package exporters

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/envport/internal/entities"
	"github.com/mrlokans/envport/internal/messages"
	"github.com/mrlokans/envport/internal/migrations"
	"github.com/mrlokans/envport/internal/services"
	"github.com/mrlokans/envport/internal/storage"
)

type recordingNotifier struct {
	codes   []messages.Code
	records []messages.Record
}

func (n *recordingNotifier) Notify(ctx context.Context, level slog.Level, code messages.Code, params messages.Params) messages.Record {
	record := messages.Format(code, params)
	n.codes = append(n.codes, code)
	n.records = append(n.records, record)
	return record
}

type mockStore struct {
	active *entities.Environment
	err    error
	calls  int
}

func (m *mockStore) GetActiveEnvironment(ctx context.Context) (*entities.Environment, error) {
	m.calls++
	return m.active, m.err
}

func (m *mockStore) AddEnvironment(ctx context.Context, env *entities.Environment) (*entities.Environment, error) {
	return env, nil
}

func (m *mockStore) AddRoute(ctx context.Context, envUUID string, route entities.Route) (*entities.Route, error) {
	return &route, nil
}

type mockConverter struct {
	output []byte
	err    error
	panic  bool
	calls  int
}

func (c *mockConverter) ToOpenAPI(env *entities.Environment) ([]byte, error) {
	c.calls++
	if c.panic {
		panic("nil route")
	}
	return c.output, c.err
}

func (c *mockConverter) FromOpenAPI(ctx context.Context, path string) (*entities.Environment, error) {
	return nil, nil
}

type fixedDialogs struct {
	savePath string
	calls    int
}

func (d *fixedDialogs) ShowOpenDialog(ctx context.Context, title string, kind services.DialogKind) (string, bool) {
	d.calls++
	return "", false
}

func (d *fixedDialogs) ShowSaveDialog(ctx context.Context, title string) (string, bool) {
	d.calls++
	return d.savePath, d.savePath != ""
}

type fixture struct {
	store     *mockStore
	converter *mockConverter
	notifier  *recordingNotifier
	dialogs   *fixedDialogs
	files     *storage.Files
	pipeline  *ExportPipeline
}

func newFixture(active *entities.Environment) *fixture {
	f := &fixture{
		store:     &mockStore{active: active},
		converter: &mockConverter{output: []byte(`{"openapi":"3.0.0"}`)},
		notifier:  &recordingNotifier{},
		dialogs:   &fixedDialogs{savePath: "/out/env.json"},
		files:     storage.NewFiles(afero.NewMemMapFs()),
	}
	f.pipeline = NewExportPipeline(f.store, f.converter, f.files, f.notifier, NativeSerializer{Version: "1.0.0"})
	return f
}

func TestExportActive_NoActiveEnvironment(t *testing.T) {
	f := newFixture(nil)

	outcome, err := f.pipeline.ExportActive(context.Background(), FormatOpenAPIV3, f.dialogs)

	require.NoError(t, err)
	assert.Equal(t, StatusNoActive, outcome.Status)
	assert.Empty(t, f.notifier.codes)
	assert.Zero(t, f.dialogs.calls)
	assert.Zero(t, f.converter.calls)
}

func TestExportActive_OpenAPISuccess(t *testing.T) {
	env := migrations.NewEnvironment("Billing")
	f := newFixture(env)

	outcome, err := f.pipeline.ExportActive(context.Background(), FormatOpenAPIV3, f.dialogs)

	require.NoError(t, err)
	assert.Equal(t, StatusExported, outcome.Status)
	assert.Equal(t, "/out/env.json", outcome.Path)

	require.Equal(t, []messages.Code{messages.OpenAPIExport, messages.OpenAPIExportSuccess}, f.notifier.codes)
	assert.False(t, f.notifier.records[0].ShowToast())
	toastType, shown := f.notifier.records[1].ToastType()
	assert.True(t, shown)
	assert.Equal(t, messages.ToastSuccess, toastType)
	assert.Contains(t, f.notifier.records[1].Message, "Billing")

	written, err := f.files.ReadFile("/out/env.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"openapi":"3.0.0"}`, string(written))
}

func TestExportActive_NativeWritesExportDocument(t *testing.T) {
	env := migrations.NewDemoEnvironment()
	f := newFixture(env)

	_, err := f.pipeline.ExportActive(context.Background(), FormatNative, f.dialogs)
	require.NoError(t, err)
	assert.Equal(t, []messages.Code{messages.ExportEnvironment, messages.ExportEnvironmentSuccess}, f.notifier.codes)
	assert.Zero(t, f.converter.calls)

	written, err := f.files.ReadFile("/out/env.json")
	require.NoError(t, err)

	var doc entities.ExportDocument
	require.NoError(t, json.Unmarshal(written, &doc))
	assert.Equal(t, "mockoon:1.0.0", doc.Source)
	require.Len(t, doc.Data, 1)
	assert.Equal(t, entities.ImportItemEnvironment, doc.Data[0].Type)

	var exported entities.Environment
	require.NoError(t, json.Unmarshal(doc.Data[0].Item, &exported))
	assert.Equal(t, env.UUID, exported.UUID)
	assert.Len(t, exported.Routes, 3)
}

func TestExportActive_DialogCancelled(t *testing.T) {
	f := newFixture(migrations.NewEnvironment("Env"))
	f.dialogs.savePath = ""

	outcome, err := f.pipeline.ExportActive(context.Background(), FormatOpenAPIV3, f.dialogs)

	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, outcome.Status)
	assert.Equal(t, []messages.Code{messages.OpenAPIExport}, f.notifier.codes)
	assert.Zero(t, f.converter.calls)
}

func TestExportActive_ConverterFailure(t *testing.T) {
	env := migrations.NewEnvironment("Env")
	f := newFixture(env)
	f.converter.err = errors.New("unsupported body")

	outcome, err := f.pipeline.ExportActive(context.Background(), FormatOpenAPIV3, f.dialogs)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExportFailed)
	assert.Equal(t, StatusFailed, outcome.Status)
	require.Equal(t, []messages.Code{messages.OpenAPIExport, messages.OpenAPIExportError}, f.notifier.codes)

	failure := f.notifier.records[1]
	toastType, _ := failure.ToastType()
	assert.Equal(t, messages.ToastError, toastType)
	assert.Contains(t, failure.Message, "unsupported body")
	assert.Contains(t, failure.LoggerMessage, env.UUID)

	exists, _ := f.files.Exists("/out/env.json")
	assert.False(t, exists)
}

func TestExportActive_ConverterPanicIsContained(t *testing.T) {
	f := newFixture(migrations.NewEnvironment("Env"))
	f.converter.panic = true

	outcome, err := f.pipeline.ExportActive(context.Background(), FormatOpenAPIV3, f.dialogs)

	assert.ErrorIs(t, err, ErrExportFailed)
	assert.Equal(t, StatusFailed, outcome.Status)
	assert.Contains(t, f.notifier.records[1].Message, "nil route")
}

func TestExportActive_StoreFailure(t *testing.T) {
	f := newFixture(nil)
	f.store.err = errors.New("database is locked")

	_, err := f.pipeline.ExportActive(context.Background(), FormatNative, f.dialogs)

	assert.ErrorIs(t, err, ErrExportFailed)
	assert.Equal(t, []messages.Code{messages.ExportEnvironmentError}, f.notifier.codes)
	assert.Zero(t, f.dialogs.calls)
}

func TestParseFormat(t *testing.T) {
	format, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatNative, format)

	format, err = ParseFormat("openapi")
	require.NoError(t, err)
	assert.Equal(t, FormatOpenAPIV3, format)

	_, err = ParseFormat("har")
	assert.Error(t, err)
}

func TestNativeSerializer_RouteRoundTrip(t *testing.T) {
	route := migrations.NewRoute("users/:id")

	data, err := NativeSerializer{Version: "2.0.0"}.Route(route)
	require.NoError(t, err)

	decoded, err := DecodeRoute(data)
	require.NoError(t, err)
	assert.Equal(t, route.UUID, decoded.UUID)
	assert.Equal(t, "users/:id", decoded.Endpoint)

	_, err = DecodeRoute([]byte(`{"source":"mockoon","data":[]}`))
	assert.ErrorIs(t, err, ErrNoRoute)
}

func TestNativeSerializer_SourceWithoutVersion(t *testing.T) {
	assert.Equal(t, "mockoon", NativeSerializer{}.Source())
}
