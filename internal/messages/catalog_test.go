package messages

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullParams() Params {
	return Params{
		Port:            3000,
		ProxyHost:       "https://upstream.local",
		UUID:            "env-uuid",
		Name:            "Env",
		EnvironmentUUID: "env-uuid",
		EnvironmentName: "Env",
		RouteUUID:       "route-uuid",
		FilePath:        "/tmp/openapi.json",
		URL:             "https://example.com/env.json",
		Error:           errors.New("boom"),
	}
}

func TestCatalog_EveryCodeHasFormatter(t *testing.T) {
	for _, code := range AllCodes() {
		assert.NotNil(t, catalog[code], "missing formatter for %s", code)
		assert.NotEqual(t, "UNKNOWN", code.String())
	}
}

func TestCatalog_ToastPairing(t *testing.T) {
	valid := map[ToastType]bool{ToastSuccess: true, ToastError: true, ToastWarning: true}

	for _, code := range AllCodes() {
		record := Format(code, fullParams())
		toastType, shown := record.ToastType()

		assert.Equal(t, record.ShowToast(), shown, code.String())
		if shown {
			assert.True(t, valid[toastType], "%s has invalid toast type %q", code, toastType)
		} else {
			assert.Empty(t, toastType, code.String())
		}
		assert.NotEmpty(t, record.Message, code.String())
	}
}

func TestCatalog_IsPure(t *testing.T) {
	for _, code := range AllCodes() {
		assert.Equal(t, Format(code, fullParams()), Format(code, fullParams()), code.String())
	}
}

func TestCatalog_LabelFallsBackToUUID(t *testing.T) {
	withName := Format(EnvironmentMoreRecentVersion, Params{UUID: "u1", Name: "E1"})
	withoutName := Format(EnvironmentMoreRecentVersion, Params{UUID: "u1"})

	assert.Contains(t, withName.Message, `"E1"`)
	assert.Contains(t, withoutName.Message, `"u1"`)

	toastType, shown := withName.ToastType()
	assert.True(t, shown)
	assert.Equal(t, ToastWarning, toastType)
}

func TestCatalog_LogLineOmitsMissingName(t *testing.T) {
	codes := []Code{
		EnvironmentMoreRecentVersion,
		EnvironmentMigrationFailed,
		EnvironmentImported,
		EnvironmentImportError,
	}

	for _, code := range codes {
		t.Run(code.String(), func(t *testing.T) {
			unnamed := Format(code, Params{UUID: "u1", Error: errors.New("boom")})
			assert.Contains(t, unnamed.LoggerMessage, "u1")
			assert.NotContains(t, unnamed.LoggerMessage, "()")

			named := Format(code, Params{UUID: "u1", Name: "E1", Error: errors.New("boom")})
			assert.Contains(t, named.LoggerMessage, "u1 (E1)")
		})
	}
}

func TestCatalog_MigrationFailedIsWarning(t *testing.T) {
	record := Format(EnvironmentMigrationFailed, Params{UUID: "u2"})

	toastType, shown := record.ToastType()
	assert.True(t, shown)
	assert.Equal(t, ToastWarning, toastType)
	assert.Contains(t, record.Message, "automatically repaired")
}

func TestCatalog_ErrorIsRelayedVerbatimToLogger(t *testing.T) {
	record := Format(OpenAPIExportError, Params{EnvironmentUUID: "abc", Error: errors.New("disk full")})

	assert.Equal(t, "Error while exporting environment to OpenAPI format: disk full", record.Message)
	assert.Equal(t, "Error while exporting environment abc to OpenAPI format: disk full", record.LoggerMessage)
	assert.NotContains(t, record.Message, "abc")
}

func TestRecord_LogLine(t *testing.T) {
	starting := Format(OpenAPIExport, Params{EnvironmentUUID: "abc"})
	assert.Equal(t, starting.Message, starting.LogLine())
	assert.False(t, starting.ShowToast())

	copied := Format(CopyRouteClipboardSuccess, Params{RouteUUID: "r1"})
	assert.Equal(t, "Route r1 has been successfully copied to the clipboard", copied.LogLine())
}

func TestRecord_MarshalJSON(t *testing.T) {
	t.Run("toast record carries type", func(t *testing.T) {
		data, err := json.Marshal(Format(OpenAPIExportSuccess, Params{EnvironmentName: "Env"}))
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, true, decoded["showToast"])
		assert.Equal(t, "success", decoded["toastType"])
	})

	t.Run("silent record omits type", func(t *testing.T) {
		data, err := json.Marshal(Format(FirstLoadDemoEnvironment, Params{}))
		require.NoError(t, err)

		assert.NotContains(t, string(data), "toastType")
		assert.Contains(t, string(data), `"showToast":false`)
	})
}

func TestParseCode(t *testing.T) {
	code, ok := ParseCode("OPENAPI_IMPORT_ERROR_WRONG_VERSION")
	require.True(t, ok)
	assert.Equal(t, OpenAPIImportErrorWrongVersion, code)

	_, ok = ParseCode("NOT_A_CODE")
	assert.False(t, ok)
}

func TestFormat_OutOfRangeCode(t *testing.T) {
	record := Format(codeCount, Params{})
	assert.False(t, record.ShowToast())
	assert.Equal(t, "UNKNOWN", codeCount.String())
}
