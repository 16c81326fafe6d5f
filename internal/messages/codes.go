package messages

// Code identifies one entry of the notification catalog.
type Code int

const (
	CreatingProxy Code = iota
	EnvironmentStarted
	EnvironmentStopped
	PortAlreadyUsed
	PortInvalid
	HostnameUnavailable
	HostnameUnknown
	CertFileNotFound
	RequestBodyParse
	RouteCreationError
	RouteCreationErrorRegex
	RouteServingError
	RouteFileServingError
	ProxyError
	UnknownServerError
	OpenAPIExport
	OpenAPIExportSuccess
	OpenAPIExportError
	OpenAPIImport
	OpenAPIImportSuccess
	OpenAPIImportError
	OpenAPIImportErrorWrongVersion
	CopyEnvironmentClipboard
	CopyEnvironmentClipboardSuccess
	CopyEnvironmentClipboardError
	CopyRouteClipboard
	CopyRouteClipboardSuccess
	CopyRouteClipboardError
	NewEnvironmentClipboardError
	NewRouteClipboardError
	NewRouteClipboardSuccess
	EnvironmentFileInUse
	FirstLoadDemoEnvironment
	EnvironmentMoreRecentVersion
	EnvironmentIsExportFile
	EnvironmentMigrationFailed
	EnvironmentReloaded
	ImportFromURL
	ImportFromURLError
	ImportFromFileError
	ImportParseError
	EnvironmentImported
	EnvironmentImportError
	ExportEnvironment
	ExportEnvironmentSuccess
	ExportEnvironmentError

	codeCount
)

var codeNames = [codeCount]string{
	CreatingProxy:                   "CREATING_PROXY",
	EnvironmentStarted:              "ENVIRONMENT_STARTED",
	EnvironmentStopped:              "ENVIRONMENT_STOPPED",
	PortAlreadyUsed:                 "PORT_ALREADY_USED",
	PortInvalid:                     "PORT_INVALID",
	HostnameUnavailable:             "HOSTNAME_UNAVAILABLE",
	HostnameUnknown:                 "HOSTNAME_UNKNOWN",
	CertFileNotFound:                "CERT_FILE_NOT_FOUND",
	RequestBodyParse:                "REQUEST_BODY_PARSE",
	RouteCreationError:              "ROUTE_CREATION_ERROR",
	RouteCreationErrorRegex:         "ROUTE_CREATION_ERROR_REGEX",
	RouteServingError:               "ROUTE_SERVING_ERROR",
	RouteFileServingError:           "ROUTE_FILE_SERVING_ERROR",
	ProxyError:                      "PROXY_ERROR",
	UnknownServerError:              "UNKNOWN_SERVER_ERROR",
	OpenAPIExport:                   "OPENAPI_EXPORT",
	OpenAPIExportSuccess:            "OPENAPI_EXPORT_SUCCESS",
	OpenAPIExportError:              "OPENAPI_EXPORT_ERROR",
	OpenAPIImport:                   "OPENAPI_IMPORT",
	OpenAPIImportSuccess:            "OPENAPI_IMPORT_SUCCESS",
	OpenAPIImportError:              "OPENAPI_IMPORT_ERROR",
	OpenAPIImportErrorWrongVersion:  "OPENAPI_IMPORT_ERROR_WRONG_VERSION",
	CopyEnvironmentClipboard:        "COPY_ENVIRONMENT_CLIPBOARD",
	CopyEnvironmentClipboardSuccess: "COPY_ENVIRONMENT_CLIPBOARD_SUCCESS",
	CopyEnvironmentClipboardError:   "COPY_ENVIRONMENT_CLIPBOARD_ERROR",
	CopyRouteClipboard:              "COPY_ROUTE_CLIPBOARD",
	CopyRouteClipboardSuccess:       "COPY_ROUTE_CLIPBOARD_SUCCESS",
	CopyRouteClipboardError:         "COPY_ROUTE_CLIPBOARD_ERROR",
	NewEnvironmentClipboardError:    "NEW_ENVIRONMENT_CLIPBOARD_ERROR",
	NewRouteClipboardError:          "NEW_ROUTE_CLIPBOARD_ERROR",
	NewRouteClipboardSuccess:        "NEW_ROUTE_CLIPBOARD_SUCCESS",
	EnvironmentFileInUse:            "ENVIRONMENT_FILE_IN_USE",
	FirstLoadDemoEnvironment:        "FIRST_LOAD_DEMO_ENVIRONMENT",
	EnvironmentMoreRecentVersion:    "ENVIRONMENT_MORE_RECENT_VERSION",
	EnvironmentIsExportFile:         "ENVIRONMENT_IS_EXPORT_FILE",
	EnvironmentMigrationFailed:      "ENVIRONMENT_MIGRATION_FAILED",
	EnvironmentReloaded:             "ENVIRONMENT_RELOADED",
	ImportFromURL:                   "IMPORT_FROM_URL",
	ImportFromURLError:              "IMPORT_FROM_URL_ERROR",
	ImportFromFileError:             "IMPORT_FROM_FILE_ERROR",
	ImportParseError:                "IMPORT_PARSE_ERROR",
	EnvironmentImported:             "ENVIRONMENT_IMPORTED",
	EnvironmentImportError:          "ENVIRONMENT_IMPORT_ERROR",
	ExportEnvironment:               "EXPORT_ENVIRONMENT",
	ExportEnvironmentSuccess:        "EXPORT_ENVIRONMENT_SUCCESS",
	ExportEnvironmentError:          "EXPORT_ENVIRONMENT_ERROR",
}

func (c Code) String() string {
	if c < 0 || c >= codeCount {
		return "UNKNOWN"
	}
	return codeNames[c]
}

// ParseCode resolves a catalog identifier such as "OPENAPI_EXPORT".
func ParseCode(name string) (Code, bool) {
	for i, n := range codeNames {
		if n == name {
			return Code(i), true
		}
	}
	return 0, false
}

// AllCodes lists every catalog code in declaration order.
func AllCodes() []Code {
	codes := make([]Code, codeCount)
	for i := range codes {
		codes[i] = Code(i)
	}
	return codes
}
