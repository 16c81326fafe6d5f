// Package messages is the closed catalog of user and log facing notifications.
//
// Every Code maps to a formatter producing a Record. Formatting is pure: the
// same code and params always produce the same record. Each code documents
// the Params fields it reads; passing params without them is a caller bug and
// simply yields empty interpolations.
package messages

import "fmt"

// Params carries the interpolation values for a catalog entry.
type Params struct {
	Port            int
	ProxyHost       string
	UUID            string
	Name            string
	EnvironmentUUID string
	EnvironmentName string
	RouteUUID       string
	FilePath        string
	URL             string
	Error           error
}

type formatter func(p Params) Record

// Format renders the catalog entry for code.
func Format(code Code, p Params) Record {
	if code < 0 || code >= codeCount {
		return silent(fmt.Sprintf("Unknown message code %d", int(code)))
	}
	return catalog[code](p)
}

// errMessage returns the message of p.Error, relayed verbatim.
func errMessage(p Params) string {
	if p.Error == nil {
		return ""
	}
	return p.Error.Error()
}

// label prefers the human name and falls back to the stable identifier.
func label(name, uuid string) string {
	if name != "" {
		return name
	}
	return uuid
}

// logID renders "uuid (name)" for log lines, dropping the parentheses when
// the item has no name.
func logID(uuid, name string) string {
	if name == "" {
		return uuid
	}
	return fmt.Sprintf("%s (%s)", uuid, name)
}

var catalog = [codeCount]formatter{
	// Port, ProxyHost
	CreatingProxy: func(p Params) Record {
		return silent(fmt.Sprintf("Creating proxy between localhost:%d and %s", p.Port, p.ProxyHost))
	},
	// UUID, Port
	EnvironmentStarted: func(p Params) Record {
		return silent(fmt.Sprintf("Server %s was started successfully on port %d", p.UUID, p.Port))
	},
	// UUID
	EnvironmentStopped: func(p Params) Record {
		return silent(fmt.Sprintf("Server %s has been stopped", p.UUID))
	},
	// Port, UUID, Error
	PortAlreadyUsed: func(p Params) Record {
		return toastWithLog(ToastError,
			fmt.Sprintf("Port %d is already in use", p.Port),
			fmt.Sprintf("Error when starting the server %s: %s", p.UUID, errMessage(p)))
	},
	// UUID, Error
	PortInvalid: func(p Params) Record {
		return toastWithLog(ToastError,
			"This port is invalid or access is denied",
			fmt.Sprintf("Error when starting the server %s: %s", p.UUID, errMessage(p)))
	},
	// UUID, Error
	HostnameUnavailable: func(p Params) Record {
		return toastWithLog(ToastError,
			"Provided hostname/address not available",
			fmt.Sprintf("Error when starting the server %s: %s", p.UUID, errMessage(p)))
	},
	// UUID, Error
	HostnameUnknown: func(p Params) Record {
		return toastWithLog(ToastError,
			"Unknown hostname/address provided",
			fmt.Sprintf("Error getting address information %s: %s", p.UUID, errMessage(p)))
	},
	// Error
	CertFileNotFound: func(p Params) Record {
		return toast(ToastError, fmt.Sprintf("Certificate file not found: %s", errMessage(p)))
	},
	// Error
	RequestBodyParse: func(p Params) Record {
		message := fmt.Sprintf("Error while parsing entering body: %s", errMessage(p))
		return toastWithLog(ToastError, message, message)
	},
	// Error
	RouteCreationError: func(p Params) Record {
		return silent(fmt.Sprintf("Error while creating the route: %s", errMessage(p)))
	},
	// Error
	RouteCreationErrorRegex: func(p Params) Record {
		return toastWithLog(ToastError,
			fmt.Sprintf("This route regex path is invalid: %s", errMessage(p)),
			fmt.Sprintf("Error while creating the route: %s", errMessage(p)))
	},
	// Error
	RouteServingError: func(p Params) Record {
		return silent(fmt.Sprintf("Error while serving the content: %s", errMessage(p)))
	},
	// Error
	RouteFileServingError: func(p Params) Record {
		return silent(fmt.Sprintf("Error while serving the file content: %s", errMessage(p)))
	},
	// ProxyHost, Error
	ProxyError: func(p Params) Record {
		return silent(fmt.Sprintf("An error occured while trying to proxy to %s: %s", p.ProxyHost, errMessage(p)))
	},
	// UUID, Error
	UnknownServerError: func(p Params) Record {
		return toastWithLog(ToastError,
			fmt.Sprintf("Server error: %s", errMessage(p)),
			fmt.Sprintf("Error when starting the server %s: %s", p.UUID, errMessage(p)))
	},
	// EnvironmentUUID
	OpenAPIExport: func(p Params) Record {
		return silent(fmt.Sprintf("Exporting environment %s to OpenAPI format", p.EnvironmentUUID))
	},
	// EnvironmentName
	OpenAPIExportSuccess: func(p Params) Record {
		return toast(ToastSuccess, fmt.Sprintf("Environment %s has been successfully exported", p.EnvironmentName))
	},
	// EnvironmentUUID, Error
	OpenAPIExportError: func(p Params) Record {
		return toastWithLog(ToastError,
			fmt.Sprintf("Error while exporting environment to OpenAPI format: %s", errMessage(p)),
			fmt.Sprintf("Error while exporting environment %s to OpenAPI format: %s", p.EnvironmentUUID, errMessage(p)))
	},
	// FilePath
	OpenAPIImport: func(p Params) Record {
		return silent(fmt.Sprintf("Importing environment %s from OpenAPI format", p.FilePath))
	},
	// EnvironmentName
	OpenAPIImportSuccess: func(p Params) Record {
		return toast(ToastSuccess, fmt.Sprintf("Environment %q has been successfully imported", p.EnvironmentName))
	},
	// FilePath, Error
	OpenAPIImportError: func(p Params) Record {
		return toastWithLog(ToastError,
			fmt.Sprintf("Error while importing environment from OpenAPI format: %s", errMessage(p)),
			fmt.Sprintf("Error while importing environment %s from OpenAPI format: %s", p.FilePath, errMessage(p)))
	},
	// FilePath
	OpenAPIImportErrorWrongVersion: func(p Params) Record {
		return toast(ToastError, fmt.Sprintf("Error while importing environment %s from OpenAPI format: this OpenAPI version is not supported yet", p.FilePath))
	},
	// EnvironmentUUID
	CopyEnvironmentClipboard: func(p Params) Record {
		return silent(fmt.Sprintf("Copying environment %s to the clipboard", p.EnvironmentUUID))
	},
	// EnvironmentUUID
	CopyEnvironmentClipboardSuccess: func(p Params) Record {
		return toastWithLog(ToastSuccess,
			"Environment has been successfully copied to the clipboard",
			fmt.Sprintf("Environment %s has been successfully copied to the clipboard", p.EnvironmentUUID))
	},
	// Error
	CopyEnvironmentClipboardError: func(p Params) Record {
		return toast(ToastError, fmt.Sprintf("An error occured while copying the environment to the clipboard: %s", errMessage(p)))
	},
	// RouteUUID
	CopyRouteClipboard: func(p Params) Record {
		return silent(fmt.Sprintf("Copying route %s to the clipboard", p.RouteUUID))
	},
	// RouteUUID
	CopyRouteClipboardSuccess: func(p Params) Record {
		return toastWithLog(ToastSuccess,
			"Route has been successfully copied to the clipboard",
			fmt.Sprintf("Route %s has been successfully copied to the clipboard", p.RouteUUID))
	},
	// Error
	CopyRouteClipboardError: func(p Params) Record {
		return toast(ToastError, fmt.Sprintf("An error occured while copying the route to the clipboard: %s", errMessage(p)))
	},
	// Error
	NewEnvironmentClipboardError: func(p Params) Record {
		return toast(ToastError, fmt.Sprintf("Error while loading environment from clipboard: %s", errMessage(p)))
	},
	// Error
	NewRouteClipboardError: func(p Params) Record {
		return toast(ToastError, fmt.Sprintf("Error while loading route from clipboard: %s", errMessage(p)))
	},
	// RouteUUID, EnvironmentUUID
	NewRouteClipboardSuccess: func(p Params) Record {
		return toastWithLog(ToastSuccess,
			"Route has been successfully loaded from the clipboard",
			fmt.Sprintf("Route %s has been added to environment %s from the clipboard", p.RouteUUID, p.EnvironmentUUID))
	},
	EnvironmentFileInUse: func(p Params) Record {
		return toast(ToastError, "This environment file is already in use")
	},
	FirstLoadDemoEnvironment: func(p Params) Record {
		return silent("First load, adding demo environment")
	},
	// Name or UUID
	EnvironmentMoreRecentVersion: func(p Params) Record {
		return toastWithLog(ToastWarning,
			fmt.Sprintf("Environment %q was created with a more recent version of envport. Please upgrade.", label(p.Name, p.UUID)),
			fmt.Sprintf("Environment %s skipped: created with a more recent version", logID(p.UUID, p.Name)))
	},
	EnvironmentIsExportFile: func(p Params) Record {
		return toast(ToastWarning, "This file is an export file. Please import it.")
	},
	// Name or UUID
	EnvironmentMigrationFailed: func(p Params) Record {
		return toastWithLog(ToastWarning,
			fmt.Sprintf("Migration of environment %q failed. The environment was automatically repaired and migrated to the latest version.", label(p.Name, p.UUID)),
			fmt.Sprintf("Migration of environment %s failed validation, repaired: %s", logID(p.UUID, p.Name), errMessage(p)))
	},
	// Name
	EnvironmentReloaded: func(p Params) Record {
		return toast(ToastSuccess, fmt.Sprintf("Environment %q was modified externally and reloaded.", p.Name))
	},
	// URL
	ImportFromURL: func(p Params) Record {
		return silent(fmt.Sprintf("Importing from URL: %s", p.URL))
	},
	// URL, Error
	ImportFromURLError: func(p Params) Record {
		return toastWithLog(ToastError,
			fmt.Sprintf("Error while loading data from URL: %s", errMessage(p)),
			fmt.Sprintf("Error while loading data from %s: %s", p.URL, errMessage(p)))
	},
	// FilePath, Error
	ImportFromFileError: func(p Params) Record {
		return toastWithLog(ToastError,
			fmt.Sprintf("Error while reading the import file: %s", errMessage(p)),
			fmt.Sprintf("Error while reading import file %s: %s", p.FilePath, errMessage(p)))
	},
	// Error
	ImportParseError: func(p Params) Record {
		return toastWithLog(ToastError,
			"Imported data is not valid JSON",
			fmt.Sprintf("Error while parsing imported data: %s", errMessage(p)))
	},
	// Name or UUID
	EnvironmentImported: func(p Params) Record {
		return toastWithLog(ToastSuccess,
			fmt.Sprintf("Environment %q has been successfully imported", label(p.Name, p.UUID)),
			fmt.Sprintf("Environment %s has been successfully imported", logID(p.UUID, p.Name)))
	},
	// Name or UUID, Error
	EnvironmentImportError: func(p Params) Record {
		return toastWithLog(ToastError,
			fmt.Sprintf("Error while importing environment %q: %s", label(p.Name, p.UUID), errMessage(p)),
			fmt.Sprintf("Error while committing environment %s: %s", logID(p.UUID, p.Name), errMessage(p)))
	},
	// EnvironmentUUID
	ExportEnvironment: func(p Params) Record {
		return silent(fmt.Sprintf("Exporting environment %s", p.EnvironmentUUID))
	},
	// EnvironmentName
	ExportEnvironmentSuccess: func(p Params) Record {
		return toast(ToastSuccess, fmt.Sprintf("Environment %s has been successfully exported", p.EnvironmentName))
	},
	// EnvironmentUUID, Error
	ExportEnvironmentError: func(p Params) Record {
		return toastWithLog(ToastError,
			fmt.Sprintf("Error while exporting environment: %s", errMessage(p)),
			fmt.Sprintf("Error while exporting environment %s: %s", p.EnvironmentUUID, errMessage(p)))
	},
}

func init() {
	for i, f := range catalog {
		if f == nil {
			panic(fmt.Sprintf("messages: no formatter for %s", Code(i)))
		}
	}
}
