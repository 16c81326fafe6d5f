package importexport

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrlokans/envport/internal/services"
)

// ErrUnknownMenuID is returned by Trigger for identifiers it does not know.
var ErrUnknownMenuID = errors.New("unknown menu action")

// MenuID identifies an import/export action triggered from an application menu.
type MenuID string

const (
	MenuImportOpenAPIFile        MenuID = "IMPORT_OPENAPI_FILE"
	MenuExportOpenAPIFile        MenuID = "EXPORT_OPENAPI_FILE"
	MenuNewEnvironmentClipboard  MenuID = "NEW_ENVIRONMENT_CLIPBOARD"
	MenuNewRouteClipboard        MenuID = "NEW_ROUTE_CLIPBOARD"
	MenuImportFile               MenuID = "IMPORT_FILE"
	MenuExportFile               MenuID = "EXPORT_FILE"
	MenuCopyEnvironmentClipboard MenuID = "COPY_ENVIRONMENT_CLIPBOARD"
)

// MenuIDs lists every menu action in menu order.
func MenuIDs() []MenuID {
	return []MenuID{
		MenuImportOpenAPIFile,
		MenuExportOpenAPIFile,
		MenuNewEnvironmentClipboard,
		MenuNewRouteClipboard,
		MenuImportFile,
		MenuExportFile,
		MenuCopyEnvironmentClipboard,
	}
}

// Trigger runs the entry point bound to id. dialogs answers the open/save
// dialogs of this invocation only.
func (s *Service) Trigger(ctx context.Context, id MenuID, dialogs services.DialogProvider) error {
	var err error
	switch id {
	case MenuImportOpenAPIFile:
		_, err = s.ImportOpenAPIFile(ctx, dialogs)
	case MenuExportOpenAPIFile:
		_, err = s.ExportOpenAPIFile(ctx, dialogs)
	case MenuNewEnvironmentClipboard:
		_, err = s.NewEnvironmentFromClipboard(ctx)
	case MenuNewRouteClipboard:
		_, err = s.NewRouteFromClipboard(ctx)
	case MenuImportFile:
		_, err = s.ImportFile(ctx, dialogs)
	case MenuExportFile:
		_, err = s.ExportFile(ctx, dialogs)
	case MenuCopyEnvironmentClipboard:
		err = s.CopyEnvironmentToClipboard(ctx)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMenuID, id)
	}
	return err
}
