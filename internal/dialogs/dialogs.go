// Package dialogs answers open/save dialogs without a user interface.
package dialogs

import (
	"context"

	"github.com/mrlokans/envport/internal/services"
)

var _ services.DialogProvider = Preset{}

// Preset answers every dialog with a fixed path. An empty path reads as a
// cancelled dialog.
type Preset struct {
	OpenPath string
	SavePath string
}

func (p Preset) ShowOpenDialog(_ context.Context, _ string, _ services.DialogKind) (string, bool) {
	return p.OpenPath, p.OpenPath != ""
}

func (p Preset) ShowSaveDialog(_ context.Context, _ string) (string, bool) {
	return p.SavePath, p.SavePath != ""
}
