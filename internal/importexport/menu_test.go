package importexport

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/envport/internal/dialogs"
	"github.com/mrlokans/envport/internal/messages"
)

func TestTrigger_UnknownID(t *testing.T) {
	f := newFixture(t, nil)

	err := f.svc.Trigger(context.Background(), MenuID("OPEN_SETTINGS"), dialogs.Preset{})

	assert.ErrorIs(t, err, ErrUnknownMenuID)
	assert.Empty(t, f.rec.codes)
}

func TestTrigger_Dispatch(t *testing.T) {
	ctx := context.Background()
	preset := dialogs.Preset{SavePath: "/exports/out.json"}

	tests := []struct {
		id        MenuID
		wantFirst messages.Code
	}{
		{id: MenuExportOpenAPIFile, wantFirst: messages.OpenAPIExport},
		{id: MenuExportFile, wantFirst: messages.ExportEnvironment},
		{id: MenuCopyEnvironmentClipboard, wantFirst: messages.CopyEnvironmentClipboard},
		{id: MenuNewEnvironmentClipboard, wantFirst: messages.NewEnvironmentClipboardError},
		{id: MenuNewRouteClipboard, wantFirst: messages.NewRouteClipboardError},
	}

	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			f := newFixture(t, nil)
			_, err := f.svc.SeedDemoEnvironment(ctx)
			require.NoError(t, err)
			f.rec.reset()

			_ = f.svc.Trigger(ctx, tt.id, preset)

			require.NotEmpty(t, f.rec.codes)
			assert.Equal(t, tt.wantFirst, f.rec.codes[0])
		})
	}
}

func TestTrigger_CancelledImports(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	for _, id := range []MenuID{MenuImportFile, MenuImportOpenAPIFile} {
		assert.NoError(t, f.svc.Trigger(ctx, id, dialogs.Preset{}), id)
	}
	assert.Empty(t, f.rec.codes)
}

func TestMenuIDs(t *testing.T) {
	ids := MenuIDs()
	assert.Len(t, ids, 7)

	seen := map[MenuID]bool{}
	for _, id := range ids {
		assert.False(t, seen[id], "duplicate %s", id)
		seen[id] = true
	}
}
