package clipboard

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/envport/internal/services"
	"github.com/mrlokans/envport/internal/storage"
)

func TestClipboards(t *testing.T) {
	tests := []struct {
		name string
		new  func() services.Clipboard
	}{
		{name: "memory", new: func() services.Clipboard { return NewMemory() }},
		{name: "file", new: func() services.Clipboard {
			return NewFile(storage.NewFiles(afero.NewMemMapFs()), "/home/user/.envport/clipboard")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			cb := tt.new()

			text, err := cb.ReadText(ctx)
			require.NoError(t, err)
			assert.Empty(t, text)

			require.NoError(t, cb.WriteText(ctx, `{"source":"mockoon"}`))
			text, err = cb.ReadText(ctx)
			require.NoError(t, err)
			assert.Equal(t, `{"source":"mockoon"}`, text)

			require.NoError(t, cb.WriteText(ctx, "second"))
			text, err = cb.ReadText(ctx)
			require.NoError(t, err)
			assert.Equal(t, "second", text)
		})
	}
}
