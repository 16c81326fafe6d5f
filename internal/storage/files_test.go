package storage

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFiles_WriteThenRead(t *testing.T) {
	files := NewFiles(afero.NewMemMapFs())

	require.NoError(t, files.WriteFile("/exports/nested/env.json", []byte(`{"a":1}`)))

	data, err := files.ReadFile("/exports/nested/env.json")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(data))

	exists, err := files.Exists("/exports/nested/env.json")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestFiles_ReadMissing(t *testing.T) {
	files := NewFiles(afero.NewMemMapFs())

	_, err := files.ReadFile("/missing.json")
	require.Error(t, err)
	assert.True(t, IsNotExist(err))
	assert.Contains(t, err.Error(), "/missing.json")
}

func TestFiles_List(t *testing.T) {
	fs := afero.NewMemMapFs()
	files := NewFiles(fs)
	require.NoError(t, files.WriteFile("/dir/a.json", []byte("{}")))
	require.NoError(t, files.WriteFile("/dir/b.yaml", []byte("a: 1")))
	require.NoError(t, files.WriteFile("/dir/sub/c.json", []byte("{}")))

	all, err := files.List("/dir", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	jsonOnly, err := files.List("/dir", ".json")
	require.NoError(t, err)
	require.Len(t, jsonOnly, 1)
	assert.Equal(t, "a.json", jsonOnly[0].Name)
	assert.Equal(t, "/dir/a.json", jsonOnly[0].Path)
}

func TestFiles_Remove(t *testing.T) {
	files := NewFiles(afero.NewMemMapFs())
	require.NoError(t, files.WriteFile("/dir/a.json", []byte("{}")))

	require.NoError(t, files.Remove("/dir/a.json"))

	exists, err := files.Exists("/dir/a.json")
	require.NoError(t, err)
	assert.False(t, exists)

	err = files.Remove("/dir/a.json")
	require.Error(t, err)
	assert.True(t, IsNotExist(err))
}
