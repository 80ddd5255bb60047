package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 最小合法 PNG 文件头
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func TestDiskSave(t *testing.T) {
	d, err := NewDisk(filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, err)

	t.Run("keeps original extension", func(t *testing.T) {
		p, err := d.Save("Cover.JPG", strings.NewReader("jpeg bytes"))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(p, PublicPrefix))
		assert.True(t, strings.HasSuffix(p, ".jpg"))

		b, err := os.ReadFile(filepath.Join(d.Dir, strings.TrimPrefix(p, PublicPrefix)))
		require.NoError(t, err)
		assert.Equal(t, "jpeg bytes", string(b))
	})

	t.Run("sniffs extension when missing", func(t *testing.T) {
		p, err := d.Save("blob", bytes.NewReader(pngHeader))
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(p, ".png"), p)
	})

	t.Run("names are unique", func(t *testing.T) {
		a, err := d.Save("a.png", bytes.NewReader(pngHeader))
		require.NoError(t, err)
		b, err := d.Save("a.png", bytes.NewReader(pngHeader))
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})

	t.Run("large file is copied whole", func(t *testing.T) {
		payload := bytes.Repeat([]byte("x"), 10_000)
		p, err := d.Save("big.gif", bytes.NewReader(payload))
		require.NoError(t, err)
		b, err := os.ReadFile(filepath.Join(d.Dir, strings.TrimPrefix(p, PublicPrefix)))
		require.NoError(t, err)
		assert.Len(t, b, len(payload))
	})
}

func TestDiskRemove(t *testing.T) {
	d, err := NewDisk(t.TempDir())
	require.NoError(t, err)

	p, err := d.Save("c.png", bytes.NewReader(pngHeader))
	require.NoError(t, err)
	assert.True(t, d.Owns(p))

	require.NoError(t, d.Remove(p))
	_, err = os.Stat(filepath.Join(d.Dir, strings.TrimPrefix(p, PublicPrefix)))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, d.Remove(p), "already gone is not an error")
	assert.NoError(t, d.Remove("https://cdn.example.com/x.png"), "foreign url ignored")

	assert.False(t, d.Owns("/uploads/../etc/passwd"))
	assert.False(t, d.Owns("/uploads/a/b.png"))
	assert.False(t, d.Owns("https://cdn.example.com/x.png"))
}
