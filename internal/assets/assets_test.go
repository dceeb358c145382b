package assets_test

import (
	"bytes"
	"encoding/binary"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clipregex/internal/assets"
	"clipregex/internal/logging"
)

func TestDefaultPNG(t *testing.T) {
	img, err := png.Decode(bytes.NewReader(assets.DefaultPNG()))
	require.NoError(t, err)

	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 64, img.Bounds().Dy())

	r, g, b, a := img.At(32, 32).RGBA()
	assert.Greater(t, r, g)
	assert.Greater(t, r, b)
	assert.NotZero(t, a)

	_, _, _, corner := img.At(0, 0).RGBA()
	assert.Zero(t, corner)
}

func TestToICO(t *testing.T) {
	data := assets.DefaultPNG()

	ico, err := assets.ToICO(data)
	require.NoError(t, err)
	require.Len(t, ico, 22+len(data))

	assert.Equal(t, uint16(0), binary.LittleEndian.Uint16(ico[0:]))
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(ico[2:]))
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(ico[4:]))
	assert.Equal(t, byte(64), ico[6])
	assert.Equal(t, byte(64), ico[7])
	assert.Equal(t, uint16(32), binary.LittleEndian.Uint16(ico[12:]))
	assert.Equal(t, uint32(len(data)), binary.LittleEndian.Uint32(ico[14:]))
	assert.Equal(t, uint32(22), binary.LittleEndian.Uint32(ico[18:]))
	assert.Equal(t, data, ico[22:])
}

func TestToICORejectsNonPNG(t *testing.T) {
	_, err := assets.ToICO([]byte("not an image"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	pngPath := filepath.Join(dir, "icon.png")
	require.NoError(t, os.WriteFile(pngPath, assets.DefaultPNG(), 0o644))

	icoPath := filepath.Join(dir, "icon.ico")
	require.NoError(t, os.WriteFile(icoPath, []byte{0, 0, 1, 0}, 0o644))

	badPath := filepath.Join(dir, "broken.png")
	require.NoError(t, os.WriteFile(badPath, []byte("garbage"), 0o644))

	got, err := assets.Load(pngPath, false)
	require.NoError(t, err)
	assert.Equal(t, assets.DefaultPNG(), got)

	got, err = assets.Load(pngPath, true)
	require.NoError(t, err)
	assert.Equal(t, assets.DefaultPNG(), got[22:])

	got, err = assets.Load(icoPath, true)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 1, 0}, got)

	_, err = assets.Load(icoPath, false)
	assert.Error(t, err)

	_, err = assets.Load(badPath, false)
	assert.Error(t, err)

	_, err = assets.Load(filepath.Join(dir, "missing.png"), false)
	assert.Error(t, err)
}

func TestForTrayFallsBackOnBadPath(t *testing.T) {
	var buf bytes.Buffer

	logger := logging.NewWriter(&buf, 0)
	data := assets.ForTray(filepath.Join(t.TempDir(), "missing.png"), logger)

	assert.NotEmpty(t, data)
	assert.Contains(t, buf.String(), "Failed to load tray icon")
}
