// Package assets provides the tray icon.
package assets

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
)

const iconSize = 64

var iconColor = color.RGBA{R: 0xd3, G: 0x2f, B: 0x2f, A: 0xff}

var defaultPNG = sync.OnceValue(func() []byte {
	img := image.NewRGBA(image.Rect(0, 0, iconSize, iconSize))

	// Filled disc with a transparent border.
	c := float64(iconSize-1) / 2
	r2 := (c - 2) * (c - 2)

	for y := 0; y < iconSize; y++ {
		for x := 0; x < iconSize; x++ {
			dx, dy := float64(x)-c, float64(y)-c
			if dx*dx+dy*dy <= r2 {
				img.SetRGBA(x, y, iconColor)
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}

	return buf.Bytes()
})

// DefaultPNG returns the built-in red icon as PNG bytes.
func DefaultPNG() []byte {
	return defaultPNG()
}

// ForTray returns icon bytes in the format the tray expects on this platform:
// ICO on Windows, PNG elsewhere. iconPath overrides the built-in icon; a
// path that cannot be used is logged and ignored.
func ForTray(iconPath string, logger *slog.Logger) []byte {
	wantICO := runtime.GOOS == "windows"

	if iconPath != "" {
		data, err := Load(iconPath, wantICO)
		if err == nil {
			return data
		}

		logger.Warn("Failed to load tray icon, using default", "path", iconPath, "error", err.Error())
	}

	if wantICO {
		ico, err := ToICO(DefaultPNG())
		if err != nil {
			panic(err)
		}

		return ico
	}

	return DefaultPNG()
}

// Load reads an icon file. PNG files are wrapped as ICO when wantICO is set;
// ICO files are only accepted when wantICO is set.
func Load(path string, wantICO bool) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading icon %s", path)
	}

	if strings.EqualFold(filepath.Ext(path), ".ico") {
		if !wantICO {
			return nil, errors.Newf("icon %s: ICO files are only supported on windows", path)
		}

		return data, nil
	}

	if _, err := png.DecodeConfig(bytes.NewReader(data)); err != nil {
		return nil, errors.Wrapf(err, "icon %s is not a PNG image", path)
	}

	if wantICO {
		return ToICO(data)
	}

	return data, nil
}

// ToICO wraps PNG bytes in a single-image ICO container.
func ToICO(pngData []byte) ([]byte, error) {
	cfg, err := png.DecodeConfig(bytes.NewReader(pngData))
	if err != nil {
		return nil, errors.Wrap(err, "decoding PNG header")
	}

	if cfg.Width > 256 || cfg.Height > 256 {
		return nil, errors.Newf("icon is %dx%d, ICO entries are at most 256x256", cfg.Width, cfg.Height)
	}

	const headerSize = 6 + 16

	var buf bytes.Buffer

	buf.Grow(headerSize + len(pngData))

	// ICONDIR then one ICONDIRENTRY; a dimension of 0 means 256.
	_ = binary.Write(&buf, binary.LittleEndian, struct {
		Reserved, Type, Count uint16
		Width, Height         uint8
		Colors, Reserved2     uint8
		Planes, BitCount      uint16
		Size, Offset          uint32
	}{
		Type:     1,
		Count:    1,
		Width:    uint8(cfg.Width % 256),
		Height:   uint8(cfg.Height % 256),
		Planes:   1,
		BitCount: 32,
		Size:     uint32(len(pngData)),
		Offset:   headerSize,
	})

	buf.Write(pngData)

	return buf.Bytes(), nil
}
