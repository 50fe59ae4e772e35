package assets

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

//go:embed *.png
var assetsFS embed.FS

var (
	cacheMu sync.Mutex
	cache   = make(map[string]*ebiten.Image)
)

// LoadImage loads an asset by assets-relative path, preferring a file under
// ./assets on disk so edited sheets are picked up on reload. Decoded images
// are cached by clean path; call Forget to drop a cached entry.
func LoadImage(p string) (*ebiten.Image, error) {
	clean := cleanAssetPath(p)
	cacheMu.Lock()
	defer cacheMu.Unlock()
	if img, ok := cache[clean]; ok {
		return img, nil
	}
	src, err := DecodeImage(clean)
	if err != nil {
		return nil, err
	}
	img := ebiten.NewImageFromImage(src)
	cache[clean] = img
	return img, nil
}

// DecodeImage decodes an asset without creating a GPU image.
func DecodeImage(p string) (image.Image, error) {
	b, err := LoadFile(p)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("assets: decode %s: %w", p, err)
	}
	return img, nil
}

// LoadFile loads an asset by assets-relative path.
func LoadFile(p string) ([]byte, error) {
	clean := cleanAssetPath(p)
	if b, err := os.ReadFile(filepath.Join("assets", filepath.FromSlash(clean))); err == nil {
		return b, nil
	}
	b, err := assetsFS.ReadFile(clean)
	if err != nil {
		return nil, fmt.Errorf("assets: read %s: %w", p, err)
	}
	return b, nil
}

// Forget drops a cached image so the next LoadImage re-reads it.
func Forget(p string) {
	cacheMu.Lock()
	delete(cache, cleanAssetPath(p))
	cacheMu.Unlock()
}

func cleanAssetPath(p string) string {
	if p == "" {
		return ""
	}
	s := filepath.ToSlash(p)
	if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
		return s[idx+len("/assets/"):]
	}
	if after, ok := strings.CutPrefix(s, "assets/"); ok {
		return after
	}
	if filepath.IsAbs(p) {
		return path.Base(s)
	}
	return path.Clean(s)
}
