// Package fonts resolves Persian fonts for stamped text. A registry is
// built once at startup from the font directory; resolution then walks a
// fallback chain and never fails.
package fonts

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"persian-translator/internal/logger"
)

// FallbackFont is the built-in font used when no Persian font is available.
// It is always resolvable because it ships with every PDF viewer.
const FallbackFont = "Helvetica"

// Asset is one registered font file.
type Asset struct {
	// Name is the font name used in text stamps, the base name of the file.
	Name   string
	Family string
	Bold   bool
	Light  bool
	Path   string
}

// knownFiles maps the recognized Persian font files to their style.
var knownFiles = map[string]Asset{
	"Vazirmatn-Regular.ttf": {Family: "Vazirmatn"},
	"Vazirmatn-Bold.ttf":    {Family: "Vazirmatn", Bold: true},
	"Vazirmatn-Light.ttf":   {Family: "Vazirmatn", Light: true},
	"Sahel.ttf":             {Family: "Sahel"},
	"Tanha.ttf":             {Family: "Tanha"},
}

// Registry holds the fonts found in the font directory.
type Registry struct {
	assets        []Asset
	defaultFamily string
}

// NewRegistry scans dir for known Persian font files and installs the ones
// found into the PDF user font store. A missing directory or an empty scan
// is not an error; resolution then falls back to the built-in font.
func NewRegistry(dir, defaultFamily string) (*Registry, error) {
	r := &Registry{defaultFamily: defaultFamily}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn("font directory not found, Persian fonts unavailable",
				logger.String("dir", dir))
			return r, nil
		}
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		asset, ok := knownFiles[e.Name()]
		if !ok {
			continue
		}
		asset.Path = filepath.Join(dir, e.Name())
		asset.Name = strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		r.assets = append(r.assets, asset)
		files = append(files, asset.Path)
	}

	if len(files) > 0 {
		if err := api.InstallFonts(files); err != nil {
			return nil, err
		}
	}

	logger.Info("font registry loaded",
		logger.String("dir", dir),
		logger.Int("fonts", len(r.assets)))
	return r, nil
}

// Resolve returns the font name to stamp with for the requested family and
// style. The chain is exact style match, then any font of the family, then
// the default family, then the built-in fallback. Resolve never fails.
func (r *Registry) Resolve(family string, bold, italic bool) string {
	// Persian fonts carry no italic variant; italic styles map to the
	// closest weight of the same family.
	if a, ok := r.find(family, bold); ok {
		return a.Name
	}
	if a, ok := r.anyOfFamily(family); ok {
		return a.Name
	}
	if a, ok := r.find(r.defaultFamily, bold); ok {
		return a.Name
	}
	if a, ok := r.anyOfFamily(r.defaultFamily); ok {
		return a.Name
	}
	return FallbackFont
}

// Assets returns the registered fonts.
func (r *Registry) Assets() []Asset {
	return r.assets
}

func (r *Registry) find(family string, bold bool) (Asset, bool) {
	for _, a := range r.assets {
		if strings.EqualFold(a.Family, family) && a.Bold == bold && !a.Light {
			return a, true
		}
	}
	return Asset{}, false
}

func (r *Registry) anyOfFamily(family string) (Asset, bool) {
	for _, a := range r.assets {
		if strings.EqualFold(a.Family, family) {
			return a, true
		}
	}
	return Asset{}, false
}
