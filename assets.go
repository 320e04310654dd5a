package calcreport

import (
	"fmt"

	"github.com/alnah/go-calcreport/internal/assets"
)

// AssetLoader supplies the report template and stylesheet by name. The
// renderer asks for "report" from both LoadTemplate and LoadStyle.
type AssetLoader interface {
	LoadStyle(name string) (string, error)
	LoadTemplate(name string) (string, error)
}

// Asset errors re-exported for callers of NewAssetLoader.
var (
	ErrStyleNotFound    = assets.ErrStyleNotFound
	ErrTemplateNotFound = assets.ErrTemplateNotFound
	ErrInvalidAssetName = assets.ErrInvalidAssetName
)

// NewAssetLoader returns a loader that reads dir/styles/report.css and
// dir/templates/report.html when present and falls back to the built-in
// assets otherwise. An empty dir yields the built-in assets only.
func NewAssetLoader(dir string) (AssetLoader, error) {
	r, err := assets.NewAssetResolver(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}
	return r, nil
}

// Compile-time interface checks.
var (
	_ AssetLoader = (*assets.AssetResolver)(nil)
	_ AssetLoader = (*assets.EmbeddedLoader)(nil)
)
