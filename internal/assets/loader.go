package assets

// Default asset names used by the report renderer.
const (
	DefaultTemplateName = "report"
	DefaultStyleName    = "report"
)

// AssetLoader defines the contract for loading report stylesheets and
// templates.
type AssetLoader interface {
	// LoadStyle loads a CSS stylesheet by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) (string, error)

	// LoadTemplate loads an html/template source by name (without .html
	// extension).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadTemplate(name string) (string, error)
}
