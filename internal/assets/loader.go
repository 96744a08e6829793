package assets

// DefaultStyleName is the name of the built-in light stylesheet.
const DefaultStyleName = "default"

// AssetLoader defines the contract for loading stylesheets.
// Implementations may load from embedded assets, filesystem, S3, database, etc.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) (string, error)
}
