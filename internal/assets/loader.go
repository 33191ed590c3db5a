package assets

// DefaultStyleName is the name of the built-in CSS style.
const DefaultStyleName = "default"

// AssetLoader defines the contract for loading CSS styles.
// Implementations may load from embedded assets, filesystem, etc.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) (string, error)

	// ListStyles returns the style names this loader can serve, sorted.
	ListStyles() ([]string, error)
}
