package linkpage

import (
	"errors"

	"github.com/alnah/go-linkpage/internal/assets"
)

// DefaultStyle is the name of the built-in CSS style.
const DefaultStyle = assets.DefaultStyleName

// AssetLoader defines the contract for loading CSS styles.
// The library provides NewAssetLoader() for filesystem-based loading with
// fallback to embedded styles. Implement this interface for custom backends.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	LoadStyle(name string) (string, error)

	// ListStyles returns the available style names, sorted.
	ListStyles() ([]string, error)
}

// NewAssetLoader creates an AssetLoader for the given base path.
// If basePath is empty, returns a loader using only embedded styles.
// Returns ErrInvalidAssetPath if basePath is set but not a readable directory.
func NewAssetLoader(basePath string) (AssetLoader, error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return &assetLoaderAdapter{resolver: resolver}, nil
}

// assetLoaderAdapter wraps the internal resolver to return public errors.
type assetLoaderAdapter struct {
	resolver *assets.AssetResolver
}

func (a *assetLoaderAdapter) LoadStyle(name string) (string, error) {
	content, err := a.resolver.LoadStyle(name)
	if err != nil {
		return "", convertAssetError(err)
	}
	return content, nil
}

func (a *assetLoaderAdapter) ListStyles() ([]string, error) {
	names, err := a.resolver.ListStyles()
	if err != nil {
		return nil, convertAssetError(err)
	}
	return names, nil
}

// convertAssetError maps internal asset errors to public errors.
func convertAssetError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, assets.ErrStyleNotFound),
		errors.Is(err, assets.ErrInvalidAssetName): // invalid name means not found
		return wrapError(ErrStyleNotFound, err)
	case errors.Is(err, assets.ErrInvalidBasePath),
		errors.Is(err, assets.ErrPathTraversal):
		return wrapError(ErrInvalidAssetPath, err)
	case errors.Is(err, assets.ErrAssetRead):
		return wrapError(ErrReadStyle, err)
	default:
		return err
	}
}

// wrapError keeps the original message while matching the public sentinel
// with errors.Is. Internal errors are not exposed since they live in internal/.
func wrapError(sentinel, original error) error {
	return &wrappedAssetError{sentinel: sentinel, original: original}
}

type wrappedAssetError struct {
	sentinel error
	original error
}

func (e *wrappedAssetError) Error() string {
	return e.original.Error()
}

func (e *wrappedAssetError) Unwrap() error {
	return e.sentinel
}
