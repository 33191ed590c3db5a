package assets

// defaultLoader is the package-level embedded loader.
var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads a built-in CSS style by name using the embedded loader.
// The name should not include the .css extension or path components.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}

// ListStyles returns the names of the built-in styles, sorted.
func ListStyles() []string {
	names, _ := defaultLoader.ListStyles()
	return names
}
