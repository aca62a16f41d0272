package config

// CatalogConfig selects the reference data the catalog is loaded from
type CatalogConfig struct {
	// Directory holding components.json and ships.json. Empty uses the
	// embedded reference data.
	Path string `mapstructure:"path" validate:"omitempty,dir"`
}
