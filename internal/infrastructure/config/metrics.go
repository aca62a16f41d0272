package config

// MetricsConfig controls the Prometheus endpoint served while a command runs
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// Host defaults to localhost
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port" validate:"omitempty,min=1024,max=65535"`
	Path string `mapstructure:"path" validate:"omitempty,startswith=/"`
}
