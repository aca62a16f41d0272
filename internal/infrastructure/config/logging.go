package config

// LoggingConfig configures the zerolog logger used by the CLI and the mediator
type LoggingConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`

	// json writes one object per line; text is the human readable console format
	Format string `mapstructure:"format" validate:"required,oneof=json text"`

	Output   string `mapstructure:"output" validate:"required,oneof=stdout stderr file"`
	FilePath string `mapstructure:"file_path" validate:"required_if=Output file"`

	IncludeCaller bool `mapstructure:"include_caller"`
}
