package logging

import (
	"strings"

	"github.com/rs/zerolog"
)

// Adapter exposes a zerolog logger through the application's Logger interface
type Adapter struct {
	log *zerolog.Logger
}

func NewAdapter(log *zerolog.Logger) *Adapter {
	return &Adapter{log: log}
}

// Log writes message at level with metadata as structured fields. Unknown
// levels are logged at info.
func (a *Adapter) Log(level, message string, metadata map[string]interface{}) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	a.log.WithLevel(lvl).Fields(metadata).Msg(message)
}
