package logging

import (
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// Name is the root logger name; subsystems use Named.
const Name = "igvf-catalog"

// ValidLevel reports whether level is "off", empty, or a level hclog knows.
func ValidLevel(level string) bool {
	lvl := strings.ToLower(strings.TrimSpace(level))
	return lvl == "" || lvl == "off" || hclog.LevelFromString(lvl) != hclog.NoLevel
}

// New returns a leveled logger writing to w (stderr when nil).
// An empty, "off" or unknown level yields a logger that discards everything.
func New(level string, w io.Writer) hclog.Logger {
	lvl := hclog.LevelFromString(level)
	if lvl == hclog.NoLevel {
		return hclog.NewNullLogger()
	}
	if w == nil {
		w = os.Stderr
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   Name,
		Level:  lvl,
		Output: w,
	})
}
