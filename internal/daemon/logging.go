package daemon

import (
	"io"
	"log"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// SetupLogging points the standard logger at a size-rotated file under home.
// When console is true log lines are also copied to stderr. The returned
// closer flushes and closes the file.
func SetupLogging(cfg Config, home string, console bool) io.Closer {
	path := cfg.LogFile(home)
	if path == "" {
		if !console {
			log.SetOutput(io.Discard)
		}
		return io.NopCloser(nil)
	}

	lj := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    max(1, cfg.Logging.MaxSizeMB),
		MaxBackups: max(0, cfg.Logging.MaxFiles),
	}
	if console {
		log.SetOutput(io.MultiWriter(os.Stderr, lj))
	} else {
		log.SetOutput(lj)
	}
	log.SetFlags(log.LstdFlags)
	return lj
}

// Debug reports whether per-tick logging is enabled.
func (c Config) Debug() bool {
	return strings.EqualFold(c.Logging.Level, "debug")
}
