package obs

import (
	"io"

	log "github.com/sirupsen/logrus"
)

// Setup configures the process-wide logger. Unknown levels fall back to info.
func Setup(level string, out io.Writer) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}

	log.SetLevel(lvl)
	log.SetOutput(out)
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
}
