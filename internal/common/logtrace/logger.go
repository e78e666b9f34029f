// Package logtrace initializes the process-wide zerolog logger. The seeder is
// an operator-facing provisioning tool, so the default output is a console
// writer; structured JSON can be requested for log capture in CI.
package logtrace

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func InitLogger(json bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if json {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
		return
	}
	w := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
}
