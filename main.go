package main

import (
	"io"
	"os"

	"github.com/envelope-zero/ledger/internal/cli"
	"github.com/envelope-zero/ledger/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// @title			Envelope Ledger
// @description	An envelope budgeting ledger
// @license.name	AGPL-3.0
// @license.url	https://www.gnu.org/licenses/agpl-3.0.en.html
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// gin uses debug as the default mode, we use release for
	// security reasons
	gin.SetMode(cfg.GinMode)

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release. Logs go to stderr so that command output
	// like an export to stdout stays usable.
	output := io.Writer(os.Stderr)
	if (cfg.LogFormat == "" && gin.IsDebugging()) || cfg.LogFormat == "human" {
		output = zerolog.ConsoleWriter{Out: os.Stderr}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	if err := cli.New(cfg).Execute(); err != nil {
		log.Fatal().Msg(err.Error())
	}
}
