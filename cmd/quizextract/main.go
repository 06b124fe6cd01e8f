package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/edutools/quizextract/internal/app"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		htmlDir    string
		jsonDir    string
		configPath string
		verbose    bool
	)
	flag.StringVar(&htmlDir, "html.dir", envOr("QUIZ_HTML_DIR", app.DefaultHTMLDir), "Directory holding saved checkpoint HTML pages")
	flag.StringVar(&jsonDir, "json.dir", envOr("QUIZ_JSON_DIR", app.DefaultJSONDir), "Directory to write extracted question JSON")
	flag.StringVar(&configPath, "config", os.Getenv("QUIZ_CONFIG"), "Optional YAML/JSON config file")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: quizextract [flags] <checkpoint-name>\n\nReads <html.dir>/<name>.html and writes <json.dir>/<name>.json.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "quizextract: exactly one checkpoint name is required")
		flag.Usage()
		os.Exit(1)
	}

	cfg := app.Config{
		Name:    flag.Arg(0),
		HTMLDir: htmlDir,
		JSONDir: jsonDir,
		Verbose: verbose,
	}
	if configPath != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "quizextract: load config: %v\n", err)
			os.Exit(1)
		}
		app.ApplyFileConfig(&cfg, fc)
	}
	if err := app.ValidateConfig(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "quizextract: %v\n", err)
		os.Exit(1)
	}

	if err := app.RunExtract(cfg); err != nil {
		log.Error().Err(err).Msg("extraction failed")
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
