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
		coursesRoot  string
		registryPath string
		configPath   string
		verbose      bool
	)
	flag.StringVar(&coursesRoot, "courses.root", envOr("QUIZ_COURSES_ROOT", app.DefaultCoursesRoot), "Base directory holding one subdirectory per course")
	flag.StringVar(&registryPath, "courses.registry", os.Getenv("QUIZ_COURSES_REGISTRY"), "Registry file path (default <courses.root>/courses.json)")
	flag.StringVar(&configPath, "config", os.Getenv("QUIZ_CONFIG"), "Optional YAML/JSON config file")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: coursesync [flags] <course-folder> <checkpoint-name>\n\nReads <courses.root>/<course>/html/<name>.html, writes the json sibling,\nand records the checkpoint in the course registry.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if flag.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "coursesync: a course folder and a checkpoint name are required")
		flag.Usage()
		os.Exit(1)
	}

	cfg := app.Config{
		CourseID:     flag.Arg(0),
		Name:         flag.Arg(1),
		CoursesRoot:  coursesRoot,
		RegistryPath: registryPath,
		Verbose:      verbose,
	}
	if configPath != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "coursesync: load config: %v\n", err)
			os.Exit(1)
		}
		app.ApplyFileConfig(&cfg, fc)
	}
	if err := app.ValidateConfig(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "coursesync: %v\n", err)
		os.Exit(1)
	}

	if err := app.RunSync(cfg); err != nil {
		log.Error().Err(err).Msg("sync failed")
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
