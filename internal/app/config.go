package app

import (
    "errors"
    "strings"
)

// Defaults shared between flag registration and file-config overlay.
const (
    DefaultHTMLDir     = "assets/html"
    DefaultJSONDir     = "assets/json"
    DefaultCoursesRoot = "courses"
)

// Config carries everything one extraction run needs. Name is the checkpoint
// identifier (input file is <dir>/<name>.html); CourseID is set only for
// course-sync runs, which resolve their directories through the registry.
type Config struct {
    Name     string
    CourseID string

    // Standalone extraction directories (quizextract).
    HTMLDir string
    JSONDir string

    // Course registry settings (coursesync).
    CoursesRoot  string
    RegistryPath string

    Verbose bool
}

// ValidateConfig performs minimal precondition checks. Argument presence is
// checked in main before this runs; here we only guard against an unusable
// directory layout.
func ValidateConfig(cfg Config) error {
    if strings.TrimSpace(cfg.Name) == "" {
        return errors.New("config: checkpoint name is required")
    }
    if cfg.CourseID != "" {
        if strings.TrimSpace(cfg.CoursesRoot) == "" {
            return errors.New("config: courses root is required")
        }
        return nil
    }
    if strings.TrimSpace(cfg.HTMLDir) == "" {
        return errors.New("config: html dir is required")
    }
    if strings.TrimSpace(cfg.JSONDir) == "" {
        return errors.New("config: json dir is required")
    }
    return nil
}
