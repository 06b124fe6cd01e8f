package app

import (
    "encoding/json"
    "fmt"
    "os"
    "path/filepath"

    yaml "gopkg.in/yaml.v3"
)

// FileConfig is the optional single-file configuration schema. Flags always
// win; the file supplies defaults for anything still at its built-in value.
type FileConfig struct {
    HTMLDir string `yaml:"htmlDir" json:"htmlDir"`
    JSONDir string `yaml:"jsonDir" json:"jsonDir"`

    Courses struct {
        Root     string `yaml:"root" json:"root"`
        Registry string `yaml:"registry" json:"registry"`
    } `yaml:"courses" json:"courses"`

    Verbose bool `yaml:"verbose" json:"verbose"`
}

// LoadConfigFile reads YAML or JSON into FileConfig, picking the codec by
// extension and trying both for anything else.
func LoadConfigFile(path string) (FileConfig, error) {
    var fc FileConfig
    b, err := os.ReadFile(path)
    if err != nil {
        return fc, err
    }
    switch filepath.Ext(path) {
    case ".yaml", ".yml":
        if err := yaml.Unmarshal(b, &fc); err != nil {
            return fc, fmt.Errorf("parse yaml: %w", err)
        }
    case ".json":
        if err := json.Unmarshal(b, &fc); err != nil {
            return fc, fmt.Errorf("parse json: %w", err)
        }
    default:
        if err := yaml.Unmarshal(b, &fc); err != nil {
            if jerr := json.Unmarshal(b, &fc); jerr != nil {
                return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
            }
        }
    }
    return fc, nil
}

// ApplyFileConfig overlays file values into cfg for fields that are unset or
// still at their flag defaults, preserving anything set explicitly.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
    if cfg == nil {
        return
    }
    if (cfg.HTMLDir == "" || cfg.HTMLDir == DefaultHTMLDir) && fc.HTMLDir != "" {
        cfg.HTMLDir = fc.HTMLDir
    }
    if (cfg.JSONDir == "" || cfg.JSONDir == DefaultJSONDir) && fc.JSONDir != "" {
        cfg.JSONDir = fc.JSONDir
    }
    if (cfg.CoursesRoot == "" || cfg.CoursesRoot == DefaultCoursesRoot) && fc.Courses.Root != "" {
        cfg.CoursesRoot = fc.Courses.Root
    }
    if cfg.RegistryPath == "" && fc.Courses.Registry != "" {
        cfg.RegistryPath = fc.Courses.Registry
    }
    if !cfg.Verbose && fc.Verbose {
        cfg.Verbose = true
    }
}
