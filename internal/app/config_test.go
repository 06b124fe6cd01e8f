package app

import (
    "os"
    "path/filepath"
    "testing"
)

func TestLoadConfigFile_YAMLOverlay(t *testing.T) {
    dir := t.TempDir()
    path := filepath.Join(dir, "quizextract.yaml")
    content := "htmlDir: saved/html\njsonDir: saved/json\ncourses:\n  root: data/courses\n  registry: data/registry.json\nverbose: true\n"
    if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
        t.Fatalf("write config: %v", err)
    }

    fc, err := LoadConfigFile(path)
    if err != nil {
        t.Fatalf("LoadConfigFile: %v", err)
    }

    cfg := Config{Name: "cp1", HTMLDir: DefaultHTMLDir, JSONDir: DefaultJSONDir, CoursesRoot: DefaultCoursesRoot}
    ApplyFileConfig(&cfg, fc)
    if cfg.HTMLDir != "saved/html" || cfg.JSONDir != "saved/json" {
        t.Fatalf("file config must replace defaults, got %+v", cfg)
    }
    if cfg.CoursesRoot != "data/courses" || cfg.RegistryPath != "data/registry.json" {
        t.Fatalf("courses overlay missing, got %+v", cfg)
    }
    if !cfg.Verbose {
        t.Fatalf("verbose overlay missing")
    }
}

func TestApplyFileConfig_FlagsWin(t *testing.T) {
    fc := FileConfig{HTMLDir: "from/file"}
    cfg := Config{Name: "cp1", HTMLDir: "from/flag"}
    ApplyFileConfig(&cfg, fc)
    if cfg.HTMLDir != "from/flag" {
        t.Fatalf("explicit flag value must survive overlay, got %q", cfg.HTMLDir)
    }
}

func TestLoadConfigFile_JSON(t *testing.T) {
    dir := t.TempDir()
    path := filepath.Join(dir, "config.json")
    if err := os.WriteFile(path, []byte(`{"htmlDir":"h","jsonDir":"j"}`), 0o644); err != nil {
        t.Fatalf("write config: %v", err)
    }
    fc, err := LoadConfigFile(path)
    if err != nil {
        t.Fatalf("LoadConfigFile: %v", err)
    }
    if fc.HTMLDir != "h" || fc.JSONDir != "j" {
        t.Fatalf("unexpected config %+v", fc)
    }
}

func TestValidateConfig(t *testing.T) {
    if err := ValidateConfig(Config{}); err == nil {
        t.Fatalf("missing name must fail")
    }
    if err := ValidateConfig(Config{Name: "cp1", HTMLDir: "h", JSONDir: "j"}); err != nil {
        t.Fatalf("standalone config should validate: %v", err)
    }
    if err := ValidateConfig(Config{Name: "cp1", CourseID: "c"}); err == nil {
        t.Fatalf("course config without root must fail")
    }
    if err := ValidateConfig(Config{Name: "cp1", CourseID: "c", CoursesRoot: "r"}); err != nil {
        t.Fatalf("course config should validate: %v", err)
    }
}
