package app

import (
    "bytes"
    "encoding/json"
    "fmt"
    "os"
    "path/filepath"

    "github.com/PuerkitoBio/goquery"
    "github.com/rs/zerolog/log"

    "github.com/edutools/quizextract/internal/extract"
    "github.com/edutools/quizextract/internal/registry"
    "github.com/edutools/quizextract/internal/report"
)

// RunExtract processes one checkpoint page in strict mode: only questions
// with at least one correct-answer badge make it into the output.
func RunExtract(cfg Config) error {
    in := filepath.Join(cfg.HTMLDir, cfg.Name+".html")
    out := filepath.Join(cfg.JSONDir, cfg.Name+".json")
    res, err := processFile(in, out, extract.Strict)
    if err != nil {
        return err
    }
    report.Print(os.Stdout, cfg.Name, res, report.Check(res.Questions, true))
    return nil
}

// RunSync processes one checkpoint page in tolerant mode, resolving its
// directories through the course registry and recording the checkpoint as a
// module of the course. Registry updates are idempotent, so re-running a
// sync only rewrites the output JSON.
func RunSync(cfg Config) error {
    store := registry.New(cfg.CoursesRoot, cfg.RegistryPath)
    htmlDir, jsonDir, err := store.EnsureCourse(cfg.CourseID)
    if err != nil {
        return fmt.Errorf("ensure course: %w", err)
    }
    in := filepath.Join(htmlDir, cfg.Name+".html")
    out := filepath.Join(jsonDir, cfg.Name+".json")
    res, err := processFile(in, out, extract.Tolerant)
    if err != nil {
        return err
    }
    if err := store.EnsureModule(cfg.CourseID, cfg.Name); err != nil {
        return fmt.Errorf("ensure module: %w", err)
    }
    report.Print(os.Stdout, cfg.Name, res, report.Check(res.Questions, false))
    return nil
}

// processFile runs one extraction end to end: open, parse, extract, and
// overwrite the destination JSON. A missing input file fails before any
// extraction happens and nothing is written.
func processFile(in, out string, fn func(*goquery.Document) extract.Result) (extract.Result, error) {
    f, err := os.Open(in)
    if err != nil {
        return extract.Result{}, fmt.Errorf("open input: %w", err)
    }
    defer f.Close()

    doc, err := goquery.NewDocumentFromReader(f)
    if err != nil {
        return extract.Result{}, fmt.Errorf("parse html: %w", err)
    }

    res := fn(doc)
    records := res.Questions
    if records == nil {
        records = []extract.Record{}
    }
    if err := writeJSON(out, records); err != nil {
        return extract.Result{}, err
    }
    log.Info().Int("questions", len(records)).Str("output", out).Msg("extraction complete")
    return res, nil
}

// writeJSON pretty-prints v over path in full. HTML escaping is disabled so
// question text with angle brackets or ampersands stays readable.
func writeJSON(path string, v any) error {
    if dir := filepath.Dir(path); dir != "." {
        if err := os.MkdirAll(dir, 0o755); err != nil {
            return fmt.Errorf("create output dir: %w", err)
        }
    }
    var buf bytes.Buffer
    enc := json.NewEncoder(&buf)
    enc.SetEscapeHTML(false)
    enc.SetIndent("", "  ")
    if err := enc.Encode(v); err != nil {
        return fmt.Errorf("encode json: %w", err)
    }
    if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
        return fmt.Errorf("write %s: %w", path, err)
    }
    return nil
}
