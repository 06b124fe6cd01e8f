package registry

import (
    "encoding/json"
    "errors"
    "fmt"
    "os"
    "path/filepath"
    "strings"

    "golang.org/x/text/cases"
    "golang.org/x/text/language"
)

// Module groups the checkpoints belonging to one unit of a course.
type Module struct {
    ID          int      `json:"id"`
    Name        string   `json:"name"`
    Checkpoints []string `json:"checkpoints"`
}

// Course is one registry entry. Existing entries are never mutated; the
// store only appends.
type Course struct {
    Name    string   `json:"name"`
    Modules []Module `json:"modules"`
}

// Store persists the course registry as a single JSON file next to the
// per-course html/json directories. Every mutation reads the whole file,
// computes, and rewrites it through a temp file and rename. Concurrent
// processes against one registry file are not supported.
type Store struct {
    root string
    path string
}

// New returns a store rooted at root. When path is empty the registry file
// defaults to <root>/courses.json.
func New(root, path string) *Store {
    if path == "" {
        path = filepath.Join(root, "courses.json")
    }
    return &Store{root: root, path: path}
}

// Path returns the registry file location.
func (s *Store) Path() string { return s.path }

// EnsureCourse creates the on-disk html/json directories for a course and
// appends a registry entry when the course is not yet known. It is
// idempotent and returns the two directories either way.
func (s *Store) EnsureCourse(courseID string) (htmlDir, jsonDir string, err error) {
    if strings.TrimSpace(courseID) == "" {
        return "", "", errors.New("registry: empty course id")
    }
    htmlDir = filepath.Join(s.root, courseID, "html")
    jsonDir = filepath.Join(s.root, courseID, "json")
    if err := os.MkdirAll(htmlDir, 0o755); err != nil {
        return "", "", fmt.Errorf("create html dir: %w", err)
    }
    if err := os.MkdirAll(jsonDir, 0o755); err != nil {
        return "", "", fmt.Errorf("create json dir: %w", err)
    }

    reg, err := s.load()
    if err != nil {
        return "", "", err
    }
    if _, ok := reg[courseID]; ok {
        return htmlDir, jsonDir, nil
    }
    reg[courseID] = Course{Name: DisplayName(courseID)}
    if err := s.save(reg); err != nil {
        return "", "", err
    }
    return htmlDir, jsonDir, nil
}

// EnsureModule appends a new module holding checkpoint unless the checkpoint
// already appears in any module of the course. The new module's id is one
// greater than the largest existing id, starting at 1. Idempotent.
func (s *Store) EnsureModule(courseID, checkpoint string) error {
    reg, err := s.load()
    if err != nil {
        return err
    }
    course, ok := reg[courseID]
    if !ok {
        return fmt.Errorf("registry: unknown course %q", courseID)
    }
    maxID := 0
    for _, m := range course.Modules {
        if m.ID > maxID {
            maxID = m.ID
        }
        for _, cp := range m.Checkpoints {
            if cp == checkpoint {
                return nil
            }
        }
    }
    course.Modules = append(course.Modules, Module{
        ID:          maxID + 1,
        Name:        DisplayName(checkpoint),
        Checkpoints: []string{checkpoint},
    })
    reg[courseID] = course
    return s.save(reg)
}

func (s *Store) load() (map[string]Course, error) {
    b, err := os.ReadFile(s.path)
    if errors.Is(err, os.ErrNotExist) {
        return map[string]Course{}, nil
    }
    if err != nil {
        return nil, fmt.Errorf("read registry: %w", err)
    }
    reg := map[string]Course{}
    if err := json.Unmarshal(b, &reg); err != nil {
        return nil, fmt.Errorf("parse registry %s: %w", s.path, err)
    }
    return reg, nil
}

func (s *Store) save(reg map[string]Course) error {
    b, err := json.MarshalIndent(reg, "", "  ")
    if err != nil {
        return fmt.Errorf("encode registry: %w", err)
    }
    if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
        return fmt.Errorf("create registry dir: %w", err)
    }
    tmp := s.path + ".tmp"
    if err := os.WriteFile(tmp, append(b, '\n'), 0o644); err != nil {
        return fmt.Errorf("write registry: %w", err)
    }
    if err := os.Rename(tmp, s.path); err != nil {
        return fmt.Errorf("replace registry: %w", err)
    }
    return nil
}

// DisplayName derives a human-readable name from an identifier:
// separators become spaces and each word is title-cased, so
// "getting-started_2" reads "Getting Started 2".
func DisplayName(id string) string {
    s := strings.NewReplacer("-", " ", "_", " ").Replace(id)
    s = strings.Join(strings.Fields(s), " ")
    return cases.Title(language.English).String(s)
}
