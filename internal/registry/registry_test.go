package registry

import (
    "encoding/json"
    "os"
    "path/filepath"
    "reflect"
    "testing"
)

func readRegistry(t *testing.T, path string) map[string]Course {
    t.Helper()
    b, err := os.ReadFile(path)
    if err != nil {
        t.Fatalf("read registry: %v", err)
    }
    reg := map[string]Course{}
    if err := json.Unmarshal(b, &reg); err != nil {
        t.Fatalf("parse registry: %v", err)
    }
    return reg
}

func TestEnsureCourse_CreatesDirsAndEntry(t *testing.T) {
    root := t.TempDir()
    s := New(root, "")

    htmlDir, jsonDir, err := s.EnsureCourse("network-basics")
    if err != nil {
        t.Fatalf("EnsureCourse: %v", err)
    }
    if htmlDir != filepath.Join(root, "network-basics", "html") {
        t.Fatalf("unexpected html dir %q", htmlDir)
    }
    for _, dir := range []string{htmlDir, jsonDir} {
        if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
            t.Fatalf("expected directory %q: %v", dir, err)
        }
    }

    reg := readRegistry(t, s.Path())
    course, ok := reg["network-basics"]
    if !ok {
        t.Fatalf("course entry missing: %v", reg)
    }
    if course.Name != "Network Basics" {
        t.Fatalf("unexpected display name %q", course.Name)
    }
}

func TestEnsureCourse_Idempotent(t *testing.T) {
    root := t.TempDir()
    s := New(root, "")

    if _, _, err := s.EnsureCourse("net"); err != nil {
        t.Fatalf("first EnsureCourse: %v", err)
    }
    if err := s.EnsureModule("net", "checkpoint-1"); err != nil {
        t.Fatalf("EnsureModule: %v", err)
    }
    before, err := os.ReadFile(s.Path())
    if err != nil {
        t.Fatalf("read registry: %v", err)
    }

    if _, _, err := s.EnsureCourse("net"); err != nil {
        t.Fatalf("second EnsureCourse: %v", err)
    }
    after, err := os.ReadFile(s.Path())
    if err != nil {
        t.Fatalf("read registry: %v", err)
    }
    if string(before) != string(after) {
        t.Fatalf("second EnsureCourse changed the registry:\n%s\nvs\n%s", before, after)
    }
}

func TestEnsureModule_AssignsIncreasingIDs(t *testing.T) {
    s := New(t.TempDir(), "")
    if _, _, err := s.EnsureCourse("net"); err != nil {
        t.Fatalf("EnsureCourse: %v", err)
    }

    if err := s.EnsureModule("net", "getting_started"); err != nil {
        t.Fatalf("EnsureModule: %v", err)
    }
    if err := s.EnsureModule("net", "vlans-and-trunking"); err != nil {
        t.Fatalf("EnsureModule: %v", err)
    }

    reg := readRegistry(t, s.Path())
    mods := reg["net"].Modules
    if len(mods) != 2 {
        t.Fatalf("expected 2 modules, got %d", len(mods))
    }
    if mods[0].ID != 1 || mods[1].ID != 2 {
        t.Fatalf("unexpected module ids %d, %d", mods[0].ID, mods[1].ID)
    }
    if mods[0].Name != "Getting Started" || mods[1].Name != "Vlans And Trunking" {
        t.Fatalf("unexpected module names %q, %q", mods[0].Name, mods[1].Name)
    }
    if !reflect.DeepEqual(mods[0].Checkpoints, []string{"getting_started"}) {
        t.Fatalf("unexpected checkpoints %v", mods[0].Checkpoints)
    }
}

func TestEnsureModule_IdempotentOnKnownCheckpoint(t *testing.T) {
    s := New(t.TempDir(), "")
    if _, _, err := s.EnsureCourse("net"); err != nil {
        t.Fatalf("EnsureCourse: %v", err)
    }
    if err := s.EnsureModule("net", "checkpoint-1"); err != nil {
        t.Fatalf("first EnsureModule: %v", err)
    }
    if err := s.EnsureModule("net", "checkpoint-1"); err != nil {
        t.Fatalf("second EnsureModule: %v", err)
    }

    reg := readRegistry(t, s.Path())
    if len(reg["net"].Modules) != 1 {
        t.Fatalf("duplicate module appended: %+v", reg["net"].Modules)
    }
}

func TestEnsureModule_UnknownCourse(t *testing.T) {
    s := New(t.TempDir(), "")
    if err := s.EnsureModule("ghost", "checkpoint-1"); err == nil {
        t.Fatalf("expected error for unknown course")
    }
}

func TestEnsureModule_IDAfterGap(t *testing.T) {
    // A hand-edited registry may skip ids; the next module still gets
    // max+1, not len+1.
    root := t.TempDir()
    s := New(root, "")
    reg := map[string]Course{
        "net": {Name: "Net", Modules: []Module{{ID: 7, Name: "Seven", Checkpoints: []string{"cp7"}}}},
    }
    b, _ := json.Marshal(reg)
    if err := os.WriteFile(s.Path(), b, 0o644); err != nil {
        t.Fatalf("seed registry: %v", err)
    }

    if err := s.EnsureModule("net", "cp8"); err != nil {
        t.Fatalf("EnsureModule: %v", err)
    }
    got := readRegistry(t, s.Path())["net"].Modules
    if len(got) != 2 || got[1].ID != 8 {
        t.Fatalf("expected new module id 8, got %+v", got)
    }
}

func TestDisplayName(t *testing.T) {
    cases := map[string]string{
        "network-basics":    "Network Basics",
        "getting_started":   "Getting Started",
        "already Named":     "Already Named",
        "double--separator": "Double Separator",
    }
    for in, want := range cases {
        if got := DisplayName(in); got != want {
            t.Fatalf("DisplayName(%q) = %q, want %q", in, got, want)
        }
    }
}

func TestLoad_MalformedRegistryFails(t *testing.T) {
    root := t.TempDir()
    s := New(root, "")
    if err := os.WriteFile(s.Path(), []byte("{not json"), 0o644); err != nil {
        t.Fatalf("seed: %v", err)
    }
    if _, _, err := s.EnsureCourse("net"); err == nil {
        t.Fatalf("expected parse error for malformed registry")
    }
}
