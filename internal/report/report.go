package report

import (
    "fmt"
    "io"
    "net/url"
    "strings"
    "unicode/utf8"

    "github.com/edutools/quizextract/internal/extract"
)

// Severity splits findings into hard errors (the output is likely wrong)
// and warnings (the output looks suspicious but may be fine).
type Severity int

const (
    Warning Severity = iota
    Error
)

func (s Severity) String() string {
    if s == Error {
        return "error"
    }
    return "warning"
}

// Issue is one finding against one emitted record. Index is zero-based.
type Issue struct {
    Index    int
    Severity Severity
    Message  string
}

func (i Issue) String() string {
    return fmt.Sprintf("Q%d [%s]: %s", i.Index+1, i.Severity, i.Message)
}

// Check runs quality validation over emitted records. With requireAnswers
// set (strict extraction) a blank answer is an error; tolerant extraction
// legitimately emits blank answers for new/wrong questions.
func Check(questions []extract.Record, requireAnswers bool) []Issue {
    var issues []Issue
    add := func(i int, sev Severity, format string, args ...any) {
        issues = append(issues, Issue{Index: i, Severity: sev, Message: fmt.Sprintf(format, args...)})
    }

    seen := map[string]struct{}{}
    for i, q := range questions {
        text := strings.TrimSpace(q.Question)
        if text == "" {
            add(i, Error, "empty question text")
        } else if len(text) <= 5 {
            add(i, Error, "question too short (%d chars)", len(text))
        }

        // Near-duplicate detection on a case-folded prefix.
        key := clipRunes(strings.ToLower(text), 100)
        if _, dup := seen[key]; dup && key != "" {
            add(i, Warning, "possible duplicate question")
        }
        seen[key] = struct{}{}

        switch len(q.Choices) {
        case 0:
            add(i, Error, "no choices")
        case 1:
            add(i, Warning, "only 1 choice")
        case 2:
            if !isTrueFalse(q.Choices) {
                add(i, Warning, "only 2 choices (not true/false)")
            }
        }
        if hasDuplicates(q.Choices) {
            add(i, Error, "duplicate choices")
        }

        if len(q.Answer) == 0 && requireAnswers {
            add(i, Error, "has choices but no answer")
        }
        for _, ans := range q.Answer {
            if !contains(q.Choices, ans) {
                add(i, Error, "answer %q not in choices", clip(ans, 30))
                break
            }
        }

        if strings.Contains(strings.ToLower(text), "refer to the exhibit") && q.Img == "" {
            add(i, Warning, "'refer to the exhibit' but no image found")
        }
        if q.Img != "" && !validURL(q.Img) {
            add(i, Error, "invalid image URL %q", clip(q.Img, 40))
        }
    }
    return issues
}

// Print writes the human-readable run summary. The total check against the
// page's own stat counter is diagnostic only and never affects exit status.
func Print(w io.Writer, name string, res extract.Result, issues []Issue) {
    fmt.Fprintf(w, "%s: extracted %d questions (%d answered, %d blank)\n",
        name, len(res.Questions), res.Answered, res.Blank)
    fmt.Fprintf(w, "page stats: total=%d correct=%d wrong=%d new=%d\n",
        res.Stats.Total, res.Stats.Correct, res.Stats.Wrong, res.Stats.New)
    if len(res.Questions) == res.Stats.Total {
        fmt.Fprintf(w, "total check: MATCH (%d)\n", res.Stats.Total)
    } else {
        fmt.Fprintf(w, "total check: MISMATCH (extracted %d, page reports %d)\n",
            len(res.Questions), res.Stats.Total)
    }

    errs, warns := 0, 0
    for _, is := range issues {
        fmt.Fprintln(w, is)
        if is.Severity == Error {
            errs++
        } else {
            warns++
        }
    }
    if errs == 0 && warns == 0 {
        fmt.Fprintln(w, "all checks passed")
    } else {
        fmt.Fprintf(w, "%d error(s), %d warning(s)\n", errs, warns)
    }
}

func isTrueFalse(choices []string) bool {
    joined := strings.ToLower(strings.Join(choices, " "))
    return strings.Contains(joined, "true") || strings.Contains(joined, "false")
}

func hasDuplicates(ss []string) bool {
    seen := make(map[string]struct{}, len(ss))
    for _, s := range ss {
        if _, ok := seen[s]; ok {
            return true
        }
        seen[s] = struct{}{}
    }
    return false
}

func contains(ss []string, want string) bool {
    for _, s := range ss {
        if s == want {
            return true
        }
    }
    return false
}

func validURL(raw string) bool {
    u, err := url.Parse(raw)
    return err == nil && u.Scheme != "" && u.Host != ""
}

func clip(s string, n int) string {
    if out := clipRunes(s, n); out != s {
        return out + "..."
    }
    return s
}

// clipRunes truncates on rune boundaries so multibyte text never ends up
// cut mid-sequence.
func clipRunes(s string, n int) string {
    if utf8.RuneCountInString(s) <= n {
        return s
    }
    return string([]rune(s)[:n])
}
