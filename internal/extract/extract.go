package extract

import (
    "encoding/json"
    "strings"

    "github.com/PuerkitoBio/goquery"
    "github.com/rs/zerolog/log"
)

// Selectors for the checkpoint review page structure. The pages are saved
// verbatim from the browser, so class names are stable per course export.
const (
    questionSel     = ".displayed-question"
    questionTextSel = ".question-text"
    answerLabelSel  = ".answer-label"
    correctBadgeSel = ".correct-answer-badge"
    wrongBadgeSel   = ".wrong-answer-badge"
    sourceBadgeSel  = ".answer-source-badge"
    matchLabelSel   = ".pull-left.label"
    statCardSel     = ".stat-card"
    statLabelSel    = ".stat-label"
    statValueSel    = ".stat-value"

    // Placeholder option rendered by matching questions' dropdowns.
    choosePlaceholder = "[ Choose ]"
)

// Answer holds the correct choice texts for one question in document order.
// It serializes as a bare string when there is exactly one entry, as an
// array when there are several, and as "" when empty.
type Answer []string

func (a Answer) MarshalJSON() ([]byte, error) {
    switch len(a) {
    case 0:
        return json.Marshal("")
    case 1:
        return json.Marshal(a[0])
    default:
        return json.Marshal([]string(a))
    }
}

func (a *Answer) UnmarshalJSON(b []byte) error {
    var s string
    if err := json.Unmarshal(b, &s); err == nil {
        if s == "" {
            *a = nil
        } else {
            *a = Answer{s}
        }
        return nil
    }
    var list []string
    if err := json.Unmarshal(b, &list); err != nil {
        return err
    }
    *a = Answer(list)
    return nil
}

// Record is one normalized question as written to the output JSON.
type Record struct {
    Question string   `json:"question"`
    Img      string   `json:"img,omitempty"`
    Pre      string   `json:"pre,omitempty"`
    Choices  []string `json:"choices"`
    Answer   Answer   `json:"answer"`
}

// Summary mirrors the stat cards at the top of a review page. It is purely
// informational; the caller only compares Total against the extracted count
// as a sanity signal.
type Summary struct {
    Total   int
    Correct int
    Wrong   int
    New     int
}

// Result is the outcome of one extraction pass over a document.
type Result struct {
    Questions []Record
    Stats     Summary
    // Answered and Blank count records with and without a recorded answer.
    Answered int
    Blank    int
}

type mode int

const (
    strict mode = iota
    tolerant
)

// Strict extracts only questions that have at least one choice marked
// correct; every emitted record carries a populated answer.
func Strict(doc *goquery.Document) Result {
    return run(doc, strict)
}

// Tolerant extracts every question that has at least one choice. Questions
// whose source badge marks them as new or wrong, and questions without any
// correct-answer badge, are emitted with a blank answer.
func Tolerant(doc *goquery.Document) Result {
    return run(doc, tolerant)
}

func run(doc *goquery.Document, m mode) Result {
    res := Result{Stats: Stats(doc)}
    doc.Find(questionSel).Each(func(i int, q *goquery.Selection) {
        rec, ok := extractOne(i, q, m)
        if !ok {
            return
        }
        res.Questions = append(res.Questions, rec)
        if len(rec.Answer) > 0 {
            res.Answered++
        } else {
            res.Blank++
        }
    })
    return res
}

// extractOne normalizes a single displayed-question block. A panic while
// processing one block is recovered and logged so a malformed question can
// never abort the whole run; the block is simply skipped.
func extractOne(index int, q *goquery.Selection, m mode) (rec Record, ok bool) {
    defer func() {
        if r := recover(); r != nil {
            log.Warn().Int("question", index+1).Interface("panic", r).
                Msg("skipping malformed question block")
            rec, ok = Record{}, false
        }
    }()

    qt := q.Find(questionTextSel).First()
    if qt.Length() == 0 {
        // Not an error: decorative blocks share the question container class.
        return Record{}, false
    }

    clone := qt.Clone()
    clone.Find(sourceBadgeSel).Remove()
    rec.Question = cleanText(clone.Text())

    if src, exists := qt.Find("img").First().Attr("src"); exists {
        rec.Img = src
    }
    if pre := q.Find("pre").First(); pre.Length() > 0 {
        rec.Pre = cleanPre(pre.Text())
    }

    var correct Answer
    labels := q.Find(answerLabelSel)
    labels.Each(func(_ int, lab *goquery.Selection) {
        lc := lab.Clone()
        lc.Find(correctBadgeSel + ", " + wrongBadgeSel).Remove()
        text := cleanText(lc.Text())
        if text == "" {
            return
        }
        rec.Choices = append(rec.Choices, text)
        // Correctness comes from the original element, not the clone.
        if lab.Find(correctBadgeSel).Length() > 0 {
            correct = append(correct, text)
        }
    })

    if m == tolerant && labels.Length() == 0 {
        rec.Choices = matchingChoices(q)
    }

    if len(rec.Choices) == 0 {
        return Record{}, false
    }

    switch m {
    case strict:
        if len(correct) == 0 {
            return Record{}, false
        }
        rec.Answer = correct
    case tolerant:
        // New and wrong questions show stale or absent correctness badges;
        // their answers stay blank until re-verified.
        if Classify(q) == SourceNormal {
            rec.Answer = correct
        }
    }
    return rec, true
}

// matchingChoices handles matching-type questions, which render no answer
// labels. Choices come from the left-hand label column followed by the
// dropdown options, skipping the placeholder and any option text already
// collected.
func matchingChoices(q *goquery.Selection) []string {
    var choices []string
    q.Find(matchLabelSel).Each(func(_ int, lab *goquery.Selection) {
        if text := cleanText(lab.Text()); text != "" {
            choices = append(choices, text)
        }
    })
    seen := make(map[string]struct{}, len(choices))
    for _, c := range choices {
        seen[c] = struct{}{}
    }
    q.Find("select option").Each(func(_ int, opt *goquery.Selection) {
        text := cleanText(opt.Text())
        if text == "" || text == choosePlaceholder {
            return
        }
        if _, dup := seen[text]; dup {
            return
        }
        seen[text] = struct{}{}
        choices = append(choices, text)
    })
    return choices
}

// Stats scans the stat cards and classifies each by a case-insensitive
// substring match on its label. When several cards match one category the
// last one scanned wins; the review pages occasionally repeat a card and
// this mirrors what they display.
func Stats(doc *goquery.Document) Summary {
    var s Summary
    doc.Find(statCardSel).Each(func(_ int, card *goquery.Selection) {
        label := strings.ToLower(cleanText(card.Find(statLabelSel).First().Text()))
        if label == "" {
            label = strings.ToLower(cleanText(card.Text()))
        }
        val := statValue(card)
        switch {
        case strings.Contains(label, "total"):
            s.Total = val
        case strings.Contains(label, "correct"):
            s.Correct = val
        case strings.Contains(label, "wrong"):
            s.Wrong = val
        case strings.Contains(label, "new"):
            s.New = val
        }
    })
    return s
}

func statValue(card *goquery.Selection) int {
    txt := card.Find(statValueSel).First().Text()
    if strings.TrimSpace(txt) == "" {
        // Some exports fold the value into the card text ("Total Questions: 10").
        txt = card.Text()
    }
    return firstInt(txt)
}

// firstInt returns the first run of ASCII digits in s as an integer, or 0
// when there is none.
func firstInt(s string) int {
    n, start := 0, -1
    for i := 0; i < len(s); i++ {
        if s[i] >= '0' && s[i] <= '9' {
            if start < 0 {
                start = i
            }
            n = n*10 + int(s[i]-'0')
            continue
        }
        if start >= 0 {
            return n
        }
    }
    if start < 0 {
        return 0
    }
    return n
}

// cleanText collapses all whitespace runs to single spaces and trims.
func cleanText(s string) string {
    return strings.Join(strings.Fields(s), " ")
}

// cleanPre trims each line of a pre block and drops blank lines, keeping
// the line structure intact.
func cleanPre(s string) string {
    lines := strings.Split(s, "\n")
    out := make([]string, 0, len(lines))
    for _, line := range lines {
        if t := strings.TrimSpace(line); t != "" {
            out = append(out, t)
        }
    }
    return strings.Join(out, "\n")
}
