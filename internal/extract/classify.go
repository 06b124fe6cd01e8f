package extract

import (
    "strings"

    "github.com/PuerkitoBio/goquery"
)

// Source tags where a question's answer state comes from. New and wrong
// questions override normal correctness extraction: their recorded answer
// is blank no matter which badges the page still shows.
type Source int

const (
    SourceNormal Source = iota
    SourceNew
    SourceWrong
)

func (s Source) String() string {
    switch s {
    case SourceNew:
        return "new"
    case SourceWrong:
        return "wrong"
    default:
        return "normal"
    }
}

// Classify inspects the answer-source badge of one displayed-question block
// and returns its tag. A question without a badge, or with a badge whose
// text matches neither marker, is normal.
func Classify(q *goquery.Selection) Source {
    badge := strings.ToLower(cleanText(q.Find(sourceBadgeSel).First().Text()))
    switch {
    case strings.Contains(badge, "new"):
        return SourceNew
    case strings.Contains(badge, "wrong"):
        return SourceWrong
    default:
        return SourceNormal
    }
}
