package report

import "time"

// Tone colours a value or status when rendered.
type Tone string

const (
	ToneNeutral Tone = ""
	ToneGood    Tone = "good"
	ToneWarning Tone = "warning"
	ToneBad     Tone = "bad"
)

// LineStyle controls indentation and weight of statement rows.
type LineStyle int

const (
	StyleNormal LineStyle = iota
	StyleItem
	StyleTotal
	StyleResult
)

type SectionKind string

const (
	KindMetrics   SectionKind = "metrics"
	KindSchedule  SectionKind = "schedule"
	KindStatement SectionKind = "statement"
	KindNotice    SectionKind = "notice"
	KindNotes     SectionKind = "notes"
)

type Line struct {
	Label  string    `json:"label"`
	Value  string    `json:"value"`
	Status string    `json:"status,omitempty"`
	Tone   Tone      `json:"tone,omitempty"`
	Style  LineStyle `json:"style,omitempty"`
}

type Section struct {
	Title string      `json:"title"`
	Kind  SectionKind `json:"kind"`
	Lines []Line      `json:"lines"`
	Note  string      `json:"note,omitempty"`
}

type Page struct {
	Sections []Section `json:"sections"`
}

// Document is a render-ready report. Every value is already formatted.
type Document struct {
	Title       string    `json:"title"`
	Subtitle    string    `json:"subtitle,omitempty"`
	Footer      string    `json:"footer,omitempty"`
	Author      string    `json:"author,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`
	Pages       []Page    `json:"pages"`
}

// Section returns the first section with the given title.
func (d Document) Section(title string) (Section, bool) {
	for _, p := range d.Pages {
		for _, s := range p.Sections {
			if s.Title == title {
				return s, true
			}
		}
	}
	return Section{}, false
}

// Line returns the first line with the given label.
func (s Section) Line(label string) (Line, bool) {
	for _, l := range s.Lines {
		if l.Label == label {
			return l, true
		}
	}
	return Line{}, false
}
