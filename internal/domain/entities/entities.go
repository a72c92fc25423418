// Package entities contains core business entities.
// These are pure domain objects with no external dependencies.
package entities

import (
	"errors"
	"strings"
)

// Record validation errors.
var (
	ErrMissingQuestion = errors.New("missing question")
	ErrMissingAnswer   = errors.New("missing answer")
)

// QAEntry is one (question, answer) pair of the corpus.
// Immutable once loaded.
type QAEntry struct {
	Question string
	Answer   string
}

// NewQAEntry validates a raw record. Nil or blank fields are rejected.
func NewQAEntry(question, answer *string) (QAEntry, error) {
	if question == nil || strings.TrimSpace(*question) == "" {
		return QAEntry{}, ErrMissingQuestion
	}
	if answer == nil || strings.TrimSpace(*answer) == "" {
		return QAEntry{}, ErrMissingAnswer
	}
	return QAEntry{Question: *question, Answer: *answer}, nil
}

// Rejection describes a dataset record dropped during loading.
type Rejection struct {
	Position int // Zero-based position in the source
	Reason   error
}

// Dataset is the result of reading a corpus source.
type Dataset struct {
	Source   string
	Entries  []QAEntry
	Rejected []Rejection
}

// RawRecord is a dataset record as read from a source, before validation.
// Nil fields were absent in the source.
type RawRecord struct {
	Question *string `json:"question" yaml:"question"`
	Answer   *string `json:"answer" yaml:"answer"`
}

// Add validates rec and appends it, or records why it was dropped.
func (d *Dataset) Add(position int, rec RawRecord) {
	entry, err := NewQAEntry(rec.Question, rec.Answer)
	if err != nil {
		d.Reject(position, err)
		return
	}
	d.Entries = append(d.Entries, entry)
}

// Reject records that the record at position was dropped.
func (d *Dataset) Reject(position int, reason error) {
	d.Rejected = append(d.Rejected, Rejection{Position: position, Reason: reason})
}

// Collect validates raw records in order, keeping the valid ones and
// recording every rejection. One bad record never aborts the load.
func Collect(source string, records []RawRecord) *Dataset {
	ds := &Dataset{Source: source, Entries: make([]QAEntry, 0, len(records))}
	for i, r := range records {
		ds.Add(i, r)
	}
	return ds
}
