package matching

import "github.com/0xcro3dile/faqbot-go/internal/domain/entities"

// Corpus holds the entries together with their normalized questions and
// answers. Index i refers to the same entry in all three slices.
type Corpus struct {
	entries   []entities.QAEntry
	questions []string
	answers   []string
}

// NewCorpus copies entries and derives the parallel slices.
func NewCorpus(entries []entities.QAEntry) *Corpus {
	c := &Corpus{
		entries:   make([]entities.QAEntry, len(entries)),
		questions: make([]string, len(entries)),
		answers:   make([]string, len(entries)),
	}
	copy(c.entries, entries)
	for i, e := range c.entries {
		c.questions[i] = Normalize(e.Question)
		c.answers[i] = e.Answer
	}
	return c
}

// Len returns the number of entries.
func (c *Corpus) Len() int {
	return len(c.entries)
}

// Entry returns the entry at i.
func (c *Corpus) Entry(i int) entities.QAEntry {
	return c.entries[i]
}

// Question returns the normalized question at i.
func (c *Corpus) Question(i int) string {
	return c.questions[i]
}

// Answer returns the answer at i.
func (c *Corpus) Answer(i int) string {
	return c.answers[i]
}
