package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestNewQAEntry_Valid(t *testing.T) {
	entry, err := NewQAEntry(strPtr("What is Go?"), strPtr("A language."))
	require.NoError(t, err)
	assert.Equal(t, QAEntry{Question: "What is Go?", Answer: "A language."}, entry)
}

func TestNewQAEntry_MissingFields(t *testing.T) {
	_, err := NewQAEntry(nil, strPtr("a"))
	assert.ErrorIs(t, err, ErrMissingQuestion)

	_, err = NewQAEntry(strPtr("   "), strPtr("a"))
	assert.ErrorIs(t, err, ErrMissingQuestion)

	_, err = NewQAEntry(strPtr("q"), nil)
	assert.ErrorIs(t, err, ErrMissingAnswer)

	_, err = NewQAEntry(strPtr("q"), strPtr(""))
	assert.ErrorIs(t, err, ErrMissingAnswer)
}

func TestCollect_RejectsPerRecord(t *testing.T) {
	records := []RawRecord{
		{Question: strPtr("how are you"), Answer: strPtr("fine")},
		{Question: nil, Answer: strPtr("orphan")},
		{Question: strPtr("what is your name"), Answer: strPtr("bot")},
		{Question: strPtr("no answer"), Answer: nil},
	}

	ds := Collect("test.json", records)

	assert.Equal(t, "test.json", ds.Source)
	require.Len(t, ds.Entries, 2)
	assert.Equal(t, "how are you", ds.Entries[0].Question)
	assert.Equal(t, "what is your name", ds.Entries[1].Question)

	require.Len(t, ds.Rejected, 2)
	assert.Equal(t, 1, ds.Rejected[0].Position)
	assert.ErrorIs(t, ds.Rejected[0].Reason, ErrMissingQuestion)
	assert.Equal(t, 3, ds.Rejected[1].Position)
	assert.ErrorIs(t, ds.Rejected[1].Reason, ErrMissingAnswer)
}

func TestCollect_Empty(t *testing.T) {
	ds := Collect("empty", nil)
	assert.Empty(t, ds.Entries)
	assert.Empty(t, ds.Rejected)
}
