package corpus

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xcro3dile/faqbot-go/internal/domain/entities"
	"github.com/0xcro3dile/faqbot-go/internal/domain/ports"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFileSource_LoadJSON(t *testing.T) {
	path := writeFile(t, "qa_dataset.json", `[
		{"question": "what is your name", "answer": "I am a bot"},
		{"question": "how are you", "answer": "I am fine"}
	]`)

	ds, err := NewFileSource(path).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, path, ds.Source)
	assert.Equal(t, []entities.QAEntry{
		{Question: "what is your name", Answer: "I am a bot"},
		{Question: "how are you", Answer: "I am fine"},
	}, ds.Entries)
	assert.Empty(t, ds.Rejected)
}

func TestFileSource_JSONRejectsBadRecords(t *testing.T) {
	path := writeFile(t, "qa.json", `[
		{"question": "ok", "answer": "fine"},
		{"answer": "no question"},
		{"question": 42, "answer": "wrong type"},
		"not an object",
		{"question": "blank answer", "answer": "  "},
		{"question": "last", "answer": "kept"}
	]`)

	ds, err := NewFileSource(path).Load(context.Background())
	require.NoError(t, err)

	require.Len(t, ds.Entries, 2)
	assert.Equal(t, "ok", ds.Entries[0].Question)
	assert.Equal(t, "last", ds.Entries[1].Question)

	require.Len(t, ds.Rejected, 4)
	assert.Equal(t, 1, ds.Rejected[0].Position)
	assert.ErrorIs(t, ds.Rejected[0].Reason, entities.ErrMissingQuestion)
	assert.Equal(t, 2, ds.Rejected[1].Position)
	assert.Equal(t, 3, ds.Rejected[2].Position)
	assert.Equal(t, 4, ds.Rejected[3].Position)
	assert.ErrorIs(t, ds.Rejected[3].Reason, entities.ErrMissingAnswer)
}

func TestFileSource_LoadYAML(t *testing.T) {
	path := writeFile(t, "qa.yaml", `
- question: What are your hours?
  answer: 9 to 5.
- question:
    nested: map
  answer: rejected
- question: Where are you?
  answer:
`)

	ds, err := NewFileSource(path).Load(context.Background())
	require.NoError(t, err)

	require.Len(t, ds.Entries, 1)
	assert.Equal(t, entities.QAEntry{Question: "What are your hours?", Answer: "9 to 5."}, ds.Entries[0])
	require.Len(t, ds.Rejected, 2)
	assert.Equal(t, 1, ds.Rejected[0].Position)
	assert.Equal(t, 2, ds.Rejected[1].Position)
	assert.ErrorIs(t, ds.Rejected[1].Reason, entities.ErrMissingAnswer)
}

func TestFileSource_MissingFile(t *testing.T) {
	_, err := NewFileSource(filepath.Join(t.TempDir(), "nope.json")).Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ports.ErrDatasetUnavailable)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFileSource_CorruptJSON(t *testing.T) {
	path := writeFile(t, "qa.json", `{"question": "not a list"`)
	_, err := NewFileSource(path).Load(context.Background())
	assert.ErrorIs(t, err, ports.ErrDatasetUnavailable)
}

func TestFileSource_ObjectInsteadOfList(t *testing.T) {
	path := writeFile(t, "qa.json", `{"question": "q", "answer": "a"}`)
	_, err := NewFileSource(path).Load(context.Background())
	assert.ErrorIs(t, err, ports.ErrDatasetUnavailable)
}

func TestFileSource_UnsupportedExtension(t *testing.T) {
	path := writeFile(t, "qa.csv", "question,answer\n")
	_, err := NewFileSource(path).Load(context.Background())
	assert.ErrorIs(t, err, ports.ErrDatasetUnavailable)
}

func TestFileSource_EmptyList(t *testing.T) {
	path := writeFile(t, "qa.json", `[]`)
	ds, err := NewFileSource(path).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ds.Entries)
}

func TestFileSource_CanceledContext(t *testing.T) {
	path := writeFile(t, "qa.json", `[]`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewFileSource(path).Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFileSource_Defaults(t *testing.T) {
	s := NewFileSource("")
	assert.Equal(t, "qa_dataset.json", s.Path())
	assert.Equal(t, "qa_dataset.json", s.Describe())
	assert.Contains(t, s.SupportedExtensions(), ".yaml")
}
