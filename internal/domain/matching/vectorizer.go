package matching

import (
	"math"
	"sort"
)

// Vocabulary maps a term to its column. Frozen after Fit.
type Vocabulary struct {
	columns map[string]int
	terms   []string
}

// Len returns the number of terms.
func (v *Vocabulary) Len() int {
	return len(v.terms)
}

// Column returns the column of term and whether the term is known.
func (v *Vocabulary) Column(term string) (int, bool) {
	col, ok := v.columns[term]
	return col, ok
}

// Term returns the term stored at column col.
func (v *Vocabulary) Term(col int) string {
	return v.terms[col]
}

// Vectorizer projects normalized text onto a fixed vocabulary using
// smoothed TF-IDF weights:
//
//	idf(t) = ln((1 + N) / (1 + df(t))) + 1
//
// where N is the number of fitted documents and df(t) the number of
// documents containing t. Term frequency is the raw count.
type Vectorizer struct {
	vocab *Vocabulary
	idf   []float64
}

// Fit builds the vocabulary and IDF table from normalized questions and
// returns the L2-normalized document-term matrix, one row per question in
// input order. Columns follow lexical term order.
func Fit(questions []string) (*Vectorizer, []SparseVector) {
	docs := make([][]string, len(questions))
	df := make(map[string]int)
	for i, q := range questions {
		docs[i] = Tokenize(q)
		seen := make(map[string]bool, len(docs[i]))
		for _, term := range docs[i] {
			if !seen[term] {
				df[term]++
				seen[term] = true
			}
		}
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	vocab := &Vocabulary{columns: make(map[string]int, len(terms)), terms: terms}
	idf := make([]float64, len(terms))
	n := float64(len(questions))
	for col, term := range terms {
		vocab.columns[term] = col
		idf[col] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	v := &Vectorizer{vocab: vocab, idf: idf}
	rows := make([]SparseVector, len(docs))
	for i, tokens := range docs {
		rows[i] = v.weigh(tokens)
	}
	return v, rows
}

// Vocabulary returns the frozen vocabulary.
func (v *Vectorizer) Vocabulary() *Vocabulary {
	return v.vocab
}

// IDF returns the inverse document frequency of the term at col.
func (v *Vectorizer) IDF(col int) float64 {
	return v.idf[col]
}

// Transform vectorizes normalized text with the frozen vocabulary and IDF.
// Unknown terms contribute nothing; text with no known term yields the zero
// vector.
func (v *Vectorizer) Transform(normalized string) SparseVector {
	return v.weigh(Tokenize(normalized))
}

func (v *Vectorizer) weigh(tokens []string) SparseVector {
	counts := make(map[int]int, len(tokens))
	for _, term := range tokens {
		if col, ok := v.vocab.columns[term]; ok {
			counts[col]++
		}
	}
	if len(counts) == 0 {
		return SparseVector{}
	}

	cols := make([]int, 0, len(counts))
	for col := range counts {
		cols = append(cols, col)
	}
	sort.Ints(cols)

	vec := SparseVector{Indices: cols, Values: make([]float64, len(cols))}
	for i, col := range cols {
		vec.Values[i] = float64(counts[col]) * v.idf[col]
	}
	return vec.normalized()
}
