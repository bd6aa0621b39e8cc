// Rewind - Watch History Analytics Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rewind

package classify

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// nonWord strips punctuation before tokenization. Matches the cleaning
// the title corpus has always been prepared with: letters, digits,
// underscores and whitespace survive, everything else is removed.
var nonWord = regexp.MustCompile(`[^\w\s]`)

// tokenize lowercases and cleans a title, returning unigram and bigram
// terms in order.
func tokenize(title string) []string {
	clean := nonWord.ReplaceAllString(strings.ToLower(title), "")
	words := strings.Fields(clean)

	terms := make([]string, 0, len(words)*2)
	terms = append(terms, words...)
	for i := 0; i+1 < len(words); i++ {
		terms = append(terms, words[i]+" "+words[i+1])
	}
	return terms
}

// vectorizer builds l2-normalized TF-IDF vectors over a fixed corpus.
// Terms below minDocFreq documents or above maxDocShare of the corpus
// are excluded from the vocabulary.
type vectorizer struct {
	vocab map[string]int // term -> column index
	idf   []float64
}

// sparseVec is a sparse document vector: column index -> weight.
type sparseVec map[int]float64

// fitVectorizer learns the vocabulary and IDF weights from the corpus.
func fitVectorizer(docs [][]string, minDocFreq int, maxDocShare float64) *vectorizer {
	docFreq := make(map[string]int)
	for _, terms := range docs {
		seen := make(map[string]struct{}, len(terms))
		for _, t := range terms {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			docFreq[t]++
		}
	}

	maxDocs := int(maxDocShare * float64(len(docs)))

	// Sorted vocabulary for a deterministic column order.
	terms := make([]string, 0, len(docFreq))
	for t, df := range docFreq {
		if df >= minDocFreq && df <= maxDocs {
			terms = append(terms, t)
		}
	}
	sort.Strings(terms)

	v := &vectorizer{
		vocab: make(map[string]int, len(terms)),
		idf:   make([]float64, len(terms)),
	}
	n := float64(len(docs))
	for i, t := range terms {
		v.vocab[t] = i
		// Smoothed IDF so no term gets a zero weight.
		v.idf[i] = math.Log((1+n)/(1+float64(docFreq[t]))) + 1
	}
	return v
}

// transform converts tokenized documents into l2-normalized TF-IDF
// vectors. Documents with no in-vocabulary terms yield an empty vector.
func (v *vectorizer) transform(docs [][]string) []sparseVec {
	vecs := make([]sparseVec, len(docs))
	for i, terms := range docs {
		vec := make(sparseVec)
		for _, t := range terms {
			if col, ok := v.vocab[t]; ok {
				vec[col]++
			}
		}

		var norm float64
		for col := range vec {
			vec[col] *= v.idf[col]
			norm += vec[col] * vec[col]
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for col := range vec {
				vec[col] /= norm
			}
		}
		vecs[i] = vec
	}
	return vecs
}

// dims returns the vocabulary size.
func (v *vectorizer) dims() int {
	return len(v.idf)
}
