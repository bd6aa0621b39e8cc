// Rewind - Watch History Analytics Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rewind

// Package classify assigns opaque topic labels to watch-event titles.
//
// The default implementation vectorizes the run's titles with TF-IDF
// and groups them with a deterministic k-means pass. The pipeline only
// depends on the labeling contract (one label per title, deterministic
// for a fixed corpus); the algorithm behind it is interchangeable.
package classify

import (
	"strconv"

	"github.com/tomtom215/rewind/internal/logging"
)

// Options configures the topic clustering.
type Options struct {
	// Topics is the number of clusters.
	Topics int

	// MinDocFreq and MaxDocShare bound vocabulary admission: a term
	// must appear in at least MinDocFreq documents and at most
	// MaxDocShare of the corpus.
	MinDocFreq  int
	MaxDocShare float64
}

// TopicLabeler clusters a title corpus and reports one topic label per
// title. Labels are the decimal cluster index ("0".."k-1"); they are
// opaque to the rest of the pipeline.
type TopicLabeler struct {
	opts Options
}

// NewTopicLabeler creates a TopicLabeler.
func NewTopicLabeler(opts Options) *TopicLabeler {
	return &TopicLabeler{opts: opts}
}

// Label assigns a topic label to each title, index-aligned with the
// input. A corpus too small to admit any vocabulary term collapses to
// a single topic, which is still a valid (if uninformative) labeling.
func (t *TopicLabeler) Label(titles []string) []string {
	docs := make([][]string, len(titles))
	for i, title := range titles {
		docs[i] = tokenize(title)
	}

	vec := fitVectorizer(docs, t.opts.MinDocFreq, t.opts.MaxDocShare)
	assign := kmeans(vec.transform(docs), vec.dims(), t.opts.Topics)

	logging.Debug().
		Int("titles", len(titles)).
		Int("vocabulary", vec.dims()).
		Int("topics", t.opts.Topics).
		Msg("Clustered titles into topics")

	labels := make([]string, len(assign))
	for i, c := range assign {
		labels[i] = strconv.Itoa(c)
	}
	return labels
}
