// Rewind - Watch History Analytics Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rewind

// Package takeout parses a Google Takeout watch-history HTML export
// into canonical watch events.
//
// Each history entry is a content cell containing an anchor (title and
// video URL) followed by free text whose last segment is a
// locale-specific timestamp. Malformed entries are dropped silently:
// a personal export routinely contains housekeeping links and cells
// the exporter rendered without a timestamp, and none of them should
// abort ingestion. Drops are tallied per reason instead.
package takeout

import (
	"crypto/sha256"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/net/html"

	"github.com/tomtom215/rewind/internal/logging"
	"github.com/tomtom215/rewind/internal/metrics"
	"github.com/tomtom215/rewind/internal/models"
)

// contentCellClass marks the HTML divs that hold one history entry each.
const contentCellClass = "content-cell mdl-cell mdl-cell--6-col mdl-typography--body-1"

// excludedURLPrefix is the account-controls housekeeping page the export
// intersperses with real watch entries. Never a content URL.
const excludedURLPrefix = "https://myaccount.google.com/activitycontrols"

// videoIDPattern extracts the 11-character video token from a watch URL.
var videoIDPattern = regexp.MustCompile(`v=([\w-]{11})`)

// Stats tallies the outcome of one parse run.
type Stats struct {
	Entries      int // content cells seen
	Parsed       int // canonical events produced
	NoLink       int // cells without an anchor
	ExcludedURL  int // account-controls links
	BadTimestamp int // timestamp text that did not match the pattern
}

// Dropped returns the total number of entries that produced no event.
func (s Stats) Dropped() int {
	return s.NoLink + s.ExcludedURL + s.BadTimestamp
}

// Parser turns a watch-history HTML document into canonical events.
type Parser struct{}

// NewParser creates a Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse reads the HTML document from r and returns the canonical events
// in document order, along with parse statistics. Entry-level failures
// are recovered locally; only a malformed document as a whole is an
// error.
func (p *Parser) Parse(r io.Reader) ([]models.WatchEvent, Stats, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("parse history document: %w", err)
	}

	var (
		events []models.WatchEvent
		stats  Stats
	)

	for _, cell := range findContentCells(doc) {
		stats.Entries++

		event, reason := p.parseEntry(cell)
		if reason != "" {
			recordDrop(&stats, reason)
			continue
		}

		events = append(events, event)
		stats.Parsed++
		metrics.EntriesParsed.Inc()
	}

	logging.Info().
		Int("entries", stats.Entries).
		Int("parsed", stats.Parsed).
		Int("dropped", stats.Dropped()).
		Msg("Parsed watch history")

	return events, stats, nil
}

// parseEntry converts one content cell into an event. On failure it
// returns an empty event and the drop reason.
func (p *Parser) parseEntry(cell *html.Node) (models.WatchEvent, string) {
	anchor := findFirstAnchor(cell)
	if anchor == nil {
		return models.WatchEvent{}, "no_link"
	}

	url := attrValue(anchor, "href")
	if url == "" {
		return models.WatchEvent{}, "no_link"
	}
	if strings.HasPrefix(url, excludedURLPrefix) {
		return models.WatchEvent{}, "excluded_url"
	}

	title := strings.TrimSpace(textContent(anchor))

	// The timestamp is the last non-empty text segment of the cell.
	segments := textSegments(cell)
	if len(segments) == 0 {
		return models.WatchEvent{}, "bad_timestamp"
	}
	watchedAt, err := ParseTimestamp(segments[len(segments)-1])
	if err != nil {
		return models.WatchEvent{}, "bad_timestamp"
	}

	return models.WatchEvent{
		ID:        eventID(url, watchedAt.Unix()),
		Title:     title,
		URL:       url,
		VideoID:   extractVideoID(url),
		WatchedAt: watchedAt,
	}, ""
}

// recordDrop tallies a dropped entry in both the run stats and the
// Prometheus counters.
func recordDrop(stats *Stats, reason string) {
	switch reason {
	case "no_link":
		stats.NoLink++
	case "excluded_url":
		stats.ExcludedURL++
	case "bad_timestamp":
		stats.BadTimestamp++
	}
	metrics.EntriesDropped.WithLabelValues(reason).Inc()
}

// extractVideoID pulls the 11-character video token out of a watch URL.
// Returns "" when the URL does not carry one.
func extractVideoID(url string) string {
	m := videoIDPattern.FindStringSubmatch(url)
	if m == nil {
		return ""
	}
	return m[1]
}

// eventID derives a deterministic UUID from the entry's URL and watch
// time, so re-parsing the same export always yields the same IDs and
// exact duplicates can be detected downstream.
func eventID(url string, unix int64) uuid.UUID {
	input := fmt.Sprintf("rewind:%s:%d", url, unix)
	hash := sha256.Sum256([]byte(input))

	id, err := uuid.FromBytes(hash[:16])
	if err != nil {
		// Cannot happen with 16 bytes of input.
		return uuid.New()
	}

	// Stamp version 5 and variant bits so the result is a well-formed UUID.
	id[6] = (id[6] & 0x0f) | 0x50
	id[8] = (id[8] & 0x3f) | 0x80

	return id
}

// findContentCells walks the document and collects the entry cells in
// document order.
func findContentCells(doc *html.Node) []*html.Node {
	var cells []*html.Node

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "div" && attrValue(n, "class") == contentCellClass {
			cells = append(cells, n)
			return // entry cells do not nest
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return cells
}

// findFirstAnchor returns the first <a> element under n, or nil.
func findFirstAnchor(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "a" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if a := findFirstAnchor(c); a != nil {
			return a
		}
	}
	return nil
}

// attrValue returns the value of the named attribute, or "".
func attrValue(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// textContent concatenates all text nodes under n.
func textContent(n *html.Node) string {
	var sb strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	return sb.String()
}

// textSegments collects the trimmed, non-empty text nodes under n in
// document order. The export renders the timestamp as the final segment.
func textSegments(n *html.Node) []string {
	var segments []string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if s := strings.TrimSpace(n.Data); s != "" {
				segments = append(segments, s)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	return segments
}
