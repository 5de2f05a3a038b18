// Package enrich normalizes raw search hits into analyzed posts.
// One malformed post must never sink a batch: every failure surfaces as a
// SkipError the pipeline can count and move past
package enrich

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"skylens/internal/adapters/bluesky"
	"skylens/internal/core/textstats"
)

// Post is the enriched, analyzed form of one search hit. JSON keys are the
// wire contract the frontend and saved result sets depend on
type Post struct {
	Text       string  `json:"text"`
	LinkedText string  `json:"linked_text"`
	Author     string  `json:"author"`
	CreatedAt  *string `json:"created_at"`

	Polarity     float64 `json:"polarity"`
	Subjectivity float64 `json:"subjectivity"`

	WordCount         int     `json:"word_count"`
	SentenceCount     int     `json:"sentence_count"`
	AvgWordLength     float64 `json:"avg_word_length"`
	AvgSentenceLength float64 `json:"avg_sentence_length"`

	NounPhrases []string `json:"noun_phrases"`

	Sentiment float64  `json:"sentiment"`
	ReplyTo   *string  `json:"reply_to"`
	PostURL   *string  `json:"post_url"`
	Links     []string `json:"links"`
	Images    []string `json:"images"`

	EmbeddedPost  map[string]any `json:"embedded_post"`
	ExternalEmbed map[string]any `json:"external_embed"`

	ReplyCount  int64 `json:"replyCount"`
	RepostCount int64 `json:"repostCount"`
	LikeCount   int64 `json:"likeCount"`
	QuoteCount  int64 `json:"quoteCount"`

	URI               string   `json:"uri"`
	CID               string   `json:"cid"`
	AuthorDID         string   `json:"author_did"`
	AuthorDisplayName string   `json:"author_display_name"`
	AuthorAvatar      string   `json:"author_avatar"`
	Langs             []string `json:"langs"`
}

// SkipError marks a post the pipeline should drop and count, not fail on
type SkipError struct {
	Reason string
	Err    error
}

func (e *SkipError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("skip post: %s: %v", e.Reason, e.Err)
	}
	return "skip post: " + e.Reason
}

func (e *SkipError) Unwrap() error { return e.Err }

func skip(reason string, err error) error { return &SkipError{Reason: reason, Err: err} }

// IsSkip reports whether err marks a skippable post and returns its reason
func IsSkip(err error) (string, bool) {
	var se *SkipError
	if errors.As(err, &se) {
		return se.Reason, true
	}
	return "", false
}

// FromPostView normalizes one search hit. It is pure and idempotent: the same
// view and analyzer always yield the same Post
func FromPostView(pv bluesky.PostView, an *textstats.Analyzer) (Post, error) {
	var rec bluesky.PostRecord
	if len(pv.Record) == 0 {
		return Post{}, skip("missing record", nil)
	}
	if err := json.Unmarshal(pv.Record, &rec); err != nil {
		return Post{}, skip("malformed record", err)
	}
	if pv.Author == nil || pv.Author.Handle == "" {
		return Post{}, skip("missing author handle", nil)
	}

	stats, err := an.Analyze(rec.Text)
	if err != nil {
		return Post{}, skip("analysis failed", err)
	}

	createdAt, err := createdAtOf(rec.CreatedAt, pv.IndexedAt)
	if err != nil {
		return Post{}, skip("bad created_at", err)
	}

	p := Post{
		Text:       rec.Text,
		LinkedText: linkify(rec.Text),
		Author:     pv.Author.Handle,
		CreatedAt:  createdAt,

		Polarity:     stats.Polarity,
		Subjectivity: stats.Subjectivity,

		WordCount:         stats.WordCount,
		SentenceCount:     stats.SentenceCount,
		AvgWordLength:     stats.AvgWordLength,
		AvgSentenceLength: stats.AvgSentenceLength,

		NounPhrases: stats.NounPhrases,

		// sentiment repeats polarity for consumers that only read one key
		Sentiment: stats.Polarity,

		Links:  linksOf(rec.Facets),
		Images: []string{},

		EmbeddedPost:  map[string]any{},
		ExternalEmbed: map[string]any{},

		ReplyCount:  deref(pv.ReplyCount),
		RepostCount: deref(pv.RepostCount),
		LikeCount:   deref(pv.LikeCount),
		QuoteCount:  deref(pv.QuoteCount),

		URI:               pv.URI,
		CID:               pv.CID,
		AuthorDID:         pv.Author.DID,
		AuthorDisplayName: pv.Author.DisplayName,
		AuthorAvatar:      pv.Author.Avatar,
		Langs:             rec.Langs,
	}
	if p.Langs == nil {
		p.Langs = []string{}
	}

	if rec.Reply != nil && rec.Reply.Parent.URI != "" {
		parent := rec.Reply.Parent.URI
		p.ReplyTo = &parent
	}

	if pv.URI != "" {
		seg := pv.URI[strings.LastIndex(pv.URI, "/")+1:]
		u := "https://bsky.app/profile/" + url.PathEscape(pv.Author.Handle) + "/post/" + seg
		p.PostURL = &u
	}

	if pv.Embed != nil {
		for _, img := range pv.Embed.Images {
			p.Images = append(p.Images, img.Fullsize)
		}
		if pv.Embed.Record != nil && pv.Embed.Record.Value != nil {
			p.EmbeddedPost = pv.Embed.Record.Value
		}
		if pv.Embed.External != nil {
			p.ExternalEmbed = pv.Embed.External
		}
	}

	return p, nil
}

// createdAtOf prefers the record timestamp, falls back to indexedAt and
// re-serializes so saved sets carry one canonical format
func createdAtOf(recorded, indexed string) (*string, error) {
	raw := recorded
	if raw == "" {
		raw = indexed
	}
	if raw == "" {
		return nil, nil
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	s := ts.Format(time.RFC3339)
	return &s, nil
}

// linksOf flattens facet link features preserving facet order then feature order
func linksOf(facets []bluesky.Facet) []string {
	links := []string{}
	for _, f := range facets {
		for _, feat := range f.Features {
			if feat.URI != "" {
				links = append(links, feat.URI)
			}
		}
	}
	return links
}

func deref(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}
