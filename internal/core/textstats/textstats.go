// Package textstats computes lexical statistics and sentiment for short
// social posts
// Pipeline order
// 1 VADER polarity scoring over the raw text
// 2 Tokenization and sentence segmentation
// 3 POS tagging for noun phrase extraction
// 4 Aggregate counts and averages over word-like tokens
package textstats

import (
	"strings"
	"unicode"

	"github.com/jdkato/prose/v2"
	"github.com/jonreiter/govader"
	"golang.org/x/text/cases"
)

// Stats is the per-post analysis result. Field names mirror the wire shape
// downstream consumers already depend on
type Stats struct {
	Polarity          float64  `json:"polarity"`
	Subjectivity      float64  `json:"subjectivity"`
	WordCount         int      `json:"word_count"`
	SentenceCount     int      `json:"sentence_count"`
	AvgWordLength     float64  `json:"avg_word_length"`
	AvgSentenceLength float64  `json:"avg_sentence_length"`
	NounPhrases       []string `json:"noun_phrases"`
}

// Analyzer scores text. Safe for concurrent use; the VADER analyzer and the
// case folder are read-only after construction
type Analyzer struct {
	vader *govader.SentimentIntensityAnalyzer
	fold  cases.Caser
}

// New constructs an Analyzer with the default VADER lexicon
func New() *Analyzer {
	return &Analyzer{
		vader: govader.NewSentimentIntensityAnalyzer(),
		fold:  cases.Fold(),
	}
}

// Analyze scores a single post body. Empty or whitespace-only text yields the
// zero Stats without error so callers can keep such posts without guards
func (a *Analyzer) Analyze(text string) (Stats, error) {
	if strings.TrimSpace(text) == "" {
		return Stats{NounPhrases: []string{}}, nil
	}

	scores := a.vader.PolarityScores(text)

	doc, err := prose.NewDocument(text,
		prose.WithExtraction(false), // no NER needed
	)
	if err != nil {
		return Stats{}, err
	}

	var (
		wordCount int
		charSum   int
	)
	toks := doc.Tokens()
	for _, t := range toks {
		if !isWordToken(t.Text) {
			continue
		}
		wordCount++
		charSum += len([]rune(t.Text))
	}
	sentenceCount := len(doc.Sentences())

	st := Stats{
		// compound folds the lexicon hits into one [-1, 1] score
		Polarity: scores.Compound,
		// share of text carrying any sentiment at all stands in for subjectivity
		Subjectivity:  scores.Positive + scores.Negative,
		WordCount:     wordCount,
		SentenceCount: sentenceCount,
		NounPhrases:   a.nounPhrases(toks),
	}
	if wordCount > 0 {
		st.AvgWordLength = float64(charSum) / float64(wordCount)
	}
	if sentenceCount > 0 {
		st.AvgSentenceLength = float64(wordCount) / float64(sentenceCount)
	}
	return st, nil
}

// isWordToken reports whether a token counts as a word rather than punctuation
func isWordToken(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// nounPhrases extracts maximal adjective/noun tag runs that contain at least
// one noun, case folded for stable grouping
func (a *Analyzer) nounPhrases(toks []prose.Token) []string {
	phrases := []string{}
	var run []string
	hasNoun := false

	flush := func() {
		if hasNoun && len(run) > 0 {
			phrases = append(phrases, a.fold.String(strings.Join(run, " ")))
		}
		run = run[:0]
		hasNoun = false
	}

	for _, t := range toks {
		switch {
		case strings.HasPrefix(t.Tag, "NN"):
			run = append(run, t.Text)
			hasNoun = true
		case strings.HasPrefix(t.Tag, "JJ"):
			run = append(run, t.Text)
		default:
			flush()
		}
	}
	flush()
	return phrases
}
