// Package insight implements the ad spend auditor and the review sentiment
// analyzer. Sentiment prefers an external model endpoint when one is
// configured and falls back to the compiled-in lexicon.
package insight

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/D-dracula/MicroTools-sub001/internal/app/domain/insight"
	"github.com/D-dracula/MicroTools-sub001/pkg/logger"
)

// Scorer scores a batch of review texts in one call. Implementations return
// one score per input text, in order, in the range [-1, 1].
type Scorer interface {
	Score(ctx context.Context, texts []string) ([]float64, error)
}

// Service hosts the analyzer tools.
type Service struct {
	scorer Scorer
	log    *logger.Logger
}

// New constructs an insight service. The scorer is optional; when nil all
// sentiment scoring uses the lexicon.
func New(scorer Scorer, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("insight")
	}
	return &Service{scorer: scorer, log: log}
}

const (
	maxReviews        = 500
	maxReviewBytes    = 10 * 1024
	positiveThreshold = 0.15
	negativeThreshold = -0.15
)

// Sentiment scores a batch of reviews and aggregates the outcome. Scoring is
// delegated to the remote model when available; a remote failure degrades to
// the lexicon rather than failing the request.
func (s *Service) Sentiment(ctx context.Context, reviews []string) (insight.SentimentReport, error) {
	cleaned := make([]string, 0, len(reviews))
	for _, r := range reviews {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		if len(r) > maxReviewBytes {
			return insight.SentimentReport{}, fmt.Errorf("review exceeds %d bytes", maxReviewBytes)
		}
		cleaned = append(cleaned, r)
	}
	if len(cleaned) == 0 {
		return insight.SentimentReport{}, fmt.Errorf("at least one review is required")
	}
	if len(cleaned) > maxReviews {
		return insight.SentimentReport{}, fmt.Errorf("too many reviews, limit is %d", maxReviews)
	}

	scores, remote := s.scoreBatch(ctx, cleaned)

	report := insight.SentimentReport{
		Distribution: map[string]int{
			insight.SentimentPositive: 0,
			insight.SentimentNeutral:  0,
			insight.SentimentNegative: 0,
		},
		ScoredRemotely: remote,
	}

	positiveTerms := map[string]int{}
	negativeTerms := map[string]int{}
	var total float64
	for i, text := range cleaned {
		score := clampScore(scores[i])
		label := scoreLabel(score)
		report.Reviews = append(report.Reviews, insight.ReviewScore{
			Text:  text,
			Score: round2(score),
			Label: label,
		})
		report.Distribution[label]++
		total += score
		collectTerms(text, positiveTerms, negativeTerms)
	}
	report.AverageScore = round2(total / float64(len(cleaned)))
	report.TopPositive = topTerms(positiveTerms, 5)
	report.TopNegative = topTerms(negativeTerms, 5)
	return report, nil
}

func (s *Service) scoreBatch(ctx context.Context, texts []string) ([]float64, bool) {
	if s.scorer != nil {
		scores, err := s.scorer.Score(ctx, texts)
		if err == nil && len(scores) == len(texts) {
			return scores, true
		}
		if err != nil {
			s.log.WithError(err).Warn("remote sentiment scoring failed, using lexicon")
		} else {
			s.log.Warnf("remote scorer returned %d scores for %d texts, using lexicon", len(scores), len(texts))
		}
	}
	scores := make([]float64, len(texts))
	for i, text := range texts {
		scores[i] = lexiconScore(text)
	}
	return scores, false
}

func scoreLabel(score float64) string {
	switch {
	case score >= positiveThreshold:
		return insight.SentimentPositive
	case score <= negativeThreshold:
		return insight.SentimentNegative
	default:
		return insight.SentimentNeutral
	}
}

func clampScore(score float64) float64 {
	if score > 1 {
		return 1
	}
	if score < -1 {
		return -1
	}
	return score
}

func topTerms(counts map[string]int, limit int) []string {
	terms := make([]string, 0, len(counts))
	for term := range counts {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if counts[terms[i]] != counts[terms[j]] {
			return counts[terms[i]] > counts[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > limit {
		terms = terms[:limit]
	}
	return terms
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
