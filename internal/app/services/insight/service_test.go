package insight

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/D-dracula/MicroTools-sub001/internal/app/domain/insight"
	"github.com/D-dracula/MicroTools-sub001/pkg/testutil"
)

func TestSentimentLexiconScoring(t *testing.T) {
	svc := New(nil, nil)

	report, err := svc.Sentiment(context.Background(), []string{
		"Excellent product, fast delivery. I love it!",
		"Terrible quality, arrived broken and late.",
		"The package arrived on Tuesday.",
	})
	if err != nil {
		t.Fatalf("Sentiment: %v", err)
	}
	if report.ScoredRemotely {
		t.Fatal("expected lexicon scoring without a scorer")
	}
	if got := report.Reviews[0].Label; got != insight.SentimentPositive {
		t.Fatalf("expected positive, got %q (score %v)", got, report.Reviews[0].Score)
	}
	if got := report.Reviews[1].Label; got != insight.SentimentNegative {
		t.Fatalf("expected negative, got %q (score %v)", got, report.Reviews[1].Score)
	}
	if got := report.Reviews[2].Label; got != insight.SentimentNeutral {
		t.Fatalf("expected neutral, got %q (score %v)", got, report.Reviews[2].Score)
	}
	if report.Distribution[insight.SentimentPositive] != 1 ||
		report.Distribution[insight.SentimentNegative] != 1 ||
		report.Distribution[insight.SentimentNeutral] != 1 {
		t.Fatalf("unexpected distribution: %+v", report.Distribution)
	}
}

func TestSentimentArabicReviews(t *testing.T) {
	svc := New(nil, nil)

	report, err := svc.Sentiment(context.Background(), []string{
		"منتج ممتاز والتوصيل سريع",
		"المنتج سيء جدا والتغليف تالف",
	})
	if err != nil {
		t.Fatalf("Sentiment: %v", err)
	}
	if report.Reviews[0].Label != insight.SentimentPositive {
		t.Fatalf("expected positive arabic review, got %q", report.Reviews[0].Label)
	}
	if report.Reviews[1].Label != insight.SentimentNegative {
		t.Fatalf("expected negative arabic review, got %q", report.Reviews[1].Label)
	}
}

func TestSentimentNegationFlipsScore(t *testing.T) {
	if lexiconScore("good product") <= 0 {
		t.Fatal("expected positive score for plain praise")
	}
	if lexiconScore("not good at all") >= 0 {
		t.Fatal("expected negation to flip the score")
	}
	if lexiconScore("ليس جيد") >= 0 {
		t.Fatal("expected arabic negation to flip the score")
	}
}

func TestSentimentTopTerms(t *testing.T) {
	svc := New(nil, nil)

	report, err := svc.Sentiment(context.Background(), []string{
		"great great great",
		"good service",
		"broken again",
	})
	if err != nil {
		t.Fatalf("Sentiment: %v", err)
	}
	if len(report.TopPositive) == 0 || report.TopPositive[0] != "great" {
		t.Fatalf("expected great as top positive, got %+v", report.TopPositive)
	}
	if len(report.TopNegative) == 0 || report.TopNegative[0] != "broken" {
		t.Fatalf("expected broken as top negative, got %+v", report.TopNegative)
	}
}

func TestSentimentUsesRemoteScorer(t *testing.T) {
	scorer := &testutil.MockScorer{Scores: []float64{0.9, -0.8}}
	svc := New(scorer, nil)

	report, err := svc.Sentiment(context.Background(), []string{"first", "second"})
	if err != nil {
		t.Fatalf("Sentiment: %v", err)
	}
	if !report.ScoredRemotely {
		t.Fatal("expected remote scoring")
	}
	if scorer.Calls != 1 {
		t.Fatalf("expected 1 scorer call, got %d", scorer.Calls)
	}
	if report.Reviews[0].Score != 0.9 || report.Reviews[1].Score != -0.8 {
		t.Fatalf("remote scores not applied: %+v", report.Reviews)
	}
}

func TestSentimentFallsBackWhenScorerFails(t *testing.T) {
	scorer := &testutil.MockScorer{Err: fmt.Errorf("model unavailable")}
	svc := New(scorer, nil)

	report, err := svc.Sentiment(context.Background(), []string{"excellent product"})
	if err != nil {
		t.Fatalf("Sentiment: %v", err)
	}
	if report.ScoredRemotely {
		t.Fatal("expected lexicon fallback")
	}
	if report.Reviews[0].Label != insight.SentimentPositive {
		t.Fatalf("fallback scoring failed: %+v", report.Reviews[0])
	}
}

func TestSentimentValidation(t *testing.T) {
	svc := New(nil, nil)
	ctx := context.Background()

	if _, err := svc.Sentiment(ctx, nil); err == nil {
		t.Fatal("expected error for no reviews")
	}
	if _, err := svc.Sentiment(ctx, []string{"  ", ""}); err == nil {
		t.Fatal("expected error for blank reviews")
	}
	if _, err := svc.Sentiment(ctx, []string{strings.Repeat("a", maxReviewBytes+1)}); err == nil {
		t.Fatal("expected error for oversized review")
	}
	many := make([]string, maxReviews+1)
	for i := range many {
		many[i] = "ok"
	}
	if _, err := svc.Sentiment(ctx, many); err == nil {
		t.Fatal("expected error for too many reviews")
	}
}
