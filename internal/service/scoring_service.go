package service

import (
	"strings"

	"github.com/sardorbek/kalit/internal/codec"
	"github.com/sardorbek/kalit/internal/model"
)

// ScoringService computes the percentage match of a submission against
// an ordered answer key.
type ScoringService interface {
	Score(submittedAnswers, correctAnswers string) (score float64, correct, total int, err error)
}

type scoringService struct{}

func NewScoringService() ScoringService {
	return &scoringService{}
}

// Score pairs tokens positionally and counts case-insensitive matches.
// Both strings use the key's tokenization (comma list or per-character,
// via codec.Tokens). A submission shorter than the key is scored on the
// overlapping prefix only; the missing trailing positions count as
// wrong, which keeps the score bounded in [0,100]. An empty key is a
// data-integrity violation, never a division by zero.
func (s *scoringService) Score(submittedAnswers, correctAnswers string) (float64, int, int, error) {
	correctTokens := codec.Tokens(strings.TrimSpace(correctAnswers))
	if len(correctTokens) == 0 || strings.TrimSpace(correctAnswers) == "" {
		return 0, 0, 0, model.ErrEmptyAnswerKey
	}
	submittedTokens := codec.Tokens(strings.TrimSpace(submittedAnswers))

	matched := 0
	for i, want := range correctTokens {
		if i >= len(submittedTokens) {
			break
		}
		if strings.EqualFold(strings.TrimSpace(submittedTokens[i]), strings.TrimSpace(want)) {
			matched++
		}
	}

	score := 100 * float64(matched) / float64(len(correctTokens))
	return score, matched, len(correctTokens), nil
}
