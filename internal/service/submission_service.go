package service

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/sardorbek/kalit/internal/codec"
	"github.com/sardorbek/kalit/internal/dto"
	"github.com/sardorbek/kalit/internal/model"
	"github.com/sardorbek/kalit/internal/repository"
)

// SubmissionService grades CODE*ANSWERS submissions, enforcing at most
// one graded attempt per (user, test) pair.
type SubmissionService interface {
	Submit(userID int64, raw string) (*dto.ScoreResultDTO, error)
}

type submissionService struct {
	testRepo    repository.TestRepository
	attemptRepo repository.AttemptRepository
	userRepo    repository.UserRepository
	scoring     ScoringService
	notifier    Notifier
}

func NewSubmissionService(
	testRepo repository.TestRepository,
	attemptRepo repository.AttemptRepository,
	userRepo repository.UserRepository,
	scoring ScoringService,
	notifier Notifier,
) SubmissionService {
	return &submissionService{
		testRepo:    testRepo,
		attemptRepo: attemptRepo,
		userRepo:    userRepo,
		scoring:     scoring,
		notifier:    notifier,
	}
}

// Submit parses raw, rejects repeat takers before scoring, grades the
// submission, and persists the result together with the attempt record.
// The repository's conditional upsert is the authoritative gate; the
// read beforehand only gives repeat takers a fast rejection without a
// wasted write. The test's creator is notified best-effort.
func (s *submissionService) Submit(userID int64, raw string) (*dto.ScoreResultDTO, error) {
	sub, err := codec.ParseSubmission(raw)
	if err != nil {
		return nil, err
	}

	test, err := s.testRepo.FindByCode(sub.Code)
	if err != nil {
		return nil, err
	}

	attempt, err := s.attemptRepo.Find(userID, test.ID)
	if err != nil {
		return nil, fmt.Errorf("checking attempts for user %d test %s: %w", userID, test.Code, err)
	}
	if attempt != nil && attempt.AttemptCount >= 1 {
		return nil, model.ErrAlreadyAttempted
	}

	score, correct, total, err := s.scoring.Score(sub.Answers, test.Answers)
	if err != nil {
		return nil, err
	}

	if err := s.attemptRepo.RecordSubmission(userID, test.ID, score, sub.Answers); err != nil {
		return nil, err
	}
	log.Info().Int64("userID", userID).Str("code", test.Code).Float64("score", score).Msg("Submission graded")

	s.notifyCreator(test.CreatorID, userID, test.Name, score)

	return &dto.ScoreResultDTO{
		TestCode:     test.Code,
		TestName:     test.Name,
		Score:        score,
		CorrectCount: correct,
		Total:        total,
	}, nil
}

func (s *submissionService) notifyCreator(creatorID, takerID int64, testName string, score float64) {
	taker, err := s.userRepo.FindByID(takerID)
	if err != nil {
		log.Warn().Err(err).Int64("takerID", takerID).Msg("Skipping creator notification, taker unknown")
		return
	}

	text := fmt.Sprintf("%s took your test %q\nUsername: @%s\nScore: %.2f%%",
		taker.Name, testName, taker.Username, score)
	if err := s.notifier.Send(creatorID, text); err != nil {
		log.Warn().Err(err).Int64("creatorID", creatorID).Msg("Creator notification failed")
	}
}
