package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/sardorbek/kalit/internal/codec"
	"github.com/sardorbek/kalit/internal/dto"
	"github.com/sardorbek/kalit/internal/model"
	"github.com/sardorbek/kalit/internal/repository"
)

// RegistryService owns the test lifecycle: creation from the compact
// wire format, code lookup, creator listings, edits, bonus-score
// annotation, and age-based expiry.
type RegistryService interface {
	Create(creatorID int64, raw string) (*dto.TestCreatedDTO, error)
	Lookup(code string) (*model.Test, error)
	Edit(code, raw string) error
	ListByCreator(creatorID int64) ([]dto.TestSummaryDTO, error)
	AttachBonusScores(code string, scores []float64) error
	Delete(code string) error
	Purge(maxAgeDays int) (int64, error)
}

type registryService struct {
	testRepo repository.TestRepository
	userRepo repository.UserRepository
}

func NewRegistryService(testRepo repository.TestRepository, userRepo repository.UserRepository) RegistryService {
	return &registryService{testRepo: testRepo, userRepo: userRepo}
}

func (s *registryService) Create(creatorID int64, raw string) (*dto.TestCreatedDTO, error) {
	creation, err := codec.ParseCreation(raw)
	if err != nil {
		return nil, err
	}

	registered, err := s.userRepo.Exists(creatorID)
	if err != nil {
		return nil, fmt.Errorf("checking creator %d: %w", creatorID, err)
	}
	if !registered {
		return nil, model.ErrUserNotFound
	}

	if _, err := s.testRepo.FindByCode(creation.Code); err == nil {
		return nil, model.ErrDuplicateCode
	} else if !errors.Is(err, model.ErrTestNotFound) {
		return nil, fmt.Errorf("checking code %s: %w", creation.Code, err)
	}

	test := model.Test{
		Code:      creation.Code,
		Name:      creation.Name,
		CreatorID: creatorID,
		Answers:   creation.Answers,
	}
	if err := s.testRepo.Create(&test); err != nil {
		return nil, fmt.Errorf("creating test %s: %w", creation.Code, err)
	}

	log.Info().Str("code", test.Code).Int64("creatorID", creatorID).Msg("Test created")
	return &dto.TestCreatedDTO{
		Code:          test.Code,
		Name:          test.Name,
		QuestionCount: len(codec.Tokens(test.Answers)),
		CreatorID:     test.CreatorID,
		CreatedAt:     test.CreatedAt,
	}, nil
}

func (s *registryService) Lookup(code string) (*model.Test, error) {
	return s.testRepo.FindByCode(strings.TrimSpace(code))
}

// Edit replaces a test's name and answer key. Raw is NAME+ANSWERS with
// exactly one '+'. Ownership is not re-checked here; callers restrict
// edits to the creator.
func (s *registryService) Edit(code, raw string) error {
	parts := strings.Split(raw, "+")
	if len(parts) != 2 {
		return model.ErrBadFormat
	}
	newName := strings.TrimSpace(parts[0])
	newAnswers := strings.ToLower(strings.TrimSpace(parts[1]))
	if newAnswers == "" {
		return model.ErrBadFormat
	}

	if err := s.testRepo.Update(code, newName, newAnswers); err != nil {
		return err
	}
	log.Info().Str("code", code).Msg("Test updated")
	return nil
}

func (s *registryService) ListByCreator(creatorID int64) ([]dto.TestSummaryDTO, error) {
	tests, err := s.testRepo.FindByCreator(creatorID)
	if err != nil {
		return nil, fmt.Errorf("listing tests for creator %d: %w", creatorID, err)
	}

	var summaries []dto.TestSummaryDTO
	if err := copier.Copy(&summaries, tests); err != nil {
		return nil, fmt.Errorf("mapping test summaries: %w", err)
	}
	return summaries, nil
}

// AttachBonusScores overwrites any previously stored list. The sequence
// is stored comma-joined; it correlates to results by submission order
// only, nothing matches its length against the recorded results.
func (s *registryService) AttachBonusScores(code string, scores []float64) error {
	joined := make([]string, len(scores))
	for i, v := range scores {
		joined[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	if err := s.testRepo.UpdateScores(code, strings.Join(joined, ",")); err != nil {
		return err
	}
	log.Info().Str("code", code).Int("count", len(scores)).Msg("Bonus scores attached")
	return nil
}

func (s *registryService) Delete(code string) error {
	return s.testRepo.DeleteByCode(code)
}

// Purge deletes tests created strictly more than maxAgeDays ago. A test
// created exactly at the boundary is retained.
func (s *registryService) Purge(maxAgeDays int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -maxAgeDays)
	deleted, err := s.testRepo.DeleteOlderThan(cutoff)
	if err != nil {
		return 0, fmt.Errorf("purging tests older than %d days: %w", maxAgeDays, err)
	}
	log.Info().Int64("deleted", deleted).Int("maxAgeDays", maxAgeDays).Msg("Old tests purged")
	return deleted, nil
}
