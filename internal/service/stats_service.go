package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jinzhu/copier"
	"github.com/sardorbek/kalit/internal/dto"
	"github.com/sardorbek/kalit/internal/repository"
)

// DefaultLeaderboardLimit bounds the global ranking when the caller
// does not ask for a specific size.
const DefaultLeaderboardLimit = 10

// StatsService aggregates results: per-test listings, the global
// leaderboard, platform counters, and admin search.
type StatsService interface {
	TestStatistics(code string) (*dto.StatisticsReportDTO, error)
	Leaderboard(limit int) ([]dto.LeaderboardEntryDTO, error)
	PlatformStats() (*dto.PlatformStatsDTO, error)
	SearchTests(query string) ([]dto.TestSearchHitDTO, error)
	ListUsers() ([]dto.UserDTO, error)
}

type statsService struct {
	testRepo   repository.TestRepository
	resultRepo repository.ResultRepository
	userRepo   repository.UserRepository
}

func NewStatsService(
	testRepo repository.TestRepository,
	resultRepo repository.ResultRepository,
	userRepo repository.UserRepository,
) StatsService {
	return &statsService{testRepo: testRepo, resultRepo: resultRepo, userRepo: userRepo}
}

// TestStatistics returns every result for a test, best score first,
// ties broken by earliest submission (ordering done by the store).
func (s *statsService) TestStatistics(code string) (*dto.StatisticsReportDTO, error) {
	test, err := s.testRepo.FindByCode(code)
	if err != nil {
		return nil, err
	}

	rows, err := s.resultRepo.Statistics(test.ID)
	if err != nil {
		return nil, fmt.Errorf("loading statistics for %s: %w", test.Code, err)
	}

	var entries []dto.StatisticsEntryDTO
	if err := copier.Copy(&entries, rows); err != nil {
		return nil, fmt.Errorf("mapping statistics entries: %w", err)
	}

	report := dto.StatisticsReportDTO{
		TestCode: test.Code,
		TestName: test.Name,
		Entries:  entries,
	}
	if test.Scores != "" {
		report.BonusScores = parseStoredScores(test.Scores)
	}
	return &report, nil
}

// parseStoredScores reads the comma-joined list written by
// AttachBonusScores. Tokens that fail to parse are skipped.
func parseStoredScores(s string) []float64 {
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, part := range parts {
		if v, err := strconv.ParseFloat(strings.TrimSpace(part), 64); err == nil {
			out = append(out, v)
		}
	}
	return out
}

func (s *statsService) Leaderboard(limit int) ([]dto.LeaderboardEntryDTO, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	rows, err := s.resultRepo.Leaderboard(limit)
	if err != nil {
		return nil, fmt.Errorf("loading leaderboard: %w", err)
	}

	entries := make([]dto.LeaderboardEntryDTO, len(rows))
	for i, row := range rows {
		entries[i] = dto.LeaderboardEntryDTO{
			Rank:       i + 1,
			Name:       row.Name,
			Username:   row.Username,
			AvgScore:   row.AvgScore,
			TestsTaken: row.TestsTaken,
		}
	}
	return entries, nil
}

func (s *statsService) PlatformStats() (*dto.PlatformStatsDTO, error) {
	users, err := s.userRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("counting users: %w", err)
	}
	tests, err := s.testRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("counting tests: %w", err)
	}
	results, err := s.resultRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("counting results: %w", err)
	}
	return &dto.PlatformStatsDTO{Users: users, Tests: tests, Results: results}, nil
}

func (s *statsService) SearchTests(query string) ([]dto.TestSearchHitDTO, error) {
	rows, err := s.testRepo.Search(query, 10)
	if err != nil {
		return nil, fmt.Errorf("searching tests for %q: %w", query, err)
	}
	var hits []dto.TestSearchHitDTO
	if err := copier.Copy(&hits, rows); err != nil {
		return nil, fmt.Errorf("mapping search hits: %w", err)
	}
	return hits, nil
}

func (s *statsService) ListUsers() ([]dto.UserDTO, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	var out []dto.UserDTO
	if err := copier.Copy(&out, users); err != nil {
		return nil, fmt.Errorf("mapping users: %w", err)
	}
	return out, nil
}
