package service

import (
	"errors"
	"testing"
	"time"

	"github.com/sardorbek/kalit/internal/model"
	"github.com/sardorbek/kalit/internal/repository"
)

func TestTestStatistics(t *testing.T) {
	testRepo := newFakeTestRepo()
	if err := testRepo.Create(&model.Test{Code: "QUIZ", Name: "History Quiz", CreatorID: 1, Answers: "abcd", Scores: "1.5,2,x,3"}); err != nil {
		t.Fatalf("seeding test: %v", err)
	}
	resultRepo := &fakeResultRepo{
		statsRows: []repository.StatisticsRow{
			{UserID: 2, Name: "Aziza", Username: "aziza", Score: 100, SubmittedAt: time.Now()},
			{UserID: 3, Name: "Bek", Score: 75, SubmittedAt: time.Now()},
		},
	}
	svc := NewStatsService(testRepo, resultRepo, newFakeUserRepo())

	report, err := svc.TestStatistics("quiz")
	if err != nil {
		t.Fatalf("TestStatistics returned error: %v", err)
	}
	if report.TestCode != "QUIZ" || report.TestName != "History Quiz" {
		t.Errorf("got %s/%s, want QUIZ/History Quiz", report.TestCode, report.TestName)
	}
	if len(report.Entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(report.Entries))
	}
	if report.Entries[0].Name != "Aziza" || report.Entries[0].Score != 100 {
		t.Errorf("first entry %+v, want Aziza/100", report.Entries[0])
	}
	// The unparseable token is skipped, the rest survive in order.
	wantScores := []float64{1.5, 2, 3}
	if len(report.BonusScores) != len(wantScores) {
		t.Fatalf("got bonus scores %v, want %v", report.BonusScores, wantScores)
	}
	for i, want := range wantScores {
		if report.BonusScores[i] != want {
			t.Errorf("bonus score [%d] = %v, want %v", i, report.BonusScores[i], want)
		}
	}
}

func TestTestStatisticsUnknownCode(t *testing.T) {
	svc := NewStatsService(newFakeTestRepo(), &fakeResultRepo{}, newFakeUserRepo())

	_, err := svc.TestStatistics("NOPE")
	if !errors.Is(err, model.ErrTestNotFound) {
		t.Errorf("got err=%v, want ErrTestNotFound", err)
	}
}

func TestLeaderboardRanks(t *testing.T) {
	resultRepo := &fakeResultRepo{
		lbRows: []repository.LeaderboardRow{
			{UserID: 2, Name: "Aziza", AvgScore: 95.5, TestsTaken: 4},
			{UserID: 3, Name: "Bek", AvgScore: 80, TestsTaken: 2},
		},
	}
	svc := NewStatsService(newFakeTestRepo(), resultRepo, newFakeUserRepo())

	entries, err := svc.Leaderboard(5)
	if err != nil {
		t.Fatalf("Leaderboard returned error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Rank != 1 || entries[1].Rank != 2 {
		t.Errorf("got ranks %d,%d, want 1,2", entries[0].Rank, entries[1].Rank)
	}
	if entries[0].Name != "Aziza" || entries[0].AvgScore != 95.5 || entries[0].TestsTaken != 4 {
		t.Errorf("first entry %+v, want Aziza/95.5/4", entries[0])
	}
}

func TestLeaderboardDefaultLimit(t *testing.T) {
	resultRepo := &fakeResultRepo{}
	svc := NewStatsService(newFakeTestRepo(), resultRepo, newFakeUserRepo())

	if _, err := svc.Leaderboard(0); err != nil {
		t.Fatalf("Leaderboard returned error: %v", err)
	}
	if resultRepo.lastLimit != DefaultLeaderboardLimit {
		t.Errorf("got limit %d, want %d", resultRepo.lastLimit, DefaultLeaderboardLimit)
	}
}

func TestPlatformStats(t *testing.T) {
	testRepo := newFakeTestRepo()
	if err := testRepo.Create(&model.Test{Code: "QUIZ", CreatorID: 1, Answers: "abcd"}); err != nil {
		t.Fatalf("seeding test: %v", err)
	}
	resultRepo := &fakeResultRepo{statsRows: make([]repository.StatisticsRow, 3)}
	userRepo := newFakeUserRepo(&model.User{ID: 1}, &model.User{ID: 2})
	svc := NewStatsService(testRepo, resultRepo, userRepo)

	stats, err := svc.PlatformStats()
	if err != nil {
		t.Fatalf("PlatformStats returned error: %v", err)
	}
	if stats.Users != 2 || stats.Tests != 1 || stats.Results != 3 {
		t.Errorf("got %+v, want users=2 tests=1 results=3", stats)
	}
}

func TestSearchTests(t *testing.T) {
	testRepo := newFakeTestRepo()
	for _, seed := range []model.Test{
		{Code: "HIST1", Name: "History Midterm", CreatorID: 1, Answers: "abcd"},
		{Code: "MATH1", Name: "Algebra", CreatorID: 1, Answers: "abcd"},
	} {
		seed := seed
		if err := testRepo.Create(&seed); err != nil {
			t.Fatalf("seeding test: %v", err)
		}
	}
	svc := NewStatsService(testRepo, &fakeResultRepo{}, newFakeUserRepo())

	hits, err := svc.SearchTests("history")
	if err != nil {
		t.Fatalf("SearchTests returned error: %v", err)
	}
	if len(hits) != 1 || hits[0].Code != "HIST1" {
		t.Errorf("got hits %+v, want one HIST1 hit", hits)
	}
}
