package service

import (
	"errors"
	"testing"
	"time"

	"github.com/sardorbek/kalit/internal/model"
)

func TestRegistryCreate(t *testing.T) {
	testRepo := newFakeTestRepo()
	userRepo := newFakeUserRepo(&model.User{ID: 7, Name: "Aziza"})
	svc := NewRegistryService(testRepo, userRepo)

	created, err := svc.Create(7, "math1|Algebra Midterm+abcdabcd")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.Code != "MATH1" {
		t.Errorf("got code %q, want MATH1", created.Code)
	}
	if created.Name != "Algebra Midterm" {
		t.Errorf("got name %q, want Algebra Midterm", created.Name)
	}
	if created.QuestionCount != 8 {
		t.Errorf("got question count %d, want 8", created.QuestionCount)
	}

	stored, err := testRepo.FindByCode("math1")
	if err != nil {
		t.Fatalf("stored test not found: %v", err)
	}
	if stored.Answers != "abcdabcd" {
		t.Errorf("stored answers %q, want abcdabcd", stored.Answers)
	}
	if stored.CreatorID != 7 {
		t.Errorf("stored creator %d, want 7", stored.CreatorID)
	}
}

func TestRegistryCreateRequiresRegisteredCreator(t *testing.T) {
	svc := NewRegistryService(newFakeTestRepo(), newFakeUserRepo())

	_, err := svc.Create(99, "math1|Algebra+abcd")
	if !errors.Is(err, model.ErrUserNotFound) {
		t.Errorf("got err=%v, want ErrUserNotFound", err)
	}
}

func TestRegistryCreateRejectsDuplicateCode(t *testing.T) {
	testRepo := newFakeTestRepo()
	userRepo := newFakeUserRepo(&model.User{ID: 7}, &model.User{ID: 8})
	svc := NewRegistryService(testRepo, userRepo)

	if _, err := svc.Create(7, "quiz|First+abcd"); err != nil {
		t.Fatalf("first Create returned error: %v", err)
	}
	_, err := svc.Create(8, "QUIZ|Second+dcba")
	if !errors.Is(err, model.ErrDuplicateCode) {
		t.Fatalf("got err=%v, want ErrDuplicateCode", err)
	}

	// The original must survive the rejected attempt untouched.
	stored, _ := testRepo.FindByCode("QUIZ")
	if stored.Name != "First" || stored.Answers != "abcd" || stored.CreatorID != 7 {
		t.Errorf("original test mutated by duplicate attempt: %+v", stored)
	}
	if testRepo.createCalls != 1 {
		t.Errorf("createCalls = %d, want 1", testRepo.createCalls)
	}
}

func TestRegistryCreateBadFormat(t *testing.T) {
	svc := NewRegistryService(newFakeTestRepo(), newFakeUserRepo(&model.User{ID: 7}))

	for _, raw := range []string{
		"no delimiters at all",
		"code|name without plus",
		"a|b|c+answers",
		"code|name+first+second",
		"co de|name+abcd",
		"code|name+",
	} {
		if _, err := svc.Create(7, raw); !errors.Is(err, model.ErrBadFormat) {
			t.Errorf("Create(%q): got err=%v, want ErrBadFormat", raw, err)
		}
	}
}

func TestRegistryEdit(t *testing.T) {
	testRepo := newFakeTestRepo()
	userRepo := newFakeUserRepo(&model.User{ID: 7})
	svc := NewRegistryService(testRepo, userRepo)

	if _, err := svc.Create(7, "quiz|Old Name+aaaa"); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if err := svc.Edit("QUIZ", "New Name+ABCD"); err != nil {
		t.Fatalf("Edit returned error: %v", err)
	}

	stored, _ := testRepo.FindByCode("QUIZ")
	if stored.Name != "New Name" {
		t.Errorf("got name %q, want New Name", stored.Name)
	}
	if stored.Answers != "abcd" {
		t.Errorf("got answers %q, want abcd (lower-cased)", stored.Answers)
	}
}

func TestRegistryEditBadFormat(t *testing.T) {
	svc := NewRegistryService(newFakeTestRepo(), newFakeUserRepo())

	if err := svc.Edit("QUIZ", "no plus here"); !errors.Is(err, model.ErrBadFormat) {
		t.Errorf("got err=%v, want ErrBadFormat", err)
	}
	if err := svc.Edit("QUIZ", "name+"); !errors.Is(err, model.ErrBadFormat) {
		t.Errorf("empty answers: got err=%v, want ErrBadFormat", err)
	}
}

func TestRegistryEditUnknownCode(t *testing.T) {
	svc := NewRegistryService(newFakeTestRepo(), newFakeUserRepo())

	if err := svc.Edit("NOPE", "name+abcd"); !errors.Is(err, model.ErrTestNotFound) {
		t.Errorf("got err=%v, want ErrTestNotFound", err)
	}
}

func TestRegistryAttachBonusScores(t *testing.T) {
	testRepo := newFakeTestRepo()
	svc := NewRegistryService(testRepo, newFakeUserRepo(&model.User{ID: 7}))

	if _, err := svc.Create(7, "quiz|Quiz+abcd"); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if err := svc.AttachBonusScores("QUIZ", []float64{1.5, 2, 3.25}); err != nil {
		t.Fatalf("AttachBonusScores returned error: %v", err)
	}

	stored, _ := testRepo.FindByCode("QUIZ")
	if stored.Scores != "1.5,2,3.25" {
		t.Errorf("got scores %q, want 1.5,2,3.25", stored.Scores)
	}
}

func TestRegistryPurge(t *testing.T) {
	testRepo := newFakeTestRepo()
	svc := NewRegistryService(testRepo, newFakeUserRepo(&model.User{ID: 7}))

	if _, err := svc.Create(7, "old1|Stale+abcd"); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := svc.Create(7, "new1|Fresh+abcd"); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	testRepo.tests["OLD1"].CreatedAt = time.Now().AddDate(0, 0, -45)

	deleted, err := svc.Purge(30)
	if err != nil {
		t.Fatalf("Purge returned error: %v", err)
	}
	if deleted != 1 {
		t.Errorf("got deleted=%d, want 1", deleted)
	}
	if _, err := testRepo.FindByCode("OLD1"); !errors.Is(err, model.ErrTestNotFound) {
		t.Errorf("stale test still present: err=%v", err)
	}
	if _, err := testRepo.FindByCode("NEW1"); err != nil {
		t.Errorf("fresh test deleted: err=%v", err)
	}
}
