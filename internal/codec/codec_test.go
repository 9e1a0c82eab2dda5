package codec

import (
	"errors"
	"testing"

	"github.com/sardorbek/kalit/internal/model"
)

func TestParseCreationNormalizes(t *testing.T) {
	c, err := ParseCreation("  math101 | Algebra midterm + ABCDabcd ")
	if err != nil {
		t.Fatalf("ParseCreation returned error: %v", err)
	}
	if c.Code != "MATH101" {
		t.Errorf("code = %q, want MATH101", c.Code)
	}
	if c.Name != "Algebra midterm" {
		t.Errorf("name = %q, want %q", c.Name, "Algebra midterm")
	}
	if c.Answers != "abcdabcd" {
		t.Errorf("answers = %q, want abcdabcd", c.Answers)
	}
}

func TestParseCreationBadFormats(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"no pipe", "MATH101+abcd"},
		{"two pipes", "A|B|C+abcd"},
		{"no plus", "MATH101|Algebra abcd"},
		{"two pluses", "MATH101|Algebra+ab+cd"},
		{"code with space", "MATH 101|Algebra+abcd"},
		{"code with symbol", "MATH-101|Algebra+abcd"},
		{"empty code", "|Algebra+abcd"},
		{"empty answers", "MATH101|Algebra+   "},
	}
	for _, tc := range cases {
		if _, err := ParseCreation(tc.raw); !errors.Is(err, model.ErrBadFormat) {
			t.Errorf("%s: ParseCreation(%q) err = %v, want ErrBadFormat", tc.name, tc.raw, err)
		}
	}
}

func TestParseSubmission(t *testing.T) {
	s, err := ParseSubmission(" math101 * ABDC ")
	if err != nil {
		t.Fatalf("ParseSubmission returned error: %v", err)
	}
	// Code keeps its case; the registry lookup is case-insensitive.
	if s.Code != "math101" {
		t.Errorf("code = %q, want math101", s.Code)
	}
	if s.Answers != "abdc" {
		t.Errorf("answers = %q, want abdc", s.Answers)
	}

	for _, raw := range []string{"MATH101 abcd", "A*B*C", "*abcd"} {
		if _, err := ParseSubmission(raw); !errors.Is(err, model.ErrBadFormat) {
			t.Errorf("ParseSubmission(%q) err = %v, want ErrBadFormat", raw, err)
		}
	}
}

func TestParseBonusScores(t *testing.T) {
	scores, err := ParseBonusScores("1.1; 2 ;3.25")
	if err != nil {
		t.Fatalf("ParseBonusScores returned error: %v", err)
	}
	want := []float64{1.1, 2, 3.25}
	if len(scores) != len(want) {
		t.Fatalf("got %d scores, want %d", len(scores), len(want))
	}
	for i := range want {
		if scores[i] != want[i] {
			t.Errorf("scores[%d] = %v, want %v", i, scores[i], want[i])
		}
	}

	if _, err := ParseBonusScores("1.1;abc;2"); !errors.Is(err, model.ErrBadFormat) {
		t.Errorf("non-numeric token: err = %v, want ErrBadFormat", err)
	}
	if _, err := ParseBonusScores("1.1;2;"); !errors.Is(err, model.ErrBadFormat) {
		t.Errorf("trailing separator: err = %v, want ErrBadFormat", err)
	}
}

func TestTokens(t *testing.T) {
	got := Tokens("abcd")
	if len(got) != 4 || got[0] != "a" || got[3] != "d" {
		t.Errorf("Tokens(abcd) = %v, want one token per character", got)
	}

	got = Tokens("12, 34 ,56")
	if len(got) != 3 || got[0] != "12" || got[1] != "34" || got[2] != "56" {
		t.Errorf("Tokens with commas = %v, want trimmed comma tokens", got)
	}
}

func TestGenerateCode(t *testing.T) {
	for i := 0; i < 50; i++ {
		code := GenerateCode()
		if len(code) != CodeLength {
			t.Fatalf("code %q has length %d, want %d", code, len(code), CodeLength)
		}
		if !isAlphanumeric(code) {
			t.Fatalf("code %q is not alphanumeric", code)
		}
	}
}
