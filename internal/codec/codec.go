// Package codec parses the compact wire formats users type into the chat:
//
//	CODE|NAME+ANSWERS   create a test
//	CODE*ANSWERS        submit answers for a test
//	1.5;2;3.25          attach bonus scores
//
// It also owns the tokenization rule shared with scoring: an answer
// string containing a comma is a comma-separated token list, anything
// else is one token per character.
package codec

import (
	"math/rand"
	"strconv"
	"strings"

	"github.com/sardorbek/kalit/internal/model"
)

// CodeLength is the length of server-generated test codes.
const CodeLength = 6

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Creation is the parsed form of CODE|NAME+ANSWERS.
type Creation struct {
	Code    string // upper-cased, alphanumeric
	Name    string // trimmed
	Answers string // trimmed, lower-cased, non-empty
}

// Submission is the parsed form of CODE*ANSWERS.
type Submission struct {
	Code    string // trimmed, case preserved; lookup is case-insensitive
	Answers string // trimmed, lower-cased
}

// ParseCreation splits raw on a single '|' and a single '+' inside the
// right-hand side. Any other delimiter count is model.ErrBadFormat.
func ParseCreation(raw string) (Creation, error) {
	parts := strings.Split(raw, "|")
	if len(parts) != 2 {
		return Creation{}, model.ErrBadFormat
	}

	code := strings.ToUpper(strings.TrimSpace(parts[0]))
	if !isAlphanumeric(code) {
		return Creation{}, model.ErrBadFormat
	}

	rest := strings.Split(parts[1], "+")
	if len(rest) != 2 {
		return Creation{}, model.ErrBadFormat
	}

	answers := strings.ToLower(strings.TrimSpace(rest[1]))
	if answers == "" {
		return Creation{}, model.ErrBadFormat
	}

	return Creation{
		Code:    code,
		Name:    strings.TrimSpace(rest[0]),
		Answers: answers,
	}, nil
}

// ParseSubmission splits raw on a single '*'.
func ParseSubmission(raw string) (Submission, error) {
	parts := strings.Split(raw, "*")
	if len(parts) != 2 {
		return Submission{}, model.ErrBadFormat
	}

	code := strings.TrimSpace(parts[0])
	if code == "" {
		return Submission{}, model.ErrBadFormat
	}

	return Submission{
		Code:    code,
		Answers: strings.ToLower(strings.TrimSpace(parts[1])),
	}, nil
}

// ParseBonusScores parses a ';'-separated decimal list such as
// "1.1;2;3.5". Every token must parse as a float.
func ParseBonusScores(raw string) ([]float64, error) {
	parts := strings.Split(strings.TrimSpace(raw), ";")
	scores := make([]float64, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, model.ErrBadFormat
		}
		scores = append(scores, v)
	}
	return scores, nil
}

// Tokens splits an answer string into the positional key sequence.
// A string with commas is split on them, one token per question;
// otherwise each character is one question's answer.
func Tokens(answers string) []string {
	if strings.Contains(answers, ",") {
		parts := strings.Split(answers, ",")
		tokens := make([]string, len(parts))
		for i, part := range parts {
			tokens[i] = strings.TrimSpace(part)
		}
		return tokens
	}

	tokens := make([]string, 0, len(answers))
	for _, r := range answers {
		tokens = append(tokens, string(r))
	}
	return tokens
}

// GenerateCode returns a random CodeLength-character test code over
// [A-Z0-9], for creators who want a server-issued code. Collisions are
// handled by the registry's duplicate check.
func GenerateCode() string {
	var sb strings.Builder
	for i := 0; i < CodeLength; i++ {
		sb.WriteByte(codeAlphabet[rand.Intn(len(codeAlphabet))])
	}
	return sb.String()
}

func isAlphanumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
