package quiz

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Bank format names accepted by LoadBank.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Bank is the immutable set of questions loaded at startup. It is never
// mutated after construction and is safe for concurrent reads.
type Bank struct {
	questions []Question
}

// NewBank copies qs into a new bank.
func NewBank(qs []Question) *Bank {
	cp := make([]Question, len(qs))
	copy(cp, qs)
	return &Bank{questions: cp}
}

// LoadBank decodes a list of {question, answer} objects in the given format.
func LoadBank(r io.Reader, format string) (*Bank, error) {
	var qs []Question
	switch format {
	case FormatJSON, "":
		if err := json.NewDecoder(r).Decode(&qs); err != nil {
			return nil, fmt.Errorf("decode json question bank: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&qs); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode yaml question bank: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported question bank format %q", format)
	}

	for i, q := range qs {
		if strings.TrimSpace(q.Text) == "" {
			return nil, fmt.Errorf("question %d has no text", i)
		}
		if !finite(q.Answer) {
			return nil, fmt.Errorf("question %d has a non-finite answer", i)
		}
	}
	return &Bank{questions: qs}, nil
}

// FormatFromPath guesses the bank format from a file or object name.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Len returns the number of questions in the bank.
func (b *Bank) Len() int {
	return len(b.questions)
}

// Questions returns a copy of every question in the bank.
func (b *Bank) Questions() []Question {
	cp := make([]Question, len(b.questions))
	copy(cp, b.questions)
	return cp
}

// Sample draws n distinct questions uniformly at random. Each call draws
// independently of every other call.
func (b *Bank) Sample(n int) ([]Question, error) {
	if n <= 0 {
		n = DefaultSampleSize
	}
	if len(b.questions) < n {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrInsufficientBank, len(b.questions), n)
	}

	picked := make([]Question, n)
	for i, idx := range rand.Perm(len(b.questions))[:n] {
		picked[i] = b.questions[idx]
	}
	return picked, nil
}
