package services

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"
)

const (
	distractorCount       = 3
	distractorMaxTokens   = 100
	distractorTemperature = 0.7
	distractorTimeout     = 15 * time.Second
)

// decorationPattern matches quote/bracket/comma/asterisk characters and
// leading "N. " numbering prefixes the model tends to emit despite the
// prompt asking for plain lines.
var decorationPattern = regexp.MustCompile(`["\[\],*]|\d+\.\s*`)

// fallbackDistractors is returned whenever the generation backend fails.
var fallbackDistractors = [distractorCount]string{"Option 1", "Option 2", "Option 3"}

// DistractorService imposes a hard contract on a best-effort text backend:
// Synthesize always yields exactly 3 usable wrong options and never errors.
type DistractorService struct {
	generator TextGenerator
}

func NewDistractorService(generator TextGenerator) *DistractorService {
	return &DistractorService{generator: generator}
}

func (s *DistractorService) Synthesize(ctx context.Context, question, correctAnswer string) []string {
	prompt := buildDistractorPrompt(question, correctAnswer)

	genCtx, cancel := context.WithTimeout(ctx, distractorTimeout)
	defer cancel()

	raw, err := s.generator.Generate(genCtx, prompt, distractorMaxTokens, distractorTemperature)
	if err != nil {
		log.Printf("Error generating distractors: %v", err)
		return fallbackDistractors[:]
	}

	distractors := parseDistractors(raw, correctAnswer)

	// Pad with placeholder labels until the contract holds
	for len(distractors) < distractorCount {
		distractors = append(distractors, fmt.Sprintf("Variant %d", len(distractors)+1))
	}

	return distractors
}

func buildDistractorPrompt(question, correctAnswer string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Given the question: %q\n", question))
	b.WriteString(fmt.Sprintf("and the correct answer: %q\n", correctAnswer))
	b.WriteString("Generate 3 plausible but incorrect distractors for a multiple-choice quiz.\n")
	b.WriteString("Format the output as a list, one distractor per line, without numbers, quotes, brackets, or any symbols like *.")

	return b.String()
}

// parseDistractors cleans the raw completion. Filter order matters: strip
// decoration, drop empties, drop exact matches of the correct answer, drop
// prompt echoes, then truncate.
func parseDistractors(raw, correctAnswer string) []string {
	lines := strings.Split(strings.TrimSpace(raw), "\n")

	var out []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		line = decorationPattern.ReplaceAllString(line, "")
		line = strings.TrimSpace(line)

		if line == "" || line == correctAnswer {
			continue
		}
		if strings.Contains(line, "Given") || strings.Contains(line, "Generate") {
			continue
		}

		out = append(out, line)
		if len(out) == distractorCount {
			break
		}
	}
	return out
}
