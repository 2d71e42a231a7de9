package util

import (
	"fmt"
	"strings"
)

// SplitIntoSteps chunks raw text into gentle reading steps of
// sentencesPerStep sentences each. Sentences are split on periods;
// every step keeps a trailing period.
func SplitIntoSteps(text string, sentencesPerStep int) []string {
	if sentencesPerStep < 1 {
		sentencesPerStep = 1
	}

	var sentences []string
	for _, s := range strings.Split(strings.ReplaceAll(text, "\n", " "), ".") {
		s = strings.TrimSpace(s)
		if s != "" {
			sentences = append(sentences, s)
		}
	}

	var steps []string
	for i := 0; i < len(sentences); i += sentencesPerStep {
		end := i + sentencesPerStep
		if end > len(sentences) {
			end = len(sentences)
		}
		part := strings.TrimSpace(strings.Join(sentences[i:end], ". "))
		if part == "" {
			continue
		}
		if !strings.HasSuffix(part, ".") {
			part += "."
		}
		steps = append(steps, part)
	}
	return steps
}

// NumberSteps renders steps the way the non-AI fallback presents them:
// "Step N: ..." lines separated by blank lines.
func NumberSteps(steps []string) string {
	lines := make([]string, len(steps))
	for i, s := range steps {
		lines[i] = fmt.Sprintf("Step %d: %s", i+1, s)
	}
	return strings.Join(lines, "\n\n")
}

// LessonSteps derives the readable steps from a lesson's friendly text:
// one step per non-blank line.
func LessonSteps(friendlyText string) []string {
	var steps []string
	for _, line := range strings.Split(friendlyText, "\n") {
		if strings.TrimSpace(line) != "" {
			steps = append(steps, line)
		}
	}
	return steps
}

// ClampStep keeps a progress step inside [0, total-1].
func ClampStep(step, total int) int {
	if step < 0 {
		return 0
	}
	if total > 0 && step >= total {
		return total - 1
	}
	return step
}
