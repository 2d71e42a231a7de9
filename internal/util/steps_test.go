package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitIntoSteps(t *testing.T) {
	text := "The cat sat down. It looked at the sun. Then it slept. The end."

	steps := SplitIntoSteps(text, 2)
	assert.Equal(t, []string{
		"The cat sat down. It looked at the sun.",
		"Then it slept. The end.",
	}, steps)
}

func TestSplitIntoStepsOddSentenceCount(t *testing.T) {
	steps := SplitIntoSteps("One. Two. Three.", 2)
	assert.Len(t, steps, 2)
	assert.Equal(t, "Three.", steps[1])
}

func TestSplitIntoStepsEmptyText(t *testing.T) {
	assert.Empty(t, SplitIntoSteps("", 2))
	assert.Empty(t, SplitIntoSteps("   \n  ", 2))
}

func TestSplitIntoStepsInvalidChunkSize(t *testing.T) {
	steps := SplitIntoSteps("One. Two.", 0)
	assert.Equal(t, []string{"One.", "Two."}, steps)
}

func TestNumberSteps(t *testing.T) {
	out := NumberSteps([]string{"Sit down.", "Open the book."})
	assert.Equal(t, "Step 1: Sit down.\n\nStep 2: Open the book.", out)
}

func TestLessonSteps(t *testing.T) {
	friendly := "Step 1: Sit down.\n\nStep 2: Open the book.\n"
	steps := LessonSteps(friendly)
	assert.Equal(t, []string{"Step 1: Sit down.", "Step 2: Open the book."}, steps)
}

func TestLessonStepsEmpty(t *testing.T) {
	assert.Empty(t, LessonSteps(""))
}

func TestClampStep(t *testing.T) {
	cases := []struct {
		name  string
		step  int
		total int
		want  int
	}{
		{"inside range", 2, 5, 2},
		{"below zero", -1, 5, 0},
		{"past the end", 7, 5, 4},
		{"unknown total leaves step alone", 3, 0, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ClampStep(tc.step, tc.total))
		})
	}
}
