package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetComponentFirstWrite(t *testing.T) {
	g := &Grade{}

	ok := g.SetComponent(GradeMidterm, 7.0)

	assert.True(t, ok)
	assert.Equal(t, 7.0, *g.Midterm)
	assert.Equal(t, 7.0, g.Average)
	assert.Equal(t, 70.0, g.Percentage)
	assert.Equal(t, "B", g.LetterGrade)
}

func TestSetComponentUnknownType(t *testing.T) {
	g := &Grade{}

	ok := g.SetComponent(GradeType("homework"), 5.0)

	assert.False(t, ok)
	assert.Equal(t, 0.0, g.Average)
}

func TestRecomputeAveragesOnlyNonNull(t *testing.T) {
	g := &Grade{}
	g.SetComponent(GradeMidterm, 8.5)
	g.SetComponent(GradeFinal, 9.6)

	assert.InDelta(t, 9.05, g.Average, 1e-9)
	assert.InDelta(t, 90.5, g.Percentage, 1e-9)
	assert.Equal(t, "A", g.LetterGrade)
}

func TestRecomputeOverwriteComponent(t *testing.T) {
	g := &Grade{}
	g.SetComponent(GradeQuiz1, 4.0)
	g.SetComponent(GradeQuiz1, 8.0)

	assert.Equal(t, 8.0, g.Average)
	assert.Equal(t, 80.0, g.Percentage)
}

func TestRecomputeAllComponents(t *testing.T) {
	g := &Grade{}
	for _, gt := range GradeTypes {
		g.SetComponent(gt, 6.0)
	}

	assert.Equal(t, 6.0, g.Average)
	assert.Equal(t, 60.0, g.Percentage)
	assert.Equal(t, "C+", g.LetterGrade)
}

func TestRecomputeEmptyGrade(t *testing.T) {
	g := &Grade{}
	g.Recompute()

	assert.Equal(t, 0.0, g.Average)
	assert.Equal(t, 0.0, g.Percentage)
	assert.Equal(t, "F", g.LetterGrade)
}

func TestLetterForAverageThresholds(t *testing.T) {
	tests := []struct {
		avg    float64
		letter string
	}{
		{10.0, "A+"},
		{9.5, "A+"},
		{9.49, "A"},
		{8.5, "A"},
		{8.49, "B+"},
		{7.5, "B+"},
		{6.5, "B"},
		{5.5, "C+"},
		{4.5, "C"},
		{3.5, "D"},
		{3.49, "F"},
		{0.0, "F"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.letter, LetterForAverage(tt.avg), "average %v", tt.avg)
	}
}

func TestValidGradeType(t *testing.T) {
	for _, gt := range GradeTypes {
		assert.True(t, ValidGradeType(string(gt)))
	}
	assert.False(t, ValidGradeType("homework"))
	assert.False(t, ValidGradeType(""))
	assert.False(t, ValidGradeType("MIDTERM"))
}
