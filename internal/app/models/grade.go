package models

import "time"

// GradeType names one of the six component scores of a grade row
type GradeType string

const (
	GradeOral    GradeType = "oral"
	GradeQuiz1   GradeType = "quiz1"
	GradeQuiz2   GradeType = "quiz2"
	GradeOneHour GradeType = "oneHour"
	GradeMidterm GradeType = "midterm"
	GradeFinal   GradeType = "final"
)

// GradeTypes lists all component types in storage order.
var GradeTypes = []GradeType{GradeOral, GradeQuiz1, GradeQuiz2, GradeOneHour, GradeMidterm, GradeFinal}

// ValidGradeType reports whether the given string names a known component.
func ValidGradeType(t string) bool {
	switch GradeType(t) {
	case GradeOral, GradeQuiz1, GradeQuiz2, GradeOneHour, GradeMidterm, GradeFinal:
		return true
	}
	return false
}

// Grade aggregates all of a student's component scores for one subject in one
// semester. Components are updated in place; Average, Percentage and
// LetterGrade are derived on every write. Scores use a 0-10 scale.
type Grade struct {
	ID           int64     `json:"id" db:"id" example:"3"`
	StudentID    int64     `json:"studentId" db:"student_id" example:"1"`
	SubjectID    int64     `json:"subjectId" db:"subject_id" example:"2"`
	ClassID      int64     `json:"classId" db:"class_id" example:"5"`
	Oral         *float64  `json:"oral,omitempty" db:"oral"`
	Quiz1        *float64  `json:"quiz1,omitempty" db:"quiz1"`
	Quiz2        *float64  `json:"quiz2,omitempty" db:"quiz2"`
	OneHour      *float64  `json:"oneHour,omitempty" db:"one_hour"`
	Midterm      *float64  `json:"midterm,omitempty" db:"midterm"`
	Final        *float64  `json:"final,omitempty" db:"final"`
	Average      float64   `json:"average" db:"average" example:"8.5"`
	Percentage   float64   `json:"percentage" db:"percentage" example:"85"`
	LetterGrade  string    `json:"letterGrade" db:"letter_grade" example:"A"`
	Semester     string    `json:"semester" db:"semester" example:"1"`
	AcademicYear string    `json:"academicYear" db:"academic_year" example:"2023-2024"`
	GradedBy     int64     `json:"gradedBy" db:"graded_by" example:"12"`
	SchoolID     int64     `json:"schoolId" db:"school_id" example:"1"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// Component returns a pointer to the component field named by t, or nil for an
// unknown type.
func (g *Grade) Component(t GradeType) **float64 {
	switch t {
	case GradeOral:
		return &g.Oral
	case GradeQuiz1:
		return &g.Quiz1
	case GradeQuiz2:
		return &g.Quiz2
	case GradeOneHour:
		return &g.OneHour
	case GradeMidterm:
		return &g.Midterm
	case GradeFinal:
		return &g.Final
	}
	return nil
}

// SetComponent overwrites the component named by t and recomputes the derived
// fields. Returns false for an unknown component type.
func (g *Grade) SetComponent(t GradeType, value float64) bool {
	slot := g.Component(t)
	if slot == nil {
		return false
	}
	v := value
	*slot = &v
	g.Recompute()
	return true
}

// Recompute recalculates Average as the arithmetic mean of all non-null
// components, Percentage as its 0-100 view, and LetterGrade from the fixed
// threshold table. A row with no components averages to zero.
func (g *Grade) Recompute() {
	var sum float64
	var n int
	for _, t := range GradeTypes {
		if v := *g.Component(t); v != nil {
			sum += *v
			n++
		}
	}

	if n == 0 {
		g.Average = 0
		g.Percentage = 0
		g.LetterGrade = LetterForAverage(0)
		return
	}

	g.Average = sum / float64(n)
	g.Percentage = g.Average / 10 * 100
	g.LetterGrade = LetterForAverage(g.Average)
}

// LetterForAverage maps a 0-10 average onto a letter grade.
func LetterForAverage(avg float64) string {
	switch {
	case avg >= 9.5:
		return "A+"
	case avg >= 8.5:
		return "A"
	case avg >= 7.5:
		return "B+"
	case avg >= 6.5:
		return "B"
	case avg >= 5.5:
		return "C+"
	case avg >= 4.5:
		return "C"
	case avg >= 3.5:
		return "D"
	default:
		return "F"
	}
}
