package scoring

import "math"

// Letter grades in descending order of achievement.
const (
	LetterA = "A"
	LetterB = "B"
	LetterC = "C"
	LetterD = "D"
	LetterF = "F"
)

// Grade pairs a percentage with its letter classification.
type Grade struct {
	Percentage float64 `json:"percentage"`
	Letter     string  `json:"letter"`
}

// Classify converts a score into a percentage (rounded to two decimals)
// and a letter grade. Breakpoints are inclusive lower bounds: 90 is an A,
// 80 a B, 70 a C, 60 a D, anything lower an F.
func Classify(score, maxScore float64) (Grade, error) {
	if maxScore <= 0 {
		return Grade{}, ErrInvalidMaxScore
	}
	if score < 0 {
		return Grade{}, ErrNegativeInput
	}

	percentage := math.Round(score/maxScore*100*100) / 100

	return Grade{
		Percentage: percentage,
		Letter:     letterFor(percentage),
	}, nil
}

func letterFor(percentage float64) string {
	switch {
	case percentage >= 90:
		return LetterA
	case percentage >= 80:
		return LetterB
	case percentage >= 70:
		return LetterC
	case percentage >= 60:
		return LetterD
	default:
		return LetterF
	}
}
