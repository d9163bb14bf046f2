package grade

import (
	"math"

	"github.com/trezcool/classtrack/core"
)

// Summarize computes the grade-point average of the given grades,
// optionally restricted to an exact term label (empty term keeps all).
// An empty filtered set yields {0, 0}; that is defined behavior for
// "no data", not an error. A grade with a max score of zero makes the
// percentage undefined and returns core.ErrZeroMaxScore.
func Summarize(grades []Grade, term string) (Summary, error) {
	filtered := grades
	if term != "" {
		filtered = make([]Grade, 0, len(grades))
		for _, g := range grades {
			if g.Term == term {
				filtered = append(filtered, g)
			}
		}
	}
	if len(filtered) == 0 {
		return Summary{}, nil
	}

	var totalPoints float64
	for _, g := range filtered {
		if g.MaxScore == 0 {
			return Summary{}, core.ErrZeroMaxScore
		}
		totalPoints += Points(g.Score / g.MaxScore * 100)
	}

	return Summary{
		GPA:         round2(totalPoints / float64(len(filtered))),
		TotalGrades: len(filtered),
	}, nil
}

// Points maps a percentage to grade points on the fixed banding:
// [90,∞) 4.0, [80,90) 3.0, [70,80) 2.0, [60,70) 1.0, below 0.0.
func Points(percentage float64) float64 {
	switch {
	case percentage >= 90:
		return 4.0
	case percentage >= 80:
		return 3.0
	case percentage >= 70:
		return 2.0
	case percentage >= 60:
		return 1.0
	}
	return 0.0
}

// round2 rounds to two decimals, half away from zero.
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
