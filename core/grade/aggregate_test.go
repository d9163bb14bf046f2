package grade

import (
	"testing"

	"github.com/trezcool/classtrack/core"
)

func TestPoints(t *testing.T) {
	tests := []struct {
		percentage float64
		want       float64
	}{
		{percentage: 100, want: 4.0},
		{percentage: 90, want: 4.0},
		{percentage: 89.99, want: 3.0},
		{percentage: 80, want: 3.0},
		{percentage: 79.99, want: 2.0},
		{percentage: 70, want: 2.0},
		{percentage: 69.99, want: 1.0},
		{percentage: 60, want: 1.0},
		{percentage: 59.99, want: 0.0},
		{percentage: 0, want: 0.0},
	}
	for _, tt := range tests {
		if got := Points(tt.percentage); got != tt.want {
			t.Errorf("Points(%v) = %v, want %v", tt.percentage, got, tt.want)
		}
	}
}

func TestSummarize(t *testing.T) {
	g := func(score, max float64, term string) Grade {
		return Grade{Score: score, MaxScore: max, Term: term}
	}

	tests := []struct {
		name    string
		grades  []Grade
		term    string
		want    Summary
		wantErr error
	}{
		{name: "no grades", grades: nil, want: Summary{}},
		{name: "term filters everything out", grades: []Grade{g(90, 100, "Term 1")}, term: "Term 2", want: Summary{}},
		{
			name:   "single grade",
			grades: []Grade{g(85, 100, "Term 1")},
			want:   Summary{GPA: 3.0, TotalGrades: 1},
		},
		{
			name: "mean over bands",
			grades: []Grade{
				g(95, 100, "Term 1"), // 4.0
				g(85, 100, "Term 1"), // 3.0
				g(50, 100, "Term 1"), // 0.0
			},
			want: Summary{GPA: 2.33, TotalGrades: 3},
		},
		{
			name: "mean needs no rounding",
			grades: []Grade{
				g(95, 100, ""), // 4.0
				g(85, 100, ""), // 3.0
			},
			want: Summary{GPA: 3.5, TotalGrades: 2},
		},
		{
			name: "percentage computed against max score",
			grades: []Grade{
				g(18, 20, "Term 1"), // 90% -> 4.0
				g(7, 10, "Term 1"),  // 70% -> 2.0
			},
			want: Summary{GPA: 3.0, TotalGrades: 2},
		},
		{
			name: "term filter keeps exact matches only",
			grades: []Grade{
				g(95, 100, "Term 1"), // 4.0
				g(50, 100, "Term 2"), // excluded
				g(50, 100, "term 1"), // excluded, labels are case sensitive
			},
			term: "Term 1",
			want: Summary{GPA: 4.0, TotalGrades: 1},
		},
		{
			name:    "zero max score",
			grades:  []Grade{g(10, 0, "Term 1")},
			wantErr: core.ErrZeroMaxScore,
		},
		{
			name: "zero max score behind term filter is ignored",
			grades: []Grade{
				g(95, 100, "Term 1"),
				g(10, 0, "Term 2"),
			},
			term: "Term 1",
			want: Summary{GPA: 4.0, TotalGrades: 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Summarize(tt.grades, tt.term)
			if err != tt.wantErr {
				t.Fatalf("Summarize() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Summarize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
