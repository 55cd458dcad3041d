package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestTotalDaysFor(t *testing.T) {
	tests := []struct {
		name      string
		start     string
		end       string
		isHalfDay bool
		want      float64
	}{
		{"single day", "2025-03-10", "2025-03-10", false, 1},
		{"single half day", "2025-03-10", "2025-03-10", true, 0.5},
		{"inclusive span", "2025-03-10", "2025-03-14", false, 5},
		{"across month boundary", "2025-03-30", "2025-04-02", false, 4},
		{"half day flag on multi day span is ignored", "2025-03-10", "2025-03-12", true, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TotalDaysFor(day(tt.start), day(tt.end), tt.isHalfDay)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplicationOverlaps(t *testing.T) {
	app := Application{
		StartDate: day("2025-03-10"),
		EndDate:   day("2025-03-14"),
	}

	tests := []struct {
		name  string
		start string
		end   string
		want  bool
	}{
		{"identical range", "2025-03-10", "2025-03-14", true},
		{"contained range", "2025-03-11", "2025-03-12", true},
		{"containing range", "2025-03-01", "2025-03-31", true},
		{"shares start boundary day", "2025-03-05", "2025-03-10", true},
		{"shares end boundary day", "2025-03-14", "2025-03-20", true},
		{"ends the day before", "2025-03-05", "2025-03-09", false},
		{"starts the day after", "2025-03-15", "2025-03-20", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, app.Overlaps(day(tt.start), day(tt.end)))
		})
	}
}
