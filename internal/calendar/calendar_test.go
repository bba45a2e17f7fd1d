package calendar

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNormalize(t *testing.T) {
	// June 2024: the 1st is a Saturday, the 3rd a Monday.
	cal := New([]time.Time{
		date(2024, time.June, 5),  // Wednesday
		date(2024, time.June, 6),  // Thursday
		date(2024, time.June, 7),  // Friday
		date(2024, time.June, 17), // Monday
	})

	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "weekday stays put",
			in:   date(2024, time.June, 4),
			want: date(2024, time.June, 4),
		},
		{
			name: "saturday advances to monday",
			in:   date(2024, time.June, 1),
			want: date(2024, time.June, 3),
		},
		{
			name: "sunday advances to monday",
			in:   date(2024, time.June, 2),
			want: date(2024, time.June, 3),
		},
		{
			name: "holiday advances past consecutive holidays",
			in:   date(2024, time.June, 5),
			want: date(2024, time.June, 8), // Wed..Fri are holidays, lands on Saturday
		},
		{
			name: "holiday advance landing on a weekend stays there",
			in:   date(2024, time.June, 7),
			want: date(2024, time.June, 8), // Saturday, weekend skip is not re-applied
		},
		{
			name: "weekend skip then holiday skip",
			in:   date(2024, time.June, 15), // Saturday before holiday Monday
			want: date(2024, time.June, 18),
		},
		{
			name: "time of day is dropped",
			in:   time.Date(2024, time.June, 4, 17, 30, 0, 0, time.UTC),
			want: date(2024, time.June, 4),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cal.Normalize(tt.in); !got.Equal(tt.want) {
				t.Errorf("Normalize(%s) = %s, want %s", tt.in.Format("2006-01-02"), got.Format("2006-01-02"), tt.want.Format("2006-01-02"))
			}
		})
	}
}

func TestNormalizeRangeClampsInvertedRange(t *testing.T) {
	cal := New(nil)
	// End on a Saturday normalizes forward to Monday, which still
	// precedes the Friday start; the range clamps to a single day.
	start, end := cal.NormalizeRange(date(2024, time.June, 7), date(2024, time.June, 1))
	if !start.Equal(date(2024, time.June, 7)) {
		t.Fatalf("start = %s, want 2024-06-07", start.Format("2006-01-02"))
	}
	if !end.Equal(start) {
		t.Errorf("end = %s, want clamped to start", end.Format("2006-01-02"))
	}
}

func TestIsWorkingDay(t *testing.T) {
	cal := New([]time.Time{date(2024, time.June, 5)})

	tests := []struct {
		in   time.Time
		want bool
	}{
		{date(2024, time.June, 4), true},   // Tuesday
		{date(2024, time.June, 5), false},  // holiday
		{date(2024, time.June, 8), false},  // Saturday
		{date(2024, time.June, 9), false},  // Sunday
		{date(2024, time.June, 10), true},  // Monday
	}
	for _, tt := range tests {
		if got := cal.IsWorkingDay(tt.in); got != tt.want {
			t.Errorf("IsWorkingDay(%s) = %v, want %v", tt.in.Format("2006-01-02"), got, tt.want)
		}
	}
}

func TestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "holidays.yaml")
	content := `2024:
  - 2024-01-01
  - 2024-12-31
2025:
  - 2025-01-01
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Run("all years", func(t *testing.T) {
		cal, err := FromFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if got := len(cal.Holidays()); got != 3 {
			t.Errorf("holiday count = %d, want 3", got)
		}
	})

	t.Run("filtered by year", func(t *testing.T) {
		cal, err := FromFile(path, 2025)
		if err != nil {
			t.Fatal(err)
		}
		if got := len(cal.Holidays()); got != 1 {
			t.Errorf("holiday count = %d, want 1", got)
		}
		if cal.IsHoliday(date(2024, time.January, 1)) {
			t.Error("2024 holiday loaded despite year filter")
		}
	})

	t.Run("date under wrong year", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(bad, []byte("2024:\n  - 2025-01-01\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := FromFile(bad); err == nil {
			t.Error("expected error for date listed under the wrong year")
		}
	})
}

func TestDefault(t *testing.T) {
	cal := Default()
	if !cal.IsHoliday(date(2024, time.January, 1)) {
		t.Error("2024-01-01 missing from built-in calendar")
	}
	if got := len(cal.Holidays()); got != 18 {
		t.Errorf("built-in holiday count = %d, want 18", got)
	}
}
