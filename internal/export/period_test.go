package export

import (
	"reflect"
	"testing"
	"time"
)

func TestMonthName(t *testing.T) {
	tests := []struct {
		want  string
		month int
	}{
		{"Janvier", 1},
		{"Fevrier", 2},
		{"Aout", 8},
		{"Decembre", 12},
		{"", 0},
		{"", 13},
	}
	for _, tt := range tests {
		if got := MonthName(tt.month); got != tt.want {
			t.Errorf("MonthName(%d) = %q, want %q", tt.month, got, tt.want)
		}
	}
}

func TestSheetRangeLabel(t *testing.T) {
	if got := SheetRangeLabel(1, 2026); got != "Janvier 2026" {
		t.Errorf("SheetRangeLabel() = %q", got)
	}
}

func TestFilename(t *testing.T) {
	if got := Filename(3, 2026); got != "compta_Mars_2026" {
		t.Errorf("Filename() = %q", got)
	}
}

func TestAvailableMonths(t *testing.T) {
	now := time.Date(2026, time.April, 15, 0, 0, 0, 0, time.UTC)

	t.Run("current year clamps to the current month", func(t *testing.T) {
		want := []int{4, 3, 2, 1}
		if got := AvailableMonths(2026, now); !reflect.DeepEqual(got, want) {
			t.Errorf("AvailableMonths(2026) = %v, want %v", got, want)
		}
	})

	t.Run("past year offers all twelve, newest first", func(t *testing.T) {
		got := AvailableMonths(2025, now)
		if len(got) != 12 || got[0] != 12 || got[11] != 1 {
			t.Errorf("AvailableMonths(2025) = %v", got)
		}
	})
}

func TestCanExportFullYear(t *testing.T) {
	december := time.Date(2026, time.December, 3, 0, 0, 0, 0, time.UTC)
	april := time.Date(2026, time.April, 3, 0, 0, 0, 0, time.UTC)

	if !CanExportFullYear(2026, december) {
		t.Error("December of the current year should allow the full-year export")
	}
	if CanExportFullYear(2026, april) {
		t.Error("full-year export must wait for December")
	}
	if CanExportFullYear(2025, december) {
		t.Error("past years never offer the full-year export")
	}
}
