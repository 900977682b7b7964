package pkg_test

import (
	"testing"
	"time"

	"github.com/Fede-Barberis/Finance-Manager/internal/pkg"
)

func TestValidateDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		fecha   string
		wantErr bool
	}{
		{name: "valid date", fecha: "2026-06-15"},
		{name: "valid with slashes", fecha: "2026/06/15"},
		{name: "valid without padding", fecha: "2026-6-5"},
		{name: "leap year feb 29", fecha: "2024-02-29"},
		{name: "non leap feb 29", fecha: "2026-02-29", wantErr: true},
		{name: "feb 30", fecha: "2026-02-30", wantErr: true},
		{name: "month 13", fecha: "2026-13-01", wantErr: true},
		{name: "month 0", fecha: "2026-00-10", wantErr: true},
		{name: "day 0", fecha: "2026-03-00", wantErr: true},
		{name: "day 32", fecha: "2026-01-32", wantErr: true},
		{name: "april 31", fecha: "2026-04-31", wantErr: true},
		{name: "missing parts", fecha: "2026-06", wantErr: true},
		{name: "not numbers", fecha: "aaaa-bb-cc", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			err := pkg.ValidateDate(tt.fecha, false)
			if tt.wantErr && err == nil {
				t.Fatalf("expected error for %q", tt.fecha)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error for %q: %v", tt.fecha, err)
			}
		})
	}
}

func TestValidateDateCurrentYearLimit(t *testing.T) {
	t.Parallel()

	future := time.Now().AddDate(2, 0, 0).Format("2006-01-02")

	if err := pkg.ValidateDate(future, true); err == nil {
		t.Fatalf("expected error for future year %q", future)
	}
	if err := pkg.ValidateDate(future, false); err != nil {
		t.Fatalf("unexpected error without year limit: %v", err)
	}
}

func TestValidateDateRange(t *testing.T) {
	t.Parallel()

	currentYear := time.Now().Year()

	start := time.Date(currentYear, 3, 10, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
	end := time.Date(currentYear, 5, 1, 0, 0, 0, 0, time.UTC).Format("2006-01-02")

	if err := pkg.ValidateDateRange(start, end); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := pkg.ValidateDateRange(end, start); err == nil {
		t.Fatalf("expected error when start is after end")
	}
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	parsed, err := pkg.ParseDate("2026/7/4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC)
	if !parsed.Equal(want) {
		t.Fatalf("expected %v, got %v", want, parsed)
	}

	if _, err := pkg.ParseDate("15-06-2026"); err == nil {
		t.Fatalf("expected error for DD-MM-YYYY input")
	}
}
