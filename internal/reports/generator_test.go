package reports

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fdg312/coach-hub/internal/progress"
	"github.com/fdg312/coach-hub/internal/storage"
)

func intPtr(v int) *int { return &v }

func testReportData() (*storage.UserProfile, []storage.ProgressEntry, *progress.Recent) {
	prof := &storage.UserProfile{
		OwnerUserID:   "u1",
		Goal:          "lose_weight",
		DailyCalories: 2263,
		ProteinGrams:  180,
	}
	entries := []storage.ProgressEntry{
		{Date: "2026-08-01", WeightLbs: 182, WorkoutsCompleted: 1, Calories: intPtr(2300)},
		{Date: "2026-08-02", WeightLbs: 181.5, WorkoutsCompleted: 0},
		{Date: "2026-08-03", WeightLbs: 181.2, WorkoutsCompleted: 1, Calories: intPtr(2100)},
	}
	summary := &progress.Recent{
		DaysTracked:             3,
		FirstWeightLbs:          182,
		LastWeightLbs:           181.2,
		AvgWeeklyWeightDeltaLbs: -0.8,
		WorkoutsCompleted:       2,
		WorkoutsPlanned:         2,
		AvgDailyCalories:        intPtr(2200),
	}
	return prof, entries, summary
}

func TestGeneratePDFProducesValidHeader(t *testing.T) {
	prof, entries, summary := testReportData()

	data, err := NewGenerator().Generate(FormatPDF, prof, entries, summary)
	if err != nil {
		t.Fatalf("generate pdf: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected non-empty PDF")
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("expected PDF magic bytes, got %q", data[:8])
	}
}

func TestGenerateCSV(t *testing.T) {
	prof, entries, summary := testReportData()

	data, err := NewGenerator().Generate(FormatCSV, prof, entries, summary)
	if err != nil {
		t.Fatalf("generate csv: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + 3 rows, got %d lines", len(lines))
	}
	if lines[0] != "date,weight_lbs,workouts_completed,calories" {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if lines[1] != "2026-08-01,182.0,1,2300" {
		t.Errorf("unexpected first row: %s", lines[1])
	}
	// День без калорий — пустая колонка
	if lines[2] != "2026-08-02,181.5,0," {
		t.Errorf("unexpected second row: %s", lines[2])
	}
}

func TestGenerateUnsupportedFormat(t *testing.T) {
	prof, entries, summary := testReportData()

	if _, err := NewGenerator().Generate("xlsx", prof, entries, summary); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}
