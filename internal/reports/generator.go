package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"github.com/fdg312/coach-hub/internal/progress"
	"github.com/fdg312/coach-hub/internal/storage"
)

const (
	FormatPDF = "pdf"
	FormatCSV = "csv"
)

// Generator собирает отчёт о прогрессе из профиля и записей дневника
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate возвращает байты отчёта в запрошенном формате
func (g *Generator) Generate(format string, prof *storage.UserProfile, entries []storage.ProgressEntry, summary *progress.Recent) ([]byte, error) {
	switch format {
	case FormatPDF:
		return g.generatePDF(prof, entries, summary)
	case FormatCSV:
		return g.generateCSV(entries)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

func (g *Generator) generateCSV(entries []storage.ProgressEntry) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"date", "weight_lbs", "workouts_completed", "calories"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, e := range entries {
		row := []string{
			e.Date,
			fmt.Sprintf("%.1f", e.WeightLbs),
			strconv.Itoa(e.WorkoutsCompleted),
			"",
		}
		if e.Calories != nil {
			row[3] = strconv.Itoa(*e.Calories)
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) generatePDF(prof *storage.UserProfile, entries []storage.ProgressEntry, summary *progress.Recent) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 16)
	pdf.AddPage()

	pdf.Cell(0, 10, "Progress Report")
	pdf.Ln(12)

	// Targets section
	pdf.SetFont("Arial", "", 14)
	pdf.Cell(0, 8, "Daily targets")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Goal: %s", prof.Goal))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Daily calories: %d kcal", prof.DailyCalories))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Protein: %d g", prof.ProteinGrams))
	pdf.Ln(10)

	// Summary section
	pdf.SetFont("Arial", "", 14)
	pdf.Cell(0, 8, "Summary")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Days tracked: %d", summary.DaysTracked))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Weight: %.1f lbs -> %.1f lbs (%.2f lbs/week)",
		summary.FirstWeightLbs, summary.LastWeightLbs, summary.AvgWeeklyWeightDeltaLbs))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Workouts: %d completed of %d planned",
		summary.WorkoutsCompleted, summary.WorkoutsPlanned))
	pdf.Ln(5)
	if summary.AvgDailyCalories != nil {
		pdf.Cell(0, 6, fmt.Sprintf("Average intake: %d kcal/day", *summary.AvgDailyCalories))
		pdf.Ln(5)
	}
	pdf.Ln(7)

	// Entries table
	pdf.SetFont("Arial", "", 14)
	pdf.Cell(0, 8, "Entries")
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(30, 7, "Date", "1", 0, "", false, 0, "")
	pdf.CellFormat(30, 7, "Weight, lbs", "1", 0, "", false, 0, "")
	pdf.CellFormat(30, 7, "Workouts", "1", 0, "", false, 0, "")
	pdf.CellFormat(30, 7, "Calories", "1", 0, "", false, 0, "")
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, e := range entries {
		calories := "-"
		if e.Calories != nil {
			calories = strconv.Itoa(*e.Calories)
		}
		pdf.CellFormat(30, 6, e.Date, "1", 0, "", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.1f", e.WeightLbs), "1", 0, "", false, 0, "")
		pdf.CellFormat(30, 6, strconv.Itoa(e.WorkoutsCompleted), "1", 0, "", false, 0, "")
		pdf.CellFormat(30, 6, calories, "1", 0, "", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}
