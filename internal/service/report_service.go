package service

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

type ReportService interface {
	// ProgressReport renders the user's per-section progress for one test
	// type as a downloadable PDF.
	ProgressReport(userID uint, testType string) ([]byte, error)
}

type reportService struct {
	progressService ProgressService
	now             func() time.Time
}

func NewReportService(progressService ProgressService) ReportService {
	return &reportService{progressService: progressService, now: time.Now}
}

func (s *reportService) ProgressReport(userID uint, testType string) ([]byte, error) {
	overview, err := s.progressService.GetOverview(userID, testType)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 12, fmt.Sprintf("%s Progress Report", testType))
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, "Generated "+s.now().UTC().Format("2006-01-02 15:04 UTC"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Questions attempted: %d", overview.TotalAttempted))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Questions correct: %d", overview.TotalCorrect))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Overall accuracy: %.1f%%", overview.OverallAccuracy))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(60, 8, "Section", "1", 0, "L", false, 0, "")
	pdf.CellFormat(35, 8, "Attempted", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, "Correct", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, "Accuracy", "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	for _, section := range overview.Sections {
		pdf.CellFormat(60, 8, section.Section, "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 8, fmt.Sprintf("%d", section.QuestionsAttempted), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, fmt.Sprintf("%d", section.QuestionsCorrect), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, fmt.Sprintf("%.1f%%", section.AverageScore), "1", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
