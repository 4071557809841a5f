package service

import (
	"school_exam_backend/internal/model"

	"github.com/xuri/excelize/v2"
)

// ExportService renders a competency's results as an XLSX workbook
// for offline grading review.
type ExportService struct{}

func NewExportService() *ExportService {
	return &ExportService{}
}

const resultsSheet = "Hasil Tes"

func (s *ExportService) ResultsWorkbook(competency *model.Competency, results []model.Result) (*excelize.File, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(resultsSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	headers := []string{"No", "Nama", "Username", "Percobaan", "Nilai", "Waktu Selesai"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(resultsSheet, cell, h); err != nil {
			return nil, err
		}
	}

	for row, result := range results {
		name, username := "", ""
		if result.Student != nil {
			name = result.Student.Name
			username = result.Student.Username
		}

		values := []interface{}{
			row + 1,
			name,
			username,
			result.AttemptNumber,
			result.Score,
			result.CompletedAt.Format("2006-01-02 15:04:05"),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(resultsSheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}
