package service

import (
	"testing"
	"time"

	"school_exam_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultsWorkbook(t *testing.T) {
	competency := &model.Competency{Slug: "ujian-akhir", Title: "Ujian Akhir"}
	completed := time.Date(2025, 3, 14, 9, 30, 0, 0, time.Local)

	results := []model.Result{
		{
			AttemptNumber: 1,
			Score:         75,
			CompletedAt:   completed,
			Student:       &model.User{Name: "Budi", Username: "budi"},
		},
		{
			AttemptNumber: 2,
			Score:         100,
			CompletedAt:   completed.Add(time.Hour),
			Student:       &model.User{Name: "Siti", Username: "siti"},
		},
	}

	f, err := NewExportService().ResultsWorkbook(competency, results)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	require.Equal(t, []string{"Hasil Tes"}, sheets)

	header, err := f.GetCellValue("Hasil Tes", "B1")
	require.NoError(t, err)
	assert.Equal(t, "Nama", header)

	name, err := f.GetCellValue("Hasil Tes", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Budi", name)

	score, err := f.GetCellValue("Hasil Tes", "E3")
	require.NoError(t, err)
	assert.Equal(t, "100", score)

	when, err := f.GetCellValue("Hasil Tes", "F2")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-14 09:30:00", when)
}

func TestResultsWorkbookEmpty(t *testing.T) {
	f, err := NewExportService().ResultsWorkbook(&model.Competency{Slug: "kosong"}, nil)
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Hasil Tes", "A1")
	require.NoError(t, err)
	assert.Equal(t, "No", header)
}
