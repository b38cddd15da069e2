package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"smartexam_backend/internal/model"
	"smartexam_backend/internal/repository"
	"smartexam_backend/internal/util"
	"smartexam_backend/pkg/logger"

	"go.uber.org/zap"
)

// ResultService is the teacher side of the result store.
type ResultService struct {
	ResultRepo *repository.ResultRepository
	Catalog    *CatalogService
	Exports    *ExportStorage
}

func NewResultService(resultRepo *repository.ResultRepository, catalog *CatalogService, exports *ExportStorage) *ResultService {
	return &ResultService{ResultRepo: resultRepo, Catalog: catalog, Exports: exports}
}

// List returns a subject's results sorted by student.
func (s *ResultService) List(ctx context.Context, batch, subject string) ([]model.ResultSummary, error) {
	batch, subject, err := s.Catalog.requireSubject(ctx, batch, subject)
	if err != nil {
		return nil, err
	}
	records, err := s.ResultRepo.List(ctx, batch, subject)
	if err != nil {
		return nil, err
	}
	out := make([]model.ResultSummary, len(records))
	for i, r := range records {
		out[i] = r.Summary()
	}
	return out, nil
}

// Reset deletes every result of a subject so its students can retake it.
func (s *ResultService) Reset(ctx context.Context, batch, subject string) (int, error) {
	batch, subject, err := s.Catalog.requireSubject(ctx, batch, subject)
	if err != nil {
		return 0, err
	}
	n, err := s.ResultRepo.DeleteAll(ctx, batch, subject)
	if err != nil {
		return 0, err
	}
	logger.Log.Info("Results reset",
		zap.String("batch", batch),
		zap.String("subject", subject),
		zap.Int("count", n))
	return n, nil
}

// Export writes a subject's results as CSV to the export storage and returns
// its URL.
func (s *ResultService) Export(ctx context.Context, batch, subject string) (string, error) {
	batch, subject, err := s.Catalog.requireSubject(ctx, batch, subject)
	if err != nil {
		return "", err
	}
	records, err := s.ResultRepo.List(ctx, batch, subject)
	if err != nil {
		return "", err
	}
	data, err := ResultsCSV(records)
	if err != nil {
		return "", err
	}

	filename := fmt.Sprintf("results/%s_%s_%s.csv", batch, subject, time.Now().UTC().Format("20060102150405"))
	url, err := s.Exports.Upload(ctx, filename, bytes.NewReader(data), int64(len(data)), util.MimeCSV)
	if err != nil {
		return "", err
	}
	logger.Log.Info("Results exported", zap.String("file", filename), zap.Int("rows", len(records)))
	return url, nil
}

// ResultsCSV renders one row per student: student, score, total, percent,
// submitted at.
func ResultsCSV(records []model.ResultRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"student", "score", "total", "percent", "submitted_at"}); err != nil {
		return nil, err
	}
	for _, r := range records {
		percent := 0.0
		if r.Total > 0 {
			percent = float64(r.Score) * 100 / float64(r.Total)
		}
		row := []string{
			r.StudentID,
			strconv.Itoa(r.Score),
			strconv.Itoa(r.Total),
			strconv.FormatFloat(percent, 'f', 1, 64),
			r.SubmittedAt.Format(util.TimeFormat),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
