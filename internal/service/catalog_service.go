package service

import (
	"context"
	"strings"
	"time"

	"smartexam_backend/internal/model"
	"smartexam_backend/internal/repository"
	"smartexam_backend/internal/util"
	"smartexam_backend/pkg/docstore"
	"smartexam_backend/pkg/logger"

	"go.uber.org/zap"
)

// validName sanitizes a user supplied identifier. Names starting with "_"
// are reserved for bookkeeping entries.
func validName(name string) (string, error) {
	key := docstore.Key(name)
	if key == "" || strings.HasPrefix(key, "_") {
		return "", util.ErrInvalidName
	}
	return key, nil
}

type CatalogService struct {
	CatalogRepo  *repository.CatalogRepository
	QuestionRepo *repository.QuestionRepository
	ResultRepo   *repository.ResultRepository
}

func NewCatalogService(catalogRepo *repository.CatalogRepository, questionRepo *repository.QuestionRepository, resultRepo *repository.ResultRepository) *CatalogService {
	return &CatalogService{
		CatalogRepo:  catalogRepo,
		QuestionRepo: questionRepo,
		ResultRepo:   resultRepo,
	}
}

func (s *CatalogService) ListBatches(ctx context.Context) ([]string, error) {
	return s.CatalogRepo.ListBatches(ctx)
}

func (s *CatalogService) ListSubjects(ctx context.Context, batch string) ([]string, error) {
	batch, err := validName(batch)
	if err != nil {
		return nil, err
	}
	return s.CatalogRepo.ListSubjects(ctx, batch)
}

func (s *CatalogService) CreateBatch(ctx context.Context, batch string) (string, error) {
	batch, err := validName(batch)
	if err != nil {
		return "", err
	}
	if err := s.CatalogRepo.CreateBatch(ctx, batch); err != nil {
		return "", err
	}
	logger.Log.Info("Batch created", zap.String("batch", batch))
	return batch, nil
}

// CreateSubject adds an empty subject to an existing batch and records the
// creating teacher.
func (s *CatalogService) CreateSubject(ctx context.Context, batch, subject, teacher string) (string, error) {
	batch, err := validName(batch)
	if err != nil {
		return "", err
	}
	subject, err = validName(subject)
	if err != nil {
		return "", err
	}

	if err := s.requireBatch(ctx, batch); err != nil {
		return "", err
	}
	exists, err := s.CatalogRepo.SubjectExists(ctx, batch, subject)
	if err != nil {
		return "", err
	}
	if exists {
		return "", util.ErrAlreadyExists
	}

	meta := model.SubjectMeta{Teacher: teacher, CreatedAt: time.Now().UTC()}
	if err := s.CatalogRepo.CreateSubject(ctx, batch, subject, meta); err != nil {
		return "", err
	}
	if err := s.QuestionRepo.AddPlaceholder(ctx, batch, subject); err != nil {
		return "", err
	}
	logger.Log.Info("Subject created",
		zap.String("batch", batch),
		zap.String("subject", subject),
		zap.String("teacher", teacher))
	return subject, nil
}

// DeleteBatch removes a batch with all its subjects, questions and results.
func (s *CatalogService) DeleteBatch(ctx context.Context, batch string) error {
	batch, err := validName(batch)
	if err != nil {
		return err
	}
	if err := s.requireBatch(ctx, batch); err != nil {
		return err
	}
	if err := s.CatalogRepo.DeleteBatch(ctx, batch); err != nil {
		return err
	}
	if err := s.ResultRepo.DeleteBatch(ctx, batch); err != nil {
		return err
	}
	logger.Log.Info("Batch deleted", zap.String("batch", batch))
	return nil
}

// DeleteSubject removes a subject's questions and its results.
func (s *CatalogService) DeleteSubject(ctx context.Context, batch, subject string) error {
	batch, subject, err := s.requireSubject(ctx, batch, subject)
	if err != nil {
		return err
	}
	if err := s.CatalogRepo.DeleteSubject(ctx, batch, subject); err != nil {
		return err
	}
	n, err := s.ResultRepo.DeleteAll(ctx, batch, subject)
	if err != nil {
		return err
	}
	logger.Log.Info("Subject deleted",
		zap.String("batch", batch),
		zap.String("subject", subject),
		zap.Int("results", n))
	return nil
}

// Overview lists every batch with its subjects and their sizes.
func (s *CatalogService) Overview(ctx context.Context) ([]model.BatchOverview, error) {
	batches, err := s.CatalogRepo.ListBatches(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]model.BatchOverview, 0, len(batches))
	for _, batch := range batches {
		subjects, err := s.CatalogRepo.ListSubjects(ctx, batch)
		if err != nil {
			return nil, err
		}
		bo := model.BatchOverview{Name: batch, Subjects: make([]model.SubjectOverview, 0, len(subjects))}
		for _, subject := range subjects {
			so := model.SubjectOverview{Name: subject}
			meta, err := s.CatalogRepo.SubjectMeta(ctx, batch, subject)
			if err != nil {
				return nil, err
			}
			if meta != nil {
				so.Teacher = meta.Teacher
				so.CreatedAt = meta.CreatedAt
			}
			if so.QuestionCount, err = s.QuestionRepo.Count(ctx, batch, subject); err != nil {
				return nil, err
			}
			if so.ResultCount, err = s.ResultRepo.Count(ctx, batch, subject); err != nil {
				return nil, err
			}
			bo.Subjects = append(bo.Subjects, so)
		}
		out = append(out, bo)
	}
	return out, nil
}

func (s *CatalogService) requireBatch(ctx context.Context, batch string) error {
	exists, err := s.CatalogRepo.BatchExists(ctx, batch)
	if err != nil {
		return err
	}
	if !exists {
		return util.ErrNotFound
	}
	return nil
}

// requireSubject validates both names and checks that the subject exists.
func (s *CatalogService) requireSubject(ctx context.Context, batch, subject string) (string, string, error) {
	batch, err := validName(batch)
	if err != nil {
		return "", "", err
	}
	subject, err = validName(subject)
	if err != nil {
		return "", "", err
	}
	exists, err := s.CatalogRepo.SubjectExists(ctx, batch, subject)
	if err != nil {
		return "", "", err
	}
	if !exists {
		return "", "", util.ErrNotFound
	}
	return batch, subject, nil
}
