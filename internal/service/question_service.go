package service

import (
	"context"

	"smartexam_backend/internal/model"
	"smartexam_backend/internal/repository"
	"smartexam_backend/pkg/logger"

	"go.uber.org/zap"
)

// QuestionService is the teacher side of the question bank. Changes never
// reach attempts that already started.
type QuestionService struct {
	QuestionRepo *repository.QuestionRepository
	Catalog      *CatalogService
}

func NewQuestionService(questionRepo *repository.QuestionRepository, catalog *CatalogService) *QuestionService {
	return &QuestionService{QuestionRepo: questionRepo, Catalog: catalog}
}

func (s *QuestionService) List(ctx context.Context, batch, subject string) ([]model.Question, error) {
	batch, subject, err := s.Catalog.requireSubject(ctx, batch, subject)
	if err != nil {
		return nil, err
	}
	return s.QuestionRepo.List(ctx, batch, subject)
}

func (s *QuestionService) Add(ctx context.Context, batch, subject string, q model.Question) (*model.Question, error) {
	batch, subject, err := s.Catalog.requireSubject(ctx, batch, subject)
	if err != nil {
		return nil, err
	}
	added, err := s.QuestionRepo.Add(ctx, batch, subject, q)
	if err != nil {
		return nil, err
	}
	logger.Log.Info("Question added",
		zap.String("batch", batch),
		zap.String("subject", subject),
		zap.String("id", added.ID))
	return added, nil
}

func (s *QuestionService) Update(ctx context.Context, batch, subject, id string, q model.Question) (*model.Question, error) {
	batch, subject, err := s.Catalog.requireSubject(ctx, batch, subject)
	if err != nil {
		return nil, err
	}
	return s.QuestionRepo.Update(ctx, batch, subject, id, q)
}

func (s *QuestionService) Delete(ctx context.Context, batch, subject, id string) error {
	batch, subject, err := s.Catalog.requireSubject(ctx, batch, subject)
	if err != nil {
		return err
	}
	if err := s.QuestionRepo.Delete(ctx, batch, subject, id); err != nil {
		return err
	}
	logger.Log.Info("Question deleted",
		zap.String("batch", batch),
		zap.String("subject", subject),
		zap.String("id", id))
	return nil
}
