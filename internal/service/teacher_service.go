package service

import (
	"context"
	"errors"
	"time"

	"smartexam_backend/internal/model"
	"smartexam_backend/internal/repository"
	"smartexam_backend/internal/util"
	"smartexam_backend/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// TeacherService manages teacher accounts on behalf of the admin.
type TeacherService struct {
	TeacherRepo *repository.TeacherRepository
}

func NewTeacherService(teacherRepo *repository.TeacherRepository) *TeacherService {
	return &TeacherService{TeacherRepo: teacherRepo}
}

func (s *TeacherService) List(ctx context.Context) ([]model.TeacherInfo, error) {
	return s.TeacherRepo.List(ctx)
}

func (s *TeacherService) Create(ctx context.Context, name, password string) (*model.TeacherInfo, error) {
	name, err := validName(name)
	if err != nil {
		return nil, err
	}
	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	acc := &model.TeacherAccount{Name: name, Password: hash, CreatedAt: time.Now().UTC()}
	if err := s.TeacherRepo.Create(ctx, acc); err != nil {
		return nil, err
	}
	logger.Log.Info("Teacher account created", zap.String("teacher", name))
	return &model.TeacherInfo{Name: acc.Name, CreatedAt: acc.CreatedAt}, nil
}

func (s *TeacherService) ResetPassword(ctx context.Context, name, password string) error {
	name, err := validName(name)
	if err != nil {
		return err
	}
	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	if err := s.TeacherRepo.UpdatePassword(ctx, name, hash); err != nil {
		return err
	}
	logger.Log.Info("Teacher password reset", zap.String("teacher", name))
	return nil
}

func (s *TeacherService) Delete(ctx context.Context, name string) error {
	name, err := validName(name)
	if err != nil {
		return err
	}
	if err := s.TeacherRepo.Delete(ctx, name); err != nil {
		return err
	}
	logger.Log.Info("Teacher account removed", zap.String("teacher", name))
	return nil
}

func hashPassword(password string) (string, error) {
	if password == "" {
		return "", util.ErrInvalidPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", util.ErrInvalidPassword
	}
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
