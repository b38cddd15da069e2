package service

import (
	"context"
	"errors"
	"time"

	"smartexam_backend/internal/config"
	"smartexam_backend/internal/model"
	"smartexam_backend/internal/repository"
	"smartexam_backend/internal/util"
	"smartexam_backend/pkg/docstore"
	"smartexam_backend/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	TeacherRepo *repository.TeacherRepository
	Cfg         *config.Config

	adminHash []byte
}

func NewAuthService(teacherRepo *repository.TeacherRepository, cfg *config.Config) *AuthService {
	s := &AuthService{TeacherRepo: teacherRepo, Cfg: cfg}
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Admin.Password), bcrypt.DefaultCost)
	if err != nil {
		// admin login stays disabled
		logger.Log.Error("Failed to hash admin password", zap.Error(err))
	} else {
		s.adminHash = hash
	}
	return s
}

// StudentLogin identifies a student by name only.
func (s *AuthService) StudentLogin(name string) (*model.AuthToken, error) {
	name, err := validName(name)
	if err != nil {
		return nil, err
	}
	return s.issue(name, model.Student)
}

func (s *AuthService) TeacherLogin(ctx context.Context, name, password string) (*model.AuthToken, error) {
	name = docstore.Key(name)
	if name == "" || password == "" {
		return nil, util.ErrInvalidCredentials
	}
	acc, err := s.TeacherRepo.FindByName(ctx, name)
	if errors.Is(err, util.ErrNotFound) {
		return nil, util.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acc.Password), []byte(password)); err != nil {
		return nil, util.ErrInvalidCredentials
	}
	return s.issue(acc.Name, model.Teacher)
}

func (s *AuthService) AdminLogin(password string) (*model.AuthToken, error) {
	if s.adminHash == nil || password == "" {
		return nil, util.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(s.adminHash, []byte(password)); err != nil {
		return nil, util.ErrInvalidCredentials
	}
	return s.issue(string(model.Admin), model.Admin)
}

func (s *AuthService) issue(name string, role model.UserRole) (*model.AuthToken, error) {
	token, err := util.GenerateJWT(name, role, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}
	return &model.AuthToken{
		Token:     token,
		Name:      name,
		Role:      role,
		ExpiresAt: time.Now().Add(s.Cfg.JWT.ExpireTime),
	}, nil
}
