package service

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"smartexam_backend/internal/model"
	"smartexam_backend/internal/repository"
	"smartexam_backend/internal/util"
	"smartexam_backend/pkg/docstore"
	"smartexam_backend/pkg/keylock"
	"smartexam_backend/pkg/logger"
	"smartexam_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// AttemptService drives a student through one exam:
// NotStarted -> InProgress -> Submitted, or Blocked when a result exists.
// Operations on the same (student, batch, subject) are serialized.
type AttemptService struct {
	QuestionRepo *repository.QuestionRepository
	ResultRepo   *repository.ResultRepository
	Sessions     repository.AttemptSessionRepository
	Locks        *keylock.Locker

	rngMu sync.Mutex
	rng   *rand.Rand
	now   func() time.Time
}

func NewAttemptService(questionRepo *repository.QuestionRepository, resultRepo *repository.ResultRepository, sessions repository.AttemptSessionRepository) *AttemptService {
	return &AttemptService{
		QuestionRepo: questionRepo,
		ResultRepo:   resultRepo,
		Sessions:     sessions,
		Locks:        keylock.New(),
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
		now:          time.Now,
	}
}

// WithRand replaces the shuffle source, for deterministic orders in tests.
func (s *AttemptService) WithRand(rng *rand.Rand) *AttemptService {
	s.rngMu.Lock()
	s.rng = rng
	s.rngMu.Unlock()
	return s
}

// normalizeKey applies the store's identifier sanitization so every
// spelling of the same identifiers shares one lock and one session.
func normalizeKey(key model.AttemptKey) (model.AttemptKey, error) {
	key = model.AttemptKey{
		StudentID: docstore.Key(key.StudentID),
		BatchID:   docstore.Key(key.BatchID),
		SubjectID: docstore.Key(key.SubjectID),
	}
	if key.StudentID == "" || key.BatchID == "" || key.SubjectID == "" {
		return key, util.ErrInvalidName
	}
	return key, nil
}

func (s *AttemptService) lock(ctx context.Context, key model.AttemptKey) (func(), error) {
	return s.Locks.Lock(ctx, key.String())
}

// Enter reports the attempt's current state without changing it.
func (s *AttemptService) Enter(ctx context.Context, key model.AttemptKey) (*model.AttemptView, error) {
	key, err := normalizeKey(key)
	if err != nil {
		return nil, err
	}
	unlock, err := s.lock(ctx, key)
	if err != nil {
		return nil, err
	}
	defer unlock()

	rec, err := s.ResultRepo.Get(ctx, key.BatchID, key.SubjectID, key.StudentID)
	switch {
	case err == nil:
		return &model.AttemptView{State: model.AttemptBlocked, BatchID: key.BatchID, SubjectID: key.SubjectID, Result: rec}, nil
	case !errors.Is(err, util.ErrNotFound):
		return nil, err
	}

	attempt, err := s.Sessions.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if attempt == nil {
		return &model.AttemptView{State: model.AttemptNotStarted, BatchID: key.BatchID, SubjectID: key.SubjectID}, nil
	}
	return attempt.View(), nil
}

// Start freezes a shuffled snapshot of the question bank. Starting an attempt
// that is already in progress returns it unchanged.
func (s *AttemptService) Start(ctx context.Context, key model.AttemptKey) (*model.AttemptView, error) {
	key, err := normalizeKey(key)
	if err != nil {
		return nil, err
	}
	unlock, err := s.lock(ctx, key)
	if err != nil {
		return nil, err
	}
	defer unlock()

	exists, err := s.ResultRepo.Exists(ctx, key.BatchID, key.SubjectID, key.StudentID)
	if err != nil {
		return nil, err
	}
	if exists {
		monitoring.AttemptEvents.WithLabelValues("blocked").Inc()
		return nil, util.ErrBlocked
	}

	current, err := s.Sessions.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if current != nil {
		return current.View(), nil
	}

	questions, err := s.QuestionRepo.List(ctx, key.BatchID, key.SubjectID)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, util.ErrEmptyQuestionSet
	}

	attempt := &model.Attempt{
		AttemptKey: key,
		State:      model.AttemptInProgress,
		Order:      make([]string, len(questions)),
		Questions:  make(map[string]model.Question, len(questions)),
		Answers:    map[string]string{},
		StartedAt:  s.now().UTC(),
	}
	for i, q := range questions {
		attempt.Order[i] = q.ID
		attempt.Questions[q.ID] = q
	}
	s.shuffle(attempt.Order)

	if err := s.Sessions.Save(ctx, attempt); err != nil {
		return nil, err
	}

	monitoring.AttemptEvents.WithLabelValues("started").Inc()
	logger.Log.Info("Exam attempt started",
		zap.String("student", key.StudentID),
		zap.String("batch", key.BatchID),
		zap.String("subject", key.SubjectID),
		zap.Int("questions", len(attempt.Order)))
	return attempt.View(), nil
}

func (s *AttemptService) shuffle(order []string) {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	s.rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
}

// Answer records the chosen option for one question of the snapshot. Once a
// result exists the answers are frozen, even if a session was left behind.
func (s *AttemptService) Answer(ctx context.Context, key model.AttemptKey, questionID, option string) (*model.AttemptView, error) {
	key, err := normalizeKey(key)
	if err != nil {
		return nil, err
	}
	unlock, err := s.lock(ctx, key)
	if err != nil {
		return nil, err
	}
	defer unlock()

	exists, err := s.ResultRepo.Exists(ctx, key.BatchID, key.SubjectID, key.StudentID)
	if err != nil {
		return nil, err
	}
	if exists {
		monitoring.AttemptEvents.WithLabelValues("blocked").Inc()
		return nil, util.ErrAlreadySubmitted
	}

	attempt, err := s.Sessions.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if attempt == nil {
		return nil, util.ErrAttemptNotStarted
	}
	if err := checkAnswer(attempt, questionID, option); err != nil {
		return nil, err
	}

	attempt.Answers[questionID] = option
	if err := s.Sessions.Save(ctx, attempt); err != nil {
		return nil, err
	}
	monitoring.AttemptEvents.WithLabelValues("answered").Inc()
	return attempt.View(), nil
}

func checkAnswer(attempt *model.Attempt, questionID, option string) error {
	q, ok := attempt.Questions[questionID]
	if !ok {
		return util.ErrQuestionNotInAttempt
	}
	if !q.HasOption(option) {
		return util.ErrInvalidAnswerOption
	}
	return nil
}

// Submit grades the frozen snapshot and stores the result exactly once.
// finalAnswers, when given, are merged over the answers recorded so far.
func (s *AttemptService) Submit(ctx context.Context, key model.AttemptKey, finalAnswers map[string]string) (*model.ResultRecord, error) {
	key, err := normalizeKey(key)
	if err != nil {
		return nil, err
	}
	unlock, err := s.lock(ctx, key)
	if err != nil {
		return nil, err
	}
	defer unlock()

	exists, err := s.ResultRepo.Exists(ctx, key.BatchID, key.SubjectID, key.StudentID)
	if err != nil {
		return nil, err
	}
	if exists {
		monitoring.AttemptEvents.WithLabelValues("duplicate").Inc()
		return nil, util.ErrAlreadySubmitted
	}

	attempt, err := s.Sessions.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if attempt == nil {
		return nil, util.ErrAttemptNotStarted
	}
	for id, option := range finalAnswers {
		if err := checkAnswer(attempt, id, option); err != nil {
			return nil, err
		}
	}
	for id, option := range finalAnswers {
		attempt.Answers[id] = option
	}

	rec := attempt.Grade(s.now().UTC())
	if err := s.ResultRepo.CreateIfAbsent(ctx, &rec); err != nil {
		if errors.Is(err, util.ErrAlreadyExists) {
			// another process stored a result between the check and the write
			monitoring.AttemptEvents.WithLabelValues("duplicate").Inc()
			logger.Log.Warn("Duplicate exam submission rejected",
				zap.String("student", key.StudentID),
				zap.String("batch", key.BatchID),
				zap.String("subject", key.SubjectID))
			return nil, util.ErrAlreadySubmitted
		}
		return nil, err
	}

	if err := s.Sessions.Delete(ctx, key); err != nil {
		// the result is stored; a stale session is blocked by it on next entry
		logger.Log.Warn("Failed to drop submitted attempt session", zap.Error(err))
	}

	monitoring.AttemptEvents.WithLabelValues("submitted").Inc()
	if rec.Total > 0 {
		monitoring.ScoreRatio.Observe(float64(rec.Score) / float64(rec.Total))
	}
	logger.Log.Info("Exam submitted",
		zap.String("student", key.StudentID),
		zap.String("batch", key.BatchID),
		zap.String("subject", key.SubjectID),
		zap.Int("score", rec.Score),
		zap.Int("total", rec.Total))
	return &rec, nil
}

// Result returns the stored result of a submitted attempt.
func (s *AttemptService) Result(ctx context.Context, key model.AttemptKey) (*model.ResultRecord, error) {
	key, err := normalizeKey(key)
	if err != nil {
		return nil, err
	}
	return s.ResultRepo.Get(ctx, key.BatchID, key.SubjectID, key.StudentID)
}
