package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"smartexam_backend/internal/model"
	"smartexam_backend/internal/util"
	"smartexam_backend/pkg/docstore"
)

// QuestionRepository is the question bank of each (batch, subject).
type QuestionRepository struct {
	Store docstore.Store
}

func NewQuestionRepository(store docstore.Store) *QuestionRepository {
	return &QuestionRepository{Store: store}
}

// List returns the real questions of a subject ordered by id. Placeholder
// and undecodable entries are skipped.
func (r *QuestionRepository) List(ctx context.Context, batch, subject string) ([]model.Question, error) {
	docs, err := r.Store.List(ctx, questionsPath(batch, subject))
	if err != nil {
		return nil, storeErr("list questions", err)
	}

	questions := make([]model.Question, 0, len(docs))
	for id, raw := range docs {
		if isInternalKey(id) {
			continue
		}
		var q model.Question
		if err := json.Unmarshal(raw, &q); err != nil {
			continue
		}
		if q.IsPlaceholder() {
			continue
		}
		q.ID = id
		questions = append(questions, q)
	}
	sort.Slice(questions, func(i, j int) bool { return questions[i].ID < questions[j].ID })
	return questions, nil
}

func (r *QuestionRepository) Get(ctx context.Context, batch, subject, id string) (*model.Question, error) {
	var q model.Question
	ok, err := r.Store.Get(ctx, questionPath(batch, subject, id), &q)
	if err != nil {
		return nil, storeErr("get question", err)
	}
	if !ok || q.IsPlaceholder() {
		return nil, util.ErrNotFound
	}
	q.ID = docstore.Key(id)
	return &q, nil
}

// Add validates q and stores it under a new id.
func (r *QuestionRepository) Add(ctx context.Context, batch, subject string, q model.Question) (*model.Question, error) {
	if err := prepareQuestion(&q); err != nil {
		return nil, err
	}
	id, err := r.Store.Push(ctx, questionsPath(batch, subject), q)
	if err != nil {
		return nil, storeErr("add question", err)
	}
	q.ID = id
	return &q, nil
}

func (r *QuestionRepository) Update(ctx context.Context, batch, subject, id string, q model.Question) (*model.Question, error) {
	if err := prepareQuestion(&q); err != nil {
		return nil, err
	}
	if _, err := r.Get(ctx, batch, subject, id); err != nil {
		return nil, err
	}
	if err := r.Store.Set(ctx, questionPath(batch, subject, id), q); err != nil {
		return nil, storeErr("update question", err)
	}
	q.ID = docstore.Key(id)
	return &q, nil
}

func (r *QuestionRepository) Delete(ctx context.Context, batch, subject, id string) error {
	if _, err := r.Get(ctx, batch, subject, id); err != nil {
		return err
	}
	return storeErr("delete question", r.Store.Delete(ctx, questionPath(batch, subject, id)))
}

func (r *QuestionRepository) Count(ctx context.Context, batch, subject string) (int, error) {
	questions, err := r.List(ctx, batch, subject)
	if err != nil {
		return 0, err
	}
	return len(questions), nil
}

// AddPlaceholder keeps a subject's question collection present while it has
// no questions.
func (r *QuestionRepository) AddPlaceholder(ctx context.Context, batch, subject string) error {
	path := docstore.Join(questionsPath(batch, subject), placeholderKey)
	return storeErr("add placeholder", r.Store.Set(ctx, path, model.Question{}))
}

func prepareQuestion(q *model.Question) error {
	q.Options = append([]string(nil), q.Options...)
	q.Normalize()
	if err := q.Validate(); err != nil {
		return fmt.Errorf("%w: %v", util.ErrInvalidQuestion, err)
	}
	// the id is the store key, never part of the document
	q.ID = ""
	return nil
}
