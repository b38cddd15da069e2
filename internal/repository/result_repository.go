package repository

import (
	"context"
	"encoding/json"
	"sort"

	"smartexam_backend/internal/model"
	"smartexam_backend/internal/util"
	"smartexam_backend/pkg/docstore"
)

// ResultRepository holds at most one result per (student, batch, subject).
// Records are written once and never modified.
type ResultRepository struct {
	Store docstore.Store
}

func NewResultRepository(store docstore.Store) *ResultRepository {
	return &ResultRepository{Store: store}
}

func (r *ResultRepository) Exists(ctx context.Context, batch, subject, student string) (bool, error) {
	var raw json.RawMessage
	ok, err := r.Store.Get(ctx, resultPath(batch, subject, student), &raw)
	if err != nil {
		return false, storeErr("check result", err)
	}
	return ok, nil
}

func (r *ResultRepository) Get(ctx context.Context, batch, subject, student string) (*model.ResultRecord, error) {
	var rec model.ResultRecord
	ok, err := r.Store.Get(ctx, resultPath(batch, subject, student), &rec)
	if err != nil {
		return nil, storeErr("get result", err)
	}
	if !ok {
		return nil, util.ErrNotFound
	}
	return &rec, nil
}

// CreateIfAbsent writes rec unless a result is already stored for its key,
// in which case it returns util.ErrAlreadyExists and leaves the stored one
// untouched.
func (r *ResultRepository) CreateIfAbsent(ctx context.Context, rec *model.ResultRecord) error {
	created, err := r.Store.CreateIfAbsent(ctx, resultPath(rec.BatchID, rec.SubjectID, rec.StudentID), rec)
	if err != nil {
		return storeErr("create result", err)
	}
	if !created {
		return util.ErrAlreadyExists
	}
	return nil
}

// DeleteAll removes every result of a subject and reports how many there
// were.
func (r *ResultRepository) DeleteAll(ctx context.Context, batch, subject string) (int, error) {
	path := resultsPath(batch, subject)
	keys, err := r.Store.Keys(ctx, path)
	if err != nil {
		return 0, storeErr("list results", err)
	}
	if len(keys) == 0 {
		return 0, nil
	}
	if err := r.Store.Delete(ctx, path); err != nil {
		return 0, storeErr("delete results", err)
	}
	return len(keys), nil
}

// DeleteBatch removes the results of every subject of a batch.
func (r *ResultRepository) DeleteBatch(ctx context.Context, batch string) error {
	return storeErr("delete batch results", r.Store.Delete(ctx, batchResultsPath(batch)))
}

// List returns the results of a subject sorted by student.
func (r *ResultRepository) List(ctx context.Context, batch, subject string) ([]model.ResultRecord, error) {
	docs, err := r.Store.List(ctx, resultsPath(batch, subject))
	if err != nil {
		return nil, storeErr("list results", err)
	}

	records := make([]model.ResultRecord, 0, len(docs))
	for student, raw := range docs {
		var rec model.ResultRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			continue
		}
		if rec.StudentID == "" {
			rec.StudentID = student
		}
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].StudentID < records[j].StudentID })
	return records, nil
}

func (r *ResultRepository) Count(ctx context.Context, batch, subject string) (int, error) {
	keys, err := r.Store.Keys(ctx, resultsPath(batch, subject))
	if err != nil {
		return 0, storeErr("count results", err)
	}
	return len(keys), nil
}
