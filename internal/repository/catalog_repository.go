package repository

import (
	"context"

	"smartexam_backend/internal/model"
	"smartexam_backend/internal/util"
	"smartexam_backend/pkg/docstore"
)

// CatalogRepository manages the batch and subject nodes under /batches.
type CatalogRepository struct {
	Store docstore.Store
}

func NewCatalogRepository(store docstore.Store) *CatalogRepository {
	return &CatalogRepository{Store: store}
}

func (r *CatalogRepository) ListBatches(ctx context.Context) ([]string, error) {
	keys, err := r.Store.Keys(ctx, batchesRoot)
	if err != nil {
		return nil, storeErr("list batches", err)
	}
	return keys, nil
}

func (r *CatalogRepository) BatchExists(ctx context.Context, batch string) (bool, error) {
	batches, err := r.ListBatches(ctx)
	if err != nil {
		return false, err
	}
	return contains(batches, docstore.Key(batch)), nil
}

// CreateBatch adds an empty batch. A placeholder entry keeps it listed until
// it has subjects.
func (r *CatalogRepository) CreateBatch(ctx context.Context, batch string) error {
	exists, err := r.BatchExists(ctx, batch)
	if err != nil {
		return err
	}
	if exists {
		return util.ErrAlreadyExists
	}
	created, err := r.Store.CreateIfAbsent(ctx, docstore.Join(batchPath(batch), placeholderKey), true)
	if err != nil {
		return storeErr("create batch", err)
	}
	if !created {
		return util.ErrAlreadyExists
	}
	return nil
}

func (r *CatalogRepository) ListSubjects(ctx context.Context, batch string) ([]string, error) {
	keys, err := r.Store.Keys(ctx, batchPath(batch))
	if err != nil {
		return nil, storeErr("list subjects", err)
	}
	subjects := make([]string, 0, len(keys))
	for _, k := range keys {
		if !isInternalKey(k) {
			subjects = append(subjects, k)
		}
	}
	return subjects, nil
}

func (r *CatalogRepository) SubjectExists(ctx context.Context, batch, subject string) (bool, error) {
	subjects, err := r.ListSubjects(ctx, batch)
	if err != nil {
		return false, err
	}
	return contains(subjects, docstore.Key(subject)), nil
}

// CreateSubject records who created the subject. The caller adds the
// question placeholder.
func (r *CatalogRepository) CreateSubject(ctx context.Context, batch, subject string, meta model.SubjectMeta) error {
	created, err := r.Store.CreateIfAbsent(ctx, docstore.Join(subjectPath(batch, subject), metaNode), meta)
	if err != nil {
		return storeErr("create subject", err)
	}
	if !created {
		return util.ErrAlreadyExists
	}
	return nil
}

// SubjectMeta returns nil without error for subjects created before meta
// documents existed.
func (r *CatalogRepository) SubjectMeta(ctx context.Context, batch, subject string) (*model.SubjectMeta, error) {
	var meta model.SubjectMeta
	ok, err := r.Store.Get(ctx, docstore.Join(subjectPath(batch, subject), metaNode), &meta)
	if err != nil {
		return nil, storeErr("get subject meta", err)
	}
	if !ok {
		return nil, nil
	}
	return &meta, nil
}

func (r *CatalogRepository) DeleteBatch(ctx context.Context, batch string) error {
	return storeErr("delete batch", r.Store.Delete(ctx, batchPath(batch)))
}

func (r *CatalogRepository) DeleteSubject(ctx context.Context, batch, subject string) error {
	return storeErr("delete subject", r.Store.Delete(ctx, subjectPath(batch, subject)))
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
