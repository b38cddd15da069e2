package repository

import (
	"context"
	"encoding/json"
	"sort"

	"smartexam_backend/internal/model"
	"smartexam_backend/internal/util"
	"smartexam_backend/pkg/docstore"
)

type TeacherRepository struct {
	Store docstore.Store
}

func NewTeacherRepository(store docstore.Store) *TeacherRepository {
	return &TeacherRepository{Store: store}
}

func (r *TeacherRepository) FindByName(ctx context.Context, name string) (*model.TeacherAccount, error) {
	var acc model.TeacherAccount
	ok, err := r.Store.Get(ctx, teacherPath(name), &acc)
	if err != nil {
		return nil, storeErr("get teacher", err)
	}
	if !ok {
		return nil, util.ErrNotFound
	}
	acc.Name = docstore.Key(name)
	return &acc, nil
}

// Create stores a new account and refuses to replace an existing one.
func (r *TeacherRepository) Create(ctx context.Context, acc *model.TeacherAccount) error {
	created, err := r.Store.CreateIfAbsent(ctx, teacherPath(acc.Name), acc)
	if err != nil {
		return storeErr("create teacher", err)
	}
	if !created {
		return util.ErrAlreadyExists
	}
	return nil
}

func (r *TeacherRepository) UpdatePassword(ctx context.Context, name, hash string) error {
	if _, err := r.FindByName(ctx, name); err != nil {
		return err
	}
	err := r.Store.Update(ctx, teacherPath(name), map[string]interface{}{"password": hash})
	return storeErr("update teacher", err)
}

func (r *TeacherRepository) Delete(ctx context.Context, name string) error {
	if _, err := r.FindByName(ctx, name); err != nil {
		return err
	}
	return storeErr("delete teacher", r.Store.Delete(ctx, teacherPath(name)))
}

// List returns every account sorted by name, without password hashes.
func (r *TeacherRepository) List(ctx context.Context) ([]model.TeacherInfo, error) {
	docs, err := r.Store.List(ctx, teachersRoot)
	if err != nil {
		return nil, storeErr("list teachers", err)
	}

	teachers := make([]model.TeacherInfo, 0, len(docs))
	for name, raw := range docs {
		var acc model.TeacherAccount
		if err := json.Unmarshal(raw, &acc); err != nil {
			continue
		}
		teachers = append(teachers, model.TeacherInfo{Name: name, CreatedAt: acc.CreatedAt})
	}
	sort.Slice(teachers, func(i, j int) bool { return teachers[i].Name < teachers[j].Name })
	return teachers, nil
}
