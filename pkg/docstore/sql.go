package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

// docPath is a path column compared byte by byte. Case- or accent-folding
// collations would merge "Ann" with "ann" and break the descendant range scan.
type docPath string

func (docPath) GormDataType() string {
	return "string"
}

func (docPath) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	switch db.Dialector.Name() {
	case "mysql":
		return "varchar(512) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin"
	case "postgres":
		return `varchar(512) COLLATE "C"`
	default:
		// sqlite compares TEXT with BINARY unless told otherwise
		return "text"
	}
}

// Document is one row of the documents table.
type Document struct {
	Path      docPath        `gorm:"primaryKey"`
	Parent    docPath        `gorm:"index"`
	Value     datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time
}

func (Document) TableName() string {
	return "documents"
}

// SQLStore keeps one row per document. Descendants of a path are found with a
// range scan on the primary key: under binary ordering every path below "a/b"
// sorts in ["a/b/", "a/b0") because '0' is the byte after '/'.
type SQLStore struct {
	DB *gorm.DB
}

func NewSQLStore(db *gorm.DB) (*SQLStore, error) {
	if err := db.AutoMigrate(&Document{}); err != nil {
		return nil, err
	}
	return &SQLStore{DB: db}, nil
}

func descendants(tx *gorm.DB, path string) *gorm.DB {
	if path == "" {
		return tx
	}
	return tx.Where("path >= ? AND path < ?", path+"/", path+"0")
}

func newDocument(path string, v interface{}) (*Document, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	dir, _ := parent(path)
	return &Document{Path: docPath(path), Parent: docPath(dir), Value: datatypes.JSON(b), UpdatedAt: time.Now()}, nil
}

func (s *SQLStore) Get(ctx context.Context, path string, v interface{}) (bool, error) {
	if err := checkPath(path, false); err != nil {
		return false, err
	}
	var doc Document
	err := s.DB.WithContext(ctx).First(&doc, "path = ?", path).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(doc.Value, v)
}

func (s *SQLStore) Set(ctx context.Context, path string, v interface{}) error {
	if err := checkPath(path, false); err != nil {
		return err
	}
	doc, err := newDocument(path, v)
	if err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "path"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(doc).Error
}

func (s *SQLStore) Update(ctx context.Context, path string, fields map[string]interface{}) error {
	if err := checkPath(path, false); err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var doc Document
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&doc, "path = ?", path).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		b, err := mergeFields(doc.Value, fields)
		if err != nil {
			return err
		}
		dir, _ := parent(path)
		doc.Path = docPath(path)
		doc.Parent = docPath(dir)
		doc.Value = datatypes.JSON(b)
		doc.UpdatedAt = time.Now()
		return tx.Save(&doc).Error
	})
}

func (s *SQLStore) Delete(ctx context.Context, path string) error {
	if err := checkPath(path, false); err != nil {
		return err
	}
	return s.DB.WithContext(ctx).
		Where("path = ? OR (path >= ? AND path < ?)", path, path+"/", path+"0").
		Delete(&Document{}).Error
}

func (s *SQLStore) Push(ctx context.Context, path string, v interface{}) (string, error) {
	id := uuid.NewString()
	if err := s.Set(ctx, Join(path, id), v); err != nil {
		return "", err
	}
	return id, nil
}

func (s *SQLStore) CreateIfAbsent(ctx context.Context, path string, v interface{}) (bool, error) {
	if err := checkPath(path, false); err != nil {
		return false, err
	}
	doc, err := newDocument(path, v)
	if err != nil {
		return false, err
	}
	res := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "path"}},
		DoNothing: true,
	}).Create(doc)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (s *SQLStore) Keys(ctx context.Context, path string) ([]string, error) {
	if err := checkPath(path, true); err != nil {
		return nil, err
	}
	var paths []string
	if err := descendants(s.DB.WithContext(ctx).Model(&Document{}), path).Pluck("path", &paths).Error; err != nil {
		return nil, err
	}

	prefix := childPrefix(path)
	seen := map[string]struct{}{}
	for _, p := range paths {
		rest := strings.TrimPrefix(p, prefix)
		if i := strings.IndexByte(rest, '/'); i >= 0 {
			rest = rest[:i]
		}
		seen[rest] = struct{}{}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *SQLStore) List(ctx context.Context, path string) (map[string]json.RawMessage, error) {
	if err := checkPath(path, true); err != nil {
		return nil, err
	}
	var docs []Document
	if err := s.DB.WithContext(ctx).Where("parent = ?", path).Find(&docs).Error; err != nil {
		return nil, err
	}
	out := make(map[string]json.RawMessage, len(docs))
	for _, d := range docs {
		_, seg := parent(string(d.Path))
		out[seg] = json.RawMessage(d.Value)
	}
	return out, nil
}

func (s *SQLStore) Ping(ctx context.Context) error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
