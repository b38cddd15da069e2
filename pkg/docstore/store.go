// Package docstore is a hierarchical document store addressed by "/"-joined
// paths. Documents are JSON values stored at a path; a path may also have
// children. Backends: in-memory, Redis, SQL (gorm) and Firebase Realtime
// Database.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
)

var ErrInvalidPath = errors.New("docstore: invalid path")

type Store interface {
	// Get decodes the document at path into v. It reports false when nothing
	// is stored there.
	Get(ctx context.Context, path string, v interface{}) (bool, error)
	Set(ctx context.Context, path string, v interface{}) error
	// Update merges fields into the object stored at path, creating it when
	// absent.
	Update(ctx context.Context, path string, fields map[string]interface{}) error
	// Delete removes the document at path and every descendant.
	Delete(ctx context.Context, path string) error
	// Push stores v under a new server generated child id of path.
	Push(ctx context.Context, path string, v interface{}) (string, error)
	// CreateIfAbsent writes v only if nothing is stored at path. It never
	// overwrites and reports whether the write happened.
	CreateIfAbsent(ctx context.Context, path string, v interface{}) (bool, error)
	// Keys lists the immediate child segments of path, sorted. The empty path
	// is the root.
	Keys(ctx context.Context, path string) ([]string, error)
	// List returns the documents stored directly under path, keyed by child
	// segment.
	List(ctx context.Context, path string) (map[string]json.RawMessage, error)
	Ping(ctx context.Context) error
}

var reserved = strings.NewReplacer(".", "_", "#", "_", "$", "_", "[", "_", "]", "_", "/", "_")

// Key turns a user supplied identifier into a single path segment. The
// characters . # $ [ ] / are reserved by the hosted backend and become "_".
func Key(id string) string {
	return reserved.Replace(strings.TrimSpace(id))
}

func Join(segments ...string) string {
	return strings.Join(segments, "/")
}

func checkPath(path string, allowRoot bool) error {
	if path == "" {
		if allowRoot {
			return nil
		}
		return ErrInvalidPath
	}
	for _, seg := range strings.Split(path, "/") {
		if seg == "" || strings.ContainsAny(seg, ".#$[]") {
			return ErrInvalidPath
		}
	}
	return nil
}

// parent splits a path into its parent path and last segment.
func parent(path string) (string, string) {
	i := strings.LastIndexByte(path, '/')
	if i < 0 {
		return "", path
	}
	return path[:i], path[i+1:]
}

// childPrefix is the prefix every descendant path of path starts with.
func childPrefix(path string) string {
	if path == "" {
		return ""
	}
	return path + "/"
}

func mergeFields(current []byte, fields map[string]interface{}) ([]byte, error) {
	doc := map[string]interface{}{}
	if len(current) > 0 {
		// a scalar at path is replaced by the object
		_ = json.Unmarshal(current, &doc)
		if doc == nil {
			doc = map[string]interface{}{}
		}
	}
	for k, v := range fields {
		doc[k] = v
	}
	return json.Marshal(doc)
}
