package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const redisUpdateRetries = 5

// RedisStore keeps each document as a string key and, per node, a set with
// the names of its children so Keys does not need to scan.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisStore(rdb *redis.Client, prefix string) *RedisStore {
	return &RedisStore{rdb: rdb, prefix: prefix}
}

func (s *RedisStore) docKey(path string) string { return s.prefix + "doc:" + path }
func (s *RedisStore) idxKey(path string) string { return s.prefix + "idx:" + path }

// index registers path and all its ancestors in their parents' child sets.
func (s *RedisStore) index(ctx context.Context, pipe redis.Pipeliner, path string) {
	for p := path; p != ""; {
		dir, seg := parent(p)
		pipe.SAdd(ctx, s.idxKey(dir), seg)
		p = dir
	}
}

func (s *RedisStore) Get(ctx context.Context, path string, v interface{}) (bool, error) {
	if err := checkPath(path, false); err != nil {
		return false, err
	}
	b, err := s.rdb.Get(ctx, s.docKey(path)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(b, v)
}

func (s *RedisStore) Set(ctx context.Context, path string, v interface{}) error {
	if err := checkPath(path, false); err != nil {
		return err
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.docKey(path), b, 0)
		s.index(ctx, pipe, path)
		return nil
	})
	return err
}

func (s *RedisStore) Update(ctx context.Context, path string, fields map[string]interface{}) error {
	if err := checkPath(path, false); err != nil {
		return err
	}
	key := s.docKey(path)
	txf := func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, key).Bytes()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		b, err := mergeFields(cur, fields)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, b, 0)
			s.index(ctx, pipe, path)
			return nil
		})
		return err
	}

	var err error
	for i := 0; i < redisUpdateRetries; i++ {
		err = s.rdb.Watch(ctx, txf, key)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
	}
	return err
}

func (s *RedisStore) Delete(ctx context.Context, path string) error {
	if err := checkPath(path, false); err != nil {
		return err
	}
	keys := []string{s.docKey(path), s.idxKey(path)}
	for _, pattern := range []string{s.docKey(path) + "/*", s.idxKey(path) + "/*"} {
		iter := s.rdb.Scan(ctx, 0, globEscape(pattern[:len(pattern)-1])+"*", 200).Iterator()
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		if err := iter.Err(); err != nil {
			return err
		}
	}

	dir, seg := parent(path)
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for start := 0; start < len(keys); start += 500 {
			end := start + 500
			if end > len(keys) {
				end = len(keys)
			}
			pipe.Del(ctx, keys[start:end]...)
		}
		pipe.SRem(ctx, s.idxKey(dir), seg)
		return nil
	})
	return err
}

func (s *RedisStore) Push(ctx context.Context, path string, v interface{}) (string, error) {
	id := uuid.NewString()
	if err := s.Set(ctx, Join(path, id), v); err != nil {
		return "", err
	}
	return id, nil
}

func (s *RedisStore) CreateIfAbsent(ctx context.Context, path string, v interface{}) (bool, error) {
	if err := checkPath(path, false); err != nil {
		return false, err
	}
	b, err := json.Marshal(v)
	if err != nil {
		return false, err
	}
	ok, err := s.rdb.SetNX(ctx, s.docKey(path), b, 0).Result()
	if err != nil || !ok {
		return false, err
	}
	_, err = s.rdb.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		s.index(ctx, pipe, path)
		return nil
	})
	return true, err
}

func (s *RedisStore) Keys(ctx context.Context, path string) ([]string, error) {
	if err := checkPath(path, true); err != nil {
		return nil, err
	}
	keys, err := s.rdb.SMembers(ctx, s.idxKey(path)).Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *RedisStore) List(ctx context.Context, path string) (map[string]json.RawMessage, error) {
	keys, err := s.Keys(ctx, path)
	if err != nil {
		return nil, err
	}
	out := map[string]json.RawMessage{}
	if len(keys) == 0 {
		return out, nil
	}

	docKeys := make([]string, len(keys))
	for i, k := range keys {
		docKeys[i] = s.docKey(Join(path, k))
		if path == "" {
			docKeys[i] = s.docKey(k)
		}
	}
	vals, err := s.rdb.MGet(ctx, docKeys...).Result()
	if err != nil {
		return nil, err
	}
	for i, v := range vals {
		// interior nodes have no document of their own
		if str, ok := v.(string); ok {
			out[keys[i]] = json.RawMessage(str)
		}
	}
	return out, nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func globEscape(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
