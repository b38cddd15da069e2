package docstore

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type doc struct {
	Name  string `json:"name"`
	Count int    `json:"count,omitempty"`
}

func newSQLiteStore(t *testing.T) Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	s, err := NewSQLStore(db)
	require.NoError(t, err)
	return s
}

func newRedisStore(t *testing.T) Store {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewRedisStore(rdb, "test:")
}

func backends(t *testing.T) map[string]func(t *testing.T) Store {
	return map[string]func(t *testing.T) Store{
		"memory":       func(t *testing.T) Store { return NewMemoryStore() },
		"sqlite":       newSQLiteStore,
		"redis":        newRedisStore,
		"instrumented": func(t *testing.T) Store { return Instrument(NewMemoryStore(), "memory", time.Second) },
	}
}

func TestKey(t *testing.T) {
	cases := map[string]string{
		"BCA/2025#A":    "BCA_2025_A",
		"  Python  ":    "Python",
		"a.b$c[d]":      "a_b_c_d_",
		"plain-name_01": "plain-name_01",
	}
	for in, want := range cases {
		assert.Equal(t, want, Key(in), in)
	}
}

func TestInvalidPath(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	for _, p := range []string{"", "a//b", "/a", "a/", "a.b", "x/y#z"} {
		err := s.Set(ctx, p, doc{Name: "x"})
		assert.ErrorIs(t, err, ErrInvalidPath, p)
	}
	_, err := s.Keys(ctx, "")
	assert.NoError(t, err)
}

func TestStoreContract(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			t.Run("get missing", func(t *testing.T) {
				s := open(t)
				var d doc
				found, err := s.Get(ctx, "nope/here", &d)
				require.NoError(t, err)
				assert.False(t, found)
			})

			t.Run("set get overwrite", func(t *testing.T) {
				s := open(t)
				require.NoError(t, s.Set(ctx, "teachers/ann", doc{Name: "ann"}))
				require.NoError(t, s.Set(ctx, "teachers/ann", doc{Name: "ann", Count: 2}))

				var d doc
				found, err := s.Get(ctx, "teachers/ann", &d)
				require.NoError(t, err)
				assert.True(t, found)
				assert.Equal(t, doc{Name: "ann", Count: 2}, d)
			})

			t.Run("update merges", func(t *testing.T) {
				s := open(t)
				require.NoError(t, s.Set(ctx, "teachers/bob", doc{Name: "bob", Count: 1}))
				require.NoError(t, s.Update(ctx, "teachers/bob", map[string]interface{}{"count": 5}))
				require.NoError(t, s.Update(ctx, "teachers/new", map[string]interface{}{"name": "new"}))

				var d doc
				_, err := s.Get(ctx, "teachers/bob", &d)
				require.NoError(t, err)
				assert.Equal(t, doc{Name: "bob", Count: 5}, d)

				found, err := s.Get(ctx, "teachers/new", &d)
				require.NoError(t, err)
				assert.True(t, found)
				assert.Equal(t, "new", d.Name)
			})

			t.Run("create if absent never overwrites", func(t *testing.T) {
				s := open(t)
				created, err := s.CreateIfAbsent(ctx, "results/b/s/ann", doc{Name: "first"})
				require.NoError(t, err)
				assert.True(t, created)

				created, err = s.CreateIfAbsent(ctx, "results/b/s/ann", doc{Name: "second"})
				require.NoError(t, err)
				assert.False(t, created)

				var d doc
				_, err = s.Get(ctx, "results/b/s/ann", &d)
				require.NoError(t, err)
				assert.Equal(t, "first", d.Name)
			})

			t.Run("keys list and delete subtree", func(t *testing.T) {
				s := open(t)
				require.NoError(t, s.Set(ctx, "batches/b1/math/questions/q1", doc{Name: "q1"}))
				require.NoError(t, s.Set(ctx, "batches/b1/math/questions/q2", doc{Name: "q2"}))
				require.NoError(t, s.Set(ctx, "batches/b1/physics/questions/q1", doc{Name: "p1"}))
				require.NoError(t, s.Set(ctx, "batches/b2/_placeholder", doc{Name: "ph"}))
				require.NoError(t, s.Set(ctx, "batches/b10/_placeholder", doc{Name: "ph"}))

				keys, err := s.Keys(ctx, "batches")
				require.NoError(t, err)
				assert.Equal(t, []string{"b1", "b10", "b2"}, keys)

				keys, err = s.Keys(ctx, "batches/b1")
				require.NoError(t, err)
				assert.Equal(t, []string{"math", "physics"}, keys)

				root, err := s.Keys(ctx, "")
				require.NoError(t, err)
				assert.Equal(t, []string{"batches"}, root)

				docs, err := s.List(ctx, "batches/b1/math/questions")
				require.NoError(t, err)
				assert.Len(t, docs, 2)
				assert.Contains(t, string(docs["q2"]), `"q2"`)

				require.NoError(t, s.Delete(ctx, "batches/b1"))
				keys, err = s.Keys(ctx, "batches")
				require.NoError(t, err)
				assert.Equal(t, []string{"b10", "b2"}, keys)

				var d doc
				found, err := s.Get(ctx, "batches/b1/math/questions/q1", &d)
				require.NoError(t, err)
				assert.False(t, found)

				found, err = s.Get(ctx, "batches/b10/_placeholder", &d)
				require.NoError(t, err)
				assert.True(t, found)
			})

			t.Run("siblings sharing a prefix stay apart", func(t *testing.T) {
				s := open(t)
				for _, p := range []string{"batches/BCA/_placeholder", "batches/BCA+1/_placeholder", "batches/BCA-2/_placeholder", "batches/BCA~3/_placeholder"} {
					require.NoError(t, s.Set(ctx, p, doc{Name: p}))
				}

				keys, err := s.Keys(ctx, "batches/BCA")
				require.NoError(t, err)
				assert.Equal(t, []string{"_placeholder"}, keys)

				require.NoError(t, s.Delete(ctx, "batches/BCA"))
				keys, err = s.Keys(ctx, "batches")
				require.NoError(t, err)
				assert.Equal(t, []string{"BCA+1", "BCA-2", "BCA~3"}, keys)
			})

			t.Run("keys are case sensitive", func(t *testing.T) {
				s := open(t)
				created, err := s.CreateIfAbsent(ctx, "results/b/s/Ann", doc{Name: "Ann"})
				require.NoError(t, err)
				assert.True(t, created)
				created, err = s.CreateIfAbsent(ctx, "results/b/s/ann", doc{Name: "ann"})
				require.NoError(t, err)
				assert.True(t, created)

				keys, err := s.Keys(ctx, "results/b/s")
				require.NoError(t, err)
				assert.Equal(t, []string{"Ann", "ann"}, keys)
			})

			t.Run("push", func(t *testing.T) {
				s := open(t)
				id1, err := s.Push(ctx, "batches/b/s/questions", doc{Name: "a"})
				require.NoError(t, err)
				id2, err := s.Push(ctx, "batches/b/s/questions", doc{Name: "b"})
				require.NoError(t, err)
				assert.NotEqual(t, id1, id2)

				docs, err := s.List(ctx, "batches/b/s/questions")
				require.NoError(t, err)
				assert.Len(t, docs, 2)
			})

			t.Run("ping", func(t *testing.T) {
				assert.NoError(t, open(t).Ping(ctx))
			})
		})
	}
}

func TestMemoryCreateIfAbsentRace(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	var wins int32
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ok, err := s.CreateIfAbsent(ctx, "results/b/s/ann", doc{Name: "w", Count: i})
			if err == nil && ok {
				atomic.AddInt32(&wins, 1)
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, int32(1), wins)
}

type stalledStore struct {
	*MemoryStore
}

func (stalledStore) Ping(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestInstrumentedTimeout(t *testing.T) {
	s := Instrument(stalledStore{NewMemoryStore()}, "memory", 10*time.Millisecond)
	err := s.Ping(context.Background())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestPathColumnIsBinaryCollated(t *testing.T) {
	tests := []struct {
		dialector gorm.Dialector
		want      string
	}{
		{mysql.New(mysql.Config{}), "varchar(512) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin"},
		{postgres.New(postgres.Config{}), `varchar(512) COLLATE "C"`},
		{sqlite.Open(":memory:"), "text"},
	}
	for _, tc := range tests {
		t.Run(tc.dialector.Name(), func(t *testing.T) {
			db := &gorm.DB{Config: &gorm.Config{Dialector: tc.dialector}}
			assert.Equal(t, tc.want, docPath("").GormDBDataType(db, nil))
		})
	}
}
