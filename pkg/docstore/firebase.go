package docstore

import (
	"context"
	"encoding/json"
	"sort"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/db"
	"google.golang.org/api/option"
)

// FirebaseStore talks to a Firebase Realtime Database. Reads of a node return
// its whole subtree, so List also yields interior nodes.
type FirebaseStore struct {
	Client *db.Client
}

func NewFirebaseStore(ctx context.Context, databaseURL, credentialsFile string) (*FirebaseStore, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{DatabaseURL: databaseURL}, opts...)
	if err != nil {
		return nil, err
	}
	client, err := app.Database(ctx)
	if err != nil {
		return nil, err
	}
	return &FirebaseStore{Client: client}, nil
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

func (s *FirebaseStore) Get(ctx context.Context, path string, v interface{}) (bool, error) {
	if err := checkPath(path, false); err != nil {
		return false, err
	}
	var raw json.RawMessage
	if err := s.Client.NewRef(path).Get(ctx, &raw); err != nil {
		return false, err
	}
	if isNull(raw) {
		return false, nil
	}
	return true, json.Unmarshal(raw, v)
}

func (s *FirebaseStore) Set(ctx context.Context, path string, v interface{}) error {
	if err := checkPath(path, false); err != nil {
		return err
	}
	return s.Client.NewRef(path).Set(ctx, v)
}

func (s *FirebaseStore) Update(ctx context.Context, path string, fields map[string]interface{}) error {
	if err := checkPath(path, false); err != nil {
		return err
	}
	return s.Client.NewRef(path).Update(ctx, fields)
}

func (s *FirebaseStore) Delete(ctx context.Context, path string) error {
	if err := checkPath(path, false); err != nil {
		return err
	}
	return s.Client.NewRef(path).Delete(ctx)
}

func (s *FirebaseStore) Push(ctx context.Context, path string, v interface{}) (string, error) {
	if err := checkPath(path, false); err != nil {
		return "", err
	}
	ref, err := s.Client.NewRef(path).Push(ctx, v)
	if err != nil {
		return "", err
	}
	return ref.Key, nil
}

// CreateIfAbsent reads the node with its ETag and writes only if the node is
// still unchanged, so two racing writers cannot both succeed.
func (s *FirebaseStore) CreateIfAbsent(ctx context.Context, path string, v interface{}) (bool, error) {
	if err := checkPath(path, false); err != nil {
		return false, err
	}
	ref := s.Client.NewRef(path)
	var raw json.RawMessage
	etag, err := ref.GetWithETag(ctx, &raw)
	if err != nil {
		return false, err
	}
	if !isNull(raw) {
		return false, nil
	}
	return ref.SetIfUnchanged(ctx, etag, v)
}

func (s *FirebaseStore) children(ctx context.Context, path string) (map[string]json.RawMessage, error) {
	if err := checkPath(path, true); err != nil {
		return nil, err
	}
	ref := s.Client.NewRef("/")
	if path != "" {
		ref = s.Client.NewRef(path)
	}
	out := map[string]json.RawMessage{}
	var raw json.RawMessage
	if err := ref.Get(ctx, &raw); err != nil {
		return nil, err
	}
	if isNull(raw) {
		return out, nil
	}
	// a scalar node has no children
	if err := json.Unmarshal(raw, &out); err != nil {
		return map[string]json.RawMessage{}, nil
	}
	return out, nil
}

func (s *FirebaseStore) Keys(ctx context.Context, path string) ([]string, error) {
	children, err := s.children(ctx, path)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(children))
	for k := range children {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *FirebaseStore) List(ctx context.Context, path string) (map[string]json.RawMessage, error) {
	return s.children(ctx, path)
}

func (s *FirebaseStore) Ping(ctx context.Context) error {
	var raw json.RawMessage
	return s.Client.NewRef("_health").Get(ctx, &raw)
}
