package flash

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/goliatone/go-adminpage/pkg/options"
)

// BucketPrefix namespaces flash buckets inside the shared options store.
const BucketPrefix = "adminpage:messages:"

// Store persists flash messages per user on top of an options.Store.
type Store struct {
	backend options.Store
	now     func() time.Time
}

// StoreOption configures a Store before construction.
type StoreOption func(*Store)

// WithClock injects the time source used to stamp added messages.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		if now == nil {
			return
		}
		s.now = now
	}
}

// NewStore creates a flash store backed by the supplied options store.
func NewStore(backend options.Store, opts ...StoreOption) (*Store, error) {
	if backend == nil {
		return nil, fmt.Errorf("flash: options store is required")
	}
	s := &Store{backend: backend, now: time.Now}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s, nil
}

// Add appends a message to the user's bucket. Empty text is dropped and
// identical text+category pairs collapse into one stored message.
func (s *Store) Add(ctx context.Context, userID string, message Message) error {
	if s == nil || s.backend == nil {
		return fmt.Errorf("flash: store is not configured")
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return fmt.Errorf("flash: user id is required")
	}
	normalized, ok := message.normalize()
	if !ok {
		return nil
	}
	if normalized.Timestamp.IsZero() {
		normalized.Timestamp = s.now()
	}

	bucket, err := s.loadBucket(ctx, userID)
	if err != nil {
		return err
	}
	bucket[normalized.Key()] = normalized

	payload, err := json.Marshal(bucket)
	if err != nil {
		return fmt.Errorf("flash: encode bucket: %w", err)
	}
	if err := s.backend.Set(ctx, bucketKey(userID), payload); err != nil {
		return fmt.Errorf("flash: persist bucket: %w", err)
	}
	return nil
}

// Drain returns the user's messages ordered by timestamp and deletes the
// bucket in the same call. A second Drain returns an empty slice.
func (s *Store) Drain(ctx context.Context, userID string) ([]Message, error) {
	if s == nil || s.backend == nil {
		return nil, fmt.Errorf("flash: store is not configured")
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("flash: user id is required")
	}

	bucket, err := s.loadBucket(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(bucket) == 0 {
		return []Message{}, nil
	}
	if err := s.backend.Delete(ctx, bucketKey(userID)); err != nil {
		return nil, fmt.Errorf("flash: clear bucket: %w", err)
	}

	messages := make([]Message, 0, len(bucket))
	for _, message := range bucket {
		messages = append(messages, message)
	}
	sort.SliceStable(messages, func(i, j int) bool {
		if messages[i].Timestamp.Equal(messages[j].Timestamp) {
			return messages[i].Text < messages[j].Text
		}
		return messages[i].Timestamp.Before(messages[j].Timestamp)
	})
	return messages, nil
}

func (s *Store) loadBucket(ctx context.Context, userID string) (map[string]Message, error) {
	raw, found, err := s.backend.Get(ctx, bucketKey(userID))
	if err != nil {
		return nil, fmt.Errorf("flash: load bucket: %w", err)
	}
	if !found || len(raw) == 0 {
		return map[string]Message{}, nil
	}
	bucket := map[string]Message{}
	if err := json.Unmarshal(raw, &bucket); err != nil {
		// corrupt buckets start over empty
		return map[string]Message{}, nil
	}
	return bucket, nil
}

func bucketKey(userID string) string {
	return BucketPrefix + userID
}
