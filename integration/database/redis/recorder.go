package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/utmcookie/core/utm"
)

const (
	// DefaultTouchKey is the list that receives attribution touches.
	DefaultTouchKey = "utm:touches"
	// DefaultTouchMaxLen caps the touch list.
	DefaultTouchMaxLen int64 = 10000
)

// TouchRecorder is a utm.Recorder that pushes touches as JSON onto a capped
// Redis list, newest first. It is safe for concurrent use.
type TouchRecorder struct {
	client redis.UniversalClient
	key    string
	maxLen int64
	ttl    time.Duration
}

var _ utm.Recorder = (*TouchRecorder)(nil)

// RecorderOption configures a TouchRecorder.
type RecorderOption func(*TouchRecorder)

// WithTouchKey sets the list key.
func WithTouchKey(key string) RecorderOption {
	return func(r *TouchRecorder) {
		if key != "" {
			r.key = key
		}
	}
}

// WithTouchMaxLen caps the list length. Non-positive values keep the default.
func WithTouchMaxLen(n int64) RecorderOption {
	return func(r *TouchRecorder) {
		if n > 0 {
			r.maxLen = n
		}
	}
}

// WithTouchTTL expires the whole list after d of inactivity. Zero disables expiry.
func WithTouchTTL(d time.Duration) RecorderOption {
	return func(r *TouchRecorder) {
		r.ttl = max(d, 0)
	}
}

// NewTouchRecorder creates a recorder writing to client.
func NewTouchRecorder(client redis.UniversalClient, opts ...RecorderOption) *TouchRecorder {
	r := &TouchRecorder{
		client: client,
		key:    DefaultTouchKey,
		maxLen: DefaultTouchMaxLen,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewTouchRecorderFromConfig creates a recorder using the touch settings of cfg.
func NewTouchRecorderFromConfig(client redis.UniversalClient, cfg Config) *TouchRecorder {
	return NewTouchRecorder(client,
		WithTouchKey(cfg.TouchKey),
		WithTouchMaxLen(cfg.TouchMaxLen),
		WithTouchTTL(cfg.TouchTTL),
	)
}

// Record stores t at the head of the list and trims the tail.
func (r *TouchRecorder) Record(ctx context.Context, t utm.Touch) error {
	data, err := json.Marshal(t)
	if err != nil {
		return errors.Join(ErrFailedToRecordTouch, err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, r.key, data)
		pipe.LTrim(ctx, r.key, 0, r.maxLen-1)
		if r.ttl > 0 {
			pipe.Expire(ctx, r.key, r.ttl)
		}
		return nil
	})
	if err != nil {
		return errors.Join(ErrFailedToRecordTouch, err)
	}
	return nil
}

// Recent returns up to n touches, newest first.
func (r *TouchRecorder) Recent(ctx context.Context, n int64) ([]utm.Touch, error) {
	if n <= 0 {
		return nil, nil
	}

	raw, err := r.client.LRange(ctx, r.key, 0, n-1).Result()
	if err != nil {
		return nil, errors.Join(ErrFailedToReadTouches, err)
	}

	touches := make([]utm.Touch, 0, len(raw))
	for _, item := range raw {
		var t utm.Touch
		if err := json.Unmarshal([]byte(item), &t); err != nil {
			return nil, errors.Join(ErrFailedToReadTouches, err)
		}
		touches = append(touches, t)
	}
	return touches, nil
}
