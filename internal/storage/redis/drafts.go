// redis — хранилище черновиков оплаты в Redis (общий стор для нескольких реплик).
package redis

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/LaKensak/fronten/internal/models"
	"github.com/LaKensak/fronten/internal/storage"
)

type Drafts struct {
	rdb    *redis.Client
	prefix string
}

// New создаёт клиент Redis из URL (например, redis://:pass@host:6379/0).
// Если prefix пустой — используется "web:draft:".
func New(ctx context.Context, redisURL, prefix string) (*Drafts, error) {
	if prefix == "" {
		prefix = "web:draft:"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opt)

	// Fail-fast на старте.
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}

	return &Drafts{rdb: rdb, prefix: prefix}, nil
}

func (s *Drafts) key(id string) string { return s.prefix + id }

// Храним как Redis Hash: sid, title, type, dur, price, disc, at (unix).
func (s *Drafts) SaveDraft(ctx context.Context, d *models.PaymentDraft, ttl time.Duration) error {
	kv := map[string]string{
		"sid":   d.SessionID,
		"title": d.Title,
		"type":  d.Type,
		"dur":   d.Duration,
		"price": strconv.FormatFloat(d.OriginalPrice, 'f', -1, 64),
		"disc":  strconv.FormatFloat(d.Discount, 'f', -1, 64),
		"at":    strconv.FormatInt(d.CreatedAt.Unix(), 10),
	}

	pipe := s.rdb.TxPipeline()
	pipe.HSet(ctx, s.key(d.ID), kv)
	pipe.Expire(ctx, s.key(d.ID), ttl)

	_, err := pipe.Exec(ctx)
	return err
}

func (s *Drafts) DraftByID(ctx context.Context, id string) (*models.PaymentDraft, error) {
	m, err := s.rdb.HGetAll(ctx, s.key(id)).Result()
	if err != nil {
		return nil, err
	}

	if len(m) == 0 {
		return nil, storage.ErrNotFound
	}

	price, err := strconv.ParseFloat(m["price"], 64)
	if err != nil {
		return nil, err
	}

	disc, err := strconv.ParseFloat(m["disc"], 64)
	if err != nil {
		return nil, err
	}

	at, err := strconv.ParseInt(m["at"], 10, 64)
	if err != nil {
		return nil, err
	}

	return &models.PaymentDraft{
		ID:            id,
		SessionID:     m["sid"],
		Title:         m["title"],
		Type:          m["type"],
		Duration:      m["dur"],
		OriginalPrice: price,
		Discount:      disc,
		CreatedAt:     time.Unix(at, 0).UTC(),
	}, nil
}

func (s *Drafts) DeleteDraft(ctx context.Context, id string) error {
	err := s.rdb.Del(ctx, s.key(id)).Err()
	if errors.Is(err, redis.Nil) {
		return nil
	}

	return err
}

func (s *Drafts) Close() error { return s.rdb.Close() }
