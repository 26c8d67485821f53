package storage

import (
	"context"
	"errors"
	"time"

	"github.com/LaKensak/fronten/internal/models"
)

var (
	// ErrNotFound — черновик не найден или истёк.
	ErrNotFound = errors.New("not found")
)

// DraftStorage хранит черновики оплаты между запросами страницы оплаты.
type DraftStorage interface {
	// SaveDraft сохраняет (или перезаписывает) черновик с TTL.
	SaveDraft(ctx context.Context, d *models.PaymentDraft, ttl time.Duration) error
	// DraftByID возвращает черновик или ErrNotFound.
	DraftByID(ctx context.Context, id string) (*models.PaymentDraft, error)
	// DeleteDraft удаляет черновик; отсутствие записи не ошибка.
	DeleteDraft(ctx context.Context, id string) error
	Close() error
}
