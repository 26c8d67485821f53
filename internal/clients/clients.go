package clients

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/LaKensak/fronten/internal/clients/api"
	"github.com/LaKensak/fronten/internal/clients/interceptors"
	"github.com/LaKensak/fronten/internal/clients/stripe"
	"github.com/LaKensak/fronten/internal/config"
	"github.com/LaKensak/fronten/internal/metrics"
	"github.com/LaKensak/fronten/internal/storage"
	"github.com/LaKensak/fronten/internal/storage/memory"
	"github.com/LaKensak/fronten/internal/storage/redis"
)

// Clients агрегирует внешние зависимости сайта: REST API, платёжный процессор
// и хранилище черновиков оплаты.
type Clients struct {
	API       *api.Client
	Processor *stripe.Processor
	Drafts    storage.DraftStorage
}

// New собирает клиентов по конфигурации. m может быть nil (без метрик исходящих вызовов).
func New(ctx context.Context, cfg config.Config, log *slog.Logger, m *metrics.Metrics) (*Clients, error) {
	const op = "internal/clients/New"

	var observe interceptors.Observer
	if m != nil {
		observe = m.ObserveUpstream
	}

	// Цепочка транспорта (внешний -> внутренний): [metadata ->] timeout -> logging -> metrics.
	// metadata ставит api.New поверх цепочки.
	rt := interceptors.Chain(http.DefaultTransport,
		interceptors.ClientWithTimeout(cfg.Timeouts.Upstream),
		interceptors.ClientLogging(log),
		interceptors.ClientWithMetrics(observe),
	)

	apiClient, err := api.New(cfg.API.BaseURL, cfg.API.UserAgent, rt)
	if err != nil {
		return nil, fmt.Errorf("%s: api: %w", op, err)
	}

	processor := stripe.New(cfg.Stripe.SecretKey, cfg.Stripe.PublishableKey, nil)
	if !processor.Ready() {
		log.Warn("stripe secret key is not set: payments are disabled")
	}

	var drafts storage.DraftStorage
	if cfg.Drafts.RedisURL != "" {
		rd, err := redis.New(ctx, cfg.Drafts.RedisURL, cfg.Drafts.Prefix)
		if err != nil {
			return nil, fmt.Errorf("%s: drafts: %w", op, err)
		}
		drafts = rd
	} else {
		drafts = memory.NewWithLimit(cfg.Drafts.MaxEntries)
	}

	return &Clients{
		API:       apiClient,
		Processor: processor,
		Drafts:    drafts,
	}, nil
}

// Close закрывает хранилище черновиков.
func (c *Clients) Close() error {
	if c.Drafts == nil {
		return nil
	}

	return c.Drafts.Close()
}
