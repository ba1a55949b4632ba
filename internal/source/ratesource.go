// Package source produces the datasets the dashboard presents: bank rates
// fetched live with an embedded fallback, and the constant fintech product
// table.
package source

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/vietdv201/EzFinance-Interest-tracker/internal/cache"
	"github.com/vietdv201/EzFinance-Interest-tracker/internal/metrics"
	"github.com/vietdv201/EzFinance-Interest-tracker/internal/model"
	"github.com/vietdv201/EzFinance-Interest-tracker/internal/sheets"
)

// Origin values of a Snapshot.
const (
	OriginLive     = "live"
	OriginFallback = "fallback"
)

// Snapshot is one cached load of the bank-rate dataset. Origin and Reason
// record where the rows came from for the log line, the optional notice and
// the metrics label; callers otherwise treat live and fallback identically.
type Snapshot struct {
	Rows      []model.BankRate `json:"rows"`
	Origin    string           `json:"origin"`
	Reason    ErrorKind        `json:"reason,omitempty"`
	FetchedAt time.Time        `json:"fetched_at"`
}

// RateSource loads the bank-rate dataset: fetch the worksheet, check its
// schema, decode the rows, and resolve any failure to the embedded fallback.
// The result is cached for one TTL window; concurrent misses share a fetch.
type RateSource struct {
	connector sheets.Connector
	worksheet string
	logger    *zap.Logger
	now       func() time.Time
	cache     *cache.TTL[Snapshot]
}

func NewRateSource(connector sheets.Connector, worksheet string, ttl time.Duration, logger *zap.Logger) *RateSource {
	s := &RateSource{
		connector: connector,
		worksheet: worksheet,
		logger:    logger,
		now:       time.Now,
	}
	s.cache = cache.New(ttl, s.loadOnce)
	return s
}

// Load returns the current snapshot, fetching at most once per TTL window.
// The error is nil in practice: every load failure resolves to the fallback
// dataset before it can propagate. The two-value signature stays for
// failure modes that must not be silent.
func (s *RateSource) Load(ctx context.Context) (Snapshot, error) {
	return s.cache.Get(ctx)
}

func (s *RateSource) loadOnce(ctx context.Context) (Snapshot, error) {
	rows, loadErr := s.fetch(ctx)
	snap := resolve(rows, loadErr, s.now())

	if loadErr != nil {
		// The dashboard stays up on the embedded rows; this line and the
		// metric are the only places the failure is visible by default.
		s.logger.Warn("serving fallback dataset",
			zap.String("reason", string(loadErr.Kind)),
			zap.Int("rows", len(snap.Rows)),
			zap.Error(loadErr))
	} else {
		s.logger.Info("loaded live rates",
			zap.String("worksheet", s.worksheet),
			zap.Int("rows", len(snap.Rows)))
	}
	metrics.FetchTotal.WithLabelValues(snap.Origin, string(snap.Reason)).Inc()

	return snap, nil
}

// fetch reads and decodes the worksheet. Failures come back as a LoadError
// instead of being acted on here; the fallback policy lives in resolve.
func (s *RateSource) fetch(ctx context.Context) ([]model.BankRate, *LoadError) {
	start := time.Now()
	raw, err := s.connector.ReadWorksheet(ctx, s.worksheet)
	metrics.FetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, &LoadError{Kind: KindConnection, Msg: "read worksheet", Err: err}
	}
	return DecodeRows(raw)
}

// resolve maps a fetch outcome to the dataset actually served: the fetched
// rows on success, the embedded fallback on any failure. Pure, so the
// policy is testable without simulating network failures.
func resolve(rows []model.BankRate, loadErr *LoadError, fetchedAt time.Time) Snapshot {
	if loadErr != nil {
		return Snapshot{
			Rows:      FallbackRates(),
			Origin:    OriginFallback,
			Reason:    loadErr.Kind,
			FetchedAt: fetchedAt,
		}
	}
	return Snapshot{
		Rows:      rows,
		Origin:    OriginLive,
		FetchedAt: fetchedAt,
	}
}
