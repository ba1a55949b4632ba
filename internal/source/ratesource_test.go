package source

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vietdv201/EzFinance-Interest-tracker/internal/model"
	"github.com/vietdv201/EzFinance-Interest-tracker/internal/sheets"
)

type fakeConnector struct {
	rows  [][]string
	err   error
	calls int
}

func (f *fakeConnector) ReadWorksheet(ctx context.Context, worksheet string) ([][]string, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

func liveRows() [][]string {
	return [][]string{
		{"Bank", "Group", "Type", "1M", "3M", "6M", "12M"},
		{"Vietcombank", "Big 4", "Online", "2.9", "3.2", "4.1", "5.0"},
		{"BIDV", "Big 4", "Online", "3.0", "3.3", "4.2", "5.1"},
		{"Techcombank", "Private Bank", "Online", "3.5", "3.8", "4.8", "5.5"},
	}
}

func TestLoadLiveRows(t *testing.T) {
	conn := &fakeConnector{rows: liveRows()}
	src := NewRateSource(conn, "BankRates", 10*time.Minute, zap.NewNop())

	snap, err := src.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, OriginLive, snap.Origin)
	assert.Empty(t, snap.Reason)
	assert.Len(t, snap.Rows, 3, "row count matches the fetched dataset")
	assert.Equal(t, "Vietcombank", snap.Rows[0].Bank)
	assert.False(t, snap.FetchedAt.IsZero())
}

func TestLoadFallbackOnConnectionError(t *testing.T) {
	conn := &fakeConnector{err: &sheets.SheetError{Code: "CONNECTION_FAILED", Message: "dial tcp: timeout"}}
	src := NewRateSource(conn, "BankRates", 10*time.Minute, zap.NewNop())

	snap, err := src.Load(context.Background())
	require.NoError(t, err, "fetch failures never propagate past the source")

	assert.Equal(t, OriginFallback, snap.Origin)
	assert.Equal(t, KindConnection, snap.Reason)
	assert.Len(t, snap.Rows, 6, "the embedded fallback has exactly six rows")
}

func TestLoadFallbackOnSchemaMismatch(t *testing.T) {
	conn := &fakeConnector{rows: [][]string{
		{"Bank", "Group", "Type", "1M", "3M", "6M"}, // 12M missing
		{"Vietcombank", "Big 4", "Online", "2.9", "3.2", "4.1"},
	}}
	src := NewRateSource(conn, "BankRates", 10*time.Minute, zap.NewNop())

	snap, err := src.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, OriginFallback, snap.Origin)
	assert.Equal(t, KindSchemaMismatch, snap.Reason)
	assert.Len(t, snap.Rows, 6)
}

func TestLoadCachesWithinTTL(t *testing.T) {
	conn := &fakeConnector{rows: liveRows()}
	src := NewRateSource(conn, "BankRates", 10*time.Minute, zap.NewNop())
	ctx := context.Background()

	first, err := src.Load(ctx)
	require.NoError(t, err)
	second, err := src.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, conn.calls, "second Load within the TTL must not fetch")
	assert.Equal(t, first.FetchedAt, second.FetchedAt)
	assert.Equal(t, first.Rows, second.Rows)
}

func TestLoadCachesFallbackResultToo(t *testing.T) {
	conn := &fakeConnector{err: &sheets.SheetError{Code: "CONNECTION_FAILED", Message: "down"}}
	src := NewRateSource(conn, "BankRates", 10*time.Minute, zap.NewNop())
	ctx := context.Background()

	_, err := src.Load(ctx)
	require.NoError(t, err)
	_, err = src.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, conn.calls, "a fallback result occupies the cache window like a live one")
}

func TestLoadRefetchesAfterTTL(t *testing.T) {
	conn := &fakeConnector{rows: liveRows()}
	src := NewRateSource(conn, "BankRates", 10*time.Millisecond, zap.NewNop())
	ctx := context.Background()

	_, err := src.Load(ctx)
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)

	_, err = src.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, conn.calls)
}

func TestResolve(t *testing.T) {
	now := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	rows := []model.BankRate{{Bank: "Vietcombank", Group: model.GroupBig4}}

	t.Run("live", func(t *testing.T) {
		snap := resolve(rows, nil, now)
		assert.Equal(t, OriginLive, snap.Origin)
		assert.Empty(t, snap.Reason)
		assert.Equal(t, rows, snap.Rows)
		assert.Equal(t, now, snap.FetchedAt)
	})

	t.Run("connection failure", func(t *testing.T) {
		snap := resolve(nil, &LoadError{Kind: KindConnection, Msg: "read worksheet"}, now)
		assert.Equal(t, OriginFallback, snap.Origin)
		assert.Equal(t, KindConnection, snap.Reason)
		assert.Equal(t, FallbackRates(), snap.Rows)
	})

	t.Run("schema mismatch", func(t *testing.T) {
		snap := resolve(nil, &LoadError{Kind: KindSchemaMismatch, Msg: "missing columns"}, now)
		assert.Equal(t, OriginFallback, snap.Origin)
		assert.Equal(t, KindSchemaMismatch, snap.Reason)
		assert.Equal(t, FallbackRates(), snap.Rows)
	})

	t.Run("live empty dataset stays live", func(t *testing.T) {
		snap := resolve([]model.BankRate{}, nil, now)
		assert.Equal(t, OriginLive, snap.Origin)
		assert.Empty(t, snap.Rows, "an empty sheet is the caller's no-data case, not a fallback")
	})
}

func TestLoadErrorMessage(t *testing.T) {
	withCause := &LoadError{Kind: KindConnection, Msg: "read worksheet", Err: assert.AnError}
	assert.Contains(t, withCause.Error(), "connection: read worksheet")
	assert.ErrorIs(t, withCause, assert.AnError)

	bare := &LoadError{Kind: KindSchemaMismatch, Msg: "missing columns: 12M"}
	assert.Equal(t, "schema_mismatch: missing columns: 12M", bare.Error())
}
