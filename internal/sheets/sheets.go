// Package sheets reads the remote spreadsheet that backs the dashboard.
//
// Two connector modes exist: the Sheets API with service-account
// credentials, and the unauthenticated CSV export of a published sheet.
// Both return raw cells; schema checks and row decoding happen upstream
// in internal/source.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/vietdv201/EzFinance-Interest-tracker/internal/config"
)

// maxColumns restricts reads to the first 7 spreadsheet columns
// (Bank, Group, Type, 1M, 3M, 6M, 12M). Anything beyond is never fetched.
const maxColumns = 7

// requestTimeout bounds a single worksheet read. A hung fetch delays one
// page render, never more.
const requestTimeout = 30 * time.Second

// Connector reads one worksheet as raw rows of cell text.
type Connector interface {
	ReadWorksheet(ctx context.Context, worksheet string) ([][]string, error)
}

// SheetError is a typed failure from the spreadsheet service.
type SheetError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *SheetError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (status %d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// FromConfig builds the connector the configuration asks for.
func FromConfig(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Connector, error) {
	switch cfg.AuthMode {
	case config.AuthModeServiceAccount:
		return NewAPIConnector(ctx, cfg.SheetID, cfg.CredentialsFile, logger)
	case config.AuthModePublic:
		return NewCSVConnector(cfg.SheetID, cfg.BaseURL, logger), nil
	default:
		return nil, fmt.Errorf("unknown auth mode %q", cfg.AuthMode)
	}
}

// Unavailable returns a Connector whose reads always fail with the given
// error. The server wires it when connector construction fails at boot so
// the dashboard still comes up and serves fallback rows.
func Unavailable(err error) Connector {
	return unavailableConnector{err: err}
}

type unavailableConnector struct{ err error }

func (u unavailableConnector) ReadWorksheet(context.Context, string) ([][]string, error) {
	return nil, &SheetError{Code: "SOURCE_UNAVAILABLE", Message: u.err.Error()}
}

// APIConnector reads through the Google Sheets API with service-account
// credentials.
type APIConnector struct {
	svc           *sheetsapi.Service
	spreadsheetID string
	limiter       *rate.Limiter
	logger        *zap.Logger
}

var _ Connector = &APIConnector{}

// NewAPIConnector builds the service-account connector. credentialsFile is
// the path to the service-account JSON supplied by the deployment's secrets
// mechanism.
func NewAPIConnector(ctx context.Context, spreadsheetID, credentialsFile string, logger *zap.Logger) (*APIConnector, error) {
	if spreadsheetID == "" {
		return nil, &SheetError{Code: "MISSING_SHEET_ID", Message: "spreadsheet ID is required"}
	}
	svc, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &APIConnector{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		// Sheets read quotas are per-minute; one fetch per TTL window
		// stays far below them, the limiter just guards misconfigured
		// deployments that disable caching.
		limiter: rate.NewLimiter(rate.Limit(1), 1),
		logger:  logger,
	}, nil
}

func (c *APIConnector) ReadWorksheet(ctx context.Context, worksheet string) ([][]string, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &SheetError{Code: "RATE_LIMIT_WAIT", Message: err.Error()}
	}

	rng := worksheetRange(worksheet)
	start := time.Now()
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	duration := time.Since(start)
	if err != nil {
		c.logger.Warn("worksheet read failed",
			zap.String("range", rng),
			zap.Duration("duration", duration),
			zap.Error(err))
		return nil, classifyAPIError(err)
	}

	c.logger.Debug("worksheet read",
		zap.String("range", rng),
		zap.Int("rows", len(resp.Values)),
		zap.Duration("duration", duration))

	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, 0, maxColumns)
		for i, cell := range raw {
			if i == maxColumns {
				break
			}
			row = append(row, cellText(cell))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// worksheetRange limits the read to columns A..G of the named worksheet.
func worksheetRange(worksheet string) string {
	return fmt.Sprintf("'%s'!A:G", worksheet)
}

func cellText(cell any) string {
	if s, ok := cell.(string); ok {
		return s
	}
	return fmt.Sprint(cell)
}

func classifyAPIError(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		code := "API_ERROR"
		switch gerr.Code {
		case 401, 403:
			code = "UNAUTHORIZED"
		case 404:
			code = "SHEET_NOT_FOUND"
		case 429:
			code = "RATE_LIMIT_EXCEEDED"
		}
		return &SheetError{StatusCode: gerr.Code, Code: code, Message: gerr.Message}
	}
	return &SheetError{Code: "CONNECTION_FAILED", Message: err.Error()}
}
