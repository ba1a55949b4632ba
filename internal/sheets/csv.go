package sheets

import (
	"context"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"resty.dev/v3"
)

// defaultCSVBaseURL serves the CSV export of sheets shared as
// "anyone with the link".
const defaultCSVBaseURL = "https://docs.google.com"

// CSVConnector reads a published sheet through its CSV export endpoint.
// No credentials are involved, so it suits local development and sheets
// that are public anyway.
type CSVConnector struct {
	client        *resty.Client
	spreadsheetID string
	limiter       *rate.Limiter
	logger        *zap.Logger
}

var _ Connector = &CSVConnector{}

// NewCSVConnector builds the public-CSV connector. baseURL overrides the
// Google endpoint, which tests use to point at a local server.
func NewCSVConnector(spreadsheetID, baseURL string, logger *zap.Logger) *CSVConnector {
	if baseURL == "" {
		baseURL = defaultCSVBaseURL
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(requestTimeout).
		SetHeader("Accept", "text/csv")
	return &CSVConnector{
		client:        client,
		spreadsheetID: spreadsheetID,
		limiter:       rate.NewLimiter(rate.Limit(1), 1),
		logger:        logger,
	}
}

func (c *CSVConnector) ReadWorksheet(ctx context.Context, worksheet string) ([][]string, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	if c.spreadsheetID == "" {
		return nil, &SheetError{Code: "MISSING_SHEET_ID", Message: "spreadsheet ID is required"}
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &SheetError{Code: "RATE_LIMIT_WAIT", Message: err.Error()}
	}

	start := time.Now()
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"tqx":   "out:csv",
			"sheet": worksheet,
		}).
		Get(fmt.Sprintf("/spreadsheets/d/%s/gviz/tq", c.spreadsheetID))
	duration := time.Since(start)
	if err != nil {
		c.logger.Warn("csv export fetch failed",
			zap.String("worksheet", worksheet),
			zap.Duration("duration", duration),
			zap.Error(err))
		return nil, &SheetError{Code: "CONNECTION_FAILED", Message: err.Error()}
	}
	if !resp.IsSuccess() {
		c.logger.Warn("csv export returned error status",
			zap.String("worksheet", worksheet),
			zap.Int("status", resp.StatusCode()),
			zap.Duration("duration", duration))
		return nil, classifyCSVStatus(resp.StatusCode())
	}

	rows, err := parseCSV(resp.String())
	if err != nil {
		return nil, &SheetError{Code: "MALFORMED_CSV", Message: err.Error()}
	}

	c.logger.Debug("csv export read",
		zap.String("worksheet", worksheet),
		zap.Int("rows", len(rows)),
		zap.Duration("duration", duration))
	return rows, nil
}

// parseCSV decodes the export body, keeping at most the first 7 columns of
// each record. Ragged rows are tolerated; the schema check upstream decides
// whether the result is usable.
func parseCSV(body string) ([][]string, error) {
	reader := csv.NewReader(strings.NewReader(body))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		if len(record) > maxColumns {
			record = record[:maxColumns]
		}
		rows = append(rows, record)
	}
	return rows, nil
}

func classifyCSVStatus(status int) *SheetError {
	code := "API_ERROR"
	switch status {
	case 401, 403:
		code = "UNAUTHORIZED"
	case 404:
		code = "SHEET_NOT_FOUND"
	case 429:
		code = "RATE_LIMIT_EXCEEDED"
	}
	return &SheetError{StatusCode: status, Code: code, Message: fmt.Sprintf("csv export returned status %d", status)}
}
