// Package models defines the request and response payloads of the HTTP API.
package models

import (
	"time"

	"github.com/vietdv201/EzFinance-Interest-tracker/internal/model"
)

// RatesResponse is the body of GET /api/v1/rates.
type RatesResponse struct {
	Rows      []model.BankRate `json:"rows"`
	Origin    string           `json:"origin"`
	Reason    string           `json:"reason,omitempty"`
	FetchedAt time.Time        `json:"fetched_at"`
	Count     int              `json:"count"`
}

// FintechResponse is the body of GET /api/v1/fintech.
type FintechResponse struct {
	Products []model.FintechProduct `json:"products"`
	Count    int                    `json:"count"`
}

// AveragesResponse is the body of GET /api/v1/averages: the long-form
// aggregation a grouped bar chart consumes directly. NoData tells clients
// to render a notice instead of a chart.
type AveragesResponse struct {
	Averages []GroupAverageRow `json:"averages"`
	Groups   []model.Group     `json:"groups"`
	Terms    []model.Term      `json:"terms"`
	NoData   bool              `json:"no_data"`
}

// GroupAverageRow is one (group, term) mean, carrying the fixed chart color
// of the group when one is assigned.
type GroupAverageRow struct {
	Group       model.Group `json:"group"`
	Term        model.Term  `json:"term"`
	AverageRate model.Rate  `json:"average_rate"`
	Color       string      `json:"color,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
