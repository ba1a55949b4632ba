package models

// ExportRequest carries the query parameters of GET /api/v1/export.
type ExportRequest struct {
	Format string `form:"format,default=csv"` // "csv" or "xlsx"
}
