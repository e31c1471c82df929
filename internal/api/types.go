package api

import (
	"inkwell/internal/models"
	"inkwell/internal/search"
)

// ErrorResponse is a generic JSON error wrapper.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	ErrorCode int    `json:"error_code,omitempty"`
}

// HealthResponse reports whether both content trees load.
type HealthResponse struct {
	Status   string `json:"status"`
	Posts    int    `json:"posts"`
	Projects int    `json:"projects"`
	Version  string `json:"version,omitempty"`
}

// RecordList is a filtered listing with the facets of the unfiltered set.
type RecordList struct {
	Kind       models.Kind     `json:"kind"`
	Count      int             `json:"count"`
	Records    []models.Record `json:"records"`
	Categories []search.Facet  `json:"categories"`
	Tags       []search.Facet  `json:"tags"`
}

// RecordDetail is one record with its rendered body.
type RecordDetail struct {
	Record  models.Record     `json:"record"`
	HTML    string            `json:"html"`
	TOC     []models.TOCEntry `json:"toc"`
	Related []models.Record   `json:"related"`
}
