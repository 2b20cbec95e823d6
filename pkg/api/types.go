package api

import (
	"time"

	"github.com/d1ks/d1ks/pkg/corpus"
	"github.com/d1ks/d1ks/pkg/paginate"
	"github.com/d1ks/d1ks/pkg/suggest"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

type SearchResponse struct {
	Query      string            `json:"query"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
	Results    []corpus.Document `json:"results"`
	Count      int               `json:"count"`
	Source     string            `json:"source"`
	RequestID  string            `json:"request_id"`
	Nav        paginate.Nav      `json:"nav"`
}

type SuggestResponse struct {
	Query       string               `json:"query"`
	Suggestions []suggest.Suggestion `json:"suggestions"`
	Count       int                  `json:"count"`
}

type HistoryResponse struct {
	History []string `json:"history"`
	Count   int      `json:"count"`
}

type ThemeResponse struct {
	Theme string `json:"theme"`
}

type StatusResponse struct {
	Status string `json:"status"`
}
