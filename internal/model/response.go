package model

import "github.com/shopspring/decimal"

func init() {
	// Prices travel as JSON numbers, which is what the admin UI expects.
	decimal.MarshalJSONWithoutQuotes = true
}

// APIResponse is the envelope used for mutating endpoints and all errors.
type APIResponse struct {
	Success       bool        `json:"success"`
	Message       string      `json:"message"`
	Data          interface{} `json:"data,omitempty"`
	Error         string      `json:"error,omitempty"`
	CorrelationID string      `json:"correlationId,omitempty"`
}
