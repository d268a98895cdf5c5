// Package apitypes holds the request/response payloads shared by the API
// server and the CLI client.
package apitypes

import "github.com/akarstad/netpulse/internal/storage"

type LogsResponse struct {
	Logs []string `json:"logs"`
}

type HistoryResponse struct {
	Samples []storage.Sample `json:"samples"`
}

type VersionResponse struct {
	Version string `json:"version"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
