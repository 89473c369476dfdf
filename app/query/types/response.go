package types

import (
	statusmodels "github.com/canopy-network/chainstatus/pkg/db/models/status"
)

// InternalErrorMessage is the only error text /status ever exposes.
const InternalErrorMessage = "internal server error"

// Response is the envelope every /status reply is wrapped in. Exactly one of
// Data or Error is set, according to Success.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Success wraps data in a success envelope.
func Success(data any) Response {
	return Response{Success: true, Data: data}
}

// Failure wraps msg in an error envelope.
func Failure(msg string) Response {
	return Response{Success: false, Error: msg}
}

// StatusResponse documents the 200 body of /status.
type StatusResponse struct {
	Success bool                        `json:"success" example:"true"`
	Data    []statusmodels.ChainSummary `json:"data"`
}

// ErrorResponse documents the 500 body of /status.
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Error   string `json:"error" example:"internal server error"`
}

// HealthResponse is the body of /health.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty"`
}
