package main

import (
	"errors"
	"io"

	"github.com/bytedance/sonic"
	"github.com/urfave/cli/v2"
	"github.com/valyala/bytebufferpool"

	"github.com/ProjectFanta/fantasy-nba/internal/domain/schedule"
	"github.com/ProjectFanta/fantasy-nba/internal/usecase"
)

const (
	outputAPIVersion = "1.0"
	errorDomain      = "fantasy-nba"
)

type responseEnvelope struct {
	APIVersion string     `json:"apiVersion"`
	Data       any        `json:"data,omitempty"`
	Error      *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Status  string      `json:"status"`
	Errors  []errorItem `json:"errors,omitempty"`
}

type errorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type mappedError struct {
	ExitCode int
	Reason   string
	Status   string
}

// writeJSON encodes payload into a pooled buffer before touching w so a
// failed encode never leaves partial output.
func writeJSON(w io.Writer, payload any, pretty bool) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	enc := sonic.ConfigStd.NewEncoder(buf)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(payload); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func writeSuccess(w io.Writer, data any, pretty bool) error {
	return writeJSON(w, responseEnvelope{APIVersion: outputAPIVersion, Data: data}, pretty)
}

// writeError prints the error envelope and returns an exit error carrying the mapped code.
func writeError(w io.Writer, err error, pretty bool) error {
	mapped := mapError(err)
	_ = writeJSON(w, responseEnvelope{
		APIVersion: outputAPIVersion,
		Error: &errorBody{
			Code:    mapped.ExitCode,
			Message: err.Error(),
			Status:  mapped.Status,
			Errors: []errorItem{
				{
					Domain:  errorDomain,
					Reason:  mapped.Reason,
					Message: err.Error(),
				},
			},
		},
	}, pretty)
	return cli.Exit("", mapped.ExitCode)
}

func mapError(err error) mappedError {
	var insufficient *schedule.InsufficientRoundsError
	switch {
	case errors.As(err, &insufficient):
		return mappedError{ExitCode: 6, Reason: "insufficientRounds", Status: "FAILED_PRECONDITION"}
	case errors.Is(err, usecase.ErrInvalidInput):
		return mappedError{ExitCode: 2, Reason: "invalidInput", Status: "INVALID_ARGUMENT"}
	case errors.Is(err, usecase.ErrUnauthorized):
		return mappedError{ExitCode: 3, Reason: "unauthorized", Status: "UNAUTHENTICATED"}
	case errors.Is(err, usecase.ErrForbidden):
		return mappedError{ExitCode: 4, Reason: "forbidden", Status: "PERMISSION_DENIED"}
	case errors.Is(err, usecase.ErrNotFound):
		return mappedError{ExitCode: 5, Reason: "notFound", Status: "NOT_FOUND"}
	case errors.Is(err, usecase.ErrPrecondition):
		return mappedError{ExitCode: 6, Reason: "preconditionFailed", Status: "FAILED_PRECONDITION"}
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		return mappedError{ExitCode: 7, Reason: "dependencyUnavailable", Status: "UNAVAILABLE"}
	default:
		return mappedError{ExitCode: 1, Reason: "internalError", Status: "INTERNAL"}
	}
}
