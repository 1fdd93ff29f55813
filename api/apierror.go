// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"google.golang.org/grpc/codes"
)

var (
	ErrNotFound         = &Error{Status: http.StatusNotFound, Code: codes.NotFound.String()}
	ErrInvalidArgument  = &Error{Status: http.StatusBadRequest, Code: codes.InvalidArgument.String()}
	ErrPermissionDenied = &Error{Status: http.StatusForbidden, Code: codes.PermissionDenied.String()}
	ErrUnauthorized     = &Error{Status: http.StatusUnauthorized, Code: codes.Unauthenticated.String()}
	ErrTooManyRequests  = &Error{Status: http.StatusTooManyRequests, Code: codes.ResourceExhausted.String()}
)

// Error is an error returned by the service for a request it refused or could
// not serve.
type Error struct {
	// Status is the HTTP status code of the response.
	Status int `json:"status,omitempty"`
	// Code is the service error code, or the name of the gRPC code closest to
	// Status when the service did not send one.
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	// RequestId is the service-assigned request identifier, if any.
	RequestId string `json:"request_id,omitempty"`
}

// AsServerError returns an api *Error from the provided error.  If the provided error
// is not an api Error nil is returned instead.
func AsServerError(in error) *Error {
	var serverErr *Error
	if !errors.As(in, &serverErr) {
		return nil
	}
	return serverErr
}

// Error satisfies the error interface.
func (e *Error) Error() string {
	msg := []string{fmt.Sprintf("%s\n", e.Message), fmt.Sprintf("  %d, %s\n", e.Status, e.Code)}
	if e.RequestId != "" {
		msg = append(msg, fmt.Sprintf("  Request ID: %s\n", e.RequestId))
	}
	return strings.Join(msg, "")
}

// Errors are considered the same iff they are both api.Errors and their statuses are the same.
func (e *Error) Is(target error) bool {
	tApiErr := AsServerError(target)
	return tApiErr != nil && tApiErr.Status == e.Status
}

// The service reports failures in one of two shapes depending on whether the
// request reached the API or was stopped at the gateway.
type wireError struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	StatusCode json.Number `json:"statusCode"`
	Message    string      `json:"message"`
}

func decodeError(status int, body []byte) *Error {
	apiErr := &Error{Status: status}

	var we wireError
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&we); err == nil {
		switch {
		case we.Error != nil:
			apiErr.Code = we.Error.Code
			apiErr.Message = we.Error.Message
		default:
			apiErr.Message = we.Message
			if s, err := strconv.Atoi(we.StatusCode.String()); err == nil && s > 0 {
				apiErr.Status = s
			}
		}
	} else if trimmed := strings.TrimSpace(string(body)); trimmed != "" {
		apiErr.Message = trimmed
	}

	if apiErr.Code == "" {
		apiErr.Code = codeFromStatus(apiErr.Status).String()
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(apiErr.Status)
	}
	return apiErr
}

func codeFromStatus(status int) codes.Code {
	switch status {
	case http.StatusBadRequest:
		return codes.InvalidArgument
	case http.StatusUnauthorized:
		return codes.Unauthenticated
	case http.StatusForbidden:
		return codes.PermissionDenied
	case http.StatusNotFound:
		return codes.NotFound
	case http.StatusConflict:
		return codes.AlreadyExists
	case http.StatusTooManyRequests:
		return codes.ResourceExhausted
	case http.StatusNotImplemented:
		return codes.Unimplemented
	case http.StatusServiceUnavailable:
		return codes.Unavailable
	case http.StatusGatewayTimeout:
		return codes.DeadlineExceeded
	}
	if status >= http.StatusInternalServerError {
		return codes.Internal
	}
	return codes.Unknown
}
