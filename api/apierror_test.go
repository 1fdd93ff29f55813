// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponse_DecodeError(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode string
		wantMsg  string
		sentinel error
	}{
		{
			name:     "api error envelope",
			status:   http.StatusBadRequest,
			body:     `{"error":{"code":"BadArgument","message":"date is invalid"}}`,
			wantCode: "BadArgument",
			wantMsg:  "date is invalid",
			sentinel: ErrInvalidArgument,
		},
		{
			name:     "gateway error",
			status:   http.StatusUnauthorized,
			body:     `{"statusCode": 401, "message": "Access denied due to invalid subscription key."}`,
			wantCode: "Unauthenticated",
			wantMsg:  "Access denied due to invalid subscription key.",
			sentinel: ErrUnauthorized,
		},
		{
			name:     "throttled",
			status:   http.StatusTooManyRequests,
			body:     `{"statusCode": 429, "message": "Rate limit is exceeded."}`,
			wantCode: "ResourceExhausted",
			wantMsg:  "Rate limit is exceeded.",
			sentinel: ErrTooManyRequests,
		},
		{
			name:     "plain text body",
			status:   http.StatusForbidden,
			body:     "quota exceeded",
			wantCode: "PermissionDenied",
			wantMsg:  "quota exceeded",
			sentinel: ErrPermissionDenied,
		},
		{
			name:     "empty body",
			status:   http.StatusNotFound,
			wantCode: "NotFound",
			wantMsg:  "Not Found",
			sentinel: ErrNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require, assert := require.New(t), assert.New(t)
			resp := &Response{
				resp: &http.Response{StatusCode: tt.status},
				Body: bytes.NewBufferString(tt.body),
			}
			apiErr, err := resp.Decode(nil)
			require.NoError(err)
			require.NotNil(apiErr)
			assert.Equal(tt.status, apiErr.Status)
			assert.Equal(tt.wantCode, apiErr.Code)
			assert.Equal(tt.wantMsg, apiErr.Message)

			wrapped := fmt.Errorf("error performing client request during List call: %w", apiErr)
			assert.True(errors.Is(wrapped, tt.sentinel))
			assert.Equal(apiErr, AsServerError(wrapped))
		})
	}
}

func TestResponse_DecodeInvalidJSON(t *testing.T) {
	resp := &Response{
		resp: &http.Response{StatusCode: http.StatusOK},
		Body: bytes.NewBufferString(`{"value": [`),
	}
	var target map[string]any
	apiErr, err := resp.Decode(&target)
	assert.Nil(t, apiErr)
	assert.Error(t, err)
}

func TestError_Is(t *testing.T) {
	assert.True(t, errors.Is(&Error{Status: http.StatusNotFound, Code: "EventNotFound"}, ErrNotFound))
	assert.False(t, errors.Is(&Error{Status: http.StatusNotFound}, ErrUnauthorized))
	assert.Nil(t, AsServerError(errors.New("plain")))
}
