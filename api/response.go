// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Response wraps an HTTP response with its body fully read into memory.
type Response struct {
	resp *http.Response

	Body *bytes.Buffer
	Map  map[string]any
}

// HttpResponse returns the underlying HTTP response. Its body has already been
// consumed; use Body instead.
func (r *Response) HttpResponse() *http.Response {
	return r.resp
}

// StatusCode returns the HTTP status code of the response.
func (r *Response) StatusCode() int {
	return r.resp.StatusCode
}

func (r *Response) buffer() error {
	defer r.resp.Body.Close()

	r.Body = new(bytes.Buffer)
	if _, err := r.Body.ReadFrom(r.resp.Body); err != nil {
		return fmt.Errorf("error reading response body: %w", err)
	}
	return nil
}

// Decode decodes the response body into target. A non-nil *Error is returned
// when the service answered with an error status; the error return is for
// failures to read or parse the body.
func (r *Response) Decode(target any) (*Error, error) {
	if r == nil || r.resp == nil {
		return nil, errors.New("nil response")
	}

	if r.resp.StatusCode >= http.StatusBadRequest {
		return decodeError(r.resp.StatusCode, r.Body.Bytes()), nil
	}

	if r.Body.Len() == 0 {
		return nil, nil
	}

	if target != nil {
		dec := json.NewDecoder(bytes.NewReader(r.Body.Bytes()))
		dec.UseNumber()
		if err := dec.Decode(target); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("error decoding response body: %w", err)
		}
	}

	// Keep a map form around for callers that want raw attributes. Bodies
	// that are not JSON objects leave it nil.
	m := make(map[string]any)
	mapDec := json.NewDecoder(bytes.NewReader(r.Body.Bytes()))
	mapDec.UseNumber()
	if err := mapDec.Decode(&m); err == nil {
		r.Map = m
	}
	return nil, nil
}
