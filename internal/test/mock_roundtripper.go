// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

package test

import (
	"net/http"
	"net/http/httptest"
)

// RoundTripper is a http.RoundTripper that redirects some hosts to
// http.Handler instances, and lets requests to other hosts fail with a
// predefined error.
type RoundTripper struct {
	Handlers map[string]http.Handler
	Errors   map[string]error
}

var originalDefaultTransport http.RoundTripper

// WithRoundTripper sets up a RoundTripper instance as the default HTTP
// transport for the duration of the given action.
func WithRoundTripper(action func(*RoundTripper)) {
	if originalDefaultTransport != nil {
		panic("WithRoundTripper calls may not be nested")
	}

	t := RoundTripper{
		Handlers: make(map[string]http.Handler),
		Errors:   make(map[string]error),
	}
	originalDefaultTransport = http.DefaultTransport
	http.DefaultTransport = &t
	// in a defer to restore the transport even if action() does a t.Fatal()
	defer func() {
		http.DefaultTransport = originalDefaultTransport
		originalDefaultTransport = nil
	}()

	action(&t)
}

// RoundTrip implements the http.RoundTripper interface.
func (t *RoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.Errors[req.URL.Host]; err != nil {
		return nil, err
	}

	// only intercept requests when the target host is known to us
	h := t.Handlers[req.URL.Host]
	if h == nil {
		return originalDefaultTransport.RoundTrip(req)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w.Result(), nil
}
