// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

package test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"sync"

	"github.com/gorilla/mux"
	"github.com/sapcc/go-bits/httpapi"
	"github.com/sapcc/go-bits/respondwith"
)

// WebhookPayload is the part of a Slack incoming webhook message that
// SlackDouble understands.
type WebhookPayload struct {
	Channel   string `json:"channel"`
	Username  string `json:"username"`
	IconEmoji string `json:"icon_emoji"`
	IconURL   string `json:"icon_url"`
	Blocks    []struct {
		Type string `json:"type"`
		Text struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"text"`
	} `json:"blocks"`
}

// BlockTexts returns the Markdown texts of all blocks in this payload.
func (p WebhookPayload) BlockTexts() []string {
	result := make([]string, len(p.Blocks))
	for idx, block := range p.Blocks {
		result[idx] = block.Text.Text
	}
	return result
}

// SlackDouble acts as a test double for a Slack incoming webhook.
type SlackDouble struct {
	// If not empty, each request consumes the first entry in this list and
	// responds with that status code. Otherwise, requests succeed.
	Responses []int
	// All messages that were received, including those that drew an error response.
	Messages []WebhookPayload

	mutex sync.Mutex
}

// NewSlackDouble creates a SlackDouble.
func NewSlackDouble() *SlackDouble {
	return &SlackDouble{}
}

// AddTo implements the httpapi.API interface.
func (s *SlackDouble) AddTo(r *mux.Router) {
	r.Methods("POST").
		Path("/services/{path:.+}").
		HandlerFunc(s.handlePostMessage)
}

// Handler returns a http.Handler that serves this SlackDouble.
func (s *SlackDouble) Handler() http.Handler {
	return httpapi.Compose(s, httpapi.WithoutLogging())
}

func (s *SlackDouble) handlePostMessage(w http.ResponseWriter, r *http.Request) {
	httpapi.IdentifyEndpoint(r, "/services/:path")

	err := r.ParseForm()
	if respondwith.ErrorText(w, err) {
		return
	}
	payloadStr := r.PostForm.Get("payload")
	if payloadStr == "" {
		respondwith.ErrorText(w, errors.New("missing form field: payload"))
		return
	}
	var payload WebhookPayload
	err = json.Unmarshal([]byte(payloadStr), &payload)
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid payload: %s", err.Error()), http.StatusBadRequest)
		return
	}

	s.mutex.Lock()
	s.Messages = append(s.Messages, payload)
	status := http.StatusOK
	if len(s.Responses) > 0 {
		status = s.Responses[0]
		s.Responses = slices.Delete(s.Responses, 0, 1)
	}
	s.mutex.Unlock()

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(status)
	if status == http.StatusOK {
		w.Write([]byte("ok"))
	} else {
		w.Write([]byte("simulated error"))
	}
}
