// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

// Package webhook delivers notifications to a Slack incoming webhook.
package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/slack-go/slack"

	"github.com/sapcc/ecr-scan-reporter/internal/notify"
)

// Config contains the delivery target for notifications.
type Config struct {
	WebhookURL string
	Channel    string
	Username   string
	// Either an emoji name like ":shield:" or the URL of an image.
	Icon string
}

// Sender delivers notifications to a Slack incoming webhook.
type Sender struct {
	cfg Config
}

// NewSender builds a Sender.
func NewSender(cfg Config) *Sender {
	return &Sender{cfg}
}

// DeliveryResult describes the response to a delivery attempt.
type DeliveryResult struct {
	StatusCode int
	// Response headers, rendered in wire format.
	Info string
	Body string
}

// IsSuccess returns whether the webhook accepted the message.
func (r DeliveryResult) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// BuildMessage builds the message that Send() delivers for the given blocks.
func (s *Sender) BuildMessage(blocks []notify.Block) slack.WebhookMessage {
	blockSet := make([]slack.Block, len(blocks))
	for idx, b := range blocks {
		text := slack.NewTextBlockObject(slack.MarkdownType, b.Text(), false, false)
		blockSet[idx] = slack.NewSectionBlock(text, nil, nil)
	}

	msg := slack.WebhookMessage{
		Channel:  s.cfg.Channel,
		Username: s.cfg.Username,
		Blocks:   &slack.Blocks{BlockSet: blockSet},
	}
	if isImageURL(s.cfg.Icon) {
		msg.IconURL = s.cfg.Icon
	} else {
		msg.IconEmoji = s.cfg.Icon
	}
	return msg
}

func isImageURL(icon string) bool {
	u, err := url.Parse(icon)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Send makes exactly one attempt to deliver the given blocks as a single
// message. An error is returned if no readable response was received. The caller
// must check DeliveryResult.IsSuccess() to find out whether the message was accepted.
func (s *Sender) Send(ctx context.Context, blocks []notify.Block) (DeliveryResult, error) {
	if len(blocks) == 0 {
		return DeliveryResult{}, errors.New("cannot send a notification without blocks")
	}

	payload, err := json.Marshal(s.BuildMessage(blocks))
	if err != nil {
		return DeliveryResult{}, fmt.Errorf("cannot serialize notification: %w", err)
	}
	form := url.Values{"payload": {string(payload)}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.WebhookURL, strings.NewReader(form.Encode()))
	if err != nil {
		return DeliveryResult{}, fmt.Errorf("cannot build request for Slack webhook: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return DeliveryResult{}, fmt.Errorf("cannot deliver notification to Slack webhook: %w", err)
	}
	defer resp.Body.Close()

	var info strings.Builder
	err = resp.Header.Write(&info)
	if err != nil {
		return DeliveryResult{}, fmt.Errorf("cannot render response headers: %w", err)
	}
	// the body is only used for logging, so a short prefix is enough
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return DeliveryResult{}, fmt.Errorf("cannot read response from Slack webhook: %w", err)
	}

	return DeliveryResult{
		StatusCode: resp.StatusCode,
		Info:       strings.TrimSpace(info.String()),
		Body:       strings.TrimSpace(string(body)),
	}, nil
}
