// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package moderation screens reader-submitted text before it is shown on
// the public site.
package moderation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"
)

// Result contains the outcome of a content check.
type Result struct {
	Safe       bool     // true if the text passes moderation
	Categories []string // flagged category names, sorted (empty when safe)
}

// Checker evaluates a piece of text and reports whether it may be
// published without review.
type Checker interface {
	CheckSafety(ctx context.Context, text string) (*Result, error)
}

// DefaultBaseURL is the OpenAI-compatible API root used when none is set.
const DefaultBaseURL = "https://api.openai.com/v1"

// OpenAI uses the OpenAI Moderation API (POST /moderations), which is free
// for all API key holders. Any OpenAI-compatible endpoint works.
type OpenAI struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewOpenAI creates a checker for the given key. An empty baseURL selects
// DefaultBaseURL.
func NewOpenAI(apiKey, baseURL string) *OpenAI {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &OpenAI{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// CheckSafety sends text to the moderation endpoint.
func (m *OpenAI) CheckSafety(ctx context.Context, text string) (*Result, error) {
	payload, err := json.Marshal(modRequest{
		Model: "omni-moderation-latest",
		Input: text,
	})
	if err != nil {
		return nil, fmt.Errorf("moderation marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/moderations", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("moderation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.apiKey)

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("moderation http: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("moderation read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("moderation API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result modResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("moderation unmarshal: %w", err)
	}

	if len(result.Results) == 0 || !result.Results[0].Flagged {
		return &Result{Safe: true}, nil
	}

	var flagged []string
	for cat, isFlagged := range result.Results[0].Categories {
		if isFlagged {
			flagged = append(flagged, displayCategory(cat))
		}
	}
	sort.Strings(flagged)

	return &Result{Safe: false, Categories: flagged}, nil
}

// displayCategory converts "hate/threatening" to "hate (threatening)" and
// "self_harm" to "self harm".
func displayCategory(cat string) string {
	display := strings.ReplaceAll(cat, "/", " (")
	if strings.Contains(cat, "/") {
		display += ")"
	}
	return strings.ReplaceAll(display, "_", " ")
}

type modRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type modResponse struct {
	Results []modResult `json:"results"`
}

type modResult struct {
	Flagged    bool            `json:"flagged"`
	Categories map[string]bool `json:"categories"`
}
