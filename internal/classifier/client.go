// internal/classifier/client.go

// Package classifier talks to the upstream intent classification service.
package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	httpclient "voice-order-workers/internal/common/http"
	"voice-order-workers/internal/common/logger"
	"voice-order-workers/internal/models"
)

const detectPath = "/detect-intent"

var ErrUpstreamIntentFailure = errors.New("UPSTREAM_INTENT_FAILURE")

type Config struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
}

// Client posts utterances to the classifier and decodes its verdict.
type Client struct {
	http     *httpclient.Client
	endpoint string
	logger   logger.Logger
}

func NewClient(cfg Config, log logger.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		http:     httpclient.NewClient(timeout).WithRetries(cfg.MaxRetries, 100*time.Millisecond),
		endpoint: strings.TrimRight(cfg.BaseURL, "/") + detectPath,
		logger:   log.WithFields(map[string]interface{}{"component": "intent-classifier"}),
	}
}

// Detect classifies utterance. Every failure mode (transport, status,
// undecodable body, missing intent) wraps ErrUpstreamIntentFailure.
func (c *Client) Detect(ctx context.Context, utterance string) (models.ClassifierResult, error) {
	data, err := c.http.PostJSON(ctx, c.endpoint, map[string]string{"text": utterance})
	if err != nil {
		return models.ClassifierResult{}, fmt.Errorf("%w: %v", ErrUpstreamIntentFailure, err)
	}

	result, err := Parse(data)
	if err != nil {
		return models.ClassifierResult{}, err
	}

	c.logger.Debug("intent detected", map[string]interface{}{
		"intent":  result.Intent,
		"hasName": result.Name != "",
	})
	return result, nil
}

// Parse decodes a classifier response. The service may answer with the
// object itself or with a JSON string that holds the object.
func Parse(data []byte) (models.ClassifierResult, error) {
	data = bytes.TrimSpace(data)

	if len(data) > 0 && data[0] == '"' {
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			return models.ClassifierResult{}, fmt.Errorf("%w: decode string body: %v", ErrUpstreamIntentFailure, err)
		}
		data = []byte(strings.TrimSpace(inner))
	}

	var result models.ClassifierResult
	if err := json.Unmarshal(data, &result); err != nil {
		return models.ClassifierResult{}, fmt.Errorf("%w: decode body: %v", ErrUpstreamIntentFailure, err)
	}
	result.Intent = strings.TrimSpace(result.Intent)
	if result.Intent == "" {
		return models.ClassifierResult{}, fmt.Errorf("%w: response has no intent", ErrUpstreamIntentFailure)
	}
	return result, nil
}
