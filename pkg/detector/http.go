package detector

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"lidbench/pkg/core"
)

const defaultRemoteTimeout = 30 * time.Second

// Remote calls a LID service over HTTP. The service accepts
// POST {"text": ...} on /identify and answers {"code", "confidence"};
// an empty or "un" code means the service declined to decide.
type Remote struct {
	BaseURL        string
	SupportedCodes []string
	Client         *http.Client
	Timeout        time.Duration
	MaxRetries     int
	Backoff        time.Duration
}

func NewRemote(baseURL string, codes []string) (*Remote, error) {
	if baseURL == "" {
		return nil, errors.New("remote detector: base URL is required")
	}
	return &Remote{
		BaseURL:        baseURL,
		SupportedCodes: codes,
		Client:         &http.Client{},
		Timeout:        defaultRemoteTimeout,
		MaxRetries:     2,
		Backoff:        500 * time.Millisecond,
	}, nil
}

func (r *Remote) Name() string {
	return "remote"
}

func (r *Remote) Codes() []string {
	out := make([]string, len(r.SupportedCodes))
	copy(out, r.SupportedCodes)
	return out
}

type identifyRequest struct {
	Text string `json:"text"`
}

func (r *Remote) Identify(ctx context.Context, text string) (core.Detection, error) {
	client := r.Client
	if client == nil {
		client = &http.Client{}
	}
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = defaultRemoteTimeout
	}
	maxRetries := r.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	backoff := r.Backoff
	if backoff <= 0 {
		backoff = 500 * time.Millisecond
	}

	body, err := json.Marshal(identifyRequest{Text: text})
	if err != nil {
		return core.Detection{}, err
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, timeout)
		detection, err := r.post(attemptCtx, client, body)
		cancel()
		if err == nil {
			return detection, nil
		}

		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return core.Detection{}, err
		}
		lastErr = err

		if attempt < maxRetries {
			select {
			case <-ctx.Done():
				return core.Detection{}, ctx.Err()
			case <-time.After(backoff * time.Duration(attempt+1)):
			}
		}
	}

	return core.Detection{}, fmt.Errorf("remote detector: request failed after retries: %w", lastErr)
}

func (r *Remote) post(ctx context.Context, client *http.Client, body []byte) (core.Detection, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.BaseURL+"/identify", bytes.NewReader(body))
	if err != nil {
		return core.Detection{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return core.Detection{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return core.Detection{}, fmt.Errorf("remote detector: status %d", resp.StatusCode)
	}

	var detection core.Detection
	if err := json.NewDecoder(resp.Body).Decode(&detection); err != nil {
		return core.Detection{}, err
	}
	return detection, nil
}
