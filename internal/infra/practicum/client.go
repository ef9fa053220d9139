// internal/infra/practicum/client.go
package practicum

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

var (
	ErrNetwork          = errors.New("homework API request failed")
	ErrUnexpectedStatus = errors.New("homework API endpoint unavailable")
	ErrDecode           = errors.New("homework API returned malformed JSON")
)

// UseNumber keeps current_date exact instead of turning it into a float64.
var apiJSON = jsoniter.Config{
	EscapeHTML: true,
	UseNumber:  true,
}.Froze()

// Client fetches homework statuses from the review API.
type Client struct {
	httpClient *http.Client
	endpoint   string
	token      string
	logger     logrus.FieldLogger
}

// NewClient returns a Client; timeout 0 leaves the request unbounded apart from ctx.
func NewClient(endpoint, token string, timeout time.Duration, logger logrus.FieldLogger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   endpoint,
		token:      token,
		logger:     logger,
	}
}

// GetAPIAnswer requests statuses changed since fromDate and returns the decoded body.
func (c *Client) GetAPIAnswer(ctx context.Context, fromDate int64) (any, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint %q: %w", c.endpoint, err)
	}
	q := u.Query()
	q.Set("from_date", strconv.FormatInt(fromDate, 10))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "OAuth "+c.token)

	logCtx := c.logger.WithField("from_date", fromDate)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logCtx.WithError(err).Error("Request to homework API failed")
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: %s returned %d", ErrUnexpectedStatus, c.endpoint, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logCtx.WithError(err).Error("Reading homework API response failed")
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}

	var payload any
	if err := apiJSON.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	logCtx.Debug("Homework API answered")
	return payload, nil
}
