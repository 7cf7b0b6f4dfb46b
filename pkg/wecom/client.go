package wecom

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/zhangzhonghe/apitable/pkg/logger"
	"github.com/zhangzhonghe/apitable/pkg/metrics"
)

const (
	apiSuiteToken = "get_suite_token"
	apiAuthInfo   = "get_auth_info"

	// tokenSafetyMargin is subtracted from expires_in so a cached token is
	// never presented right at its expiry.
	tokenSafetyMargin = 200 * time.Second

	maxResponseBytes = 1 << 20
)

// AuthInfoFetcher reads a corp's authorization info, including its paid edition.
type AuthInfoFetcher interface {
	GetAuthInfo(ctx context.Context, corpID, permanentCode string) (*AuthInfo, error)
}

// Client talks to WeCom on behalf of a single suite.
type Client struct {
	suite SuiteConfig
	store Store
	cfg   *clientConfig
	group singleflight.Group
}

// NewClient creates a Client for suite. It panics on a nil store.
func NewClient(suite SuiteConfig, store Store, opts ...Option) (*Client, error) {
	if store == nil {
		panic("wecom: Store is required")
	}
	if err := suite.Validate(); err != nil {
		return nil, err
	}

	cfg := defaultClientConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return &Client{suite: suite, store: store, cfg: cfg}, nil
}

// SuiteID returns the suite this client acts for.
func (c *Client) SuiteID() string {
	return c.suite.SuiteID
}

// SetSuiteTicket records the latest ticket pushed by WeCom.
func (c *Client) SetSuiteTicket(ctx context.Context, ticket string) error {
	if ticket == "" {
		return ErrEmptySuiteTicket
	}
	return c.store.SetSuiteTicket(ctx, c.suite.SuiteID, ticket, c.cfg.ticketTTL)
}

// SuiteAccessToken returns a cached suite access token or mints a new one.
// Concurrent callers share a single refresh.
func (c *Client) SuiteAccessToken(ctx context.Context) (string, error) {
	token, err := c.store.AccessToken(ctx, c.suite.SuiteID)
	if err == nil {
		return token, nil
	}
	if !errors.Is(err, ErrNotStored) {
		return "", err
	}

	v, err, _ := c.group.Do(c.suite.SuiteID, func() (any, error) {
		return c.refreshAccessToken(ctx)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (c *Client) refreshAccessToken(ctx context.Context) (string, error) {
	ticket, err := c.store.SuiteTicket(ctx, c.suite.SuiteID)
	if errors.Is(err, ErrNotStored) {
		return "", ErrSuiteTicketMissing
	}
	if err != nil {
		return "", err
	}

	var resp suiteTokenResponse
	req := suiteTokenRequest{
		SuiteID:     c.suite.SuiteID,
		SuiteSecret: c.suite.Secret,
		SuiteTicket: ticket,
	}
	if err := c.post(ctx, apiSuiteToken, "/cgi-bin/service/get_suite_token", nil, req, &resp); err != nil {
		return "", err
	}
	if resp.SuiteAccessToken == "" {
		return "", fmt.Errorf("%w: empty suite_access_token", ErrInvalidResponse)
	}

	ttl := time.Duration(resp.ExpiresIn)*time.Second - tokenSafetyMargin
	if ttl > 0 {
		if err := c.store.SetAccessToken(ctx, c.suite.SuiteID, resp.SuiteAccessToken, ttl); err != nil {
			c.cfg.logger.WarnContext(ctx, "failed to cache suite access token",
				logger.Component("wecom"),
				logger.SuiteID(c.suite.SuiteID),
				logger.Error(err),
			)
		}
	}

	return resp.SuiteAccessToken, nil
}

// GetAuthInfo fetches the authorization info of corpID, including its edition info.
func (c *Client) GetAuthInfo(ctx context.Context, corpID, permanentCode string) (*AuthInfo, error) {
	if corpID == "" {
		return nil, ErrMissingCorpID
	}
	if permanentCode == "" {
		return nil, ErrMissingPermanent
	}

	token, err := c.SuiteAccessToken(ctx)
	if err != nil {
		return nil, err
	}

	var resp authInfoResponse
	query := url.Values{"suite_access_token": {token}}
	req := authInfoRequest{AuthCorpID: corpID, PermanentCode: permanentCode}
	if err := c.post(ctx, apiAuthInfo, "/cgi-bin/service/get_auth_info", query, req, &resp); err != nil {
		return nil, err
	}

	info := resp.AuthInfo
	return &info, nil
}

type apiResponse interface {
	apiError(api string) error
}

// post sends body as JSON and decodes the reply into out.
// A non-zero errcode becomes *APIError; stale-token codes evict the cached token.
func (c *Client) post(ctx context.Context, api, path string, query url.Values, body any, out apiResponse) (err error) {
	start := time.Now()
	defer func() {
		outcome := metrics.OutcomeOK
		if err != nil {
			outcome = metrics.OutcomeFailure
			if _, ok := IsAPIError(err); ok {
				outcome = metrics.OutcomeAPIError
			}
		}
		metrics.WeComRequests.WithLabelValues(api, outcome).Inc()
		metrics.WeComLatency.WithLabelValues(api).Observe(time.Since(start).Seconds())

		c.cfg.logger.DebugContext(ctx, "wecom api call",
			logger.Component("wecom"),
			logger.API(api),
			logger.SuiteID(c.suite.SuiteID),
			logger.Duration(time.Since(start)),
			logger.Error(err),
		)
	}()

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%w: marshal %s request: %w", ErrRequestFailed, api, err)
	}

	endpoint := c.cfg.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.cfg.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrRequestFailed, api, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return fmt.Errorf("%w: %s: unexpected status %d", ErrRequestFailed, api, resp.StatusCode)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidResponse, api, err)
	}

	if apiErr := out.apiError(api); apiErr != nil {
		var e *APIError
		if errors.As(apiErr, &e) && e.TokenInvalid() {
			if delErr := c.store.DeleteAccessToken(ctx, c.suite.SuiteID); delErr != nil {
				c.cfg.logger.WarnContext(ctx, "failed to evict suite access token",
					logger.Component("wecom"),
					logger.SuiteID(c.suite.SuiteID),
					logger.Error(delErr),
				)
			}
		}
		return apiErr
	}

	return nil
}
