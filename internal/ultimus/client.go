package ultimus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/marketfold/fund-analyzer/internal/apperrors"
)

// NAVPoint is one daily net-asset-value observation.
type NAVPoint struct {
	Date time.Time
	NAV  float64
}

// Client talks to the fund administrator's data API. All requests carry
// a bearer token obtained from the token cache; a 401 invalidates the
// cache and the request is retried once with a fresh token.
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     TokenCache
}

// NewClient creates a Client against baseURL using the given token cache.
func NewClient(baseURL string, tokens TokenCache) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		tokens:     tokens,
	}
}

type navHistoryResponse struct {
	Data []struct {
		Date string  `json:"date"`
		NAV  float64 `json:"nav"`
	} `json:"data"`
}

// DailyNAVHistory fetches daily NAVs for a fund between two dates
// (inclusive).
func (c *Client) DailyNAVHistory(ctx context.Context, ticker string, start, end time.Time) ([]NAVPoint, error) {
	endpoint := fmt.Sprintf("%s/v1/funds/%s/nav-history?start=%s&end=%s",
		c.baseURL,
		url.PathEscape(ticker),
		start.Format("2006-01-02"),
		end.Format("2006-01-02"),
	)

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var parsed navHistoryResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse nav history: %w", err)
	}
	if len(parsed.Data) == 0 {
		return nil, fmt.Errorf("%w for fund %s", apperrors.ErrNoPriceData, ticker)
	}

	points := make([]NAVPoint, 0, len(parsed.Data))
	for _, d := range parsed.Data {
		date, err := time.Parse("2006-01-02", d.Date)
		if err != nil {
			return nil, fmt.Errorf("failed to parse nav date %q: %w", d.Date, err)
		}
		points = append(points, NAVPoint{Date: date.UTC(), NAV: d.NAV})
	}
	return points, nil
}

// get executes an authenticated GET, retrying once with a fresh token
// after a 401.
func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	body, status, err := c.do(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	if status == http.StatusUnauthorized {
		c.tokens.Invalidate()
		body, status, err = c.do(ctx, endpoint)
		if err != nil {
			return nil, err
		}
		if status == http.StatusUnauthorized {
			return nil, apperrors.ErrUpstreamAuth
		}
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", apperrors.ErrUpstreamUnavailable, status)
	}
	return body, nil
}

func (c *Client) do(ctx context.Context, endpoint string) ([]byte, int, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}
	return body, resp.StatusCode, nil
}

// APITokenSource fetches tokens from the administrator's OAuth endpoint
// using client credentials.
type APITokenSource struct {
	httpClient   *http.Client
	baseURL      string
	clientID     string
	clientSecret string
	now          func() time.Time
}

// NewAPITokenSource creates a TokenSource for the given credentials.
func NewAPITokenSource(baseURL, clientID, clientSecret string) *APITokenSource {
	return &APITokenSource{
		httpClient:   &http.Client{Timeout: 15 * time.Second},
		baseURL:      strings.TrimRight(baseURL, "/"),
		clientID:     clientID,
		clientSecret: clientSecret,
		now:          time.Now,
	}
}

// FetchToken exchanges client credentials for an access token.
func (s *APITokenSource) FetchToken(ctx context.Context) (Token, error) {
	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {s.clientID},
		"client_secret": {s.clientSecret},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.baseURL+"/oauth/token", strings.NewReader(form.Encode()))
	if err != nil {
		return Token{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return Token{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Token{}, fmt.Errorf("%w: status %d", apperrors.ErrUpstreamAuth, resp.StatusCode)
	}

	var parsed struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return Token{}, fmt.Errorf("failed to parse token response: %w", err)
	}
	if parsed.AccessToken == "" {
		return Token{}, apperrors.ErrUpstreamAuth
	}

	return Token{
		Value:     parsed.AccessToken,
		ExpiresAt: s.now().Add(time.Duration(parsed.ExpiresIn) * time.Second),
	}, nil
}
