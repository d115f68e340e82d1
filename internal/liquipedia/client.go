package liquipedia

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/esports-predictor/internal/config"
	"github.com/yourusername/esports-predictor/internal/metrics"
	"github.com/yourusername/esports-predictor/internal/models"
)

// Endpoint path segments under the API base URL.
const (
	endpointTournament = "tournament"
	endpointMatch      = "match"
)

// Client talks to the Liquipedia API v3. All fetches go through the
// shared rate-limited HTTP client, so a single Client respects the API
// quota across endpoints.
type Client struct {
	http      *RateLimitedHTTPClient
	apiURL    string
	apiKey    string
	wiki      string
	pageLimit int
	maxPages  int
	logger    *logrus.Entry
}

// NewClient creates a Liquipedia API client from configuration.
func NewClient(cfg config.LiquipediaConfig, log *logrus.Logger) *Client {
	httpCfg := DefaultHTTPClientConfig()
	httpCfg.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	httpCfg.MaxRetries = cfg.MaxRetries
	httpCfg.RateLimit = cfg.RateLimit
	httpCfg.CircuitBreakerMax = cfg.CircuitBreakerMax

	return &Client{
		http:      NewRateLimitedHTTPClient(httpCfg, log),
		apiURL:    cfg.APIURL,
		apiKey:    cfg.APIKey,
		wiki:      cfg.Wiki,
		pageLimit: cfg.PageLimit,
		maxPages:  cfg.MaxPages,
		logger:    log.WithField("component", "liquipedia"),
	}
}

// Close releases the underlying HTTP client.
func (c *Client) Close() error {
	return c.http.Close()
}

// get fetches one page from an endpoint and decodes the result envelope
// into out, which must be a pointer to a slice of raw records.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	requestURL := c.apiURL + "/" + endpoint + "?" + params.Encode()

	headers := http.Header{}
	headers.Set("Accept", "application/json")
	headers.Set("Authorization", "Apikey "+c.apiKey)

	resp, err := c.http.Get(ctx, requestURL, headers)
	if err != nil {
		metrics.RecordAPIRequest(endpoint, "error")
		return newAPIError(endpoint, ErrCodeNetworkError, "request failed", err)
	}
	defer resp.Body.Close()

	metrics.RecordAPIRequest(endpoint, strconv.Itoa(resp.StatusCode))

	if resp.StatusCode != http.StatusOK {
		code, sentinel := classifyStatus(resp.StatusCode)
		return newAPIError(endpoint, code, fmt.Sprintf("unexpected status %d", resp.StatusCode), sentinel)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return newAPIError(endpoint, ErrCodeNetworkError, "failed to read response body", err)
	}

	envelope := struct {
		Result json.RawMessage `json:"result"`
	}{}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return newAPIError(endpoint, ErrCodeInvalidData, "failed to decode response envelope", err)
	}
	if len(envelope.Result) == 0 {
		return nil
	}
	if err := json.Unmarshal(envelope.Result, out); err != nil {
		return newAPIError(endpoint, ErrCodeInvalidData, "failed to decode result records", err)
	}
	return nil
}

// baseParams returns the query parameters shared by every request.
func (c *Client) baseParams() url.Values {
	params := url.Values{}
	params.Set("wiki", c.wiki)
	params.Set("limit", strconv.Itoa(c.pageLimit))
	return params
}

// FetchTournaments retrieves all tournaments whose start date falls
// strictly between startDate and endDate (YYYY-MM-DD). The endpoint has
// no offset parameter, so pagination advances a startdate cursor: each
// page is fetched from the previous page's last start date. Records at
// the cursor boundary repeat across pages; downstream deduplication
// removes them.
func (c *Client) FetchTournaments(ctx context.Context, startDate, endDate string) ([]models.Tournament, error) {
	var all []models.Tournament
	cursor := startDate

	for page := 0; page < c.maxPages; page++ {
		params := c.baseParams()
		params.Set("conditions", fmt.Sprintf("[[startdate::>%s]] AND [[startdate::<%s]]", cursor, endDate))
		params.Set("order", "startdate ASC")

		var raws []rawTournament
		if err := c.get(ctx, endpointTournament, params, &raws); err != nil {
			return nil, err
		}
		if len(raws) == 0 {
			break
		}

		for _, raw := range raws {
			all = append(all, normalizeTournament(raw))
		}
		metrics.TournamentsFetchedTotal.Add(float64(len(raws)))

		lastDate := raws[len(raws)-1].StartDate
		c.logger.WithFields(logrus.Fields{
			"fetched":     len(raws),
			"next_cursor": lastDate,
		}).Debug("Fetched tournament page")

		// A page whose last record shares the cursor date cannot
		// advance; stop rather than loop.
		if lastDate == cursor {
			break
		}
		cursor = lastDate

		if len(raws) < c.pageLimit {
			break
		}
	}

	return all, nil
}

// FetchMatches retrieves every match under one tournament page,
// paginating by offset until a short page. Hidden matches are included;
// completeness filtering happens downstream.
func (c *Client) FetchMatches(ctx context.Context, tournamentPagename string) ([]models.Match, error) {
	started := time.Now()
	var all []models.Match
	offset := 0

	for page := 0; page < c.maxPages; page++ {
		params := c.baseParams()
		params.Set("conditions", fmt.Sprintf("[[parent::%s]]", tournamentPagename))
		params.Set("order", "date ASC")
		params.Set("includehidden", "true")
		params.Set("offset", strconv.Itoa(offset))

		var raws []rawMatch
		if err := c.get(ctx, endpointMatch, params, &raws); err != nil {
			return nil, err
		}
		if len(raws) == 0 {
			break
		}

		for _, raw := range raws {
			all = append(all, normalizeMatch(raw))
		}
		metrics.MatchesFetchedTotal.Add(float64(len(raws)))

		if len(raws) < c.pageLimit {
			break
		}
		offset += c.pageLimit
	}

	metrics.TournamentFetchDuration.Observe(time.Since(started).Seconds())
	c.logger.WithFields(logrus.Fields{
		"tournament": tournamentPagename,
		"matches":    len(all),
	}).Debug("Fetched tournament matches")

	return all, nil
}
