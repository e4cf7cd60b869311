package api

import (
	"context"
	"encoding/json"
	"html"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/allegro/bigcache/v3"
	"github.com/microcosm-cc/bluemonday"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/segmentio/ksuid"

	"lookforjob/internal/domain"
)

// maxBodyBytes bounds how much of a response body is read
const maxBodyBytes = 4 << 20

// Options configures a Client
type Options struct {
	BaseURL    string
	Token      string
	Timeout    time.Duration
	DetailTTL  time.Duration
	HTTPClient *http.Client // optional, a client with Timeout is built otherwise
	Logger     zerolog.Logger
}

// Client talks to the LookForJob REST backend
type Client struct {
	baseURL   *url.URL
	token     string
	http      *http.Client
	cache     *bigcache.BigCache
	sanitizer *bluemonday.Policy
	log       zerolog.Logger
}

// NewClient creates a new API client
func NewClient(opts Options) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, errors.Wrapf(err, "invalid base URL %q", opts.BaseURL)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	ttl := opts.DetailTTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	cacheCfg := bigcache.DefaultConfig(ttl)
	cacheCfg.Shards = 16
	cacheCfg.MaxEntriesInWindow = 1024
	cacheCfg.Verbose = false
	cache, err := bigcache.New(context.Background(), cacheCfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create detail cache")
	}

	return &Client{
		baseURL:   base,
		token:     opts.Token,
		http:      httpClient,
		cache:     cache,
		sanitizer: bluemonday.StrictPolicy(),
		log:       opts.Logger.With().Str("component", "api").Logger(),
	}, nil
}

// Close releases the detail cache
func (c *Client) Close() error {
	return c.cache.Close()
}

// ListJobs fetches one page of scraped job postings
func (c *Client) ListJobs(ctx context.Context, q domain.Query) (domain.PageEnvelope, error) {
	var env domain.PageEnvelope
	if err := c.get(ctx, c.endpoint("jobs"), q.Values(), &env); err != nil {
		return domain.PageEnvelope{}, errors.Wrap(err, "list jobs")
	}

	env = env.Normalize()
	for i := range env.Data {
		env.Data[i] = c.clean(env.Data[i])
	}
	return env, nil
}

// GetJob fetches a single posting, serving repeated lookups from the cache
func (c *Client) GetJob(ctx context.Context, id int64) (domain.JobPosting, error) {
	key := strconv.FormatInt(id, 10)
	if cached, err := c.cache.Get(key); err == nil {
		var job domain.JobPosting
		if err := json.Unmarshal(cached, &job); err == nil {
			return job, nil
		}
	}

	var raw json.RawMessage
	if err := c.get(ctx, c.endpoint("jobs", key), nil, &raw); err != nil {
		return domain.JobPosting{}, errors.Wrapf(err, "get job %d", id)
	}

	job, err := decodePosting(raw)
	if err != nil {
		return domain.JobPosting{}, errors.Wrapf(err, "get job %d", id)
	}
	job = c.clean(job)

	if data, err := json.Marshal(job); err == nil {
		if err := c.cache.Set(key, data); err != nil {
			c.log.Warn().Err(err).Int64("job_id", id).Msg("failed to cache posting")
		}
	}
	return job, nil
}

// decodePosting accepts either a bare posting or the {status,message,data} wrapper
func decodePosting(raw json.RawMessage) (domain.JobPosting, error) {
	var wrapped struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && len(wrapped.Data) > 0 && wrapped.Data[0] == '{' {
		raw = wrapped.Data
	}

	var job domain.JobPosting
	if err := json.Unmarshal(raw, &job); err != nil {
		return domain.JobPosting{}, errors.Wrap(err, "decode posting")
	}
	return job, nil
}

func (c *Client) endpoint(elem ...string) *url.URL {
	return c.baseURL.JoinPath(elem...)
}

// get issues a GET and decodes a JSON body into out
func (c *Client) get(ctx context.Context, u *url.URL, params url.Values, out interface{}) error {
	if params != nil {
		u.RawQuery = params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return errors.Wrap(err, "build request")
	}

	requestID := ksuid.New().String()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("request_id", requestID).Str("url", u.String()).Msg("request failed")
		return errors.Wrap(err, "request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return errors.Wrap(err, "read response")
	}

	c.log.Debug().
		Str("request_id", requestID).
		Str("method", req.Method).
		Str("url", u.String()).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("req")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.errorFromResponse(resp.StatusCode, body, requestID)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return errors.Wrap(err, "decode response")
	}
	return nil
}

func (c *Client) errorFromResponse(status int, body []byte, requestID string) error {
	apiErr := &APIError{StatusCode: status}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		apiErr.Message = eb.Message
		apiErr.Errors = eb.Errors
	}

	switch status {
	case http.StatusUnauthorized:
		c.log.Warn().Str("request_id", requestID).Msg("token rejected by backend")
	case http.StatusUnprocessableEntity:
		c.log.Error().Str("request_id", requestID).Interface("errors", apiErr.Errors).Msg("validation errors")
	default:
		c.log.Warn().Str("request_id", requestID).Int("status", status).Str("message", apiErr.Message).Msg("unexpected status")
	}
	return apiErr
}

// clean strips markup from the free-text fields of a scraped posting
func (c *Client) clean(job domain.JobPosting) domain.JobPosting {
	job.Position = c.text(job.Position)
	job.Company = c.text(job.Company)
	job.Location = c.text(job.Location)
	job.Date = c.text(job.Date)
	job.Salary = c.text(job.Salary)
	job.AgoTime = c.text(job.AgoTime)
	job.Keyword = c.text(job.Keyword)
	job.JobURL = strings.TrimSpace(job.JobURL)
	job.CompanyLogo = strings.TrimSpace(job.CompanyLogo)
	return job
}

func (c *Client) text(s string) string {
	if s == "" {
		return s
	}
	return strings.TrimSpace(html.UnescapeString(c.sanitizer.Sanitize(s)))
}
