// Package budgetclient looks up budget figures from a remote budget service.
package budgetclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/budget-desk/backend/internal/reallocation"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
)

var ErrUnavailable = errors.New("the budget lookup service is unavailable")

// Client implements reallocation.Lookup against the budget lookup endpoint
// of another instance of this service.
//
// Requests go through a circuit breaker. After repeated failures, lookups
// fail fast with ErrUnavailable until the service recovers.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
}

type lookupResponse struct {
	Data  *reallocation.Figures `json:"data"`
	Error *string               `json:"error"`
}

// New creates a client for the service at baseURL.
func New(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing budget lookup URL: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("budget lookup URL must use http or https, not %q", u.Scheme)
	}

	settings := gobreaker.Settings{
		Name:     "budget-lookup",
		Interval: 60 * time.Second,
		Timeout:  30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, reallocation.ErrNoBudgetData)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("budget lookup circuit breaker")
		},
	}

	return &Client{
		baseURL: u,
		http:    &http.Client{Timeout: timeout},
		breaker: gobreaker.NewCircuitBreaker(settings),
	}, nil
}

func (c *Client) LookupBudget(ctx context.Context, key reallocation.Key) (reallocation.Figures, error) {
	if !key.Complete() {
		return reallocation.Figures{}, reallocation.ErrNoBudgetData
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.lookup(ctx, key)
	})

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return reallocation.Figures{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	if err != nil {
		return reallocation.Figures{}, err
	}

	return result.(reallocation.Figures), nil
}

func (c *Client) lookup(ctx context.Context, key reallocation.Key) (reallocation.Figures, error) {
	query := url.Values{}
	query.Set("company", key.Company)
	query.Set("costCenter", key.CostCenter)
	query.Set("fiscalYear", key.FiscalYear)
	query.Set("account", key.Account)
	query.Set("month", key.Month.String())

	u := c.baseURL.JoinPath("v1", "budget-lookup")
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return reallocation.Figures{}, err
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return reallocation.Figures{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer res.Body.Close()

	var body lookupResponse
	decodeErr := json.NewDecoder(res.Body).Decode(&body)

	switch {
	case res.StatusCode == http.StatusNotFound:
		return reallocation.Figures{}, reallocation.ErrNoBudgetData
	case res.StatusCode != http.StatusOK:
		message := http.StatusText(res.StatusCode)
		if decodeErr == nil && body.Error != nil {
			message = *body.Error
		}
		return reallocation.Figures{}, fmt.Errorf("%w: status %d: %s", ErrUnavailable, res.StatusCode, message)
	case decodeErr != nil:
		return reallocation.Figures{}, fmt.Errorf("%w: decoding response: %w", ErrUnavailable, decodeErr)
	case body.Data == nil:
		return reallocation.Figures{}, reallocation.ErrNoBudgetData
	}

	return *body.Data, nil
}
