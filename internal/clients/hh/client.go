package hh

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"github.com/maxaizer/hh-analytics/internal/domain/models"
	"golang.org/x/time/rate"
	"io"
	"net/http"
)

const DefaultURL = "https://api.hh.ru/vacancies"

const userAgent = "hh-analytics/1.0"

type getVacanciesResponse struct {
	Items   []models.RawListing `json:"items"`
	Found   int                 `json:"found"`
	Pages   int                 `json:"pages"`
	Page    int                 `json:"page"`
	PerPage int                 `json:"per_page"`
}

type VacanciesPage struct {
	Listings []models.RawListing
	Page     int
	Pages    int
	Found    int
}

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	baseURL     string
	httpClient  HTTPClient
	rateLimiter *rate.Limiter
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	return &Client{baseURL: baseURL, httpClient: &http.Client{}}
}

func (c *Client) SetHTTPClient(client HTTPClient) {
	c.httpClient = client
}

func (c *Client) SetRateLimit(maxRequestsPerSecond float32) {
	c.rateLimiter = rate.NewLimiter(rate.Limit(maxRequestsPerSecond), 1)
}

func (c *Client) GetVacancies(ctx context.Context, parameters SearchParameters) (*VacanciesPage, error) {

	if err := parameters.Validate(); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	body, err := c.sendRequest(ctx, http.MethodGet, c.baseURL+"?"+parameters.ToUrlParams().Encode(), nil)
	if err != nil {
		return nil, err
	}

	var response getVacanciesResponse
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&response); err != nil {
		return nil, fmt.Errorf("error decoding JSON response: %w", err)
	}

	return &VacanciesPage{
		Listings: response.Items,
		Page:     response.Page,
		Pages:    response.Pages,
		Found:    response.Found,
	}, nil
}

func (c *Client) sendRequest(ctx context.Context, method string, url string, body io.Reader) ([]byte, error) {

	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close()

	return c.handleResponse(resp)
}

func (c *Client) handleResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request failed with status %v, body: %v", resp.StatusCode, string(body))
	}

	return body, nil
}
