package data

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"feeder-dispatch/internal/model"
)

// ProfileClient fetches solar-generation profiles from a profile service
// (e.g. an irradiance-data provider or the utility's historian export API).
type ProfileClient struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
}

// NewProfileClient creates a new profile service client.
// If baseURL is empty, defaults to "https://profiles.example.net".
func NewProfileClient(apiKey string, baseURL string) *ProfileClient {
	if baseURL == "" {
		baseURL = "https://profiles.example.net"
	}
	return &ProfileClient{
		APIKey:  apiKey,
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// QueryProfileParams defines parameters for fetching a station profile.
type QueryProfileParams struct {
	StationID string    // e.g., "rural-feeder-7"
	StartTime time.Time // start of time range
	EndTime   time.Time // end of time range
	DtHours   float64   // requested resolution; 0 = provider default
}

// ProfileError represents an error from the profile service.
type ProfileError struct {
	StatusCode int
	Code       string
	Message    string
	RetryAfter string // for rate limit errors
}

func (e *ProfileError) Error() string {
	return e.Message
}

// QueryStation fetches the solar series for one station.
func (c *ProfileClient) QueryStation(params QueryProfileParams) (*model.SolarProfile, error) {
	if c.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if params.StationID == "" {
		return nil, fmt.Errorf("station_id is required")
	}
	if params.StartTime.IsZero() || params.EndTime.IsZero() {
		return nil, fmt.Errorf("start_time and end_time are required")
	}
	if params.StartTime.After(params.EndTime) {
		return nil, fmt.Errorf("start_time must be before end_time")
	}

	if cache := GetCache(); cache != nil {
		if cached, found := cache.Get(cacheKey(params)); found {
			log.Printf("[profiles] cache hit: %d samples (station=%s)", len(cached.SamplesMW), params.StationID)
			return cached, nil
		}
	}

	u, err := url.Parse(c.BaseURL + "/v1/stations/" + params.StationID + "/solar")
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	q := u.Query()
	q.Set("start_time", params.StartTime.Format("2006-01-02"))
	q.Set("end_time", params.EndTime.Format("2006-01-02"))
	if params.DtHours > 0 {
		q.Set("dt_hours", fmt.Sprintf("%g", params.DtHours))
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequest(http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("x-api-key", c.APIKey)
	req.Header.Set("Accept", "application/json")

	started := time.Now()
	resp, err := c.Client.Do(req)
	if err != nil {
		log.Printf("[profiles] request failed: %v (duration: %v)", err, time.Since(started))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	log.Printf("[profiles] response: %d (duration: %v, station=%s)", resp.StatusCode, time.Since(started), params.StationID)

	switch resp.StatusCode {
	case http.StatusOK:
		// continue
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, &ProfileError{
			StatusCode: resp.StatusCode,
			Code:       "INVALID_API_KEY",
			Message:    "invalid API key or insufficient permissions",
		}
	case http.StatusTooManyRequests:
		retryAfter := resp.Header.Get("Retry-After")
		return nil, &ProfileError{
			StatusCode: resp.StatusCode,
			Code:       "RATE_LIMIT_EXCEEDED",
			Message:    fmt.Sprintf("rate limit exceeded, retry after: %s", retryAfter),
			RetryAfter: retryAfter,
		}
	default:
		return nil, &ProfileError{
			StatusCode: resp.StatusCode,
			Code:       "API_ERROR",
			Message:    fmt.Sprintf("profile service returned status %d", resp.StatusCode),
		}
	}

	var result model.SolarProfile
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if err := result.Validate(); err != nil {
		return nil, fmt.Errorf("profile service returned unusable profile: %w", err)
	}

	if cache := GetCache(); cache != nil {
		cache.Set(cacheKey(params), &result)
	}
	return &result, nil
}
