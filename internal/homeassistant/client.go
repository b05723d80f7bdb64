package homeassistant

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"growdash/internal/config"
)

// State represents a single entity state from the Home Assistant API.
type State struct {
	EntityID    string                 `json:"entity_id"`
	State       string                 `json:"state"`
	Attributes  map[string]interface{} `json:"attributes"`
	LastUpdated time.Time              `json:"last_updated"`
}

// Unit returns the entity's unit of measurement, if declared.
func (s State) Unit() string {
	if u, ok := s.Attributes["unit_of_measurement"].(string); ok {
		return u
	}
	return ""
}

// DeviceClass returns the entity's device class, if declared.
func (s State) DeviceClass() string {
	if c, ok := s.Attributes["device_class"].(string); ok {
		return c
	}
	return ""
}

// Client is an interface for a Home Assistant REST API client.
type Client interface {
	FetchStates(ctx context.Context) ([]State, error)
}

// haClient is the concrete implementation of the Home Assistant client.
type haClient struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// NewClient creates a new Home Assistant API client authenticated with a
// long-lived access token.
func NewClient(cfg *config.Config) Client {
	return &haClient{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    cfg.HomeAssistantURL,
		token:      cfg.HomeAssistantToken,
	}
}

// FetchStates fetches all entity states from the Home Assistant API.
func (c *haClient) FetchStates(ctx context.Context) ([]State, error) {
	url := fmt.Sprintf("%s/api/states", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("home assistant api error: status %d", resp.StatusCode)
	}

	var states []State
	if err := json.NewDecoder(resp.Body).Decode(&states); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return states, nil
}
