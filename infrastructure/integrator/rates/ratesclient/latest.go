package ratesclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"time"

	ratesdomain "github.com/uniqverse/marketplace-api/infrastructure/integrator/rates/domain"
)

const requestTimeout = 20 * time.Second

func (c *RatesClient) GetLatest(ctx context.Context, base string) (*ratesdomain.LatestRates, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	endpoint, err := url.Parse(c.config.APIURL)
	if err != nil {
		return nil, fmt.Errorf("parse rates api url: %w", err)
	}
	endpoint.Path = path.Join(endpoint.Path, base)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build rates request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rates request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rates request failed with status: %s", resp.Status)
	}

	var latest ratesdomain.LatestRates
	if err := json.NewDecoder(resp.Body).Decode(&latest); err != nil {
		return nil, fmt.Errorf("decode rates response: %w", err)
	}

	if latest.Result != "" && latest.Result != "success" {
		return nil, fmt.Errorf("rates api returned %s: %s", latest.Result, latest.ErrorType)
	}

	return &latest, nil
}
