package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultUnsplashBaseURL = "https://api.unsplash.com"

// UnsplashConfig configures the stock photo search provider.
type UnsplashConfig struct {
	AccessKey string
	BaseURL   string
	Timeout   time.Duration
}

type unsplashClient struct {
	config UnsplashConfig
	client *http.Client
}

// NewUnsplashProvider creates an ImageProvider backed by the Unsplash
// search API.
func NewUnsplashProvider(config UnsplashConfig) ImageProvider {
	if config.BaseURL == "" {
		config.BaseURL = defaultUnsplashBaseURL
	}
	if config.Timeout <= 0 {
		config.Timeout = 15 * time.Second
	}
	return &unsplashClient{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
	}
}

type unsplashSearchResponse struct {
	Results []struct {
		AltDescription string `json:"alt_description"`
		URLs           struct {
			Regular string `json:"regular"`
		} `json:"urls"`
		User struct {
			Name string `json:"name"`
		} `json:"user"`
	} `json:"results"`
}

func (c *unsplashClient) Search(ctx context.Context, query string) (ImageResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return ImageResult{}, fmt.Errorf("image provider: empty query")
	}

	endpoint := strings.TrimRight(c.config.BaseURL, "/") + "/search/photos?" + url.Values{
		"query":    {query},
		"per_page": {"1"},
	}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return ImageResult{}, fmt.Errorf("build image request: %w", err)
	}
	req.Header.Set("Authorization", "Client-ID "+c.config.AccessKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return ImageResult{}, fmt.Errorf("image request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ImageResult{}, fmt.Errorf("image provider: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return ImageResult{}, fmt.Errorf("read image response: %w", err)
	}

	var parsed unsplashSearchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return ImageResult{}, fmt.Errorf("decode image response: %w", err)
	}
	if len(parsed.Results) == 0 {
		return ImageResult{}, fmt.Errorf("image provider: no results for %q", query)
	}

	first := parsed.Results[0]
	return ImageResult{
		URL:    first.URLs.Regular,
		Alt:    first.AltDescription,
		Credit: first.User.Name,
	}, nil
}
