// Package remote provides fetchers that retrieve content-addressed
// artifacts from a remote object store, over plain HTTPS GET or the S3 API.
package remote

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/furiosa-ai/model-artifacts/pkg/modelartifacts"
)

// DefaultEndpoint is the public artifact bucket fronting the model zoo.
const DefaultEndpoint = "https://furiosa-public-artifacts.s3-accelerate.amazonaws.com/furiosa-artifacts"

// HTTPConfig options for the HTTP fetcher
type HTTPConfig struct {
	Endpoint string       // Base URL of the artifact store (default: DefaultEndpoint)
	Client   *http.Client // Optional HTTP client; defaults to http.DefaultClient
}

// HTTPFetcher retrieves artifacts with a plain GET of
// <endpoint>/<prefix>/<suffix>.
type HTTPFetcher struct {
	endpoint string
	client   *http.Client
}

// NewHTTPFetcher creates an HTTP fetcher.
func NewHTTPFetcher(config HTTPConfig) *HTTPFetcher {
	if config.Endpoint == "" {
		config.Endpoint = DefaultEndpoint
	}
	if config.Client == nil {
		config.Client = http.DefaultClient
	}
	return &HTTPFetcher{
		endpoint: config.Endpoint,
		client:   config.Client,
	}
}

// Fetch downloads the object at addr. A non-200 response reports
// modelartifacts.ErrArtifactNotFoundRemote.
func (f *HTTPFetcher) Fetch(ctx context.Context, addr modelartifacts.ContentAddress) ([]byte, error) {
	url := fmt.Sprintf("%s/%s/%s", f.endpoint, addr.PrefixDir, addr.SuffixName)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", url, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %v", modelartifacts.ErrArtifactNotFoundRemote, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: GET %s returned status %d",
			modelartifacts.ErrArtifactNotFoundRemote, url, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: reading body: %v",
			modelartifacts.ErrArtifactNotFoundRemote, url, err)
	}
	return data, nil
}
