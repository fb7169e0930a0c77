package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/SVO0808/SVO-STUDIO/pkg/httpclient"
)

// HTTPDoer is the interface for executing HTTP requests.
// Both httpclient.Client and httpclient.CircuitBreakerClient satisfy this.
type HTTPDoer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// ListOptions controls filtering and ordering of a product listing.
type ListOptions struct {
	ClothingOnly bool
	Sort         SortOrder
}

// Client fetches products from the upstream catalog service.
type Client struct {
	httpClient HTTPDoer
	baseURL    string
}

// NewClient creates a catalog client against the given base URL.
func NewClient(httpClient HTTPDoer, baseURL string) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
	}
}

// ListProducts fetches the full catalog and applies the given filter and sort
// options locally. The upstream API has no server-side filtering worth using.
func (c *Client) ListProducts(ctx context.Context, opts ListOptions) ([]Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/products", http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create products request: %w", err)
	}

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("call catalog service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, httpclient.ParseResponseError(resp, "catalog")
	}

	var products []Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("decode products response: %w", err)
	}

	if opts.ClothingOnly {
		products = FilterClothing(products)
	}
	SortByPrice(products, opts.Sort)

	return products, nil
}

// GetProduct fetches a single product by ID.
func (c *Client) GetProduct(ctx context.Context, id int64) (*Product, error) {
	url := fmt.Sprintf("%s/products/%d", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create product request: %w", err)
	}

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("call catalog service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, httpclient.ParseResponseError(resp, "catalog")
	}

	var product Product
	if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
		return nil, fmt.Errorf("decode product response: %w", err)
	}

	return &product, nil
}
