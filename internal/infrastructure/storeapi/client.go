// Package storeapi talks to the external storefront API that owns products and checkout.
package storeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/domain/checkout"
)

const maxErrorBody = 64 << 10

// Client is the HTTP client for GET /api/products and POST /api/checkout
type Client struct {
	baseURL string
	client  *http.Client
	log     *logrus.Logger
}

// NewClient creates a client rooted at baseURL, e.g. http://localhost:3000
func NewClient(baseURL string, timeout time.Duration, logger *logrus.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
		log: logger,
	}
}

// FetchProducts downloads the full catalog. Any failure wraps catalog.ErrCatalogUnavailable.
func (c *Client) FetchProducts(ctx context.Context) ([]catalog.Product, error) {
	url := c.baseURL + "/api/products"
	c.log.Debugf("StoreAPI: Requesting products from URL: %s", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create products request: %v", catalog.ErrCatalogUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Errorf("StoreAPI: Failed to execute products request: %v", err)
		return nil, fmt.Errorf("%w: failed to communicate with storefront API: %v", catalog.ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Errorf("StoreAPI: Products request failed with status %d", resp.StatusCode)
		return nil, fmt.Errorf("%w: storefront API returned status %d", catalog.ErrCatalogUnavailable, resp.StatusCode)
	}

	var products []catalog.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		c.log.Errorf("StoreAPI: Failed to decode products response: %v", err)
		return nil, fmt.Errorf("%w: failed to decode products: %v", catalog.ErrCatalogUnavailable, err)
	}

	c.log.Infof("StoreAPI: Received %d products", len(products))
	return products, nil
}

type checkoutErrorBody struct {
	Error string `json:"error"`
}

// SubmitCheckout posts the request once. A non-success status becomes a
// *checkout.RejectedError; transport or decoding failures wrap checkout.ErrNetworkFailure.
func (c *Client) SubmitCheckout(ctx context.Context, body *checkout.Request) (*checkout.Result, error) {
	url := c.baseURL + "/api/checkout"

	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare checkout data: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create checkout request: %v", checkout.ErrNetworkFailure, err)
	}
	requestID := uuid.New().String()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Idempotency-Key", requestID)

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Errorf("StoreAPI: Failed to execute checkout request %s: %v", requestID, err)
		return nil, fmt.Errorf("%w: %v", checkout.ErrNetworkFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		message := checkout.DefaultRejectionMessage
		var out checkoutErrorBody
		if err := json.Unmarshal(bodyBytes, &out); err == nil && out.Error != "" {
			message = out.Error
		}
		c.log.Warnf("StoreAPI: Checkout %s rejected with status %d. Response body: %s", requestID, resp.StatusCode, string(bodyBytes))
		return nil, &checkout.RejectedError{StatusCode: resp.StatusCode, Message: message}
	}

	var result checkout.Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("empty response body")
		}
		c.log.Errorf("StoreAPI: Failed to decode checkout response %s: %v", requestID, err)
		return nil, fmt.Errorf("%w: invalid checkout response: %v", checkout.ErrNetworkFailure, err)
	}

	c.log.Infof("StoreAPI: Checkout %s accepted", requestID)
	return &result, nil
}
