package shopapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/ogdeig/diamond-ave-storefront/internal/catalog"
	"github.com/ogdeig/diamond-ave-storefront/pkg/config"
	pkgerrors "github.com/ogdeig/diamond-ave-storefront/pkg/errors"
)

// Client talks to the shop backend web app. All calls go to a single base
// URL with an action query parameter, matching the backend's dispatch.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(cfg config.ShopConfig) *Client {
	return &Client{
		baseURL: strings.TrimSpace(cfg.BaseURL),
		http:    &http.Client{Timeout: cfg.RequestTimeout},
	}
}

// Configured reports whether a backend URL was provided. Unconfigured puts
// the storefront in demo mode.
func (c *Client) Configured() bool {
	return c.baseURL != ""
}

// FetchProducts retrieves the product collection. Any response that is not a
// JSON array of product records counts as a failure.
func (c *Client) FetchProducts(ctx context.Context) ([]catalog.Product, error) {
	endpoint, err := c.actionURL("products")
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build products request")
	}
	req.Header.Set("Cache-Control", "no-cache")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch products")
	}
	defer drainAndClose(res.Body)

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, pkgerrors.New(pkgerrors.CodeDependency,
			fmt.Sprintf("unexpected products status %d", res.StatusCode))
	}

	var records []wireProduct
	if err := json.NewDecoder(res.Body).Decode(&records); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "unexpected response for products")
	}

	products := make([]catalog.Product, 0, len(records))
	for _, record := range records {
		products = append(products, record.toProduct())
	}
	return products, nil
}

// SubmitOrder posts a pickup order. Success requires a response object with
// a truthy success flag and an order id; anything else is ErrOrderRejected
// or a transport error.
func (c *Client) SubmitOrder(ctx context.Context, payload OrderPayload) (OrderConfirmation, error) {
	endpoint, err := c.actionURL("order")
	if err != nil {
		return OrderConfirmation{}, err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return OrderConfirmation{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode order payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return OrderConfirmation{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build order request")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return OrderConfirmation{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "submit order")
	}
	defer drainAndClose(res.Body)

	var receipt orderResponse
	if err := json.NewDecoder(res.Body).Decode(&receipt); err != nil {
		return OrderConfirmation{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode order response")
	}

	if !receipt.Success {
		return OrderConfirmation{}, ErrOrderRejected
	}
	return OrderConfirmation{OrderID: receipt.OrderID}, nil
}

// Ping checks backend reachability for the readiness probe.
func (c *Client) Ping(ctx context.Context) error {
	if !c.Configured() {
		return nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return err
	}
	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("shop backend unreachable: %w", err)
	}
	drainAndClose(res.Body)
	return nil
}

func (c *Client) actionURL(action string) (string, error) {
	parsed, err := url.Parse(c.baseURL)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "parse shop base url")
	}
	query := parsed.Query()
	query.Set("action", action)
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}

func drainAndClose(body io.ReadCloser) {
	io.Copy(io.Discard, body)
	body.Close()
}
