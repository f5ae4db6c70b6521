package catalog

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/guonaihong/gout"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// StatusError reports a non-2xx answer from the API. The body is not inspected.
type StatusError struct {
	Method string
	URL    string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.URL, e.Code)
}

// Client talks to the product API over REST. It sends no auth and no
// pagination parameters, and never retries.
type Client struct {
	baseURL string
	http    *gout.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    gout.NewWithOpt(gout.WithClient(&http.Client{Timeout: timeout})),
	}
}

func (c *Client) List(ctx context.Context) ([]Product, error) {
	url := c.baseURL + "/products"

	var (
		body string
		code int
	)
	err := c.http.GET(url).
		WithContext(ctx).
		BindBody(&body).
		Code(&code).
		Do()
	if err := check(http.MethodGet, url, code, err); err != nil {
		return nil, err
	}

	var dtos []productDTO
	if err := json.UnmarshalFromString(body, &dtos); err != nil {
		return nil, fmt.Errorf("decode product list: %w", err)
	}
	out := make([]Product, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.toProduct())
	}
	return out, nil
}

// Create posts in. Any 2xx counts as created; the echoed product is decoded
// when possible and left zero otherwise.
func (c *Client) Create(ctx context.Context, in CreateProductInput) (Product, error) {
	url := c.baseURL + "/products"

	var (
		body string
		code int
	)
	err := c.http.POST(url).
		WithContext(ctx).
		SetJSON(in).
		BindBody(&body).
		Code(&code).
		Do()
	if err := check(http.MethodPost, url, code, err); err != nil {
		return Product{}, err
	}
	p, _ := decodeProduct(body)
	return p, nil
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	url := c.productURL(id)

	var code int
	err := c.http.DELETE(url).
		WithContext(ctx).
		Code(&code).
		Do()
	return check(http.MethodDelete, url, code, err)
}

func (c *Client) productURL(id int64) string {
	return fmt.Sprintf("%s/products/%d", c.baseURL, id)
}

func check(method, url string, code int, err error) error {
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, url, err)
	}
	if code < 200 || code > 299 {
		return &StatusError{Method: method, URL: url, Code: code}
	}
	return nil
}

func decodeProduct(body string) (Product, error) {
	var d productDTO
	if err := json.UnmarshalFromString(body, &d); err != nil {
		return Product{}, fmt.Errorf("decode product: %w", err)
	}
	return d.toProduct(), nil
}
