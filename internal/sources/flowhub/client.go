// Package flowhub reads store inventory from the Flowhub POS API.
package flowhub

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/stockmatch/stockmatch/internal/transport"
	"github.com/stockmatch/stockmatch/pkg/errors"
	"github.com/stockmatch/stockmatch/pkg/logging"
	"github.com/stockmatch/stockmatch/pkg/pos"
)

const service = "flowhub"

// Client is a Flowhub inventory client.
type Client struct {
	cfg    Config
	http   *transport.Client
	logger *zerolog.Logger
}

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	transport []transport.Option
	logger    *zerolog.Logger
}

// WithHTTPClient sends requests through hc.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *clientOptions) { o.transport = append(o.transport, transport.WithHTTPClient(hc)) }
}

// WithLogger sets the client logger. By default the logger is taken from the
// request context.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *clientOptions) { o.logger = logger }
}

// New validates cfg and creates a client. Missing credentials are an error.
func New(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	o := &clientOptions{}
	for _, opt := range opts {
		opt(o)
	}
	auth := transport.HeaderAuth{Headers: map[string]string{
		"clientId": cfg.ClientID,
		"key":      cfg.APIKey,
	}}
	return &Client{
		cfg:    cfg,
		http:   transport.New(auth, o.transport...),
		logger: o.logger,
	}, nil
}

// Locations returns the configured store names, sorted.
func (c *Client) Locations() []string {
	return c.cfg.LocationNames()
}

func (c *Client) log(ctx context.Context) *zerolog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return logging.FromContext(ctx)
}

// LocationID resolves a configured store name. Anything else is taken to be
// a Flowhub location id already.
func (c *Client) LocationID(location string) string {
	if id, ok := c.cfg.Locations[strings.ToLower(strings.TrimSpace(location))]; ok {
		return id
	}
	return strings.TrimSpace(location)
}

type envelope struct {
	Status int             `json:"status"`
	Data   []inventoryItem `json:"data"`
}

// Inventory returns every inventory line at location.
func (c *Client) Inventory(ctx context.Context, location string) ([]pos.Product, error) {
	id := c.LocationID(location)
	if id == "" {
		return nil, errors.NewValidationError("location", location, "location is required")
	}
	endpoint := fmt.Sprintf("%s/v0/locations/%s/inventory", c.cfg.BaseURL, url.PathEscape(id))

	resp, err := c.http.Get(ctx, endpoint)
	if err != nil {
		return nil, errors.WrapResource("fetch", "inventory", location, err)
	}

	var body envelope
	if err := transport.DecodeResponse(resp, service, &body); err != nil {
		return nil, err
	}
	if body.Status != http.StatusOK {
		return nil, &errors.APIError{
			Service:    service,
			StatusCode: body.Status,
			Message:    "API returned error status",
			Endpoint:   resp.Request.URL.Path,
		}
	}

	products := make([]pos.Product, 0, len(body.Data))
	for _, item := range body.Data {
		if p, ok := item.product(); ok {
			products = append(products, p)
		}
	}
	c.log(ctx).Debug().
		Str("location", location).
		Int("items", len(body.Data)).
		Int("products", len(products)).
		Msg("fetched POS inventory")
	return products, nil
}

// LocationInventory is one store's inventory, or the error fetching it.
type LocationInventory struct {
	Location string        `json:"location" yaml:"location"`
	Products []pos.Product `json:"products,omitempty" yaml:"products,omitempty"`
	Err      error         `json:"-" yaml:"-"`
}

type locationInventoryOutput struct {
	Location string        `json:"location" yaml:"location"`
	Products []pos.Product `json:"products,omitempty" yaml:"products,omitempty"`
	Error    string        `json:"error,omitempty" yaml:"error,omitempty"`
}

func (l LocationInventory) output() locationInventoryOutput {
	out := locationInventoryOutput{Location: l.Location, Products: l.Products}
	if l.Err != nil {
		out.Error = l.Err.Error()
	}
	return out
}

// MarshalJSON reports Err as a string.
func (l LocationInventory) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.output())
}

// MarshalYAML reports Err as a string.
func (l LocationInventory) MarshalYAML() (any, error) {
	return l.output(), nil
}

// AllLocations fetches every configured store. A failing store does not
// stop the others; its error is carried in the result.
func (c *Client) AllLocations(ctx context.Context) []LocationInventory {
	names := c.Locations()
	out := make([]LocationInventory, 0, len(names))
	for _, name := range names {
		products, err := c.Inventory(ctx, name)
		if err != nil {
			c.log(ctx).Warn().Err(err).Str("location", name).Msg("POS inventory fetch failed")
		}
		out = append(out, LocationInventory{Location: name, Products: products, Err: err})
	}
	return out
}

// ConnectionStatus is the outcome of TestConnection.
type ConnectionStatus struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Count   int    `json:"count,omitempty"`
}

// TestConnection fetches one store's inventory and reports what happened.
// An empty location uses the first configured store.
func (c *Client) TestConnection(ctx context.Context, location string) ConnectionStatus {
	if location == "" {
		names := c.Locations()
		if len(names) == 0 {
			return ConnectionStatus{Message: "no locations configured"}
		}
		location = names[0]
	}

	products, err := c.Inventory(ctx, location)
	switch {
	case errors.IsUnauthorized(err):
		return ConnectionStatus{Message: "unauthorized, invalid client id or key"}
	case err != nil:
		return ConnectionStatus{Message: err.Error()}
	}
	return ConnectionStatus{
		Success: true,
		Message: fmt.Sprintf("connected, found %d inventory items", len(products)),
		Count:   len(products),
	}
}
