// Package gateway is the client's HTTP transport to the record API.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/luma/gallery/internal/core/domain"
)

const defaultTimeout = 10 * time.Second

// ErrUnexpectedStatus wraps every non-2xx response.
var ErrUnexpectedStatus = errors.New("unexpected status")

// Client calls the record API under a base URL such as
// http://localhost:5000/api.
type Client struct {
	http   *resty.Client
	logger zerolog.Logger
}

// New returns a Client. A zero timeout falls back to the default.
func New(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	http := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	return &Client{http: http, logger: logger}
}

// ListUsers fetches every user. Records that do not fit domain.User are
// skipped.
func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	resp, err := c.http.R().SetContext(ctx).Get("/users")
	if err := check(resp, err, "list users"); err != nil {
		return nil, err
	}
	return decodeEach[domain.User](resp.Body(), c.logger, "user")
}

// AddUser posts u and returns the record the server stored, including its
// server-assigned id.
func (c *Client) AddUser(ctx context.Context, u domain.User) (domain.User, error) {
	var out domain.User
	resp, err := c.http.R().SetContext(ctx).SetBody(withOrders(u)).SetResult(&out).ForceContentType("application/json").Post("/users")
	if err := check(resp, err, "add user"); err != nil {
		return domain.User{}, err
	}
	return out, nil
}

// UpdateUser sends the whole user to PUT /users/{id}.
func (c *Client) UpdateUser(ctx context.Context, u domain.User) (domain.User, error) {
	var out domain.User
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("id", strconv.FormatInt(u.ID, 10)).
		SetBody(withOrders(u)).
		SetResult(&out).
		ForceContentType("application/json").
		Put("/users/{id}")
	if err := check(resp, err, "update user"); err != nil {
		return domain.User{}, err
	}
	return out, nil
}

// ListArtworks fetches the artwork collection, newest first.
func (c *Client) ListArtworks(ctx context.Context) ([]domain.Artwork, error) {
	resp, err := c.http.R().SetContext(ctx).Get("/art")
	if err := check(resp, err, "list artworks"); err != nil {
		return nil, err
	}
	return decodeEach[domain.Artwork](resp.Body(), c.logger, "artwork")
}

func (c *Client) AddArtwork(ctx context.Context, a domain.Artwork) (domain.Artwork, error) {
	var out domain.Artwork
	resp, err := c.http.R().SetContext(ctx).SetBody(a).SetResult(&out).ForceContentType("application/json").Post("/art")
	if err := check(resp, err, "add artwork"); err != nil {
		return domain.Artwork{}, err
	}
	return out, nil
}

func (c *Client) DeleteArtwork(ctx context.Context, id int64) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		Delete("/art/{id}")
	return check(resp, err, "delete artwork")
}

func check(resp *resty.Response, err error, op string) error {
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if resp.IsError() {
		return fmt.Errorf("%s: %w %d", op, ErrUnexpectedStatus, resp.StatusCode())
	}
	return nil
}

// withOrders sends an empty array rather than null for a user without orders.
func withOrders(u domain.User) domain.User {
	if u.Orders == nil {
		u.Orders = []domain.Order{}
	}
	return u
}

func decodeEach[T any](body []byte, logger zerolog.Logger, kind string) ([]T, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode %s list: %w", kind, err)
	}
	out := make([]T, 0, len(raw))
	for i, r := range raw {
		var v T
		if err := json.Unmarshal(r, &v); err != nil {
			logger.Warn().Err(err).Int("index", i).Str("kind", kind).Msg("skipping malformed record")
			continue
		}
		out = append(out, v)
	}
	return out, nil
}
