package apiclient

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"autoshop/internal/domain/auth"
	"autoshop/internal/domain/bundle"
	"autoshop/internal/domain/catalog"
	"autoshop/internal/domain/inventory"
	"autoshop/internal/domain/refund"
	"autoshop/internal/pkg/listing"
)

// Login signs in and stores the access token on the session.
func (c *Client) Login(ctx context.Context, email, password string) (*auth.LoginResponse, error) {
	var out auth.LoginResponse
	if err := c.post(ctx, c.authURL, "/auth/login", auth.LoginRequest{Email: email, Password: password}, &out); err != nil {
		return nil, err
	}
	c.session.Set(out.AccessToken)
	return &out, nil
}

// AuthStatus asks the server who the session belongs to. A 401 yields
// Authenticated=false and no error.
func (c *Client) AuthStatus(ctx context.Context) (*auth.StatusResponse, error) {
	if !c.session.Valid() {
		c.session.Invalidate()
		return &auth.StatusResponse{}, nil
	}
	var out auth.StatusResponse
	if err := c.get(ctx, c.authURL, "/auth/me", &out); err != nil {
		var rf *RequestFailedError
		if errors.As(err, &rf) && rf.StatusCode == http.StatusUnauthorized {
			return &auth.StatusResponse{}, nil
		}
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListRefunds(ctx context.Context, q listing.Query) (*listing.Result[refund.Booking], error) {
	var out listing.Result[refund.Booking]
	if err := c.get(ctx, c.apiURL, "/admin/refunds"+encode(q), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) TransitionRefund(ctx context.Context, id int64, to refund.Status) (*refund.Booking, error) {
	var out refund.Booking
	path := "/admin/refunds/" + strconv.FormatInt(id, 10) + "/transition"
	if err := c.post(ctx, c.apiURL, path, refund.TransitionRequest{Status: to}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) QuotePackage(ctx context.Context, req bundle.QuoteRequest) (*bundle.Quote, error) {
	var out bundle.Quote
	if err := c.post(ctx, c.apiURL, "/packages/quote", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListServices(ctx context.Context, q listing.Query) (*listing.Result[catalog.RepairService], error) {
	var out listing.Result[catalog.RepairService]
	if err := c.get(ctx, c.apiURL, "/services"+encode(q), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListParts(ctx context.Context, q listing.Query) (*listing.Result[inventory.View], error) {
	var out listing.Result[inventory.View]
	if err := c.get(ctx, c.apiURL, "/parts"+encode(q), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func encode(q listing.Query) string {
	if v := q.Values().Encode(); v != "" {
		return "?" + v
	}
	return ""
}
