package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/sallaty-client/pkg/enums"
	"github.com/angelmondragon/sallaty-client/pkg/models"
)

// SessionCheck is the answer to GET /check-session.
type SessionCheck struct {
	LoggedIn bool          `json:"logged_in"`
	Store    *models.Store `json:"store,omitempty"`
}

// LoginResult is the answer to POST /login.
type LoginResult struct {
	Success bool          `json:"success"`
	Store   *models.Store `json:"store,omitempty"`
	Message string        `json:"message,omitempty"`
}

// RegisterRequest is the store registration payload.
type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

// RegisterResult confirms the created store.
type RegisterResult struct {
	Success bool          `json:"success"`
	Store   *models.Store `json:"store,omitempty"`
	Message string        `json:"message,omitempty"`
}

// CreateShortageRequest is the payload for POST /shortages.
type CreateShortageRequest struct {
	ProductName string          `json:"product_name" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        enums.Unit      `json:"unit" validate:"required"`
	Notes       string          `json:"notes"`
}

// ListQuery carries the optional filter/pagination params accepted by
// the list endpoints. The zero value sends no query string at all.
type ListQuery struct {
	Limit  int
	Offset int
}

func (q ListQuery) encode() string {
	values := url.Values{}
	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		values.Set("offset", strconv.Itoa(q.Offset))
	}
	if len(values) == 0 {
		return ""
	}
	return "?" + values.Encode()
}

// Login exchanges credentials for an authenticated session cookie.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	body := map[string]string{"username": username, "password": password}
	var out LoginResult
	if err := c.do(ctx, http.MethodPost, "/login", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout ends the server-side session.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/logout", nil, nil)
}

// CheckSession reports whether the held cookie still maps to an active
// session, and for whom.
func (c *Client) CheckSession(ctx context.Context) (*SessionCheck, error) {
	var out SessionCheck
	if err := c.do(ctx, http.MethodGet, "/check-session", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates a new store account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*RegisterResult, error) {
	var out RegisterResult
	if err := c.do(ctx, http.MethodPost, "/register", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListShortages fetches every open shortage visible to the store.
func (c *Client) ListShortages(ctx context.Context, q ListQuery) ([]models.Shortage, error) {
	var out struct {
		Shortages []models.Shortage `json:"shortages"`
	}
	if err := c.do(ctx, http.MethodGet, "/shortages"+q.encode(), nil, &out); err != nil {
		return nil, err
	}
	return out.Shortages, nil
}

// ListMyShortages fetches only the shortages owned by the session store.
func (c *Client) ListMyShortages(ctx context.Context, q ListQuery) ([]models.Shortage, error) {
	var out struct {
		Shortages []models.Shortage `json:"shortages"`
	}
	if err := c.do(ctx, http.MethodGet, "/my-shortages"+q.encode(), nil, &out); err != nil {
		return nil, err
	}
	return out.Shortages, nil
}

// CreateShortage reports a new missing product.
func (c *Client) CreateShortage(ctx context.Context, req CreateShortageRequest) (*models.Shortage, error) {
	var out struct {
		Shortage *models.Shortage `json:"shortage"`
	}
	if err := c.do(ctx, http.MethodPost, "/shortages", req, &out); err != nil {
		return nil, err
	}
	return out.Shortage, nil
}

// RespondToShortage submits an offer against another store's shortage.
func (c *Client) RespondToShortage(ctx context.Context, shortageID int64, message string) error {
	body := map[string]string{"message": message}
	endpoint := fmt.Sprintf("/shortages/%d/respond", shortageID)
	return c.do(ctx, http.MethodPost, endpoint, body, nil)
}

// ListNotifications fetches the store's notification feed.
func (c *Client) ListNotifications(ctx context.Context, q ListQuery) ([]models.Notification, error) {
	var out struct {
		Notifications []models.Notification `json:"notifications"`
	}
	if err := c.do(ctx, http.MethodGet, "/notifications"+q.encode(), nil, &out); err != nil {
		return nil, err
	}
	return out.Notifications, nil
}

// MarkNotificationRead flips one notification to read on the server.
func (c *Client) MarkNotificationRead(ctx context.Context, notificationID int64) error {
	endpoint := fmt.Sprintf("/notifications/%d/read", notificationID)
	return c.do(ctx, http.MethodPost, endpoint, nil, nil)
}

// UnreadCount fetches the number of unread notifications.
func (c *Client) UnreadCount(ctx context.Context) (int, error) {
	var out struct {
		Count int `json:"count"`
	}
	if err := c.do(ctx, http.MethodGet, "/notifications/unread-count", nil, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}
