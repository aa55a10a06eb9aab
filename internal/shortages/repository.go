// Package shortages fetches, filters, and mutates shortage records.
// Fetches replace the in-memory set wholesale; filtering and search are
// pure derivations that never touch the network.
package shortages

import (
	"context"
	"fmt"
	"strings"

	"github.com/angelmondragon/sallaty-client/internal/gateway"
	pkgerrors "github.com/angelmondragon/sallaty-client/pkg/errors"
	"github.com/angelmondragon/sallaty-client/pkg/logger"
	"github.com/angelmondragon/sallaty-client/pkg/models"
	"github.com/angelmondragon/sallaty-client/pkg/validate"
)

// Filter selects which slice of the shortage universe a fetch targets.
type Filter string

const (
	FilterAll           Filter = "all"
	FilterMine          Filter = "my_shortages"
	FilterRespondedByMe Filter = "responded_by_me"
)

var validFilters = []Filter{FilterAll, FilterMine, FilterRespondedByMe}

// IsValid checks whether the filter matches the canonical set.
func (f Filter) IsValid() bool {
	for _, candidate := range validFilters {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseFilter converts raw strings into Filter.
func ParseFilter(value string) (Filter, error) {
	for _, candidate := range validFilters {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid filter %q", value)
}

type shortageGateway interface {
	ListShortages(ctx context.Context, q gateway.ListQuery) ([]models.Shortage, error)
	ListMyShortages(ctx context.Context, q gateway.ListQuery) ([]models.Shortage, error)
	CreateShortage(ctx context.Context, req gateway.CreateShortageRequest) (*models.Shortage, error)
	RespondToShortage(ctx context.Context, shortageID int64, message string) error
}

// Repository exposes fetch and mutation operations over shortages.
type Repository struct {
	gw   shortageGateway
	logg *logger.Logger
}

// NewRepository wires the shortage operations.
func NewRepository(gw shortageGateway, logg *logger.Logger) (*Repository, error) {
	if gw == nil {
		return nil, fmt.Errorf("shortage gateway is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &Repository{gw: gw, logg: logg}, nil
}

// FetchAll performs exactly one fetch for the given filter. FilterMine
// hits the owner endpoint; FilterAll and FilterRespondedByMe share the
// full fetch, with the responded-by-me predicate applied later by
// Visible. The returned slice replaces any previously held set.
func (r *Repository) FetchAll(ctx context.Context, filter Filter) ([]models.Shortage, error) {
	if !filter.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid filter %q", filter))
	}
	if filter == FilterMine {
		return r.gw.ListMyShortages(ctx, gateway.ListQuery{})
	}
	return r.gw.ListShortages(ctx, gateway.ListQuery{})
}

// Respond submits an offer against a shortage. Empty or whitespace-only
// messages are rejected before any network activity. A nil return means
// the server accepted the response; the caller must refetch rather than
// splice the reply into its local set, so the displayed ordering stays
// the server's.
func (r *Repository) Respond(ctx context.Context, shortageID int64, message string) error {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "رسالة الرد مطلوبة")
	}
	return r.gw.RespondToShortage(ctx, shortageID, trimmed)
}

// CreateInput is the add-shortage form payload.
type CreateInput struct {
	ProductName string `json:"product_name" validate:"required"`
	Quantity    string `json:"quantity" validate:"required"`
	Unit        string `json:"unit" validate:"required"`
	Notes       string `json:"notes"`
}

// Create validates the form and reports a new shortage.
func (r *Repository) Create(ctx context.Context, input CreateInput) (*models.Shortage, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}
	req, err := buildCreateRequest(input)
	if err != nil {
		return nil, err
	}
	return r.gw.CreateShortage(ctx, *req)
}
