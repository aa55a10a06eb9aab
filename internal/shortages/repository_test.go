package shortages

import (
	"context"
	"testing"

	"github.com/angelmondragon/sallaty-client/internal/gateway"
	pkgerrors "github.com/angelmondragon/sallaty-client/pkg/errors"
	"github.com/angelmondragon/sallaty-client/pkg/logger"
	"github.com/angelmondragon/sallaty-client/pkg/models"
)

type fakeShortageGateway struct {
	listCalls    int
	listMineCall int
	respondCalls int
	createCalls  int

	listFn    func(ctx context.Context) ([]models.Shortage, error)
	respondFn func(ctx context.Context, shortageID int64, message string) error
	createFn  func(ctx context.Context, req gateway.CreateShortageRequest) (*models.Shortage, error)
}

func (f *fakeShortageGateway) ListShortages(ctx context.Context, q gateway.ListQuery) ([]models.Shortage, error) {
	f.listCalls++
	if f.listFn != nil {
		return f.listFn(ctx)
	}
	return nil, nil
}

func (f *fakeShortageGateway) ListMyShortages(ctx context.Context, q gateway.ListQuery) ([]models.Shortage, error) {
	f.listMineCall++
	return nil, nil
}

func (f *fakeShortageGateway) CreateShortage(ctx context.Context, req gateway.CreateShortageRequest) (*models.Shortage, error) {
	f.createCalls++
	if f.createFn != nil {
		return f.createFn(ctx, req)
	}
	return &models.Shortage{ID: 42}, nil
}

func (f *fakeShortageGateway) RespondToShortage(ctx context.Context, shortageID int64, message string) error {
	f.respondCalls++
	if f.respondFn != nil {
		return f.respondFn(ctx, shortageID, message)
	}
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "shortages-test", Level: logger.ParseLevel("error")})
}

func newRepository(t *testing.T, gw shortageGateway) *Repository {
	t.Helper()
	repo, err := NewRepository(gw, testLogger())
	if err != nil {
		t.Fatalf("unexpected constructor error: %v", err)
	}
	return repo
}

func TestFetchAll_EndpointSelection(t *testing.T) {
	gw := &fakeShortageGateway{}
	repo := newRepository(t, gw)
	ctx := context.Background()

	if _, err := repo.FetchAll(ctx, FilterAll); err != nil {
		t.Fatalf("unexpected fetch error: %v", err)
	}
	if _, err := repo.FetchAll(ctx, FilterRespondedByMe); err != nil {
		t.Fatalf("unexpected fetch error: %v", err)
	}
	if gw.listCalls != 2 || gw.listMineCall != 0 {
		t.Fatalf("all and responded_by_me must share the full fetch, got list=%d mine=%d", gw.listCalls, gw.listMineCall)
	}

	if _, err := repo.FetchAll(ctx, FilterMine); err != nil {
		t.Fatalf("unexpected fetch error: %v", err)
	}
	if gw.listMineCall != 1 {
		t.Fatalf("my_shortages must hit the owner endpoint, got %d calls", gw.listMineCall)
	}
}

func TestFetchAll_RejectsUnknownFilter(t *testing.T) {
	gw := &fakeShortageGateway{}
	repo := newRepository(t, gw)

	if _, err := repo.FetchAll(context.Background(), Filter("newest")); err == nil {
		t.Fatal("expected error for unknown filter")
	}
	if gw.listCalls+gw.listMineCall != 0 {
		t.Fatal("unknown filter must not reach the network")
	}
}

func TestRespond_BlankMessageNeverReachesNetwork(t *testing.T) {
	gw := &fakeShortageGateway{}
	repo := newRepository(t, gw)

	for _, message := range []string{"", "   ", "\t\n"} {
		err := repo.Respond(context.Background(), 1, message)
		if err == nil {
			t.Fatalf("expected validation error for %q", message)
		}
		if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation code, got %v", err)
		}
	}
	if gw.respondCalls != 0 {
		t.Fatalf("blank messages must not issue network calls, got %d", gw.respondCalls)
	}
}

func TestRespond_TrimsMessage(t *testing.T) {
	var sent string
	gw := &fakeShortageGateway{
		respondFn: func(ctx context.Context, shortageID int64, message string) error {
			sent = message
			return nil
		},
	}
	repo := newRepository(t, gw)

	if err := repo.Respond(context.Background(), 1, "  متوفر غدًا  "); err != nil {
		t.Fatalf("unexpected respond error: %v", err)
	}
	if sent != "متوفر غدًا" {
		t.Fatalf("expected trimmed message, got %q", sent)
	}
}

func TestCreate_ValidInput(t *testing.T) {
	gw := &fakeShortageGateway{
		createFn: func(ctx context.Context, req gateway.CreateShortageRequest) (*models.Shortage, error) {
			if req.ProductName != "أرز بسمتي" {
				t.Fatalf("unexpected product name %q", req.ProductName)
			}
			if req.Quantity.String() != "50" {
				t.Fatalf("unexpected quantity %s", req.Quantity)
			}
			if string(req.Unit) != "كيلو" {
				t.Fatalf("unexpected unit %q", req.Unit)
			}
			return &models.Shortage{ID: 7}, nil
		},
	}
	repo := newRepository(t, gw)

	created, err := repo.Create(context.Background(), CreateInput{
		ProductName: "أرز بسمتي",
		Quantity:    "50",
		Unit:        "كيلو",
	})
	if err != nil {
		t.Fatalf("unexpected create error: %v", err)
	}
	if created == nil || created.ID != 7 {
		t.Fatalf("expected created shortage, got %+v", created)
	}
}

func TestCreate_RejectsBadInput(t *testing.T) {
	gw := &fakeShortageGateway{}
	repo := newRepository(t, gw)
	ctx := context.Background()

	cases := []CreateInput{
		{Quantity: "50", Unit: "كيلو"},                             // missing product
		{ProductName: "أرز", Quantity: "abc", Unit: "كيلو"},        // unparseable quantity
		{ProductName: "أرز", Quantity: "0", Unit: "كيلو"},          // non-positive quantity
		{ProductName: "أرز", Quantity: "-3", Unit: "كيلو"},         // negative quantity
		{ProductName: "أرز", Quantity: "50", Unit: "kilogram"},     // unit outside the vocabulary
	}
	for i, input := range cases {
		_, err := repo.Create(ctx, input)
		if err == nil {
			t.Fatalf("case %d: expected validation error", i)
		}
		if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
			t.Fatalf("case %d: expected validation code, got %v", i, err)
		}
	}
	if gw.createCalls != 0 {
		t.Fatalf("invalid input must not reach the network, got %d calls", gw.createCalls)
	}
}
