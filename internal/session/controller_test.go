package session

import (
	"context"
	"errors"
	"testing"

	"github.com/angelmondragon/sallaty-client/internal/gateway"
	pkgerrors "github.com/angelmondragon/sallaty-client/pkg/errors"
	"github.com/angelmondragon/sallaty-client/pkg/logger"
	"github.com/angelmondragon/sallaty-client/pkg/models"
)

type fakeGateway struct {
	checkFn  func(ctx context.Context) (*gateway.SessionCheck, error)
	loginFn  func(ctx context.Context, username, password string) (*gateway.LoginResult, error)
	logoutFn func(ctx context.Context) error
}

func (f *fakeGateway) CheckSession(ctx context.Context) (*gateway.SessionCheck, error) {
	if f.checkFn != nil {
		return f.checkFn(ctx)
	}
	return &gateway.SessionCheck{}, nil
}

func (f *fakeGateway) Login(ctx context.Context, username, password string) (*gateway.LoginResult, error) {
	if f.loginFn != nil {
		return f.loginFn(ctx, username, password)
	}
	return &gateway.LoginResult{}, nil
}

func (f *fakeGateway) Logout(ctx context.Context) error {
	if f.logoutFn != nil {
		return f.logoutFn(ctx)
	}
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "session-test", Level: logger.ParseLevel("error")})
}

func newController(t *testing.T, gw sessionGateway) *Controller {
	t.Helper()
	ctrl, err := NewController(gw, testLogger())
	if err != nil {
		t.Fatalf("unexpected constructor error: %v", err)
	}
	return ctrl
}

func TestCheck_ActiveSession(t *testing.T) {
	store := &models.Store{ID: 5, Username: "متجر الريف"}
	ctrl := newController(t, &fakeGateway{
		checkFn: func(ctx context.Context) (*gateway.SessionCheck, error) {
			return &gateway.SessionCheck{LoggedIn: true, Store: store}, nil
		},
	})

	if got := ctrl.Check(context.Background()); got != StateAuthenticated {
		t.Fatalf("expected authenticated state, got %s", got)
	}
	if ctrl.Store() == nil || ctrl.Store().ID != 5 {
		t.Fatalf("expected store identity to be held, got %+v", ctrl.Store())
	}
}

func TestCheck_NoSession(t *testing.T) {
	ctrl := newController(t, &fakeGateway{
		checkFn: func(ctx context.Context) (*gateway.SessionCheck, error) {
			return &gateway.SessionCheck{LoggedIn: false}, nil
		},
	})

	if got := ctrl.Check(context.Background()); got != StateAnonymous {
		t.Fatalf("expected anonymous state, got %s", got)
	}
	if ctrl.Store() != nil {
		t.Fatalf("expected no store identity, got %+v", ctrl.Store())
	}
}

func TestCheck_ErrorLandsAnonymous(t *testing.T) {
	ctrl := newController(t, &fakeGateway{
		checkFn: func(ctx context.Context) (*gateway.SessionCheck, error) {
			return nil, pkgerrors.New(pkgerrors.CodeTransport, "connection refused")
		},
	})

	if got := ctrl.Check(context.Background()); got != StateAnonymous {
		t.Fatalf("expected anonymous state after error, got %s", got)
	}
}

func TestLogin_Success(t *testing.T) {
	store := &models.Store{ID: 9, Username: "متجر المدينة"}
	ctrl := newController(t, &fakeGateway{
		loginFn: func(ctx context.Context, username, password string) (*gateway.LoginResult, error) {
			return &gateway.LoginResult{Success: true, Store: store}, nil
		},
	})

	outcome := ctrl.Login(context.Background(), "متجر المدينة", "secret")
	if !outcome.Success {
		t.Fatalf("expected successful login, got %+v", outcome)
	}
	if ctrl.State() != StateAuthenticated {
		t.Fatalf("expected authenticated state, got %s", ctrl.State())
	}
}

func TestLogin_ServerMessagePassedThrough(t *testing.T) {
	ctrl := newController(t, &fakeGateway{
		loginFn: func(ctx context.Context, username, password string) (*gateway.LoginResult, error) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "بيانات الدخول غير صحيحة")
		},
	})

	outcome := ctrl.Login(context.Background(), "x", "y")
	if outcome.Success {
		t.Fatal("expected failed login")
	}
	if outcome.Message != "بيانات الدخول غير صحيحة" {
		t.Fatalf("expected server message verbatim, got %q", outcome.Message)
	}
	if ctrl.State() != StateAnonymous {
		t.Fatalf("expected anonymous state, got %s", ctrl.State())
	}
}

func TestLogin_FallbackMessage(t *testing.T) {
	ctrl := newController(t, &fakeGateway{
		loginFn: func(ctx context.Context, username, password string) (*gateway.LoginResult, error) {
			return nil, errors.New("boom")
		},
	})

	outcome := ctrl.Login(context.Background(), "x", "y")
	if outcome.Message != FallbackLoginMessage {
		t.Fatalf("expected fallback message, got %q", outcome.Message)
	}
}

func TestLogout_FireAndForget(t *testing.T) {
	store := &models.Store{ID: 5, Username: "متجر الريف"}
	calls := 0
	ctrl := newController(t, &fakeGateway{
		checkFn: func(ctx context.Context) (*gateway.SessionCheck, error) {
			return &gateway.SessionCheck{LoggedIn: true, Store: store}, nil
		},
		logoutFn: func(ctx context.Context) error {
			calls++
			return errors.New("network down")
		},
	})

	ctrl.Check(context.Background())
	ctrl.Logout(context.Background())

	if calls != 1 {
		t.Fatalf("expected one logout call, got %d", calls)
	}
	if ctrl.State() != StateAnonymous {
		t.Fatalf("logout failure must not block the transition, state=%s", ctrl.State())
	}
	if ctrl.Store() != nil {
		t.Fatalf("expected identity cleared, got %+v", ctrl.Store())
	}
}
