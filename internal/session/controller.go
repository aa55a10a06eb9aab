// Package session tracks the client's authenticated identity for the
// lifetime of the running process.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/angelmondragon/sallaty-client/internal/gateway"
	pkgerrors "github.com/angelmondragon/sallaty-client/pkg/errors"
	"github.com/angelmondragon/sallaty-client/pkg/logger"
	"github.com/angelmondragon/sallaty-client/pkg/models"
)

// State is the session lifecycle position.
type State string

const (
	StateChecking      State = "checking"
	StateAuthenticated State = "authenticated"
	StateAnonymous     State = "anonymous"
)

// FallbackLoginMessage is shown when a login fails without a
// server-supplied reason.
const FallbackLoginMessage = "فشل تسجيل الدخول. يرجى التحقق من اسم المستخدم وكلمة المرور."

type sessionGateway interface {
	CheckSession(ctx context.Context) (*gateway.SessionCheck, error)
	Login(ctx context.Context, username, password string) (*gateway.LoginResult, error)
	Logout(ctx context.Context) error
}

// LoginOutcome is what the login screen shows the user.
type LoginOutcome struct {
	Success bool
	Message string
}

// Controller is the session state machine. Session mutations (check,
// login, logout) are serialized: a new one is not issued while another
// is still in flight.
type Controller struct {
	gw   sessionGateway
	logg *logger.Logger

	opMu sync.Mutex

	mu    sync.RWMutex
	state State
	store *models.Store
}

// NewController builds a session controller starting in the checking
// state.
func NewController(gw sessionGateway, logg *logger.Logger) (*Controller, error) {
	if gw == nil {
		return nil, fmt.Errorf("session gateway is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &Controller{gw: gw, logg: logg, state: StateChecking}, nil
}

// State reports the current lifecycle position.
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Store returns the authenticated identity, or nil when anonymous.
func (c *Controller) Store() *models.Store {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.store
}

// Check asks the service whether the held cookie still maps to an
// active session. Any error lands in the anonymous state.
func (c *Controller) Check(ctx context.Context) State {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.transition(StateChecking, nil)

	result, err := c.gw.CheckSession(ctx)
	if err != nil {
		c.logg.Error(ctx, "session check failed", err)
		return c.transition(StateAnonymous, nil)
	}
	if !result.LoggedIn || result.Store == nil {
		return c.transition(StateAnonymous, nil)
	}
	return c.transition(StateAuthenticated, result.Store)
}

// Login exchanges credentials for a session. On failure the state stays
// anonymous and the outcome carries the server's reason, or the fixed
// fallback when none was supplied.
func (c *Controller) Login(ctx context.Context, username, password string) LoginOutcome {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	result, err := c.gw.Login(ctx, username, password)
	if err != nil {
		c.transition(StateAnonymous, nil)
		return LoginOutcome{Success: false, Message: failureMessage(err)}
	}
	if !result.Success || result.Store == nil {
		c.transition(StateAnonymous, nil)
		message := result.Message
		if message == "" {
			message = FallbackLoginMessage
		}
		return LoginOutcome{Success: false, Message: message}
	}

	c.transition(StateAuthenticated, result.Store)
	c.logg.Info(c.logg.WithStoreID(ctx, result.Store.ID), "logged in")
	return LoginOutcome{Success: true}
}

// Logout tells the service to drop the session and transitions to
// anonymous regardless of the answer; a remote failure is logged, never
// allowed to block the local transition.
func (c *Controller) Logout(ctx context.Context) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if err := c.gw.Logout(ctx); err != nil {
		c.logg.Error(ctx, "logout call failed", err)
	}
	c.transition(StateAnonymous, nil)
}

func (c *Controller) transition(state State, store *models.Store) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = state
	c.store = store
	return state
}

func failureMessage(err error) string {
	if typed := pkgerrors.As(err); typed != nil && typed.Message() != "" {
		return typed.Message()
	}
	return FallbackLoginMessage
}
