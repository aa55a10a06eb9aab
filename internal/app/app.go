// Package app wires the session, navigation, and screen state into one
// orchestrator. Screens never know about their siblings; every
// transition request goes through the central dispatcher here.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/sallaty-client/internal/nav"
	"github.com/angelmondragon/sallaty-client/internal/notifications"
	"github.com/angelmondragon/sallaty-client/internal/session"
	"github.com/angelmondragon/sallaty-client/internal/shortages"
	"github.com/angelmondragon/sallaty-client/pkg/logger"
	"github.com/angelmondragon/sallaty-client/pkg/models"
)

// Params bundles the dependencies required to build the app.
type Params struct {
	Logger        *logger.Logger
	Session       *session.Controller
	Shortages     *shortages.Repository
	Notifications *notifications.Service
	PollInterval  time.Duration
}

// App drives the whole client: one session controller, one router, and
// one model per screen.
type App struct {
	logg    *logger.Logger
	session *session.Controller
	router  *nav.Router

	Main   *MainScreen
	List   *ListScreen
	Add    *AddShortageScreen
	Notifs *NotificationsScreen
}

// New wires the application.
func New(params Params) (*App, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if params.Session == nil {
		return nil, fmt.Errorf("session controller is required")
	}
	if params.Shortages == nil {
		return nil, fmt.Errorf("shortage repository is required")
	}
	if params.Notifications == nil {
		return nil, fmt.Errorf("notification service is required")
	}
	interval := params.PollInterval
	if interval <= 0 {
		interval = 30 * time.Second
	}

	router, err := nav.NewRouter(params.Session)
	if err != nil {
		return nil, err
	}

	return &App{
		logg:    params.Logger,
		session: params.Session,
		router:  router,
		Main: &MainScreen{
			notifs:   params.Notifications,
			interval: interval,
		},
		List: &ListScreen{
			repo:     params.Shortages,
			session:  params.Session,
			Workflow: shortages.NewWorkflow(params.Shortages, params.Logger),
		},
		Add:    &AddShortageScreen{repo: params.Shortages},
		Notifs: &NotificationsScreen{notifs: params.Notifications},
	}, nil
}

// Current reports the active screen.
func (a *App) Current() nav.Screen {
	return a.router.Current()
}

// Store exposes the authenticated identity for rendering.
func (a *App) Store() *models.Store {
	return a.session.Store()
}

// Start performs the initial session check and lands on main or login
// accordingly.
func (a *App) Start(ctx context.Context) nav.Screen {
	state := a.session.Check(ctx)
	if state == session.StateAuthenticated {
		return a.NavigateTo(ctx, nav.ScreenMain)
	}
	return a.NavigateTo(ctx, nav.ScreenLogin)
}

// Login exchanges credentials and, on success, moves to the main
// screen.
func (a *App) Login(ctx context.Context, username, password string) session.LoginOutcome {
	outcome := a.session.Login(ctx, username, password)
	if outcome.Success {
		a.NavigateTo(ctx, nav.ScreenMain)
	}
	return outcome
}

// Logout drops the session and returns to the login screen. The remote
// call is fire-and-forget; the local transition always happens.
func (a *App) Logout(ctx context.Context) {
	a.session.Logout(ctx)
	a.NavigateTo(ctx, nav.ScreenLogin)
}

// NavigateTo runs the screen lifecycle around a routed transition:
// leaving main cancels its poll before the next screen mounts, and the
// screen that becomes active gets its enter hook.
func (a *App) NavigateTo(ctx context.Context, to nav.Screen) nav.Screen {
	from := a.router.Current()
	became := a.router.Navigate(to)
	if became == from {
		return became
	}

	if from == nav.ScreenMain && became != nav.ScreenMain {
		a.Main.Leave()
	}
	if from == nav.ScreenShortageList && became != nav.ScreenShortageList {
		a.List.Leave()
	}

	ctx = a.logg.WithScreen(ctx, string(became))
	switch became {
	case nav.ScreenMain:
		a.Main.Enter(ctx)
	case nav.ScreenShortageList:
		a.List.Enter(ctx)
	case nav.ScreenNotifications:
		a.Notifs.Enter(ctx)
	case nav.ScreenAddShortage:
		a.Add.Enter()
	}
	a.logg.Debug(ctx, "screen activated")
	return became
}

// Back returns to main from any inner screen.
func (a *App) Back(ctx context.Context) nav.Screen {
	return a.NavigateTo(ctx, nav.ScreenMain)
}
