// Package nav is the finite-state screen router. Screens ask for
// transitions; the router decides what is actually reachable.
package nav

import (
	"fmt"

	"github.com/angelmondragon/sallaty-client/internal/session"
)

// Screen identifies one of the client's fixed screens.
type Screen string

const (
	ScreenLogin         Screen = "login"
	ScreenMain          Screen = "main"
	ScreenAddShortage   Screen = "add-shortage"
	ScreenShortageList  Screen = "shortage-list"
	ScreenNotifications Screen = "notifications"
)

var validScreens = []Screen{
	ScreenLogin,
	ScreenMain,
	ScreenAddShortage,
	ScreenShortageList,
	ScreenNotifications,
}

// IsValid checks whether the screen is part of the fixed set.
func (s Screen) IsValid() bool {
	for _, candidate := range validScreens {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseScreen converts raw strings into Screen.
func ParseScreen(value string) (Screen, error) {
	for _, candidate := range validScreens {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid screen %q", value)
}

// Each screen may only request the transitions it is designed to link
// to. There is no history stack: back always means main.
var allowedTransitions = map[Screen][]Screen{
	ScreenLogin:         {ScreenMain},
	ScreenMain:          {ScreenAddShortage, ScreenShortageList, ScreenNotifications, ScreenLogin},
	ScreenAddShortage:   {ScreenMain},
	ScreenShortageList:  {ScreenMain},
	ScreenNotifications: {ScreenMain},
}

type sessionState interface {
	State() session.State
}

// Router holds the active screen and applies the transition rules.
type Router struct {
	session sessionState
	current Screen
}

// NewRouter starts on the login screen.
func NewRouter(sess sessionState) (*Router, error) {
	if sess == nil {
		return nil, fmt.Errorf("session state is required")
	}
	return &Router{session: sess, current: ScreenLogin}, nil
}

// Current reports the active screen.
func (r *Router) Current() Screen {
	return r.current
}

// Navigate applies a transition request and returns the screen that
// actually became active. Every screen except login requires an
// authenticated session; unknown or unroutable requests fall back to
// login.
func (r *Router) Navigate(to Screen) Screen {
	if !to.IsValid() {
		r.current = ScreenLogin
		return r.current
	}
	if to != ScreenLogin && r.session.State() != session.StateAuthenticated {
		r.current = ScreenLogin
		return r.current
	}
	if !r.transitionAllowed(to) {
		r.current = ScreenLogin
		return r.current
	}
	r.current = to
	return r.current
}

// Back returns to main from any inner screen.
func (r *Router) Back() Screen {
	return r.Navigate(ScreenMain)
}

func (r *Router) transitionAllowed(to Screen) bool {
	if to == r.current {
		return true
	}
	for _, candidate := range allowedTransitions[r.current] {
		if candidate == to {
			return true
		}
	}
	return false
}
