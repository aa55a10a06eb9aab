package app

import (
	"context"
	"sync"
	"time"

	"github.com/angelmondragon/sallaty-client/internal/notifications"
	"github.com/angelmondragon/sallaty-client/internal/shortages"
	pkgerrors "github.com/angelmondragon/sallaty-client/pkg/errors"
	"github.com/angelmondragon/sallaty-client/pkg/models"
)

// MainScreen owns the unread badge and the background count poll. The
// poll runs only while the screen is mounted; leaving the screen stops
// it before anything else happens.
type MainScreen struct {
	notifs   *notifications.Service
	interval time.Duration

	mu      sync.Mutex
	mounted bool
	unread  int
	handle  *notifications.PollHandle
}

func (m *MainScreen) Enter(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.mounted {
		return
	}
	m.mounted = true
	m.handle = m.notifs.PollUnread(ctx, m.interval, m.setUnread)
}

func (m *MainScreen) Leave() {
	m.mu.Lock()
	handle := m.handle
	m.mounted = false
	m.handle = nil
	m.mu.Unlock()

	if handle != nil {
		handle.Stop()
	}
}

func (m *MainScreen) setUnread(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.mounted {
		return
	}
	m.unread = count
}

// UnreadCount returns the last delivered badge value.
func (m *MainScreen) UnreadCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.unread
}

type storeProvider interface {
	Store() *models.Store
}

// ListScreen holds the shortage-list state: the raw fetched set, the
// active filter, the search term, and the response dialog. The
// displayed set is always derived, never stored.
type ListScreen struct {
	repo    *shortages.Repository
	session storeProvider

	Workflow *shortages.Workflow

	mu      sync.Mutex
	gen     int
	mounted bool
	raw     []models.Shortage
	filter  shortages.Filter
	search  string
	loading bool
	errText string
}

func (l *ListScreen) Enter(ctx context.Context) {
	l.mu.Lock()
	l.mounted = true
	l.gen++
	l.raw = nil
	l.filter = shortages.FilterAll
	l.search = ""
	l.errText = ""
	l.mu.Unlock()

	l.Workflow.Close()
	l.refresh(ctx)
}

func (l *ListScreen) Leave() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.mounted = false
	l.gen++
}

// Refresh refetches the current filter's set and replaces the raw set.
func (l *ListScreen) Refresh(ctx context.Context) {
	l.refresh(ctx)
}

func (l *ListScreen) refresh(ctx context.Context) {
	l.mu.Lock()
	gen := l.gen
	filter := l.filter
	l.loading = true
	l.errText = ""
	l.mu.Unlock()

	items, err := l.repo.FetchAll(ctx, filter)

	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.gen || !l.mounted {
		// The screen was left while the fetch was in flight; the
		// answer is discarded rather than applied to whatever screen
		// is active now.
		return
	}
	l.loading = false
	if err != nil {
		l.errText = pkgerrors.UserMessage(err)
		return
	}
	l.raw = items
}

// SetFilter switches the filter type. Only an actual change triggers a
// refetch; re-selecting the active filter is a no-op.
func (l *ListScreen) SetFilter(ctx context.Context, filter shortages.Filter) error {
	if !filter.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid filter")
	}
	l.mu.Lock()
	if filter == l.filter {
		l.mu.Unlock()
		return nil
	}
	l.filter = filter
	l.mu.Unlock()

	l.refresh(ctx)
	return nil
}

// SetSearch updates the search term. Searching is a pure derivation
// over the already-fetched set and never touches the network.
func (l *ListScreen) SetSearch(term string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.search = term
}

// Filter reports the active filter type.
func (l *ListScreen) Filter() shortages.Filter {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.filter
}

// Loading reports whether a fetch is outstanding.
func (l *ListScreen) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loading
}

// ErrText returns the inline error replacing the list, if any.
func (l *ListScreen) ErrText() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.errText
}

// Visible derives the displayed set from the raw set, the filter, the
// search term, and the viewing store.
func (l *ListScreen) Visible() []models.Shortage {
	l.mu.Lock()
	raw := l.raw
	filter := l.filter
	search := l.search
	l.mu.Unlock()

	var viewerID int64
	if store := l.session.Store(); store != nil {
		viewerID = store.ID
	}
	return shortages.Visible(raw, filter, search, viewerID)
}

// CanRespond reports whether the respond action is offered to the
// current viewer for the given shortage.
func (l *ListScreen) CanRespond(shortage models.Shortage) bool {
	store := l.session.Store()
	if store == nil {
		return false
	}
	return shortages.CanRespond(shortage, store.ID)
}

// SubmitResponse drives the dialog submission; on success the list is
// refetched so the displayed ordering is the server's.
func (l *ListScreen) SubmitResponse(ctx context.Context) error {
	if err := l.Workflow.Submit(ctx); err != nil {
		return err
	}
	l.refresh(ctx)
	return nil
}

// NotificationsScreen holds the notification feed state.
type NotificationsScreen struct {
	notifs *notifications.Service

	mu      sync.Mutex
	items   []models.Notification
	errText string
}

func (n *NotificationsScreen) Enter(ctx context.Context) {
	n.Refresh(ctx)
}

// Refresh replaces the feed with a fresh fetch.
func (n *NotificationsScreen) Refresh(ctx context.Context) {
	items, err := n.notifs.List(ctx)

	n.mu.Lock()
	defer n.mu.Unlock()
	if err != nil {
		n.errText = pkgerrors.UserMessage(err)
		return
	}
	n.errText = ""
	n.items = items
}

// MarkRead flips one notification on the server and swaps in the
// refetched feed.
func (n *NotificationsScreen) MarkRead(ctx context.Context, notificationID int64) error {
	items, err := n.notifs.MarkRead(ctx, notificationID)
	if err != nil {
		return err
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.items = items
	return nil
}

// Items returns the currently held feed.
func (n *NotificationsScreen) Items() []models.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.items
}

// ErrText returns the inline fetch error, if any.
func (n *NotificationsScreen) ErrText() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.errText
}

// AddShortageScreen holds the add-shortage form.
type AddShortageScreen struct {
	repo *shortages.Repository

	Input shortages.CreateInput
}

func (a *AddShortageScreen) Enter() {
	a.Input = shortages.CreateInput{}
}

// Submit reports the shortage. On success the text fields are cleared
// for the next entry; on failure they are kept so the actor can fix and
// retry.
func (a *AddShortageScreen) Submit(ctx context.Context) (*models.Shortage, error) {
	created, err := a.repo.Create(ctx, a.Input)
	if err != nil {
		return nil, err
	}
	unit := a.Input.Unit
	a.Input = shortages.CreateInput{Unit: unit}
	return created, nil
}
