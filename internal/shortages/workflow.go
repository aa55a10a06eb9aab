package shortages

import (
	"context"
	"strings"
	"sync"

	pkgerrors "github.com/angelmondragon/sallaty-client/pkg/errors"
	"github.com/angelmondragon/sallaty-client/pkg/logger"
	"github.com/angelmondragon/sallaty-client/pkg/models"
)

// SuccessAck is surfaced after an accepted response submission.
const SuccessAck = "تم إرسال الرد بنجاح!"

// ErrSubmitInFlight guards against double-submit while a submission is
// still outstanding.
var ErrSubmitInFlight = pkgerrors.New(pkgerrors.CodeValidation, "جاري الإرسال...")

type responder interface {
	Respond(ctx context.Context, shortageID int64, message string) error
}

// Workflow is the dialog-scoped respond-to-shortage interaction. It is
// keyed to exactly one target at a time: opening a new target discards
// any draft written for the previous one.
type Workflow struct {
	repo responder
	logg *logger.Logger

	mu       sync.Mutex
	target   *models.Shortage
	draft    string
	inFlight bool
}

// NewWorkflow builds a closed response workflow.
func NewWorkflow(repo responder, logg *logger.Logger) *Workflow {
	return &Workflow{repo: repo, logg: logg}
}

// Open targets the workflow at a shortage and clears the draft.
func (w *Workflow) Open(shortage models.Shortage) {
	w.mu.Lock()
	defer w.mu.Unlock()
	s := shortage
	w.target = &s
	w.draft = ""
}

// Close discards the target and draft.
func (w *Workflow) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.target = nil
	w.draft = ""
}

// Target returns the currently selected shortage, nil when closed.
func (w *Workflow) Target() *models.Shortage {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.target
}

// Draft returns the in-progress message.
func (w *Workflow) Draft() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft
}

// SetDraft replaces the in-progress message.
func (w *Workflow) SetDraft(message string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft = message
}

// CanSubmit reports whether submission is currently allowed: a target
// is open, the draft is not blank, and no submission is in flight.
func (w *Workflow) CanSubmit() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.target != nil && strings.TrimSpace(w.draft) != "" && !w.inFlight
}

// Submit sends the draft. On success the dialog closes and the caller
// must refetch the list; on failure the dialog stays open with the
// draft retained so the actor can retry without retyping.
func (w *Workflow) Submit(ctx context.Context) error {
	w.mu.Lock()
	if w.target == nil {
		w.mu.Unlock()
		return pkgerrors.New(pkgerrors.CodeValidation, "لم يتم اختيار نقص")
	}
	if w.inFlight {
		w.mu.Unlock()
		return ErrSubmitInFlight
	}
	if strings.TrimSpace(w.draft) == "" {
		w.mu.Unlock()
		return pkgerrors.New(pkgerrors.CodeValidation, "رسالة الرد مطلوبة")
	}
	shortageID := w.target.ID
	draft := w.draft
	w.inFlight = true
	w.mu.Unlock()

	err := w.repo.Respond(ctx, shortageID, draft)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.inFlight = false
	if err != nil {
		return err
	}
	w.target = nil
	w.draft = ""
	return nil
}
