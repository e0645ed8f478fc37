package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"meetinggate/internal/domain"
)

// State is a step of the welcome workflow.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateLookingUp
	StatePastError
	StateFutureError
	StateAwaitingAuth
	StateAuthenticating
	StateFetchingMeetingDetail
	StateJoining
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateLookingUp:
		return "looking_up"
	case StatePastError:
		return "past_error"
	case StateFutureError:
		return "future_error"
	case StateAwaitingAuth:
		return "awaiting_auth"
	case StateAuthenticating:
		return "authenticating"
	case StateFetchingMeetingDetail:
		return "fetching_meeting_detail"
	case StateJoining:
		return "joining"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// ErrorReporter is the error/notification surface the workflow reports to.
type ErrorReporter interface {
	Report(err error)
	Clear()
}

// Outcome describes where a Submit or Login call ended.
type Outcome struct {
	State     State
	AttemptID string
	Room      string
	Event     *domain.EventRecord
	Ticket    *domain.JoinTicket
}

// WorkflowOptions configures one welcome workflow.
type WorkflowOptions struct {
	Validator      *RoomValidator
	TemporalGate   TemporalGate
	RequireSession bool
	// Validity is the optional form-validity check run before joining.
	Validity domain.ValidityChecker
	Now      func() time.Time
}

type attemptKind int

const (
	attemptSubmit attemptKind = iota
	attemptLogin
)

type attempt struct {
	id     string
	gen    uint64
	kind   attemptKind
	cancel context.CancelFunc
}

type pendingJoin struct {
	room  string
	event *domain.EventRecord
}

// JoinWorkflow validates a room, looks up its event, applies the temporal
// and session gates and finally hands off to the Joiner. At most one attempt
// is in flight; responses for a cancelled attempt are discarded.
type JoinWorkflow struct {
	lookup   domain.EventLookup
	auth     domain.Authenticator
	meetings domain.MeetingDetailFetcher
	sessions domain.SessionStore
	joiner   domain.Joiner
	reporter ErrorReporter
	logger   *slog.Logger
	opts     WorkflowOptions

	mu       sync.Mutex
	state    State
	gen      uint64
	inflight *attempt
	pending  *pendingJoin
	closed   bool
}

// NewJoinWorkflow wires the workflow collaborators. auth, meetings and
// sessions may be nil when opts.RequireSession is false.
func NewJoinWorkflow(
	lookup domain.EventLookup,
	auth domain.Authenticator,
	meetings domain.MeetingDetailFetcher,
	sessions domain.SessionStore,
	joiner domain.Joiner,
	reporter ErrorReporter,
	logger *slog.Logger,
	opts WorkflowOptions,
) *JoinWorkflow {
	if opts.Validator == nil {
		opts.Validator = NewRoomValidator("")
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &JoinWorkflow{
		lookup:   lookup,
		auth:     auth,
		meetings: meetings,
		sessions: sessions,
		joiner:   joiner,
		reporter: reporter,
		logger:   logger,
		opts:     opts,
	}
}

// State returns the current workflow state.
func (w *JoinWorkflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// PendingRoom returns the room waiting for a login, if any.
func (w *JoinWorkflow) PendingRoom() (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pending == nil {
		return "", false
	}
	return w.pending.room, true
}

// OnRoomChange reports whether value contains a forbidden character. Editing
// the room cancels an in-flight attempt so its response is ignored.
func (w *JoinWorkflow) OnRoomChange(value string) bool {
	w.mu.Lock()
	w.cancelInflightLocked()
	w.mu.Unlock()
	return w.opts.Validator.HasForbidden(value)
}

// Close cancels the in-flight attempt. The workflow rejects further calls.
func (w *JoinWorkflow) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.cancelInflightLocked()
	w.pending = nil
	w.closed = true
	w.state = StateIdle
}

func (w *JoinWorkflow) cancelInflightLocked() {
	if w.inflight == nil {
		return
	}
	w.inflight.cancel()
	if w.inflight.kind == attemptLogin && w.pending != nil {
		w.state = StateAwaitingAuth
	} else {
		w.state = StateIdle
	}
	w.inflight = nil
	w.gen++
}

// Submit runs the workflow for a raw room identifier typed by the user.
func (w *JoinWorkflow) Submit(ctx context.Context, raw string) (Outcome, error) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return Outcome{State: StateIdle}, domain.ErrStaleAttempt
	}
	if w.inflight != nil {
		w.mu.Unlock()
		return Outcome{State: w.State()}, domain.ErrSubmitInProgress
	}
	w.state = StateValidating
	room, err := w.opts.Validator.Validate(raw)
	if err != nil {
		w.state = StateIdle
		w.pending = nil
		w.mu.Unlock()
		w.reporter.Report(err)
		return Outcome{State: StateIdle}, err
	}
	w.pending = nil
	a, actx := w.beginLocked(ctx, attemptSubmit)
	w.state = StateLookingUp
	w.mu.Unlock()
	defer w.finish(a)

	log := w.logger.With("attempt", a.id, "room", room)
	log.DebugContext(ctx, "looking up event")

	event, err := w.lookup.LookupEvent(actx, room)
	if err == nil && event == nil {
		err = domain.ErrNoData
	}
	if stale := w.stale(a); stale != nil {
		return Outcome{State: w.State(), AttemptID: a.id, Room: room}, stale
	}
	if err != nil {
		return w.fail(ctx, a, log, room, classifyLookupError(err))
	}
	out := Outcome{AttemptID: a.id, Room: room, Event: event}

	if err := w.opts.TemporalGate.Check(w.opts.Now(), event); err != nil {
		out.State = StatePastError
		if errors.Is(err, domain.ErrEventInFuture) {
			out.State = StateFutureError
		}
		w.reporter.Report(err)
		w.setState(a, StateIdle)
		log.InfoContext(ctx, "event outside its window", "event_id", event.ID, "err", err)
		return out, err
	}

	if !w.opts.RequireSession {
		return w.join(ctx, a, log, domain.JoinTicket{RoomID: room, EventID: event.ID})
	}

	session := w.loadSession(ctx, log)
	if !session.HasID() {
		w.awaitAuth(a, room, event)
		out.State = StateAwaitingAuth
		log.InfoContext(ctx, "login required", "event_id", event.ID)
		return out, nil
	}

	return w.fetchAndJoin(ctx, actx, a, log, room, event, session.ID)
}

// Login completes a workflow suspended in StateAwaitingAuth.
func (w *JoinWorkflow) Login(ctx context.Context, username, password string) (Outcome, error) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return Outcome{State: StateIdle}, domain.ErrStaleAttempt
	}
	if w.inflight != nil {
		w.mu.Unlock()
		return Outcome{State: w.State()}, domain.ErrSubmitInProgress
	}
	if w.state != StateAwaitingAuth || w.pending == nil {
		state := w.state
		w.mu.Unlock()
		return Outcome{State: state}, domain.ErrNotAwaitingAuth
	}
	pending := w.pending
	if err := validateCredentials(username, password); err != nil {
		w.mu.Unlock()
		for _, fieldErr := range err.Unwrap() {
			w.reporter.Report(fieldErr)
		}
		return Outcome{State: StateAwaitingAuth, Room: pending.room, Event: pending.event}, err
	}
	a, actx := w.beginLocked(ctx, attemptLogin)
	w.state = StateAuthenticating
	w.mu.Unlock()
	defer w.finish(a)

	log := w.logger.With("attempt", a.id, "room", pending.room)
	session, err := w.auth.Login(actx, strings.TrimSpace(username), password)
	if stale := w.stale(a); stale != nil {
		return Outcome{State: w.State(), AttemptID: a.id, Room: pending.room}, stale
	}
	if err == nil && !session.HasID() {
		err = fmt.Errorf("%w: response carried no user id", domain.ErrAuthFailed)
	}
	if err != nil {
		if !errors.Is(err, domain.ErrAuthFailed) {
			err = fmt.Errorf("%w: %w", domain.ErrAuthFailed, err)
		}
		log.ErrorContext(ctx, "login failed", "err", err)
		w.reporter.Report(err)
		w.setState(a, StateAwaitingAuth)
		return Outcome{State: StateAwaitingAuth, AttemptID: a.id, Room: pending.room, Event: pending.event}, err
	}

	if w.sessions != nil {
		if err := w.sessions.Save(ctx, session); err != nil {
			log.WarnContext(ctx, "failed to persist session", "err", err)
		}
	}
	log.InfoContext(ctx, "logged in", "user_id", session.ID)

	w.mu.Lock()
	if a.gen == w.gen {
		w.pending = nil
	}
	w.mu.Unlock()
	return w.fetchAndJoin(ctx, actx, a, log, pending.room, pending.event, session.ID)
}

func (w *JoinWorkflow) fetchAndJoin(ctx, actx context.Context, a *attempt, log *slog.Logger, room string, event *domain.EventRecord, userID string) (Outcome, error) {
	w.setState(a, StateFetchingMeetingDetail)
	details, err := w.meetings.FetchMeetingDetails(actx, userID, event.ID)
	if stale := w.stale(a); stale != nil {
		return Outcome{State: w.State(), AttemptID: a.id, Room: room}, stale
	}
	if errors.Is(err, domain.ErrSessionRejected) {
		return w.rejectSession(ctx, a, log, room, event, err)
	}
	if err != nil {
		if !errors.Is(err, domain.ErrMeetingDetailFailed) {
			err = fmt.Errorf("%w: %w", domain.ErrMeetingDetailFailed, err)
		}
		return w.fail(ctx, a, log, room, err)
	}
	ticket := domain.JoinTicket{RoomID: room, EventID: event.ID, UserID: userID}
	if details != nil {
		ticket.MeetingUniqueID = details.MeetingUniqueID
	}
	return w.join(ctx, a, log, ticket)
}

func (w *JoinWorkflow) join(ctx context.Context, a *attempt, log *slog.Logger, ticket domain.JoinTicket) (Outcome, error) {
	out := Outcome{AttemptID: a.id, Room: ticket.RoomID, Ticket: &ticket}
	w.reporter.Clear()
	if w.opts.Validity != nil && !w.opts.Validity.Valid(ticket.RoomID) {
		w.reporter.Report(domain.ErrInvalidRoomFormat)
		w.setState(a, StateIdle)
		out.State = StateIdle
		return out, domain.ErrInvalidRoomFormat
	}
	w.setState(a, StateJoining)
	out.State = StateJoining
	if err := w.joiner.Join(ctx, ticket); err != nil {
		log.ErrorContext(ctx, "join failed", "err", err)
		w.reporter.Report(err)
		w.setState(a, StateIdle)
		return out, fmt.Errorf("join conference: %w", err)
	}
	log.InfoContext(ctx, "joined conference", "event_id", ticket.EventID)
	w.setState(a, StateIdle)
	return out, nil
}

// rejectSession drops the cached session the backend no longer accepts and
// suspends the workflow until the user logs in again.
func (w *JoinWorkflow) rejectSession(ctx context.Context, a *attempt, log *slog.Logger, room string, event *domain.EventRecord, err error) (Outcome, error) {
	log.InfoContext(ctx, "cached session rejected", "err", err)
	if w.sessions != nil {
		if clearErr := w.sessions.Clear(ctx); clearErr != nil {
			log.WarnContext(ctx, "failed to clear cached session", "err", clearErr)
		}
	}
	w.reporter.Report(err)
	w.awaitAuth(a, room, event)
	return Outcome{State: StateAwaitingAuth, AttemptID: a.id, Room: room, Event: event}, err
}

func (w *JoinWorkflow) awaitAuth(a *attempt, room string, event *domain.EventRecord) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if a.gen == w.gen {
		w.pending = &pendingJoin{room: room, event: event}
		w.state = StateAwaitingAuth
	}
}

func (w *JoinWorkflow) fail(ctx context.Context, a *attempt, log *slog.Logger, room string, err error) (Outcome, error) {
	if errors.Is(err, domain.ErrNoData) {
		log.InfoContext(ctx, "no event for room")
	} else {
		log.ErrorContext(ctx, "request failed", "err", err)
	}
	w.reporter.Report(err)
	w.setState(a, StateIdle)
	return Outcome{State: StateIdle, AttemptID: a.id, Room: room}, err
}

func (w *JoinWorkflow) loadSession(ctx context.Context, log *slog.Logger) *domain.UserSession {
	if w.sessions == nil {
		return nil
	}
	session, err := w.sessions.Load(ctx)
	if err != nil {
		log.WarnContext(ctx, "failed to read cached session", "err", err)
		return nil
	}
	return session
}

func (w *JoinWorkflow) beginLocked(ctx context.Context, kind attemptKind) (*attempt, context.Context) {
	actx, cancel := context.WithCancel(ctx)
	w.gen++
	a := &attempt{id: uuid.NewString(), gen: w.gen, kind: kind, cancel: cancel}
	w.inflight = a
	return a, actx
}

func (w *JoinWorkflow) finish(a *attempt) {
	a.cancel()
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.inflight == a {
		w.inflight = nil
	}
}

// stale returns ErrStaleAttempt when a was cancelled or superseded.
func (w *JoinWorkflow) stale(a *attempt) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if a.gen != w.gen || w.inflight != a {
		return domain.ErrStaleAttempt
	}
	return nil
}

func (w *JoinWorkflow) setState(a *attempt, s State) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if a.gen == w.gen {
		w.state = s
	}
}

func classifyLookupError(err error) error {
	if errors.Is(err, domain.ErrNoData) || errors.Is(err, domain.ErrLookupFailed) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrLookupFailed, err)
}

func validateCredentials(username, password string) domain.FieldErrors {
	errs := domain.FieldErrors{}
	if strings.TrimSpace(username) == "" {
		errs["username"] = domain.ErrMissingUsername
	}
	if strings.TrimSpace(password) == "" {
		errs["password"] = domain.ErrMissingPassword
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
