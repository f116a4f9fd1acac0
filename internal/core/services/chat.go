package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/custodia-labs/resumechat/internal/core/domain"
	"github.com/custodia-labs/resumechat/internal/core/ports/driven"
	"github.com/custodia-labs/resumechat/internal/core/ports/driving"
	"github.com/custodia-labs/resumechat/internal/logger"
)

// Ensure the chat types implement their interfaces.
var (
	_ driving.ChatService  = (*ChatService)(nil)
	_ driving.ChatWorkflow = (*ChatWorkflow)(nil)
)

// ChatService opens section chats bound to the current session.
type ChatService struct {
	backend driven.ChatBackend
	store   *SessionStore
	timeout time.Duration
}

// NewChatService creates a chat service. Each remote call runs under
// timeout; zero disables it.
func NewChatService(backend driven.ChatBackend, store *SessionStore, timeout time.Duration) *ChatService {
	return &ChatService{backend: backend, store: store, timeout: timeout}
}

// Begin creates an unstarted workflow for section.
func (s *ChatService) Begin(ctx context.Context, section domain.SectionKind) (driving.ChatWorkflow, error) {
	if !section.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidSection, section)
	}
	session, err := s.store.GetSession(ctx)
	if err != nil {
		return nil, err
	}
	return NewChatWorkflow(section, session, s.backend, s.store, s.timeout), nil
}

// ChatWorkflow runs one section chat. It owns a domain.ChatState and
// performs the effects each transition asks for. The state is only
// touched under mu; remote calls run outside it so Snapshot can show the
// optimistic transcript while a request is outstanding.
type ChatWorkflow struct {
	mu    sync.Mutex
	state domain.ChatState

	session *domain.Session
	backend driven.ChatBackend
	store   *SessionStore
	timeout time.Duration
	now     func() time.Time
}

// NewChatWorkflow creates a workflow in the Initializing phase.
func NewChatWorkflow(
	section domain.SectionKind,
	session *domain.Session,
	backend driven.ChatBackend,
	store *SessionStore,
	timeout time.Duration,
) *ChatWorkflow {
	return &ChatWorkflow{
		state:   domain.NewChatState(section),
		session: session,
		backend: backend,
		store:   store,
		timeout: timeout,
		now:     time.Now,
	}
}

// Section returns the section being collected.
func (w *ChatWorkflow) Section() domain.SectionKind {
	return w.state.Section
}

// Start opens the chat. On failure the workflow is terminally failed.
func (w *ChatWorkflow) Start(ctx context.Context) error {
	logger.Section("Chat: " + w.Section().String())
	_, err := w.dispatch(ctx, domain.StartRequested{})
	return err
}

// Send posts text and waits for the reply. The message is in the
// transcript as soon as Send is called, even if the request fails.
func (w *ChatWorkflow) Send(ctx context.Context, text string) error {
	_, err := w.dispatch(ctx, domain.MessageSubmitted{Text: text})
	return err
}

// Submit fetches, normalizes and stores the section result and returns it.
// It is allowed whether or not the service reports the section complete.
func (w *ChatWorkflow) Submit(ctx context.Context) (domain.SectionEntry, error) {
	return w.dispatch(ctx, domain.SubmitRequested{})
}

// Snapshot returns a copy of the current state.
func (w *ChatWorkflow) Snapshot() domain.ChatState {
	w.mu.Lock()
	defer w.mu.Unlock()
	s := w.state
	s.Transcript = append(domain.Transcript(nil), w.state.Transcript...)
	return s
}

// dispatch applies ev and every event produced by the resulting effects
// until the machine settles. It returns the surfaced error, if any, and
// the emitted entry on completion.
func (w *ChatWorkflow) dispatch(ctx context.Context, ev domain.Event) (domain.SectionEntry, error) {
	var (
		emitted  domain.SectionEntry
		surfaced error
	)

	queue := []domain.Event{ev}
	for len(queue) > 0 {
		ev, queue = queue[0], queue[1:]

		effects, err := w.apply(ev)
		if err != nil {
			return nil, err
		}

		for _, eff := range effects {
			switch e := eff.(type) {
			case domain.Notify:
				surfaced = e.Err
			case domain.Emit:
				emitted = e.Entry
			default:
				queue = append(queue, w.perform(ctx, eff))
			}
		}
	}

	return emitted, surfaced
}

func (w *ChatWorkflow) apply(ev domain.Event) ([]domain.Effect, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	prev := w.state.Phase
	next, effects, err := w.state.Apply(ev, w.now())
	if err != nil {
		logger.Debug("%s chat: rejected %T: %v", w.state.Section, ev, err)
		return nil, err
	}
	w.state = next
	if prev != next.Phase {
		logger.Debug("%s chat: %s -> %s", next.Section, prev, next.Phase)
	}
	return effects, nil
}

// perform runs one effect and reports its outcome as an event.
func (w *ChatWorkflow) perform(ctx context.Context, eff domain.Effect) domain.Event {
	section := w.Section()
	creds := w.session.Credentials

	switch e := eff.(type) {
	case domain.StartChat:
		rctx, cancel := w.requestContext(ctx)
		defer cancel()
		turn, err := w.backend.StartChat(rctx, section, creds)
		if err != nil {
			return domain.StartFailed{Err: err}
		}
		return domain.StartSucceeded{Turn: *turn}

	case domain.SendMessage:
		rctx, cancel := w.requestContext(ctx)
		defer cancel()
		turn, err := w.backend.SendMessage(rctx, section, e.ChatID, e.Text, creds)
		if err != nil {
			return domain.SendFailed{Err: err}
		}
		return domain.ReplyReceived{Turn: *turn}

	case domain.FetchResult:
		rctx, cancel := w.requestContext(ctx)
		defer cancel()
		payload, err := w.backend.FetchResult(rctx, section, e.ChatID, creds)
		if err != nil {
			return domain.ResultFailed{Err: err}
		}
		return domain.ResultReceived{Payload: payload}

	case domain.PersistResult:
		if err := w.store.SetSectionResult(ctx, e.Section, e.ChatID, e.Entry); err != nil {
			return domain.PersistFailed{Err: err}
		}
		return domain.ResultPersisted{}

	default:
		// Unknown effects are a programming error; fail the step that
		// produced them so the state machine rejects it.
		return domain.PersistFailed{Err: fmt.Errorf("%w: unsupported effect %T", domain.ErrInvalidInput, eff)}
	}
}

func (w *ChatWorkflow) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if w.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, w.timeout)
}
