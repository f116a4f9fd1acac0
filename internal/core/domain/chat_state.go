package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ChatPhase is the lifecycle position of one section chat.
type ChatPhase int

// Chat phases.
const (
	// PhaseInitializing is the initial phase, before start_chat succeeds.
	PhaseInitializing ChatPhase = iota
	// PhaseAwaitingInput accepts one user message or a submit.
	PhaseAwaitingInput
	// PhaseSending has exactly one message request outstanding.
	PhaseSending
	// PhaseSubmitting is fetching and storing the structured result.
	PhaseSubmitting
	// PhaseFailed is terminal: start_chat failed.
	PhaseFailed
	// PhaseCompleted is terminal: the result was stored.
	PhaseCompleted
)

// String returns the phase name.
func (p ChatPhase) String() string {
	switch p {
	case PhaseInitializing:
		return "initializing"
	case PhaseAwaitingInput:
		return "awaiting_input"
	case PhaseSending:
		return "sending"
	case PhaseSubmitting:
		return "submitting"
	case PhaseFailed:
		return "failed"
	case PhaseCompleted:
		return "completed"
	default:
		return unknownDescription
	}
}

// IsTerminal reports whether no further events are accepted.
func (p ChatPhase) IsTerminal() bool {
	return p == PhaseFailed || p == PhaseCompleted
}

// Event is an input to ChatState.Apply: a user command or the outcome of an effect.
type Event interface{ isEvent() }

// User commands.
type (
	// StartRequested asks for the chat to be opened.
	StartRequested struct{}
	// MessageSubmitted carries a message the user typed.
	MessageSubmitted struct{ Text string }
	// SubmitRequested asks for the structured result to be fetched and stored.
	SubmitRequested struct{}
)

// Effect outcomes.
type (
	StartSucceeded  struct{ Turn ChatTurn }
	StartFailed     struct{ Err error }
	ReplyReceived   struct{ Turn ChatTurn }
	SendFailed      struct{ Err error }
	ResultReceived  struct{ Payload json.RawMessage }
	ResultFailed    struct{ Err error }
	ResultPersisted struct{}
	PersistFailed   struct{ Err error }
)

func (StartRequested) isEvent()   {}
func (MessageSubmitted) isEvent() {}
func (SubmitRequested) isEvent()  {}
func (StartSucceeded) isEvent()   {}
func (StartFailed) isEvent()      {}
func (ReplyReceived) isEvent()    {}
func (SendFailed) isEvent()       {}
func (ResultReceived) isEvent()   {}
func (ResultFailed) isEvent()     {}
func (ResultPersisted) isEvent()  {}
func (PersistFailed) isEvent()    {}

// Effect is work the runner performs on behalf of the state machine.
type Effect interface{ isEffect() }

type (
	// StartChat calls start_chat with the session credentials.
	StartChat struct{}
	// SendMessage posts the user's message to the open chat.
	SendMessage struct {
		ChatID string
		Text   string
	}
	// FetchResult retrieves the structured payload for the chat.
	FetchResult struct{ ChatID string }
	// PersistResult stores the normalized entry under the section key.
	PersistResult struct {
		Section SectionKind
		ChatID  string
		Entry   SectionEntry
	}
	// Notify surfaces an error to the user.
	Notify struct{ Err error }
	// Emit hands the stored entry to the caller that opened the chat.
	Emit struct{ Entry SectionEntry }
)

func (StartChat) isEffect()     {}
func (SendMessage) isEffect()   {}
func (FetchResult) isEffect()   {}
func (PersistResult) isEffect() {}
func (Notify) isEffect()        {}
func (Emit) isEffect()          {}

// ChatState is the full state of one section chat. It is a value: Apply
// returns a new state and never mutates the receiver.
type ChatState struct {
	Section    SectionKind
	Phase      ChatPhase
	ChatID     string
	Transcript Transcript
	Progress   Progress
	// Starting is set while start_chat is outstanding.
	Starting bool
	// Err is the most recently surfaced failure, cleared by the next command.
	Err error
	// Result is set once the section is completed.
	Result SectionEntry

	pending SectionEntry
}

// NewChatState returns the initial state for a section.
func NewChatState(section SectionKind) ChatState {
	return ChatState{Section: section, Phase: PhaseInitializing, Transcript: Transcript{}}
}

// CanSend reports whether a user message would be accepted.
func (s ChatState) CanSend() bool {
	return s.Phase == PhaseAwaitingInput && !s.Progress.IsComplete
}

// CanSubmit reports whether a submit would be accepted.
// Completion is not required.
func (s ChatState) CanSubmit() bool {
	return s.Phase == PhaseAwaitingInput
}

// InFlight reports whether a remote request is outstanding.
func (s ChatState) InFlight() bool {
	return s.Starting || s.Phase == PhaseSending || s.Phase == PhaseSubmitting
}

// Apply computes the transition for ev. A rejected command returns the
// unchanged state and an error; failed effects are not errors here, they
// move the state and produce a Notify effect.
func (s ChatState) Apply(ev Event, now time.Time) (ChatState, []Effect, error) {
	switch e := ev.(type) {
	case StartRequested:
		return s.onStart()
	case MessageSubmitted:
		return s.onMessage(e, now)
	case SubmitRequested:
		return s.onSubmit()
	case StartSucceeded:
		if s.Phase != PhaseInitializing || !s.Starting {
			return s, nil, s.unexpected(ev)
		}
		next := s
		next.Starting = false
		next.Phase = PhaseAwaitingInput
		next.ChatID = e.Turn.ChatID
		next.Progress = e.Turn.Progress
		next.Transcript = Transcript{}.append(ChatMessage{Role: RoleAI, Content: e.Turn.AIResponse, Timestamp: now})
		return next, nil, nil
	case StartFailed:
		if s.Phase != PhaseInitializing || !s.Starting {
			return s, nil, s.unexpected(ev)
		}
		next := s
		next.Starting = false
		next.Phase = PhaseFailed
		next.Err = e.Err
		return next, []Effect{Notify{Err: e.Err}}, nil
	case ReplyReceived:
		if s.Phase != PhaseSending {
			return s, nil, s.unexpected(ev)
		}
		next := s
		next.Phase = PhaseAwaitingInput
		next.Progress = e.Turn.Progress
		next.Transcript = s.Transcript.append(ChatMessage{Role: RoleAI, Content: e.Turn.AIResponse, Timestamp: now})
		return next, nil, nil
	case SendFailed:
		if s.Phase != PhaseSending {
			return s, nil, s.unexpected(ev)
		}
		next := s
		next.Phase = PhaseAwaitingInput
		next.Err = e.Err
		return next, []Effect{Notify{Err: e.Err}}, nil
	case ResultReceived:
		if s.Phase != PhaseSubmitting || s.pending != nil {
			return s, nil, s.unexpected(ev)
		}
		entry, err := Normalize(s.Section, e.Payload)
		if err != nil {
			return s.backToInput(err)
		}
		next := s
		next.pending = entry
		return next, []Effect{PersistResult{Section: s.Section, ChatID: s.ChatID, Entry: entry}}, nil
	case ResultFailed:
		if s.Phase != PhaseSubmitting {
			return s, nil, s.unexpected(ev)
		}
		return s.backToInput(e.Err)
	case ResultPersisted:
		if s.Phase != PhaseSubmitting || s.pending == nil {
			return s, nil, s.unexpected(ev)
		}
		next := s
		next.Phase = PhaseCompleted
		next.Result = s.pending
		next.pending = nil
		return next, []Effect{Emit{Entry: next.Result}}, nil
	case PersistFailed:
		if s.Phase != PhaseSubmitting || s.pending == nil {
			return s, nil, s.unexpected(ev)
		}
		return s.backToInput(e.Err)
	default:
		return s, nil, s.unexpected(ev)
	}
}

func (s ChatState) onStart() (ChatState, []Effect, error) {
	switch {
	case s.Phase == PhaseFailed:
		return s, nil, ErrWorkflowFailed
	case s.Phase != PhaseInitializing:
		return s, nil, ErrAlreadyStarted
	case s.Starting:
		return s, nil, ErrRequestInFlight
	}
	next := s
	next.Starting = true
	next.Err = nil
	return next, []Effect{StartChat{}}, nil
}

func (s ChatState) onMessage(e MessageSubmitted, now time.Time) (ChatState, []Effect, error) {
	if err := s.commandError(); err != nil {
		return s, nil, err
	}
	if s.Progress.IsComplete {
		return s, nil, ErrSectionComplete
	}
	if strings.TrimSpace(e.Text) == "" {
		return s, nil, ErrEmptyMessage
	}
	next := s
	next.Phase = PhaseSending
	next.Err = nil
	next.Transcript = s.Transcript.append(ChatMessage{Role: RoleUser, Content: e.Text, Timestamp: now})
	return next, []Effect{SendMessage{ChatID: s.ChatID, Text: e.Text}}, nil
}

func (s ChatState) onSubmit() (ChatState, []Effect, error) {
	if err := s.commandError(); err != nil {
		return s, nil, err
	}
	next := s
	next.Phase = PhaseSubmitting
	next.Err = nil
	return next, []Effect{FetchResult{ChatID: s.ChatID}}, nil
}

// commandError explains why a user command cannot run in the current phase.
func (s ChatState) commandError() error {
	switch s.Phase {
	case PhaseAwaitingInput:
		return nil
	case PhaseInitializing:
		if s.Starting {
			return ErrRequestInFlight
		}
		return ErrNotStarted
	case PhaseSending, PhaseSubmitting:
		return ErrRequestInFlight
	case PhaseFailed:
		return ErrWorkflowFailed
	case PhaseCompleted:
		return ErrWorkflowCompleted
	default:
		return fmt.Errorf("%w: phase %d", ErrInvalidInput, int(s.Phase))
	}
}

func (s ChatState) backToInput(err error) (ChatState, []Effect, error) {
	next := s
	next.Phase = PhaseAwaitingInput
	next.pending = nil
	next.Err = err
	return next, []Effect{Notify{Err: err}}, nil
}

func (s ChatState) unexpected(ev Event) error {
	return fmt.Errorf("%w: %T in phase %s", ErrInvalidInput, ev, s.Phase)
}
