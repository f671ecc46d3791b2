package session

import (
	"context"
	"errors"
	"strings"
	"sync"

	"daleel-backend/internal/models"
)

// Greeting seeds every new transcript.
const Greeting = "مرحباً! أنا مساعدك الذكي للإجابة على أسئلتك حول الجامعات والكليات والتخصصات في سوريا. كيف يمكنني مساعدتك؟"

// Localized failure texts appended to the transcript when a relay call fails.
const (
	failureGeneric     = "عذراً، حدث خطأ في معالجة طلبك"
	failureRateLimited = "تم تجاوز حد الاستخدام، يرجى المحاولة لاحقاً"
	failureQuota       = "خدمة الذكاء الاصطناعي تتطلب إضافة رصيد"
)

var (
	// ErrEmptyMessage is returned when input is empty or whitespace-only;
	// the transcript is untouched.
	ErrEmptyMessage = errors.New("session: empty message")
	// ErrBusy is returned while a prior call is still in flight; the new
	// submission is dropped, not queued.
	ErrBusy = errors.New("session: request already in flight")
	// ErrClosed is returned after Close.
	ErrClosed = errors.New("session: closed")
)

// Relay sends one user message and returns the assistant's reply.
type Relay interface {
	Ask(ctx context.Context, message string) (string, error)
}

// Session is the in-memory transcript of one chat screen. Messages are
// appended strictly in user-send then assistant-reply order and never
// reordered. At most one relay call is in flight at a time.
type Session struct {
	relay Relay

	mu       sync.Mutex
	messages []models.ChatMessage
	busy     bool
	closed   bool

	// OnNotice, when set, receives the localized text of each failure as a
	// transient notification alongside the transcript entry.
	OnNotice func(text string)
}

func New(relay Relay) *Session {
	return &Session{
		relay: relay,
		messages: []models.ChatMessage{
			{Role: models.RoleAssistant, Content: Greeting},
		},
	}
}

// Messages returns a copy of the transcript.
func (s *Session) Messages() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// Busy reports whether a relay call is in flight.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// Send appends the user message, invokes the relay and appends the reply or
// a localized failure. It blocks until the turn resolves. The busy flag is
// always cleared, so the input stays usable for a manual retry; no automatic
// retry happens here.
func (s *Session) Send(ctx context.Context, input string) error {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return ErrEmptyMessage
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.busy {
		s.mu.Unlock()
		return ErrBusy
	}
	s.busy = true
	// Optimistic append: the user's message shows before the reply arrives.
	s.messages = append(s.messages, models.ChatMessage{Role: models.RoleUser, Content: trimmed})
	s.mu.Unlock()

	reply, err := s.relay.Ask(ctx, trimmed)

	text := reply
	if err != nil {
		text = failureText(err)
		if s.OnNotice != nil {
			s.OnNotice(text)
		}
	}
	s.resolve(text)
	return err
}

// resolve appends the assistant turn and clears the busy flag. A session
// closed while the call was in flight drops the late reply instead of
// mutating a dead transcript.
func (s *Session) resolve(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
	if s.closed {
		return
	}
	s.messages = append(s.messages, models.ChatMessage{Role: models.RoleAssistant, Content: text})
}

// Close marks the session dead. In-flight calls finish but their results are
// discarded.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

// failureText maps a relay failure onto the localized transcript entry,
// using the same taxonomy the relay itself reports.
func failureText(err error) string {
	var se *StatusError
	if errors.As(err, &se) {
		switch se.Status {
		case 429:
			return failureRateLimited
		case 402:
			return failureQuota
		}
		if se.Message != "" {
			return se.Message
		}
	}
	return failureGeneric
}
