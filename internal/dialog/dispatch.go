package dialog

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

type EventKind int

const (
	EventCommand EventKind = iota
	EventText
	EventCallback
)

func (k EventKind) String() string {
	switch k {
	case EventCommand:
		return "command"
	case EventText:
		return "text"
	case EventCallback:
		return "callback"
	}
	return "unknown"
}

// Event is one inbound update, already stripped of transport detail.
type Event struct {
	UserID  int64
	ChatID  int64
	Kind    EventKind
	Command string // without leading slash
	Args    string // text after the command
	Text    string
	Data    string // raw callback data
}

type HandlerFunc func(ctx context.Context, ev Event) error

// StepHandlerFunc handles free text while the given step is active. The
// session passed in is a private copy; persist changes through the Store.
type StepHandlerFunc func(ctx context.Context, ev Event, sess *Session) error

// FallbackFunc catches events nothing else claimed. sess is nil for idle users.
type FallbackFunc func(ctx context.Context, ev Event, sess *Session) error

type CallbackHandlerFunc func(ctx context.Context, ev Event, payload CallbackPayload) error

type shortcutRoute struct {
	text string
	fn   HandlerFunc
}

type callbackRoute struct {
	prefix string
	fn     CallbackHandlerFunc
}

const lockShards = 64

// Dispatcher routes inbound events to exactly one handler. Resolution order
// for messages is fixed: explicit command, then the active session's step
// handler, then keyword shortcuts (idle users only), then the fallback.
// Callbacks route by action prefix in registration order, exact matches
// first, independent of free-text session state.
//
// Two events from the same user are applied strictly in arrival order via a
// per-user lock shard; different users proceed in parallel.
type Dispatcher struct {
	sessions  Store
	commands  map[string]HandlerFunc
	steps     map[StepTag]StepHandlerFunc
	shortcuts []shortcutRoute
	fallback  FallbackFunc
	cbExact   map[string]CallbackHandlerFunc
	cbPrefix  []callbackRoute
	locks     [lockShards]sync.Mutex
	log       *zerolog.Logger
}

func NewDispatcher(sessions Store, logger *zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		sessions: sessions,
		commands: make(map[string]HandlerFunc),
		steps:    make(map[StepTag]StepHandlerFunc),
		cbExact:  make(map[string]CallbackHandlerFunc),
		log:      logger,
	}
}

func (d *Dispatcher) Sessions() Store { return d.sessions }

func (d *Dispatcher) Command(name string, fn HandlerFunc) {
	d.commands[name] = fn
}

func (d *Dispatcher) Step(tag StepTag, fn StepHandlerFunc) {
	d.steps[tag] = fn
}

func (d *Dispatcher) Shortcut(text string, fn HandlerFunc) {
	d.shortcuts = append(d.shortcuts, shortcutRoute{text: text, fn: fn})
}

func (d *Dispatcher) Fallback(fn FallbackFunc) {
	d.fallback = fn
}

func (d *Dispatcher) Callback(data string, fn CallbackHandlerFunc) {
	d.cbExact[data] = fn
}

// CallbackPrefix routes callback data starting with prefix. Registration
// order is the matching order, so register longer prefixes before their
// own prefixes (edit_promo_field_ before edit_promo_).
func (d *Dispatcher) CallbackPrefix(prefix string, fn CallbackHandlerFunc) {
	d.cbPrefix = append(d.cbPrefix, callbackRoute{prefix: prefix, fn: fn})
}

// Dispatch applies one event under the owning user's lock.
func (d *Dispatcher) Dispatch(ctx context.Context, ev Event) error {
	mu := &d.locks[uint64(ev.UserID)%lockShards]
	mu.Lock()
	defer mu.Unlock()

	if ev.Kind == EventCallback {
		return d.dispatchCallback(ctx, ev)
	}

	if ev.Kind == EventCommand {
		if fn, ok := d.commands[ev.Command]; ok {
			return fn(ctx, ev)
		}
		d.log.Debug().Int64("user_id", ev.UserID).Str("command", ev.Command).Msg("unknown command ignored")
		return nil
	}

	sess, err := d.sessions.Get(ctx, ev.UserID)
	if err != nil {
		return err
	}

	if sess != nil {
		if fn, ok := d.steps[sess.Step]; ok {
			return fn(ctx, ev, sess)
		}
	} else {
		for _, sc := range d.shortcuts {
			if ev.Text == sc.text {
				return sc.fn(ctx, ev)
			}
		}
	}

	if d.fallback != nil {
		return d.fallback(ctx, ev, sess)
	}
	return nil
}

func (d *Dispatcher) dispatchCallback(ctx context.Context, ev Event) error {
	data := strings.TrimSpace(ev.Data)
	if fn, ok := d.cbExact[data]; ok {
		return fn(ctx, ev, CallbackPayload{Action: data})
	}
	for _, r := range d.cbPrefix {
		if strings.HasPrefix(data, r.prefix) {
			return r.fn(ctx, ev, decodePayload(r.prefix, data))
		}
	}
	d.log.Debug().Int64("user_id", ev.UserID).Str("data", data).Msg("unknown callback ignored")
	return nil
}
