package signal

import (
	"errors"
	"fmt"
	"os"
	ossignal "os/signal"
	"sync"
	"syscall"

	"github.com/calvinalkan/posix/pkg/errno"
)

var (
	// ErrUncatchable is returned when installing a disposition for SIGKILL or
	// SIGSTOP. It wraps [errno.ErrInvalidInput].
	ErrUncatchable = fmt.Errorf("%w: signal cannot be caught or ignored", errno.ErrInvalidInput)

	// ErrUnsupportedFlags is returned for SA_SIGINFO, SA_NOCLDSTOP and
	// SA_NOCLDWAIT. It wraps [errno.ErrInvalidInput].
	ErrUnsupportedFlags = fmt.Errorf("%w: unsupported sigaction flags", errno.ErrInvalidInput)
)

var errNilHandler = errors.New("nil handler function")

// The Go runtime tracks at most this many signals (os/signal's numSig).
const maxManaged Signal = 64

type handlerKind int

const (
	handlerDefault handlerKind = iota
	handlerIgnore
	handlerFunc
)

// SigHandler is a signal disposition: [SigDfl], [SigIgn] or a [Handler].
// The zero value is SigDfl.
type SigHandler struct {
	kind handlerKind
	fn   func(Signal)
}

var (
	// SigDfl is the default action of the signal.
	SigDfl = SigHandler{kind: handlerDefault}
	// SigIgn discards the signal.
	SigIgn = SigHandler{kind: handlerIgnore}
)

// Handler returns a disposition that calls fn with the received signal.
//
// fn runs on a dispatcher goroutine, concurrently with every other goroutine
// and at an arbitrary point of their execution. It may only touch state that
// is safe for concurrent access, such as an atomic flag or a write to an open
// descriptor. Handlers run one at a time: a handler that blocks delays every
// later signal.
func Handler(fn func(Signal)) SigHandler {
	return SigHandler{kind: handlerFunc, fn: fn}
}

// IsDefault reports whether h is [SigDfl].
func (h SigHandler) IsDefault() bool { return h.kind == handlerDefault }

// IsIgnore reports whether h is [SigIgn].
func (h SigHandler) IsIgnore() bool { return h.kind == handlerIgnore }

// Func returns the handler function, or nil for SigDfl and SigIgn.
func (h SigHandler) Func() func(Signal) { return h.fn }

func (h SigHandler) String() string {
	switch h.kind {
	case handlerIgnore:
		return "SIG_IGN"
	case handlerFunc:
		return "handler"
	default:
		return "SIG_DFL"
	}
}

// SigAction is a disposition together with its flags and the signals blocked
// while the handler runs. The zero value is the default disposition.
type SigAction struct {
	Handler SigHandler
	Flags   SaFlags
	Mask    SigSet
}

// NewSigAction returns a SigAction.
func NewSigAction(handler SigHandler, flags SaFlags, mask SigSet) SigAction {
	return SigAction{Handler: handler, Flags: flags, Mask: mask}
}

// Sigaction installs act for sig and returns the previous action.
//
// Under the Go runtime SA_RESTART and SA_ONSTACK are always in effect;
// SA_RESETHAND restores the default disposition before the handler runs;
// a second instance of the signal already queued for the dispatcher at that
// point is dropped rather than given the default action. SA_NODEFER is
// accepted and has no further effect. SA_SIGINFO, SA_NOCLDSTOP and
// SA_NOCLDWAIT fail with [ErrUnsupportedFlags]. Handlers never run
// concurrently with each other, so every signal is blocked for the duration
// of a handler and Mask is always satisfied.
//
// Installing anything for SIGKILL or SIGSTOP fails with [ErrUncatchable]
// without touching the process state.
//
// A signal whose disposition was never set through this package reports
// SigIgn if it was ignored when the process started and SigDfl otherwise.
func Sigaction(sig Signal, act SigAction) (SigAction, error) {
	if err := checkManaged(sig); err != nil {
		return SigAction{}, err
	}

	if !sig.Catchable() {
		return SigAction{}, fmt.Errorf("%w: %s", ErrUncatchable, sig)
	}

	if _, err := saFlagsTable.FromBits(act.Flags); err != nil {
		return SigAction{}, err
	}

	if act.Flags.Intersects(unsupportedSaFlags) {
		return SigAction{}, fmt.Errorf("%w: %s", ErrUnsupportedFlags, act.Flags&unsupportedSaFlags)
	}

	if act.Handler.kind == handlerFunc && act.Handler.fn == nil {
		return SigAction{}, fmt.Errorf("%w: %w", errno.ErrInvalidInput, errNilHandler)
	}

	return dispositions.swap(sig, act), nil
}

// SetHandler installs handler for sig with SA_RESTART and returns the previous
// handler, like signal(2).
func SetHandler(sig Signal, handler SigHandler) (SigHandler, error) {
	prev, err := Sigaction(sig, SigAction{Handler: handler, Flags: SA_RESTART})
	if err != nil {
		return SigHandler{}, err
	}

	return prev.Handler, nil
}

// Current returns the action installed for sig without changing it.
func Current(sig Signal) (SigAction, error) {
	if err := checkManaged(sig); err != nil {
		return SigAction{}, err
	}

	return dispositions.get(sig), nil
}

func checkManaged(sig Signal) error {
	if !sig.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidSignal, int(sig))
	}

	if sig > maxManaged {
		return fmt.Errorf("%w: %s is not managed by the Go runtime", ErrInvalidSignal, sig)
	}

	return nil
}

// dispositionTable is the process-wide record of installed actions and the
// dispatcher that runs handlers.
type dispositionTable struct {
	mu      sync.Mutex
	actions map[Signal]SigAction
	ch      chan os.Signal
	once    sync.Once
}

var dispositions = &dispositionTable{actions: make(map[Signal]SigAction)}

func (t *dispositionTable) get(sig Signal) SigAction {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.lookup(sig)
}

func (t *dispositionTable) lookup(sig Signal) SigAction {
	if act, ok := t.actions[sig]; ok {
		return act
	}

	if ossignal.Ignored(syscall.Signal(sig)) {
		return SigAction{Handler: SigIgn}
	}

	return SigAction{}
}

func (t *dispositionTable) swap(sig Signal, act SigAction) SigAction {
	t.mu.Lock()
	defer t.mu.Unlock()

	prev := t.lookup(sig)
	rs := syscall.Signal(sig)

	switch act.Handler.kind {
	case handlerIgnore:
		ossignal.Ignore(rs)
	case handlerFunc:
		t.once.Do(t.start)
		ossignal.Notify(t.ch, rs)
	default:
		ossignal.Reset(rs)
	}

	t.actions[sig] = act

	return prev
}

func (t *dispositionTable) start() {
	t.ch = make(chan os.Signal, int(maxManaged))

	go t.dispatch()
}

func (t *dispositionTable) dispatch() {
	for received := range t.ch {
		s, ok := received.(syscall.Signal)
		if !ok {
			continue
		}

		sig := Signal(s)

		t.mu.Lock()
		act := t.lookup(sig)

		if act.Handler.kind != handlerFunc {
			// Replaced after the signal was queued.
			t.mu.Unlock()
			continue
		}

		if act.Flags.Contains(SA_RESETHAND) {
			ossignal.Reset(s)
			t.actions[sig] = SigAction{}
		}
		t.mu.Unlock()

		act.Handler.fn(sig)
	}
}
