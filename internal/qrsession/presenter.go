// Package qrsession drives the on-device QR dialog: it keeps exactly one
// live transaction token on screen while the dialog is open and replaces it
// as soon as its countdown runs out.
package qrsession

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/Ryanbarcelos/fidelize-sub001/internal/loyalty/domain"
	"github.com/Ryanbarcelos/fidelize-sub001/internal/loyalty/dto"
)

var ErrAlreadyOpen = errors.New("qr session already open")

type State int

const (
	StateIdle State = iota
	StateGenerating
	StateDisplaying
)

func (s State) String() string {
	switch s {
	case StateGenerating:
		return "generating"
	case StateDisplaying:
		return "displaying"
	default:
		return "idle"
	}
}

// Issuer mints a transaction token for one card action.
type Issuer interface {
	IssueToken(ctx context.Context, cardID, actionType string) (*dto.TokenOutput, error)
}

// Frame is one screen update. Token and Payload are set while displaying;
// Err is set when issuance failed and the session went back to idle.
type Frame struct {
	State    State
	Token    *dto.TokenOutput
	Payload  string
	TimeLeft int
	Err      error
}

// Ticker is the countdown source. Tests supply a manual one.
type Ticker interface {
	Chan() <-chan time.Time
	Stop()
}

type clockTicker struct{ t *time.Ticker }

func (c clockTicker) Chan() <-chan time.Time { return c.t.C }
func (c clockTicker) Stop()                  { c.t.Stop() }

func secondTicker() Ticker {
	return clockTicker{t: time.NewTicker(time.Second)}
}

type Option func(*Presenter)

func WithTicker(newTicker func() Ticker) Option {
	return func(p *Presenter) { p.newTicker = newTicker }
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Presenter) { p.log = logger }
}

type session struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Presenter runs at most one session at a time. The render callback is
// invoked from the session goroutine and must not call Close.
type Presenter struct {
	issuer    Issuer
	render    func(Frame)
	newTicker func() Ticker
	log       *slog.Logger

	mu       sync.Mutex
	state    State
	token    *dto.TokenOutput
	payload  string
	timeLeft int
	current  *session
}

func NewPresenter(issuer Issuer, render func(Frame), opts ...Option) *Presenter {
	p := &Presenter{
		issuer:    issuer,
		render:    render,
		newTicker: secondTicker,
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Presenter) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// TimeLeft returns the remaining seconds of the displayed token.
func (p *Presenter) TimeLeft() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.timeLeft
}

// Open starts a session for cardID and returns immediately. The first frame
// is Generating; the token follows once issued.
func (p *Presenter) Open(ctx context.Context, cardID, actionType string) error {
	p.mu.Lock()
	if p.current != nil {
		p.mu.Unlock()
		return ErrAlreadyOpen
	}
	sessionCtx, cancel := context.WithCancel(ctx)
	s := &session{cancel: cancel, done: make(chan struct{})}
	p.current = s
	p.mu.Unlock()

	go p.run(sessionCtx, s, cardID, actionType)
	return nil
}

// Close stops the countdown, drops the token reference and waits for the
// session goroutine to exit. The issued token is left to expire on the server.
func (p *Presenter) Close() {
	p.mu.Lock()
	s := p.current
	if s == nil {
		p.mu.Unlock()
		return
	}
	p.current = nil
	p.state = StateIdle
	p.token = nil
	p.payload = ""
	p.timeLeft = 0
	p.mu.Unlock()

	s.cancel()
	<-s.done
}

func (p *Presenter) run(ctx context.Context, s *session, cardID, actionType string) {
	defer close(s.done)

	for {
		ticker, ok := p.issue(ctx, s, cardID, actionType)
		if !ok {
			return
		}
		expired := p.countdown(ctx, s, ticker)
		ticker.Stop()
		if !expired {
			return
		}
	}
}

// countdown renders one frame per tick and reports whether the displayed
// token ran out. It returns false when the session ended first.
func (p *Presenter) countdown(ctx context.Context, s *session, ticker Ticker) bool {
	for {
		select {
		case <-ctx.Done():
			return false
		case <-ticker.Chan():
			frame, expired, ok := p.tick(s)
			if !ok {
				return false
			}
			if expired {
				return true
			}
			p.render(frame)
		}
	}
}

func (p *Presenter) tick(s *session) (Frame, bool, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current != s {
		return Frame{}, false, false
	}
	p.timeLeft--
	if p.timeLeft <= 0 {
		return Frame{}, true, true
	}
	return Frame{State: StateDisplaying, Token: p.token, Payload: p.payload, TimeLeft: p.timeLeft}, false, true
}

// issue moves the session through Generating to Displaying and returns the
// ticker for the new token's countdown. The ticker starts once the token is
// in hand, so issuance latency never eats into the displayed time. It
// returns false when the session ended, either closed or failed.
func (p *Presenter) issue(ctx context.Context, s *session, cardID, actionType string) (Ticker, bool) {
	if !p.transition(s, Frame{State: StateGenerating}) {
		return nil, false
	}

	token, err := p.issuer.IssueToken(ctx, cardID, actionType)
	if ctx.Err() != nil {
		return nil, false
	}
	var payload string
	if err == nil {
		payload, err = EncodeTokenPayload(*token)
	}
	if err != nil {
		p.log.Warn("qr token issuance failed", "card_id", cardID, "action", actionType, "err", err)
		p.fail(s, err)
		return nil, false
	}

	ticker := p.newTicker()
	shown := p.transition(s, Frame{
		State:    StateDisplaying,
		Token:    token,
		Payload:  payload,
		TimeLeft: int(domain.TokenTTL / time.Second),
	})
	if !shown {
		ticker.Stop()
		return nil, false
	}
	return ticker, true
}

// transition applies frame to the presenter state and renders it, unless
// the session was closed meanwhile.
func (p *Presenter) transition(s *session, frame Frame) bool {
	p.mu.Lock()
	if p.current != s {
		p.mu.Unlock()
		return false
	}
	p.state = frame.State
	p.token = frame.Token
	p.payload = frame.Payload
	p.timeLeft = frame.TimeLeft
	p.mu.Unlock()

	p.render(frame)
	return true
}

func (p *Presenter) fail(s *session, err error) {
	p.mu.Lock()
	if p.current != s {
		p.mu.Unlock()
		return
	}
	p.current = nil
	p.state = StateIdle
	p.token = nil
	p.payload = ""
	p.timeLeft = 0
	p.mu.Unlock()

	s.cancel()
	p.render(Frame{State: StateIdle, Err: err})
}
