package service

import (
	"context"
	"sync"
	"time"

	"device_inventory/internal/catalog"
	"device_inventory/internal/logger"
	"device_inventory/internal/metrics"
	"device_inventory/internal/models"

	"github.com/google/uuid"
)

// Fetcher runs the predefined query for a selector.
type Fetcher interface {
	Fetch(ctx context.Context, sel models.ChartSelector) ([]models.Record, error)
}

// Writer turns a confirmed export request into a file.
type Writer interface {
	Export(ctx context.Context, req ExportRequest) (ExportResult, error)
}

type session struct {
	owner int

	// flow serializes dialog dispatch so only one export flow runs at a time.
	flow sync.Mutex

	mu       sync.Mutex
	snap     Snapshot
	lastSeen time.Time
	subs     map[uint64]chan View
	nextSub  uint64
	closed   bool
}

// update applies fn to the current snapshot and fans the new view out to
// subscribers. Subscribers only ever see the latest view.
func (s *session) update(now time.Time, fn func(Snapshot) Snapshot) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = fn(s.snap)
	s.snap.UpdatedAt = now
	s.lastSeen = now
	view := s.snap.View()
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		ch <- view
	}
	return s.snap
}

func (s *session) current(now time.Time) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = now
	return s.snap
}

func (s *session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for id, ch := range s.subs {
		close(ch)
		delete(s.subs, id)
	}
}

// Sessions owns every open list session.
type Sessions struct {
	fetcher  Fetcher
	exporter Writer
	log      *logger.Logger
	metrics  *metrics.Metrics
	idleTTL  time.Duration
	now      func() time.Time

	mu       sync.RWMutex
	sessions map[string]*session
}

func NewSessions(f Fetcher, w Writer, idleTTL time.Duration, log *logger.Logger, m *metrics.Metrics) *Sessions {
	return &Sessions{
		fetcher:  f,
		exporter: w,
		log:      log,
		metrics:  m,
		idleTTL:  idleTTL,
		now:      time.Now,
		sessions: make(map[string]*session),
	}
}

// Open starts a session for sel owned by operatorID and runs its first fetch.
func (m *Sessions) Open(ctx context.Context, operatorID int, sel models.ChartSelector) (View, error) {
	sel = sel.Normalize()
	now := m.now()
	id := uuid.NewString()
	s := &session{owner: operatorID, snap: newSnapshot(id, sel, now), lastSeen: now, subs: make(map[uint64]chan View)}

	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()
	m.metrics.SessionOpened()
	m.log.Infow("session_opened", "session", id, "operator", operatorID, "type", sel.Type, "label", sel.Label)

	return m.refresh(ctx, s).View(), nil
}

// get resolves a session for its owner. Sessions of other operators are
// reported as missing.
func (m *Sessions) get(operatorID int, id string) (*session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok || s.owner != operatorID {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// View returns the current view of a session.
func (m *Sessions) View(operatorID int, id string) (View, error) {
	s, err := m.get(operatorID, id)
	if err != nil {
		return View{}, err
	}
	return s.current(m.now()).View(), nil
}

// Search replaces the query and recomputes the visible subset.
func (m *Sessions) Search(operatorID int, id, query string) (View, error) {
	s, err := m.get(operatorID, id)
	if err != nil {
		return View{}, err
	}
	snap := s.update(m.now(), func(cur Snapshot) Snapshot { return ApplySearch(cur, query) })
	return snap.View(), nil
}

// Refresh refetches the session's records.
func (m *Sessions) Refresh(ctx context.Context, operatorID int, id string) (View, error) {
	s, err := m.get(operatorID, id)
	if err != nil {
		return View{}, err
	}
	return m.refresh(ctx, s).View(), nil
}

// refresh issues a new generation, fetches outside the lock and commits only
// if no newer fetch was issued meanwhile. Fetch errors leave the list as it was.
func (m *Sessions) refresh(ctx context.Context, s *session) Snapshot {
	started := s.update(m.now(), BeginFetch)
	gen := started.Pending

	records, err := m.fetcher.Fetch(ctx, started.Selector)
	if err != nil {
		m.log.Errorw("fetch_failed", "session", started.SessionID, "type", started.Selector.Type, "label", started.Selector.Label, "err", err)
		return s.current(m.now())
	}

	stale := false
	snap := s.update(m.now(), func(cur Snapshot) Snapshot {
		next, ok := ApplyFetch(cur, gen, records)
		stale = !ok
		return next
	})
	if stale {
		m.metrics.StaleFetch()
		m.log.Debugw("fetch_discarded", "session", started.SessionID, "generation", gen)
	}
	return snap
}

// Dispatch feeds one dialog event to the session's confirmation flow. A
// confirmed export runs synchronously and the flow returns to idle.
func (m *Sessions) Dispatch(ctx context.Context, operatorID int, id string, ev DialogEvent) (DialogStep, error) {
	s, err := m.get(operatorID, id)
	if err != nil {
		return DialogStep{}, err
	}
	s.flow.Lock()
	defer s.flow.Unlock()

	cur := s.current(m.now())
	next, effect, err := NextDialog(cur.Dialog, cur.Selector.Type, ev)
	if err != nil {
		return DialogStep{State: cur.Dialog}, err
	}
	title := catalog.Title(cur.Selector.Type, cur.Selector.Label)

	switch effect {
	case EffectShowPrompt:
		snap := s.update(m.now(), withDialog(next))
		return DialogStep{State: next, Prompt: exportPrompt(snap, title)}, nil
	case EffectShowRangePrompt:
		s.update(m.now(), withDialog(next))
		return DialogStep{State: next, Prompt: rangePrompt()}, nil
	case EffectNone:
		s.update(m.now(), withDialog(next))
		return DialogStep{State: next}, nil
	}

	now := m.now()
	snap := s.update(now, func(cur Snapshot) Snapshot {
		if effect == EffectApplyRangeAndExport {
			cur, _ = ApplyRangeChoice(cur, ev.Window, now)
		}
		cur.Dialog = next
		return cur
	})

	req := ExportRequest{OperatorID: s.owner, Selector: snap.Selector, Records: snap.Filtered, Title: title}
	if snap.Selector.Type == models.ChartError {
		r := snap.Range
		req.Range = &r
	}
	res, err := m.exporter.Export(ctx, req)
	s.update(m.now(), withDialog(DialogIdle))
	if err != nil {
		return DialogStep{State: DialogIdle, Outcome: failureOutcome()}, nil
	}
	return DialogStep{State: DialogIdle, Outcome: successOutcome(res)}, nil
}

func withDialog(d DialogState) func(Snapshot) Snapshot {
	return func(s Snapshot) Snapshot {
		s.Dialog = d
		return s
	}
}

// Subscribe streams views of a session. The channel holds at most the latest
// view and is closed when the session closes or cancel is called.
func (m *Sessions) Subscribe(operatorID int, id string) (<-chan View, func(), error) {
	s, err := m.get(operatorID, id)
	if err != nil {
		return nil, nil, err
	}
	ch := make(chan View, 1)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, nil, ErrSessionNotFound
	}
	sub := s.nextSub
	s.nextSub++
	s.subs[sub] = ch
	ch <- s.snap.View()
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if c, ok := s.subs[sub]; ok {
			delete(s.subs, sub)
			close(c)
		}
	}
	return ch, cancel, nil
}

// Close ends a session. It has no effect beyond releasing the session.
func (m *Sessions) Close(operatorID int, id string) error {
	if _, err := m.get(operatorID, id); err != nil {
		return err
	}
	return m.remove(id)
}

func (m *Sessions) remove(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	s.close()
	m.metrics.SessionClosed()
	m.log.Infow("session_closed", "session", id, "operator", s.owner)
	return nil
}

// Len reports the number of open sessions.
func (m *Sessions) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Run reaps idle sessions every tick until ctx is cancelled.
func (m *Sessions) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := m.reap(); n > 0 {
				m.log.Infow("sessions_reaped", "count", n, "open", m.Len())
			}
		}
	}
}

func (m *Sessions) reap() int {
	deadline := m.now().Add(-m.idleTTL)
	var idle []string

	m.mu.RLock()
	for id, s := range m.sessions {
		s.mu.Lock()
		if s.lastSeen.Before(deadline) && len(s.subs) == 0 {
			idle = append(idle, id)
		}
		s.mu.Unlock()
	}
	m.mu.RUnlock()

	n := 0
	for _, id := range idle {
		if m.remove(id) == nil {
			n++
		}
	}
	return n
}
