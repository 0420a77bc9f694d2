package state

import (
	"log/slog"
	"sync"
	"time"

	"github.com/ajitpratap0/focusflow/internal/metrics"
	"github.com/ajitpratap0/focusflow/internal/models"
	"github.com/ajitpratap0/focusflow/internal/query"
)

// Listener observes committed transitions.
type Listener func(prev, next AppState)

// Store owns the single AppState value. All mutation goes through Dispatch.
type Store struct {
	env    Env
	logger *slog.Logger

	// dispatchMu serializes reductions and listener notification, so
	// listeners observe commits in order.
	dispatchMu sync.Mutex

	mu    sync.RWMutex
	state AppState

	listenersMu sync.Mutex
	listeners   map[int]Listener
	nextID      int
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the wall clock.
func WithClock(c Clock) Option {
	return func(s *Store) { s.env.Clock = c }
}

// WithIDs overrides the id generator.
func WithIDs(g IDGenerator) Option {
	return func(s *Store) { s.env.IDs = g }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// New creates a Store holding the initial state.
func New(opts ...Option) *Store {
	s := &Store{
		env:       DefaultEnv(),
		logger:    slog.Default(),
		listeners: make(map[int]Listener),
	}
	for _, o := range opts {
		o(s)
	}
	s.state = Initial(s.env.Clock.Now())
	return s
}

// Dispatch applies a and notifies listeners. Listeners run synchronously
// on the calling goroutine and must not call Dispatch themselves.
func (s *Store) Dispatch(a Action) {
	s.commit(a)
}

func (s *Store) commit(a Action) AppState {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	s.mu.RLock()
	prev := s.state
	s.mu.RUnlock()

	next := Reduce(prev, a, s.env)

	s.mu.Lock()
	s.state = next
	s.mu.Unlock()

	metrics.Inc(metrics.Dispatches)
	s.logger.Debug("dispatch", "action", a.Kind())

	for _, l := range s.snapshotListeners() {
		l(prev, next)
	}
	return next
}

func (s *Store) snapshotListeners() []Listener {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()
	out := make([]Listener, 0, len(s.listeners))
	for id := 0; id < s.nextID; id++ {
		if l, ok := s.listeners[id]; ok {
			out = append(out, l)
		}
	}
	return out
}

// Subscribe registers l and returns a function that removes it.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.listenersMu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.listenersMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.listenersMu.Lock()
			delete(s.listeners, id)
			s.listenersMu.Unlock()
		})
	}
}

// State returns the current state.
func (s *Store) State() AppState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Now returns the store clock's current time.
func (s *Store) Now() time.Time { return s.env.Clock.Now() }

// Today returns the store clock's current date as YYYY-MM-DD.
func (s *Store) Today() string { return query.DateKey(s.Now()) }

// AddIdea dispatches ADD_IDEA and returns the created idea.
func (s *Store) AddIdea(d IdeaDraft) models.Idea {
	return s.commit(AddIdea{Draft: d}).Ideas[0]
}

// UpdateIdea dispatches UPDATE_IDEA.
func (s *Store) UpdateIdea(p IdeaPatch) { s.Dispatch(UpdateIdea{Patch: p}) }

// DeleteIdea dispatches DELETE_IDEA.
func (s *Store) DeleteIdea(id string) { s.Dispatch(DeleteIdea{ID: id}) }

// ArchiveIdea dispatches ARCHIVE_IDEA.
func (s *Store) ArchiveIdea(id string) { s.Dispatch(ArchiveIdea{ID: id}) }

// CompleteIdea dispatches COMPLETE_IDEA.
func (s *Store) CompleteIdea(id string) { s.Dispatch(CompleteIdea{ID: id}) }

// AddEvent dispatches ADD_EVENTO and returns the created event.
func (s *Store) AddEvent(d EventDraft) models.AgendaEvent {
	return s.commit(AddEvent{Draft: d}).Events[0]
}

// UpdateEvent dispatches UPDATE_EVENTO.
func (s *Store) UpdateEvent(p EventPatch) { s.Dispatch(UpdateEvent{Patch: p}) }

// DeleteEvent dispatches DELETE_EVENTO.
func (s *Store) DeleteEvent(id string) { s.Dispatch(DeleteEvent{ID: id}) }

// CompleteEvent dispatches COMPLETE_EVENTO.
func (s *Store) CompleteEvent(id string) { s.Dispatch(CompleteEvent{ID: id}) }

// IdeasToday returns active ideas for today or undated.
func (s *Store) IdeasToday() []models.Idea {
	return query.IdeasToday(s.State().Ideas, s.Today())
}

// ActiveIdeas returns ideas that are neither archived nor completed.
func (s *Store) ActiveIdeas() []models.Idea {
	return query.ActiveIdeas(s.State().Ideas)
}

// RecentIdeas returns ideas created in the last seven days, newest first.
func (s *Store) RecentIdeas() []models.Idea {
	return query.RecentIdeas(s.State().Ideas, s.Now())
}

// ArchivedIdeas returns archived ideas.
func (s *Store) ArchivedIdeas() []models.Idea {
	return query.ArchivedIdeas(s.State().Ideas)
}

// IdeasByDate returns active ideas scheduled on date.
func (s *Store) IdeasByDate(date string) []models.Idea {
	return query.IdeasByDate(s.State().Ideas, date)
}

// IdeasByLayer returns active ideas in layer.
func (s *Store) IdeasByLayer(layer models.Layer) []models.Idea {
	return query.IdeasByLayer(s.State().Ideas, layer)
}

// SelectedIdea returns the selected idea, if any.
func (s *Store) SelectedIdea() (models.Idea, bool) {
	st := s.State()
	if st.SelectedIdeaID == "" {
		return models.Idea{}, false
	}
	return st.FindIdea(st.SelectedIdeaID)
}

// EventsToday returns pending events for today.
func (s *Store) EventsToday() []models.AgendaEvent {
	return query.EventsToday(s.State().Events, s.Today())
}

// EventsByDate returns pending events on date.
func (s *Store) EventsByDate(date string) []models.AgendaEvent {
	return query.EventsByDate(s.State().Events, date)
}

// UpcomingEvents returns pending events from today on, in calendar order.
func (s *Store) UpcomingEvents() []models.AgendaEvent {
	return query.UpcomingEvents(s.State().Events, s.Today())
}

// CompletedEvents returns completed events.
func (s *Store) CompletedEvents() []models.AgendaEvent {
	return query.CompletedEvents(s.State().Events)
}

// Stats summarizes the current state.
func (s *Store) Stats() models.Stats {
	st := s.State()
	return query.ComputeStats(st.Ideas, st.Events, s.Today())
}
