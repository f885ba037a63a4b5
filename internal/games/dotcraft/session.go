package dotcraft

import (
	"errors"
	"fmt"
	"time"
)

// DefaultRetries is how many times a session regenerates after
// ErrGenerationExhausted before giving up.
const DefaultRetries = 3

// SolvedEvent is emitted once per solved board.
type SolvedEvent struct {
	Size           int
	Targets        int
	ElapsedSeconds float64
	Moves          int
	Record         RecordEntry // entry after this completion
	NewBest        bool
}

// Outcome is the result of feeding one input into a session.
type Outcome struct {
	Move   *Move        // applied move, nil if none
	Solved *SolvedEvent // non-nil when the move solved the board
}

// Session is one player's game: a board, its gesture state and the clock.
// A session is not safe for concurrent use; feed it one event at a time.
type Session struct {
	size    int
	targets int
	board   *Board
	moves   int
	started time.Time

	gen        *Generator
	classifier *Classifier
	records    *RecordStore
	now        func() time.Time
	retries    int
}

// Option configures a Session.
type Option func(*Session)

// WithSeed seeds the session's generator.
func WithSeed(seed int64) Option {
	return func(s *Session) {
		s.gen = NewGenerator(seed)
	}
}

// WithGenerator replaces the session's generator.
func WithGenerator(g *Generator) Option {
	return func(s *Session) {
		s.gen = g
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// WithRecords attaches a shared record store.
func WithRecords(r *RecordStore) Option {
	return func(s *Session) {
		s.records = r
	}
}

// WithLayout sets the pointer geometry and drag slop. The layout size is
// always taken from the session.
func WithLayout(l Layout, slop float64) Option {
	return func(s *Session) {
		s.classifier = NewClassifier(l, slop)
	}
}

// WithRetries sets how many regenerations follow ErrGenerationExhausted.
func WithRetries(n int) Option {
	return func(s *Session) {
		s.retries = n
	}
}

// NewSession validates the configuration and generates the first board.
func NewSession(size, targets int, opts ...Option) (*Session, error) {
	s := &Session{
		now:     time.Now,
		retries: DefaultRetries,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.gen == nil {
		s.gen = NewGenerator(time.Now().UnixNano())
	}
	if s.records == nil {
		s.records = NewRecordStore()
	}
	if s.classifier == nil {
		s.classifier = NewClassifier(Layout{CellW: 1, CellH: 1}, 0)
	}

	if err := s.Configure(size, targets); err != nil {
		return nil, err
	}
	return s, nil
}

// Configure switches to a new configuration. Any gesture in progress is
// discarded before the new board is generated, and the clock restarts.
// On error the session keeps its previous board.
func (s *Session) Configure(size, targets int) error {
	if err := s.gen.CheckConfiguration(size, targets); err != nil {
		return err
	}

	s.classifier.Reset()
	board, err := s.generate(size, targets)
	if err != nil {
		return err
	}

	s.size = size
	s.targets = targets
	layout := s.classifier.Layout()
	layout.Size = size
	s.classifier.SetLayout(layout)
	s.install(board)
	return nil
}

// Restart regenerates a board for the current configuration.
func (s *Session) Restart() error {
	return s.Configure(s.size, s.targets)
}

func (s *Session) generate(size, targets int) (*Board, error) {
	var err error
	for attempt := 0; attempt <= s.retries; attempt++ {
		var b *Board
		b, err = s.gen.Generate(size, targets)
		if err == nil {
			return b, nil
		}
		if !errors.Is(err, ErrGenerationExhausted) {
			return nil, err
		}
	}
	return nil, err
}

func (s *Session) install(b *Board) {
	s.board = b
	s.moves = 0
	s.started = s.now()
}

// ApplyGesture feeds one pointer event. A committed release applies its move.
func (s *Session) ApplyGesture(ev GestureEvent) (Outcome, error) {
	m, ok := s.classifier.Handle(ev)
	if !ok {
		return Outcome{}, nil
	}
	return s.ApplyMove(m)
}

// ApplyMove applies a discrete move and runs the win check. When the board
// is solved, the completion is recorded and a fresh board is generated.
// The returned Outcome is populated even when err reports a persistence or
// regeneration failure. If regeneration failed, the solved board stays but
// accepts no moves until Restart succeeds.
func (s *Session) ApplyMove(m Move) (Outcome, error) {
	if s.board.Solved() {
		return Outcome{}, fmt.Errorf("dotcraft: %w", ErrBoardSolved)
	}
	next, err := Apply(s.board, m)
	if err != nil {
		return Outcome{}, err
	}
	s.board = next
	s.moves++

	out := Outcome{Move: &m}
	if !s.board.Solved() {
		return out, nil
	}

	elapsed := s.now().Sub(s.started)
	ev := &SolvedEvent{
		Size:           s.size,
		Targets:        s.targets,
		ElapsedSeconds: float64(elapsed.Milliseconds()) / 1000,
		Moves:          s.moves,
	}
	out.Solved = ev

	var errs []error
	ev.Record, ev.NewBest, err = s.records.RecordCompletion(s.size, s.targets, ev.ElapsedSeconds)
	if err != nil {
		errs = append(errs, err)
	}

	board, err := s.generate(s.size, s.targets)
	if err != nil {
		errs = append(errs, fmt.Errorf("dotcraft: cannot start next board: %w", err))
		s.moves = 0
		s.started = s.now()
	} else {
		s.install(board)
	}
	return out, errors.Join(errs...)
}

// Board returns a copy of the current board.
func (s *Session) Board() *Board {
	return s.board.Clone()
}

// Size returns the current grid dimension.
func (s *Session) Size() int {
	return s.size
}

// Targets returns the current target count.
func (s *Session) Targets() int {
	return s.targets
}

// Moves returns the number of moves applied to the current board.
func (s *Session) Moves() int {
	return s.moves
}

// Elapsed returns the time spent on the current board.
func (s *Session) Elapsed() time.Duration {
	return s.now().Sub(s.started)
}

// Drag returns the in-progress gesture for rendering.
func (s *Session) Drag() DragView {
	return s.classifier.View()
}

// Layout returns the pointer geometry.
func (s *Session) Layout() Layout {
	return s.classifier.Layout()
}

// SetLayout updates the pointer geometry, e.g. after a terminal resize.
// A gesture in progress is dropped.
func (s *Session) SetLayout(l Layout) {
	l.Size = s.size
	s.classifier.SetLayout(l)
}

// Record returns the record for (size, targets).
func (s *Session) Record(size, targets int) RecordEntry {
	return s.records.Query(size, targets)
}

// Records returns the record store shared by this session.
func (s *Session) Records() *RecordStore {
	return s.records
}
