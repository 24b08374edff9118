package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lk16/reversi/internal/othello"
	"github.com/lk16/reversi/internal/search"
)

// Store persists the current position of sessions.
type Store interface {
	Save(ctx context.Context, rec Record) error

	// Load returns ErrNotFound if there is no record with the given id.
	Load(ctx context.Context, id uuid.UUID) (Record, error)

	Delete(ctx context.Context, id uuid.UUID) error
}

// MoveCache caches search results. Searches are deterministic, so a cached
// move is exactly what a new search would return.
type MoveCache interface {
	Get(ctx context.Context, board othello.Board, player othello.Player, difficulty search.Difficulty) (othello.Position, bool, error)
	Set(ctx context.Context, board othello.Board, player othello.Player, difficulty search.Difficulty, move othello.Position) error
}

// Option configures a Manager.
type Option func(*Manager)

// WithStore makes the manager persist sessions in store.
func WithStore(store Store) Option {
	return func(m *Manager) {
		m.store = store
	}
}

// WithMoveCache makes the manager look up computer moves in cache before searching.
func WithMoveCache(cache MoveCache) Option {
	return func(m *Manager) {
		m.cache = cache
	}
}

type subscriber struct {
	ch chan Snapshot

	// done is closed together with ch
	done      chan struct{}
	closeOnce sync.Once
}

func newSubscriber() *subscriber {
	return &subscriber{
		ch:   make(chan Snapshot, 4),
		done: make(chan struct{}),
	}
}

func (s *subscriber) close() {
	s.closeOnce.Do(func() {
		close(s.ch)
		close(s.done)
	})
}

// Manager owns all running sessions.
type Manager struct {
	// mu protects sessions and subs, it is never held during a search
	mu       sync.Mutex
	sessions map[uuid.UUID]*session
	subs     map[uuid.UUID]map[*subscriber]struct{}

	store Store
	cache MoveCache
}

// NewManager creates a new Manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		sessions: make(map[uuid.UUID]*session),
		subs:     make(map[uuid.UUID]map[*subscriber]struct{}),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Create starts a new session. In HumanVsComputer with the computer playing
// black, the computer plays its first move right away.
func (m *Manager) Create(ctx context.Context, opts Options) (Snapshot, error) {
	mode, err := ParseMode(string(opts.Mode))
	if err != nil {
		return Snapshot{}, err
	}

	difficulty := opts.Difficulty
	if difficulty == 0 {
		difficulty = search.Medium
	}
	if difficulty < 0 {
		return Snapshot{}, fmt.Errorf("%w: difficulty must be positive", ErrInvalidInput)
	}

	computer := opts.Computer
	switch computer {
	case 0:
		computer = othello.White
	case othello.Black, othello.White:
	default:
		return Snapshot{}, fmt.Errorf("%w: unknown computer player %d", ErrInvalidInput, computer)
	}

	s := newSession(uuid.New(), mode, computer, difficulty, othello.NewGame())
	s.created = time.Now()
	s.updated = s.created

	s.mu.Lock()
	defer s.mu.Unlock()

	moves := m.playComputerTurns(ctx, s)

	if err := m.save(ctx, s); err != nil {
		return Snapshot{}, err
	}

	m.mu.Lock()
	m.sessions[s.id] = s
	m.mu.Unlock()

	slog.Info("created game", "id", s.id, "mode", mode, "difficulty", difficulty)
	return s.snapshot(moves), nil
}

// get looks up a session in memory, then in the store.
func (m *Manager) get(ctx context.Context, id uuid.UUID) (*session, error) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	m.mu.Unlock()

	if ok {
		return s, nil
	}

	if m.store == nil {
		return nil, ErrNotFound
	}

	rec, err := m.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Another request may have restored it in the meantime.
	if s, ok = m.sessions[id]; ok {
		return s, nil
	}

	s = restoreSession(rec)
	m.sessions[id] = s

	slog.Debug("restored game", "id", id)
	return s, nil
}

// Get returns a snapshot of a session.
func (m *Manager) Get(ctx context.Context, id uuid.UUID) (Snapshot, error) {
	s, err := m.get(ctx, id)
	if err != nil {
		return Snapshot{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.deleted {
		return Snapshot{}, ErrNotFound
	}

	return s.snapshot(nil), nil
}

// Play plays a move for a human player. In HumanVsComputer the computer
// replies until it is the human's turn again or the game is over.
func (m *Manager) Play(ctx context.Context, id uuid.UUID, pos othello.Position) (Snapshot, error) {
	s, err := m.get(ctx, id)
	if err != nil {
		return Snapshot{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.deleted {
		return Snapshot{}, ErrNotFound
	}

	if s.game.IsGameOver() {
		return Snapshot{}, ErrGameOver
	}

	player := s.game.CurrentPlayer()
	if _, ok := s.bots[player]; ok {
		return Snapshot{}, ErrNotYourTurn
	}

	prev := s.record()

	if !s.game.MakeMove(pos.Row, pos.Col) {
		return Snapshot{}, fmt.Errorf("%w: %s", ErrInvalidMove, pos)
	}

	moves := []Move{{Player: player, Position: pos}}
	moves = append(moves, m.playComputerTurns(ctx, s)...)

	return m.commit(ctx, s, prev, moves)
}

// ComputerMove lets the computer play one move for the player to move.
func (m *Manager) ComputerMove(ctx context.Context, id uuid.UUID) (Snapshot, error) {
	s, err := m.get(ctx, id)
	if err != nil {
		return Snapshot{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.deleted {
		return Snapshot{}, ErrNotFound
	}

	if len(s.bots) == 0 {
		return Snapshot{}, ErrNoComputer
	}

	if s.game.IsGameOver() {
		return Snapshot{}, ErrGameOver
	}

	player := s.game.CurrentPlayer()
	if _, ok := s.bots[player]; !ok {
		return Snapshot{}, ErrNotYourTurn
	}

	prev := s.record()

	move, ok := m.computerMove(ctx, s)
	if !ok {
		return Snapshot{}, fmt.Errorf("computer found no move for %s", player)
	}

	return m.commit(ctx, s, prev, []Move{move})
}

// Reset starts a new game in an existing session.
func (m *Manager) Reset(ctx context.Context, id uuid.UUID) (Snapshot, error) {
	s, err := m.get(ctx, id)
	if err != nil {
		return Snapshot{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.deleted {
		return Snapshot{}, ErrNotFound
	}

	prev := s.record()

	s.game.ResetGame()
	moves := m.playComputerTurns(ctx, s)

	return m.commit(ctx, s, prev, moves)
}

// SetDifficulty changes the difficulty of the computer players in a session.
func (m *Manager) SetDifficulty(ctx context.Context, id uuid.UUID, difficulty search.Difficulty) (Snapshot, error) {
	if difficulty < 1 {
		return Snapshot{}, fmt.Errorf("%w: difficulty must be positive", ErrInvalidInput)
	}

	s, err := m.get(ctx, id)
	if err != nil {
		return Snapshot{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.deleted {
		return Snapshot{}, ErrNotFound
	}

	prev := s.record()
	s.setDifficulty(difficulty)

	return m.commit(ctx, s, prev, nil)
}

// Delete removes a session and closes its subscriptions. It waits for
// a running operation on the session to finish first.
func (m *Manager) Delete(ctx context.Context, id uuid.UUID) error {
	s, err := m.get(ctx, id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.deleted {
		return ErrNotFound
	}

	if m.store != nil {
		if err := m.store.Delete(ctx, id); err != nil {
			return fmt.Errorf("failed to delete game: %w", err)
		}
	}

	s.deleted = true

	m.mu.Lock()
	delete(m.sessions, id)
	subs := m.subs[id]
	delete(m.subs, id)
	m.mu.Unlock()

	for sub := range subs {
		sub.close()
	}

	return nil
}

// Subscribe registers a subscriber that receives a snapshot after every
// change of the session. The subscription ends when ctx is done or the
// returned function is called. Slow subscribers are dropped.
func (m *Manager) Subscribe(ctx context.Context, id uuid.UUID) (<-chan Snapshot, func(), error) {
	s, err := m.get(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	sub := newSubscriber()

	s.mu.Lock()
	if s.deleted {
		s.mu.Unlock()
		return nil, nil, ErrNotFound
	}

	m.mu.Lock()
	set := m.subs[id]
	if set == nil {
		set = make(map[*subscriber]struct{})
		m.subs[id] = set
	}
	set[sub] = struct{}{}
	m.mu.Unlock()
	s.mu.Unlock()

	unsubOnce := &sync.Once{}
	unsub := func() {
		unsubOnce.Do(func() {
			m.mu.Lock()
			if set, ok := m.subs[id]; ok {
				delete(set, sub)
			}
			m.mu.Unlock()
			sub.close()
		})
	}

	go func() {
		select {
		case <-ctx.Done():
			unsub()
		case <-sub.done:
		}
	}()

	return sub.ch, unsub, nil
}

// playComputerTurns lets the computer play as long as it is its turn. It
// assumes s.mu is locked.
func (m *Manager) playComputerTurns(ctx context.Context, s *session) []Move {
	moves := make([]Move, 0)

	for s.isComputerTurn() {
		move, ok := m.computerMove(ctx, s)
		if !ok {
			break
		}
		moves = append(moves, move)
	}

	return moves
}

// computerMove finds and plays a move for the player to move. It assumes
// s.mu is locked and that the player to move has a bot.
func (m *Manager) computerMove(ctx context.Context, s *session) (Move, bool) {
	player := s.game.CurrentPlayer()
	bot := s.bots[player]

	board := s.game.GetBoardCopy()
	legal := s.game.GetValidMoves(player)

	pos, ok := m.cachedMove(ctx, board, player, bot.Difficulty(), legal)
	if !ok {
		pos, ok = bot.BestMove(board, legal)
		if !ok {
			return Move{}, false
		}

		if m.cache != nil {
			if err := m.cache.Set(ctx, board, player, bot.Difficulty(), pos); err != nil {
				slog.Warn("failed to cache move", "error", err)
			}
		}
	}

	if !s.game.MakeMove(pos.Row, pos.Col) {
		// The search only returns legal moves, this is a bug.
		slog.Error("computer move rejected", "id", s.id, "move", pos, "board", board)
		return Move{}, false
	}

	return Move{Player: player, Position: pos, Computer: true}, true
}

func (m *Manager) cachedMove(
	ctx context.Context,
	board othello.Board,
	player othello.Player,
	difficulty search.Difficulty,
	legal []othello.Position,
) (othello.Position, bool) {
	if m.cache == nil {
		return othello.Position{}, false
	}

	pos, ok, err := m.cache.Get(ctx, board, player, difficulty)
	if err != nil {
		slog.Warn("failed to look up cached move", "error", err)
		return othello.Position{}, false
	}

	if !ok {
		return othello.Position{}, false
	}

	for _, move := range legal {
		if move == pos {
			return pos, true
		}
	}

	slog.Warn("ignoring illegal cached move", "board", board, "move", pos)
	return othello.Position{}, false
}

// commit stores and publishes a changed session. If storing fails the
// session is rolled back to prev. It assumes s.mu is locked.
func (m *Manager) commit(ctx context.Context, s *session, prev Record, moves []Move) (Snapshot, error) {
	s.updated = time.Now()

	if err := m.save(ctx, s); err != nil {
		s.rollback(prev)
		return Snapshot{}, err
	}

	snapshot := s.snapshot(moves)
	m.publish(s.id, snapshot)
	return snapshot, nil
}

// save assumes s.mu is locked.
func (m *Manager) save(ctx context.Context, s *session) error {
	if m.store == nil {
		return nil
	}

	if err := m.store.Save(ctx, s.record()); err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}

	return nil
}

func (m *Manager) publish(id uuid.UUID, snapshot Snapshot) {
	var toDrop []*subscriber

	m.mu.Lock()
	defer m.mu.Unlock()

	for sub := range m.subs[id] {
		select {
		case sub.ch <- snapshot:
		default:
			sub.close()
			toDrop = append(toDrop, sub)
		}
	}

	for _, sub := range toDrop {
		delete(m.subs[id], sub)
	}
}

// IsNotFound checks if err means that a session does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
