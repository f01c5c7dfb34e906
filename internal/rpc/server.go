package rpc

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/danielpatrickdp/mindreader/internal/game"
	"github.com/danielpatrickdp/mindreader/internal/logging"
	"github.com/danielpatrickdp/mindreader/internal/metrics"
	"github.com/danielpatrickdp/mindreader/internal/predictor"
	"github.com/danielpatrickdp/mindreader/internal/rng"
	"github.com/danielpatrickdp/mindreader/internal/state"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// #region mailbox
// mailbox is a game.Source fed one choice at a time by Play. It reports
// exhaustion whenever it is empty, which is how EndSession lets the coroutine
// finish.
type mailbox struct {
	pending []int
}

func (m *mailbox) push(c int) { m.pending = append(m.pending, c) }

func (m *mailbox) Next() (int, bool) {
	if len(m.pending) == 0 {
		return 0, false
	}
	c := m.pending[0]
	m.pending = m.pending[1:]
	return c, true
}

// #endregion mailbox

// #region server-struct
type session struct {
	id      string
	seed    uint64
	engine  *predictor.Engine
	inbox   *mailbox
	driver  *game.Coroutine // nil until the first Play
	tally   game.Tally
	persist bool
}

// Server hosts one predictor per session. Each Play is one coroutine turn:
// the choice is exposed with the standing prediction and the engine learns
// from it on the next resume.
type Server struct {
	mu       sync.Mutex
	sessions map[string]*session

	store   *state.Store
	metrics *metrics.Recorder
	logger  *slog.Logger
	seeder  func() uint64
}

// Option configures a Server.
type Option func(*Server)

// WithStore persists sessions and turns.
func WithStore(s *state.Store) Option { return func(srv *Server) { srv.store = s } }

// WithMetrics records turn counters.
func WithMetrics(m *metrics.Recorder) Option { return func(srv *Server) { srv.metrics = m } }

// WithLogger sets the diagnostic logger.
func WithLogger(l *slog.Logger) Option { return func(srv *Server) { srv.logger = l } }

// WithSeeder fixes how session seeds are chosen.
func WithSeeder(f func() uint64) Option { return func(srv *Server) { srv.seeder = f } }

// NewServer returns an in-memory server unless WithStore is given.
func NewServer(opts ...Option) *Server {
	srv := &Server{
		sessions: make(map[string]*session),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		seeder:   rng.NewSeed,
	}
	for _, o := range opts {
		o(srv)
	}
	return srv
}

// #endregion server-struct

// #region new-session
// NewSession starts a game and returns its id.
func (s *Server) NewSession(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.StringValue, error) {
	seed := s.seeder()
	sess := &session{seed: seed, inbox: &mailbox{}}

	if s.store != nil {
		rec, err := s.store.CreateSession(game.KindCoroutine, seed)
		if err != nil {
			return nil, status.Errorf(codes.Internal, "create session: %v", err)
		}
		sess.id = rec.SessionID
		sess.persist = true
	} else {
		sess.id = uuid.New().String()
	}
	sess.engine = predictor.New(rng.New(seed))

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.SessionOpened()
	}
	s.logger.InfoContext(ctx, "session opened", "session_id", sess.id, "seed", seed)
	return wrapperspb.String(sess.id), nil
}

// #endregion new-session

// #region play
// Play submits the opponent's choice and returns the turn with the prediction
// committed before the choice was seen.
func (s *Server) Play(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fields := req.GetFields()
	id := fields["session_id"].GetStringValue()
	if id == "" {
		return nil, status.Error(codes.InvalidArgument, "session_id required")
	}
	cv, ok := fields["choice"]
	if !ok {
		return nil, status.Error(codes.InvalidArgument, "choice required")
	}
	if _, isNum := cv.GetKind().(*structpb.Value_NumberValue); !isNum {
		return nil, status.Error(codes.InvalidArgument, "choice must be a number")
	}
	c := cv.GetNumberValue()
	if c != 0 && c != 1 {
		return nil, status.Errorf(codes.InvalidArgument, "choice must be 0 or 1, got %v", c)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, status.Errorf(codes.NotFound, "session %s not found", id)
	}

	sess.inbox.push(int(c))
	if sess.driver == nil {
		sess.driver = game.NewCoroutine(sess.engine, sess.inbox)
	} else {
		sess.driver.Advance()
	}
	turn := sess.driver.Current()
	sess.tally.Add(turn)

	if sess.persist {
		err := logging.LogTurn(s.store.DB(), logging.TurnEntry{
			SessionID:  sess.id,
			Turn:       turn.Number,
			Choice:     turn.Choice,
			Prediction: turn.Prediction,
			Guessed:    turn.Guessed,
			Driver:     game.KindCoroutine,
		})
		if err != nil {
			s.logger.ErrorContext(ctx, "turn log failed", "session_id", sess.id, "error", err)
		}
	}
	if s.metrics != nil {
		s.metrics.Observe(game.KindCoroutine, turn)
	}

	return turnStruct(turn, sess.tally)
}

// #endregion play

// #region end-session
// EndSession finishes the game and returns the final tally.
func (s *Server) EndSession(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	id := req.GetValue()

	s.mu.Lock()
	sess, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
	}
	s.mu.Unlock()

	if !ok {
		return nil, status.Errorf(codes.NotFound, "session %s not found", id)
	}
	if sess.driver != nil {
		// Resume once more so the engine learns the last choice.
		sess.driver.Advance()
	}

	if sess.persist {
		err := s.store.FinishSession(id, state.Totals{
			Turns:      sess.tally.Turns,
			PlayerWins: sess.tally.PlayerWins,
			Guesses:    sess.tally.Guesses,
		})
		if err != nil {
			return nil, status.Errorf(codes.Internal, "finish session: %v", err)
		}
	}
	if s.metrics != nil {
		s.metrics.SessionClosed()
	}
	s.logger.InfoContext(ctx, "session closed", "session_id", id,
		"turns", sess.tally.Turns, "machine_wins", sess.tally.MachineWins())

	return tallyStruct(sess.tally)
}

// #endregion end-session

// #region encoding
func turnStruct(t game.Turn, tally game.Tally) (*structpb.Struct, error) {
	st, err := structpb.NewStruct(map[string]any{
		"turn":        t.Number,
		"choice":      t.Choice,
		"prediction":  t.Prediction,
		"guessed":     t.Guessed,
		"player_wins": tally.PlayerWins,
		"guesses":     tally.Guesses,
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode turn: %v", err)
	}
	return st, nil
}

func tallyStruct(t game.Tally) (*structpb.Struct, error) {
	st, err := structpb.NewStruct(map[string]any{
		"turns":        t.Turns,
		"player_wins":  t.PlayerWins,
		"machine_wins": t.MachineWins(),
		"guesses":      t.Guesses,
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode tally: %v", err)
	}
	return st, nil
}

func intField(st *structpb.Struct, key string) (int, error) {
	v, ok := st.GetFields()[key]
	if !ok {
		return 0, fmt.Errorf("missing field %q", key)
	}
	return int(v.GetNumberValue()), nil
}

// #endregion encoding
