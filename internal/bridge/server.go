package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"

	"github.com/detrilemma/pokle-solver/internal/deck"
	"github.com/detrilemma/pokle-solver/internal/solver"
)

const pingPeriod = 30 * time.Second

// Server accepts websocket connections and runs one solver session per
// connection.
type Server struct {
	logger   *log.Logger
	clock    quartz.Clock
	upgrader websocket.Upgrader
}

// NewServer creates a bridge server. The clock is injectable so tests can
// fake the ping ticker.
func NewServer(logger *log.Logger, clock quartz.Clock) *Server {
	return &Server{
		logger: logger.WithPrefix("bridge"),
		clock:  clock,
		upgrader: websocket.Upgrader{
			// The bridge binds to localhost and the client is a userscript on
			// the puzzle page, so cross-origin upgrades are expected
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Handler returns the http handler exposing the websocket endpoint at /ws
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	return mux
}

// ListenAndServe serves the bridge on addr until the context is canceled
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Handler()}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info("bridge listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	sess := &session{
		conn:   conn,
		logger: s.logger,
		clock:  s.clock,
	}
	sess.run(r.Context())
}

// session is one connection's solver state
type session struct {
	conn   *websocket.Conn
	logger *log.Logger
	clock  quartz.Clock

	writeMu sync.Mutex
	solver  *solver.Solver
}

func (sess *session) run(ctx context.Context) {
	defer sess.conn.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Keep intermediaries from dropping the connection during long solves
	waiter := sess.clock.TickerFunc(ctx, pingPeriod, func() error {
		sess.writeMu.Lock()
		defer sess.writeMu.Unlock()
		return sess.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second))
	}, "ping")
	defer func() { _ = waiter.Wait() }()

	for {
		var msg Message
		if err := sess.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				sess.logger.Warn("connection closed unexpectedly", "error", err)
			}
			return
		}

		if err := sess.handle(&msg); err != nil {
			sess.logger.Warn("request failed", "type", msg.Type, "error", err)
			sess.send(TypeError, ErrorData{Message: err.Error()})
		}
	}
}

func (sess *session) handle(msg *Message) error {
	switch msg.Type {
	case TypeSolve:
		var data SolveData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			return fmt.Errorf("bad solve payload: %w", err)
		}
		return sess.handleSolve(data)

	case TypeFeedback:
		var data FeedbackData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			return fmt.Errorf("bad feedback payload: %w", err)
		}
		return sess.handleFeedback(data)

	default:
		return fmt.Errorf("unknown message type %q", msg.Type)
	}
}

func (sess *session) handleSolve(data SolveData) error {
	if len(data.Players) != 3 {
		return fmt.Errorf("expected 3 players, got %d", len(data.Players))
	}

	var holes [3]solver.HolePair
	for i, pair := range data.Players {
		if len(pair) != 2 {
			return fmt.Errorf("player %d: expected 2 hole cards, got %d", i+1, len(pair))
		}
		for j, text := range pair {
			card, err := deck.ParseCard(text)
			if err != nil {
				return fmt.Errorf("player %d: %w", i+1, err)
			}
			holes[i][j] = card
		}
	}

	orderings, err := toOrderings(data.Flop, data.Turn, data.River)
	if err != nil {
		return err
	}

	opts := []solver.Option{solver.WithLogger(sess.logger)}
	if data.Seed != nil {
		opts = append(opts, solver.WithSeed(*data.Seed))
	}
	if data.Sampling != nil {
		opts = append(opts, solver.WithSampling(*data.Sampling))
	}

	sv, err := solver.New(holes, orderings, opts...)
	if err != nil {
		return err
	}

	candidates := sv.Solve()
	sess.solver = sv

	reply := SolvedData{Candidates: len(candidates)}
	if len(candidates) > 0 {
		guess, err := sv.Suggest()
		if err != nil {
			return err
		}
		reply.Suggestion = boardTexts(guess)
	}
	sess.send(TypeSolved, reply)
	return nil
}

func (sess *session) handleFeedback(data FeedbackData) error {
	if sess.solver == nil {
		return fmt.Errorf("no puzzle solved yet")
	}

	feedback, err := solver.ParseFeedback(data.Colors)
	if err != nil {
		return err
	}

	remaining, err := sess.solver.ApplyFeedback(feedback)
	if err != nil {
		return err
	}

	reply := SuggestionData{Candidates: len(remaining), Won: feedback.AllGreen()}
	if !reply.Won {
		guess, err := sess.solver.Suggest()
		if err != nil {
			return err
		}
		reply.Suggestion = boardTexts(guess)
	}
	sess.send(TypeSuggestion, reply)
	return nil
}

func (sess *session) send(messageType MessageType, data interface{}) {
	msg, err := NewMessage(messageType, data, sess.clock.Now())
	if err != nil {
		sess.logger.Error("failed to marshal message", "type", messageType, "error", err)
		return
	}

	sess.writeMu.Lock()
	defer sess.writeMu.Unlock()
	if err := sess.conn.WriteJSON(msg); err != nil {
		sess.logger.Warn("failed to write message", "type", messageType, "error", err)
	}
}

func toOrderings(flop, turn, river []int) ([3]solver.Ordering, error) {
	var orderings [3]solver.Ordering
	for i, values := range [3][]int{flop, turn, river} {
		if len(values) != 3 {
			return orderings, fmt.Errorf("%s ordering must list 3 players", solver.Phase(i))
		}
		orderings[i] = solver.Ordering{values[0], values[1], values[2]}
	}
	return orderings, nil
}

func boardTexts(board solver.Board) []string {
	texts := make([]string, 5)
	for i, card := range board.Cards() {
		texts[i] = card.String()
	}
	return texts
}
