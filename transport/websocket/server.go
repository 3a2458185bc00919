package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-bot/internal/config"
	"github.com/rocketscienceinc/tictactoe-bot/internal/entity"
)

const shutdownTimeout = 5 * time.Second

type gameUseCase interface {
	StartGame(ctx context.Context, humanMark entity.Mark, starter string) (*entity.Game, error)
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)
	EndGame(ctx context.Context, gameID string) error

	MakeTurn(ctx context.Context, gameID string, cell int) (*entity.Game, error)
	BotTurn(ctx context.Context, gameID string) (*entity.Game, error)
}

type handlerFunc func(ctx context.Context, sess *session, msg *Message) error

type Server struct {
	logger      *slog.Logger
	gameUseCase gameUseCase
	conf        config.Game

	upgrader websocket.Upgrader
	handlers map[string]handlerFunc

	connectionsMutex sync.Mutex
	connections      map[*websocket.Conn]struct{}
}

// session is the state of one connection; it is only touched by the goroutine reading that connection.
type session struct {
	conn   *websocket.Conn
	gameID string
}

func New(logger *slog.Logger, gameUseCase gameUseCase, conf config.Game) *Server {
	server := &Server{
		logger:      logger.With("component", "websocket"),
		gameUseCase: gameUseCase,
		conf:        conf,

		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(*http.Request) bool {
				return true
			},
		},

		connections: make(map[*websocket.Conn]struct{}),
	}

	server.handlers = map[string]handlerFunc{
		actionGameNew:   server.handleNewGame,
		actionGameTurn:  server.handleGameTurn,
		actionGameState: server.handleGameState,
		actionGameLeave: server.handleGameLeave,
	}

	return server
}

func (that *Server) Handler() http.Handler {
	router := chi.NewRouter()
	router.Get("/ws", that.upgradeToWebSocket)

	return router
}

// Start - starts WebSocket server. Open connections are closed when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     that.Handler(),
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown WebSocket server", "error", err)
		}

		that.closeConnections()
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// upgradeToWebSocket - upgrades the connection to WebSocket and serves it until it closes.
func (that *Server) upgradeToWebSocket(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeConnection")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	that.trackConnection(conn)
	defer that.untrackConnection(conn)

	log.Info("WebSocket connection established", "remote", conn.RemoteAddr().String())

	sess := &session{conn: conn}
	that.handleMessages(req.Context(), sess)
	that.handleDisconnect(sess)
}

// handleMessages - processes messages from the client until the connection fails.
func (that *Server) handleMessages(ctx context.Context, sess *session) {
	log := that.logger.With("method", "handleMessages")

	for {
		_, reqBody, err := sess.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Error("error reading message", "error", err)
			}
			return
		}

		var message Message
		if err = json.Unmarshal(reqBody, &message); err != nil {
			log.Error("failed to unmarshal message", "error", err)
			if err = sess.sendErrorResponse(actionError, "invalid message"); err != nil {
				return
			}
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			if err = sess.sendErrorResponse(message.Action, "unknown action"); err != nil {
				return
			}
			continue
		}

		if err = handler(ctx, sess, &message); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}

// handleDisconnect discards the game of a closed connection.
func (that *Server) handleDisconnect(sess *session) {
	if sess.gameID == "" {
		return
	}

	if err := that.gameUseCase.EndGame(context.Background(), sess.gameID); err != nil {
		that.logger.Error("failed to end game on disconnect", "gameID", sess.gameID, "error", err)
		return
	}

	that.logger.Info("game discarded on disconnect", "gameID", sess.gameID)
}

func (that *Server) trackConnection(conn *websocket.Conn) {
	that.connectionsMutex.Lock()
	defer that.connectionsMutex.Unlock()

	that.connections[conn] = struct{}{}
}

func (that *Server) untrackConnection(conn *websocket.Conn) {
	that.connectionsMutex.Lock()
	defer that.connectionsMutex.Unlock()

	delete(that.connections, conn)
	conn.Close()
}

func (that *Server) closeConnections() {
	that.connectionsMutex.Lock()
	defer that.connectionsMutex.Unlock()

	for conn := range that.connections {
		conn.Close()
	}
}
