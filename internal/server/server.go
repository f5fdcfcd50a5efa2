package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
)

// Server hosts Flip-7 games over WebSocket. Each connection plays its own
// game against the house bots from the configured game block.
type Server struct {
	config      *ServerConfig
	upgrader    websocket.Upgrader
	connections map[*Connection]bool
	register    chan *Connection
	unregister  chan *Connection
	logger      *log.Logger
	clock       quartz.Clock
	mu          sync.RWMutex
	ctx         context.Context
	cancel      context.CancelFunc
}

// NewServer creates a new WebSocket server
func NewServer(config *ServerConfig, logger *log.Logger, clock quartz.Clock) *Server {
	ctx, cancel := context.WithCancel(context.Background())

	return &Server{
		config: config,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// For development, allow all origins
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		connections: make(map[*Connection]bool),
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		logger:      logger.WithPrefix("server"),
		clock:       clock,
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Start starts the WebSocket server
func (s *Server) Start() error {
	go s.run()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.HandleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)

	addr := s.config.GetServerAddress()
	s.logger.Info("Starting WebSocket server", "addr", addr)
	return http.ListenAndServe(addr, mux)
}

// Stop stops the WebSocket server
func (s *Server) Stop() error {
	s.cancel()

	s.mu.Lock()
	for conn := range s.connections {
		_ = conn.Close()
	}
	s.mu.Unlock()

	return nil
}

// run handles connection lifecycle
func (s *Server) run() {
	for {
		select {
		case conn := <-s.register:
			s.mu.Lock()
			s.connections[conn] = true
			total := len(s.connections)
			s.mu.Unlock()
			s.logger.Info("Client connected", "total", total)

		case conn := <-s.unregister:
			s.mu.Lock()
			if _, ok := s.connections[conn]; ok {
				delete(s.connections, conn)
				_ = conn.Close()
			}
			total := len(s.connections)
			s.mu.Unlock()
			s.logger.Info("Client disconnected", "total", total)

		case <-s.ctx.Done():
			return
		}
	}
}

// HandleWebSocket handles WebSocket upgrade requests
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	client := NewConnection(conn, s.logger, s)
	s.register <- client
	client.Start()

	go func() {
		<-client.ctx.Done()
		select {
		case s.unregister <- client:
		case <-s.ctx.Done():
		}
	}()
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}

// startGame sets up a game session for an authenticated connection and
// plays it in the background.
func (s *Server) startGame(conn *Connection, auth AuthData) error {
	gameName := auth.GameName
	if gameName == "" {
		gameName = s.config.Games[0].Name
	}
	cfg := s.config.GetGameByName(gameName)
	if cfg == nil {
		return fmt.Errorf("unknown game: %s", gameName)
	}

	sess, err := s.newSession(conn, auth.PlayerName, *cfg)
	if err != nil {
		return err
	}

	conn.SetPlayer(auth.PlayerName)
	conn.setAgent(sess.net)

	response, err := NewMessage(MessageTypeAuthResponse, AuthResponseData{
		Success:     true,
		PlayerName:  auth.PlayerName,
		GameName:    cfg.Name,
		TargetScore: cfg.TargetScore,
	})
	if err != nil {
		return err
	}
	if err := conn.SendMessage(response); err != nil {
		return err
	}

	go func() {
		if err := sess.run(conn.ctx); err != nil && conn.ctx.Err() == nil {
			s.logger.Error("Game session failed", "player", auth.PlayerName, "error", err)
		}
	}()

	return nil
}

// ConnectionCount returns the number of active connections
func (s *Server) ConnectionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.connections)
}
