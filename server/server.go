package server

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"crossway/game"
	"crossway/searcher"
)

// Server hosts game sessions over HTTP and broadcasts every state
// change to websocket watchers.
type Server struct {
	store  *Store
	hub    *hub
	router *gin.Engine
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func NewServer() *Server {
	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		store: NewStore(),
		hub:   newHub(),
	}

	router := gin.New()
	router.Use(gin.Recovery())

	api := router.Group("/api")
	api.POST("/game/new", s.newGame)
	api.GET("/game/:id/state", s.gameState)
	api.POST("/game/move", s.playMove)
	api.GET("/game/:id/legal-moves", s.legalMoves)
	api.POST("/ai/move", s.aiMove)
	api.POST("/game/:id/undo", s.undoMove)
	api.POST("/game/:id/reset", s.resetGame)
	api.DELETE("/game/:id", s.deleteGame)
	api.GET("/games", s.listGames)
	api.GET("/game/:id/export", s.exportGame)

	router.GET("/ws/game/:id", s.watchGame)
	router.GET("/health", s.health)

	s.router = router
	return s
}

// Handler exposes the router for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Run(addr string) error {
	log.Info().Msgf("listening on %s", addr)
	return s.router.Run(addr)
}

type newGameRequest struct {
	BoardSize int `json:"board_size"`
}

func (s *Server) newGame(c *gin.Context) {
	req := newGameRequest{BoardSize: game.DefaultBoardSize}
	// An empty body means all defaults
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.BoardSize < game.MinBoardSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "board size below minimum"})
		return
	}

	session := s.store.Create(req.BoardSize)
	session.WithState(func(state *game.GameState) {
		c.JSON(http.StatusCreated, gin.H{"game_id": session.ID, "state": state})
	})
}

func (s *Server) withSession(c *gin.Context, fn func(session *Session)) {
	session, ok := s.store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
		return
	}
	fn(session)
}

func (s *Server) gameState(c *gin.Context) {
	s.withSession(c, func(session *Session) {
		session.WithState(func(state *game.GameState) {
			winner, over := state.Winner()
			c.JSON(http.StatusOK, gin.H{
				"game_id":   session.ID,
				"state":     state,
				"info":      state.Info(),
				"game_over": over,
				"winner":    winner,
			})
		})
	})
}

type moveRequest struct {
	GameID string    `json:"game_id"`
	Move   game.Move `json:"move"`
}

func (s *Server) playMove(c *gin.Context) {
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	session, ok := s.store.Get(req.GameID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
		return
	}

	session.WithState(func(state *game.GameState) {
		if v := state.ApplyMove(req.Move); !v.OK() {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "reason": v.String()})
			return
		}
		s.broadcastState(session.ID, state)
		c.JSON(http.StatusOK, gin.H{"success": true, "state": state})
	})
}

func (s *Server) legalMoves(c *gin.Context) {
	s.withSession(c, func(session *Session) {
		session.WithState(func(state *game.GameState) {
			moves := state.LegalMoves()
			c.JSON(http.StatusOK, gin.H{"moves": moves, "count": len(moves)})
		})
	})
}

type aiMoveRequest struct {
	GameID            string  `json:"game_id"`
	TimeLimit         float64 `json:"time_limit"`
	MaxSimulations    int     `json:"max_simulations"`
	ExplorationWeight float64 `json:"exploration_weight"`
	Tactical          *bool   `json:"use_tactical_heuristics"`
	Seed              uint64  `json:"seed"`
}

func (s *Server) aiMove(c *gin.Context) {
	var req aiMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	session, ok := s.store.Get(req.GameID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
		return
	}

	options := []searcher.Option{
		searcher.WithDuration(time.Duration(req.TimeLimit * float64(time.Second))),
		searcher.WithMaxSimulations(req.MaxSimulations),
		searcher.WithExplorationWeight(req.ExplorationWeight),
	}
	if req.Tactical != nil {
		options = append(options, searcher.WithTacticalPlayouts(*req.Tactical))
	}
	if req.Seed != 0 {
		options = append(options, searcher.WithRand(rand.New(rand.NewSource(req.Seed))))
	}
	m := searcher.NewMCTS(options...)

	session.WithState(func(state *game.GameState) {
		move, ok := m.Search(state)
		if !ok {
			c.JSON(http.StatusConflict, gin.H{"error": "no legal moves"})
			return
		}
		if v := state.ApplyMove(move); !v.OK() {
			c.JSON(http.StatusInternalServerError, gin.H{"error": v.String()})
			return
		}
		s.broadcastState(session.ID, state)
		c.JSON(http.StatusOK, gin.H{"move": move, "stats": m.Stats(), "state": state})
	})
}

func (s *Server) undoMove(c *gin.Context) {
	s.withSession(c, func(session *Session) {
		session.WithState(func(state *game.GameState) {
			if !state.UndoLastMove() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "no move to undo"})
				return
			}
			s.broadcastState(session.ID, state)
			c.JSON(http.StatusOK, gin.H{"state": state})
		})
	})
}

func (s *Server) resetGame(c *gin.Context) {
	s.withSession(c, func(session *Session) {
		session.WithState(func(state *game.GameState) {
			state.Reset()
			s.broadcastState(session.ID, state)
			c.JSON(http.StatusOK, gin.H{"state": state})
		})
	})
}

func (s *Server) deleteGame(c *gin.Context) {
	if !s.store.Delete(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) listGames(c *gin.Context) {
	type gameSummary struct {
		GameID   string    `json:"game_id"`
		Created  time.Time `json:"created"`
		Moves    int       `json:"moves"`
		GameOver bool      `json:"game_over"`
	}

	sessions := s.store.List()
	summaries := make([]gameSummary, 0, len(sessions))
	for _, session := range sessions {
		session.WithState(func(state *game.GameState) {
			summaries = append(summaries, gameSummary{
				GameID:   session.ID,
				Created:  session.Created,
				Moves:    len(state.History()),
				GameOver: state.GameOver(),
			})
		})
	}
	c.JSON(http.StatusOK, gin.H{"games": summaries, "count": len(summaries)})
}

func (s *Server) exportGame(c *gin.Context) {
	s.withSession(c, func(session *Session) {
		session.WithState(func(state *game.GameState) {
			data, err := state.ExportRecord()
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			c.Data(http.StatusOK, "application/json", data)
		})
	})
}

func (s *Server) watchGame(c *gin.Context) {
	session, ok := s.store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}
	s.hub.add(session.ID, conn)

	// Send the current position to this connection only, so late
	// joiners catch up without replaying it to existing watchers
	session.WithState(func(state *game.GameState) {
		s.hub.send(conn, statePayload(state))
	})

	// Watchers never send; the read loop only detects disconnects
	go func() {
		defer s.hub.remove(session.ID, conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) broadcastState(gameID string, state *game.GameState) {
	s.hub.broadcast(gameID, statePayload(state))
}

func statePayload(state *game.GameState) gin.H {
	winner, over := state.Winner()
	return gin.H{
		"event":     "state",
		"state":     state,
		"game_over": over,
		"winner":    winner,
	}
}
