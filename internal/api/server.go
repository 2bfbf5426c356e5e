package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"sync"

	"navicampus/internal/config"
	"navicampus/internal/db"
	"navicampus/internal/floorplan"
	"navicampus/internal/graph"
	"navicampus/internal/session"
)

// Server is the HTTP API that connects the floor registry, session store, and
// database. It starts unready and flips ready once floor data finishes loading.
type Server struct {
	db *db.DB

	mu       sync.RWMutex
	cfg      *config.Config
	reg      *floorplan.Registry
	graphs   *graph.MergedCache
	sessions *session.Store
	ready    bool
}

// NewServer creates a Server with the given config and database.
func NewServer(cfg *config.Config, database *db.DB) *Server {
	return &Server{cfg: cfg, db: database}
}

// SetRegistry is called when floor data finishes loading.
func (s *Server) SetRegistry(reg *floorplan.Registry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reg = reg
	s.graphs = graph.NewMergedCache(s.cfg.PortalEdgeWeight)
	s.sessions = session.NewStore(reg, s.cfg, s.graphs)
	s.ready = true
}

func (s *Server) isReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Handler returns the HTTP handler with all API routes and CORS middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/status", s.handleStatus)
	mux.HandleFunc("GET /api/config", s.handleGetConfig)
	mux.HandleFunc("POST /api/config", s.handleSetConfig)
	mux.HandleFunc("GET /api/floors", s.handleFloors)
	mux.HandleFunc("GET /api/floors/{level}", s.handleFloorByLevel)
	mux.HandleFunc("GET /api/floors/{level}/rooms", s.handleFloorRooms)
	mux.HandleFunc("GET /api/rooms/search", s.handleSearch)
	mux.HandleFunc("POST /api/sessions", s.handleCreateSession)
	mux.HandleFunc("GET /api/sessions/{id}", s.handleGetSession)
	mux.HandleFunc("POST /api/sessions/{id}/navigate", s.handleNavigate)
	mux.HandleFunc("POST /api/sessions/{id}/clear", s.handleClear)
	mux.HandleFunc("POST /api/sessions/{id}/floor", s.handleSetFloor)
	mux.HandleFunc("POST /api/sessions/{id}/search", s.handleSetSearch)
	mux.HandleFunc("GET /api/history", s.handleGetHistory)
	mux.HandleFunc("DELETE /api/history", s.handleClearHistory)
	return corsMiddleware(mux)
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status := map[string]interface{}{
		"ready": s.ready,
	}
	if s.ready {
		status["building"] = s.reg.Building
		status["floors"] = len(s.reg.Floors)
		status["rooms"] = s.reg.RoomCount()
		status["nodes"] = s.reg.NodeCount()
		status["sessions"] = s.sessions.Len()
	}
	writeJSON(w, status)
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	writeJSON(w, s.cfg)
}

func (s *Server) handleSetConfig(w http.ResponseWriter, r *http.Request) {
	var cfg config.Config
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		writeError(w, 400, "invalid json")
		return
	}

	// Keep the estimation constants physically sane.
	if cfg.WalkingSpeed <= 0 {
		cfg.WalkingSpeed = config.Default().WalkingSpeed
	}
	if cfg.TimeBuffer < 1 {
		cfg.TimeBuffer = 1
	}
	if cfg.UnitsToMeters <= 0 {
		cfg.UnitsToMeters = config.Default().UnitsToMeters
	}
	if cfg.PortalEdgeWeight < 0 {
		cfg.PortalEdgeWeight = 0
	}
	if cfg.FloorChangeMeters < 0 {
		cfg.FloorChangeMeters = 0
	}
	if cfg.TurnThreshold < 0 {
		cfg.TurnThreshold = 0
	}

	s.mu.Lock()
	s.cfg = &cfg
	if s.ready {
		// Constants feed graph construction and per-session estimators, so
		// rebuild both. Existing session IDs are invalidated.
		s.graphs = graph.NewMergedCache(cfg.PortalEdgeWeight)
		s.sessions = session.NewStore(s.reg, &cfg, s.graphs)
	}
	s.mu.Unlock()

	if err := s.db.SaveConfig(&cfg); err != nil {
		log.Printf("[API] SaveConfig: %v", err)
	}
	writeJSON(w, &cfg)
}

func (s *Server) handleFloors(w http.ResponseWriter, r *http.Request) {
	if !s.isReady() {
		writeError(w, 503, "floor data not loaded yet")
		return
	}
	s.mu.RLock()
	reg := s.reg
	s.mu.RUnlock()

	type floorInfo struct {
		Level   int    `json:"level"`
		Name    string `json:"name"`
		ViewBox string `json:"viewBox"`
		Rooms   int    `json:"rooms"`
		Nodes   int    `json:"nodes"`
	}
	out := make([]floorInfo, 0, len(reg.Floors))
	for _, f := range reg.Floors {
		out = append(out, floorInfo{
			Level:   f.FloorLevel,
			Name:    f.Metadata.Name,
			ViewBox: f.Metadata.ViewBox,
			Rooms:   len(f.Rooms),
			Nodes:   len(f.Navigation.Nodes),
		})
	}
	writeJSON(w, map[string]interface{}{"building": reg.Building, "floors": out})
}

func (s *Server) handleFloorByLevel(w http.ResponseWriter, r *http.Request) {
	if !s.isReady() {
		writeError(w, 503, "floor data not loaded yet")
		return
	}
	level, err := strconv.Atoi(r.PathValue("level"))
	if err != nil {
		writeError(w, 400, "invalid floor level")
		return
	}
	s.mu.RLock()
	floor := s.reg.Floor(level)
	s.mu.RUnlock()
	if floor == nil {
		writeError(w, 404, fmt.Sprintf("floor %d not found", level))
		return
	}
	writeJSON(w, floor)
}

func (s *Server) handleFloorRooms(w http.ResponseWriter, r *http.Request) {
	if !s.isReady() {
		writeError(w, 503, "floor data not loaded yet")
		return
	}
	level, err := strconv.Atoi(r.PathValue("level"))
	if err != nil {
		writeError(w, 400, "invalid floor level")
		return
	}
	s.mu.RLock()
	floor := s.reg.Floor(level)
	rooms := s.reg.RoomsOnFloor(level, floorplan.RoomType(r.URL.Query().Get("type")))
	s.mu.RUnlock()
	if floor == nil {
		writeError(w, 404, fmt.Sprintf("floor %d not found", level))
		return
	}
	if rooms == nil {
		rooms = []floorplan.Room{}
	}
	writeJSON(w, map[string][]floorplan.Room{"rooms": rooms})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if !s.isReady() {
		writeJSON(w, map[string][]*floorplan.IndexedRoom{"rooms": {}})
		return
	}
	s.mu.RLock()
	results := s.reg.Search(r.URL.Query().Get("q"))
	s.mu.RUnlock()
	if results == nil {
		results = []*floorplan.IndexedRoom{}
	}
	writeJSON(w, map[string][]*floorplan.IndexedRoom{"rooms": results})
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	if !s.isReady() {
		writeError(w, 503, "floor data not loaded yet")
		return
	}
	var req struct {
		Floor *int `json:"floor"`
	}
	// An empty body is fine; the session starts on the default floor.
	json.NewDecoder(r.Body).Decode(&req)

	s.mu.RLock()
	cfg := s.cfg
	store := s.sessions
	s.mu.RUnlock()

	floor := cfg.DefaultFloor
	if req.Floor != nil {
		floor = *req.Floor
	}
	id, ctl := store.Create(floor)
	log.Printf("[API] Session created: %s (floor %d)", id, floor)
	writeJSON(w, map[string]interface{}{"sessionId": id, "session": ctl.Snapshot()})
}

// sessionFromRequest resolves the {id} path segment to a live controller.
func (s *Server) sessionFromRequest(w http.ResponseWriter, r *http.Request) (*session.Controller, bool) {
	if !s.isReady() {
		writeError(w, 503, "floor data not loaded yet")
		return nil, false
	}
	s.mu.RLock()
	store := s.sessions
	s.mu.RUnlock()

	ctl, ok := store.Get(r.PathValue("id"))
	if !ok {
		writeError(w, 404, "session not found")
		return nil, false
	}
	return ctl, true
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	ctl, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}
	writeJSON(w, ctl.Snapshot())
}

func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	ctl, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}

	var req struct {
		RoomID string `json:"room_id"`
		QR     string `json:"qr"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, 400, "invalid json")
		return
	}

	s.mu.RLock()
	reg := s.reg
	s.mu.RUnlock()

	var room *floorplan.IndexedRoom
	var found bool
	switch {
	case req.QR != "":
		room, found = reg.ResolveQR(req.QR)
	case req.RoomID != "":
		room, found = reg.Room(req.RoomID)
	default:
		writeError(w, 400, "room_id or qr required")
		return
	}
	if !found {
		writeError(w, 404, "room not found")
		return
	}

	fromFloor := ctl.CurrentFloor()
	if err := ctl.NavigateTo(room); err != nil {
		// Expected failures (unreachable destination, floor without nodes)
		// downgrade to an idle session rather than an error response.
		log.Printf("[API] Navigate %s: %v", room.ID, err)
		writeJSON(w, ctl.Snapshot())
		return
	}

	snap := ctl.Snapshot()
	if snap.Navigation != nil {
		s.db.InsertHistory(db.HistoryRecord{
			DestinationID:   room.ID,
			DestinationName: room.Name,
			FromFloor:       fromFloor,
			ToFloor:         room.FloorLevel,
			DistanceMeters:  snap.Navigation.Distance,
			TimeMinutes:     snap.Navigation.EstimatedTime,
		})
		log.Printf("[API] Navigate %s: %dm, %dmin, %d instruction(s)",
			room.ID, snap.Navigation.Distance, snap.Navigation.EstimatedTime, len(snap.Instructions))
	}
	writeJSON(w, snap)
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	ctl, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}
	ctl.ClearNavigation()
	writeJSON(w, ctl.Snapshot())
}

func (s *Server) handleSetFloor(w http.ResponseWriter, r *http.Request) {
	ctl, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}
	var req struct {
		Level int `json:"level"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, 400, "invalid json")
		return
	}
	ctl.SetCurrentFloor(req.Level)
	writeJSON(w, ctl.Snapshot())
}

func (s *Server) handleSetSearch(w http.ResponseWriter, r *http.Request) {
	ctl, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}
	var req struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, 400, "invalid json")
		return
	}
	ctl.SetSearchQuery(req.Query)
	writeJSON(w, ctl.Snapshot())
}

func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	limit := s.cfg.HistoryLimit
	s.mu.RUnlock()
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	records := s.db.GetHistory(limit)
	if records == nil {
		records = []db.HistoryRecord{}
	}
	writeJSON(w, map[string][]db.HistoryRecord{"history": records})
}

func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	if err := s.db.ClearHistory(); err != nil {
		writeError(w, 500, "failed to clear history")
		return
	}
	writeJSON(w, map[string]bool{"ok": true})
}
