package config

// Config holds application settings (in-memory representation).
// Persistence is handled by internal/db package.
//
// Routing cost and reported distance are deliberately decoupled: PortalEdgeWeight
// only steers route selection, FloorChangeMeters only affects the distance shown
// to the walker.
type Config struct {
	// Building/data settings.
	BuildingID   string `json:"building_id"`
	DefaultFloor int    `json:"default_floor"`

	// Graph construction.
	PortalEdgeWeight float64 `json:"portal_edge_weight"` // cost of one stairs/elevator traversal

	// Distance and time estimation.
	UnitsToMeters     float64 `json:"units_to_meters"`     // coordinate units -> meters
	FloorChangeMeters float64 `json:"floor_change_meters"` // reported meters per floor crossed
	WalkingSpeed      float64 `json:"walking_speed"`       // m/s
	TimeBuffer        float64 `json:"time_buffer"`         // multiplier for turns/obstacles

	// Instruction generation.
	TurnThreshold float64 `json:"turn_threshold"` // radians below which a bend is "straight"

	// Session housekeeping.
	SessionTTLMinutes int `json:"session_ttl_minutes"`

	// History log.
	HistoryLimit int `json:"history_limit"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		BuildingID:        "st-peters",
		DefaultFloor:      0,
		PortalEdgeWeight:  50,
		UnitsToMeters:     0.1,
		FloorChangeMeters: 3,
		WalkingSpeed:      1.4,
		TimeBuffer:        1.1,
		TurnThreshold:     0.2,
		SessionTTLMinutes: 60,
		HistoryLimit:      100,
	}
}
