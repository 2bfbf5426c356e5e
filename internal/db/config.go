package db

import (
	"fmt"
	"strconv"

	"navicampus/internal/config"
	"navicampus/internal/logger"
)

// LoadConfig reads config from SQLite, falling back to defaults for any key
// that has never been saved.
func (d *DB) LoadConfig() *config.Config {
	cfg := config.Default()

	rows, err := d.sql.Query("SELECT key, value FROM config")
	if err != nil {
		logger.Warn("DB", fmt.Sprintf("LoadConfig: %v", err))
		return cfg
	}
	defer rows.Close()

	m := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err == nil {
			m[k] = v
		}
	}

	if v, ok := m["building_id"]; ok {
		cfg.BuildingID = v
	}
	if v, ok := m["default_floor"]; ok {
		cfg.DefaultFloor, _ = strconv.Atoi(v)
	}
	if v, ok := m["portal_edge_weight"]; ok {
		cfg.PortalEdgeWeight, _ = strconv.ParseFloat(v, 64)
	}
	if v, ok := m["units_to_meters"]; ok {
		cfg.UnitsToMeters, _ = strconv.ParseFloat(v, 64)
	}
	if v, ok := m["floor_change_meters"]; ok {
		cfg.FloorChangeMeters, _ = strconv.ParseFloat(v, 64)
	}
	if v, ok := m["walking_speed"]; ok {
		cfg.WalkingSpeed, _ = strconv.ParseFloat(v, 64)
	}
	if v, ok := m["time_buffer"]; ok {
		cfg.TimeBuffer, _ = strconv.ParseFloat(v, 64)
	}
	if v, ok := m["turn_threshold"]; ok {
		cfg.TurnThreshold, _ = strconv.ParseFloat(v, 64)
	}
	if v, ok := m["session_ttl_minutes"]; ok {
		cfg.SessionTTLMinutes, _ = strconv.Atoi(v)
	}
	if v, ok := m["history_limit"]; ok {
		cfg.HistoryLimit, _ = strconv.Atoi(v)
	}

	return cfg
}

// SaveConfig writes config to SQLite (upsert all fields).
func (d *DB) SaveConfig(cfg *config.Config) error {
	pairs := map[string]string{
		"building_id":         cfg.BuildingID,
		"default_floor":       strconv.Itoa(cfg.DefaultFloor),
		"portal_edge_weight":  strconv.FormatFloat(cfg.PortalEdgeWeight, 'f', -1, 64),
		"units_to_meters":     strconv.FormatFloat(cfg.UnitsToMeters, 'f', -1, 64),
		"floor_change_meters": strconv.FormatFloat(cfg.FloorChangeMeters, 'f', -1, 64),
		"walking_speed":       strconv.FormatFloat(cfg.WalkingSpeed, 'f', -1, 64),
		"time_buffer":         strconv.FormatFloat(cfg.TimeBuffer, 'f', -1, 64),
		"turn_threshold":      strconv.FormatFloat(cfg.TurnThreshold, 'f', -1, 64),
		"session_ttl_minutes": strconv.Itoa(cfg.SessionTTLMinutes),
		"history_limit":       strconv.Itoa(cfg.HistoryLimit),
	}

	tx, err := d.sql.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for k, v := range pairs {
		if _, err := tx.Exec(
			"INSERT INTO config (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
			k, v,
		); err != nil {
			return fmt.Errorf("save config %s: %w", k, err)
		}
	}
	return tx.Commit()
}
