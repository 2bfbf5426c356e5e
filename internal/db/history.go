package db

import (
	"fmt"
	"time"

	"navicampus/internal/logger"
)

// HistoryRecord is one logged navigation request. The computed path itself is
// never stored; routes do not survive the session that produced them.
type HistoryRecord struct {
	ID              int64  `json:"id"`
	Timestamp       string `json:"timestamp"`
	DestinationID   string `json:"destinationId"`
	DestinationName string `json:"destinationName"`
	FromFloor       int    `json:"fromFloor"`
	ToFloor         int    `json:"toFloor"`
	DistanceMeters  int    `json:"distanceMeters"`
	TimeMinutes     int    `json:"timeMinutes"`
}

// InsertHistory logs a successful navigation request and returns the row ID.
func (d *DB) InsertHistory(rec HistoryRecord) int64 {
	if rec.Timestamp == "" {
		rec.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}
	res, err := d.sql.Exec(`
		INSERT INTO nav_history (timestamp, destination_id, destination_name, from_floor, to_floor, distance_m, time_min)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.Timestamp, rec.DestinationID, rec.DestinationName, rec.FromFloor, rec.ToFloor, rec.DistanceMeters, rec.TimeMinutes,
	)
	if err != nil {
		logger.Warn("DB", fmt.Sprintf("InsertHistory: %v", err))
		return 0
	}
	id, _ := res.LastInsertId()
	return id
}

// GetHistory returns the most recent navigation requests, newest first.
func (d *DB) GetHistory(limit int) []HistoryRecord {
	if limit <= 0 {
		limit = 50
	}
	rows, err := d.sql.Query(`
		SELECT id, timestamp, destination_id, destination_name, from_floor, to_floor, distance_m, time_min
		  FROM nav_history
		 ORDER BY id DESC
		 LIMIT ?`, limit)
	if err != nil {
		logger.Warn("DB", fmt.Sprintf("GetHistory: %v", err))
		return nil
	}
	defer rows.Close()

	var out []HistoryRecord
	for rows.Next() {
		var rec HistoryRecord
		if err := rows.Scan(&rec.ID, &rec.Timestamp, &rec.DestinationID, &rec.DestinationName,
			&rec.FromFloor, &rec.ToFloor, &rec.DistanceMeters, &rec.TimeMinutes); err == nil {
			out = append(out, rec)
		}
	}
	return out
}

// ClearHistory deletes all logged navigation requests.
func (d *DB) ClearHistory() error {
	_, err := d.sql.Exec("DELETE FROM nav_history")
	return err
}
