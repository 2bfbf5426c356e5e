package floorplan

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"navicampus/internal/logger"
)

// Load reads all floor-*.json files for a building from dataDir/floors/<building>.
// Falls back to the provided embedded filesystem when the directory is absent, so
// a fresh checkout serves the bundled sample building without any setup.
func Load(dataDir, building string, embedded fs.FS) (*Registry, error) {
	dir := filepath.Join(dataDir, "floors", building)
	if _, err := os.Stat(dir); err == nil {
		logger.Info("Floors", fmt.Sprintf("Loading building %q from %s", building, dir))
		return loadFS(os.DirFS(dir), ".", building)
	}
	logger.Info("Floors", fmt.Sprintf("Loading embedded building %q", building))
	return loadFS(embedded, "data/floors/"+building, building)
}

// loadFS parses every floor-*.json under dir in fsys and builds the registry.
func loadFS(fsys fs.FS, dir, building string) (*Registry, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read floor dir: %w", err)
	}

	var floors []*FloorData
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, "floor-") || !strings.HasSuffix(name, ".json") {
			continue
		}
		raw, err := fs.ReadFile(fsys, filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		var floor FloorData
		if err := json.Unmarshal(raw, &floor); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		floors = append(floors, &floor)
	}
	if len(floors) == 0 {
		return nil, fmt.Errorf("no floor data found for building %q", building)
	}

	sort.Slice(floors, func(i, j int) bool { return floors[i].FloorLevel < floors[j].FloorLevel })

	reg, err := NewRegistry(building, floors)
	if err != nil {
		return nil, err
	}

	logger.Section("Building Statistics")
	logger.Stats("Floors", len(reg.Floors))
	logger.Stats("Rooms", reg.RoomCount())
	logger.Stats("Nodes", reg.NodeCount())
	return reg, nil
}
