package main

import (
	"embed"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/lpernett/godotenv"

	"navicampus/internal/api"
	"navicampus/internal/db"
	"navicampus/internal/floorplan"
	"navicampus/internal/logger"
)

var version = "dev"

//go:embed data/floors
var floorFS embed.FS

func main() {
	port := flag.Int("port", 13370, "HTTP server port")
	building := flag.String("building", "", "building ID to load (overrides config)")
	flag.Parse()

	// Optional .env for deployments; absence is not an error.
	godotenv.Load()

	logger.Banner(version)

	wd, _ := os.Getwd()
	dataDir := envOrDefault("NAVICAMPUS_DATA_DIR", filepath.Join(wd, "data"))

	// Open SQLite database
	database, err := db.Open()
	if err != nil {
		logger.Error("DB", fmt.Sprintf("Failed to open database: %v", err))
		os.Exit(1)
	}
	defer database.Close()

	// Load config from SQLite
	cfg := database.LoadConfig()
	if *building != "" {
		cfg.BuildingID = *building
	}

	srv := api.NewServer(cfg, database)

	// Load floor data in background so the server comes up immediately.
	go func() {
		reg, err := floorplan.Load(dataDir, cfg.BuildingID, floorFS)
		if err != nil {
			logger.Error("Floors", fmt.Sprintf("Load failed: %v", err))
			return
		}
		srv.SetRegistry(reg)
		logger.Success("Floors", "Navigation ready")
	}()

	addr := fmt.Sprintf("127.0.0.1:%d", *port)
	logger.Server(addr)
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
		logger.Error("Server", fmt.Sprintf("Failed: %v", err))
		os.Exit(1)
	}
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
