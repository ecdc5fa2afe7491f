// Command simworld runs the coordinate service for the aerial-link
// simulation platform: scan ingest and storage, coordinate transform
// queries, marker tracking, and scene calibration management.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"sync"
	"syscall"

	"github.com/kenny223sns/sim-world-sub001/internal/api"
	"github.com/kenny223sns/sim-world-sub001/internal/db"
	"github.com/kenny223sns/sim-world-sub001/internal/monitor"
	"github.com/kenny223sns/sim-world-sub001/internal/overlay"
	"github.com/kenny223sns/sim-world-sub001/internal/scene"
	"github.com/kenny223sns/sim-world-sub001/internal/version"
)

var (
	listen        = flag.String("listen", ":8080", "Listen address")
	dbPath        = flag.String("db", "simworld.db", "Path to the sqlite database")
	migrationsDir = flag.String("migrations", "migrations", "Path to the schema migrations directory")
	scenesFile    = flag.String("scenes", "", "Optional YAML file with bootstrap scene calibrations")
	engineScale   = flag.Float64("engine-scale", 1.0, "Uniform world-to-engine scale factor")
)

func main() {
	flag.Parse()

	if *listen == "" {
		log.Fatal("Listen address is required")
	}

	log.Printf("simworld %s (%s)", version.Version, version.GitSHA)

	database, err := db.Open(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer database.Close()

	if err := database.MigrateUp(*migrationsDir); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	sceneStore := scene.NewStore(database.DB)
	if *scenesFile != "" {
		cals, err := scene.LoadCalibrations(*scenesFile)
		if err != nil {
			log.Fatalf("Failed to load scene calibrations: %v", err)
		}
		if err := sceneStore.SeedDefaults(cals); err != nil {
			log.Fatalf("Failed to seed scene calibrations: %v", err)
		}
		log.Printf("Seeded %d scene calibrations from %s", len(cals), *scenesFile)
	}

	scanStore := db.NewScanStore(database)
	holder := &overlay.GridHolder{}

	// Restore the most recent scan so transform queries work across
	// restarts without waiting for a fresh scan.
	if latest, err := scanStore.LatestScan(""); err != nil {
		log.Printf("Failed to load latest scan: %v", err)
	} else if latest != nil {
		holder.Swap(&latest.Grid)
		log.Printf("Restored scan %s (scene=%s, %dx%d)",
			latest.ScanID, latest.Grid.Scene, latest.Grid.Width, latest.Grid.Height)
	}

	server := api.NewServer(api.Config{
		Addr:    *listen,
		Scans:   scanStore,
		Scenes:  sceneStore,
		Holder:  holder,
		Markers: overlay.NewMarkerSet(holder, *engineScale),
		DebugRoutes: map[string]http.HandlerFunc{
			"/debug/heatmap": monitor.HeatmapHandler(holder),
		},
	})

	var wg sync.WaitGroup
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := server.Start(ctx); err != nil {
			log.Printf("server stopped: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down...")
	wg.Wait()
	log.Println("shutdown complete")
}
