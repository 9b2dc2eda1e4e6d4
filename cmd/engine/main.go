package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"
	"github.com/joho/godotenv"
	"gopkg.in/natefinch/lumberjack.v2"

	"deskscan-engine/internal/config"
	"deskscan-engine/internal/events"
	"deskscan-engine/internal/httpapi"
	"deskscan-engine/internal/scheduler"
	"deskscan-engine/internal/scrape"
	"deskscan-engine/internal/scrape/types"
	"deskscan-engine/internal/session"
	"deskscan-engine/internal/store"
)

func main() {
	// Optional .env next to the binary; real env always wins.
	_ = godotenv.Load()

	dataDir := os.Getenv("DESKSCAN_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	// One engine per data dir; a second instance would fight over the
	// snapshot db and double-scrape the sources.
	lock := flock.New(filepath.Join(dataDir, "deskscan.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatalf("data dir lock: %v", err)
	}
	if !locked {
		log.Fatalf("another engine is already running in %s", dataDir)
	}
	defer lock.Unlock()

	logPath := filepath.Join(dataDir, "deskscan.log")
	log.SetOutput(io.MultiWriter(os.Stderr, &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
	}))

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	// Load config and keep it reloadable
	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		cfg, err := config.Load(userCfgPath)
		if err != nil {
			return cfg, err
		}
		out, vr := config.NormalizeAndValidate(cfg)
		if !vr.OK() {
			return out, fmt.Errorf("config invalid: %v", vr.Errors)
		}
		for _, warn := range vr.Warnings {
			log.Printf("[config] warning: %s", warn)
		}
		return out, nil
	}
	cfg, err := loadCfg()
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	if p := os.Getenv("DESKSCAN_PORT"); p != "" {
		if n, err := strconv.Atoi(p); err == nil {
			cfg.App.Port = n
		}
	}
	cfgVal.Store(cfg)

	dbPath := filepath.Join(dataDir, "deskscan.db")
	db, err := store.Open(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	if err := store.Migrate(db); err != nil {
		log.Fatal(err)
	}

	sess, err := session.Load(context.Background(), db)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("[session] restored %d accepted jobs", sess.Size())

	hub := events.NewHub()

	var scrapeStatus atomic.Value
	scrapeStatus.Store(types.ScrapeStatus{})

	deps := httpapi.Deps{
		Sess:         sess,
		Hub:          hub,
		CfgVal:       &cfgVal,
		ScrapeStatus: &scrapeStatus,
		UserCfgPath:  userCfgPath,
		LoadCfg:      loadCfg,
		RunCycle:     scrape.RunCycle,
	}
	mux := httpapi.NewMux(deps)

	handler := httpapi.Chain(mux,
		httpapi.RequestID,
		httpapi.AccessLog,
		httpapi.Recover,
		httpapi.Cors,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Scrape.AutoRefresh {
		interval := time.Duration(cfg.Scrape.IntervalMinutes) * time.Minute
		go scheduler.Every(ctx, interval, "auto-refresh", func(ctx context.Context) error {
			cur := cfgVal.Load().(config.Config)
			_, err := scrape.RunCycle(ctx, cur, sess, nil)
			return err
		})
	}

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.App.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("engine listening on http://%s (db=%s)", addr, dbPath)

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Fatal(srv.Serve(ln))
}
