// Command agentd is the monitoring agent daemon: it loads a configuration
// file, schedules the configured probes, serves the read-only HTTP status
// API, and (optionally) sweeps stale persisted rows and mails new-error
// notifications. Lifecycle logging follows the teacher's cmd/probe/main.go
// emoji-banner style; everything underneath uses leveled logrus logging.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/last-emo-boy/monitoring-agent-daemon/internal/api"
	"github.com/last-emo-boy/monitoring-agent-daemon/internal/apperr"
	"github.com/last-emo-boy/monitoring-agent-daemon/internal/config"
	"github.com/last-emo-boy/monitoring-agent-daemon/internal/notify"
	"github.com/last-emo-boy/monitoring-agent-daemon/internal/persistence"
	"github.com/last-emo-boy/monitoring-agent-daemon/internal/scheduler"
	"github.com/last-emo-boy/monitoring-agent-daemon/internal/status"
)

func main() {
	configPath := flag.String("c", config.DefaultConfigPath, "path to the JSON configuration file")
	logPath := flag.String("l", "", "path to a log file; stderr if empty")
	daemonize := flag.Bool("d", false, "write a pidfile; the process stays in the foreground")
	testMode := flag.Bool("t", false, "validate configuration and construct every monitor, then exit")
	pidFile := flag.String("p", "/var/run/monitoring-agent-daemon.pid", "pidfile path used with -d")
	stderrLevel := flag.String("stderrlevel", "info", "minimum logrus level for stderr output")
	fileErrLevel := flag.String("fileerrlevel", "warn", "minimum logrus level for file output")
	flag.Parse()

	configureLogging(*logPath, *stderrLevel, *fileErrLevel)

	log.Println("🔍 Starting monitoring-agent-daemon...")

	if err := run(*configPath, *daemonize, *testMode, *pidFile); err != nil {
		log.Fatalf("❌ %v", err)
	}

	log.Println("✅ monitoring-agent-daemon shutdown complete")
}

func run(configPath string, daemonize, testMode bool, pidFile string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return apperr.Wrap("failed to load configuration", err)
	}
	log.Printf("📋 Loaded configuration with %d monitors", len(cfg.Monitors))

	registry := status.NewRegistry()

	gatewayDB, err := persistence.Open(cfg.Database)
	if err != nil {
		return apperr.Wrap("failed to open database", err)
	}
	if gatewayDB != nil {
		defer gatewayDB.Close()
	}
	gateway := persistence.NewOptionalGateway(gatewayDB)

	sched, err := scheduler.New(cfg, registry, gateway)
	if err != nil {
		return apperr.Wrap("failed to build scheduler", err)
	}

	if testMode {
		log.Println("🧪 Test mode: configuration and monitors validated successfully")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		sched.Start(ctx, true)
		return nil
	}

	if daemonize {
		if err := writePidFile(pidFile); err != nil {
			return apperr.Wrap("failed to write pidfile", err)
		}
		defer os.Remove(pidFile)
	}

	notifier := notify.New(cfg.Notification, registry)
	notifyTicker := time.NewTicker(time.Minute)
	defer notifyTicker.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-notifyTicker.C:
				notifier.Tick()
			}
		}
	}()

	go sched.Start(ctx, false)

	router := api.NewRouter(cfg.Server, registry)
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.IP, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("🚀 HTTP API listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("HTTP server stopped unexpectedly")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down monitoring-agent-daemon...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("❌ HTTP server forced to shutdown: %v", err)
	}

	return nil
}

func configureLogging(logPath, stderrLevel, fileErrLevel string) {
	if level, err := logrus.ParseLevel(stderrLevel); err == nil {
		logrus.SetLevel(level)
	}

	if logPath == "" {
		return
	}
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		logrus.WithError(err).Warn("failed to open log file, continuing on stderr")
		return
	}
	logrus.SetOutput(f)
	// With a log file, logrus writes only to the file, so the file level
	// replaces the stderr level.
	if level, err := logrus.ParseLevel(fileErrLevel); err == nil {
		logrus.SetLevel(level)
	}
}

// writePidFile implements the documented REDESIGN: rather than a classic
// double-fork daemonization (non-idiomatic in Go, and unnecessary under a
// process supervisor), -d writes a pidfile for supervisors that want one
// and otherwise runs in the foreground.
func writePidFile(path string) error {
	return os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())), 0644)
}
