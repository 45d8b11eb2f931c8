package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	clientapi "github.com/dukahq/dukapos/internal/client/api"
	"github.com/dukahq/dukapos/internal/client/cli"
	"github.com/dukahq/dukapos/internal/client/iocli"
	"github.com/dukahq/dukapos/internal/client/pos"
	"github.com/dukahq/dukapos/internal/client/session"
	"github.com/dukahq/dukapos/internal/client/storage/boltdb"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

const defaultServerURL = "http://localhost:5000"

func main() {
	// .env — необязательный локальный конфиг терминала
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Debug("no .env file loaded", "error", err)
	}

	// Глобальные флаги; env задает дефолты, флаги их перекрывают
	showVersion := flag.Bool("version", false, "Show version information")
	serverURL := flag.String("server", envOr("DUKAPOS_API_URL", defaultServerURL), "Backend API URL")
	dbPath := flag.String("db", envOr("DUKAPOS_DB", "dukapos.db"), "Path to local database")
	logLevel := flag.String("log-level", envOr("DUKAPOS_LOG_LEVEL", "warn"), "Log level (debug|info|warn|error)")

	flag.Parse()

	setupLogging(*logLevel)

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	// Получаем команду
	args := flag.Args()
	io := iocli.NewStdio()

	ctx := context.Background()

	// Открываем локальное хранилище сессии
	boltStorage, err := boltdb.New(ctx, *dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := boltStorage.Close(); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()

	// Создаем API клиент и восстанавливаем сессию из хранилища
	apiClient := clientapi.NewClient(*serverURL)
	sess, err := session.New(ctx, apiClient, boltStorage)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to restore session: %v\n", err)
		os.Exit(1)
	}

	posService := pos.NewService(sess)
	terminal := cli.New(io, sess, posService, boltStorage)

	if len(args) == 0 {
		terminal.PrintUsage()
		os.Exit(1)
	}

	if err := terminal.Run(ctx, args[0], args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func setupLogging(level string) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelWarn
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}

func printVersion() {
	fmt.Printf("dukapos %s\n", Version)
	fmt.Printf("  build date: %s\n", BuildDate)
	fmt.Printf("  git commit: %s\n", GitCommit)
}
