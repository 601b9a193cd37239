/* main.go
 * The "main" method for running the costume vote kiosk. For details see `readme.md`
 * Usage: go run main.go -backend="<url>" -data="<dir>" -top=3
 * Authors: Zachary Bower
 */

package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"costume-vote/app"
	"costume-vote/cli"
	"costume-vote/logging"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional for local development; flags and real env still win
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("Could not load .env file", "error", err)
	}

	logging.Setup()

	//Flags
	backendPtr := flag.String("backend", envOr("BACKEND_URL", "http://localhost:8000"), "Base URL of the contest backend")
	dataPtr := flag.String("data", os.Getenv("DATA_DIR"), "Directory for device-local state (defaults to the user config dir)")
	topPtr := flag.Int("top", 0, "Cut results off after this rank, 0 shows everything")
	refreshPtr := flag.Duration("refresh", 10*time.Second, "Interval between result refreshes in watch mode")

	flag.Parse()

	dataDir := *dataPtr
	if dataDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			slog.Error("Could not resolve user config dir, pass -data instead", "error", err)
			os.Exit(1)
		}
		dataDir = filepath.Join(base, "costume-vote")
	}

	a, err := app.NewApp(app.Config{
		BackendURL: *backendPtr,
		DataDir:    dataDir,
		TopRanks:   *topPtr,
	})
	if err != nil {
		slog.Error("Failed to initialize app", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := a.Close(); err != nil {
			slog.Error("Failed to close app", "error", err)
		}
	}()

	kiosk, err := cli.NewKiosk(a, os.Stdout)
	if err != nil {
		slog.Error("Failed to initialize kiosk", "error", err)
		os.Exit(1)
	}
	if *refreshPtr > 0 {
		kiosk.RefreshInterval = *refreshPtr
	}

	if err := kiosk.Run(); err != nil {
		slog.Error("Kiosk exited with error", "error", err)
		os.Exit(1)
	}
}
