// Command cinematch-tui is the terminal client for the recommendation backend.
package main

import (
	"context"
	"fmt"
	"os"

	"cinematch/models"
	"cinematch/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rohanthewiz/logger"
	"github.com/sirupsen/logrus"
)

const logFile = "cinematch-tui.log"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "cinematch-tui:", err)
		os.Exit(1)
	}
}

// logToFile sends both the standard log package and the structured
// logger to path, keeping the alt screen clean.
func logToFile(path string) (*os.File, error) {
	f, err := tea.LogToFile(path, "cinematch")
	if err != nil {
		return nil, err
	}
	logrus.SetOutput(f)
	return f, nil
}

func run() error {
	f, err := logToFile(logFile)
	if err != nil {
		return err
	}
	defer f.Close()

	cfg, err := models.LoadConfig()
	if err != nil {
		return err
	}
	logger.SetLogLevel(cfg.LogLevel)

	catalog := models.LoadCatalogFile(cfg.TitlesFile)
	backend, _ := cfg.NewMovieBackend()
	sc := models.NewSearchController(catalog, backend, cfg.ControllerOptions())

	logger.Info("Terminal client starting", "titles", catalog.Len(), "backend", cfg.BackendURL)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err = tea.NewProgram(tui.New(ctx, sc, cfg.RequestTimeout), tea.WithAltScreen()).Run()
	return err
}
