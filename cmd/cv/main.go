package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"casevis/pkg/config"
	"casevis/pkg/loader"
	"casevis/pkg/notes"
	"casevis/pkg/store"
	"casevis/pkg/ui"
	"casevis/pkg/watcher"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func main() {
	help := flag.Bool("help", false, "Show help")
	version := flag.Bool("version", false, "Show version")
	configPath := flag.String("config", config.DefaultConfigFile, "Path to config file")
	dataDir := flag.String("data", "", "Data directory (overrides config)")
	watch := flag.Bool("watch", false, "Reload when data files change")
	flag.Parse()

	if *help {
		fmt.Println("Usage: cv [options]")
		fmt.Println("\nA TUI dashboard for investigative case data.")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *version {
		fmt.Println("cv version 0.1.0")
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	if *watch {
		cfg.Watch = true
	}

	if err := ui.RunGate(cfg.Password); err != nil {
		if errors.Is(err, ui.ErrGateAborted) {
			os.Exit(0)
		}
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	ds, err := loader.LoadDataset(cfg.DataDir)
	if err != nil {
		fmt.Printf("Error loading data: %v\n", err)
		fmt.Printf("Expected JSON collections under %s.\n", cfg.DataDir)
		os.Exit(1)
	}

	s, err := store.New(ds)
	if err != nil {
		fmt.Printf("Error validating data: %v\n", err)
		os.Exit(1)
	}

	noteDB, err := notes.OpenDB(cfg.NotesDB)
	if err != nil {
		fmt.Printf("Error opening notes database: %v\n", err)
		os.Exit(1)
	}
	defer noteDB.Close()

	theme := ui.DefaultTheme(lipgloss.DefaultRenderer())
	app := ui.NewApp(theme, cfg, s, noteDB)

	p := tea.NewProgram(app, tea.WithAltScreen())

	if cfg.Watch {
		w, err := watcher.Watch(cfg.DataDir, 0, func() {
			p.Send(ui.ReloadMsg{})
		})
		if err != nil {
			fmt.Printf("Error watching %s: %v\n", cfg.DataDir, err)
			os.Exit(1)
		}
		defer w.Close()
	}

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running case viewer: %v\n", err)
		os.Exit(1)
	}
}
