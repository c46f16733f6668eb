package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/KARIMDAVI/savipets-ios/internal/config"
	"github.com/KARIMDAVI/savipets-ios/internal/runlog"
)

func historyCmd(args []string, configPath string) {
	if len(args) > 0 {
		switch args[0] {
		case "clear":
			historyClear(configPath)
			return
		case "clean":
			historyClean(args[1:], configPath)
			return
		}
	}

	count := 10
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			fmt.Fprintf(os.Stderr, "Error: count must be a positive integer\n")
			os.Exit(1)
		}
		count = n
	}

	store := openStore(configPath)
	defer store.Close()

	entries, err := store.Entries(0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(entries) == 0 {
		fmt.Println("No runs recorded. Enable logging with --log or \"log\": true in config.")
		return
	}

	if len(entries) > count {
		entries = entries[len(entries)-count:]
	}
	for i, e := range entries {
		fmt.Print(e.Format())
		if i < len(entries)-1 {
			fmt.Println()
		}
	}
}

func historyClear(configPath string) {
	store := openStore(configPath)
	defer store.Close()

	if err := store.Clear(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("History cleared (%s).\n", store.Path())
}

func historyClean(args []string, configPath string) {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "Error: 'history clean' requires a number of days\n")
		os.Exit(1)
	}
	days, err := strconv.Atoi(args[0])
	if err != nil || days <= 0 {
		fmt.Fprintf(os.Stderr, "Error: days must be a positive integer\n")
		os.Exit(1)
	}

	store := openStore(configPath)
	defer store.Close()

	removed, err := store.Clean(days)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Removed %d run(s) older than %d day(s).\n", removed, days)
}

func openStore(configPath string) runlog.Store {
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	store, err := runlog.Open(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return store
}
