// fixicons re-saves the SaviPets app-icon PNGs without an alpha channel,
// compositing each onto an opaque white background so the bundle passes
// App Store icon validation (icons containing transparency are rejected).
// Originals are kept next to the fixed files with a .backup suffix.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/term"

	"github.com/KARIMDAVI/savipets-ios/internal/config"
	"github.com/KARIMDAVI/savipets-ios/internal/paths"
	"github.com/KARIMDAVI/savipets-ios/internal/runlog"
	"github.com/KARIMDAVI/savipets-ios/internal/runner"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	args := os.Args[1:]
	configPath := ""
	rootOverride := ""
	force, dryRun, logFlag := false, false, false

	// Parse flags
	filtered := args[:0]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--config", "-c":
			if i+1 < len(args) {
				configPath = args[i+1]
				i++
			} else {
				fmt.Fprintf(os.Stderr, "Error: --config requires a file path\n")
				os.Exit(1)
			}
		case "--root", "-r":
			if i+1 < len(args) {
				rootOverride = args[i+1]
				i++
			} else {
				fmt.Fprintf(os.Stderr, "Error: --root requires a directory path\n")
				os.Exit(1)
			}
		case "--force", "-f":
			force = true
		case "--dry-run", "-n":
			dryRun = true
		case "--log":
			logFlag = true
		default:
			filtered = append(filtered, args[i])
		}
	}

	if len(filtered) == 0 {
		runFix(configPath, rootOverride, force, dryRun, logFlag)
		return
	}

	switch filtered[0] {
	case "help", "-h", "--help":
		printUsage()
	case "version", "-V", "--version":
		printVersion()
	case "list", "-l", "--list":
		listIcons(configPath, rootOverride)
	case "history":
		historyCmd(filtered[1:], configPath)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n", filtered[0])
		fmt.Fprintf(os.Stderr, "Run 'fixicons help' for usage.\n")
		os.Exit(1)
	}
}

// glyphs are the per-line status markers. Emoji on a terminal, plain
// ASCII tags when stdout is piped.
type glyphs struct {
	ok, warn, fail, done, note string
}

func statusGlyphs() glyphs {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return glyphs{ok: "✅", warn: "⚠️ ", fail: "❌", done: "🎉", note: "📝"}
	}
	return glyphs{ok: "[ok]", warn: "[warn]", fail: "[fail]", done: "[done]", note: "[note]"}
}

// outcomeLine renders a single per-file status line.
func outcomeLine(g glyphs, o runner.Outcome) string {
	switch o.Status {
	case runner.StatusFixed:
		return fmt.Sprintf("%s Fixed: %s -> %s", g.ok, o.Backup, o.Path)
	case runner.StatusSkipped:
		switch o.Reason {
		case runner.ReasonBackupExists:
			return fmt.Sprintf("%s Backup already exists, skipping %s (re-run with --force to overwrite it)", g.warn, o.Name)
		case runner.ReasonDryRun:
			return fmt.Sprintf("%s Would fix: %s", g.ok, o.Path)
		default:
			return fmt.Sprintf("%s Icon file not found: %s", g.warn, o.Name)
		}
	default:
		line := fmt.Sprintf("%s Error processing %s: %v", g.fail, o.Path, o.Err)
		if o.Backup != "" {
			line += fmt.Sprintf(" (original kept at %s)", o.Backup)
		}
		return line
	}
}

func runFix(configPath, rootOverride string, force, dryRun, logFlag bool) {
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if rootOverride != "" {
		cfg.Root = rootOverride
	}

	g := statusGlyphs()
	sum := runner.Run(cfg, runner.Options{Force: force, DryRun: dryRun})
	if sum.RootMissing {
		fmt.Fprintf(os.Stderr, "%s App icon directory not found: %s\n", g.fail, cfg.Root)
		os.Exit(1)
	}

	for _, o := range sum.Outcomes {
		fmt.Println(outcomeLine(g, o))
	}

	// Best-effort run log; a logging problem never fails the run.
	if (cfg.Log || logFlag) && !dryRun {
		if store, err := runlog.Open(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "runlog: %v\n", err)
		} else {
			if err := store.Log(runlog.NewEntry(sum, force)); err != nil {
				fmt.Fprintf(os.Stderr, "runlog: %v\n", err)
			}
			store.Close()
		}
	}

	fixed, skipped, failed := sum.Counts()
	fmt.Println()
	if dryRun {
		wouldFix := countDryRuns(sum)
		fmt.Printf("%s Dry run complete. (%d would be fixed, %d skipped, %d failed)\n", g.done, wouldFix, fixed+skipped-wouldFix, failed)
	} else {
		fmt.Printf("%s App icon transparency fix complete! (%d fixed, %d skipped, %d failed)\n", g.done, fixed, skipped, failed)
		fmt.Printf("%s Next steps:\n", g.note)
		fmt.Println("1. Clean and rebuild your project")
		fmt.Println("2. Archive and upload to App Store Connect")
	}

	if !sum.OK() {
		os.Exit(1)
	}
}

// countDryRuns counts the files a dry run would have fixed.
func countDryRuns(sum runner.Summary) int {
	n := 0
	for _, o := range sum.Outcomes {
		if o.Reason == runner.ReasonDryRun {
			n++
		}
	}
	return n
}

func listIcons(configPath, rootOverride string) {
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if rootOverride != "" {
		cfg.Root = rootOverride
	}

	g := statusGlyphs()
	fmt.Printf("Icon root: %s\n", cfg.Root)
	if _, err := os.Stat(cfg.Root); err != nil {
		fmt.Printf("%s directory not found\n", g.warn)
		return
	}

	for _, name := range cfg.Icons {
		path := filepath.Join(cfg.Root, name)
		state := "present"
		if _, err := os.Stat(path); err != nil {
			state = "missing"
		}
		if _, err := os.Stat(paths.BackupPath(path)); err == nil {
			state += ", backup exists"
		}
		fmt.Printf("  %-45s (%s)\n", name, state)
	}
}

func printVersion() {
	fmt.Printf("fixicons %s (%s) %s/%s\n", version, buildDate, runtime.GOOS, runtime.GOARCH)
}

func printUsage() {
	fmt.Printf("fixicons %s - Strip alpha channels from the app-icon PNGs\n", version)
	fmt.Println(`
Usage:
  fixicons [options]
  fixicons <command> [args]

Options:
  --config, -c <path>    Path to fixicons-config.json
  --root, -r <path>      Override the icon directory
  --force, -f            Overwrite an existing .backup (loses the saved original)
  --dry-run, -n          Report what would be done without touching files
  --log                  Record this run in the history log

Commands:
  list, -l, --list       Show configured icon files and whether they exist
  history [n]            Show the last n recorded runs (default 10)
  history clean <days>   Remove history older than <days> days
  history clear          Delete all recorded history
  version, -V            Show version and build date
  help, -h, --help       Show this help message

Config resolution:
  1. --config <path>                          (explicit)
  2. fixicons-config.json next to binary      (portable)
  3. ~/.config/fixicons/fixicons-config.json  (user default)
  Compiled-in defaults apply when no file exists; SAVIPETS_ICON_*
  environment variables override either.

Exit status:
  0  every configured file was fixed or cleanly skipped
  1  the icon directory is missing or at least one file failed`)
}
