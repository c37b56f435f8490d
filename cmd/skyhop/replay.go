package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/skyhop/internal/platform/tui"
	"github.com/vovakirdan/skyhop/internal/replay"
	"github.com/vovakirdan/skyhop/internal/storage"
)

var flagReplayLimit int

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "List, verify and delete recorded tapes",
	Long: `Tapes are recorded with 'skyhop play --record'. A tape stores the seed,
a fingerprint of the configuration and the input of every tick, so a replay
reproduces every run exactly.

Examples:
  skyhop replay list
  skyhop replay run 3
  skyhop replay rm 3`,
}

var replayListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded tapes",
	Long: `List recorded tapes, newest first.

In a terminal this opens an interactive browser: Enter verifies the selected
tape, D deletes it. Otherwise a plain table is printed.`,
	Args: cobra.NoArgs,
	Run:  runReplayList,
}

var replayRunCmd = &cobra.Command{
	Use:   "run <id>",
	Short: "Replay a tape headlessly and check its runs",
	Args:  cobra.ExactArgs(1),
	Run:   runReplayRun,
}

var replayRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a tape",
	Args:  cobra.ExactArgs(1),
	Run:   runReplayRm,
}

func init() {
	replayListCmd.Flags().IntVar(&flagReplayLimit, "limit", 20, "Maximum number of tapes to print")

	replayCmd.AddCommand(replayListCmd)
	replayCmd.AddCommand(replayRunCmd)
	replayCmd.AddCommand(replayRmCmd)
}

// openStore opens the tape database or exits.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fatalf("opening tape database: %v", err)
	}
	return store
}

func parseID(arg string) int64 {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		fatalf("invalid tape id %q", arg)
	}
	return id
}

func runReplayList(_ *cobra.Command, _ []string) {
	store := openStore()
	defer store.Close()

	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		width, height, err := term.GetSize(fd)
		if err != nil {
			width, height = 80, 24
		}
		id, err := tui.RunTapeList(store, width, height)
		if err != nil {
			store.Close()
			fatalf("tape browser: %v", err)
		}
		if id != 0 {
			if err := verifyTape(store, id); err != nil {
				store.Close()
				fatalf("%v", err)
			}
		}
		return
	}

	tapes, err := store.ListTapes(flagReplayLimit)
	if err != nil {
		store.Close()
		fatalf("listing tapes: %v", err)
	}

	if len(tapes) == 0 {
		fmt.Println("No tapes recorded yet.")
		fmt.Println()
		fmt.Println("Play with 'skyhop play --record' to save one.")
		return
	}

	fmt.Printf("  %-5s  %-20s  %-5s  %-5s  %-8s  %s\n", "ID", "Seed", "Runs", "Best", "Length", "Recorded")
	fmt.Printf("  %-5s  %-20s  %-5s  %-5s  %-8s  %s\n", "--", "----", "----", "----", "------", "--------")
	for _, t := range tapes {
		fmt.Printf("  %-5d  %-20d  %-5d  %-5d  %-8s  %s\n",
			t.ID, t.Seed, t.Runs, t.Best, t.Duration.Round(100*time.Millisecond), t.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func runReplayRun(_ *cobra.Command, args []string) {
	id := parseID(args[0])

	store := openStore()
	defer store.Close()

	if err := verifyTape(store, id); err != nil {
		store.Close()
		fatalf("%v", err)
	}
}

// verifyTape replays a stored tape and compares the result with what was
// recorded during play.
func verifyTape(store *storage.Store, id int64) error {
	info, err := store.Info(id)
	if err != nil {
		return err
	}
	tape, err := store.Tape(id)
	if err != nil {
		return err
	}

	logger.Debug("replaying tape", "id", id, "seed", tape.Seed, "frames", len(tape.Frames))
	res, err := replay.Run(tape, cfg)
	if errors.Is(err, replay.ErrConfigMismatch) {
		return fmt.Errorf("%w\nReplay with the --config the tape was recorded with", err)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Tape %d: seed %d, %d ticks at %d fps\n", id, tape.Seed, res.Ticks, tape.TickRate)
	for i, score := range res.Runs {
		fmt.Printf("  run %-3d  score %d\n", i+1, score)
	}
	fmt.Printf("Best: %d, ended in %s\n", res.Best(), res.Mode)

	if len(res.Runs) != info.Runs || res.Best() != info.Best {
		return fmt.Errorf("replay diverged: recorded %d runs (best %d), replayed %d runs (best %d)",
			info.Runs, info.Best, len(res.Runs), res.Best())
	}
	fmt.Println("OK: replay matches the recording")
	return nil
}

func runReplayRm(_ *cobra.Command, args []string) {
	id := parseID(args[0])

	store := openStore()
	defer store.Close()

	if err := store.DeleteTape(id); err != nil {
		store.Close()
		fatalf("%v", err)
	}
	fmt.Printf("Deleted tape %d\n", id)
}
