package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/skyhop/internal/audio"
	"github.com/vovakirdan/skyhop/internal/platform/tui"
	"github.com/vovakirdan/skyhop/internal/registry"
	"github.com/vovakirdan/skyhop/internal/replay"
	"github.com/vovakirdan/skyhop/internal/storage"
)

var (
	flagFrontend string
	flagRecord   bool
	flagMute     bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play skyhop",
	Long: `Start a local game session.

Controls:
  Space/Up/W - Jump (also starts and restarts a run)
  P          - Pause
  M          - Mute
  Ctrl+S     - Screenshot (terminal only)
  Q          - Quit

With --record, every tick of the session is saved as a tape on exit.
Tapes replay exactly with 'skyhop replay run <id>'.

Examples:
  skyhop play
  skyhop play --frontend window
  skyhop play --seed 42 --record
  skyhop play --config ./my-skyhop.yaml --mute`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVarP(&flagFrontend, "frontend", "f", tui.FrontendID, "Frontend to play in (see 'skyhop frontends')")
	playCmd.Flags().BoolVar(&flagRecord, "record", false, "Save the session as a replay tape")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Start with sound muted")
}

func runPlay(cmd *cobra.Command, _ []string) {
	fe, err := registry.Create(flagFrontend)
	if err != nil {
		fatalf("%v\nRun 'skyhop frontends' to see available frontends.", err)
	}

	// The terminal frontend owns the screen; send logs to a file instead.
	if fe.ID() == tui.FrontendID {
		if f, err := openLogFile(); err == nil {
			defer f.Close()
			logger.SetOutput(f)
		} else {
			logger.SetLevel(log.ErrorLevel)
		}
	}

	sound := audio.Open(cfg.Audio, logger)
	if s, ok := sound.(*audio.Speaker); ok {
		defer s.Close()
	}

	seed := resolveSeed()
	env := registry.Env{
		Config:   cfg,
		Seed:     seed,
		TickRate: flagFPS,
		Logger:   logger,
		Sound:    sound,
		Muted:    flagMute,
	}

	var rec *replay.Recorder
	if flagRecord {
		rec = replay.NewRecorder(seed, cfg, flagFPS)
		env.Observer = rec.Observe
	}

	logger.Debug("starting session", "frontend", fe.ID(), "seed", seed)
	runErr := fe.Run(cmd.Context(), env)

	if rec != nil && rec.Len() > 0 {
		saveTape(rec)
	}
	if runErr != nil {
		fatalf("running game: %v", runErr)
	}
}

// saveTape stores a finished recording. Failures are reported but do not fail
// the session.
func saveTape(rec *replay.Recorder) {
	runs := rec.Runs()
	tape := rec.Finish()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open tape database", "error", err)
		return
	}
	defer store.Close()

	id, err := store.SaveTape(tape, runs)
	if err != nil {
		logger.Warn("could not save tape", "error", err)
		return
	}
	logger.Info("tape saved", "id", id, "frames", len(tape.Frames), "runs", len(runs))
	fmt.Printf("Saved tape %d (%d runs). Verify with: skyhop replay run %d\n", id, len(runs), id)
}

// openLogFile opens ~/.skyhop/skyhop.log for appending.
func openLogFile() (*os.File, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(home, ".skyhop")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, "skyhop.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
}
