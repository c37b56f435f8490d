package sim

import "fmt"

// Mode is the top-level game mode. Exactly one is active at a time.
type Mode uint8

const (
	ModeMainMenu Mode = iota
	ModePlaying
	ModeGameOver
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeMainMenu:
		return "main_menu"
	case ModePlaying:
		return "playing"
	case ModeGameOver:
		return "game_over"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// CanTransition reports whether m -> to is one of the allowed edges:
// MainMenu -> Playing, Playing -> GameOver, GameOver -> Playing.
func (m Mode) CanTransition(to Mode) bool {
	switch m {
	case ModeMainMenu:
		return to == ModePlaying
	case ModePlaying:
		return to == ModeGameOver
	case ModeGameOver:
		return to == ModePlaying
	default:
		return false
	}
}

// JumpPlaceholder is replaced by frontends with their own key label.
const JumpPlaceholder = "[JUMP]"

// Banner returns the text shown over the playfield in this mode, or "" for none.
func (m Mode) Banner() string {
	switch m {
	case ModeMainMenu:
		return "Press " + JumpPlaceholder + " to start"
	case ModeGameOver:
		return "Game Over\nPress " + JumpPlaceholder + " to restart"
	default:
		return ""
	}
}

// ScoreText formats the score line.
func ScoreText(score int) string {
	return fmt.Sprintf("Score: %d", score)
}
