package statusbar

import "github.com/avelinek/taskdeck/internal/types"

// GetHints returns the keybinding hints for a mode
func GetHints(mode types.Mode) string {
	switch mode {
	case types.ModeNormal:
		return "h/l: columns  j/k: tasks  m: move  p: pin  x: dismiss  /: search  s: sort  r: sync  q: quit"
	case types.ModeSearch:
		return "Type to search  Enter: confirm  Esc: cancel"
	case types.ModeMove:
		return "h/l: pick column  Enter: confirm  Esc: cancel"
	case types.ModeTransition:
		return "j/k: pick transition  Enter: apply  Esc: cancel"
	default:
		return ""
	}
}
