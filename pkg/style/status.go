package style

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/rigup/pkg/status"
	"github.com/pterm/pterm"
)

// stateVerbs maps each link state to the phrase printed after the
// file name in status output
var stateVerbs = map[status.LinkState]string{
	status.StateLinked:        "linked to",
	status.StateStale:         "points elsewhere:",
	status.StateUnsynced:      "is a regular file, run install to link",
	status.StateMissing:       "not deployed",
	status.StateSourceMissing: "no source in any layer",
}

// StateStyle returns the pterm style for a link state badge
func StateStyle(state status.LinkState) *pterm.Style {
	switch state {
	case status.StateLinked:
		return pterm.NewStyle(pterm.FgGreen)
	case status.StateStale, status.StateUnsynced:
		return pterm.NewStyle(pterm.FgYellow)
	case status.StateMissing:
		return pterm.NewStyle(pterm.FgRed)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

// StateIndicator returns the one-character marker for a link state
func StateIndicator(state status.LinkState) string {
	switch state {
	case status.StateLinked:
		return SuccessIndicator
	case status.StateStale, status.StateUnsynced:
		return WarningIndicator
	case status.StateMissing:
		return ErrorIndicator
	default:
		return PendingIndicator
	}
}

// RenderFileStatus renders a single file status line
func RenderFileStatus(fs status.FileStatus) string {
	name := fmt.Sprintf("%-18s", fs.Name)
	badge := StateStyle(fs.State).Sprintf("%-14s", string(fs.State))

	msg := stateVerbs[fs.State]
	switch fs.State {
	case status.StateLinked:
		msg = fmt.Sprintf("%s %s", msg, SymlinkStyle.Render(fs.Source))
	case status.StateStale:
		msg = fmt.Sprintf("%s %s", msg, PathStyle.Render(fs.ActualTarget))
	}

	return fmt.Sprintf("  %s %s %s %s", StateIndicator(fs.State), badge, name, msg)
}

// RenderReport renders the full dotfiles status report
func RenderReport(r *status.Report) string {
	var b strings.Builder
	b.WriteString(SubtitleStyle.Render("Dotfiles") + "\n")
	for _, f := range r.Files {
		b.WriteString(RenderFileStatus(f) + "\n")
	}
	if r.Clean() {
		b.WriteString(MutedStyle.Render("All files linked.") + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderComponent renders one row of the component listing
func RenderComponent(name, description string, installed bool) string {
	indicator := PendingIndicator
	state := MutedStyle.Render("not installed")
	if installed {
		indicator = SuccessIndicator
		state = SuccessStyle.Render("installed")
	}
	return fmt.Sprintf("  %s %-12s %s\n      %s", indicator, name, state, MutedStyle.Render(description))
}
