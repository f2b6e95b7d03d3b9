// Package ui provides terminal rendering helpers for command output.
//
// Styling is disabled automatically when stdout is not a terminal, so
// piped output stays plain.
package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var styled = term.IsTerminal(int(os.Stdout.Fd()))

var (
	passStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	actionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
)

// RenderPass renders success markers.
func RenderPass(s string) string { return render(passStyle, s) }

// RenderWarn renders warning markers.
func RenderWarn(s string) string { return render(warnStyle, s) }

// RenderFail renders failure markers.
func RenderFail(s string) string { return render(failStyle, s) }

// RenderAccent renders informational highlights.
func RenderAccent(s string) string { return render(accentStyle, s) }

// RenderAction renders a sync action label (add/del/upd/clb).
func RenderAction(s string) string { return render(actionStyle, s) }

func render(style lipgloss.Style, s string) string {
	if !styled {
		return s
	}
	return style.Render(s)
}
