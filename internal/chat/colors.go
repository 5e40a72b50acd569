package chat

import "github.com/charmbracelet/lipgloss"

var (
	textColor    = lipgloss.Color("252")
	blurText     = lipgloss.Color("244")
	caretColor   = lipgloss.Color("111")
	metaColor    = lipgloss.Color("243")
	statusColor  = lipgloss.Color("245")
	userColor    = lipgloss.Color("157")
	errorColor   = lipgloss.Color("196")
	mentionFg    = lipgloss.Color("17")
	mentionBg    = lipgloss.Color("153")
	editingBg    = lipgloss.Color("222")
	panelBorder  = lipgloss.Color("238")
	selectedBg   = lipgloss.Color("237")
	previewLabel = lipgloss.Color("246")
)
