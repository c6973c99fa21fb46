package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/malonaz/docqa/internal/orchestrator"
)

// Layout constants
const (
	DefaultWidth = 80

	// Viewport
	MinViewportHeight = 1

	// Inputs
	InputPaddingLeft = 1
	InputLabelWidth  = 10

	// Messages
	MessagePaddingLeft = 2
	MessageMargin      = 10
)

// Color palette
var (
	PrimaryColor   = lipgloss.Color("#7C3AED") // Purple
	SecondaryColor = lipgloss.Color("#06B6D4") // Cyan
	SuccessColor   = lipgloss.Color("#10B981") // Green
	ErrorColor     = lipgloss.Color("#F85149") // Red
	MutedColor     = lipgloss.Color("#6B7280") // Gray
	TextColor      = lipgloss.Color("#F9FAFB") // Light gray
	DimTextColor   = lipgloss.Color("#9CA3AF") // Dim gray
	BorderColor    = lipgloss.Color("#4B5563")
	DividerColor   = lipgloss.Color("#374151")
)

// Title bar
var (
	TitleStyle = lipgloss.NewStyle().
			Background(PrimaryColor).
			Foreground(TextColor).
			Bold(true)

	IdentityStyle = lipgloss.NewStyle().
			Foreground(DimTextColor).
			Background(PrimaryColor)
)

// Messages.
var (
	messageStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder())

	UserMessageStyle = lipgloss.NewStyle().
				Inherit(messageStyle).
				BorderForeground(PrimaryColor).
				MarginLeft(MessageMargin)

	AIMessageStyle = lipgloss.NewStyle().
			Inherit(messageStyle).
			BorderForeground(SecondaryColor).
			MarginRight(MessageMargin)

	PendingMessageStyle = lipgloss.NewStyle().
				Foreground(DimTextColor).
				Italic(true).
				PaddingLeft(MessagePaddingLeft)

	SourcesStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Italic(true).
			PaddingLeft(MessagePaddingLeft)
)

// Upload status strip.
var (
	statusStyle = lipgloss.NewStyle().PaddingLeft(1)

	NeutralStatusStyle = lipgloss.NewStyle().Inherit(statusStyle).Foreground(PrimaryColor)
	SuccessStatusStyle = lipgloss.NewStyle().Inherit(statusStyle).Foreground(SuccessColor)
	ErrorStatusStyle   = lipgloss.NewStyle().Inherit(statusStyle).Foreground(ErrorColor)
)

// Input area
var (
	inputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			PaddingLeft(InputPaddingLeft)

	FocusedInputStyle = lipgloss.NewStyle().Inherit(inputStyle).BorderForeground(PrimaryColor)
	BlurredInputStyle = lipgloss.NewStyle().Inherit(inputStyle).BorderForeground(BorderColor)

	InputLabelStyle = lipgloss.NewStyle().
			Foreground(DimTextColor).
			Width(InputLabelWidth)

	PickerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SecondaryColor).
			Padding(0, 1)
)

// Spinner
var (
	SpinnerStyle = lipgloss.NewStyle().
		Foreground(SecondaryColor)
)

// Help text
var (
	HelpStyle = lipgloss.NewStyle().
		Foreground(MutedColor).
		Italic(true)
)

// Divider
var (
	DividerStyle = lipgloss.NewStyle().
		Foreground(DividerColor)
)

// StatusStyle returns the style of the upload status strip for the given tone.
func StatusStyle(tone orchestrator.Tone) lipgloss.Style {
	switch tone {
	case orchestrator.ToneSuccess:
		return SuccessStatusStyle
	case orchestrator.ToneError:
		return ErrorStatusStyle
	default:
		return NeutralStatusStyle
	}
}

// MessageHorizontalFrameSize returns the horizontal frame size of AI messages.
func MessageHorizontalFrameSize() int {
	return AIMessageStyle.GetHorizontalFrameSize()
}

// Divider creates a horizontal divider of the specified width.
func Divider(width int) string {
	if width < 1 {
		width = 1
	}
	return DividerStyle.Render(strings.Repeat("─", width))
}
