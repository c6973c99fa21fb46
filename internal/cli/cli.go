package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/buger/goterm"
	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/pkg/errors"
)

var (
	// Colors for different types of output
	userColor      = color.New(color.FgWhite)                 // White for echoed user input
	aiOutputColor  = color.New(color.FgCyan)                  // Cyan for answers
	pendingColor   = color.New(color.FgHiBlack, color.Italic) // Dark grey for placeholders
	sourcesColor   = color.New(color.FgHiBlack)               // Dark grey for sources
	titleColor     = color.New(color.FgMagenta, color.Bold)   // Bold magenta for titles
	separatorColor = color.New(color.FgHiBlack)               // Dark grey for separators
	noticeColor    = color.New(color.FgYellow, color.Bold)    // Yellow for notices
	successColor   = color.New(color.FgGreen)                 // Green for successful uploads
	errorColor     = color.New(color.FgRed)                   // Red for failures
	promptColor    = color.New(color.FgHiBlue)                // Bright blue for prompts
)

// ErrInterrupt is returned by Prompter.Prompt when the user hits Ctrl+C on an empty line.
var ErrInterrupt = readline.ErrInterrupt

// Width of the terminal.
func Width() int {
	if width := goterm.Width(); width > 0 {
		return width
	}
	return 80
}

// Separator printed to w.
func Separator(w io.Writer) {
	separatorColor.Fprintln(w, strings.Repeat("-", Width()))
}

// Title printed to w.
func Title(w io.Writer, text string, args ...any) {
	width := Width()
	title := "      " + fmt.Sprintf(text, args...) + "      "
	leftWidth := max((width-len(title))/2, 0)
	rightWidth := max(width-len(title)-leftWidth, 0)
	titleColor.Fprintln(w, strings.Repeat("-", leftWidth)+title+strings.Repeat("-", rightWidth))
}

// Prompter reads lines from the terminal with in-memory recall.
type Prompter struct {
	rl *readline.Instance
}

// NewPrompter instantiates and returns a prompter. Call Close when done.
func NewPrompter() (*Prompter, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            promptColor.Sprint("> "),
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "creating readline instance")
	}
	return &Prompter{rl: rl}, nil
}

// Prompt reads a single line. It returns io.EOF on Ctrl+D and ErrInterrupt on Ctrl+C.
func (p *Prompter) Prompt() (string, error) {
	return p.rl.Readline()
}

// Stdout returns a writer that does not corrupt the prompt line.
func (p *Prompter) Stdout() io.Writer {
	return p.rl.Stdout()
}

// Close the prompter.
func (p *Prompter) Close() error {
	return p.rl.Close()
}

// AskUsername prompts for the name to log in with.
func AskUsername() (string, error) {
	var username string
	question := &survey.Input{Message: "Username:"}
	if err := survey.AskOne(question, &username); err != nil {
		return "", errors.Wrap(err, "asking username")
	}
	return username, nil
}

// AskPath prompts for the path of a document, offering completion from the given directory.
func AskPath(message, directory string) (string, error) {
	var path string
	question := &survey.Input{
		Message: message,
		Default: directory,
		Suggest: func(toComplete string) []string {
			matches, _ := filepath.Glob(toComplete + "*")
			return matches
		},
	}
	if err := survey.AskOne(question, &path); err != nil {
		return "", errors.Wrap(err, "asking path")
	}
	return path, nil
}

// QueryUser a yes/no question.
func QueryUser(question string) bool {
	surveyQuestion := &survey.Confirm{
		Message: question,
	}
	confirm := false
	survey.AskOne(surveyQuestion, &confirm)
	return confirm
}
