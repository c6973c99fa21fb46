package markdown

import (
	"regexp"
	"strings"
)

// Matches fenced code: group 1 is the language, group 2 the body.
var fencedCodeRegexp = regexp.MustCompile("(?sm)^```([a-zA-Z0-9_+-]*)\\n(.*?)^```")

// Block is a segment of an answer.
type Block interface {
	// Markdown returns the block as markdown source.
	Markdown() string
	// Plain returns the block without markdown decoration.
	Plain() string
}

// TextBlock is prose, possibly with inline markdown.
type TextBlock struct {
	Text string
}

// Markdown implements the Block interface.
func (b *TextBlock) Markdown() string { return b.Text }

// Plain implements the Block interface.
func (b *TextBlock) Plain() string { return b.Text }

// CodeBlock is a fenced code segment.
type CodeBlock struct {
	Language string
	Code     string
}

// Markdown implements the Block interface.
func (b *CodeBlock) Markdown() string {
	return "```" + b.Language + "\n" + b.Code + "\n```"
}

// Plain implements the Block interface.
func (b *CodeBlock) Plain() string { return b.Code }

// ParseBlocks splits content into text and fenced code blocks.
func ParseBlocks(content string) []Block {
	var blocks []Block
	appendText := func(text string) {
		if strings.TrimSpace(text) != "" {
			blocks = append(blocks, &TextBlock{Text: text})
		}
	}

	last := 0
	for _, match := range fencedCodeRegexp.FindAllStringSubmatchIndex(content, -1) {
		appendText(content[last:match[0]])
		code := content[match[4]:match[5]]
		blocks = append(blocks, &CodeBlock{
			Language: content[match[2]:match[3]],
			// Tabs break glamour's width computation.
			Code: strings.ReplaceAll(strings.Trim(code, "\n"), "\t", "  "),
		})
		last = match[1]
	}
	appendText(content[last:])
	return blocks
}

// Plain joins the plain rendering of every block.
func Plain(blocks []Block) string {
	parts := make([]string, 0, len(blocks))
	for _, block := range blocks {
		parts = append(parts, strings.Trim(block.Plain(), "\n"))
	}
	return strings.Join(parts, "\n")
}
