package diffview

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/charmbracelet/lipgloss"
)

type syntaxClass int

const (
	classPlain syntaxClass = iota
	classKeyword
	classString
	classNumber
	classComment
)

var classStyles = map[syntaxClass]lipgloss.Style{
	classKeyword: lipgloss.NewStyle().Foreground(lipgloss.Color("176")),
	classString:  lipgloss.NewStyle().Foreground(lipgloss.Color("180")),
	classNumber:  lipgloss.NewStyle().Foreground(lipgloss.Color("117")),
	classComment: lipgloss.NewStyle().Foreground(lipgloss.Color("242")).Italic(true),
}

type syntaxSpan struct {
	Text  string
	Class syntaxClass
}

// syntaxSpans splits one line into classified spans using the lexer chosen by the file
// name. Nil means no lexer matched or tokenising failed.
func syntaxSpans(path, text string) []syntaxSpan {
	lexer := lexers.Match(filepath.Base(path))
	if lexer == nil || text == "" {
		return nil
	}
	it, err := chroma.Coalesce(lexer).Tokenise(nil, text)
	if err != nil {
		return nil
	}

	var spans []syntaxSpan
	for _, tok := range it.Tokens() {
		// Lexers may append a newline to the single line they were given.
		value := strings.ReplaceAll(tok.Value, "\n", "")
		if value == "" {
			continue
		}
		spans = append(spans, syntaxSpan{Text: value, Class: classify(tok.Type)})
	}
	return spans
}

func classify(t chroma.TokenType) syntaxClass {
	switch {
	case t.InCategory(chroma.Keyword):
		return classKeyword
	case t.InCategory(chroma.Comment):
		return classComment
	case t.InSubCategory(chroma.LiteralString):
		return classString
	case t.InSubCategory(chroma.LiteralNumber):
		return classNumber
	default:
		return classPlain
	}
}

func highlight(path, text string) string {
	spans := syntaxSpans(path, text)
	if spans == nil {
		return text
	}
	var b strings.Builder
	for _, span := range spans {
		if style, ok := classStyles[span.Class]; ok {
			b.WriteString(style.Render(span.Text))
			continue
		}
		b.WriteString(span.Text)
	}
	return b.String()
}
