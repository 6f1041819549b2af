package lint

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Snippet is a fenced code block extracted from a Markdown document.
type Snippet struct {
	Language string
	Source   []byte
	// StartLine is the 1-based document line of the snippet's first
	// content line.
	StartLine int
}

// ExtractSnippets parses source as Markdown and returns the fenced code
// blocks whose info string matches one of the given languages. Blocks
// with no content lines are skipped.
func ExtractSnippets(source []byte, languages []string) []Snippet {
	reader := text.NewReader(source)
	doc := goldmark.DefaultParser().Parse(reader)

	lineOf := func(offset int) int {
		line := 1
		for i := 0; i < offset && i < len(source); i++ {
			if source[i] == '\n' {
				line++
			}
		}
		return line
	}

	var snippets []Snippet
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fcb, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		lang := string(fcb.Language(source))
		if !languageMatches(lang, languages) {
			return ast.WalkContinue, nil
		}

		segs := fcb.Lines()
		if segs.Len() == 0 {
			return ast.WalkContinue, nil
		}

		var body []byte
		for i := 0; i < segs.Len(); i++ {
			seg := segs.At(i)
			body = append(body, seg.Value(source)...)
		}

		snippets = append(snippets, Snippet{
			Language:  lang,
			Source:    body,
			StartLine: lineOf(segs.At(0).Start),
		})
		return ast.WalkContinue, nil
	})

	return snippets
}

func languageMatches(lang string, languages []string) bool {
	for _, l := range languages {
		if lang == l {
			return true
		}
	}
	return false
}
