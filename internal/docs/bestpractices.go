// Package docs extracts "Best practice" admonition blocks from the Ops
// and Charmcraft documentation trees. The extracted blocks become the
// best-practices section of the review checklist.
package docs

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// bestPracticeRST matches reST admonition blocks:
//
//	.. admonition:: Best practice
//	   :class: hint
//
//	   <content>
var bestPracticeRST = regexp.MustCompile(
	`(?m)^\.\. admonition:: Best practice\s*\n\s*:class: hint\s*\n\s*\n([\s\S]*?)(?:\n\.\. |\n\n|\z)`)

// ignoredPractices are blocks excluded from the checklist because they
// duplicate other checklist items or are not actually practice notes.
var ignoredPractices = map[string]struct{}{
	"The quality assurance pipeline of a charm should be automated using a " +
		"continuous integration (CI) system.": {},
	"If you're setting up a ``git`` repository: name it using the pattern " +
		"``<charm name>-operator``. For the charm name, see :ref:`specify-a-name`.": {},
	"Smaller charm documentation examples:": {},
	"Bigger charm documentation examples:":  {},
}

// BestPractices walks each documentation tree and returns the extracted
// practice blocks, one line each, in a stable order. Unreadable files and
// missing directories are skipped; a documentation checkout is optional
// input.
func BestPractices(dirs ...string) []string {
	var practices []string
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		var files []string
		_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil
			}
			switch strings.ToLower(filepath.Ext(path)) {
			case ".md", ".rst":
				files = append(files, path)
			}
			return nil
		})
		sort.Strings(files)
		for _, f := range files {
			practices = append(practices, extractFromFile(f)...)
		}
	}

	var kept []string
	for _, p := range practices {
		if _, skip := ignoredPractices[p]; !skip {
			kept = append(kept, p)
		}
	}
	return kept
}

func extractFromFile(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md":
		return ExtractMarkdown(data)
	case ".rst":
		return ExtractRST(data)
	}
	return nil
}

// ExtractMarkdown pulls best-practice blocks out of MyST-style markdown,
// where they appear as fenced blocks with an `{admonition} Best practice`
// info string. The goldmark AST walk finds the fences without tripping on
// admonition-looking text inside regular code examples being quoted.
func ExtractMarkdown(source []byte) []string {
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(source))

	var blocks []string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fence, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}
		info := ""
		if fence.Info != nil {
			info = string(fence.Info.Segment.Value(source))
		}
		if !strings.HasPrefix(info, "{admonition}") ||
			!strings.Contains(info, "Best practice") {
			return ast.WalkContinue, nil
		}

		var body strings.Builder
		for i := 0; i < fence.Lines().Len(); i++ {
			line := fence.Lines().At(i)
			body.Write(line.Value(source))
		}
		if block := cleanBlock(body.String()); block != "" {
			blocks = append(blocks, block)
		}
		return ast.WalkContinue, nil
	})
	return blocks
}

// ExtractRST pulls best-practice admonition blocks out of reStructuredText.
func ExtractRST(source []byte) []string {
	var blocks []string
	for _, m := range bestPracticeRST.FindAllSubmatch(source, -1) {
		body := regexp.MustCompile(`(?m)^\s+`).ReplaceAllString(string(m[1]), "")
		if block := cleanBlock(body); block != "" {
			blocks = append(blocks, block)
		}
	}
	return blocks
}

// cleanBlock drops the class directive and collapses the block to one line.
func cleanBlock(s string) string {
	s = regexp.MustCompile(`(?m)^:class: hint\s*\n`).ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	return strings.Join(strings.Fields(s), " ")
}
