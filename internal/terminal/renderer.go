package terminal

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fatih/color"
)

// Renderer prints matched lines in their quoted, escaped form, one per line.
// With color enabled, occurrences of the query inside each line are highlighted;
// with color disabled the output is exactly strconv.Quote(line) + "\n".
type Renderer struct {
	writer        io.Writer
	query         string
	caseSensitive bool
	highlight     *color.Color
	header        *color.Color
}

// NewRenderer creates a renderer that writes to the provided writer.
func NewRenderer(writer io.Writer, query string, caseSensitive bool) *Renderer {
	return &Renderer{
		writer:        writer,
		query:         query,
		caseSensitive: caseSensitive,
		highlight:     color.New(color.FgRed, color.Bold),
		header:        color.New(color.FgCyan, color.Bold),
	}
}

// RenderLines writes every line in order.
func (r *Renderer) RenderLines(lines []string) error {
	for _, line := range lines {
		if err := r.RenderLine(line); err != nil {
			return err
		}
	}
	return nil
}

// RenderLine writes a single quoted line.
func (r *Renderer) RenderLine(line string) error {
	_, err := io.WriteString(r.writer, r.format(line)+"\n")
	return err
}

// RenderHeader writes a separator naming the file, used between watch refreshes.
func (r *Renderer) RenderHeader(name string) error {
	_, err := fmt.Fprintln(r.writer, r.header.Sprintf("--- %s ---", name))
	return err
}

func (r *Renderer) format(line string) string {
	if color.NoColor || r.query == "" {
		return strconv.Quote(line)
	}

	spans := r.matchSpans(line)
	if len(spans) == 0 {
		return strconv.Quote(line)
	}

	// quoting rune-aligned segments separately yields the same text as quoting the whole line
	var b strings.Builder
	b.WriteByte('"')
	prev := 0
	for _, s := range spans {
		b.WriteString(quoteInner(line[prev:s[0]]))
		b.WriteString(r.highlight.Sprint(quoteInner(line[s[0]:s[1]])))
		prev = s[1]
	}
	b.WriteString(quoteInner(line[prev:]))
	b.WriteByte('"')
	return b.String()
}

func quoteInner(s string) string {
	q := strconv.Quote(s)
	return q[1 : len(q)-1]
}

// matchSpans returns non-overlapping [start, end) byte ranges of the query in line.
func (r *Renderer) matchSpans(line string) [][2]int {
	if r.caseSensitive {
		return indexAll(line, r.query, nil)
	}

	lowered, toOrig := foldLine(line)
	return indexAll(lowered, strings.ToLower(r.query), toOrig)
}

func indexAll(s, sub string, toOrig []int) [][2]int {
	var spans [][2]int
	offset := 0
	for {
		idx := strings.Index(s[offset:], sub)
		if idx == -1 {
			return spans
		}
		start, end := offset+idx, offset+idx+len(sub)
		if toOrig != nil {
			spans = append(spans, [2]int{toOrig[start], toOrig[end]})
		} else {
			spans = append(spans, [2]int{start, end})
		}
		offset = end
	}
}

// foldLine lowercases line rune by rune, the same way strings.ToLower does, and records
// for every rune boundary of the result the matching byte offset in line.
func foldLine(line string) (string, []int) {
	var b strings.Builder
	b.Grow(len(line))
	toOrig := make([]int, 0, len(line)+1)

	var buf [utf8.UTFMax]byte
	for i, rn := range line {
		n := utf8.EncodeRune(buf[:], unicode.ToLower(rn))
		for k := 0; k < n; k++ {
			toOrig = append(toOrig, i)
		}
		b.Write(buf[:n])
	}
	toOrig = append(toOrig, len(line))

	return b.String(), toOrig
}
