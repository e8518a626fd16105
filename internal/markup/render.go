package markup

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Renderer turns marked messages into terminal text.
type Renderer struct {
	code   lipgloss.Style
	struck lipgloss.Style
	plain  bool
}

// NewRenderer styles output for the terminal behind r.
func NewRenderer(r *lipgloss.Renderer) *Renderer {
	return &Renderer{
		code:   r.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#1F6FEB", Dark: "#79C0FF"}),
		struck: r.NewStyle().Strikethrough(true).Faint(true),
	}
}

// Plain returns a renderer that drops all styling.
func Plain() *Renderer {
	return &Renderer{plain: true}
}

type tag int

const (
	tagNone tag = iota
	tagCode
	tagStruck
)

var tags = map[string]struct {
	open bool
	kind string
}{
	"<code>":  {true, "code"},
	"</code>": {false, "code"},
	"<s>":     {true, "s"},
	"</s>":    {false, "s"},
	"<ol>":    {true, "ol"},
	"</ol>":   {false, "ol"},
	"<li>":    {true, "li"},
	"</li>":   {false, "li"},
}

// Render converts s to terminal text. Unknown angle-bracket sequences are
// kept as text.
func (r *Renderer) Render(s string) string {
	w := &writer{r: r}
	for i := 0; i < len(s); {
		if strings.HasPrefix(s[i:], literalOpen) {
			start := i + len(literalOpen)
			end := strings.Index(s[start:], literalClose)
			if end < 0 {
				w.text(s[start:])
				break
			}
			w.text(s[start : start+end])
			i = start + end + len(literalClose)
			continue
		}
		if s[i] == '<' {
			if end := strings.IndexByte(s[i:], '>'); end > 0 {
				if t, ok := tags[s[i:i+end+1]]; ok {
					w.tag(t.kind, t.open)
					i += end + 1
					continue
				}
			}
		}
		next := strings.IndexByte(s[i+1:], '<')
		if next < 0 {
			w.text(s[i:])
			break
		}
		w.text(s[i : i+1+next])
		i += 1 + next
	}
	return w.finish()
}

type writer struct {
	r      *Renderer
	out    strings.Builder
	run    strings.Builder
	code   int
	struck int
	lists  []int
}

func (w *writer) style() tag {
	switch {
	case w.struck > 0:
		return tagStruck
	case w.code > 0:
		return tagCode
	default:
		return tagNone
	}
}

func (w *writer) text(s string) {
	w.run.WriteString(s)
}

// flush writes the pending run with the style that was active while it accumulated.
func (w *writer) flush(t tag) {
	if w.run.Len() == 0 {
		return
	}
	text := w.run.String()
	w.run.Reset()
	if !w.r.plain {
		switch t {
		case tagCode:
			text = w.r.code.Render(text)
		case tagStruck:
			text = w.r.struck.Render(text)
		}
	}
	w.out.WriteString(text)
}

func (w *writer) newline() {
	if w.out.Len() > 0 && !strings.HasSuffix(w.out.String(), "\n") {
		w.out.WriteByte('\n')
	}
}

func (w *writer) tag(kind string, open bool) {
	w.flush(w.style())
	switch kind {
	case "code":
		w.code = adjust(w.code, open)
	case "s":
		w.struck = adjust(w.struck, open)
	case "ol":
		if open {
			w.newline()
			w.lists = append(w.lists, 0)
		} else if len(w.lists) > 0 {
			w.lists = w.lists[:len(w.lists)-1]
			w.newline()
		}
	case "li":
		if !open {
			return
		}
		w.newline()
		if len(w.lists) == 0 {
			w.out.WriteString("  - ")
			return
		}
		depth := len(w.lists) - 1
		w.lists[depth]++
		fmt.Fprintf(&w.out, "%s%2d. ", strings.Repeat("  ", depth+1), w.lists[depth])
	}
}

func adjust(n int, open bool) int {
	if open {
		return n + 1
	}
	if n > 0 {
		return n - 1
	}
	return 0
}

func (w *writer) finish() string {
	w.flush(w.style())
	return w.out.String()
}
