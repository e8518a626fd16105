package markup

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

func NewRendererForTest() *Renderer {
	return NewRenderer(lipgloss.NewRenderer(io.Discard))
}
