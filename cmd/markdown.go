package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"
)

// printMarkdown renders md for the terminal, falling back to the raw text.
func printMarkdown(w io.Writer, md string) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Fprint(w, out)
			return
		}
	}
	Logger().Debug("markdown rendering failed, printing raw text", zap.Error(err))
	fmt.Fprint(w, md)
}
