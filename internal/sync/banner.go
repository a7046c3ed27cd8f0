package sync

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
)

var bannerTmpl = template.Must(template.New("banner").Parse(`
{{ .Header }}
{{ range .Paths }}  {{ . }}
{{ end }}{{ if .MoreCount }}  ...and {{ .MoreCount }} more
{{ end }}{{ .Footer }}
`))

type bannerData struct {
	Header    string
	Paths     []string
	MoreCount int
	Footer    string
}

// bannerMaxPaths is the maximum number of paths shown in the banner.
const bannerMaxPaths = 3

// RenderBanner writes a warning listing the paths the cycle could not read
// or apply. Writes nothing for a nil report or a clean cycle.
func RenderBanner(r *Report, w io.Writer) {
	if r == nil {
		return
	}
	problems := r.Problems()
	if len(problems) == 0 {
		return
	}

	renderer := lipgloss.NewRenderer(w)
	yellow := renderer.NewStyle().Foreground(lipgloss.Color("3"))

	noun := "item"
	if len(problems) != 1 {
		noun = "items"
	}
	header := yellow.Render(fmt.Sprintf("⚠ %d %s not synchronized in the last cycle:", len(problems), noun))

	shown := min(len(problems), bannerMaxPaths)
	moreCount := len(problems) - shown

	footer := yellow.Render("They are retried every cycle. See the log file for details.")

	data := bannerData{
		Header:    header,
		Paths:     problems[:shown],
		MoreCount: moreCount,
		Footer:    footer,
	}

	var buf strings.Builder
	_ = bannerTmpl.Execute(&buf, data)
	_, _ = io.WriteString(w, buf.String())
}
