package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/de-tools/ternak-atlas/pkg/models/domain"
)

type TableConfig struct {
	NameWidth   int
	NumberWidth int
	LabelWidth  int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		NameWidth:   32,
		NumberWidth: 10,
		LabelWidth:  36,
	}
}

type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

func (c *Reporter) funcMap() template.FuncMap {
	return template.FuncMap{
		"formatRow": func(name string, values ...interface{}) string {
			var b strings.Builder
			fmt.Fprintf(&b, "| %-*s |", c.config.NameWidth, truncate(name, c.config.NameWidth))
			for _, v := range values {
				fmt.Fprintf(&b, " %*v |", c.config.NumberWidth, v)
			}
			return b.String()
		},
		"separator": func(columns int) string {
			parts := []string{strings.Repeat("-", c.config.NameWidth+2)}
			for i := 0; i < columns; i++ {
				parts = append(parts, strings.Repeat("-", c.config.NumberWidth+2))
			}
			return "+" + strings.Join(parts, "+") + "+"
		},
		"yesno": func(b bool) string {
			if b {
				return "ya"
			}
			return "tidak"
		},
		"date": func(v interface{}) string {
			switch t := v.(type) {
			case interface{ Format(string) string }:
				return t.Format("2006-01-02")
			default:
				return ""
			}
		},
	}
}

// HandleSummary renders the program summary table.
func (c *Reporter) HandleSummary(summary *domain.ProgramSummary) error {
	tmpl := `
{{.Title}}

Peternak: {{len .Participants}}   Selesai 8 triwulan: {{.Completed}}
Total ternak awal: {{.TotalInitial}}   Total ternak saat ini: {{.TotalCurrent}}

{{separator 5}}
{{formatRow "Nama" "Laporan" "Triwulan" "Awal" "Saat ini" "Selesai"}}
{{separator 5}}
{{range .Participants}}{{formatRow .FullName .ReportCount .LatestQuarter .InitialCount .CurrentCount (yesno .Completed)}}
{{end}}{{separator 5}}
`
	return c.execute("summary", tmpl, summary)
}

// HandleParticipants renders a participant listing.
func (c *Reporter) HandleParticipants(participants []domain.Participant) error {
	tmpl := `
{{separator 2}}
{{formatRow "Nama" "Awal" "Target"}}
{{separator 2}}
{{range .}}{{formatRow .FullName .InitialCount .ReturnTarget}}
{{end}}{{separator 2}}
{{range .}}{{.ID}}  {{.NIK}}  {{date .EnrolledAt}}  {{.CycleStatus}}
{{end}}`
	return c.execute("participants", tmpl, participants)
}

// HandleNextQuarter renders the eligibility outcome for one participant.
func (c *Reporter) HandleNextQuarter(nq *domain.NextQuarter, prefill domain.Prefill) error {
	tmpl := `
Laporan tercatat: {{len .Next.ExistingReports}}
{{if .Next.CanCreate}}Triwulan berikutnya: {{.Next.QuarterInfo.Label}}
Periode: {{date .Next.QuarterInfo.PeriodStart}} s/d {{date .Next.QuarterInfo.PeriodEnd}}
Jumlah awal: {{.Prefill.InitialCount}}
{{else}}Siklus program selesai; laporan baru tidak dapat dibuat.
{{end}}`
	data := struct {
		Next    *domain.NextQuarter
		Prefill domain.Prefill
	}{nq, prefill}
	return c.execute("next-quarter", tmpl, data)
}

func (c *Reporter) execute(name, tmpl string, data interface{}) error {
	t, err := template.New(name).Funcs(c.funcMap()).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	return t.Execute(c.writer, data)
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
