package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/moneyflow/pkg/graph"
	"github.com/matzehuels/moneyflow/pkg/pipeline"
	"github.com/matzehuels/moneyflow/pkg/render/sankey/styles"
	"github.com/matzehuels/moneyflow/pkg/render/sankey/zone"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
	headerStyle  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

var zoneColors = map[zone.Zone]lipgloss.Color{
	zone.Source: colorGreen,
	zone.Pivot:  colorCyan,
	zone.Sink:   colorYellow,
	zone.Other:  colorGray,
}

// inspectRow is one node as shown by inspect.
type inspectRow struct {
	ID      int
	Label   string
	Fitted  string
	Column  int
	Zone    zone.Zone
	Value   float64
	Inflow  []string
	Outflow []string
}

// buildInspectRows summarizes each node of a sankey wire layout in layout
// order (column by column, largest first). Zones are read back from the
// wire form, which is what the layout cache stores.
func buildInspectRows(gl graph.Layout, currency string) []inspectRow {
	index := make(map[int]int, len(gl.Nodes))
	rows := make([]inspectRow, len(gl.Nodes))
	for i, n := range gl.Nodes {
		index[n.ID] = i
		rows[i] = inspectRow{
			ID:     n.ID,
			Label:  n.Label,
			Fitted: styles.FitLabel(n.Label, gl.Width),
			Column: n.Column,
			Zone:   zone.Parse(n.Zone),
			Value:  n.Value,
		}
	}
	for _, lk := range gl.Links {
		src, ok1 := index[lk.Source]
		dst, ok2 := index[lk.Target]
		if !ok1 || !ok2 {
			continue
		}
		v := styles.FormatValue(lk.Value, currency)
		rows[src].Outflow = append(rows[src].Outflow, rows[dst].Label+" "+v)
		rows[dst].Inflow = append(rows[dst].Inflow, rows[src].Label+" "+v)
	}
	return rows
}

// inspectTable renders rows as a lipgloss table. cursor < 0 highlights nothing.
func inspectTable(rows []inspectRow, offset, cursor int, currency string) string {
	data := make([][]string, len(rows))
	for i, r := range rows {
		data[i] = []string{
			strconv.Itoa(r.ID),
			r.Fitted,
			strconv.Itoa(r.Column),
			r.Zone.String(),
			styles.FormatValue(r.Value, currency),
		}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Label", "Col", "Zone", "Value").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if row >= len(rows) {
				return base
			}
			if col == 3 {
				base = base.Foreground(zoneColors[rows[row].Zone])
			}
			if col == 4 {
				base = base.Align(lipgloss.Right)
			}
			if offset+row == cursor {
				base = base.Bold(true).Reverse(true)
			}
			return base
		}).
		Render()
}

// InspectModel is the bubbletea model for browsing a computed layout.
type InspectModel struct {
	Title    string
	Rows     []inspectRow
	Currency string
	Cursor   int
	Offset   int
	Height   int
}

// NewInspectModel creates an inspector over rows.
func NewInspectModel(title string, rows []inspectRow, currency string) InspectModel {
	return InspectModel{Title: title, Rows: rows, Currency: currency, Height: 15}
}

func (m InspectModel) Init() tea.Cmd {
	return nil
}

func (m InspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "home", "g":
			m.Cursor, m.Offset = 0, 0
		case "end", "G":
			m.Cursor = max(len(m.Rows)-1, 0)
			m.Offset = max(m.Cursor-m.Height+1, 0)
		}
	case tea.WindowSizeMsg:
		// Leave room for the title, the border and the detail pane.
		m.Height = max(msg.Height-14, 5)
	}
	return m, nil
}

func (m InspectModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  g/G first/last  q quit"))
	b.WriteString("\n\n")

	if len(m.Rows) == 0 {
		b.WriteString(listDimStyle.Render("  (empty graph)"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Rows))
	b.WriteString(inspectTable(m.Rows[m.Offset:end], m.Offset, m.Cursor, m.Currency))
	b.WriteString("\n\n")

	r := m.Rows[m.Cursor]
	b.WriteString(StyleHighlight.Render(r.Label))
	b.WriteString("\n")
	b.WriteString(flowLines("in ", r.Inflow))
	b.WriteString(flowLines("out", r.Outflow))
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))))

	return b.String()
}

func flowLines(dir string, flows []string) string {
	if len(flows) == 0 {
		return "  " + listDimStyle.Render(dir+" (none)") + "\n"
	}
	var b strings.Builder
	for _, f := range flows {
		b.WriteString("  " + listDimStyle.Render(dir+" "+iconArrow) + " " + StyleValue.Render(f) + "\n")
	}
	return b.String()
}

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var plain bool
	opts := c.defaultOptions()

	cmd := &cobra.Command{
		Use:   "inspect [graph.json|graph.yaml]",
		Short: "Browse node columns, zones and values",
		Long: `Browse node columns, zones and values.

Computes the sankey layout and lists every node with its column, color zone,
throughput value and the label as it would be fitted for the canvas width.
Interactive by default; --plain prints a table and exits.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.mergeConfig(cmd, &opts)
			opts.InputPath = args[0]
			return c.runInspect(cmd, opts, plain)
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print a table instead of the interactive view")
	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "canvas width")
	cmd.Flags().Float64Var(&opts.Height, "height", opts.Height, "canvas height")
	cmd.Flags().StringVar(&opts.Currency, "currency", opts.Currency, "currency code shown with values (default: from graph)")

	return cmd
}

func (c *CLI) runInspect(cmd *cobra.Command, opts pipeline.Options, plain bool) error {
	ctx := cmd.Context()
	opts.VizType = graph.VizTypeSankey
	opts.Logger = c.Logger
	if err := opts.ValidateForRender(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, false)
	if err != nil {
		return err
	}
	defer runner.Close()

	wire, g, err := runner.Parse(ctx, opts)
	if err != nil {
		return err
	}
	if opts.Currency == "" {
		opts.Currency = wire.Currency
	}
	gl, err := runner.GenerateLayout(ctx, g, opts)
	if err != nil {
		return err
	}

	rows := buildInspectRows(gl, opts.Currency)
	title := fmt.Sprintf("%s · %d nodes · %d links · %d columns",
		opts.InputPath, len(gl.Nodes), len(gl.Links), columnCount(gl))

	if plain {
		return printInspect(cmd.OutOrStdout(), title, rows, opts.Currency)
	}

	p := tea.NewProgram(NewInspectModel(title, rows, opts.Currency), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}

func columnCount(gl graph.Layout) int {
	if len(gl.Nodes) == 0 {
		return 0
	}
	return gl.MaxColumn + 1
}

func printInspect(w io.Writer, title string, rows []inspectRow, currency string) error {
	_, err := fmt.Fprintf(w, "%s\n%s\n", StyleTitle.Render(title), inspectTable(rows, 0, -1, currency))
	return err
}
