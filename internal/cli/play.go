package cli

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/matzehuels/refugeeflow/pkg/anim"
	"github.com/matzehuels/refugeeflow/pkg/layout/flow"
	"github.com/matzehuels/refugeeflow/pkg/layout/frames"
	"github.com/matzehuels/refugeeflow/pkg/layout/symbol"
	"github.com/matzehuels/refugeeflow/pkg/pipeline"
	"github.com/matzehuels/refugeeflow/pkg/region"
)

const (
	defaultGridCols = 80
	defaultGridRows = 22
	legendSize      = 6
	barWidth        = 40
)

var (
	styleYear    = lipgloss.NewStyle().Foreground(colorDim)
	styleYearNow = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleOther   = lipgloss.NewStyle().Foreground(colorGray)
)

// playCommand creates the play command.
func (c *CLI) playCommand() *cobra.Command {
	var (
		q     queryFlags
		m     mapFlags
		view  string
		topN  int
		noAlt bool
	)

	cmd := &cobra.Command{
		Use:   "play [dataset]",
		Short: "Animate map frames or flow columns in the terminal",
		Long: `Animate a selection in the terminal.

The map view cycles through the selected years, moving and resizing symbols
between frames the same way the animated SVG does. The flow view steps
through the diagram's columns.

Keys: space pauses or restarts the cycle, ←/→ step one year, q quits.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := pipeline.KindMap
			switch view {
			case "map":
			case "flow":
				kind = pipeline.KindFlow
			default:
				return fmt.Errorf("invalid view %q (must be map or flow)", view)
			}
			opts, err := c.baseOptions(cmd, kind, args, &q)
			if err != nil {
				return err
			}
			c.applyMap(cmd, &opts, &m)
			if cmd.Flags().Changed("top-n") {
				opts.Flow.TopN = topN
			}
			return c.runPlay(cmd.Context(), opts, q.geometry, !noAlt)
		},
	}

	q.register(cmd)
	m.register(cmd)
	cmd.Flags().StringVar(&view, "view", "map", "what to animate: map, flow")
	cmd.Flags().IntVar(&topN, "top-n", 0, "named categories per flow column (default 10)")
	cmd.Flags().BoolVar(&noAlt, "inline", false, "draw in the current screen instead of the alternate screen")
	return cmd
}

// runPlay computes the layout once and hands it to the player.
func (c *CLI) runPlay(ctx context.Context, opts pipeline.Options, geometry string, altScreen bool) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, "Loading dataset...")
	spinner.Start()
	prog := newProgress(c.Logger)
	ds, err := pipeline.Load(ctx, opts.Source)
	if err != nil {
		spinner.StopWithError("Loading failed")
		return fmt.Errorf("load dataset: %w", err)
	}
	if geometry == "" {
		geometry = c.Config.Geometry
	}
	var layout pipeline.Layout
	if geometry != "" {
		spinner.SetMessage("Loading geometry...")
		g, err := c.loadGeometry(ctx, geometry)
		if err != nil {
			spinner.StopWithError("Loading geometry failed")
			return err
		}
		spinner.SetMessage("Computing layout...")
		layout = pipeline.GenerateLayout(ds, g, opts)
	} else {
		spinner.SetMessage("Computing layout...")
		layout = pipeline.GenerateLayout(ds, nil, opts)
	}
	spinner.StopWithSuccess(fmt.Sprintf("Computed %s layout", opts.Kind))
	prog.done("layout ready", "kind", opts.Kind, "records", ds.Len())

	if layout.Empty() {
		printInfo("Nothing to play: the selection matched no data")
		return nil
	}

	sched := anim.New(anim.SystemClock,
		anim.WithPeriod(opts.Period),
		anim.WithTransition(opts.Transition),
		anim.WithLogger(c.Logger))
	model := newPlayModel(layout, opts.Regions, sched)

	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if altScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	_, err = tea.NewProgram(model, programOpts...).Run()
	sched.Stop()
	if err != nil && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

// =============================================================================
// Step delivery
// =============================================================================

// stepMsg carries scheduler progress into the bubbletea loop.
type stepMsg anim.Step

// stepBox hands steps from scheduler goroutines to the UI loop. Only the
// latest step is kept; a pending Start flag survives being overwritten so
// the model still snapshots its drawn state.
type stepBox struct {
	mu     sync.Mutex
	step   *anim.Step
	notify chan struct{}
}

func newStepBox() *stepBox {
	return &stepBox{notify: make(chan struct{}, 1)}
}

// put never blocks. It runs on scheduler timer goroutines.
func (b *stepBox) put(st anim.Step) {
	b.mu.Lock()
	if b.step != nil && b.step.Start {
		st.Start = true
	}
	b.step = &st
	b.mu.Unlock()

	select {
	case b.notify <- struct{}{}:
	default:
	}
}

func (b *stepBox) take() (anim.Step, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.step == nil {
		return anim.Step{}, false
	}
	st := *b.step
	b.step = nil
	return st, true
}

// wait blocks until a step arrives.
func (b *stepBox) wait() tea.Cmd {
	return func() tea.Msg {
		for range b.notify {
			if st, ok := b.take(); ok {
				return stepMsg(st)
			}
		}
		return nil
	}
}

// =============================================================================
// Model
// =============================================================================

// playModel is the bubbletea model for `refugeeflow play`.
type playModel struct {
	kind    string
	regions []string
	years   []int

	// Map view.
	frames        []frames.Frame
	width, height float64
	from, drawn   frames.Frame

	// Flow view.
	columns []flow.Column

	sched   *anim.Scheduler
	box     *stepBox
	index   int
	playing bool

	cols, rows int
}

func newPlayModel(l pipeline.Layout, regions []string, sched *anim.Scheduler) playModel {
	m := playModel{
		kind:    l.Kind,
		regions: regions,
		sched:   sched,
		box:     newStepBox(),
		cols:    defaultGridCols,
		rows:    defaultGridRows,
	}
	switch {
	case l.Map != nil:
		m.frames = l.Map.Frames
		m.years = l.Map.Years()
		m.width, m.height = l.Map.Width, l.Map.Height
		if len(m.frames) > 0 {
			m.drawn = m.frames[0]
			m.from = m.frames[0]
		}
	case l.Flow != nil:
		m.columns = l.Flow.Columns()
		for _, col := range m.columns {
			m.years = append(m.years, col.Year)
		}
	}
	m.playing = m.count() > 1
	return m
}

func (m playModel) count() int { return len(m.years) }

// Init starts cycling when there is more than one year to show.
func (m playModel) Init() tea.Cmd {
	if m.count() < 2 {
		return nil
	}
	m.sched.Cycle(m.count(), m.box.put)
	return m.box.wait()
}

func (m playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stepMsg:
		m = m.apply(anim.Step(msg))
		return m, m.box.wait()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.sched.Stop()
			return m, tea.Quit
		case " ":
			if m.count() < 2 {
				return m, nil
			}
			if m.playing {
				m.sched.Stop()
				m.playing = false
				return m, nil
			}
			m.sched.Cycle(m.count(), m.box.put)
			m.playing = true
			if m.sched.State() == anim.Scheduled {
				m = m.settle(0)
			}
		case "right", "l":
			m.step(1)
		case "left", "h":
			m.step(-1)
		}

	case tea.WindowSizeMsg:
		m.cols = max(20, min(msg.Width-2, 120))
		m.rows = max(8, msg.Height-12)
	}
	return m, nil
}

// step plays a single transition to the neighbouring year. Cycling stops.
func (m *playModel) step(delta int) {
	n := m.count()
	if n < 2 {
		return
	}
	m.playing = false
	m.sched.Once(((m.index+delta)%n+n)%n, m.box.put)
}

// apply folds one scheduler step into the drawn state.
func (m playModel) apply(st anim.Step) playModel {
	if st.To < 0 || st.To >= m.count() {
		return m
	}
	if st.Start {
		m.from = m.drawn
	}
	if st.Done {
		return m.settle(st.To)
	}
	m.index = st.To
	if len(m.frames) > 0 {
		m.drawn = anim.InterpolateFrame(m.from, m.frames[st.To], st.T)
	}
	return m
}

func (m playModel) settle(i int) playModel {
	m.index = i
	if len(m.frames) > 0 {
		m.drawn = m.frames[i]
		m.from = m.frames[i]
	}
	return m
}

func (m playModel) View() string {
	var b strings.Builder

	title := "Refugee arrivals"
	if len(m.regions) > 0 {
		title += " · " + strings.Join(m.regions, ", ")
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n\n")

	if m.kind == pipeline.KindFlow {
		b.WriteString(m.flowView())
	} else {
		b.WriteString(renderGrid(m.drawn, m.width, m.height, m.cols, m.rows))
		b.WriteString("\n")
		b.WriteString(StyleValue.Render("Total: " + humanize.Comma(int64(math.Round(m.drawn.Total)))))
		b.WriteString("\n")
		b.WriteString(legend(m.drawn))
	}

	b.WriteString("\n")
	b.WriteString(timeline(m.years, m.index))
	b.WriteString("\n\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("%s  ·  space pause/restart  ←/→ step  q quit", m.sched.State())))
	b.WriteString("\n")
	return b.String()
}

// flowView draws the current column as horizontal bars.
func (m playModel) flowView() string {
	if m.index >= len(m.columns) {
		return ""
	}
	col := m.columns[m.index]
	var b strings.Builder
	b.WriteString(StyleValue.Render(fmt.Sprintf("%d  ·  %s arrivals", col.Year, humanize.Comma(int64(math.Round(col.Total))))))
	b.WriteString("\n\n")

	labelWidth := 0
	for _, n := range col.Nodes {
		labelWidth = max(labelWidth, lipgloss.Width(n.Category.String()))
	}
	for _, n := range col.Nodes {
		filled := 0
		if col.Total > 0 {
			filled = int(math.Round(n.Value / col.Total * barWidth))
		}
		style := StyleHighlight
		if n.Category.IsOther {
			style = styleOther
		}
		label := n.Category.String()
		fmt.Fprintf(&b, "%s%s %s %s\n",
			label, strings.Repeat(" ", labelWidth-lipgloss.Width(label)),
			style.Render(strings.Repeat("█", filled)),
			StyleDim.Render(humanize.Comma(int64(math.Round(n.Value)))))
	}
	return b.String()
}

// timeline renders the years with the current one highlighted.
func timeline(years []int, current int) string {
	parts := make([]string, len(years))
	for i, y := range years {
		if i == current {
			parts[i] = styleYearNow.Render(fmt.Sprintf("[%d]", y))
		} else {
			parts[i] = styleYear.Render(fmt.Sprintf(" %d ", y))
		}
	}
	return strings.Join(parts, "")
}

// legend lists the largest symbols of a frame.
func legend(f frames.Frame) string {
	nodes := slices.Clone(f.Nodes)
	slices.SortStableFunc(nodes, func(a, b symbol.Node) int {
		switch {
		case a.Magnitude > b.Magnitude:
			return -1
		case a.Magnitude < b.Magnitude:
			return 1
		}
		return strings.Compare(a.Country, b.Country)
	})
	var b strings.Builder
	for i, n := range nodes {
		if i == legendSize || n.Radius <= 0 {
			break
		}
		value := humanize.Comma(int64(math.Round(n.Magnitude)))
		if n.Suppressed {
			value = "withheld"
		}
		dot := lipgloss.NewStyle().Foreground(regionColor(n.Region)).Render("●")
		fmt.Fprintf(&b, "%s %s %s\n", dot, n.Country, StyleDim.Render(value))
	}
	return b.String()
}

// =============================================================================
// Character grid
// =============================================================================

type gridCell struct {
	ch    rune
	color lipgloss.Color
}

// renderGrid rasterizes a frame of size w×h onto cols×rows cells. Larger
// symbols are drawn first so small ones stay visible.
func renderGrid(f frames.Frame, w, h float64, cols, rows int) string {
	grid := rasterize(f, w, h, cols, rows)
	var b strings.Builder
	for _, row := range grid {
		var run strings.Builder
		runColor := lipgloss.Color("")
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runColor == "" {
				b.WriteString(run.String())
			} else {
				b.WriteString(lipgloss.NewStyle().Foreground(runColor).Render(run.String()))
			}
			run.Reset()
		}
		for _, cell := range row {
			if cell.color != runColor {
				flush()
				runColor = cell.color
			}
			run.WriteRune(cell.ch)
		}
		flush()
		b.WriteString("\n")
	}
	return b.String()
}

func rasterize(f frames.Frame, w, h float64, cols, rows int) [][]gridCell {
	grid := make([][]gridCell, rows)
	for j := range grid {
		grid[j] = make([]gridCell, cols)
		for i := range grid[j] {
			grid[j][i] = gridCell{ch: '·', color: colorDim}
		}
	}
	if w <= 0 || h <= 0 {
		return grid
	}

	nodes := slices.Clone(f.Nodes)
	slices.SortStableFunc(nodes, func(a, b symbol.Node) int {
		switch {
		case a.Radius > b.Radius:
			return -1
		case a.Radius < b.Radius:
			return 1
		}
		return 0
	})

	sx, sy := w/float64(cols), h/float64(rows)
	for _, n := range nodes {
		if n.Radius <= 0 {
			continue
		}
		cell := gridCell{ch: '●', color: regionColor(n.Region)}
		if n.Suppressed {
			cell.ch = '○'
		}
		cx, cy := n.X/sx, n.Y/sy
		rx, ry := n.Radius/sx, n.Radius/sy
		for j := int(math.Floor(cy - ry)); j <= int(math.Ceil(cy+ry)); j++ {
			for i := int(math.Floor(cx - rx)); i <= int(math.Ceil(cx+rx)); i++ {
				if i < 0 || j < 0 || i >= cols || j >= rows {
					continue
				}
				dx := (float64(i) + 0.5 - cx) / rx
				dy := (float64(j) + 0.5 - cy) / ry
				if dx*dx+dy*dy <= 1 {
					grid[j][i] = cell
				}
			}
		}
		if i, j := int(cx), int(cy); i >= 0 && j >= 0 && i < cols && j < rows {
			grid[j][i] = cell
		}
	}
	return grid
}

func regionColor(name string) lipgloss.Color {
	c, err := region.Color(name)
	if err != nil {
		return colorGray
	}
	return lipgloss.Color(c)
}
