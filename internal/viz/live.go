package viz

import (
	"fmt"
	"image"
	"image/gif"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/driftfield/internal/field"
	"github.com/san-kum/driftfield/internal/metrics"
	"github.com/san-kum/driftfield/internal/sim"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600
	statsWidth      = 46
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(statsWidth - 1)
	headerStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Width(12)
	valueStyle  = lipgloss.NewStyle()
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
)

type TickMsg time.Time

// frameSink is the renderer the scheduler hands frames to. The model holds
// it by pointer so frames survive bubbletea's value-copied updates.
type frameSink struct {
	last   sim.Frame
	energy []float64
}

func (s *frameSink) Render(f sim.Frame) {
	s.last = f
	s.energy = append(s.energy, metrics.FieldEnergy(f))
	if len(s.energy) > historyCapacity {
		s.energy = s.energy[len(s.energy)-historyCapacity:]
	}
}

type Options struct {
	FPS       int
	Theme     string
	GIFPath   string
	Observers []sim.Observer
}

// Model runs one particle field inside the terminal. The terminal is the
// host: ticks drive the frame queue, mouse motion is the pointer and the
// canvas size is the viewport.
type Model struct {
	sim       *sim.Simulation
	host      *sim.LocalHost
	sched     *sim.Scheduler
	sink      *frameSink
	canvas    *Canvas
	cols      int
	rows      int
	winW      int
	winH      int
	fps       int
	gifPath   string
	showStats bool
	showHelp  bool
	recording bool
	frames    []*image.Paletted
	notice    string
}

func NewModel(s *sim.Simulation, opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.GIFPath == "" {
		opts.GIFPath = "driftfield.gif"
	}
	if opts.Theme != "" {
		SetTheme(opts.Theme)
	}
	for _, m := range metrics.Default() {
		s.AddMetric(m)
	}
	for _, o := range opts.Observers {
		s.AddObserver(o)
	}

	sink := &frameSink{energy: make([]float64, 0, historyCapacity)}
	host := sim.NewLocalHost(cellBounds(width, height))
	return Model{
		sim:       s,
		host:      host,
		sched:     sim.NewScheduler(s, host, sink),
		sink:      sink,
		canvas:    NewCanvas(width, height),
		cols:      width,
		rows:      height,
		fps:       opts.FPS,
		gifPath:   opts.GIFPath,
		showStats: true,
	}
}

// cellBounds is the viewport, in pixels, covered by a cols x rows canvas.
func cellBounds(cols, rows int) field.Bounds {
	return field.Bounds{Width: float64(cols * CellWidth), Height: float64(rows * CellHeight)}
}

// CellToViewport maps a terminal cell to the viewport pixel at its center,
// given the cell the canvas starts at.
func CellToViewport(col, row, originCol, originRow int) (float64, float64) {
	x := (col-originCol)*CellWidth + CellWidth/2
	y := (row-originRow)*CellHeight + CellHeight/2
	return float64(x), float64(y)
}

// canvasOrigin is the terminal cell of the canvas's first character: its
// padding, pushed down by the help box while that is shown.
func (m Model) canvasOrigin() (int, int) {
	row := 1
	if m.showHelp {
		row += strings.Count(helpText, "\n") + 2
	}
	return 2, row
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	m.sched.Start()
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.sched.Stop()
			if m.recording {
				m.stopRecording()
			}
			return m, tea.Quit
		case " ":
			if m.sched.Running() {
				m.sched.Stop()
			} else {
				m.sched.Start()
			}
		case "g":
			if m.recording {
				m.stopRecording()
			} else {
				m.recording = true
				m.frames = make([]*image.Paletted, 0)
				m.notice = ""
			}
		case "s":
			m.showStats = !m.showStats
			if m.winW > 0 {
				m.resize(m.winW, m.winH)
			}
		case "?":
			m.showHelp = !m.showHelp
		case "t":
			names := ThemeNames()
			for i, name := range names {
				if name == CurrentTheme.Name {
					SetTheme(names[(i+1)%len(names)])
					break
				}
			}
		}
	case tea.MouseMsg:
		oc, or := m.canvasOrigin()
		m.host.MovePointer(CellToViewport(msg.X, msg.Y, oc, or))
	case tea.WindowSizeMsg:
		m.winW, m.winH = msg.Width, msg.Height
		m.resize(msg.Width, msg.Height)
	case TickMsg:
		m.host.Flush()
		m.draw()
		if m.recording {
			m.frames = append(m.frames, m.canvas.Image(RGBA(CurrentTheme.Background), RGBA(CurrentTheme.Primary)))
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) resize(w, h int) {
	cols := w - 4
	if m.showStats {
		cols -= statsWidth
	}
	rows := h - 2
	cols, rows = max(cols, 10), max(rows, 5)
	if cols == m.cols && rows == m.rows {
		return
	}
	m.cols, m.rows = cols, rows
	m.canvas = NewCanvas(cols, rows)
	m.host.SetViewport(cellBounds(cols, rows))
}

func (m *Model) stopRecording() {
	if err := saveGIF(m.gifPath, m.frames); err != nil {
		m.notice = "gif: " + err.Error()
	} else if len(m.frames) > 0 {
		m.notice = fmt.Sprintf("saved %d frames to %s", len(m.frames), m.gifPath)
	}
	m.recording = false
	m.frames = nil
}

// draw paints the last frame: one outline per particle, scaled so a dot
// covers 4x4 viewport pixels, plus a cross at the pointer on a cleared
// patch so it stays readable over outlines.
func (m *Model) draw() {
	m.canvas.Clear()
	dotW, dotH := float64(CellWidth/2), float64(CellHeight/4)
	for _, c := range m.sink.last.Commands {
		r := int(c.Diameter / 2 / dotW)
		m.canvas.DrawCircle(int(c.X/dotW), int(c.Y/dotH), r)
	}
	if p := m.sink.last.Pointer; !p.IsUnset() {
		px, py := int(p.X/dotW), int(p.Y/dotH)
		for dy := -2; dy <= 2; dy++ {
			for dx := -2; dx <= 2; dx++ {
				m.canvas.Unset(px+dx, py+dy)
			}
		}
		m.canvas.DrawLine(px-2, py, px+2, py)
		m.canvas.DrawLine(px, py-2, px, py+2)
	}
}

func (m Model) View() string {
	canvasView := canvasStyle.Foreground(CurrentTheme.Primary).Render(m.canvas.String())
	if m.showHelp {
		return helpText + "\n\n" + canvasView
	}
	if !m.showStats {
		return canvasView
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(m.stats()))
}

func (m Model) stats() string {
	var s strings.Builder
	th := CurrentTheme
	s.WriteString(headerStyle.Foreground(th.Secondary).Render("DRIFTFIELD") + "\n")

	badge, status := statusBadge(th, m.sched.Running(), m.recording)
	if m.recording {
		status = fmt.Sprintf("%s %d", status, len(m.frames))
	}
	s.WriteString(badge.Render(status) + "\n\n")

	label, value := labelStyle.Foreground(th.Muted), valueStyle.Foreground(th.Text)

	if len(m.sink.energy) > 1 {
		chart := asciigraph.Plot(m.sink.energy, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	f := m.sink.last
	vals := m.sim.Metrics()
	row := func(name, v string) {
		s.WriteString(label.Render(name) + value.Render(v) + "\n")
	}
	row("Frame", fmt.Sprintf("%d", f.Index))
	row("Particles", fmt.Sprintf("%d", len(f.Particles)))
	row("Energy", fmt.Sprintf("%.3f", vals["kinetic_energy"]))
	row("Mean speed", fmt.Sprintf("%.3f", vals["mean_speed"]))
	row("Respawns", fmt.Sprintf("%.0f", vals["respawns"]))
	row("Viewport", fmt.Sprintf("%.0fx%.0f", f.Bounds.Width, f.Bounds.Height))
	if f.Pointer.IsUnset() {
		row("Pointer", "-")
	} else {
		row("Pointer", fmt.Sprintf("%.0f,%.0f", f.Pointer.X, f.Pointer.Y))
	}
	s.WriteString(label.Render("Contained") + ProgressBar(vals["containment"], 20) + "\n")
	s.WriteString(label.Render("Spread") + SparklineChart(speedSeries(f), 20) + "\n")

	if m.notice != "" {
		s.WriteString("\n" + KeyHint.Render(m.notice) + "\n")
	}
	s.WriteString(KeyHint.Render("\n─────────────────────\nSP:Pause Q:Quit S:Stats\nT:Theme  G:Record ?:Help"))
	return s.String()
}

func speedSeries(f sim.Frame) []float64 {
	out := make([]float64, len(f.Particles))
	for i, p := range f.Particles {
		out[i] = p.Speed()
	}
	return out
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Mouse    - Attract particles        ║
║  Space    - Pause/Resume             ║
║  S        - Toggle stats panel       ║
║  T        - Cycle themes             ║
║  G        - Toggle GIF recording     ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝`

func saveGIF(path string, frames []*image.Paletted) error {
	if len(frames) == 0 {
		return nil
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range frames {
		b := frame.Bounds()
		anim.Config.Width = max(anim.Config.Width, b.Dx())
		anim.Config.Height = max(anim.Config.Height, b.Dy())
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, 2)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gif.EncodeAll(f, &anim)
}

// Run starts the terminal host with mouse motion reporting enabled.
func Run(s *sim.Simulation, opts Options) error {
	p := tea.NewProgram(NewModel(s, opts), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}
