package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/driftfield/internal/audio"
	"github.com/san-kum/driftfield/internal/field"
	"github.com/san-kum/driftfield/internal/metrics"
	"github.com/san-kum/driftfield/internal/sim"
	"github.com/san-kum/driftfield/internal/viz"
)

type Options struct {
	Width, Height int32
	FPS           int32
	Theme         string
	Audio         bool
}

// App hosts a particle field in a raylib window. The window is the host:
// each loop iteration flushes the frame queue, the mouse is the pointer
// and the screen size is the viewport.
type App struct {
	Sim   *sim.Simulation
	Host  *sim.LocalHost
	Sched *sim.Scheduler
	Last  sim.Frame
	Theme viz.Theme

	Telemetry  []float64
	MaxHistory int
	ShowHUD    bool
	Quit       bool

	Font        rl.Font
	ParticleTex rl.Texture2D

	Audio *audio.Processor
}

func initWindow(opts Options) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(opts.Width, opts.Height, "driftfield")
	rl.SetTargetFPS(opts.FPS)
	rl.SetExitKey(0)
}

// loadFont loads Liberation Mono with bilinear filtering. raylib falls back
// to its built-in font when the file is missing.
func loadFont() rl.Font {
	font := rl.LoadFontEx("/usr/share/fonts/liberation/LiberationMono-Regular.ttf", 32, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

func NewApp(s *sim.Simulation, opts Options) *App {
	app := &App{
		Sim:        s,
		Theme:      viz.GetTheme(opts.Theme),
		Telemetry:  make([]float64, 0, 200),
		MaxHistory: 200,
		ShowHUD:    true,
		Font:       loadFont(),
	}
	for _, m := range metrics.Default() {
		s.AddMetric(m)
	}

	if opts.Audio {
		proc := audio.NewProcessor()
		if err := proc.Start(); err == nil {
			app.Audio = proc
			s.AddObserver(proc)
		}
	}

	img := rl.GenImageGradientRadial(32, 32, 0.0, rl.White, rl.NewColor(0, 0, 0, 0))
	app.ParticleTex = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)

	app.Host = sim.NewLocalHost(screenBounds())
	app.Sched = sim.NewScheduler(s, app.Host, sim.RendererFunc(app.record))
	return app
}

func screenBounds() field.Bounds {
	return field.Bounds{Width: float64(rl.GetScreenWidth()), Height: float64(rl.GetScreenHeight())}
}

func (a *App) record(f sim.Frame) {
	a.Last = f
	a.Telemetry = append(a.Telemetry, metrics.FieldEnergy(f))
	if len(a.Telemetry) > a.MaxHistory {
		a.Telemetry = a.Telemetry[1:]
	}
}

// Run opens the window and blocks until it is closed.
func Run(s *sim.Simulation, opts Options) {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 1280, 720
	}
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	initWindow(opts)
	defer rl.CloseWindow()

	app := NewApp(s, opts)
	defer app.Close()
	app.RunLoop()
}

func (a *App) RunLoop() {
	a.Sched.Start()
	for !rl.WindowShouldClose() && !a.Quit {
		a.Update()
		a.Draw()
	}
	a.Sched.Stop()
}

func (a *App) Close() {
	if a.Audio != nil {
		a.Audio.Stop()
	}
	rl.UnloadTexture(a.ParticleTex)
}

func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeySpace) {
		if a.Sched.Running() {
			a.Sched.Stop()
		} else {
			a.Sched.Start()
		}
	}
	if rl.IsKeyPressed(rl.KeyH) {
		a.ShowHUD = !a.ShowHUD
	}
	if rl.IsKeyPressed(rl.KeyT) {
		names := viz.ThemeNames()
		for i, name := range names {
			if name == a.Theme.Name {
				a.Theme = viz.GetTheme(names[(i+1)%len(names)])
				break
			}
		}
	}
	if rl.IsKeyPressed(rl.KeyQ) {
		a.Quit = true
	}

	a.Host.SetViewport(screenBounds())
	if d := rl.GetMouseDelta(); d.X != 0 || d.Y != 0 {
		pos := rl.GetMousePosition()
		a.Host.MovePointer(float64(pos.X), float64(pos.Y))
	}
	a.Host.Flush()
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(toColor(a.Theme.Background))

	a.RenderField()
	if a.ShowHUD {
		a.DrawHUD()
	}

	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	w, h := int(rl.GetScreenWidth()), int(rl.GetScreenHeight())
	vals := a.Sim.Metrics()
	text, muted := toColor(a.Theme.Text), toColor(a.Theme.Muted)

	a.drawText("driftfield", 30, 30, 24, text)
	a.drawText(fmt.Sprintf(":: %s", a.Theme.Name), 170, 34, 16, muted)

	status, col := "RUNNING", toColor(a.Theme.Success)
	if !a.Sched.Running() {
		status, col = "PAUSED", toColor(a.Theme.Warning)
	}
	a.drawText(status, w-130, 30, 16, col)

	a.drawText(fmt.Sprintf("frame %d  particles %d  respawns %.0f", a.Last.Index, len(a.Last.Particles), vals["respawns"]), 30, 60, 14, text)
	a.DrawTelemetry(30, h-120)

	a.drawText("[SPACE] PAUSE  [T] THEME  [H] HUD  [Q] QUIT", w-420, h-40, 14, muted)
	a.drawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), 30, h-40, 14, muted)

	if a.Audio != nil && a.Audio.Active {
		a.drawText(fmt.Sprintf("AUDIO [%4.0f Hz]", a.Audio.FilterCutoff()), 30, h-70, 14, text)
	} else {
		a.drawText("AUDIO [OFF]", 30, h-70, 14, muted)
	}
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}

func (a *App) DrawTelemetry(rectX, rectY int) {
	if len(a.Telemetry) < 2 {
		return
	}

	width, height := 400, 60

	minVal, maxVal := a.Telemetry[0], a.Telemetry[0]
	for _, v := range a.Telemetry {
		minVal = min(minVal, v)
		maxVal = max(maxVal, v)
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(a.Telemetry))
	for i, val := range a.Telemetry {
		px := float32(rectX) + (float32(i)/float32(len(a.Telemetry)))*float32(width)
		norm := (val - minVal) / (maxVal - minVal)
		py := float32(rectY+height) - float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, toColor(a.Theme.Accent))
	a.drawText(fmt.Sprintf("E: %.2e", a.Telemetry[len(a.Telemetry)-1]), rectX+width+10, rectY+height-10, 14, toColor(a.Theme.Muted))
}
