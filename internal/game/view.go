package game

import (
	"fmt"
	"image/color"
	"math"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"
	"golang.org/x/image/font/basicfont"
)

const (
	viewW = 1280
	viewH = 720

	// World-to-screen mapping: a fixed top-down camera over the compound.
	pixelsPerMeter = 16.0
	viewOffX       = 80.0
	viewOffY       = 480.0

	viewDT = 1.0 / 60.0

	playerFireRange  = 20.0
	playerFireDamage = 35.0
)

var stateColors = map[AlertState]color.RGBA{
	AlertIdle:       {0x9a, 0x9a, 0x9a, 0xff},
	AlertSuspicious: {0xe6, 0xc8, 0x2e, 0xff},
	AlertAlerted:    {0xe6, 0x7e, 0x22, 0xff},
	AlertCombat:     {0xd8, 0x2e, 0x2e, 0xff},
}

// View is the interactive top-down presentation: the keyboard drives the
// player through a demo compound while the agents run the full simulation.
type View struct {
	mission *Mission
	log     *zap.Logger

	fireCooldown float64
	statusMsg    string
	statusTTL    float64
}

// New builds the interactive demo mission.
func New() *View {
	log, err := zap.NewDevelopment()
	if err != nil {
		log = zap.NewNop()
	}
	v := &View{log: log}
	v.reset()
	return v
}

// reset rebuilds the demo compound from scratch.
func (v *View) reset() {
	w := NewWorld()
	w.AddObstacle(NewBox(18, -14, 12, 1, 3))
	w.AddObstacle(NewBox(18, 13, 12, 1, 3))
	w.AddObstacle(NewBox(12, -6, 2, 2, 1.2))
	w.AddObstacle(NewBox(22, 2, 2, 2, 1.2))
	w.AddLightZone(LightZone{Center: Vec3{X: 16, Z: -11}, Radius: 7})
	w.AddLightZone(LightZone{Center: Vec3{X: 24, Z: 0}, Radius: 6, Bright: true})

	p := NewPlayer(Vec3{X: 0, Z: -11})
	m := NewMission(w, p, nil, 42, v.log)
	m.AddAgent(0, Vec3{X: 10, Z: -4}, math.Pi/2, []Vec3{{X: 10, Z: -4}, {X: 10, Z: 8}})
	m.AddAgent(1, Vec3{X: 26, Z: 8}, math.Pi, []Vec3{{X: 26, Z: 8}, {X: 18, Z: 8}})
	m.AddHighValueTarget(2, Vec3{X: 34, Z: 0}, math.Pi, nil)

	v.mission = m
	v.fireCooldown = 0
	v.setStatus("WASD move, Shift run, Ctrl crouch, Space fire, G alert all, C copy report, R reset")
}

func (v *View) setStatus(msg string) {
	v.statusMsg = msg
	v.statusTTL = 6.0
}

func (v *View) Update() error {
	v.handlePlayerInput()

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		v.reset()
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		v.mission.AlertAll(v.mission.Player().Pos, 0.7)
		v.setStatus("alarm raised: every guard converging on your position")
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		report := DebugReport(v.mission)
		if err := clipboard.WriteAll(report); err != nil {
			v.log.Warn("clipboard write failed", zap.Error(err))
			v.setStatus("clipboard write failed")
		} else {
			v.setStatus("debug report copied to clipboard")
		}
	}
	if v.fireCooldown > 0 {
		v.fireCooldown -= viewDT
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) && v.fireCooldown <= 0 {
		v.playerFire()
		v.fireCooldown = 0.4
	}

	v.mission.Tick(viewDT)
	if v.statusTTL > 0 {
		v.statusTTL -= viewDT
	}
	return nil
}

// handlePlayerInput applies stance and movement. The player collides with
// the same obstacle footprints the agents do.
func (v *View) handlePlayerInput() {
	p := v.mission.Player()
	if !p.Alive {
		return
	}

	p.Crouching = ebiten.IsKeyPressed(ebiten.KeyControl)
	run := ebiten.IsKeyPressed(ebiten.KeyShift) && !p.Crouching

	var dx, dz float64
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		dz++
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		dz--
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		dx--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		dx++
	}

	if dx == 0 && dz == 0 {
		p.Moving = false
		p.Running = false
		return
	}

	tun := v.mission.Tuning()
	speed := tun.Movement.WalkSpeed
	if run {
		speed = tun.Movement.RunSpeed
	}
	if p.Crouching {
		speed *= 0.6
	}

	norm := math.Hypot(dx, dz)
	step := Vec3{X: dx / norm, Z: dz / norm}.Scale(speed * viewDT)
	next := p.Pos.Add(step)
	if !v.mission.World().Blocked(next, tun.Movement.AgentRadius) {
		p.Pos = next
	}
	p.Moving = true
	p.Running = run
}

// playerFire resolves one player shot: the nearest live agent with a clear
// line inside range takes the hit, and the shot itself is always loud.
func (v *View) playerFire() {
	m := v.mission
	p := m.Player()
	if !p.Alive {
		return
	}
	m.Sounds().RegisterEvent(p.Pos, 1.0, SoundGunshot)

	var best *Agent
	bestDist := playerFireRange
	for _, a := range m.Agents() {
		if !a.Alive() {
			continue
		}
		d := p.Pos.PlanarDist(a.Pos())
		if d >= bestDist {
			continue
		}
		if m.World().Occluded(p.Pos.WithY(p.EyeHeight()), a.Pos().WithY(standEyeHeight)) {
			continue
		}
		best = a
		bestDist = d
	}
	if best == nil {
		v.setStatus("shot fired: no target in reach")
		return
	}
	// A steady shot (not moving) counts as aimed and hits the head.
	if killed := best.TakeDamage(playerFireDamage, !p.Moving); killed {
		v.setStatus(fmt.Sprintf("%s down", best.Label()))
	} else {
		v.setStatus(fmt.Sprintf("%s hit (%.0f hp)", best.Label(), best.Health()))
	}
}

func toScreen(p Vec3) (float32, float32) {
	return float32(viewOffX + p.X*pixelsPerMeter), float32(viewOffY - p.Z*pixelsPerMeter)
}

func (v *View) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x14, 0x16, 0x1a, 0xff})

	v.drawLightZones(screen)
	v.drawObstacles(screen)
	v.drawRoutes(screen)
	v.drawAgents(screen)
	v.drawPlayer(screen)
	v.drawHUD(screen)
}

func (v *View) drawLightZones(screen *ebiten.Image) {
	for _, z := range v.mission.World().LightZones() {
		col := color.RGBA{0x10, 0x10, 0x18, 0xb0}
		if z.Bright {
			col = color.RGBA{0xff, 0xf2, 0xc0, 0x28}
		}
		cx, cy := toScreen(z.Center)
		r := float32(z.Radius * pixelsPerMeter)
		// Approximate the disc with stacked horizontal strips; the vector
		// package here only offers rects and lines.
		for dy := -r; dy <= r; dy += 4 {
			half := float32(math.Sqrt(float64(r*r - dy*dy)))
			vector.FillRect(screen, cx-half, cy+dy, half*2, 4, col, false)
		}
	}
}

func (v *View) drawObstacles(screen *ebiten.Image) {
	for _, b := range v.mission.World().Obstacles() {
		x1, y1 := toScreen(Vec3{X: b.Min.X, Z: b.Max.Z})
		x2, y2 := toScreen(Vec3{X: b.Max.X, Z: b.Min.Z})
		shade := uint8(0x3a)
		if b.Max.Y < standEyeHeight {
			shade = 0x2c // low cover renders darker than sight-blocking walls
		}
		vector.FillRect(screen, x1, y1, x2-x1, y2-y1, color.RGBA{shade, shade, shade + 8, 0xff}, false)
		vector.StrokeRect(screen, x1, y1, x2-x1, y2-y1, 1, color.RGBA{0x55, 0x55, 0x60, 0xff}, false)
	}
}

func (v *View) drawRoutes(screen *ebiten.Image) {
	col := color.RGBA{0x2e, 0x48, 0x2e, 0xff}
	for _, a := range v.mission.Agents() {
		route := a.Route()
		for i := range route {
			x1, y1 := toScreen(route[i])
			x2, y2 := toScreen(route[(i+1)%len(route)])
			vector.StrokeLine(screen, x1, y1, x2, y2, 1, col, false)
		}
	}
}

func (v *View) drawAgents(screen *ebiten.Image) {
	for _, a := range v.mission.Agents() {
		x, y := toScreen(a.Pos())
		if !a.Alive() {
			vector.StrokeLine(screen, x-5, y-5, x+5, y+5, 2, color.RGBA{0x60, 0x30, 0x30, 0xff}, false)
			vector.StrokeLine(screen, x-5, y+5, x+5, y-5, 2, color.RGBA{0x60, 0x30, 0x30, 0xff}, false)
			continue
		}

		col := stateColors[a.State()]
		v.drawVisionCone(screen, a, col)

		size := float32(8)
		body := col
		if a.IsTarget() {
			body = color.RGBA{0x7a, 0x4f, 0xd8, 0xff}
		}
		vector.FillRect(screen, x-size/2, y-size/2, size, size, body, false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s %.2f", a.Label(), a.AlertLevel()), int(x)+7, int(y)-6)
	}
}

// drawVisionCone fans the detection cone out as translucent edge and fill
// lines, coloured by the agent's alert state.
func (v *View) drawVisionCone(screen *ebiten.Image, a *Agent, col color.RGBA) {
	faded := color.RGBA{col.R, col.G, col.B, 0x30}
	x, y := toScreen(a.Pos())
	r := a.DetectionRange() * pixelsPerMeter
	half := a.DetectionHalfAngle()

	const rays = 12
	for i := 0; i <= rays; i++ {
		ang := a.Facing() - half + (2*half)*float64(i)/rays
		ex := x + float32(math.Cos(ang)*r)
		ey := y - float32(math.Sin(ang)*r)
		width := float32(1)
		lineCol := faded
		if i == 0 || i == rays {
			width = 1.5
			lineCol = color.RGBA{col.R, col.G, col.B, 0x70}
		}
		vector.StrokeLine(screen, x, y, ex, ey, width, lineCol, false)
	}
}

func (v *View) drawPlayer(screen *ebiten.Image) {
	p := v.mission.Player()
	x, y := toScreen(p.Pos)
	col := color.RGBA{0x4f, 0xa8, 0xd8, 0xff}
	if !p.Alive {
		col = color.RGBA{0x50, 0x50, 0x58, 0xff}
	}
	size := float32(9)
	if p.Crouching {
		size = 6
	}
	vector.FillRect(screen, x-size/2, y-size/2, size, size, col, false)
}

func (v *View) drawHUD(screen *ebiten.Image) {
	state, _ := v.mission.GlobalAlertState()
	meter := v.mission.DetectionMeter()

	// Detection meter bar.
	const barX, barY, barW, barH = 20, 20, 260, 14
	vector.FillRect(screen, barX, barY, barW, barH, color.RGBA{0x22, 0x22, 0x28, 0xff}, false)
	vector.FillRect(screen, barX, barY, float32(barW*meter), barH, stateColors[state], false)
	vector.StrokeRect(screen, barX, barY, barW, barH, 1, color.RGBA{0x70, 0x70, 0x78, 0xff}, false)

	face := basicfont.Face7x13
	text.Draw(screen, fmt.Sprintf("alert: %s", state), face, barX+barW+12, barY+int(barH)-2, color.White)

	p := v.mission.Player()
	text.Draw(screen, fmt.Sprintf("hp %.0f/%.0f", p.Health, p.MaxHealth), face, barX, barY+32, color.White)
	if !p.Alive {
		text.Draw(screen, "you died - R to restart", face, viewW/2-80, viewH/2, color.RGBA{0xd8, 0x2e, 0x2e, 0xff})
	}
	if v.statusTTL > 0 {
		text.Draw(screen, v.statusMsg, face, 20, viewH-16, color.RGBA{0xc0, 0xc0, 0xc8, 0xff})
	}
}

func (v *View) Layout(outsideWidth, outsideHeight int) (int, int) {
	return viewW, viewH
}
