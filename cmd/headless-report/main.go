package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/Garsondee/Shadow-Sense/internal/game"
	"github.com/Garsondee/Shadow-Sense/internal/recorder"
)

type runStats struct {
	runIndex int
	seed     int64

	firstSuspiciousTick int
	firstAlertedTick    int
	firstCombatTick     int
	firstShotTick       int
	playerDeathTick     int
	targetDeathTick     int

	stateChanges int
	modeChanges  int
	shotsFired   int
	peakMeter    float64

	playerAlive bool
	targetDown  bool
	outcome     string
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var scenario string
	var dbPath string
	var tuningPath string
	var verbose bool

	flag.IntVar(&runs, "runs", 5, "number of headless simulation runs")
	flag.IntVar(&ticks, "ticks", 3600, "ticks per run (60 ticks per second)")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&scenario, "scenario", "infiltration", "scenario name (infiltration, frontal, takedown)")
	flag.StringVar(&dbPath, "db", "", "optional SQLite file to record runs into")
	flag.StringVar(&tuningPath, "tuning", "", "optional YAML tuning override file")
	flag.BoolVar(&verbose, "verbose", false, "log every shot and state change")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}
	if scenario != "infiltration" && scenario != "frontal" && scenario != "takedown" {
		fmt.Printf("error: unsupported scenario %q (supported: infiltration, frontal, takedown)\n", scenario)
		return
	}

	var tun *game.Tuning
	if tuningPath != "" {
		var err error
		tun, err = game.LoadTuning(tuningPath)
		if err != nil {
			fmt.Printf("error: load tuning: %v\n", err)
			os.Exit(1)
		}
	}

	log := zap.NewNop()
	if verbose {
		dev, err := zap.NewDevelopment()
		if err == nil {
			log = dev
			defer func() { _ = log.Sync() }()
		}
	}

	fmt.Printf("=== Headless Stealth Report ===\n")
	fmt.Printf("scenario=%s runs=%d ticks=%d seed_base=%d seed_step=%d\n\n", scenario, runs, ticks, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats := runScenario(scenario, i+1, seed, ticks, tun, dbPath, log)
		all = append(all, stats)
		printRun(stats)
	}

	printAggregate(all)
}

// scriptFor builds the sim and the player's scripted route for a scenario.
// All three share the same compound: two patrolling guards, a high-value
// target in the back room, crates and a dark service corridor along the
// south wall.
func scriptFor(scenario string, seed int64, tun *game.Tuning) (*game.TestSim, *playerScript) {
	opts := []game.SimOption{
		game.WithSeed(seed),
		game.WithObstacle(18, -14, 12, 1, 3),  // south wall
		game.WithObstacle(18, 13, 12, 1, 3),   // north wall
		game.WithObstacle(12, -6, 2, 2, 1.2),  // crates
		game.WithObstacle(22, 2, 2, 2, 1.2),
		game.WithDarkZone(16, -11, 7),         // service corridor
		game.WithBrightZone(24, 0, 6),         // lit yard outside the target room
		game.WithPatrolAgent(0, [2]float64{10, -4}, [2]float64{10, 8}),
		game.WithPatrolAgent(1, [2]float64{26, 8}, [2]float64{18, 8}),
		game.WithHighValueTarget(2, 34, 0, 3.14),
		game.WithPlayer(0, -11),
	}
	if tun != nil {
		opts = append(opts, game.WithTuning(tun))
	}
	ts := game.NewTestSim(opts...)

	var ps *playerScript
	switch scenario {
	case "frontal":
		// Straight up the middle, standing and running.
		ps = newPlayerScript(ts.Player, 5.0, false,
			game.Vec3{X: 12, Z: 0},
			game.Vec3{X: 24, Z: 0},
			game.Vec3{X: 34, Z: 0},
		)
	case "takedown":
		// Sneak the corridor, strike the target, leave the way we came.
		ps = newPlayerScript(ts.Player, 1.6, true,
			game.Vec3{X: 16, Z: -11},
			game.Vec3{X: 30, Z: -8},
			game.Vec3{X: 33, Z: -1},
		)
		ps.onArrival = func(ts *game.TestSim) {
			hvt := ts.AgentByID(2)
			if hvt != nil && hvt.Alive() {
				hvt.TakeDamage(30, true)
				ts.Mission.Sounds().RegisterEvent(ts.Player.Pos, 1.0, game.SoundGunshot)
			}
			ps.retrace()
		}
	default: // infiltration
		// The dark corridor end to end, no contact intended.
		ps = newPlayerScript(ts.Player, 1.6, true,
			game.Vec3{X: 10, Z: -11},
			game.Vec3{X: 22, Z: -11},
			game.Vec3{X: 30, Z: -11},
		)
	}
	return ts, ps
}

func runScenario(scenario string, runIndex int, seed int64, ticks int, tun *game.Tuning, dbPath string, log *zap.Logger) runStats {
	ts, ps := scriptFor(scenario, seed, tun)

	var rec *recorder.Recorder
	if dbPath != "" {
		var err error
		rec, err = recorder.Open(dbPath, scenario, seed, log)
		if err != nil {
			fmt.Printf("error: open recorder: %v\n", err)
			os.Exit(1)
		}
	}

	peakMeter := 0.0
	shots := 0
	firstShot := -1
	seenShots := map[float64]struct{}{}
	for i := 0; i < ticks; i++ {
		ps.step(ts)
		ts.RunTicks(1)

		if m := ts.Mission.DetectionMeter(); m > peakMeter {
			peakMeter = m
		}
		// Gunshots are counted off the sound registry; events are keyed by
		// their registration time, which is unique per shot under a 60Hz tick.
		for _, e := range ts.Mission.Sounds().Events() {
			if e.Category != game.SoundGunshot {
				continue
			}
			if _, ok := seenShots[e.At]; !ok {
				seenShots[e.At] = struct{}{}
				shots++
				if firstShot < 0 {
					firstShot = ts.CurrentTick()
				}
			}
		}
		if rec != nil {
			if err := rec.RecordTick(ts.Mission); err != nil {
				fmt.Printf("error: record tick: %v\n", err)
				os.Exit(1)
			}
		}
		if !ts.Player.Alive {
			break
		}
	}

	entries := ts.SimLog.Entries()
	hvt := ts.AgentByID(2)
	rs := runStats{
		runIndex:            runIndex,
		seed:                seed,
		firstSuspiciousTick: firstTick(entries, "alert", "state_change", "→ suspicious"),
		firstAlertedTick:    firstTick(entries, "alert", "state_change", "→ alerted"),
		firstCombatTick:     firstTick(entries, "alert", "state_change", "→ combat"),
		firstShotTick:       firstShot,
		playerDeathTick:     firstTick(entries, "player", "dead", ""),
		stateChanges:        ts.SimLog.CountCategory("alert", "state_change"),
		modeChanges:         ts.SimLog.CountCategory("behavior", "mode_change"),
		shotsFired:          shots,
		peakMeter:           peakMeter,
		playerAlive:         ts.Player.Alive,
		targetDown:          hvt != nil && !hvt.Alive(),
	}
	rs.outcome = classify(rs)

	if rec != nil {
		if err := rec.Close(rs.outcome); err != nil {
			fmt.Printf("error: close recorder: %v\n", err)
		}
	}
	return rs
}

// classify names the run outcome from its markers.
func classify(rs runStats) string {
	switch {
	case !rs.playerAlive:
		return "player_killed"
	case rs.targetDown && rs.firstCombatTick < 0:
		return "clean_takedown"
	case rs.targetDown:
		return "loud_takedown"
	case rs.firstCombatTick >= 0:
		return "detected"
	case rs.firstSuspiciousTick >= 0:
		return "noticed"
	default:
		return "ghost"
	}
}

func firstTick(entries []game.SimLogEntry, category, key, contains string) int {
	for _, e := range entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if contains == "" || strings.Contains(e.Value, contains) {
			return e.Tick
		}
	}
	return -1
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("phase_markers: suspicious=%d alerted=%d combat=%d first_shot=%d player_death=%d\n",
		rs.firstSuspiciousTick, rs.firstAlertedTick, rs.firstCombatTick, rs.firstShotTick, rs.playerDeathTick)
	fmt.Printf("event_totals: state_change=%d mode_change=%d shots=%d peak_meter=%.2f\n",
		rs.stateChanges, rs.modeChanges, rs.shotsFired, rs.peakMeter)
	fmt.Printf("outcome: %s\n\n", rs.outcome)
}

func printAggregate(all []runStats) {
	totalState := 0
	totalMode := 0
	totalShots := 0
	outcomes := map[string]int{}
	suspiciousTicks := make([]int, 0, len(all))
	combatTicks := make([]int, 0, len(all))
	peak := 0.0

	for _, rs := range all {
		totalState += rs.stateChanges
		totalMode += rs.modeChanges
		totalShots += rs.shotsFired
		outcomes[rs.outcome]++
		if rs.firstSuspiciousTick >= 0 {
			suspiciousTicks = append(suspiciousTicks, rs.firstSuspiciousTick)
		}
		if rs.firstCombatTick >= 0 {
			combatTicks = append(combatTicks, rs.firstCombatTick)
		}
		if rs.peakMeter > peak {
			peak = rs.peakMeter
		}
	}

	fmt.Printf("=== Aggregate (%d runs) ===\n", len(all))
	fmt.Printf("totals: state_change=%d mode_change=%d shots=%d peak_meter=%.2f\n",
		totalState, totalMode, totalShots, peak)
	fmt.Printf("first_suspicious: reached=%d/%d avg_tick=%s\n",
		len(suspiciousTicks), len(all), avgTick(suspiciousTicks))
	fmt.Printf("first_combat: reached=%d/%d avg_tick=%s\n",
		len(combatTicks), len(all), avgTick(combatTicks))
	fmt.Printf("outcomes:")
	for _, name := range []string{"ghost", "noticed", "clean_takedown", "loud_takedown", "detected", "player_killed"} {
		if n := outcomes[name]; n > 0 {
			fmt.Printf(" %s=%d", name, n)
		}
	}
	fmt.Println()
}

func avgTick(ticks []int) string {
	if len(ticks) == 0 {
		return "n/a"
	}
	sum := 0
	for _, t := range ticks {
		sum += t
	}
	return fmt.Sprintf("%d", sum/len(ticks))
}
