// Package recorder persists simulation runs to SQLite for after-action
// inspection: one session row per run, plus per-tick agent and global
// alert samples.
package recorder

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Garsondee/Shadow-Sense/internal/game"
)

// Session is one recorded simulation run.
type Session struct {
	ID        string `gorm:"primaryKey"`
	Scenario  string
	Seed      int64
	StartedAt time.Time
	Ticks     int
	Outcome   string
}

// AgentSample is one agent's externally visible state at a sampled tick.
type AgentSample struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	SessionID string `gorm:"index"`
	Tick      int
	Label     string
	X         float64
	Z         float64
	Facing    float64
	State     string
	Level     float64
	Mode      string
	Alive     bool
	Health    float64
}

// GlobalSample is the mission-wide alert signal at a sampled tick.
type GlobalSample struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"`
	SessionID    string `gorm:"index"`
	Tick         int
	State        string
	Level        float64
	Meter        float64
	PlayerX      float64
	PlayerZ      float64
	PlayerAlive  bool
	PlayerHealth float64
}

// Recorder writes samples for a single session. It is not safe for
// concurrent use; the simulation loop owns it.
type Recorder struct {
	db      *gorm.DB
	log     *zap.Logger
	session Session
}

// Open creates (or opens) the SQLite file at path, migrates the schema and
// starts a new session. Use ":memory:" for a throwaway database.
func Open(path, scenario string, seed int64, log *zap.Logger) (*Recorder, error) {
	if log == nil {
		log = zap.NewNop()
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("recorder: open %q: %w", path, err)
	}
	if err := db.AutoMigrate(&Session{}, &AgentSample{}, &GlobalSample{}); err != nil {
		return nil, fmt.Errorf("recorder: migrate: %w", err)
	}

	r := &Recorder{
		db:  db,
		log: log,
		session: Session{
			ID:        uuid.NewString(),
			Scenario:  scenario,
			Seed:      seed,
			StartedAt: time.Now(),
		},
	}
	if err := db.Create(&r.session).Error; err != nil {
		return nil, fmt.Errorf("recorder: create session: %w", err)
	}
	log.Info("recording session started",
		zap.String("session", r.session.ID),
		zap.String("scenario", scenario),
		zap.Int64("seed", seed),
	)
	return r, nil
}

// SessionID returns the id of the session being recorded.
func (r *Recorder) SessionID() string { return r.session.ID }

// RecordTick samples the mission's current state. The caller chooses the
// cadence; recording every simulation tick is fine for short runs.
func (r *Recorder) RecordTick(m *game.Mission) error {
	tick := m.CurrentTick()

	snaps := m.Snapshot()
	samples := make([]AgentSample, 0, len(snaps))
	for _, s := range snaps {
		samples = append(samples, AgentSample{
			SessionID: r.session.ID,
			Tick:      tick,
			Label:     s.Label,
			X:         s.X,
			Z:         s.Z,
			Facing:    s.Facing,
			State:     s.AlertState.String(),
			Level:     s.AlertLevel,
			Mode:      s.Mode.String(),
			Alive:     s.Alive,
			Health:    s.Health,
		})
	}
	if len(samples) > 0 {
		if err := r.db.Create(&samples).Error; err != nil {
			return fmt.Errorf("recorder: agent samples at tick %d: %w", tick, err)
		}
	}

	state, level := m.GlobalAlertState()
	p := m.Player()
	g := GlobalSample{
		SessionID:    r.session.ID,
		Tick:         tick,
		State:        state.String(),
		Level:        level,
		Meter:        m.DetectionMeter(),
		PlayerX:      p.Pos.X,
		PlayerZ:      p.Pos.Z,
		PlayerAlive:  p.Alive,
		PlayerHealth: p.Health,
	}
	if err := r.db.Create(&g).Error; err != nil {
		return fmt.Errorf("recorder: global sample at tick %d: %w", tick, err)
	}

	r.session.Ticks = tick
	return nil
}

// Close finalizes the session row with the last recorded tick and an
// outcome tag ("detected", "undetected", "player_killed", ...).
func (r *Recorder) Close(outcome string) error {
	r.session.Outcome = outcome
	if err := r.db.Model(&Session{}).
		Where("id = ?", r.session.ID).
		Updates(map[string]any{"ticks": r.session.Ticks, "outcome": outcome}).Error; err != nil {
		return fmt.Errorf("recorder: close session: %w", err)
	}
	r.log.Info("recording session closed",
		zap.String("session", r.session.ID),
		zap.Int("ticks", r.session.Ticks),
		zap.String("outcome", outcome),
	)
	return nil
}
