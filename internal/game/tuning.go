package game

import "github.com/spf13/viper"

// Tuning groups every behavioural constant the simulation uses. A default
// set ships in code; scenarios can override any of it from a YAML file.
type Tuning struct {
	Perception PerceptionTuning `mapstructure:"perception"`
	Alert      AlertTuning      `mapstructure:"alert"`
	Movement   MovementTuning   `mapstructure:"movement"`
	Combat     CombatTuning     `mapstructure:"combat"`
	Agent      AgentTuning      `mapstructure:"agent"`
}

// PerceptionTuning controls how fast sightlines accumulate alert level.
// Base rates are per-second and strictly increase with the observer's
// alert state: a combat-ready observer notices things far faster.
type PerceptionTuning struct {
	BaseRateIdle       float64 `mapstructure:"base_rate_idle"`
	BaseRateSuspicious float64 `mapstructure:"base_rate_suspicious"`
	BaseRateAlerted    float64 `mapstructure:"base_rate_alerted"`
	BaseRateCombat     float64 `mapstructure:"base_rate_combat"`
}

// AlertTuning controls the alert state machine thresholds and timers.
type AlertTuning struct {
	SuspiciousThreshold float64 `mapstructure:"suspicious_threshold"`
	AlertedThreshold    float64 `mapstructure:"alerted_threshold"`
	CombatThreshold     float64 `mapstructure:"combat_threshold"`
	DecayRate           float64 `mapstructure:"decay_rate"` // level per second outside combat
	GunshotFloor        float64 `mapstructure:"gunshot_floor"`
	LostTargetLevel     float64 `mapstructure:"lost_target_level"`
	InvestigateGiveUpS  float64 `mapstructure:"investigate_give_up_s"`
	SearchTimeoutS      float64 `mapstructure:"search_timeout_s"`
	SearchDeescalate    float64 `mapstructure:"search_deescalate"`
}

// MovementTuning controls the shared steering behaviour.
type MovementTuning struct {
	WalkSpeed     float64 `mapstructure:"walk_speed"` // m/s
	RunSpeed      float64 `mapstructure:"run_speed"`
	TurnRate      float64 `mapstructure:"turn_rate"` // rad/s
	WaypointDwell float64 `mapstructure:"waypoint_dwell_s"`
	ArriveDist    float64 `mapstructure:"arrive_dist"`
	StopDist      float64 `mapstructure:"stop_dist"` // investigate/search close-enough distance
	AgentRadius   float64 `mapstructure:"agent_radius"`
}

// CombatTuning controls agent attack resolution.
type CombatTuning struct {
	AttackRange     float64 `mapstructure:"attack_range"`
	CloseRange      float64 `mapstructure:"close_range"` // inside this the agent strafes between shots
	Cooldown        float64 `mapstructure:"cooldown_s"`
	BaseAccuracy    float64 `mapstructure:"base_accuracy"`
	MovingTargetMul float64 `mapstructure:"moving_target_mul"`
	CrouchTargetMul float64 `mapstructure:"crouch_target_mul"`
	Damage          float64 `mapstructure:"damage"`
	StrafeDuration  float64 `mapstructure:"strafe_duration_s"`
}

// AgentTuning holds per-role agent defaults. The high-value target role is
// easier to sneak past and softer, and never fires back.
type AgentTuning struct {
	MaxHealth          float64 `mapstructure:"max_health"`
	DetectionRange     float64 `mapstructure:"detection_range"` // meters
	DetectionHalfAngle float64 `mapstructure:"detection_half_angle"` // radians
	TargetMaxHealth    float64 `mapstructure:"target_max_health"`
	TargetRange        float64 `mapstructure:"target_detection_range"`
}

// DefaultTuning returns the baseline parameter set.
func DefaultTuning() *Tuning {
	return &Tuning{
		Perception: PerceptionTuning{
			BaseRateIdle:       0.25,
			BaseRateSuspicious: 0.40,
			BaseRateAlerted:    0.60,
			BaseRateCombat:     0.80,
		},
		Alert: AlertTuning{
			SuspiciousThreshold: 0.3,
			AlertedThreshold:    0.7,
			CombatThreshold:     1.0,
			DecayRate:           0.1,
			GunshotFloor:        0.5,
			LostTargetLevel:     0.5,
			InvestigateGiveUpS:  5.0,
			SearchTimeoutS:      10.0,
			SearchDeescalate:    0.3,
		},
		Movement: MovementTuning{
			WalkSpeed:     2.0,
			RunSpeed:      5.0,
			TurnRate:      3.0,
			WaypointDwell: 2.0,
			ArriveDist:    0.5,
			StopDist:      1.0,
			AgentRadius:   0.4,
		},
		Combat: CombatTuning{
			AttackRange:     20.0,
			CloseRange:      5.0,
			Cooldown:        1.0,
			BaseAccuracy:    0.6,
			MovingTargetMul: 0.7,
			CrouchTargetMul: 0.6,
			Damage:          10.0,
			StrafeDuration:  1.5,
		},
		Agent: AgentTuning{
			MaxHealth:          100.0,
			DetectionRange:     15.0,
			DetectionHalfAngle: 1.0471975511965976, // 60 degrees
			TargetMaxHealth:    50.0,
			TargetRange:        10.0,
		},
	}
}

// LoadTuning reads a tuning override file (YAML). Every key defaults to the
// DefaultTuning value, so a partial file is fine.
func LoadTuning(path string) (*Tuning, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	def := DefaultTuning()
	v.SetDefault("perception.base_rate_idle", def.Perception.BaseRateIdle)
	v.SetDefault("perception.base_rate_suspicious", def.Perception.BaseRateSuspicious)
	v.SetDefault("perception.base_rate_alerted", def.Perception.BaseRateAlerted)
	v.SetDefault("perception.base_rate_combat", def.Perception.BaseRateCombat)
	v.SetDefault("alert.suspicious_threshold", def.Alert.SuspiciousThreshold)
	v.SetDefault("alert.alerted_threshold", def.Alert.AlertedThreshold)
	v.SetDefault("alert.combat_threshold", def.Alert.CombatThreshold)
	v.SetDefault("alert.decay_rate", def.Alert.DecayRate)
	v.SetDefault("alert.gunshot_floor", def.Alert.GunshotFloor)
	v.SetDefault("alert.lost_target_level", def.Alert.LostTargetLevel)
	v.SetDefault("alert.investigate_give_up_s", def.Alert.InvestigateGiveUpS)
	v.SetDefault("alert.search_timeout_s", def.Alert.SearchTimeoutS)
	v.SetDefault("alert.search_deescalate", def.Alert.SearchDeescalate)
	v.SetDefault("movement.walk_speed", def.Movement.WalkSpeed)
	v.SetDefault("movement.run_speed", def.Movement.RunSpeed)
	v.SetDefault("movement.turn_rate", def.Movement.TurnRate)
	v.SetDefault("movement.waypoint_dwell_s", def.Movement.WaypointDwell)
	v.SetDefault("movement.arrive_dist", def.Movement.ArriveDist)
	v.SetDefault("movement.stop_dist", def.Movement.StopDist)
	v.SetDefault("movement.agent_radius", def.Movement.AgentRadius)
	v.SetDefault("combat.attack_range", def.Combat.AttackRange)
	v.SetDefault("combat.close_range", def.Combat.CloseRange)
	v.SetDefault("combat.cooldown_s", def.Combat.Cooldown)
	v.SetDefault("combat.base_accuracy", def.Combat.BaseAccuracy)
	v.SetDefault("combat.moving_target_mul", def.Combat.MovingTargetMul)
	v.SetDefault("combat.crouch_target_mul", def.Combat.CrouchTargetMul)
	v.SetDefault("combat.damage", def.Combat.Damage)
	v.SetDefault("combat.strafe_duration_s", def.Combat.StrafeDuration)
	v.SetDefault("agent.max_health", def.Agent.MaxHealth)
	v.SetDefault("agent.detection_range", def.Agent.DetectionRange)
	v.SetDefault("agent.detection_half_angle", def.Agent.DetectionHalfAngle)
	v.SetDefault("agent.target_max_health", def.Agent.TargetMaxHealth)
	v.SetDefault("agent.target_detection_range", def.Agent.TargetRange)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	tun := &Tuning{}
	if err := v.Unmarshal(tun); err != nil {
		return nil, err
	}
	return tun, nil
}
