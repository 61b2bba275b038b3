package steering

// Tuning carries every numeric weight of the steering model. Hosts may
// override it from config; the defaults are the shipped behavior and
// the values the tests assume.
type Tuning struct {
	// Herder kinematics.
	HerderRadius   float64 `yaml:"herder_radius" json:"herder_radius"`
	HerderMaxSpeed float64 `yaml:"herder_max_speed" json:"herder_max_speed"`
	HerderDamping  float64 `yaml:"herder_damping" json:"herder_damping"`
	FacingSpeedMin float64 `yaml:"facing_speed_min" json:"facing_speed_min"`
	FacingLerp     float64 `yaml:"facing_lerp" json:"facing_lerp"`

	// Agent kinematics.
	AgentRadius    float64 `yaml:"agent_radius" json:"agent_radius"`
	GrazeMaxSpeed  float64 `yaml:"graze_max_speed" json:"graze_max_speed"`
	FleeMaxSpeed   float64 `yaml:"flee_max_speed" json:"flee_max_speed"`
	PanicSpeedGain float64 `yaml:"panic_speed_gain" json:"panic_speed_gain"`
	Accel          float64 `yaml:"accel" json:"accel"`

	// Flocking.
	SeparationRadius float64 `yaml:"separation_radius" json:"separation_radius"`
	SeparationMag    float64 `yaml:"separation_mag" json:"separation_mag"`
	SeparationWeight float64 `yaml:"separation_weight" json:"separation_weight"`
	NeighborRadius   float64 `yaml:"neighbor_radius" json:"neighbor_radius"`
	AlignWeight      float64 `yaml:"align_weight" json:"align_weight"`
	CohesionWeight   float64 `yaml:"cohesion_weight" json:"cohesion_weight"`

	// Fear and panic.
	Perception     float64 `yaml:"perception" json:"perception"`
	FastPerception float64 `yaml:"fast_perception" json:"fast_perception"`
	FearMag        float64 `yaml:"fear_mag" json:"fear_mag"`
	FastFearGain   float64 `yaml:"fast_fear_gain" json:"fast_fear_gain"`
	PanicThreshold float64 `yaml:"panic_threshold" json:"panic_threshold"`
	PanicNoise     float64 `yaml:"panic_noise" json:"panic_noise"`
	PanicRise      float64 `yaml:"panic_rise" json:"panic_rise"`
	PanicDecay     float64 `yaml:"panic_decay" json:"panic_decay"`

	// Environment.
	ObstacleMargin float64 `yaml:"obstacle_margin" json:"obstacle_margin"`
	ObstacleWeight float64 `yaml:"obstacle_weight" json:"obstacle_weight"`
	WallMargin     float64 `yaml:"wall_margin" json:"wall_margin"`
	WallWeight     float64 `yaml:"wall_weight" json:"wall_weight"`
	WanderJitter   float64 `yaml:"wander_jitter" json:"wander_jitter"`

	// Containment.
	SecureDamping    float64 `yaml:"secure_damping" json:"secure_damping"`
	SecureSeparation float64 `yaml:"secure_separation" json:"secure_separation"`
	PenMarginHold    float64 `yaml:"pen_margin_hold" json:"pen_margin_hold"`
	PenMarginEnter   float64 `yaml:"pen_margin_enter" json:"pen_margin_enter"`
}

// DefaultTuning returns the shipped steering weights.
func DefaultTuning() Tuning {
	return Tuning{
		HerderRadius:   14,
		HerderMaxSpeed: 5,
		HerderDamping:  0.8,
		FacingSpeedMin: 0.5,
		FacingLerp:     0.1,

		AgentRadius:    10,
		GrazeMaxSpeed:  1.2,
		FleeMaxSpeed:   3,
		PanicSpeedGain: 0.5,
		Accel:          0.15,

		SeparationRadius: 30,
		SeparationMag:    2.0,
		SeparationWeight: 3.5,
		NeighborRadius:   80,
		AlignWeight:      0.08,
		CohesionWeight:   0.05,

		Perception:     130,
		FastPerception: 1.2,
		FearMag:        2.5,
		FastFearGain:   1.5,
		PanicThreshold: 0.5,
		PanicNoise:     0.5,
		PanicRise:      0.1,
		PanicDecay:     0.02,

		ObstacleMargin: 15,
		ObstacleWeight: 3.0,
		WallMargin:     35,
		WallWeight:     4.0,
		WanderJitter:   0.2,

		SecureDamping:    0.85,
		SecureSeparation: 0.5,
		PenMarginHold:    5,
		PenMarginEnter:   15,
	}
}
