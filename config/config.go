package config

import "github.com/automoto/rippto-brawl/gamemath"

// BodyConfig is the fighter collider. Position is the feet center.
type BodyConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// GroundConfig tunes the layered ground sensor.
type GroundConfig struct {
	CheckDistance     float64 `yaml:"check_distance"`
	CheckWidth        float64 `yaml:"check_width"`
	Skin              float64 `yaml:"skin"`
	MinNormalY        float64 `yaml:"min_normal_y"`
	CircleRadiusScale float64 `yaml:"circle_radius_scale"`
	MinCircleRadius   float64 `yaml:"min_circle_radius"`
	RestSpeed         float64 `yaml:"rest_speed"`
	RestProbeExtra    float64 `yaml:"rest_probe_extra"`
	HysteresisSpeed   float64 `yaml:"hysteresis_speed"`
}

// MovementConfig contains the platform-fighter movement tunables.
type MovementConfig struct {
	// Gravity
	Gravity             float64 `yaml:"gravity"`
	UpwardGravityMult   float64 `yaml:"upward_gravity_mult"`
	FastFallGravityMult float64 `yaml:"fast_fall_gravity_mult"`
	FastFallTerminal    float64 `yaml:"fast_fall_terminal"`

	// Horizontal
	GroundSpeed     float64 `yaml:"ground_speed"`
	AirSpeed        float64 `yaml:"air_speed"`
	Acceleration    float64 `yaml:"acceleration"`
	Deceleration    float64 `yaml:"deceleration"`
	GroundFriction  float64 `yaml:"ground_friction"`
	InputDeadzone   float64 `yaml:"input_deadzone"`
	AttackLockDecel float64 `yaml:"attack_lock_decel"`

	// Jumps
	JumpHeight        float64 `yaml:"jump_height"`
	MaxJumps          int     `yaml:"max_jumps"`
	AirJumpMultiplier float64 `yaml:"air_jump_multiplier"`
	CoyoteTime        float64 `yaml:"coyote_time"`
	JumpBufferTime    float64 `yaml:"jump_buffer_time"`
	LandingGraceTime  float64 `yaml:"landing_grace_time"`
	ForfeitGroundJump bool    `yaml:"forfeit_ground_jump"`
	SafetyProbe       float64 `yaml:"safety_probe"`
	SafetyRestSpeed   float64 `yaml:"safety_rest_speed"`
	SafetyFallSpeed   float64 `yaml:"safety_fall_speed"`

	// Dash
	DashSpeed       float64 `yaml:"dash_speed"`
	DashDuration    float64 `yaml:"dash_duration"`
	DashCooldown    float64 `yaml:"dash_cooldown"`
	MaxDashes       int     `yaml:"max_dashes"`
	DoubleTapWindow float64 `yaml:"double_tap_window"`

	// Slide
	RunThreshold      float64 `yaml:"run_threshold"`
	SlideDeceleration float64 `yaml:"slide_deceleration"`
	SlideDuration     float64 `yaml:"slide_duration"`
	SlideStopSpeed    float64 `yaml:"slide_stop_speed"`
	SlideMinSpeed     float64 `yaml:"slide_min_speed"`

	// Walls
	WallCheckDistance float64 `yaml:"wall_check_distance"`
	WallCheckHeight   float64 `yaml:"wall_check_height"`
	WallSlideSpeed    float64 `yaml:"wall_slide_speed"`
	WallJumpSpeedX    float64 `yaml:"wall_jump_speed_x"`
	WallJumpLift      float64 `yaml:"wall_jump_lift"`

	// One-way platforms
	DropDuration float64 `yaml:"drop_duration"`

	BoundsEnabled bool          `yaml:"bounds_enabled"`
	Bounds        gamemath.Rect `yaml:"bounds"`
}

// JumpForce is the launch speed for JumpHeight under Gravity.
func (m MovementConfig) JumpForce() float64 {
	return gamemath.JumpForce(m.Gravity, m.JumpHeight)
}

// CombatConfig contains melee tunables. Lunge multipliers scale the light
// or heavy base lunge for each attack variant.
type CombatConfig struct {
	LightDamage     float64 `yaml:"light_damage"`
	HeavyDamage     float64 `yaml:"heavy_damage"`
	AttackRange     float64 `yaml:"attack_range"`
	KnockbackBase   float64 `yaml:"knockback_base"`
	KnockbackMult   float64 `yaml:"knockback_mult"`
	ComboResetTime  float64 `yaml:"combo_reset_time"`
	ComboDamageStep float64 `yaml:"combo_damage_step"`
	MovingThreshold float64 `yaml:"moving_threshold"`
	LightCooldown   float64 `yaml:"light_cooldown"`
	HeavyCooldown   float64 `yaml:"heavy_cooldown"`

	LightLunge        float64 `yaml:"light_lunge"`
	HeavyLunge        float64 `yaml:"heavy_lunge"`
	SideKickLungeMult float64 `yaml:"side_kick_lunge_mult"`
	AirLightLungeMult float64 `yaml:"air_light_lunge_mult"`
	FlyingLungeMult   float64 `yaml:"flying_lunge_mult"`
	AirHeavyLungeMult float64 `yaml:"air_heavy_lunge_mult"`

	// AttackOrigin is the hit query center relative to the feet, mirrored by
	// facing. Nil disables damage.
	AttackOrigin *gamemath.Vec `yaml:"attack_origin"`
}

// ClipConfig is a reference attack clip: total length and the instant the
// hit is applied.
type ClipConfig struct {
	Duration float64 `yaml:"duration"`
	HitAt    float64 `yaml:"hit_at"`
}

type AnimationConfig struct {
	Light       ClipConfig `yaml:"light"`
	SideKick    ClipConfig `yaml:"side_kick"`
	AirLight    ClipConfig `yaml:"air_light"`
	Heavy       ClipConfig `yaml:"heavy"`
	FlyingChain ClipConfig `yaml:"flying_chain"`
	AirHeavy    ClipConfig `yaml:"air_heavy"`
}

// StatsConfig holds the blast zone. A fighter whose feet leave it is KO'd.
type StatsConfig struct {
	MaxFallY float64 `yaml:"max_fall_y"`
	MinX     float64 `yaml:"min_x"`
	MaxX     float64 `yaml:"max_x"`
}

// TransportConfig tunes the respawn drone.
type TransportConfig struct {
	Speed        float64 `yaml:"speed"`
	SpawnHeight  float64 `yaml:"spawn_height"`
	PickupHeight float64 `yaml:"pickup_height"`
	DropDelay    float64 `yaml:"drop_delay"`
	Ease         string  `yaml:"ease"`
}

// ShakeConfig is one screen shake preset.
type ShakeConfig struct {
	Intensity float64 `yaml:"intensity"`
	Duration  float64 `yaml:"duration"`
}

// CameraConfig contains camera follow, zoom and shake values.
type CameraConfig struct {
	FollowSpeedX    float64      `yaml:"follow_speed_x"`
	FollowSpeedY    float64      `yaml:"follow_speed_y"`
	DashFollowSpeed float64      `yaml:"dash_follow_speed"`
	FallFollowSpeed float64      `yaml:"fall_follow_speed"`
	FallSpeed       float64      `yaml:"fall_speed"`
	UseSmoothDamp   bool         `yaml:"use_smooth_damp"`
	SmoothTime      float64      `yaml:"smooth_time"`
	Offset          gamemath.Vec `yaml:"offset"`
	DeadZone        gamemath.Vec `yaml:"dead_zone"`

	LookAheadDistance  float64 `yaml:"look_ahead_distance"`
	LookAheadSpeed     float64 `yaml:"look_ahead_speed"`
	LookAheadThreshold float64 `yaml:"look_ahead_threshold"`

	DefaultZoom        float64 `yaml:"default_zoom"`
	MinZoom            float64 `yaml:"min_zoom"`
	MaxZoom            float64 `yaml:"max_zoom"`
	ZoomSpeed          float64 `yaml:"zoom_speed"`
	DashZoom           float64 `yaml:"dash_zoom"`
	JumpZoom           float64 `yaml:"jump_zoom"`
	FastFallZoom       float64 `yaml:"fast_fall_zoom"`
	SpeedZoom          float64 `yaml:"speed_zoom"`
	SpeedZoomThreshold float64 `yaml:"speed_zoom_threshold"`

	// LandShakeSpeed is the landing speed at which a land shake starts.
	LandShakeSpeed float64     `yaml:"land_shake_speed"`
	LandShake      ShakeConfig `yaml:"land_shake"`
	DashShake      ShakeConfig `yaml:"dash_shake"`
	HitShake       ShakeConfig `yaml:"hit_shake"`

	BoundsEnabled bool          `yaml:"bounds_enabled"`
	Bounds        gamemath.Rect `yaml:"bounds"`
}

// PickupConfig tunes the serum spawner.
type PickupConfig struct {
	InitialCount int     `yaml:"initial_count"`
	RefillCount  int     `yaml:"refill_count"`
	RespawnDelay float64 `yaml:"respawn_delay"`
	Lifetime     float64 `yaml:"lifetime"`
	Size         float64 `yaml:"size"`
}

// BotConfig is passed to AI scripts as globals.
type BotConfig struct {
	DecisionMin float64 `yaml:"decision_min"`
	DecisionMax float64 `yaml:"decision_max"`
	AttackRange float64 `yaml:"attack_range"`
	DashChance  float64 `yaml:"dash_chance"`
}

// MatchConfig drives the fixed-timestep loop.
type MatchConfig struct {
	TickRate      int   `yaml:"tick_rate"`
	MaxFrameTicks int   `yaml:"max_frame_ticks"`
	Seed          int64 `yaml:"seed"`
	// KOCreditTime is how long after a hit a knockout still counts for
	// the attacker.
	KOCreditTime float64 `yaml:"ko_credit_time"`
}

// Config is the complete tunable set. Each simulation component receives
// its own section at construction.
type Config struct {
	Body      BodyConfig      `yaml:"body"`
	Ground    GroundConfig    `yaml:"ground"`
	Movement  MovementConfig  `yaml:"movement"`
	Combat    CombatConfig    `yaml:"combat"`
	Animation AnimationConfig `yaml:"animation"`
	Stats     StatsConfig     `yaml:"stats"`
	Transport TransportConfig `yaml:"transport"`
	Camera    CameraConfig    `yaml:"camera"`
	Pickups   PickupConfig    `yaml:"pickups"`
	Bot       BotConfig       `yaml:"bot"`
	Match     MatchConfig     `yaml:"match"`
}

// Default returns the tuned defaults.
func Default() Config {
	return Config{
		Body: BodyConfig{Width: 0.5, Height: 1},
		Ground: GroundConfig{
			CheckDistance:     0.1,
			CheckWidth:        0.5,
			Skin:              0.01,
			MinNormalY:        0.5,
			CircleRadiusScale: 0.25,
			MinCircleRadius:   0.05,
			RestSpeed:         0.1,
			RestProbeExtra:    0.2,
			HysteresisSpeed:   0.15,
		},
		Movement: MovementConfig{
			Gravity:             -25,
			UpwardGravityMult:   0.8,
			FastFallGravityMult: 1.5,
			FastFallTerminal:    -20,

			GroundSpeed:     7,
			AirSpeed:        5,
			Acceleration:    50,
			Deceleration:    60,
			GroundFriction:  0.9,
			InputDeadzone:   0.01,
			AttackLockDecel: 30,

			JumpHeight:        2,
			MaxJumps:          3,
			AirJumpMultiplier: 0.9,
			CoyoteTime:        0.15,
			JumpBufferTime:    0.1,
			LandingGraceTime:  0.05,
			ForfeitGroundJump: true,
			SafetyProbe:       0.6,
			SafetyRestSpeed:   0.5,
			SafetyFallSpeed:   3,

			DashSpeed:       14,
			DashDuration:    0.2,
			DashCooldown:    0.5,
			MaxDashes:       1,
			DoubleTapWindow: 0.3,

			RunThreshold:      0.1,
			SlideDeceleration: 20,
			SlideDuration:     0.25,
			SlideStopSpeed:    0.05,
			SlideMinSpeed:     1,

			WallCheckDistance: 0.2,
			WallCheckHeight:   1.2,
			WallSlideSpeed:    2,
			WallJumpSpeedX:    7,
			WallJumpLift:      1.1,

			DropDuration: 0.4,
		},
		Combat: CombatConfig{
			LightDamage:     5,
			HeavyDamage:     10,
			AttackRange:     0.5,
			KnockbackBase:   5,
			KnockbackMult:   0.05,
			ComboResetTime:  1,
			ComboDamageStep: 0.1,
			MovingThreshold: 0.1,
			LightCooldown:   0.25,
			HeavyCooldown:   0.45,

			LightLunge:        2,
			HeavyLunge:        4,
			SideKickLungeMult: 1.2,
			AirLightLungeMult: 0.5,
			FlyingLungeMult:   1.5,
			AirHeavyLungeMult: 0.6,

			AttackOrigin: &gamemath.Vec{X: 0.45, Y: 0.5},
		},
		Animation: AnimationConfig{
			Light:       ClipConfig{Duration: 0.25, HitAt: 0.1},
			SideKick:    ClipConfig{Duration: 0.3, HitAt: 0.12},
			AirLight:    ClipConfig{Duration: 0.25, HitAt: 0.1},
			Heavy:       ClipConfig{Duration: 0.45, HitAt: 0.25},
			FlyingChain: ClipConfig{Duration: 0.5, HitAt: 0.2},
			AirHeavy:    ClipConfig{Duration: 0.4, HitAt: 0.2},
		},
		Stats: StatsConfig{MaxFallY: -10, MinX: -20, MaxX: 20},
		Transport: TransportConfig{
			Speed:        5,
			SpawnHeight:  2,
			PickupHeight: 2,
			DropDelay:    0.5,
			Ease:         "linear",
		},
		Camera: CameraConfig{
			FollowSpeedX:    6,
			FollowSpeedY:    6,
			DashFollowSpeed: 10,
			FallFollowSpeed: 4,
			FallSpeed:       -5,
			SmoothTime:      0.2,
			DeadZone:        gamemath.Vec{X: 2, Y: 1.5},

			LookAheadDistance:  1.5,
			LookAheadSpeed:     5,
			LookAheadThreshold: 0.5,

			DefaultZoom:        5,
			MinZoom:            4,
			MaxZoom:            7,
			ZoomSpeed:          2,
			DashZoom:           -0.5,
			JumpZoom:           -0.3,
			FastFallZoom:       0.4,
			SpeedZoom:          0.5,
			SpeedZoomThreshold: 8,

			LandShakeSpeed: 12,
			LandShake:      ShakeConfig{Intensity: 0.2, Duration: 0.3},
			DashShake:      ShakeConfig{Intensity: 0.15, Duration: 0.2},
			HitShake:       ShakeConfig{Intensity: 0.4, Duration: 0.4},
		},
		Pickups: PickupConfig{
			InitialCount: 4,
			RefillCount:  2,
			RespawnDelay: 5,
			Lifetime:     20,
			Size:         0.4,
		},
		Bot: BotConfig{
			DecisionMin: 1,
			DecisionMax: 3,
			AttackRange: 2,
			DashChance:  0.15,
		},
		Match: MatchConfig{TickRate: 60, MaxFrameTicks: 5, Seed: 1, KOCreditTime: 8},
	}
}
