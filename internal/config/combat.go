package config

import "fmt"

// Combat holds every tunable constant of the combat resolution core.
// Constructed once at battle start and passed by reference into the
// damage calculator and status ledgers. No hidden global state, so tests
// can run with alternate tunings.
type Combat struct {
	// Damage pipeline.
	CoverReduction        float64 `yaml:"cover_reduction"`         // subtracted from the 1.0 base multiplier
	RangedHPMultiplier    float64 `yaml:"ranged_hp_multiplier"`    // HP side: ranged bonus
	MeleeMoraleMultiplier float64 `yaml:"melee_morale_multiplier"` // morale side: melee bonus (inverted from HP side)
	CurseMultiplier       float64 `yaml:"curse_multiplier"`
	CurseCharges          int     `yaml:"curse_charges"`
	ExposedMultiplier     float64 `yaml:"exposed_multiplier"`

	// Additive morale bonus per consecutive-hit stack count. Indexed by
	// focus-fire stacks, clamped to the last entry.
	FocusFireTable []float64 `yaml:"focus_fire_table"`

	// Base damage derivation.
	MeleeBaseFloor  int     `yaml:"melee_base_floor"`
	MeleeScaling    float64 `yaml:"melee_scaling"`
	RangedBaseFloor int     `yaml:"ranged_base_floor"`
	RangedScaling   float64 `yaml:"ranged_scaling"`
	DrunkPenalty    float64 `yaml:"drunk_penalty"` // applied when Buzz is at cap

	// Morale economy.
	SurrenderThreshold int `yaml:"surrender_threshold"`

	// Action economy.
	EnergyPerTurn int `yaml:"energy_per_turn"`

	// Initiative.
	PlayerWinsTies   bool    `yaml:"player_wins_ties"`
	FirstActionRate  float64 `yaml:"first_action_rate"`
	FirstActionCap   int     `yaml:"first_action_cap"`

	// Reactive effects.
	ReflectFraction float64 `yaml:"reflect_fraction"` // share of raw damage returned
	TrapHPPercent   float64 `yaml:"trap_hp_percent"`  // share of CURRENT HP a movement trap deals
}

// DefaultCombat returns the stock tuning.
func DefaultCombat() Combat {
	return Combat{
		CoverReduction:        0.10,
		RangedHPMultiplier:    1.1,
		MeleeMoraleMultiplier: 1.1,
		CurseMultiplier:       1.25,
		CurseCharges:          3,
		ExposedMultiplier:     1.3,
		FocusFireTable:        []float64{0, 0, 0.10, 0.25, 0.45, 0.65},
		MeleeBaseFloor:        10,
		MeleeScaling:          0.1,
		RangedBaseFloor:       8,
		RangedScaling:         0.1,
		DrunkPenalty:          0.7,
		SurrenderThreshold:    20,
		EnergyPerTurn:         3,
		PlayerWinsTies:        true,
		FirstActionRate:       0.5,
		FirstActionCap:        5,
		ReflectFraction:       0.5,
		TrapHPPercent:         0.15,
	}
}

// Validate rejects tunings the engine cannot run with. A broken table here
// is a deployment error, not a runtime condition.
func (c Combat) Validate() error {
	if len(c.FocusFireTable) == 0 {
		return fmt.Errorf("focus_fire_table must not be empty")
	}
	if c.CoverReduction < 0 || c.CoverReduction >= 1 {
		return fmt.Errorf("cover_reduction %v out of range [0,1)", c.CoverReduction)
	}
	if c.CurseCharges < 1 {
		return fmt.Errorf("curse_charges must be at least 1")
	}
	if c.SurrenderThreshold < 0 {
		return fmt.Errorf("surrender_threshold must not be negative")
	}
	return nil
}

// FocusFireBonus returns the additive morale bonus for the given
// consecutive-hit stack count, clamped to the table.
func (c Combat) FocusFireBonus(stacks int) float64 {
	if stacks < 0 {
		stacks = 0
	}
	if stacks >= len(c.FocusFireTable) {
		stacks = len(c.FocusFireTable) - 1
	}
	return c.FocusFireTable[stacks]
}
