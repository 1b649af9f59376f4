// Package combat holds the pure numeric core: damage calculation, base
// damage derivation and initiative resolution. Nothing here mutates game
// state, so every function is safe to call speculatively for UI preview.
package combat

import (
	"fmt"
	"math"
	"strings"

	"github.com/smolyakoff/grognard/internal/config"
	"github.com/smolyakoff/grognard/internal/game/status"
	"github.com/smolyakoff/grognard/internal/model"
)

// Input carries everything Calculate needs. Target may be nil for a unit
// with an empty ledger. FocusStacks is the consecutive-hit count the
// attacker has built on the target BEFORE this hit (the caller reads it
// from the target's ledger).
type Input struct {
	BaseDamage  float64
	Melee       bool
	FocusStacks int
	HasCover    bool
	Target      *status.Ledger
	FlatHP      int
	FlatMorale  int
}

// Output is the computed result plus a human-readable breakdown for
// combat-log and preview UI.
type Output struct {
	HP        int
	Morale    int
	Breakdown string
}

// Calculate turns base damage into final HP and morale deltas.
//
// HP-side multipliers apply in a fixed order: cover reduction off the 1.0
// base, ranged type bonus, curse, exposed, mark empowerment, then the
// target's defensive scale. Morale-side accumulates
// independently from the same base: cover, melee type bonus (inverted
// from the HP side), additive focus-fire bonus, exposed. Each side is
// rounded half-away-from-zero exactly once, then flat bonuses are added
// as integers; flat bonuses never see a multiplier.
func Calculate(cfg *config.Combat, in Input) Output {
	var b strings.Builder
	fmt.Fprintf(&b, "base %.0f", in.BaseDamage)

	hpMult := 1.0
	moraleMult := 1.0

	if in.HasCover {
		hpMult -= cfg.CoverReduction
		moraleMult -= cfg.CoverReduction
		fmt.Fprintf(&b, ", cover -%.0f%%", cfg.CoverReduction*100)
	}

	if in.Melee {
		moraleMult *= cfg.MeleeMoraleMultiplier
		fmt.Fprintf(&b, ", melee morale x%.2f", cfg.MeleeMoraleMultiplier)
	} else {
		hpMult *= cfg.RangedHPMultiplier
		fmt.Fprintf(&b, ", ranged x%.2f", cfg.RangedHPMultiplier)
	}

	if in.Target != nil && in.Target.IsCursed() {
		hpMult *= cfg.CurseMultiplier
		fmt.Fprintf(&b, ", curse x%.2f", cfg.CurseMultiplier)
	}

	if bonus := cfg.FocusFireBonus(in.FocusStacks); bonus > 0 {
		moraleMult += bonus
		fmt.Fprintf(&b, ", focus +%.0f%%", bonus*100)
	}

	if in.Target != nil && in.Target.IsExposed() {
		hpMult *= cfg.ExposedMultiplier
		moraleMult *= cfg.ExposedMultiplier
		fmt.Fprintf(&b, ", exposed x%.2f", cfg.ExposedMultiplier)
	}

	if in.Target != nil {
		// A mark empowers the hit that consumes it.
		if mark := in.Target.Get(status.Marked); mark != nil && mark.Value1 > 0 {
			hpMult *= 1 + mark.Value1
			fmt.Fprintf(&b, ", marked x%.2f", 1+mark.Value1)
		}
		// Protective/brittle effects scale the HP side only.
		if ds := in.Target.DefenseScale(); ds != 1 {
			hpMult *= ds
			fmt.Fprintf(&b, ", defense x%.2f", ds)
		}
	}

	hp := RoundToInt(in.BaseDamage*hpMult) + in.FlatHP
	morale := RoundToInt(in.BaseDamage*moraleMult) + in.FlatMorale

	if in.FlatHP != 0 {
		fmt.Fprintf(&b, ", +%d flat", in.FlatHP)
	}
	if in.FlatMorale != 0 {
		fmt.Fprintf(&b, ", +%d flat morale", in.FlatMorale)
	}
	fmt.Fprintf(&b, " => %d hp, %d morale", hp, morale)

	return Output{HP: hp, Morale: morale, Breakdown: b.String()}
}

// MeleeBaseDamage derives the base damage of a melee attack from the
// attacker's Power. A unit with Buzz at cap swings drunk and takes the
// penalty multiplier.
func MeleeBaseDamage(cfg *config.Combat, u *model.Unit) int {
	base := cfg.MeleeBaseFloor + RoundToInt(float64(u.Stats.Power)*cfg.MeleeScaling)
	if u.IsDrunk() {
		base = RoundToInt(float64(base) * cfg.DrunkPenalty)
	}
	return base
}

// RangedBaseDamage derives the base damage of a ranged attack from Aim.
func RangedBaseDamage(cfg *config.Combat, u *model.Unit) int {
	base := cfg.RangedBaseFloor + RoundToInt(float64(u.Stats.Aim)*cfg.RangedScaling)
	if u.IsDrunk() {
		base = RoundToInt(float64(base) * cfg.DrunkPenalty)
	}
	return base
}

// RoundToInt rounds half away from zero. The damage pipeline rounds at a
// single point per side, never twice.
func RoundToInt(v float64) int {
	return int(math.Round(v))
}
