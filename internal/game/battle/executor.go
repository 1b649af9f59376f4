package battle

import (
	"github.com/smolyakoff/grognard/internal/game/event"
	"github.com/smolyakoff/grognard/internal/game/status"
	"github.com/smolyakoff/grognard/internal/model"
)

// Terrain reports position-derived combat modifiers. The engine never
// inspects the map itself; whoever owns unit positions implements this.
type Terrain interface {
	HasCover(u *model.Unit) bool
	StandingBonus(u *model.Unit) int
}

// flatTerrain is the no-map default: nobody has cover, nobody gets a
// standing bonus.
type flatTerrain struct{}

func (flatTerrain) HasCover(*model.Unit) bool     { return false }
func (flatTerrain) StandingBonus(*model.Unit) int { return 0 }

// EffectAction selects what an effect descriptor does when executed.
type EffectAction uint8

const (
	ActionDamage EffectAction = iota
	ActionApplyStatus
	ActionHeal
)

// StatusSpec is the status half of an effect descriptor. Zero Value1 or
// Value2 means "use the configured default" for kinds that have one
// (curse charges, trap percentage).
type StatusSpec struct {
	Kind     status.Kind
	Duration int
	Value1   float64
	Value2   float64
}

// EffectDescriptor is the data-driven description of one ability or
// relic effect. The engine interprets it; the catalog of descriptors is
// content, loaded elsewhere.
type EffectDescriptor struct {
	Name       string
	EnergyCost int
	Action     EffectAction

	// ActionDamage
	BaseDamage float64
	Melee      bool

	// ActionApplyStatus
	Status *StatusSpec

	// ActionHeal
	HealHP     int
	HealMorale int

	// TeamWide applies the effect to every in-play unit on the
	// target's side instead of the single target.
	TeamWide bool
}

// EffectExecutor applies one effect descriptor from a caster onto a
// target. Kept as an interface so scripted scenarios and tests can
// substitute their own execution.
type EffectExecutor interface {
	Execute(casterID, targetID uint32, d EffectDescriptor) error
}

// Executor is the default EffectExecutor, driving the damage calculator
// and status ledgers directly on a battle.
type Executor struct {
	b       *Battle
	terrain Terrain
}

// NewExecutor builds the default executor. A nil terrain means open
// ground: no cover, no standing bonuses.
func NewExecutor(b *Battle, terrain Terrain) *Executor {
	if terrain == nil {
		terrain = flatTerrain{}
	}
	return &Executor{b: b, terrain: terrain}
}

// Execute pays the energy cost, resolves targets and applies the
// descriptor. Energy is refunded when the target turns out invalid, so
// a rejected action leaves the pool untouched.
func (e *Executor) Execute(casterID, targetID uint32, d EffectDescriptor) error {
	b := e.b
	if b.Ended() {
		return ErrBattleOver
	}
	caster := b.Unit(casterID)
	if caster == nil || !caster.CanAct() {
		return ErrCannotAct
	}

	cost := d.EnergyCost + b.ledgers[casterID].EnergyCostDelta()
	if cost < 0 {
		cost = 0
	}
	if !b.energy.TrySpend(caster.Team, cost) {
		return ErrNotEnoughEnergy
	}

	targets, err := e.resolveTargets(d, targetID)
	if err != nil {
		b.energy.Refund(caster.Team, cost)
		return err
	}

	for _, tgt := range targets {
		e.applyTo(caster, tgt, d)
		if b.Ended() {
			break
		}
	}
	caster.HasActed = true
	return nil
}

// resolveTargets expands TeamWide descriptors over the target's side and
// validates that at least the named target can be affected. Hostile
// effects respect primary-targeting rules; friendly ones only need the
// unit in play.
func (e *Executor) resolveTargets(d EffectDescriptor, targetID uint32) ([]*model.Unit, error) {
	b := e.b
	tgt := b.Unit(targetID)
	if tgt == nil || tgt.IsDead() {
		return nil, ErrInvalidTarget
	}
	if e.hostile(d) && !b.ledgers[targetID].CanBePrimaryTarget() {
		return nil, ErrInvalidTarget
	}
	if !d.TeamWide {
		if !tgt.InPlay() {
			return nil, ErrInvalidTarget
		}
		return []*model.Unit{tgt}, nil
	}
	targets := b.UnitsOn(tgt.Team)
	if len(targets) == 0 {
		return nil, ErrInvalidTarget
	}
	return targets, nil
}

func (e *Executor) hostile(d EffectDescriptor) bool {
	switch d.Action {
	case ActionDamage:
		return true
	case ActionApplyStatus:
		return d.Status != nil && status.Lookup(d.Status.Kind).Debuff
	default:
		return false
	}
}

func (e *Executor) applyTo(caster, tgt *model.Unit, d EffectDescriptor) {
	b := e.b
	switch d.Action {
	case ActionDamage:
		flat := e.terrain.StandingBonus(caster)
		b.resolveDamage(caster, tgt, d.BaseDamage*b.ledgers[caster.ID].AttackScale(d.Melee), d.Melee, e.terrain.HasCover(tgt), flat, 0)

	case ActionApplyStatus:
		if d.Status == nil {
			return
		}
		b.ledgers[tgt.ID].Apply(e.buildInstance(caster, *d.Status))

	case ActionHeal:
		e.heal(caster, tgt, d)
	}
}

// buildInstance turns a status spec into an instance, filling configured
// defaults for kinds whose magnitude is a tuning constant rather than
// per-effect content.
func (e *Executor) buildInstance(caster *model.Unit, s StatusSpec) *status.Instance {
	v1, v2 := s.Value1, s.Value2
	switch s.Kind {
	case status.Cursed:
		if v2 == 0 {
			v2 = float64(e.b.cfg.CurseCharges)
		}
	case status.BearTrap:
		if v1 == 0 {
			v1 = e.b.cfg.TrapHPPercent
		}
	}
	return status.New(s.Kind, s.Duration, v1, v2, caster.ID)
}

// heal restores HP and/or morale. A heal-blocked unit rejects the HP
// portion the same way its ledger rejects incoming buffs; morale
// restoration is unaffected.
func (e *Executor) heal(caster, tgt *model.Unit, d EffectDescriptor) {
	b := e.b
	if d.HealHP > 0 {
		if b.ledgers[tgt.ID].Has(status.HealBlock) {
			b.bus.Emit(event.Event{Type: event.EffectResisted, UnitID: tgt.ID, SourceID: caster.ID, Effect: d.Name, Round: b.round})
		} else if healed := tgt.HealHP(d.HealHP); healed > 0 {
			b.bus.Emit(event.Event{Type: event.Healed, UnitID: tgt.ID, SourceID: caster.ID, Amount: healed, Round: b.round})
		}
	}
	if d.HealMorale > 0 {
		if restored := tgt.HealMorale(d.HealMorale); restored > 0 {
			b.bus.Emit(event.Event{Type: event.MoraleHealed, UnitID: tgt.ID, SourceID: caster.ID, Amount: restored, Round: b.round})
		}
	}
}
