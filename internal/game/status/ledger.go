package status

import (
	"log/slog"
	"math"
	"slices"

	"github.com/smolyakoff/grognard/internal/config"
	"github.com/smolyakoff/grognard/internal/game/event"
	"github.com/smolyakoff/grognard/internal/model"
)

// EnergyPool is the external per-side resource collaborator. The battle
// layer provides it; energy-drain effects deduct through it.
type EnergyPool interface {
	// Drain removes up to amount from the side's pool and returns how
	// much was actually taken.
	Drain(t model.Team, amount int) int
}

// Ledger is the set of active status effect instances on one unit. It is
// exclusively owned and mutated by that unit's turn-processing path, so
// it carries no lock. At most one instance exists per kind; stackable
// kinds accumulate stacks inside their single instance.
//
// Iteration is always in ascending Kind order so event emission never
// depends on map ordering.
type Ledger struct {
	owner  *model.Unit
	cfg    *config.Combat
	bus    *event.Bus
	energy EnergyPool

	effects map[Kind]*Instance
}

// NewLedger creates an empty ledger for a unit. bus may be nil.
func NewLedger(owner *model.Unit, cfg *config.Combat, bus *event.Bus) *Ledger {
	return &Ledger{
		owner:   owner,
		cfg:     cfg,
		bus:     bus,
		effects: make(map[Kind]*Instance, 8),
	}
}

// SetEnergyPool wires the per-side energy collaborator. Without it,
// energy-drain effects are inert.
func (l *Ledger) SetEnergyPool(p EnergyPool) {
	l.energy = p
}

// Owner returns the unit this ledger belongs to.
func (l *Ledger) Owner() *model.Unit {
	return l.owner
}

// Has reports whether an instance of the kind is active.
func (l *Ledger) Has(k Kind) bool {
	_, ok := l.effects[k]
	return ok
}

// Get returns the active instance of the kind, or nil.
func (l *Ledger) Get(k Kind) *Instance {
	return l.effects[k]
}

// Len returns the number of active instances.
func (l *Ledger) Len() int {
	return len(l.effects)
}

// Active returns the active instances in ascending Kind order.
func (l *Ledger) Active() []*Instance {
	out := make([]*Instance, 0, len(l.effects))
	for _, k := range l.sortedKinds() {
		out = append(out, l.effects[k])
	}
	return out
}

// Apply adds an effect to the ledger, following the stacking rules:
//
//   - Stasis on the owner rejects every new effect.
//   - Heal Block rejects incoming buffs ("resisted").
//   - A stackable kind already present gains stacks and accumulates
//     magnitude instead of a second instance.
//   - A non-stackable kind already present is refreshed only when the new
//     duration is strictly greater, taking the max of values.
//
// Rejections are not errors: Apply returns false and emits EffectResisted,
// and the caller carries on.
func (l *Ledger) Apply(inst *Instance) bool {
	def := inst.Definition()

	if l.Has(Stasis) {
		l.bus.Emit(event.Event{Type: event.EffectResisted, UnitID: l.owner.ID, SourceID: inst.SourceID, Effect: inst.Name})
		return false
	}
	if !def.Debuff && l.Has(HealBlock) {
		l.bus.Emit(event.Event{Type: event.EffectResisted, UnitID: l.owner.ID, SourceID: inst.SourceID, Effect: inst.Name})
		return false
	}

	if existing, ok := l.effects[inst.Kind]; ok {
		if def.Stackable {
			existing.Stacks += inst.Stacks
			existing.Value1 += inst.Value1
			existing.Value2 += inst.Value2
			existing.Duration = max(existing.Duration, inst.Duration)
			existing.SourceID = inst.SourceID
			l.bus.Emit(event.Event{Type: event.EffectRefreshed, UnitID: l.owner.ID, SourceID: inst.SourceID, Effect: inst.Name, Amount: existing.Stacks})
			return true
		}
		if inst.Duration > existing.Duration {
			existing.Duration = inst.Duration
			existing.Value1 = max(existing.Value1, inst.Value1)
			existing.Value2 = max(existing.Value2, inst.Value2)
			l.bus.Emit(event.Event{Type: event.EffectRefreshed, UnitID: l.owner.ID, SourceID: inst.SourceID, Effect: inst.Name})
		}
		return true
	}

	l.effects[inst.Kind] = inst
	l.onInsert(inst)
	l.bus.Emit(event.Event{Type: event.EffectApplied, UnitID: l.owner.ID, SourceID: inst.SourceID, Effect: inst.Name, Amount: inst.Stacks})
	slog.Debug("effect applied", "unit", l.owner.Name, "effect", inst.Name, "duration", inst.Duration)
	return true
}

// Remove deletes an instance (explicit consumption or dispel). Returns
// false when the kind was not present.
func (l *Ledger) Remove(k Kind) bool {
	inst, ok := l.effects[k]
	if !ok {
		return false
	}
	delete(l.effects, k)
	l.onRemove(inst)
	l.bus.Emit(event.Event{Type: event.EffectRemoved, UnitID: l.owner.ID, Effect: inst.Name})
	return true
}

// OnTurnStart runs start-of-turn behavior for every active instance:
// trigger flags are cleared first, then kind behavior executes (DOT
// damage, regen, drains, aura pulses), then durations count down.
// Expired instances are collected and removed only after the full
// iteration; removal never mutates the ledger mid-iteration.
func (l *Ledger) OnTurnStart() {
	kinds := l.sortedKinds()

	for _, k := range kinds {
		l.effects[k].firedThisTurn = false
	}

	var expired []Kind
	for _, k := range kinds {
		inst := l.effects[k]
		l.turnStartBehavior(inst)
		if inst.Definition().Family == FamilyControl {
			continue // control durations tick at turn end
		}
		inst.Duration--
		if inst.Duration <= 0 {
			expired = append(expired, k)
		}
	}

	for _, k := range expired {
		l.expire(k)
	}
}

// OnTurnEnd counts down control effects (stun and friends). DOT and the
// other turn-start families do not re-tick here.
func (l *Ledger) OnTurnEnd() {
	var expired []Kind
	for _, k := range l.sortedKinds() {
		inst := l.effects[k]
		if inst.Definition().Family != FamilyControl {
			continue
		}
		inst.Duration--
		if inst.Duration <= 0 {
			expired = append(expired, k)
		}
	}
	for _, k := range expired {
		l.expire(k)
	}
}

// OnUnitMoved applies movement-triggered effects: bleed damage
// proportional to its stored value, and the one-shot movement trap that
// takes a share of CURRENT HP and is then consumed.
func (l *Ledger) OnUnitMoved() {
	if inst, ok := l.effects[Bleeding]; ok {
		l.damageHP(roundToInt(inst.Value1), inst.Name, inst.SourceID)
	}
	if inst, ok := l.effects[BearTrap]; ok {
		fraction := inst.Value1
		if fraction <= 0 {
			fraction = l.cfg.TrapHPPercent
		}
		l.damageHP(roundToInt(float64(l.owner.HP)*fraction), inst.Name, inst.SourceID)
		l.Remove(BearTrap)
	}
}

// OnHit runs reactive effects after an incoming attack's damage has been
// applied. It consumes Marked (one-shot, even if the hit killed the
// owner), burns a curse charge, spends a return-damage charge, tracks
// focus-fire stacks and fires once-per-turn reactions. Cross-unit
// consequences come back as follow-ups for the dispatcher.
func (l *Ledger) OnHit(attackerID uint32, rawDamage int) []FollowUp {
	var fups []FollowUp

	l.noteFocusHit(attackerID)

	if l.Has(Marked) {
		l.Remove(Marked)
	}

	if inst, ok := l.effects[Cursed]; ok {
		inst.Value2--
		if inst.Value2 <= 0 {
			l.Remove(Cursed)
		}
	}

	if inst, ok := l.effects[ReturnDamage]; ok && rawDamage > 0 {
		amount := roundToInt(float64(rawDamage) * l.cfg.ReflectFraction)
		fups = append(fups, FollowUp{Kind: FollowUpReflect, TargetID: attackerID, SourceID: l.owner.ID, Amount: amount})
		inst.Value2--
		if inst.Value2 <= 0 {
			l.Remove(ReturnDamage)
		}
	}

	if inst, ok := l.effects[ThornHide]; ok && rawDamage > 0 {
		fups = append(fups, FollowUp{Kind: FollowUpReflect, TargetID: attackerID, SourceID: l.owner.ID, Amount: roundToInt(inst.Value1)})
	}

	// Once-per-turn reactions gate on the trigger flag.
	for _, k := range []Kind{CounterStance, ParryStance, Vengeance} {
		if inst, ok := l.effects[k]; ok && !inst.firedThisTurn && l.owner.CanAct() {
			inst.firedThisTurn = true
			fups = append(fups, FollowUp{Kind: FollowUpCounter, TargetID: attackerID, SourceID: l.owner.ID})
		}
	}
	if inst, ok := l.effects[KnockbackOnHit]; ok && !inst.firedThisTurn {
		inst.firedThisTurn = true
		fups = append(fups, FollowUp{Kind: FollowUpKnockback, TargetID: attackerID, SourceID: l.owner.ID})
	}
	if inst, ok := l.effects[DrawOnHit]; ok && !inst.firedThisTurn {
		inst.firedThisTurn = true
		fups = append(fups, FollowUp{Kind: FollowUpDraw, TargetID: l.owner.ID, SourceID: l.owner.ID})
	}

	return fups
}

// FocusStacks returns the consecutive-hit count this attacker has built
// up on the owner. Hits from a different attacker reset the count.
func (l *Ledger) FocusStacks(attackerID uint32) int {
	inst, ok := l.effects[FocusFire]
	if !ok || inst.SourceID != attackerID {
		return 0
	}
	return inst.Stacks
}

// --- aggregate queries ---

// StatDelta returns the net flat modifier for a stat. By the stacking
// rule there is at most one boost and one cut instance per stat, so this
// is a fixed two-term lookup.
func (l *Ledger) StatDelta(stat string) int {
	pair, ok := statModKinds[stat]
	if !ok {
		return 0
	}
	delta := 0
	if inst, ok := l.effects[pair[0]]; ok {
		delta += roundToInt(inst.Value1)
	}
	if inst, ok := l.effects[pair[1]]; ok {
		delta -= roundToInt(inst.Value1)
	}
	return delta
}

// EffectiveStat returns base stat plus ledger modifiers, floored at 0.
func (l *Ledger) EffectiveStat(stat string) int {
	v := l.owner.Stat(stat) + l.StatDelta(stat)
	if v < 0 {
		v = 0
	}
	return v
}

// SurrenderThreshold returns the morale level below which the owner
// surrenders, including threshold-shifting effects. Buffs lower the
// threshold, debuffs raise it.
func (l *Ledger) SurrenderThreshold() int {
	t := l.cfg.SurrenderThreshold
	for _, k := range []Kind{Fearless, IronWill} {
		if inst, ok := l.effects[k]; ok {
			t -= roundToInt(inst.Value1)
		}
	}
	for _, k := range []Kind{Shaken, Craven} {
		if inst, ok := l.effects[k]; ok {
			t += roundToInt(inst.Value1)
		}
	}
	if t < 0 {
		t = 0
	}
	return t
}

// IsCursed reports whether incoming damage gets the curse multiplier.
func (l *Ledger) IsCursed() bool { return l.Has(Cursed) }

// IsExposed reports whether incoming damage gets the exposed multiplier.
func (l *Ledger) IsExposed() bool { return l.Has(Exposed) }

// AttackScale returns the multiplier outgoing base damage picks up from
// the owner's damage-modifier effects. Value1 holds the fraction
// (0.2 = ±20%).
func (l *Ledger) AttackScale(melee bool) float64 {
	scale := 1.0
	add := func(k Kind, sign float64) {
		if inst, ok := l.effects[k]; ok {
			scale += sign * inst.Value1
		}
	}
	add(Empowered, 1)
	add(Weakened, -1)
	if melee {
		add(SharpenedBlades, 1)
		add(DulledBlades, -1)
	} else {
		add(SteadyHands, 1)
		add(ShakyHands, -1)
	}
	if scale < 0 {
		scale = 0
	}
	return scale
}

// DefenseScale returns the multiplier incoming HP damage picks up from
// the owner's protective and brittle effects.
func (l *Ledger) DefenseScale() float64 {
	scale := 1.0
	if inst, ok := l.effects[StoneSkin]; ok {
		scale -= inst.Value1
	}
	if inst, ok := l.effects[IronWard]; ok {
		scale -= inst.Value1
	}
	if inst, ok := l.effects[Brittle]; ok {
		scale += inst.Value1
	}
	if inst, ok := l.effects[AshHex]; ok {
		scale += inst.Value1
	}
	if scale < 0 {
		scale = 0
	}
	return scale
}

// CanBePrimaryTarget reports whether the owner may be chosen as the
// primary target of an attack or ability.
func (l *Ledger) CanBePrimaryTarget() bool {
	if l.owner.Surrendered {
		return false
	}
	return !l.Has(Untargetable) && !l.Has(Stealth)
}

// IsTaunting reports whether attackers must prefer the owner.
func (l *Ledger) IsTaunting() bool { return l.Has(Taunting) }

// MoveBlocked reports whether movement restrictions pin the owner.
func (l *Ledger) MoveBlocked() bool {
	return l.Has(Rooted) || l.Has(Snared)
}

// CardDrawDelta returns the net change to cards drawn per turn.
func (l *Ledger) CardDrawDelta() int {
	d := 0
	if inst, ok := l.effects[ExtraCard]; ok {
		d += roundToInt(inst.Value1)
	}
	if inst, ok := l.effects[CardLock]; ok {
		d -= roundToInt(inst.Value1)
	}
	return d
}

// ArrowCostDelta returns the net change to the arrow cost of ranged
// attacks, floored so a blessing can make shots free but never generate
// arrows.
func (l *Ledger) ArrowCostDelta() int {
	d := 0
	if inst, ok := l.effects[QuiverCurse]; ok {
		d += roundToInt(inst.Value1)
	}
	if inst, ok := l.effects[QuiverBlessing]; ok {
		d -= roundToInt(inst.Value1)
	}
	return d
}

// EnergyCostDelta returns the net change to ability energy costs.
func (l *Ledger) EnergyCostDelta() int {
	d := 0
	if inst, ok := l.effects[CostlyShots]; ok {
		d += roundToInt(inst.Value1)
	}
	if inst, ok := l.effects[CheapShots]; ok {
		d -= roundToInt(inst.Value1)
	}
	return d
}

// RelicCharges returns accumulated relic charge stacks.
func (l *Ledger) RelicCharges() int {
	if inst, ok := l.effects[RelicCharge]; ok {
		return inst.Stacks
	}
	return 0
}

// --- internals ---

// turnStartBehavior executes the kind-specific start-of-turn work.
func (l *Ledger) turnStartBehavior(inst *Instance) {
	def := inst.Definition()
	switch def.Family {
	case FamilyDOT:
		l.damageHP(roundToInt(inst.Value1), inst.Name, inst.SourceID)

	case FamilyRegen:
		if l.Has(HealBlock) {
			slog.Debug("regen blocked", "unit", l.owner.Name, "effect", inst.Name)
			return
		}
		l.restore(def.Resource, roundToInt(inst.Value1), inst.Name)

	case FamilyDrain:
		l.drain(def.Resource, inst)

	case FamilyAura:
		amount := roundToInt(inst.Value1)
		if def.Debuff {
			switch def.Resource {
			case "hp":
				l.damageHP(amount, inst.Name, inst.SourceID)
			case "morale":
				l.damageMorale(amount, inst.Name, inst.SourceID)
			}
			return
		}
		if l.Has(HealBlock) {
			return
		}
		l.restore(def.Resource, amount, inst.Name)
	}
}

// drain applies a resource-drain tick.
func (l *Ledger) drain(resource string, inst *Instance) {
	amount := roundToInt(inst.Value1)
	if amount <= 0 {
		return
	}
	switch resource {
	case "energy":
		if l.energy == nil {
			return
		}
		got := l.energy.Drain(l.owner.Team, amount)
		l.bus.Emit(event.Event{Type: event.EnergyDrained, UnitID: l.owner.ID, SourceID: inst.SourceID, Effect: inst.Name, Amount: got})
	case "buzz":
		if inst.Definition().Debuff {
			l.owner.AddBuzz(amount)
		} else {
			l.owner.ReduceBuzz(amount)
		}
	case "arrows":
		if l.owner.Arrows < amount {
			amount = l.owner.Arrows
		}
		l.owner.Arrows -= amount
	case "morale":
		l.damageMorale(amount, inst.Name, inst.SourceID)
	}
}

// restore heals the named pool, emitting the matching event.
func (l *Ledger) restore(resource string, amount int, cause string) {
	switch resource {
	case "hp":
		if healed := l.owner.HealHP(amount); healed > 0 {
			l.bus.Emit(event.Event{Type: event.Healed, UnitID: l.owner.ID, Effect: cause, Amount: healed})
		}
	case "morale":
		if healed := l.owner.HealMorale(amount); healed > 0 {
			l.bus.Emit(event.Event{Type: event.MoraleHealed, UnitID: l.owner.ID, Effect: cause, Amount: healed})
		}
	}
}

// damageHP applies raw HP damage from an effect, with death notification.
func (l *Ledger) damageHP(amount int, cause string, sourceID uint32) {
	if amount <= 0 || l.owner.IsDead() {
		return
	}
	lost := l.owner.ReduceHP(amount)
	l.bus.Emit(event.Event{Type: event.DamageDealt, UnitID: l.owner.ID, SourceID: sourceID, Effect: cause, Amount: lost})
	if l.owner.IsDead() {
		l.bus.Emit(event.Event{Type: event.UnitDied, UnitID: l.owner.ID, SourceID: sourceID, Effect: cause})
	}
}

// damageMorale applies raw morale damage and runs the surrender check
// against the modifier-adjusted threshold.
func (l *Ledger) damageMorale(amount int, cause string, sourceID uint32) {
	if amount <= 0 || !l.owner.InPlay() {
		return
	}
	lost := l.owner.ReduceMorale(amount)
	l.bus.Emit(event.Event{Type: event.MoraleDamage, UnitID: l.owner.ID, SourceID: sourceID, Effect: cause, Amount: lost})
	l.CheckSurrender()
}

// CheckSurrender flips the owner into the surrendered state when morale
// is below the threshold. The transition is irreversible.
func (l *Ledger) CheckSurrender() {
	if l.owner.Surrendered || l.owner.IsDead() {
		return
	}
	if l.owner.Morale < l.SurrenderThreshold() {
		l.owner.MarkSurrendered()
		l.bus.Emit(event.Event{Type: event.UnitSurrendered, UnitID: l.owner.ID})
		slog.Debug("unit surrendered", "unit", l.owner.Name, "morale", l.owner.Morale)
	}
}

// noteFocusHit updates the consecutive-hit tracker. A hit from a new
// attacker resets the stack to one.
func (l *Ledger) noteFocusHit(attackerID uint32) {
	if inst, ok := l.effects[FocusFire]; ok && inst.SourceID == attackerID {
		inst.Stacks++
		inst.Duration = 2
		return
	}
	l.effects[FocusFire] = New(FocusFire, 2, 0, 0, attackerID)
}

// expire removes an instance whose duration ran out.
func (l *Ledger) expire(k Kind) {
	inst, ok := l.effects[k]
	if !ok {
		return
	}
	delete(l.effects, k)
	l.onRemove(inst)
	l.bus.Emit(event.Event{Type: event.EffectExpired, UnitID: l.owner.ID, Effect: inst.Name})
	slog.Debug("effect expired", "unit", l.owner.Name, "effect", inst.Name)
}

// onInsert performs apply-time side effects.
func (l *Ledger) onInsert(inst *Instance) {
	switch inst.Kind {
	case Stun:
		l.owner.Stunned = true
	case Rooted, Snared:
		l.owner.Trapped = true
	}
}

// onRemove clears unit flags that were set at apply time. Flags are
// recomputed from what remains so overlapping effects stay correct.
func (l *Ledger) onRemove(inst *Instance) {
	switch inst.Kind {
	case Stun:
		l.owner.Stunned = l.Has(Stun)
	case Rooted, Snared:
		l.owner.Trapped = l.Has(Rooted) || l.Has(Snared)
	}
}

func (l *Ledger) sortedKinds() []Kind {
	kinds := make([]Kind, 0, len(l.effects))
	for k := range l.effects {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}

func roundToInt(v float64) int {
	return int(math.Round(v))
}
