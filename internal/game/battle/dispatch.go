package battle

import (
	"log/slog"

	"github.com/smolyakoff/grognard/internal/game/combat"
	"github.com/smolyakoff/grognard/internal/game/event"
	"github.com/smolyakoff/grognard/internal/game/status"
)

// applyFollowUps dispatches cross-unit reactions returned by a ledger's
// OnHit. Each follow-up is an explicit call into the referenced unit's
// public state, never a lookup through shared globals, so ordering is
// exactly the slice order the reacting ledger produced.
func (b *Battle) applyFollowUps(fups []status.FollowUp) {
	for _, f := range fups {
		switch f.Kind {
		case status.FollowUpReflect:
			b.applyReflect(f)
		case status.FollowUpCounter:
			b.applyCounter(f)
		case status.FollowUpKnockback:
			b.bus.Emit(event.Event{Type: event.UnitKnockedBack, UnitID: f.TargetID, SourceID: f.SourceID, Round: b.round})
		case status.FollowUpDraw:
			b.bus.Emit(event.Event{Type: event.CardDrawn, UnitID: f.TargetID, Round: b.round})
		}
	}
}

// applyReflect bounces damage back at the original attacker as raw HP
// damage: reflected damage does not re-trigger the attacker's own
// reactive effects, or two mirrored units would ping-pong forever.
func (b *Battle) applyReflect(f status.FollowUp) {
	victim := b.Unit(f.TargetID)
	if victim == nil || victim.IsDead() || f.Amount <= 0 {
		return
	}
	lost := victim.ReduceHP(f.Amount)
	b.bus.Emit(event.Event{Type: event.DamageDealt, UnitID: victim.ID, SourceID: f.SourceID, Effect: "reflect", Amount: lost, Round: b.round})
	if victim.IsDead() {
		b.bus.Emit(event.Event{Type: event.UnitDied, UnitID: victim.ID, SourceID: f.SourceID, Round: b.round})
	}
	b.CheckEnd()
}

// applyCounter performs the reacting unit's counter-attack: a plain
// melee swing that, like reflects, does not trigger the victim's
// reactive effects.
func (b *Battle) applyCounter(f status.FollowUp) {
	striker := b.Unit(f.SourceID)
	victim := b.Unit(f.TargetID)
	if striker == nil || !striker.CanAct() || victim == nil || victim.IsDead() {
		return
	}

	base := float64(combat.MeleeBaseDamage(b.cfg, striker)) * b.ledgers[striker.ID].AttackScale(true)
	out := combat.Calculate(b.cfg, combat.Input{
		BaseDamage: base,
		Melee:      true,
		Target:     b.ledgers[victim.ID],
	})

	lost := victim.ReduceHP(out.HP)
	b.bus.Emit(event.Event{Type: event.DamageDealt, UnitID: victim.ID, SourceID: striker.ID, Effect: "counter", Amount: lost, Round: b.round, Detail: out.Breakdown})
	if victim.IsDead() {
		b.bus.Emit(event.Event{Type: event.UnitDied, UnitID: victim.ID, SourceID: striker.ID, Round: b.round})
	}

	moraleLost := victim.ReduceMorale(out.Morale)
	if moraleLost != 0 {
		b.bus.Emit(event.Event{Type: event.MoraleDamage, UnitID: victim.ID, SourceID: striker.ID, Amount: moraleLost, Round: b.round})
	}
	if !victim.IsDead() {
		b.ledgers[victim.ID].CheckSurrender()
	}

	slog.Debug("counter attack", "striker", striker.Name, "victim", victim.Name, "damage", lost)
	b.CheckEnd()
}
