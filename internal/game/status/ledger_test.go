package status

import (
	"testing"

	"github.com/smolyakoff/grognard/internal/config"
	"github.com/smolyakoff/grognard/internal/game/event"
	"github.com/smolyakoff/grognard/internal/model"
)

type capture struct {
	events []event.Event
}

func (c *capture) record(e event.Event) {
	c.events = append(c.events, e)
}

func (c *capture) count(t event.Type) int {
	n := 0
	for _, e := range c.events {
		if e.Type == t {
			n++
		}
	}
	return n
}

func (c *capture) last(t event.Type) (event.Event, bool) {
	for i := len(c.events) - 1; i >= 0; i-- {
		if c.events[i].Type == t {
			return c.events[i], true
		}
	}
	return event.Event{}, false
}

func newTestLedger(t *testing.T) (*Ledger, *model.Unit, *capture) {
	t.Helper()
	u := model.NewUnit(7, "Gunner", model.TeamPlayer, model.Stats{Power: 20, Aim: 20, Speed: 10}, 100, 80, 10, 12)
	cfg := config.DefaultCombat()
	cap := &capture{}
	bus := event.NewBus()
	bus.Subscribe(cap.record)
	return NewLedger(u, &cfg, bus), u, cap
}

func TestApply_StackableAccumulates(t *testing.T) {
	l, _, cap := newTestLedger(t)

	for i := 0; i < 3; i++ {
		l.Apply(New(Poisoned, 3, 3, 0, 2))
	}

	inst := l.Get(Poisoned)
	if inst == nil {
		t.Fatal("Poisoned not present")
	}
	if inst.Stacks != 3 || inst.Value1 != 9 {
		t.Errorf("stacks=%d value1=%.0f, want 3 stacks totalling 9", inst.Stacks, inst.Value1)
	}
	if l.Len() != 1 {
		t.Errorf("ledger has %d instances, want exactly one per kind", l.Len())
	}
	if cap.count(event.EffectApplied) != 1 || cap.count(event.EffectRefreshed) != 2 {
		t.Errorf("want 1 applied + 2 refreshed, got %d/%d",
			cap.count(event.EffectApplied), cap.count(event.EffectRefreshed))
	}
}

func TestApply_NonStackableRefreshRules(t *testing.T) {
	l, _, _ := newTestLedger(t)

	l.Apply(New(Burning, 3, 5, 0, 2))

	// Shorter or equal duration: no change, even with a bigger value.
	l.Apply(New(Burning, 2, 9, 0, 2))
	inst := l.Get(Burning)
	if inst.Duration != 3 || inst.Value1 != 5 {
		t.Errorf("shorter reapply changed instance: dur=%d v1=%.0f", inst.Duration, inst.Value1)
	}

	// Strictly longer duration refreshes, keeping the max value.
	l.Apply(New(Burning, 5, 2, 0, 2))
	if inst.Duration != 5 || inst.Value1 != 5 {
		t.Errorf("longer reapply: dur=%d v1=%.0f, want 5 and 5", inst.Duration, inst.Value1)
	}
}

func TestApply_StasisRejectsEverything(t *testing.T) {
	l, _, cap := newTestLedger(t)
	l.Apply(New(Stasis, 2, 0, 0, 2))

	if l.Apply(New(Burning, 3, 5, 0, 2)) {
		t.Error("stasis should reject a debuff")
	}
	if l.Apply(New(Regeneration, 3, 5, 0, 2)) {
		t.Error("stasis should reject a buff")
	}
	if cap.count(event.EffectResisted) != 2 {
		t.Errorf("want 2 resisted events, got %d", cap.count(event.EffectResisted))
	}
}

func TestApply_HealBlockRejectsBuffsOnly(t *testing.T) {
	l, _, _ := newTestLedger(t)
	l.Apply(New(HealBlock, 2, 0, 0, 2))

	if l.Apply(New(Regeneration, 3, 5, 0, 2)) {
		t.Error("heal block should reject an incoming buff")
	}
	if !l.Apply(New(Burning, 3, 5, 0, 2)) {
		t.Error("heal block must not reject debuffs")
	}
}

func TestOnTurnStart_DOTTicksAndExpiresAfterIteration(t *testing.T) {
	l, u, cap := newTestLedger(t)
	l.Apply(New(Burning, 1, 6, 0, 2))

	l.OnTurnStart()

	if u.HP != 94 {
		t.Errorf("HP = %d, want 94 after one burn tick", u.HP)
	}
	if l.Has(Burning) {
		t.Error("duration 1 should expire after its final tick")
	}
	// The final tick lands before the expiry notification.
	var sawDamage bool
	for _, e := range cap.events {
		switch e.Type {
		case event.DamageDealt:
			sawDamage = true
		case event.EffectExpired:
			if !sawDamage {
				t.Error("expiry emitted before the final tick")
			}
		}
	}
}

func TestOnTurnStart_RegenBlockedByHealBlock(t *testing.T) {
	l, u, _ := newTestLedger(t)
	u.ReduceHP(50)
	l.Apply(New(Regeneration, 3, 10, 0, 7))
	l.Apply(New(Burning, 3, 0, 0, 2)) // placeholder debuff to keep order interesting
	l.Apply(New(HealBlock, 2, 0, 0, 2))

	l.OnTurnStart()
	if u.HP != 50 {
		t.Errorf("HP = %d, want 50 (regen suppressed)", u.HP)
	}
}

func TestControlEffects_TickAtTurnEndOnly(t *testing.T) {
	l, u, _ := newTestLedger(t)
	l.Apply(New(Stun, 1, 0, 0, 2))
	if !u.Stunned {
		t.Fatal("applying stun should set the flag")
	}

	l.OnTurnStart()
	if !l.Has(Stun) {
		t.Fatal("stun must survive turn start")
	}

	l.OnTurnEnd()
	if l.Has(Stun) {
		t.Error("stun should expire at turn end")
	}
	if u.Stunned {
		t.Error("flag should clear with the effect")
	}
}

func TestOnUnitMoved_BleedAndTrap(t *testing.T) {
	l, u, _ := newTestLedger(t)
	l.Apply(New(Bleeding, 3, 4, 0, 2))
	l.Apply(New(BearTrap, 5, 0, 0, 2)) // zero fraction falls back to config

	l.OnUnitMoved()

	// 100 - 4 bleed = 96, then trap takes 15% of current: round(96*0.15)=14.
	if u.HP != 82 {
		t.Errorf("HP = %d, want 82", u.HP)
	}
	if l.Has(BearTrap) {
		t.Error("trap is one-shot and must be consumed")
	}
	if !l.Has(Bleeding) {
		t.Error("bleeding persists across movement")
	}
}

func TestOnHit_MarkConsumedEvenOnKill(t *testing.T) {
	l, u, _ := newTestLedger(t)
	l.Apply(New(Marked, 3, 0.5, 0, 2))

	u.ReduceHP(100)
	l.OnHit(2, 40)

	if l.Has(Marked) {
		t.Error("mark must be consumed even when the hit killed the owner")
	}
}

func TestOnHit_CurseCharges(t *testing.T) {
	l, _, _ := newTestLedger(t)
	l.Apply(New(Cursed, 10, 0, 3, 2))

	l.OnHit(2, 10)
	l.OnHit(2, 10)
	if !l.Has(Cursed) {
		t.Fatal("curse should survive two of three charges")
	}
	l.OnHit(2, 10)
	if l.Has(Cursed) {
		t.Error("curse should be removed on the last charge")
	}
}

func TestOnHit_ReflectAmountAndCharges(t *testing.T) {
	l, u, _ := newTestLedger(t)
	l.Apply(New(ReturnDamage, 5, 0, 2, 2))

	fups := l.OnHit(9, 30)
	if len(fups) != 1 || fups[0].Kind != FollowUpReflect {
		t.Fatalf("want one reflect follow-up, got %+v", fups)
	}
	// Default reflect fraction 0.5.
	if fups[0].Amount != 15 {
		t.Errorf("reflect amount = %d, want 15", fups[0].Amount)
	}
	if fups[0].TargetID != 9 || fups[0].SourceID != u.ID {
		t.Errorf("reflect attribution wrong: %+v", fups[0])
	}

	l.OnHit(9, 30)
	if l.Has(ReturnDamage) {
		t.Error("second charge spent, effect should be gone")
	}
}

func TestOnHit_CounterOncePerTurn(t *testing.T) {
	l, _, _ := newTestLedger(t)
	l.Apply(New(CounterStance, 3, 0, 0, 7))

	first := l.OnHit(9, 10)
	second := l.OnHit(9, 10)
	if countKind(first, FollowUpCounter) != 1 {
		t.Errorf("first hit should trigger one counter, got %d", countKind(first, FollowUpCounter))
	}
	if countKind(second, FollowUpCounter) != 0 {
		t.Error("counter must not fire twice in one turn")
	}

	l.OnTurnStart()
	third := l.OnHit(9, 10)
	if countKind(third, FollowUpCounter) != 1 {
		t.Error("trigger flag should reset at turn start")
	}
}

func TestOnHit_CounterRequiresActor(t *testing.T) {
	l, u, _ := newTestLedger(t)
	l.Apply(New(CounterStance, 3, 0, 0, 7))
	u.Stunned = true

	if countKind(l.OnHit(9, 10), FollowUpCounter) != 0 {
		t.Error("a stunned unit cannot counter")
	}
}

func TestFocusStacks_BuildAndResetOnNewAttacker(t *testing.T) {
	l, _, _ := newTestLedger(t)

	l.OnHit(2, 5)
	l.OnHit(2, 5)
	if l.FocusStacks(2) != 2 {
		t.Errorf("FocusStacks(2) = %d, want 2", l.FocusStacks(2))
	}
	if l.FocusStacks(3) != 0 {
		t.Error("a different attacker starts from zero")
	}

	l.OnHit(3, 5)
	if l.FocusStacks(2) != 0 {
		t.Error("hit from a new attacker resets the old chain")
	}
	if l.FocusStacks(3) != 1 {
		t.Errorf("FocusStacks(3) = %d, want 1", l.FocusStacks(3))
	}
}

func TestStatDelta_TwoTermAndFloor(t *testing.T) {
	l, _, _ := newTestLedger(t)
	l.Apply(New(PowerBoost, 3, 8, 0, 7))
	l.Apply(New(PowerCut, 3, 30, 0, 2))

	if got := l.StatDelta("power"); got != -22 {
		t.Errorf("StatDelta = %d, want -22", got)
	}
	if got := l.EffectiveStat("power"); got != 0 {
		t.Errorf("EffectiveStat = %d, want floor at 0", got)
	}
}

func TestSurrenderThreshold_Modifiers(t *testing.T) {
	l, u, cap := newTestLedger(t)

	// Default threshold 20; Shaken raises it.
	l.Apply(New(Shaken, 3, 30, 0, 2))
	if got := l.SurrenderThreshold(); got != 50 {
		t.Errorf("threshold = %d, want 50", got)
	}

	u.Morale = 45
	l.CheckSurrender()
	if !u.Surrendered {
		t.Fatal("morale below the raised threshold should surrender")
	}
	if cap.count(event.UnitSurrendered) != 1 {
		t.Error("missing surrender event")
	}
}

func TestSurrenderThreshold_FearlessFloorsAtZero(t *testing.T) {
	l, _, _ := newTestLedger(t)
	l.Apply(New(Fearless, 3, 100, 0, 7))
	if got := l.SurrenderThreshold(); got != 0 {
		t.Errorf("threshold = %d, want floored at 0", got)
	}
}

type fakePool struct {
	drained int
}

func (p *fakePool) Drain(_ model.Team, amount int) int {
	p.drained += amount
	return amount
}

func TestDrain_EnergyGoesThroughCollaborator(t *testing.T) {
	l, _, cap := newTestLedger(t)
	pool := &fakePool{}
	l.SetEnergyPool(pool)
	l.Apply(New(EnergyDrain, 3, 2, 0, 2))

	l.OnTurnStart()

	if pool.drained != 2 {
		t.Errorf("drained %d energy, want 2", pool.drained)
	}
	if cap.count(event.EnergyDrained) != 1 {
		t.Error("missing energy drained event")
	}
}

func TestAttackScale_MeleeVsRanged(t *testing.T) {
	l, _, _ := newTestLedger(t)
	l.Apply(New(Empowered, 3, 0.2, 0, 7))
	l.Apply(New(SharpenedBlades, 3, 0.1, 0, 7))
	l.Apply(New(ShakyHands, 3, 0.3, 0, 2))

	if got := l.AttackScale(true); got != 1.3 {
		t.Errorf("melee scale = %.2f, want 1.30", got)
	}
	if got := l.AttackScale(false); got < 0.899 || got > 0.901 {
		t.Errorf("ranged scale = %.2f, want 0.90", got)
	}
}

func TestCanBePrimaryTarget(t *testing.T) {
	l, u, _ := newTestLedger(t)
	if !l.CanBePrimaryTarget() {
		t.Fatal("plain unit is targetable")
	}
	l.Apply(New(Stealth, 2, 0, 0, 7))
	if l.CanBePrimaryTarget() {
		t.Error("stealthed unit is not a valid primary target")
	}
	l.Remove(Stealth)
	u.MarkSurrendered()
	if l.CanBePrimaryTarget() {
		t.Error("surrendered unit is not a valid primary target")
	}
}

func TestActive_SortedByKind(t *testing.T) {
	l, _, _ := newTestLedger(t)
	l.Apply(New(Stun, 2, 0, 0, 2))
	l.Apply(New(Burning, 2, 1, 0, 2))
	l.Apply(New(Marked, 2, 0.5, 0, 2))

	active := l.Active()
	for i := 1; i < len(active); i++ {
		if active[i-1].Kind >= active[i].Kind {
			t.Fatalf("active list not in ascending kind order: %v then %v", active[i-1].Kind, active[i].Kind)
		}
	}
}

func TestGet_IdempotentBetweenMutations(t *testing.T) {
	l, _, _ := newTestLedger(t)
	l.Apply(New(Burning, 3, 5, 0, 2))

	a, b := l.Get(Burning), l.Get(Burning)
	if a != b {
		t.Error("Get must return the same instance until the next mutation")
	}
	if *a != *b {
		t.Error("instance contents changed between reads")
	}
}

func countKind(fups []FollowUp, k FollowUpKind) int {
	n := 0
	for _, f := range fups {
		if f.Kind == k {
			n++
		}
	}
	return n
}
