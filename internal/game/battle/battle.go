// Package battle drives the turn/round state machine for one engagement
// and glues the pure pieces together: it owns the units, their status
// ledgers, the per-side energy pool and the event bus, and it sequences
// RoundStart → SideActing(Player) → SideActing(Enemy) → RoundStart(+1).
//
// The machine does not decide WHO acts within a side turn or what action
// is taken; that belongs to player input or AI, which calls
// ResolveAttack and the executor per the engine contracts.
package battle

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/smolyakoff/grognard/internal/config"
	"github.com/smolyakoff/grognard/internal/game/combat"
	"github.com/smolyakoff/grognard/internal/game/event"
	"github.com/smolyakoff/grognard/internal/game/status"
	"github.com/smolyakoff/grognard/internal/model"
)

// Business-rule rejections. These are expected outcomes the caller
// handles by aborting the action, not failures.
var (
	ErrCannotAct       = errors.New("unit cannot act")
	ErrInvalidTarget   = errors.New("target cannot be attacked")
	ErrNoArrows        = errors.New("not enough arrows")
	ErrNotEnoughEnergy = errors.New("not enough energy")
	ErrBattleOver      = errors.New("battle has ended")
)

// Phase is the state machine's coarse position.
type Phase int8

const (
	PhasePending    Phase = iota // created, first round not started
	PhaseSideActing              // one side is taking its turns
	PhaseEnded                   // terminal
)

// UnitProvider returns the units still fighting for a side. The Battle
// itself satisfies it; external team-wide effect scans use the same
// interface.
type UnitProvider interface {
	UnitsOn(t model.Team) []*model.Unit
}

// Battle owns all combat state for one engagement.
type Battle struct {
	cfg    *config.Combat
	bus    *event.Bus
	energy *EnergyPool

	units   []*model.Unit
	ledgers map[uint32]*status.Ledger

	round  int
	phase  Phase
	acting model.Team
	first  model.Team // initiative winner this round
	sides  int        // sides finished this round
	winner model.Team
}

// New builds a battle over the given units. The config is validated once
// here; a broken tuning is a deployment error.
func New(cfg *config.Combat, bus *event.Bus, units []*model.Unit) (*Battle, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("combat config: %w", err)
	}
	b := &Battle{
		cfg:     cfg,
		bus:     bus,
		energy:  NewEnergyPool(),
		units:   units,
		ledgers: make(map[uint32]*status.Ledger, len(units)),
	}
	for _, u := range units {
		l := status.NewLedger(u, cfg, bus)
		l.SetEnergyPool(b.energy)
		b.ledgers[u.ID] = l
	}
	return b, nil
}

// Unit returns a unit by ID, or nil.
func (b *Battle) Unit(id uint32) *model.Unit {
	for _, u := range b.units {
		if u.ID == id {
			return u
		}
	}
	return nil
}

// Ledger returns the status ledger of a unit, or nil.
func (b *Battle) Ledger(id uint32) *status.Ledger {
	return b.ledgers[id]
}

// UnitsOn returns the side's units still in play, in deployment order.
func (b *Battle) UnitsOn(t model.Team) []*model.Unit {
	var out []*model.Unit
	for _, u := range b.units {
		if u.Team == t && u.InPlay() {
			out = append(out, u)
		}
	}
	return out
}

// Energy exposes the per-side resource pool.
func (b *Battle) Energy() *EnergyPool { return b.energy }

// Round returns the current round number (1-based once started).
func (b *Battle) Round() int { return b.round }

// Phase returns the machine state.
func (b *Battle) Phase() Phase { return b.phase }

// Acting returns which side is currently taking its turns.
func (b *Battle) Acting() model.Team { return b.acting }

// FirstSide returns the side that won initiative this round.
func (b *Battle) FirstSide() model.Team { return b.first }

// Winner returns the winning side once the battle has ended.
func (b *Battle) Winner() model.Team { return b.winner }

// Ended reports whether the terminal state has been reached.
func (b *Battle) Ended() bool { return b.phase == PhaseEnded }

// StartRound advances to the next round: increments the counter,
// resolves initiative over the surviving units and opens the first
// side's turn.
func (b *Battle) StartRound() error {
	if b.phase == PhaseEnded {
		return ErrBattleOver
	}
	b.round++
	b.sides = 0

	init := combat.ResolveInitiative(b.cfg, b.units)
	b.first = init.First
	b.bus.Emit(event.Event{Type: event.RoundStarted, Round: b.round, Detail: init.First.String()})
	slog.Debug("round started", "round", b.round, "first", init.First, "playerSpeed", init.PlayerTotal, "enemySpeed", init.EnemyTotal)

	b.openSide(init.First)
	return nil
}

// EndSide closes the acting side's turn: OnTurnEnd ticks every acting
// unit's ledger (stun countdown only, DOT does not re-tick), then the
// machine advances to the other side or the next round.
func (b *Battle) EndSide() error {
	if b.phase != PhaseSideActing {
		return ErrBattleOver
	}
	for _, u := range b.UnitsOn(b.acting) {
		b.ledgers[u.ID].OnTurnEnd()
	}
	b.bus.Emit(event.Event{Type: event.TurnEnded, Round: b.round, Detail: b.acting.String()})

	if b.CheckEnd() {
		return nil
	}

	b.sides++
	if b.sides >= 2 {
		return b.StartRound()
	}
	b.openSide(b.acting.Opponent())
	return nil
}

// End reaches the terminal state. Exposed for external termination
// (forfeit, scenario scripting); CheckEnd calls it when a side is wiped.
func (b *Battle) End(winner model.Team) {
	if b.phase == PhaseEnded {
		return
	}
	b.phase = PhaseEnded
	b.winner = winner
	b.bus.Emit(event.Event{Type: event.BattleEnded, Round: b.round, Detail: winner.String()})
	slog.Info("battle ended", "round", b.round, "winner", winner)
}

// CheckEnd ends the battle when one side has no units left in play.
func (b *Battle) CheckEnd() bool {
	if b.phase == PhaseEnded {
		return true
	}
	playerLeft := len(b.UnitsOn(model.TeamPlayer))
	enemyLeft := len(b.UnitsOn(model.TeamEnemy))
	switch {
	case playerLeft == 0:
		b.End(model.TeamEnemy)
	case enemyLeft == 0:
		b.End(model.TeamPlayer)
	default:
		return false
	}
	return true
}

// openSide starts a side's turn: per-turn energy is granted, every unit
// on the side gets its ledger ticked (trigger flags cleared, DOT/regen,
// duration countdown) and its has-acted flag reset.
func (b *Battle) openSide(t model.Team) {
	b.phase = PhaseSideActing
	b.acting = t
	b.energy.Grant(t, b.cfg.EnergyPerTurn)
	b.bus.Emit(event.Event{Type: event.SideStarted, Round: b.round, Detail: t.String()})

	for _, u := range b.UnitsOn(t) {
		u.HasActed = false
		b.ledgers[u.ID].OnTurnStart()
	}
	b.CheckEnd()
}

// AttackResult reports one resolved attack.
type AttackResult struct {
	Output            combat.Output
	HPDealt           int
	MoraleDealt       int
	TargetDied        bool
	TargetSurrendered bool
}

// ResolveAttack performs a standard attack. Terrain-derived inputs
// (cover, standing bonus) are the caller's responsibility; the core
// never inspects the map. Ranged attacks spend arrows, adjusted by the
// attacker's quiver effects.
func (b *Battle) ResolveAttack(attackerID, targetID uint32, melee, hasCover bool, flatHP, flatMorale int) (AttackResult, error) {
	if b.phase == PhaseEnded {
		return AttackResult{}, ErrBattleOver
	}
	attacker, target := b.Unit(attackerID), b.Unit(targetID)
	if attacker == nil || !attacker.CanAct() {
		return AttackResult{}, ErrCannotAct
	}
	if target == nil || target.IsDead() || !b.ledgers[targetID].CanBePrimaryTarget() {
		return AttackResult{}, ErrInvalidTarget
	}

	atkLedger := b.ledgers[attackerID]

	var base int
	if melee {
		base = combat.MeleeBaseDamage(b.cfg, attacker)
	} else {
		cost := 1 + atkLedger.ArrowCostDelta()
		if cost < 0 {
			cost = 0
		}
		if !attacker.SpendArrows(cost) {
			return AttackResult{}, ErrNoArrows
		}
		base = combat.RangedBaseDamage(b.cfg, attacker)
	}

	// First action after winning initiative hits harder.
	if attacker.Team == b.first && !attacker.HasActed {
		flatHP += combat.FirstActionBonus(b.cfg, attacker)
	}

	res := b.resolveDamage(attacker, target, float64(base)*atkLedger.AttackScale(melee), melee, hasCover, flatHP, flatMorale)
	attacker.HasActed = true
	return res, nil
}

// resolveDamage runs the shared damage path used by attacks, counters
// and damaging abilities: calculate, apply HP and morale, fire the
// target's on-hit reactions and dispatch their follow-ups.
func (b *Battle) resolveDamage(attacker, target *model.Unit, base float64, melee, hasCover bool, flatHP, flatMorale int) AttackResult {
	tgtLedger := b.ledgers[target.ID]

	out := combat.Calculate(b.cfg, combat.Input{
		BaseDamage:  base,
		Melee:       melee,
		FocusStacks: tgtLedger.FocusStacks(attacker.ID),
		HasCover:    hasCover,
		Target:      tgtLedger,
		FlatHP:      flatHP,
		FlatMorale:  flatMorale,
	})

	res := AttackResult{Output: out}

	res.HPDealt = target.ReduceHP(out.HP)
	b.bus.Emit(event.Event{Type: event.DamageDealt, UnitID: target.ID, SourceID: attacker.ID, Amount: res.HPDealt, Round: b.round, Detail: out.Breakdown})
	if target.IsDead() {
		res.TargetDied = true
		b.bus.Emit(event.Event{Type: event.UnitDied, UnitID: target.ID, SourceID: attacker.ID, Round: b.round})
	}

	res.MoraleDealt = target.ReduceMorale(out.Morale)
	if res.MoraleDealt != 0 {
		b.bus.Emit(event.Event{Type: event.MoraleDamage, UnitID: target.ID, SourceID: attacker.ID, Amount: res.MoraleDealt, Round: b.round})
	}
	if !target.IsDead() {
		tgtLedger.CheckSurrender()
		res.TargetSurrendered = target.Surrendered
	}

	// Reactive effects fire after damage lands; even a killing hit
	// consumes the mark.
	fups := tgtLedger.OnHit(attacker.ID, out.HP)
	b.applyFollowUps(fups)

	b.CheckEnd()
	return res
}
