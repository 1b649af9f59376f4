package battle

import (
	"github.com/smolyakoff/grognard/internal/game/event"
)

// Summary is the aggregate outcome of one battle, accumulated from the
// event stream. It is what gets persisted and what batch simulation
// compares across runs.
type Summary struct {
	Rounds          int
	Winner          string
	DamageDealt     int
	MoraleDamage    int
	HealingDone     int
	EffectsApplied  int
	EffectsResisted int
	Deaths          int
	Surrenders      int
	EnergyDrained   int
}

// Recorder subscribes to a bus and folds the event stream into a
// Summary. Subscribe it before the battle starts or early events are
// missed.
type Recorder struct {
	sum Summary
	log []event.Event
}

// NewRecorder attaches a fresh recorder to the bus.
func NewRecorder(bus *event.Bus) *Recorder {
	r := &Recorder{}
	bus.Subscribe(r.record)
	return r
}

func (r *Recorder) record(e event.Event) {
	r.log = append(r.log, e)
	switch e.Type {
	case event.RoundStarted:
		r.sum.Rounds = e.Round
	case event.BattleEnded:
		r.sum.Winner = e.Detail
	case event.DamageDealt:
		r.sum.DamageDealt += e.Amount
	case event.MoraleDamage:
		r.sum.MoraleDamage += e.Amount
	case event.Healed, event.MoraleHealed:
		r.sum.HealingDone += e.Amount
	case event.EffectApplied:
		r.sum.EffectsApplied++
	case event.EffectResisted:
		r.sum.EffectsResisted++
	case event.UnitDied:
		r.sum.Deaths++
	case event.UnitSurrendered:
		r.sum.Surrenders++
	case event.EnergyDrained:
		r.sum.EnergyDrained += e.Amount
	}
}

// Summary returns the accumulated totals.
func (r *Recorder) Summary() Summary { return r.sum }

// Events returns the full ordered event log.
func (r *Recorder) Events() []event.Event { return r.log }
