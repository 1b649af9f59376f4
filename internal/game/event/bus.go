// Package event carries the discrete notifications the combat core emits
// for presentation layers. Emission is synchronous and ordered: handlers
// see events in exactly the order the triggering logic executed.
package event

// Type classifies an engine notification.
type Type string

const (
	RoundStarted    Type = "round_started"
	SideStarted     Type = "side_started"
	TurnEnded       Type = "turn_ended"
	BattleEnded     Type = "battle_ended"
	DamageDealt     Type = "damage_dealt"
	MoraleDamage    Type = "morale_damage"
	Healed          Type = "healed"
	MoraleHealed    Type = "morale_healed"
	EffectApplied   Type = "effect_applied"
	EffectRefreshed Type = "effect_refreshed"
	EffectResisted  Type = "effect_resisted"
	EffectExpired   Type = "effect_expired"
	EffectRemoved   Type = "effect_removed"
	UnitDied        Type = "unit_died"
	UnitSurrendered Type = "unit_surrendered"
	UnitKnockedBack Type = "unit_knocked_back"
	CardDrawn       Type = "card_drawn"
	EnergyDrained   Type = "energy_drained"
)

// Event is one notification. UnitID is the unit the event happened to;
// SourceID attributes it to the unit that caused it (0 when none).
// Effect holds the display name of the status effect involved, if any.
type Event struct {
	Type     Type
	UnitID   uint32
	SourceID uint32
	Effect   string
	Amount   int
	Round    int
	Detail   string
}

// Handler consumes events. Handlers run synchronously on the emitting
// goroutine and must not call back into the engine.
type Handler func(Event)

// Bus fans events out to subscribers in subscription order.
// A nil *Bus is valid and drops everything, which keeps the engine
// testable without wiring a sink.
type Bus struct {
	handlers []Handler
}

func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a handler. Not safe to call while emitting.
func (b *Bus) Subscribe(h Handler) {
	b.handlers = append(b.handlers, h)
}

// Emit delivers the event to every subscriber, in order.
func (b *Bus) Emit(e Event) {
	if b == nil {
		return
	}
	for _, h := range b.handlers {
		h(e)
	}
}
