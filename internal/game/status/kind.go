// Package status implements the status effect catalog and the per-unit
// ledger of active effect instances: apply/stack/refresh rules, turn
// ticking, movement and on-hit reactions, and aggregate stat queries.
package status

// Kind enumerates every status effect the engine knows about. The
// registry table in registry.go defines the fixed per-kind properties
// (family, polarity, stackability); they are never decided per-instance.
type Kind uint8

// Family groups kinds by behavior. The ledger dispatches turn-start,
// movement and on-hit handling by family, so a new kind only needs a
// registry entry unless it introduces a new family.
type Family uint8

const (
	FamilyDOT       Family = iota // periodic raw damage at turn start
	FamilyRegen                   // periodic HP/morale restore at turn start
	FamilyStatMod                 // flat stat boosts and cuts
	FamilyDamageMod               // multipliers consumed by the damage calculator
	FamilyReactive                // fires when the owner is hit
	FamilyMovement                // movement restrictions and movement-triggered traps
	FamilyTargeting               // targeting restrictions
	FamilyDrain                   // periodic resource drain at turn start
	FamilyThreshold               // surrender-threshold shifts
	FamilyAura                    // passive per-turn pulses
	FamilyEconomy                 // weapon/card economy modifiers
	FamilyControl                 // stun, heal block, stasis; ticks at turn END
)

const (
	// Damage over time.
	Burning Kind = iota
	Poisoned
	Bleeding
	AcidSplash
	Frostbite
	Infected
	Smoldering
	Corroded
	Splintered
	Scurvy

	// Regeneration.
	Regeneration
	Bandaged
	SecondWind
	FieldRations
	Rallied
	Heartened
	GrogCourage

	// Stat modifiers.
	PowerBoost
	PowerCut
	AimBoost
	AimCut
	TacticsBoost
	TacticsCut
	SpeedBoost
	SpeedCut
	GritBoost
	GritCut
	HullBoost
	HullCut
	ProficiencyBoost
	ProficiencyCut
	SkillBoost
	SkillCut

	// Damage modifiers.
	Cursed
	Exposed
	Empowered
	Weakened
	StoneSkin
	Brittle
	SharpenedBlades
	DulledBlades
	SteadyHands
	ShakyHands
	IronWard
	AshHex

	// Combat-reactive.
	Marked
	ReturnDamage
	CounterStance
	KnockbackOnHit
	DrawOnHit
	ThornHide
	ParryStance
	Vengeance
	FocusFire

	// Movement.
	BearTrap
	Rooted
	Snared
	Hobbled
	Slowed
	Quickstep
	SureFooted

	// Targeting.
	Stealth
	Taunting
	Untargetable
	Blinded
	Obscured
	Beacon

	// Resource drain.
	EnergyDrain
	Buzzing
	Sobering
	ArrowRot
	MoraleLeech
	Fatigue

	// Surrender threshold.
	Fearless
	IronWill
	Shaken
	Craven

	// Passive auras.
	CourageAura
	DreadAura
	MendingAura
	RotAura
	WarBanner
	Dirge
	Shanty
	DrumBeat

	// Weapon/card economy.
	ExtraCard
	CardLock
	CheapShots
	CostlyShots
	QuiverBlessing
	QuiverCurse
	RelicCharge
	GamblersLuck

	// Control.
	Stun
	HealBlock
	Stasis
	Dazed
	Confused
	Silenced
	Seasick

	// KindCount is the number of defined kinds; keep it last.
	KindCount
)

// String returns the display name from the registry.
func (k Kind) String() string {
	return Lookup(k).Name
}
