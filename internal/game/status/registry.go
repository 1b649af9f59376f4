package status

import "fmt"

// Definition holds the fixed properties of a kind. Polarity and
// stackability are defined here once, never per-instance.
//
// Stat is set for FamilyStatMod kinds and names the stat the boost or cut
// applies to. Resource is set for FamilyRegen, FamilyDrain and FamilyAura
// kinds and names the pool the per-turn pulse touches.
type Definition struct {
	Name      string
	Family    Family
	Debuff    bool
	Stackable bool
	Stat      string
	Resource  string
}

// registry is the closed catalog. Every Kind below KindCount must have an
// entry; registry_test.go enforces exhaustiveness. A kind reaching Lookup
// without an entry is a build-time defect, not a runtime condition.
var registry = map[Kind]Definition{
	// Damage over time. Value1 = damage per turn (accumulates on stack).
	Burning:    {Name: "Burning", Family: FamilyDOT, Debuff: true},
	Poisoned:   {Name: "Poisoned", Family: FamilyDOT, Debuff: true, Stackable: true},
	Bleeding:   {Name: "Bleeding", Family: FamilyDOT, Debuff: true, Stackable: true},
	AcidSplash: {Name: "Acid Splash", Family: FamilyDOT, Debuff: true},
	Frostbite:  {Name: "Frostbite", Family: FamilyDOT, Debuff: true},
	Infected:   {Name: "Infected", Family: FamilyDOT, Debuff: true},
	Smoldering: {Name: "Smoldering", Family: FamilyDOT, Debuff: true},
	Corroded:   {Name: "Corroded", Family: FamilyDOT, Debuff: true, Stackable: true},
	Splintered: {Name: "Splintered", Family: FamilyDOT, Debuff: true, Stackable: true},
	Scurvy:     {Name: "Scurvy", Family: FamilyDOT, Debuff: true},

	// Regeneration. Value1 = amount restored per turn.
	Regeneration: {Name: "Regeneration", Family: FamilyRegen, Resource: "hp"},
	Bandaged:     {Name: "Bandaged", Family: FamilyRegen, Resource: "hp"},
	SecondWind:   {Name: "Second Wind", Family: FamilyRegen, Resource: "hp"},
	FieldRations: {Name: "Field Rations", Family: FamilyRegen, Resource: "hp"},
	Rallied:      {Name: "Rallied", Family: FamilyRegen, Resource: "morale"},
	Heartened:    {Name: "Heartened", Family: FamilyRegen, Resource: "morale"},
	GrogCourage:  {Name: "Grog Courage", Family: FamilyRegen, Resource: "morale"},

	// Stat modifiers. Value1 = flat delta.
	PowerBoost:       {Name: "Power Boost", Family: FamilyStatMod, Stat: "power"},
	PowerCut:         {Name: "Power Cut", Family: FamilyStatMod, Debuff: true, Stat: "power"},
	AimBoost:         {Name: "Aim Boost", Family: FamilyStatMod, Stat: "aim"},
	AimCut:           {Name: "Aim Cut", Family: FamilyStatMod, Debuff: true, Stat: "aim"},
	TacticsBoost:     {Name: "Tactics Boost", Family: FamilyStatMod, Stat: "tactics"},
	TacticsCut:       {Name: "Tactics Cut", Family: FamilyStatMod, Debuff: true, Stat: "tactics"},
	SpeedBoost:       {Name: "Speed Boost", Family: FamilyStatMod, Stat: "speed"},
	SpeedCut:         {Name: "Speed Cut", Family: FamilyStatMod, Debuff: true, Stat: "speed"},
	GritBoost:        {Name: "Grit Boost", Family: FamilyStatMod, Stat: "grit"},
	GritCut:          {Name: "Grit Cut", Family: FamilyStatMod, Debuff: true, Stat: "grit"},
	HullBoost:        {Name: "Hull Boost", Family: FamilyStatMod, Stat: "hull"},
	HullCut:          {Name: "Hull Cut", Family: FamilyStatMod, Debuff: true, Stat: "hull"},
	ProficiencyBoost: {Name: "Proficiency Boost", Family: FamilyStatMod, Stat: "proficiency"},
	ProficiencyCut:   {Name: "Proficiency Cut", Family: FamilyStatMod, Debuff: true, Stat: "proficiency"},
	SkillBoost:       {Name: "Skill Boost", Family: FamilyStatMod, Stat: "skill"},
	SkillCut:         {Name: "Skill Cut", Family: FamilyStatMod, Debuff: true, Stat: "skill"},

	// Damage modifiers. Cursed carries charges in Value2.
	Cursed:          {Name: "Cursed", Family: FamilyDamageMod, Debuff: true},
	Exposed:         {Name: "Exposed", Family: FamilyDamageMod, Debuff: true},
	Empowered:       {Name: "Empowered", Family: FamilyDamageMod},
	Weakened:        {Name: "Weakened", Family: FamilyDamageMod, Debuff: true},
	StoneSkin:       {Name: "Stone Skin", Family: FamilyDamageMod},
	Brittle:         {Name: "Brittle", Family: FamilyDamageMod, Debuff: true},
	SharpenedBlades: {Name: "Sharpened Blades", Family: FamilyDamageMod},
	DulledBlades:    {Name: "Dulled Blades", Family: FamilyDamageMod, Debuff: true},
	SteadyHands:     {Name: "Steady Hands", Family: FamilyDamageMod},
	ShakyHands:      {Name: "Shaky Hands", Family: FamilyDamageMod, Debuff: true},
	IronWard:        {Name: "Iron Ward", Family: FamilyDamageMod},
	AshHex:          {Name: "Ash Hex", Family: FamilyDamageMod, Debuff: true},

	// Combat-reactive. ReturnDamage carries charges in Value2.
	Marked:         {Name: "Marked", Family: FamilyReactive, Debuff: true, Stackable: true},
	ReturnDamage:   {Name: "Return Damage", Family: FamilyReactive},
	CounterStance:  {Name: "Counter Stance", Family: FamilyReactive},
	KnockbackOnHit: {Name: "Knockback", Family: FamilyReactive},
	DrawOnHit:      {Name: "Draw on Hit", Family: FamilyReactive},
	ThornHide:      {Name: "Thorn Hide", Family: FamilyReactive},
	ParryStance:    {Name: "Parry Stance", Family: FamilyReactive},
	Vengeance:      {Name: "Vengeance", Family: FamilyReactive},
	FocusFire:      {Name: "Focus Fire", Family: FamilyReactive, Debuff: true, Stackable: true},

	// Movement. BearTrap is one-shot: Value1 = share of current HP.
	BearTrap:   {Name: "Bear Trap", Family: FamilyMovement, Debuff: true},
	Rooted:     {Name: "Rooted", Family: FamilyMovement, Debuff: true},
	Snared:     {Name: "Snared", Family: FamilyMovement, Debuff: true},
	Hobbled:    {Name: "Hobbled", Family: FamilyMovement, Debuff: true},
	Slowed:     {Name: "Slowed", Family: FamilyMovement, Debuff: true},
	Quickstep:  {Name: "Quickstep", Family: FamilyMovement},
	SureFooted: {Name: "Sure Footed", Family: FamilyMovement},

	// Targeting.
	Stealth:      {Name: "Stealth", Family: FamilyTargeting},
	Taunting:     {Name: "Taunting", Family: FamilyTargeting},
	Untargetable: {Name: "Untargetable", Family: FamilyTargeting},
	Blinded:      {Name: "Blinded", Family: FamilyTargeting, Debuff: true},
	Obscured:     {Name: "Obscured", Family: FamilyTargeting},
	Beacon:       {Name: "Beacon", Family: FamilyTargeting, Debuff: true},

	// Resource drain. Value1 = amount per turn. Sobering is the one buff
	// here: it lowers Buzz instead of raising it.
	EnergyDrain: {Name: "Energy Drain", Family: FamilyDrain, Debuff: true, Resource: "energy"},
	Buzzing:     {Name: "Buzzing", Family: FamilyDrain, Debuff: true, Stackable: true, Resource: "buzz"},
	Sobering:    {Name: "Sobering", Family: FamilyDrain, Resource: "buzz"},
	ArrowRot:    {Name: "Arrow Rot", Family: FamilyDrain, Debuff: true, Resource: "arrows"},
	MoraleLeech: {Name: "Morale Leech", Family: FamilyDrain, Debuff: true, Resource: "morale"},
	Fatigue:     {Name: "Fatigue", Family: FamilyDrain, Debuff: true, Resource: "energy"},

	// Surrender threshold. Value1 = threshold delta (sign by polarity).
	Fearless: {Name: "Fearless", Family: FamilyThreshold},
	IronWill: {Name: "Iron Will", Family: FamilyThreshold},
	Shaken:   {Name: "Shaken", Family: FamilyThreshold, Debuff: true},
	Craven:   {Name: "Craven", Family: FamilyThreshold, Debuff: true},

	// Passive auras. The executor applies auras to each affected unit;
	// an instance pulses its own carrier once per turn.
	CourageAura: {Name: "Courage Aura", Family: FamilyAura, Resource: "morale"},
	DreadAura:   {Name: "Dread Aura", Family: FamilyAura, Debuff: true, Resource: "morale"},
	MendingAura: {Name: "Mending Aura", Family: FamilyAura, Resource: "hp"},
	RotAura:     {Name: "Rot Aura", Family: FamilyAura, Debuff: true, Resource: "hp"},
	WarBanner:   {Name: "War Banner", Family: FamilyAura, Resource: "morale"},
	Dirge:       {Name: "Dirge", Family: FamilyAura, Debuff: true, Resource: "morale"},
	Shanty:      {Name: "Shanty", Family: FamilyAura, Resource: "morale"},
	DrumBeat:    {Name: "Drum Beat", Family: FamilyAura, Resource: "morale"},

	// Weapon/card economy. Queried by the executor, no periodic behavior.
	ExtraCard:      {Name: "Extra Card", Family: FamilyEconomy},
	CardLock:       {Name: "Card Lock", Family: FamilyEconomy, Debuff: true},
	CheapShots:     {Name: "Cheap Shots", Family: FamilyEconomy},
	CostlyShots:    {Name: "Costly Shots", Family: FamilyEconomy, Debuff: true},
	QuiverBlessing: {Name: "Quiver Blessing", Family: FamilyEconomy},
	QuiverCurse:    {Name: "Quiver Curse", Family: FamilyEconomy, Debuff: true},
	RelicCharge:    {Name: "Relic Charge", Family: FamilyEconomy, Stackable: true},
	GamblersLuck:   {Name: "Gambler's Luck", Family: FamilyEconomy},

	// Control. Durations tick at turn end, not turn start.
	Stun:      {Name: "Stun", Family: FamilyControl, Debuff: true},
	HealBlock: {Name: "Heal Block", Family: FamilyControl, Debuff: true},
	Stasis:    {Name: "Stasis", Family: FamilyControl},
	Dazed:     {Name: "Dazed", Family: FamilyControl, Debuff: true},
	Confused:  {Name: "Confused", Family: FamilyControl, Debuff: true},
	Silenced:  {Name: "Silenced", Family: FamilyControl, Debuff: true},
	Seasick:   {Name: "Seasick", Family: FamilyControl, Debuff: true},
}

// Lookup returns the definition for a kind. An unknown kind is a
// programmer error (the catalog is closed), so it panics rather than
// returning an error the caller would have to invent handling for.
func Lookup(k Kind) Definition {
	def, ok := registry[k]
	if !ok {
		panic(fmt.Sprintf("status: kind %d has no registry entry", k))
	}
	return def
}

// statModKinds maps a stat name to its boost and cut kinds. The
// non-stackable rule guarantees at most one instance of each, so every
// aggregate stat query is a fixed two-term lookup.
var statModKinds = map[string][2]Kind{
	"power":       {PowerBoost, PowerCut},
	"aim":         {AimBoost, AimCut},
	"tactics":     {TacticsBoost, TacticsCut},
	"speed":       {SpeedBoost, SpeedCut},
	"grit":        {GritBoost, GritCut},
	"hull":        {HullBoost, HullCut},
	"proficiency": {ProficiencyBoost, ProficiencyCut},
	"skill":       {SkillBoost, SkillCut},
}
