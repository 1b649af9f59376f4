package model

// Team identifies which side of the battle a unit fights for.
type Team int8

const (
	TeamPlayer Team = iota
	TeamEnemy
)

// Opponent returns the other side.
func (t Team) Opponent() Team {
	if t == TeamPlayer {
		return TeamEnemy
	}
	return TeamPlayer
}

func (t Team) String() string {
	if t == TeamPlayer {
		return "player"
	}
	return "enemy"
}

// Stats holds the core combat stats of a unit. All values are flat
// integers; temporary modifiers live in the unit's status ledger and are
// combined at query time, never written back here.
type Stats struct {
	Power       int // melee damage scaling
	Aim         int // ranged damage scaling
	Tactics     int
	Speed       int // initiative contribution + first-action bonus
	Grit        int
	Hull        int
	Proficiency int
	Skill       int
}

// Unit is one combatant. It is owned by the battle from deployment until
// death or battle end.
//
// The engine is turn-synchronous: a Unit is only ever mutated from its
// battle's turn-processing path, so unlike a live server there is no
// locking here.
type Unit struct {
	ID    uint32
	Name  string
	Team  Team
	Stats Stats

	HP        int
	MaxHP     int
	Morale    int
	MaxMorale int
	Buzz      int
	MaxBuzz   int
	Arrows    int

	Stunned     bool
	Trapped     bool
	Surrendered bool

	// HasActed is reset at the start of this unit's side turn.
	HasActed bool
}

// NewUnit creates a unit at full HP and morale.
func NewUnit(id uint32, name string, team Team, stats Stats, maxHP, maxMorale, maxBuzz, arrows int) *Unit {
	return &Unit{
		ID:        id,
		Name:      name,
		Team:      team,
		Stats:     stats,
		HP:        maxHP,
		MaxHP:     maxHP,
		Morale:    maxMorale,
		MaxMorale: maxMorale,
		MaxBuzz:   maxBuzz,
		Arrows:    arrows,
	}
}

// IsDead reports whether the unit has been removed from play.
func (u *Unit) IsDead() bool {
	return u.HP <= 0
}

// CanAct reports whether the unit may take an action this turn.
func (u *Unit) CanAct() bool {
	return !u.IsDead() && !u.Surrendered && !u.Stunned
}

// InPlay reports whether the unit still participates in the battle at all.
// Surrendered units stand on the field but cannot act or be the primary
// target of most effects.
func (u *Unit) InPlay() bool {
	return !u.IsDead() && !u.Surrendered
}

// IsDrunk reports whether the Buzz resource is at its cap, which triggers
// the base-damage penalty.
func (u *Unit) IsDrunk() bool {
	return u.MaxBuzz > 0 && u.Buzz >= u.MaxBuzz
}

// ReduceHP subtracts damage from HP, clamping at 0. Returns the HP
// actually lost. Negative damage is ignored: healing goes through HealHP.
func (u *Unit) ReduceHP(damage int) int {
	if damage <= 0 {
		return 0
	}
	before := u.HP
	u.HP -= damage
	if u.HP < 0 {
		u.HP = 0
	}
	return before - u.HP
}

// HealHP restores HP, clamping at MaxHP. Returns the HP actually gained.
func (u *Unit) HealHP(amount int) int {
	if amount <= 0 || u.IsDead() {
		return 0
	}
	before := u.HP
	u.HP += amount
	if u.HP > u.MaxHP {
		u.HP = u.MaxHP
	}
	return u.HP - before
}

// ReduceMorale subtracts morale, clamping at 0. Returns the morale
// actually lost. Negative amounts heal morale instead (intentional
// pass-through for negative morale-damage semantics).
func (u *Unit) ReduceMorale(amount int) int {
	if amount < 0 {
		return -u.HealMorale(-amount)
	}
	before := u.Morale
	u.Morale -= amount
	if u.Morale < 0 {
		u.Morale = 0
	}
	return before - u.Morale
}

// HealMorale restores morale, clamping at MaxMorale. Healing morale never
// reverses a surrender.
func (u *Unit) HealMorale(amount int) int {
	if amount <= 0 {
		return 0
	}
	before := u.Morale
	u.Morale += amount
	if u.Morale > u.MaxMorale {
		u.Morale = u.MaxMorale
	}
	return u.Morale - before
}

// MarkSurrendered flips the unit into the surrendered state. The
// transition is irreversible. Returns true if the unit newly surrendered.
func (u *Unit) MarkSurrendered() bool {
	if u.Surrendered {
		return false
	}
	u.Surrendered = true
	return true
}

// AddBuzz raises the Buzz resource, clamping at MaxBuzz.
func (u *Unit) AddBuzz(amount int) {
	if amount <= 0 {
		return
	}
	u.Buzz += amount
	if u.Buzz > u.MaxBuzz {
		u.Buzz = u.MaxBuzz
	}
}

// ReduceBuzz lowers the Buzz resource, clamping at 0.
func (u *Unit) ReduceBuzz(amount int) {
	if amount <= 0 {
		return
	}
	u.Buzz -= amount
	if u.Buzz < 0 {
		u.Buzz = 0
	}
}

// SpendArrows consumes ammunition for a ranged attack. Returns false when
// the quiver is empty; the caller must abort the attack.
func (u *Unit) SpendArrows(n int) bool {
	if n <= 0 {
		return true
	}
	if u.Arrows < n {
		return false
	}
	u.Arrows -= n
	return true
}

// Stat returns the base value of a named stat. Unknown names return 0;
// the status registry is the single source of valid stat keys.
func (u *Unit) Stat(name string) int {
	switch name {
	case "power":
		return u.Stats.Power
	case "aim":
		return u.Stats.Aim
	case "tactics":
		return u.Stats.Tactics
	case "speed":
		return u.Stats.Speed
	case "grit":
		return u.Stats.Grit
	case "hull":
		return u.Stats.Hull
	case "proficiency":
		return u.Stats.Proficiency
	case "skill":
		return u.Stats.Skill
	}
	return 0
}
