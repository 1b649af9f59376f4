package status

// Instance is one active status effect on one unit. Created on Apply,
// mutated on stack/refresh, removed when the duration runs out or the
// effect is explicitly consumed.
//
// Value1 is the primary magnitude (damage per turn, stat delta, trap
// fraction). Value2 is the secondary one: charge counts for Cursed and
// ReturnDamage. SourceID attributes the effect to the unit that applied
// it; it is never an ownership reference.
type Instance struct {
	Kind     Kind
	Name     string
	Duration int
	Value1   float64
	Value2   float64
	Stacks   int
	SourceID uint32

	// firedThisTurn gates once-per-turn reactive triggers. Cleared at the
	// start of the owner's turn before any other turn-start work.
	firedThisTurn bool
}

// New creates an instance of the given kind with one stack. The display
// name comes from the registry; unknown kinds panic there.
func New(kind Kind, duration int, value1, value2 float64, sourceID uint32) *Instance {
	return &Instance{
		Kind:     kind,
		Name:     Lookup(kind).Name,
		Duration: duration,
		Value1:   value1,
		Value2:   value2,
		Stacks:   1,
		SourceID: sourceID,
	}
}

// Definition returns the registry entry for this instance's kind.
func (in *Instance) Definition() Definition {
	return Lookup(in.Kind)
}
