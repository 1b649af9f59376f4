package status

// FollowUpKind classifies a cross-unit reaction produced by OnHit.
type FollowUpKind uint8

const (
	FollowUpReflect   FollowUpKind = iota // damage bounced back to the attacker
	FollowUpCounter                       // reacting unit counter-attacks
	FollowUpKnockback                     // attacker is pushed back
	FollowUpDraw                          // reacting unit's side draws a card
)

// FollowUp is a reaction the ledger cannot apply itself because it
// touches another unit. A resolution step returns these and the battle
// dispatcher applies them, which keeps cross-unit ordering deterministic
// and avoids any global unit registry.
type FollowUp struct {
	Kind     FollowUpKind
	TargetID uint32 // unit the follow-up applies to
	SourceID uint32 // reacting unit, for attribution
	Amount   int
}
