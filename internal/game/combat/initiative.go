package combat

import (
	"github.com/smolyakoff/grognard/internal/config"
	"github.com/smolyakoff/grognard/internal/model"
)

// InitiativeResult holds the per-side Speed totals and who acts first.
type InitiativeResult struct {
	PlayerTotal int
	EnemyTotal  int
	First       model.Team
	Tie         bool
}

// ResolveInitiative sums the Speed of all non-surrendered, living units
// per side. The higher total acts first. An exact tie resolves to the
// configured side, never a coin flip, so replays reproduce.
func ResolveInitiative(cfg *config.Combat, units []*model.Unit) InitiativeResult {
	var res InitiativeResult
	for _, u := range units {
		if !u.InPlay() {
			continue
		}
		if u.Team == model.TeamPlayer {
			res.PlayerTotal += u.Stats.Speed
		} else {
			res.EnemyTotal += u.Stats.Speed
		}
	}

	switch {
	case res.PlayerTotal > res.EnemyTotal:
		res.First = model.TeamPlayer
	case res.EnemyTotal > res.PlayerTotal:
		res.First = model.TeamEnemy
	default:
		res.Tie = true
		res.First = model.TeamEnemy
		if cfg.PlayerWinsTies {
			res.First = model.TeamPlayer
		}
	}
	return res
}

// FirstActionBonus is the flat damage bonus a unit gets on its first
// action when its side won initiative this round: Speed scaled by the
// configured rate, capped.
func FirstActionBonus(cfg *config.Combat, u *model.Unit) int {
	bonus := RoundToInt(float64(u.Stats.Speed) * cfg.FirstActionRate)
	if bonus > cfg.FirstActionCap {
		bonus = cfg.FirstActionCap
	}
	if bonus < 0 {
		bonus = 0
	}
	return bonus
}
