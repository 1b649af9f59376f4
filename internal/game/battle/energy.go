package battle

import "github.com/smolyakoff/grognard/internal/model"

// EnergyPool is the per-side action resource used to pay for attacks and
// abilities. It is observed and mutated entirely within one synchronous
// turn step, so there is no concurrent-access protocol.
type EnergyPool struct {
	stores [2]int
}

func NewEnergyPool() *EnergyPool {
	return &EnergyPool{}
}

// Available returns the side's current energy.
func (p *EnergyPool) Available(t model.Team) int {
	return p.stores[int(t)]
}

// Grant adds per-turn energy to a side.
func (p *EnergyPool) Grant(t model.Team, amount int) {
	if amount > 0 {
		p.stores[int(t)] += amount
	}
}

// TrySpend deducts amount if the side can afford it. On false the pool is
// unchanged and the caller must abort the action.
func (p *EnergyPool) TrySpend(t model.Team, amount int) bool {
	if amount < 0 || p.stores[int(t)] < amount {
		return false
	}
	p.stores[int(t)] -= amount
	return true
}

// Refund returns energy after an aborted action.
func (p *EnergyPool) Refund(t model.Team, amount int) {
	if amount > 0 {
		p.stores[int(t)] += amount
	}
}

// Drain removes up to amount and returns how much was actually taken.
// Implements the status package's energy collaborator for drain effects.
func (p *EnergyPool) Drain(t model.Team, amount int) int {
	if amount <= 0 {
		return 0
	}
	if amount > p.stores[int(t)] {
		amount = p.stores[int(t)]
	}
	p.stores[int(t)] -= amount
	return amount
}
