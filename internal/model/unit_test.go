package model

import "testing"

func newTestUnit() *Unit {
	return NewUnit(1, "Bosun", TeamPlayer, Stats{Power: 30, Aim: 20, Speed: 12}, 100, 80, 10, 5)
}

func TestNewUnit_StartsFull(t *testing.T) {
	u := newTestUnit()
	if u.HP != 100 || u.Morale != 80 {
		t.Errorf("HP=%d Morale=%d, want 100/80", u.HP, u.Morale)
	}
	if u.Buzz != 0 {
		t.Errorf("Buzz = %d, want 0 (sober at deployment)", u.Buzz)
	}
	if !u.CanAct() || !u.InPlay() {
		t.Error("fresh unit should be able to act")
	}
}

func TestReduceHP_ClampsAtZero(t *testing.T) {
	u := newTestUnit()
	lost := u.ReduceHP(150)
	if lost != 100 {
		t.Errorf("ReduceHP(150) = %d, want 100 (only what was there)", lost)
	}
	if !u.IsDead() {
		t.Error("unit at 0 HP should be dead")
	}
	if u.ReduceHP(10) != 0 {
		t.Error("damage to a dead unit should report 0 lost")
	}
}

func TestReduceHP_NegativeIgnored(t *testing.T) {
	u := newTestUnit()
	if u.ReduceHP(-20) != 0 || u.HP != 100 {
		t.Errorf("negative damage must not heal: HP = %d", u.HP)
	}
}

func TestHealHP_ClampsAtMaxAndSkipsDead(t *testing.T) {
	u := newTestUnit()
	u.ReduceHP(30)
	if healed := u.HealHP(50); healed != 30 {
		t.Errorf("HealHP(50) = %d, want 30", healed)
	}
	u.ReduceHP(200)
	if u.HealHP(10) != 0 {
		t.Error("healing a dead unit must do nothing")
	}
}

func TestReduceMorale_NegativeHeals(t *testing.T) {
	u := newTestUnit()
	u.ReduceMorale(30)
	if got := u.ReduceMorale(-20); got != -20 {
		t.Errorf("ReduceMorale(-20) = %d, want -20 (heal pass-through)", got)
	}
	if u.Morale != 70 {
		t.Errorf("Morale = %d, want 70", u.Morale)
	}
}

func TestMarkSurrendered_Irreversible(t *testing.T) {
	u := newTestUnit()
	if !u.MarkSurrendered() {
		t.Fatal("first MarkSurrendered should report the transition")
	}
	if u.MarkSurrendered() {
		t.Error("second MarkSurrendered should report false")
	}
	u.HealMorale(80)
	if !u.Surrendered {
		t.Error("healing morale must never reverse a surrender")
	}
	if u.CanAct() || u.InPlay() {
		t.Error("surrendered unit is out of play")
	}
}

func TestIsDrunk_AtBuzzCap(t *testing.T) {
	u := newTestUnit()
	u.AddBuzz(9)
	if u.IsDrunk() {
		t.Error("below cap should be sober")
	}
	u.AddBuzz(5)
	if u.Buzz != 10 {
		t.Errorf("Buzz = %d, want clamped at 10", u.Buzz)
	}
	if !u.IsDrunk() {
		t.Error("at cap should be drunk")
	}
	u.ReduceBuzz(1)
	if u.IsDrunk() {
		t.Error("sobering below cap should clear drunk")
	}
}

func TestIsDrunk_NoBuzzTrack(t *testing.T) {
	u := NewUnit(2, "Brute", TeamEnemy, Stats{}, 50, 50, 0, 0)
	if u.IsDrunk() {
		t.Error("unit without a buzz track can never be drunk")
	}
}

func TestSpendArrows(t *testing.T) {
	u := newTestUnit()
	if !u.SpendArrows(0) {
		t.Error("zero-cost shot always succeeds")
	}
	if !u.SpendArrows(5) || u.Arrows != 0 {
		t.Errorf("spending the full quiver failed, arrows=%d", u.Arrows)
	}
	if u.SpendArrows(1) {
		t.Error("empty quiver must refuse")
	}
}

func TestStat_Lookup(t *testing.T) {
	u := newTestUnit()
	if u.Stat("power") != 30 || u.Stat("aim") != 20 || u.Stat("speed") != 12 {
		t.Error("named stat lookup mismatch")
	}
	if u.Stat("bogus") != 0 {
		t.Error("unknown stat name should read 0")
	}
}
