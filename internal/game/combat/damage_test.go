package combat

import (
	"strings"
	"testing"

	"github.com/smolyakoff/grognard/internal/config"
	"github.com/smolyakoff/grognard/internal/game/status"
	"github.com/smolyakoff/grognard/internal/model"
)

func testCfg(t *testing.T) *config.Combat {
	t.Helper()
	cfg := config.DefaultCombat()
	return &cfg
}

func targetLedger(t *testing.T, cfg *config.Combat, kinds ...*status.Instance) *status.Ledger {
	t.Helper()
	u := model.NewUnit(99, "Dummy", model.TeamEnemy, model.Stats{}, 200, 100, 10, 0)
	l := status.NewLedger(u, cfg, nil)
	for _, inst := range kinds {
		l.Apply(inst)
	}
	return l
}

// A plain melee hit against an unmodified target passes base damage
// through untouched on the HP side.
func TestCalculate_IdentityMelee(t *testing.T) {
	cfg := testCfg(t)
	out := Calculate(cfg, Input{BaseDamage: 13, Melee: true})
	if out.HP != 13 {
		t.Errorf("HP = %d, want 13 (identity)", out.HP)
	}
	// Melee trades the HP bonus for extra morale pressure.
	if out.Morale != 14 {
		t.Errorf("Morale = %d, want round(13*1.1) = 14", out.Morale)
	}
}

func TestCalculate_RangedHPBonus(t *testing.T) {
	cfg := testCfg(t)
	out := Calculate(cfg, Input{BaseDamage: 20, Melee: false})
	if out.HP != 22 {
		t.Errorf("HP = %d, want round(20*1.1) = 22", out.HP)
	}
	if out.Morale != 20 {
		t.Errorf("Morale = %d, want 20 (no melee bonus)", out.Morale)
	}
}

func TestCalculate_CoverStrictlyReduces(t *testing.T) {
	cfg := testCfg(t)
	open := Calculate(cfg, Input{BaseDamage: 40, Melee: true})
	covered := Calculate(cfg, Input{BaseDamage: 40, Melee: true, HasCover: true})
	if covered.HP >= open.HP {
		t.Errorf("cover did not reduce HP damage: %d vs %d", covered.HP, open.HP)
	}
	if covered.Morale >= open.Morale {
		t.Errorf("cover did not reduce morale damage: %d vs %d", covered.Morale, open.Morale)
	}
}

func TestCalculate_FlatBonusNeverMultiplied(t *testing.T) {
	cfg := testCfg(t)
	tgt := targetLedger(t, cfg, status.New(status.Exposed, 3, 0, 0, 1))

	without := Calculate(cfg, Input{BaseDamage: 20, Melee: true, Target: tgt})
	with := Calculate(cfg, Input{BaseDamage: 20, Melee: true, Target: tgt, FlatHP: 5})
	if with.HP-without.HP != 5 {
		t.Errorf("flat bonus picked up a multiplier: delta %d, want 5", with.HP-without.HP)
	}
}

func TestCalculate_CurseAndExposedStack(t *testing.T) {
	cfg := testCfg(t)
	tgt := targetLedger(t, cfg,
		status.New(status.Cursed, 5, 0, 3, 1),
		status.New(status.Exposed, 5, 0, 0, 1))

	out := Calculate(cfg, Input{BaseDamage: 20, Melee: false, Target: tgt})
	// 20 * 1.1 ranged * 1.25 curse * 1.3 exposed = 35.75 -> 36.
	if out.HP != 36 {
		t.Errorf("HP = %d, want 36", out.HP)
	}
}

func TestCalculate_FocusBonusIsMoraleSideOnly(t *testing.T) {
	cfg := testCfg(t)
	none := Calculate(cfg, Input{BaseDamage: 40, Melee: true})
	focused := Calculate(cfg, Input{BaseDamage: 40, Melee: true, FocusStacks: 3})
	if focused.HP != none.HP {
		t.Errorf("focus must not change HP damage: %d vs %d", focused.HP, none.HP)
	}
	// Third consecutive hit: +25% morale.
	if focused.Morale != none.Morale+10 {
		t.Errorf("Morale = %d, want %d", focused.Morale, none.Morale+10)
	}
}

func TestCalculate_FocusTableClamped(t *testing.T) {
	cfg := testCfg(t)
	atEnd := Calculate(cfg, Input{BaseDamage: 40, Melee: true, FocusStacks: 5})
	beyond := Calculate(cfg, Input{BaseDamage: 40, Melee: true, FocusStacks: 50})
	if atEnd.Morale != beyond.Morale {
		t.Errorf("focus bonus past the table end should clamp: %d vs %d", atEnd.Morale, beyond.Morale)
	}
}

func TestCalculate_MarkEmpowersConsumingHit(t *testing.T) {
	cfg := testCfg(t)
	tgt := targetLedger(t, cfg, status.New(status.Marked, 3, 0.5, 0, 1))

	out := Calculate(cfg, Input{BaseDamage: 20, Melee: true, Target: tgt})
	if out.HP != 30 {
		t.Errorf("HP = %d, want 30 (mark +50%%)", out.HP)
	}
}

func TestCalculate_DefenseScaleHPOnly(t *testing.T) {
	cfg := testCfg(t)
	tgt := targetLedger(t, cfg, status.New(status.StoneSkin, 3, 0.25, 0, 1))

	out := Calculate(cfg, Input{BaseDamage: 40, Melee: true, Target: tgt})
	if out.HP != 30 {
		t.Errorf("HP = %d, want 30 (stone skin -25%%)", out.HP)
	}
	if out.Morale != 44 {
		t.Errorf("Morale = %d, want 44 (defense does not dull morale damage)", out.Morale)
	}
}

func TestCalculate_BreakdownNamesModifiers(t *testing.T) {
	cfg := testCfg(t)
	tgt := targetLedger(t, cfg, status.New(status.Cursed, 5, 0, 3, 1))

	out := Calculate(cfg, Input{BaseDamage: 20, Melee: false, HasCover: true, Target: tgt})
	for _, want := range []string{"base 20", "cover", "ranged", "curse"} {
		if !strings.Contains(out.Breakdown, want) {
			t.Errorf("breakdown missing %q: %s", want, out.Breakdown)
		}
	}
}

func TestMeleeBaseDamage(t *testing.T) {
	cfg := testCfg(t)
	u := model.NewUnit(1, "Bosun", model.TeamPlayer, model.Stats{Power: 30}, 100, 80, 10, 0)
	if got := MeleeBaseDamage(cfg, u); got != 13 {
		t.Errorf("MeleeBaseDamage = %d, want 10 + round(30*0.1) = 13", got)
	}
}

func TestMeleeBaseDamage_DrunkPenalty(t *testing.T) {
	cfg := testCfg(t)
	u := model.NewUnit(1, "Bosun", model.TeamPlayer, model.Stats{Power: 30}, 100, 80, 10, 0)
	u.AddBuzz(10)
	if got := MeleeBaseDamage(cfg, u); got != 9 {
		t.Errorf("drunk MeleeBaseDamage = %d, want round(13*0.7) = 9", got)
	}
}

func TestRangedBaseDamage(t *testing.T) {
	cfg := testCfg(t)
	u := model.NewUnit(1, "Gunner", model.TeamPlayer, model.Stats{Aim: 24}, 100, 80, 10, 10)
	if got := RangedBaseDamage(cfg, u); got != 10 {
		t.Errorf("RangedBaseDamage = %d, want 8 + round(24*0.1) = 10", got)
	}
}

func TestRoundToInt_HalfAwayFromZero(t *testing.T) {
	cases := map[float64]int{14.3: 14, 14.5: 15, 14.6: 15, -2.5: -3, 0.4: 0}
	for in, want := range cases {
		if got := RoundToInt(in); got != want {
			t.Errorf("RoundToInt(%v) = %d, want %d", in, got, want)
		}
	}
}
