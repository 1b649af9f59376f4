// Command battlesim runs scripted skirmishes through the combat engine.
// One run fights a single battle and prints the event log; with -n it
// fights many battles in parallel and reports aggregate outcomes,
// optionally persisting each report to PostgreSQL.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/smolyakoff/grognard/internal/config"
	"github.com/smolyakoff/grognard/internal/db"
	"github.com/smolyakoff/grognard/internal/game/battle"
	"github.com/smolyakoff/grognard/internal/game/event"
	"github.com/smolyakoff/grognard/internal/game/status"
	"github.com/smolyakoff/grognard/internal/model"
)

const maxRounds = 50

func main() {
	configPath := flag.String("config", "config/grognard.yaml", "path to config file")
	count := flag.Int("n", 1, "number of battles to simulate")
	seed := flag.Int64("seed", 1, "base RNG seed; battle i uses seed+i")
	flag.Parse()

	if err := run(context.Background(), *configPath, *count, *seed); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string, count int, seed int64) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))
	slog.Info("battlesim starting", "battles", count, "seed", seed)

	summaries := make([]battle.Summary, count)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i := 0; i < count; i++ {
		i := i
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			s, err := fightBattle(&cfg.Combat, seed+int64(i))
			if err != nil {
				return fmt.Errorf("battle %d: %w", i, err)
			}
			summaries[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	report(summaries)

	if cfg.Database.Enabled {
		if err := persist(ctx, &cfg, seed, summaries); err != nil {
			return fmt.Errorf("persisting reports: %w", err)
		}
	}
	return nil
}

// fightBattle runs one full battle between the fixture squads with a
// simple scripted AI: each unit shoots while it has arrows, swings
// otherwise, and occasionally lobs a tar flask.
func fightBattle(cfg *config.Combat, seed int64) (battle.Summary, error) {
	rng := rand.New(rand.NewSource(seed))

	bus := event.NewBus()
	rec := battle.NewRecorder(bus)

	units := fixtureSquads(rng)
	b, err := battle.New(cfg, bus, units)
	if err != nil {
		return battle.Summary{}, err
	}
	exec := battle.NewExecutor(b, nil)

	if err := b.StartRound(); err != nil {
		return battle.Summary{}, err
	}
	for !b.Ended() && b.Round() <= maxRounds {
		actSide(b, exec, rng)
		if b.Ended() {
			break
		}
		if err := b.EndSide(); err != nil {
			return battle.Summary{}, err
		}
	}
	if !b.Ended() {
		// Stalemate guard: call it for whoever has more units standing.
		if len(b.UnitsOn(model.TeamPlayer)) >= len(b.UnitsOn(model.TeamEnemy)) {
			b.End(model.TeamPlayer)
		} else {
			b.End(model.TeamEnemy)
		}
	}
	return rec.Summary(), nil
}

func actSide(b *battle.Battle, exec *battle.Executor, rng *rand.Rand) {
	side := b.Acting()
	for _, u := range b.UnitsOn(side) {
		if b.Ended() {
			return
		}
		if !u.CanAct() {
			continue
		}
		tgt := pickTarget(b, side.Opponent())
		if tgt == nil {
			return
		}

		if rng.Float64() < 0.2 {
			err := exec.Execute(u.ID, tgt.ID, tarFlask())
			if err == nil {
				continue
			}
			// Not enough energy or bad target: fall through to a
			// plain attack.
		}

		melee := u.Arrows == 0 || rng.Float64() < 0.5
		_, err := b.ResolveAttack(u.ID, tgt.ID, melee, rng.Float64() < 0.3, 0, 0)
		if err != nil {
			slog.Debug("attack rejected", "unit", u.Name, "err", err)
		}
	}
}

func pickTarget(b *battle.Battle, side model.Team) *model.Unit {
	for _, u := range b.UnitsOn(side) {
		if b.Ledger(u.ID).CanBePrimaryTarget() {
			return u
		}
	}
	return nil
}

func tarFlask() battle.EffectDescriptor {
	return battle.EffectDescriptor{
		Name:       "Tar Flask",
		EnergyCost: 2,
		Action:     battle.ActionApplyStatus,
		Status:     &battle.StatusSpec{Kind: status.Burning, Duration: 3, Value1: 4},
	}
}

// fixtureSquads builds the two test squads. Enemy stats get a small
// seeded jitter so different seeds produce different battles.
func fixtureSquads(rng *rand.Rand) []*model.Unit {
	jitter := func(v int) int { return v + rng.Intn(5) - 2 }
	return []*model.Unit{
		model.NewUnit(1, "Bosun Hale", model.TeamPlayer, model.Stats{Power: 34, Aim: 18, Tactics: 22, Speed: 14, Grit: 26, Hull: 30, Proficiency: 20, Skill: 16}, 120, 80, 10, 12),
		model.NewUnit(2, "Quartermaster Price", model.TeamPlayer, model.Stats{Power: 20, Aim: 32, Tactics: 28, Speed: 18, Grit: 18, Hull: 22, Proficiency: 24, Skill: 22}, 95, 70, 10, 24),
		model.NewUnit(3, "Deckhand Mott", model.TeamPlayer, model.Stats{Power: 26, Aim: 24, Tactics: 14, Speed: 22, Grit: 20, Hull: 24, Proficiency: 16, Skill: 12}, 105, 60, 8, 18),
		model.NewUnit(10, "Reef Raider", model.TeamEnemy, model.Stats{Power: jitter(30), Aim: jitter(16), Tactics: jitter(12), Speed: jitter(16), Grit: jitter(22), Hull: jitter(26), Proficiency: jitter(14), Skill: jitter(10)}, 110, 65, 10, 10),
		model.NewUnit(11, "Reef Sharpshooter", model.TeamEnemy, model.Stats{Power: jitter(18), Aim: jitter(30), Tactics: jitter(18), Speed: jitter(20), Grit: jitter(16), Hull: jitter(20), Proficiency: jitter(18), Skill: jitter(14)}, 90, 60, 10, 26),
		model.NewUnit(12, "Reef Brute", model.TeamEnemy, model.Stats{Power: jitter(38), Aim: jitter(10), Tactics: jitter(8), Speed: jitter(10), Grit: jitter(30), Hull: jitter(34), Proficiency: jitter(10), Skill: jitter(8)}, 140, 70, 12, 0),
	}
}

func report(summaries []battle.Summary) {
	wins := map[string]int{}
	var totalRounds, totalDamage int
	for _, s := range summaries {
		wins[s.Winner]++
		totalRounds += s.Rounds
		totalDamage += s.DamageDealt
	}
	n := len(summaries)
	slog.Info("simulation finished",
		"battles", n,
		"player_wins", wins[model.TeamPlayer.String()],
		"enemy_wins", wins[model.TeamEnemy.String()],
		"avg_rounds", float64(totalRounds)/float64(n),
		"avg_damage", float64(totalDamage)/float64(n),
	)
}

func persist(ctx context.Context, cfg *config.Config, seed int64, summaries []battle.Summary) error {
	if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	database, err := db.New(ctx, cfg.Database.DSN())
	if err != nil {
		return err
	}
	defer database.Close()

	repo := db.NewBattleRepository(database.Pool())
	for i, s := range summaries {
		id, err := repo.Save(ctx, seed+int64(i), s)
		if err != nil {
			return err
		}
		slog.Debug("battle report saved", "id", id, "winner", s.Winner)
	}
	slog.Info("battle reports saved", "count", len(summaries))
	return nil
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
