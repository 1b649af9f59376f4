package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/smolyakoff/grognard/internal/game/battle"
)

// BattleReport is one persisted battle outcome.
type BattleReport struct {
	ID       int64
	FoughtAt time.Time
	Seed     int64
	Summary  battle.Summary
}

// BattleRepository stores finished battle summaries.
type BattleRepository struct {
	db *pgxpool.Pool
}

// NewBattleRepository creates a new BattleRepository.
func NewBattleRepository(db *pgxpool.Pool) *BattleRepository {
	return &BattleRepository{db: db}
}

// Save inserts a battle report and returns its assigned ID.
func (r *BattleRepository) Save(ctx context.Context, seed int64, s battle.Summary) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO battles
		   (seed, rounds, winner, damage_dealt, morale_damage, healing_done,
		    effects_applied, effects_resisted, deaths, surrenders, energy_drained)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id`,
		seed, s.Rounds, s.Winner, s.DamageDealt, s.MoraleDamage, s.HealingDone,
		s.EffectsApplied, s.EffectsResisted, s.Deaths, s.Surrenders, s.EnergyDrained,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting battle report: %w", err)
	}
	return id, nil
}

// Get loads one battle report by ID. Returns nil, nil if not found.
func (r *BattleRepository) Get(ctx context.Context, id int64) (*BattleReport, error) {
	var rep BattleReport
	err := r.db.QueryRow(ctx,
		`SELECT id, fought_at, seed, rounds, winner, damage_dealt, morale_damage,
		        healing_done, effects_applied, effects_resisted, deaths, surrenders,
		        energy_drained
		 FROM battles WHERE id = $1`, id,
	).Scan(&rep.ID, &rep.FoughtAt, &rep.Seed, &rep.Summary.Rounds, &rep.Summary.Winner,
		&rep.Summary.DamageDealt, &rep.Summary.MoraleDamage, &rep.Summary.HealingDone,
		&rep.Summary.EffectsApplied, &rep.Summary.EffectsResisted, &rep.Summary.Deaths,
		&rep.Summary.Surrenders, &rep.Summary.EnergyDrained)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying battle report %d: %w", id, err)
	}
	return &rep, nil
}

// ListRecent returns the most recently fought battles, newest first.
func (r *BattleRepository) ListRecent(ctx context.Context, limit int) ([]BattleReport, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, fought_at, seed, rounds, winner, damage_dealt, morale_damage,
		        healing_done, effects_applied, effects_resisted, deaths, surrenders,
		        energy_drained
		 FROM battles ORDER BY fought_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent battles: %w", err)
	}
	defer rows.Close()

	reports := make([]BattleReport, 0, limit)
	for rows.Next() {
		var rep BattleReport
		if err := rows.Scan(&rep.ID, &rep.FoughtAt, &rep.Seed, &rep.Summary.Rounds,
			&rep.Summary.Winner, &rep.Summary.DamageDealt, &rep.Summary.MoraleDamage,
			&rep.Summary.HealingDone, &rep.Summary.EffectsApplied, &rep.Summary.EffectsResisted,
			&rep.Summary.Deaths, &rep.Summary.Surrenders, &rep.Summary.EnergyDrained); err != nil {
			return nil, fmt.Errorf("scanning battle report row: %w", err)
		}
		reports = append(reports, rep)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating battle report rows: %w", err)
	}
	return reports, nil
}
