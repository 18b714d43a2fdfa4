package repository

import (
	"context"
	"database/sql"
	"fmt"

	"feasibility/models"
	"feasibility/utils"

	"github.com/lib/pq"
)

// RuleSchema creates the rule tables. Rows keep their table order in position.
const RuleSchema = `
CREATE TABLE IF NOT EXISTS rule_revisions (
	revision              TEXT PRIMARY KEY,
	match_mode            TEXT NOT NULL DEFAULT 'prefix',
	floor_to_floor_height NUMERIC NOT NULL DEFAULT 3.3,
	core_ratio            NUMERIC NOT NULL DEFAULT 0.14,
	sqm_per_sqft          NUMERIC NOT NULL DEFAULT 0.092903
);
CREATE TABLE IF NOT EXISTS fsi_rules (
	revision       TEXT NOT NULL REFERENCES rule_revisions(revision) ON DELETE CASCADE,
	position       INT NOT NULL,
	category       TEXT NOT NULL,
	min_road_width NUMERIC NOT NULL,
	max_road_width NUMERIC NOT NULL,
	fsi            NUMERIC NOT NULL,
	PRIMARY KEY (revision, position)
);
CREATE TABLE IF NOT EXISTS height_rules (
	revision       TEXT NOT NULL REFERENCES rule_revisions(revision) ON DELETE CASCADE,
	position       INT NOT NULL,
	min_road_width NUMERIC NOT NULL,
	height_limit   NUMERIC NOT NULL,
	PRIMARY KEY (revision, position)
);
CREATE TABLE IF NOT EXISTS setback_rules (
	revision   TEXT NOT NULL REFERENCES rule_revisions(revision) ON DELETE CASCADE,
	position   INT NOT NULL,
	category   TEXT NOT NULL,
	min_height NUMERIC NOT NULL,
	max_height NUMERIC NOT NULL,
	front      NUMERIC NOT NULL,
	side       NUMERIC NOT NULL,
	rear       NUMERIC NOT NULL,
	PRIMARY KEY (revision, position)
);
CREATE TABLE IF NOT EXISTS parking_rules (
	revision      TEXT NOT NULL REFERENCES rule_revisions(revision) ON DELETE CASCADE,
	position      INT NOT NULL,
	category      TEXT NOT NULL,
	unit_area_sqm NUMERIC NOT NULL,
	cars_per_unit NUMERIC NOT NULL,
	PRIMARY KEY (revision, position)
);`

// PostgresRuleRepository reads rule set revisions from the rule tables.
type PostgresRuleRepository struct {
	db *sql.DB
}

func NewPostgresRuleRepository(db *sql.DB) *PostgresRuleRepository {
	return &PostgresRuleRepository{db: db}
}

// EnsureSchema creates the rule tables if they do not exist.
func (p *PostgresRuleRepository) EnsureSchema(ctx context.Context) error {
	ctx, cancel := utils.GetDefaultQueryContext(ctx)
	defer cancel()
	if _, err := p.db.ExecContext(ctx, RuleSchema); err != nil {
		return fmt.Errorf("failed to create rule tables: %w", err)
	}
	return nil
}

// Revisions lists the revision names stored in rule_revisions.
func (p *PostgresRuleRepository) Revisions(ctx context.Context) ([]string, error) {
	ctx, cancel := utils.GetFastQueryContext(ctx)
	defer cancel()

	rows, err := p.db.QueryContext(ctx, `SELECT revision FROM rule_revisions ORDER BY revision`)
	if err != nil {
		return nil, fmt.Errorf("failed to list rule revisions: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// LoadAll reads every requested revision. An empty list loads all of them.
func (p *PostgresRuleRepository) LoadAll(ctx context.Context, revisions []string) ([]models.RuleSet, error) {
	if len(revisions) == 0 {
		var err error
		if revisions, err = p.Revisions(ctx); err != nil {
			return nil, err
		}
	}

	ctx, cancel := utils.GetSlowQueryContext(ctx)
	defer cancel()

	sets := make(map[string]*models.RuleSet)
	var order []string

	rows, err := p.db.QueryContext(ctx, `
		SELECT revision, match_mode, floor_to_floor_height, core_ratio, sqm_per_sqft
		FROM rule_revisions WHERE revision = ANY($1) ORDER BY revision`, pq.Array(revisions))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rule revisions: %w", err)
	}
	for rows.Next() {
		var rs models.RuleSet
		var mode string
		if err := rows.Scan(&rs.Revision, &mode, &rs.FloorToFloorHeight, &rs.CoreRatio, &rs.SqMPerSqFt); err != nil {
			rows.Close()
			return nil, err
		}
		rs.MatchMode = models.MatchMode(mode)
		sets[rs.Revision] = &rs
		order = append(order, rs.Revision)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, name := range revisions {
		if _, ok := sets[name]; !ok {
			return nil, fmt.Errorf("rule revision %q not found", name)
		}
	}

	if err := p.loadFSI(ctx, revisions, sets); err != nil {
		return nil, err
	}
	if err := p.loadHeight(ctx, revisions, sets); err != nil {
		return nil, err
	}
	if err := p.loadSetbacks(ctx, revisions, sets); err != nil {
		return nil, err
	}
	if err := p.loadParking(ctx, revisions, sets); err != nil {
		return nil, err
	}

	out := make([]models.RuleSet, 0, len(order))
	for _, name := range order {
		out = append(out, sets[name].WithDefaults())
	}
	return out, nil
}

func (p *PostgresRuleRepository) loadFSI(ctx context.Context, revisions []string, sets map[string]*models.RuleSet) error {
	rows, err := p.db.QueryContext(ctx, `
		SELECT revision, category, min_road_width, max_road_width, fsi
		FROM fsi_rules WHERE revision = ANY($1) ORDER BY revision, position`, pq.Array(revisions))
	if err != nil {
		return fmt.Errorf("failed to fetch fsi rules: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var rev string
		var r models.FSIRule
		if err := rows.Scan(&rev, &r.Category, &r.MinRoadWidth, &r.MaxRoadWidth, &r.FSI); err != nil {
			return err
		}
		sets[rev].FSI = append(sets[rev].FSI, r)
	}
	return rows.Err()
}

func (p *PostgresRuleRepository) loadHeight(ctx context.Context, revisions []string, sets map[string]*models.RuleSet) error {
	rows, err := p.db.QueryContext(ctx, `
		SELECT revision, min_road_width, height_limit
		FROM height_rules WHERE revision = ANY($1) ORDER BY revision, position`, pq.Array(revisions))
	if err != nil {
		return fmt.Errorf("failed to fetch height rules: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var rev string
		var r models.HeightRule
		if err := rows.Scan(&rev, &r.MinRoadWidth, &r.HeightLimit); err != nil {
			return err
		}
		sets[rev].Height = append(sets[rev].Height, r)
	}
	return rows.Err()
}

func (p *PostgresRuleRepository) loadSetbacks(ctx context.Context, revisions []string, sets map[string]*models.RuleSet) error {
	rows, err := p.db.QueryContext(ctx, `
		SELECT revision, category, min_height, max_height, front, side, rear
		FROM setback_rules WHERE revision = ANY($1) ORDER BY revision, position`, pq.Array(revisions))
	if err != nil {
		return fmt.Errorf("failed to fetch setback rules: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var rev string
		var r models.SetbackRule
		if err := rows.Scan(&rev, &r.Category, &r.MinHeight, &r.MaxHeight, &r.Front, &r.Side, &r.Rear); err != nil {
			return err
		}
		sets[rev].Setback = append(sets[rev].Setback, r)
	}
	return rows.Err()
}

func (p *PostgresRuleRepository) loadParking(ctx context.Context, revisions []string, sets map[string]*models.RuleSet) error {
	rows, err := p.db.QueryContext(ctx, `
		SELECT revision, category, unit_area_sqm, cars_per_unit
		FROM parking_rules WHERE revision = ANY($1) ORDER BY revision, position`, pq.Array(revisions))
	if err != nil {
		return fmt.Errorf("failed to fetch parking rules: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var rev string
		var r models.ParkingRule
		if err := rows.Scan(&rev, &r.Category, &r.UnitAreaSqM, &r.CarsPerUnit); err != nil {
			return err
		}
		sets[rev].Parking = append(sets[rev].Parking, r)
	}
	return rows.Err()
}

// Save replaces one revision inside a single transaction.
func (p *PostgresRuleRepository) Save(ctx context.Context, rs models.RuleSet) (err error) {
	rs = rs.WithDefaults()
	ctx, cancel := utils.GetSlowQueryContext(ctx)
	defer cancel()

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM rule_revisions WHERE revision = $1`, rs.Revision); err != nil {
		return fmt.Errorf("failed to clear revision %s: %w", rs.Revision, err)
	}
	if _, err = tx.ExecContext(ctx, `
		INSERT INTO rule_revisions (revision, match_mode, floor_to_floor_height, core_ratio, sqm_per_sqft)
		VALUES ($1, $2, $3, $4, $5)`,
		rs.Revision, string(rs.MatchMode), rs.FloorToFloorHeight, rs.CoreRatio, rs.SqMPerSqFt); err != nil {
		return fmt.Errorf("failed to insert revision %s: %w", rs.Revision, err)
	}
	for i, r := range rs.FSI {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO fsi_rules (revision, position, category, min_road_width, max_road_width, fsi)
			VALUES ($1, $2, $3, $4, $5, $6)`, rs.Revision, i, r.Category, r.MinRoadWidth, r.MaxRoadWidth, r.FSI); err != nil {
			return fmt.Errorf("failed to insert fsi rule %d: %w", i+1, err)
		}
	}
	for i, r := range rs.Height {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO height_rules (revision, position, min_road_width, height_limit)
			VALUES ($1, $2, $3, $4)`, rs.Revision, i, r.MinRoadWidth, r.HeightLimit); err != nil {
			return fmt.Errorf("failed to insert height rule %d: %w", i+1, err)
		}
	}
	for i, r := range rs.Setback {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO setback_rules (revision, position, category, min_height, max_height, front, side, rear)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			rs.Revision, i, r.Category, r.MinHeight, r.MaxHeight, r.Front, r.Side, r.Rear); err != nil {
			return fmt.Errorf("failed to insert setback rule %d: %w", i+1, err)
		}
	}
	for i, r := range rs.Parking {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO parking_rules (revision, position, category, unit_area_sqm, cars_per_unit)
			VALUES ($1, $2, $3, $4, $5)`, rs.Revision, i, r.Category, r.UnitAreaSqM, r.CarsPerUnit); err != nil {
			return fmt.Errorf("failed to insert parking rule %d: %w", i+1, err)
		}
	}

	return tx.Commit()
}
