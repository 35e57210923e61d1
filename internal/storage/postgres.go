package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"

	"github.com/akozadaev/go_branch_analytics/internal/models"
)

// PostgresStorage читает районы, филиалы и месячные показатели из PostgreSQL.
// Реализует analytics.DataSource.
type PostgresStorage struct {
	db *sql.DB // Подключение к базе данных PostgreSQL
}

// NewPostgresStorage создает новый экземпляр PostgresStorage и устанавливает подключение к БД.
// DSN должен быть в формате: "host=... port=... user=... password=... dbname=... sslmode=..."
func NewPostgresStorage(dsn string, maxOpenConns int) (*PostgresStorage, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if maxOpenConns > 0 {
		db.SetMaxOpenConns(maxOpenConns)
		db.SetMaxIdleConns(maxOpenConns)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStorage{db: db}, nil
}

// Ping проверяет доступность базы данных.
func (ps *PostgresStorage) Ping(ctx context.Context) error {
	return ps.db.PingContext(ctx)
}

// Close закрывает подключение к базе данных PostgreSQL.
func (ps *PostgresStorage) Close() error {
	return ps.db.Close()
}

// FetchDistricts возвращает список районов, отсортированный по названию.
func (ps *PostgresStorage) FetchDistricts(ctx context.Context) ([]models.District, error) {
	query := `SELECT id, name, COALESCE(population, 0) FROM districts ORDER BY name, id`

	rows, err := ps.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query districts: %w", err)
	}
	defer rows.Close()

	districts := []models.District{}
	for rows.Next() {
		var d models.District
		if err := rows.Scan(&d.ID, &d.Name, &d.Population); err != nil {
			return nil, fmt.Errorf("failed to scan district: %w", err)
		}
		districts = append(districts, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return districts, nil
}

// FetchBranches возвращает филиалы района, отсортированные по названию.
// districtID = 0 возвращает филиалы всех районов.
func (ps *PostgresStorage) FetchBranches(ctx context.Context, districtID int) ([]models.Branch, error) {
	query := `SELECT id, name, district_id, COALESCE(capacity, 0) FROM branches`
	var args []any
	if districtID != 0 {
		query += ` WHERE district_id = $1`
		args = append(args, districtID)
	}
	query += ` ORDER BY name, id`

	rows, err := ps.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query branches: %w", err)
	}
	defer rows.Close()

	branches := []models.Branch{}
	for rows.Next() {
		var b models.Branch
		if err := rows.Scan(&b.ID, &b.Name, &b.DistrictID, &b.Capacity); err != nil {
			return nil, fmt.Errorf("failed to scan branch: %w", err)
		}
		branches = append(branches, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return branches, nil
}

// recordFilter строит условие WHERE для выборки месячных записей.
// Таблица monthly_records должна иметь псевдоним m, branches - псевдоним b.
func recordFilter(districtID, branchID int, window *models.Window) (string, []any) {
	var (
		conditions []string
		args       []any
	)
	add := func(format string, values ...any) {
		placeholders := make([]any, len(values))
		for i := range values {
			placeholders[i] = len(args) + i + 1
		}
		conditions = append(conditions, fmt.Sprintf(format, placeholders...))
		args = append(args, values...)
	}

	if districtID != 0 {
		add("b.district_id = $%d", districtID)
	}
	if branchID != 0 {
		add("m.branch_id = $%d", branchID)
	}
	if window != nil {
		add("(m.year * 12 + m.month - 1) BETWEEN $%d AND $%d", int(window.Start), int(window.End))
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// FetchMonthlyRecords возвращает месячные записи вместе с детализацией.
// Отсутствующая детализация и пустые значения возвращаются как 0.
func (ps *PostgresStorage) FetchMonthlyRecords(ctx context.Context, q models.RecordQuery) ([]models.MonthlyRecord, error) {
	where, args := recordFilter(q.DistrictID, q.BranchID, q.Window)
	query := `
		SELECT m.id, m.branch_id, m.year, m.month,
			COALESCE(m.revenue, 0), COALESCE(m.cost, 0),
			COALESCE(m.active_members, 0), COALESCE(m.class_participants, 0),
			COALESCE(r.membership_revenue, 0), COALESCE(r.class_revenue, 0), COALESCE(r.other_revenue, 0),
			COALESCE(c.staff_cost, 0), COALESCE(c.rent_cost, 0), COALESCE(c.electricity_cost, 0),
			COALESCE(c.water_cost, 0), COALESCE(c.maintenance_cost, 0), COALESCE(c.other_cost, 0)
		FROM monthly_records m
		JOIN branches b ON b.id = m.branch_id
		LEFT JOIN revenue_breakdowns r ON r.monthly_record_id = m.id
		LEFT JOIN cost_breakdowns c ON c.monthly_record_id = m.id` + where + `
		ORDER BY m.year, m.month, m.branch_id`

	rows, err := ps.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly records: %w", err)
	}
	defer rows.Close()

	records := []models.MonthlyRecord{}
	for rows.Next() {
		var rec models.MonthlyRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.BranchID,
			&rec.Year,
			&rec.Month,
			&rec.Revenue,
			&rec.Cost,
			&rec.ActiveMembers,
			&rec.ClassParticipants,
			&rec.Revenues.Membership,
			&rec.Revenues.Class,
			&rec.Revenues.Other,
			&rec.Costs.Staff,
			&rec.Costs.Rent,
			&rec.Costs.Electricity,
			&rec.Costs.Water,
			&rec.Costs.Maintenance,
			&rec.Costs.Other,
		); err != nil {
			return nil, fmt.Errorf("failed to scan monthly record: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return records, nil
}

// MaxMonthIndex возвращает последний месяц с данными в районе или филиале.
// Нулевые идентификаторы означают отсутствие фильтра.
func (ps *PostgresStorage) MaxMonthIndex(ctx context.Context, districtID, branchID int) (models.MonthIndex, bool, error) {
	where, args := recordFilter(districtID, branchID, nil)
	query := `
		SELECT MAX(m.year * 12 + m.month - 1)
		FROM monthly_records m
		JOIN branches b ON b.id = m.branch_id` + where

	var maxIndex sql.NullInt64
	if err := ps.db.QueryRowContext(ctx, query, args...).Scan(&maxIndex); err != nil {
		return 0, false, fmt.Errorf("failed to query max month index: %w", err)
	}
	if !maxIndex.Valid {
		return 0, false, nil
	}
	return models.MonthIndex(maxIndex.Int64), true, nil
}
