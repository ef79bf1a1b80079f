package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Pacman0126/tucker-and-dales-home-services/internal/domain"
)

// SQLite-backed implementation of the ReferenceRepository port.
type SqliteReferenceRepository struct{ DB *sql.DB }

func NewSqliteReferenceRepository(db *sql.DB) *SqliteReferenceRepository {
	return &SqliteReferenceRepository{DB: db}
}

func (s *SqliteReferenceRepository) Categories(ctx context.Context) ([]domain.ServiceCategory, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite reference repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT category_id, name
	FROM service_categories
	ORDER BY category_id;
	`)
	if err != nil {
		return nil, fmt.Errorf("list categories: query service_categories table: %w", err)
	}
	defer rows.Close()

	categories := make([]domain.ServiceCategory, 0, 8)
	for rows.Next() {
		var c domain.ServiceCategory
		if err := rows.Scan(&c.CategoryID, &c.Name); err != nil {
			return nil, fmt.Errorf("list categories: scan row: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list categories: row iteration: %w", err)
	}

	return categories, nil
}

func (s *SqliteReferenceRepository) CategoryByID(ctx context.Context, categoryID int) (domain.ServiceCategory, error) {
	if s.DB == nil {
		return domain.ServiceCategory{}, errors.New("sqlite reference repository: DB is nil")
	}

	var c domain.ServiceCategory
	err := s.DB.QueryRowContext(ctx, `
	SELECT category_id, name
	FROM service_categories
	WHERE category_id = ?;
	`, categoryID).Scan(&c.CategoryID, &c.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ServiceCategory{}, fmt.Errorf("category %d: %w", categoryID, domain.ErrUnknownCategory)
	}
	if err != nil {
		return domain.ServiceCategory{}, fmt.Errorf("category by id: query service_categories table: %w", err)
	}

	return c, nil
}

// Return all slots in strictly increasing ordinal order.
func (s *SqliteReferenceRepository) Slots(ctx context.Context) ([]domain.TimeSlot, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite reference repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT slot_id, label, ordinal
	FROM time_slots
	ORDER BY ordinal;
	`)
	if err != nil {
		return nil, fmt.Errorf("list slots: query time_slots table: %w", err)
	}
	defer rows.Close()

	slots := make([]domain.TimeSlot, 0, 8)
	for rows.Next() {
		var t domain.TimeSlot
		if err := rows.Scan(&t.SlotID, &t.Label, &t.Ordinal); err != nil {
			return nil, fmt.Errorf("list slots: scan row: %w", err)
		}
		slots = append(slots, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list slots: row iteration: %w", err)
	}

	return slots, nil
}

func (s *SqliteReferenceRepository) SlotByID(ctx context.Context, slotID int) (domain.TimeSlot, error) {
	if s.DB == nil {
		return domain.TimeSlot{}, errors.New("sqlite reference repository: DB is nil")
	}

	var t domain.TimeSlot
	err := s.DB.QueryRowContext(ctx, `
	SELECT slot_id, label, ordinal
	FROM time_slots
	WHERE slot_id = ?;
	`, slotID).Scan(&t.SlotID, &t.Label, &t.Ordinal)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.TimeSlot{}, fmt.Errorf("slot %d: %w", slotID, domain.ErrUnknownSlot)
	}
	if err != nil {
		return domain.TimeSlot{}, fmt.Errorf("slot by id: query time_slots table: %w", err)
	}

	return t, nil
}
