package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Pacman0126/tucker-and-dales-home-services/internal/domain"
	"github.com/Pacman0126/tucker-and-dales-home-services/internal/platform/obs"
)

// DefaultGridDays is the day range a by-slot query covers when the
// caller does not ask for one.
const DefaultGridDays = 28

// ByDateGrid answers "who is available on this date" for every
// slot x category combination, used to render a full day's grid.
func (m *Matcher) ByDateGrid(
	ctx context.Context,
	address string,
	date domain.Date,
) (_ map[domain.TimeSlot]map[domain.ServiceCategory][]domain.CandidateResult, err error) {
	defer obs.Time(ctx, "match.ByDateGrid")(&err)
	obs.RecordMatchQuery("by_date")

	address = strings.TrimSpace(address)
	if address == "" {
		return nil, fmt.Errorf("by-date grid: %w", domain.ErrEmptyAddress)
	}

	slots, err := m.reference.Slots(ctx)
	if err != nil {
		return nil, fmt.Errorf("by-date grid: list slots: %w", err)
	}
	categories, err := m.reference.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("by-date grid: list categories: %w", err)
	}

	// One deadline bounds the whole grid, not each cell. Cells reached
	// after it expires are empty, never an error.
	ctx, cancel := context.WithTimeout(ctx, m.queryTimeout)
	defer cancel()

	grid := make(map[domain.TimeSlot]map[domain.ServiceCategory][]domain.CandidateResult, len(slots))
	for _, slot := range slots {
		row := make(map[domain.ServiceCategory][]domain.CandidateResult, len(categories))
		for _, category := range categories {
			if ctx.Err() != nil {
				row[category] = []domain.CandidateResult{}
				continue
			}
			results, err := m.feasibleForSlot(ctx, address, date, slot, category)
			if err != nil {
				if ctx.Err() != nil {
					row[category] = []domain.CandidateResult{}
					continue
				}
				return nil, fmt.Errorf("by-date grid: slot %q category %q: %w", slot.Label, category.Name, err)
			}
			row[category] = results
		}
		grid[slot] = row
	}

	return grid, nil
}

// BySlotGrid answers "who is available in this time window" for every
// day x category combination over numDays starting at start, used to
// render a multi-week grid for a fixed slot. numDays <= 0 falls back
// to DefaultGridDays.
func (m *Matcher) BySlotGrid(
	ctx context.Context,
	address string,
	slotID int,
	start domain.Date,
	numDays int,
) (_ map[domain.Date]map[domain.ServiceCategory][]domain.CandidateResult, err error) {
	defer obs.Time(ctx, "match.BySlotGrid")(&err)
	obs.RecordMatchQuery("by_slot")

	address = strings.TrimSpace(address)
	if address == "" {
		return nil, fmt.Errorf("by-slot grid: %w", domain.ErrEmptyAddress)
	}
	if numDays <= 0 {
		numDays = DefaultGridDays
	}

	slot, err := m.reference.SlotByID(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("by-slot grid: slot %d: %w", slotID, err)
	}
	categories, err := m.reference.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("by-slot grid: list categories: %w", err)
	}

	// Same deadline policy as ByDateGrid: the budget covers all
	// numDays x categories cells together.
	ctx, cancel := context.WithTimeout(ctx, m.queryTimeout)
	defer cancel()

	grid := make(map[domain.Date]map[domain.ServiceCategory][]domain.CandidateResult, numDays)
	for i := 0; i < numDays; i++ {
		day := start.AddDays(i)
		row := make(map[domain.ServiceCategory][]domain.CandidateResult, len(categories))
		for _, category := range categories {
			if ctx.Err() != nil {
				row[category] = []domain.CandidateResult{}
				continue
			}
			results, err := m.feasibleForSlot(ctx, address, day, slot, category)
			if err != nil {
				if ctx.Err() != nil {
					row[category] = []domain.CandidateResult{}
					continue
				}
				return nil, fmt.Errorf("by-slot grid: day %s category %q: %w", day, category.Name, err)
			}
			row[category] = results
		}
		grid[day] = row
	}

	return grid, nil
}
