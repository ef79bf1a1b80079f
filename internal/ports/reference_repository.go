package ports

import (
	"context"

	"github.com/Pacman0126/tucker-and-dales-home-services/internal/domain"
)

// Port: read-only access to slow-changing reference data.
type ReferenceRepository interface {
	// Retrieve all service categories, ordered by category ID.
	Categories(ctx context.Context) ([]domain.ServiceCategory, error)

	// Retrieve one category. Returns domain.ErrUnknownCategory when no
	// such category exists.
	CategoryByID(ctx context.Context, categoryID int) (domain.ServiceCategory, error)

	// Retrieve all time slots in strictly increasing ordinal order.
	Slots(ctx context.Context) ([]domain.TimeSlot, error)

	// Retrieve one slot. Returns domain.ErrUnknownSlot when no such
	// slot exists.
	SlotByID(ctx context.Context, slotID int) (domain.TimeSlot, error)
}
