package booking

import (
	"context"
	"time"

	domain "github.com/BelleVueSalon/salon-booking-api/internal/domain/booking"
	"github.com/BelleVueSalon/salon-booking-api/internal/httperr"
	"github.com/BelleVueSalon/salon-booking-api/internal/timezone"
)

type TakenSlots struct {
	repo domain.Repository
	tz   string
}

func NewTakenSlots(repo domain.Repository, tz string) *TakenSlots {
	return &TakenSlots{repo: repo, tz: tz}
}

// Execute returns the distinct HH:mm values occupied by non-cancelled
// appointments on the given day. Without a style filter this reports
// cross-style occupancy: the salon calendar is shared across service
// types. Always re-derived from the store; a day's worth of rows is
// small enough that consistency beats caching.
func (uc *TakenSlots) Execute(
	ctx context.Context,
	dateStr string,
	styleID *uint,
) ([]string, error) {

	loc := timezone.Location(uc.tz)

	date, err := time.ParseInLocation("2006-01-02", dateStr, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	// AddDate keeps the window aligned to local midnight on DST
	// transition days, where the day is not 24 hours long.
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 1)

	times, err := uc.repo.ListScheduledTimes(ctx, start, end, styleID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(times))
	taken := make([]string, 0, len(times))
	for _, t := range times {
		hhmm := t.In(loc).Format("15:04")
		if _, ok := seen[hhmm]; ok {
			continue
		}
		seen[hhmm] = struct{}{}
		taken = append(taken, hhmm)
	}

	return taken, nil
}
