package timezone

import "time"

// DefaultTimezone is the salon's reference zone, used whenever the
// configured zone is missing or unloadable. All appointment timestamps
// are interpreted in the resolved zone.
const DefaultTimezone = "America/New_York"

func Location(tz string) *time.Location {
	if tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, _ := time.LoadLocation(DefaultTimezone)
	return loc
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}
