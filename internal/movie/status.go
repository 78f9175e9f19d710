package movie

import "time"

// Status represents the release lifecycle of a movie.
type Status string

const (
	StatusAnnounced Status = "announced"
	StatusInCinemas Status = "inCinemas"
	StatusReleased  Status = "released"
)

// cinemaWindow is how long a movie is assumed to stay theatrical-only
// before it is treated as released when no physical date is known.
const cinemaWindow = 3 * 30 * 24 * time.Hour

// ResolveStatus derives the release status from the theatrical and
// physical release dates. It is total: absent dates are valid and no
// input combination fails. The physical-release check is applied last
// and wins, so a status never regresses from released once both dates
// are in the past.
func ResolveStatus(now time.Time, inCinemas, physicalRelease *time.Time) Status {
	status := StatusAnnounced

	switch {
	case inCinemas != nil && physicalRelease != nil:
		if !now.Before(*inCinemas) {
			status = StatusInCinemas
		}
		if !now.Before(*physicalRelease) {
			status = StatusReleased
		}
	case inCinemas != nil:
		if !now.Before(*inCinemas) {
			status = StatusInCinemas
		}
	case physicalRelease != nil:
		if !now.Before(*physicalRelease) {
			status = StatusReleased
		}
	}

	// The provider often lacks physical release dates, so assume a title
	// that has been theatrical for more than three months is out.
	if status == StatusInCinemas && physicalRelease == nil && now.Sub(*inCinemas) > cinemaWindow {
		status = StatusReleased
	}

	return status
}
