package stay

import (
	"errors"
	"time"
)

// ErrInventoryInvariant signals that committed occupancy exceeds the room
// count for some night. It indicates a prior allocation bug and is never
// clamped away.
var ErrInventoryInvariant = errors.New("reserved rooms exceed total rooms")

type DayAvailability struct {
	Night      time.Time
	TotalRooms int
	Reserved   int
	Available  int
}

// ComputeAvailability derives per-night counts for a room type from its
// total active room count and the committed occupancy intervals overlapping
// the queried range.
func ComputeAvailability(totalRooms int, occupied []StayRange, r StayRange) ([]DayAvailability, error) {
	nights := r.EachNight()
	out := make([]DayAvailability, 0, len(nights))
	for _, night := range nights {
		reserved := 0
		for _, o := range occupied {
			if o.Covers(night) {
				reserved++
			}
		}
		available := totalRooms - reserved
		if available < 0 {
			return nil, ErrInventoryInvariant
		}
		out = append(out, DayAvailability{
			Night:      night,
			TotalRooms: totalRooms,
			Reserved:   reserved,
			Available:  available,
		})
	}
	return out, nil
}

// FirstShortfall returns the first night with fewer than want rooms free,
// or nil if the whole range can satisfy the request.
func FirstShortfall(days []DayAvailability, want int) *DayAvailability {
	for i := range days {
		if days[i].Available < want {
			return &days[i]
		}
	}
	return nil
}
