package teetime

import "github.com/shopspring/decimal"

// DailyStats summarizes one day of the tee sheet.
type DailyStats struct {
	Day            int
	TotalSlots     int
	AvailableSlots int
	BookedSlots    int
	CheckedIn      int
	InProgress     int
	Completed      int
	NoShows        int
	Cancelled      int
	TotalGolfers   int
	TotalRevenue   decimal.Decimal
	BookingRate    float64
}

// DailyStats classifies every slot of day by status. Golfers and revenue are
// summed over the reserved family only.
func (s *State) DailyStats(day int) DailyStats {
	return AggregateStats(day, s.TeeTimes(day))
}

// AggregateStats reduces a slot sequence into daily counters.
func AggregateStats(day int, slots []*TeeTime) DailyStats {
	stats := DailyStats{Day: day, TotalSlots: len(slots), TotalRevenue: decimal.Zero}
	for _, slot := range slots {
		switch slot.Status {
		case StatusAvailable:
			stats.AvailableSlots++
		case StatusNoShow:
			stats.NoShows++
		case StatusCancelled:
			stats.Cancelled++
		case StatusReserved, StatusCheckedIn, StatusInProgress, StatusCompleted:
			stats.BookedSlots++
			stats.TotalGolfers += slot.GroupSize
			stats.TotalRevenue = stats.TotalRevenue.Add(slot.TotalRevenue)
			switch slot.Status {
			case StatusCheckedIn:
				stats.CheckedIn++
			case StatusInProgress:
				stats.InProgress++
			case StatusCompleted:
				stats.Completed++
			}
		}
	}
	if stats.TotalSlots > 0 {
		stats.BookingRate = float64(stats.BookedSlots) / float64(stats.TotalSlots)
	}
	return stats
}
