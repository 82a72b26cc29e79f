package models

// The weekly timetable is a fixed grid: six days (Monday through Saturday)
// of eight periods each. All 48 cells exist from initialization on; cells
// are only ever updated in place, never added or removed.
const (
	ScheduleDays    = 6
	SchedulePeriods = 8
	ScheduleCells   = ScheduleDays * SchedulePeriods
)

// ScheduleCell is one (day, period) slot of the grid. Day and Period
// identify the slot and never change; the remaining fields are free text.
type ScheduleCell struct {
	ID        string `json:"id"`
	Day       int    `json:"day"`    // 0-5, Monday-Saturday
	Period    int    `json:"period"` // 1-8
	Subject   string `json:"subject,omitempty"`
	Room      string `json:"room,omitempty"`
	Professor string `json:"professor,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

var dayNames = [ScheduleDays]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

var periodTimes = [SchedulePeriods]string{
	"8:30 - 9:30",
	"9:30 - 10:30",
	"10:30 - 11:30",
	"11:30 - 12:30",
	"13:30 - 14:30",
	"14:30 - 15:30",
	"15:30 - 16:30",
	"16:30 - 17:30",
}

// DayName returns the weekday label for day indexes 0-5, "" otherwise.
func DayName(day int) string {
	if day < 0 || day >= ScheduleDays {
		return ""
	}
	return dayNames[day]
}

// PeriodTime returns the wall-clock span for periods 1-8, "" otherwise.
func PeriodTime(period int) string {
	if period < 1 || period > SchedulePeriods {
		return ""
	}
	return periodTimes[period-1]
}
