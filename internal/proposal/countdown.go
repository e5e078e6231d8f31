package proposal

import "time"

// TimeLeft is the remaining validity split into display units.
type TimeLeft struct {
	Days    int  `json:"days"`
	Hours   int  `json:"hours"`
	Minutes int  `json:"minutes"`
	Seconds int  `json:"seconds"`
	Expired bool `json:"expired"`
}

// Countdown returns the time from now until target, truncated to whole
// seconds. Once now reaches target every unit is zero and Expired is set.
func Countdown(target, now time.Time) TimeLeft {
	d := target.Sub(now)
	if d <= 0 {
		return TimeLeft{Expired: true}
	}
	secs := int64(d / time.Second)
	return TimeLeft{
		Days:    int(secs / 86400),
		Hours:   int(secs % 86400 / 3600),
		Minutes: int(secs % 3600 / 60),
		Seconds: int(secs % 60),
	}
}
