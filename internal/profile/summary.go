// Package profile times repeated simulation runs per variant and aggregates
// the turn counts and durations into minimum, maximum, average and total.
package profile

import "time"

// Info records one run: how long it took and how many turns kept it alive.
type Info struct {
	Duration time.Duration
	Turns    int
}

// Summary aggregates the Infos of one variant.
//
// Invariant: Minimum <= Average <= Maximum component-wise when Trials > 0.
type Summary struct {
	Trials  int
	Total   Info
	Maximum Info
	Average Info
	Minimum Info
}

// Summarize folds infos into a Summary. Average is Total divided by the trial
// count using integer division.
//
// Postcondition: an empty slice yields the zero Summary.
func Summarize(infos []Info) Summary {
	if len(infos) == 0 {
		return Summary{}
	}
	s := Summary{
		Trials:  len(infos),
		Maximum: infos[0],
		Minimum: infos[0],
	}
	for _, i := range infos {
		s.Total.Duration += i.Duration
		s.Total.Turns += i.Turns
		s.Maximum.Duration = max(s.Maximum.Duration, i.Duration)
		s.Maximum.Turns = max(s.Maximum.Turns, i.Turns)
		s.Minimum.Duration = min(s.Minimum.Duration, i.Duration)
		s.Minimum.Turns = min(s.Minimum.Turns, i.Turns)
	}
	s.Average.Duration = s.Total.Duration / time.Duration(s.Trials)
	s.Average.Turns = s.Total.Turns / s.Trials
	return s
}
