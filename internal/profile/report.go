package profile

import (
	"fmt"
	"io"
)

// WriteReport writes the summary of r:
//
//	<variant>
//	Tot Turns: <n> Time: <ms>
//	Max Turns: <n> Time: <ms>
//	Avg Turns: <n> Time: <ms>
//	Min Turns: <n> Time: <ms>
//
// followed by a blank line.
func WriteReport(w io.Writer, r *Report) error {
	if _, err := fmt.Fprintln(w, r.Variant.Name); err != nil {
		return err
	}
	s := r.Summary
	for _, line := range []struct {
		label string
		info  Info
	}{
		{"Tot", s.Total},
		{"Max", s.Maximum},
		{"Avg", s.Average},
		{"Min", s.Minimum},
	} {
		if err := writeInfo(w, line.label, line.info); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

// WriteTrials writes one line per trial in the same layout as the summary.
func WriteTrials(w io.Writer, r *Report) error {
	for i, info := range r.Trials {
		if err := writeInfo(w, fmt.Sprintf("#%03d", i), info); err != nil {
			return err
		}
	}
	return nil
}

func writeInfo(w io.Writer, label string, i Info) error {
	_, err := fmt.Fprintf(w, "%s Turns: %d Time: %d\n", label, i.Turns, i.Duration.Milliseconds())
	return err
}
