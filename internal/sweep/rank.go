package sweep

import "sort"

// Rank orders summaries best-first: lower severity wins, then less curtailed
// energy, then lower losses. Configurations that failed to run sort last.
func Rank(summaries []RunSummary) []RunSummary {
	out := make([]RunSummary, len(summaries))
	copy(out, summaries)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if (a.Err != "") != (b.Err != "") {
			return a.Err == ""
		}
		if a.Severity != b.Severity {
			return a.Severity < b.Severity
		}
		if a.CurtailedMWh != b.CurtailedMWh {
			return a.CurtailedMWh < b.CurtailedMWh
		}
		return a.LossMWh < b.LossMWh
	})
	return out
}
