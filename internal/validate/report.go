package validate

import (
	"fmt"
	"strings"
)

// FormatReport renders a validation as a plain-text report: one line per
// check with a status marker, then the aggregate metrics and energy flows.
func FormatReport(v *Validation) string {
	if v == nil {
		return ""
	}

	var b strings.Builder
	for _, r := range v.Records {
		fmt.Fprintf(&b, "%-6s %-22s %s (measured=%.4f threshold=%.4f)\n",
			r.Severity.Marker(), r.Check, r.Message, r.Measured, r.Threshold)
		if r.Suggestion != "" {
			fmt.Fprintf(&b, "       -> %s\n", r.Suggestion)
		}
	}

	fmt.Fprintf(&b, "\nOverall: %s\n\n", v.Overall)

	f := v.Flows
	fmt.Fprintf(&b, "%-24s %12.4f MWh\n", "solar energy", f.SolarEnergyMWh)
	fmt.Fprintf(&b, "%-24s %12.4f MWh\n", "bess net energy", f.BessEnergyMWh)
	fmt.Fprintf(&b, "%-24s %12.4f MWh\n", "exported energy", f.ExportedEnergyMWh)
	fmt.Fprintf(&b, "%-24s %12.4f MWh\n", "theoretical energy", f.TheoreticalEnergyMWh)
	fmt.Fprintf(&b, "%-24s %12.4f MWh\n", "charge energy", f.ChargeEnergyMWh)
	fmt.Fprintf(&b, "%-24s %12.4f MWh\n", "discharge energy", f.DischargeEnergyMWh)
	fmt.Fprintf(&b, "%-24s %12.4f MWh\n", "losses", f.TotalLossMWh)
	if f.CurtailedEnergyMWh != 0 {
		fmt.Fprintf(&b, "%-24s %12.4f MWh\n", "curtailed energy", f.CurtailedEnergyMWh)
	}
	if f.StoredDeltaMWh != 0 {
		fmt.Fprintf(&b, "%-24s %12.4f MWh\n", "stored delta", f.StoredDeltaMWh)
	}
	fmt.Fprintf(&b, "%-24s %12.2f %%\n", "loss percentage", f.LossPct)
	fmt.Fprintf(&b, "%-24s %12.2f %%\n", "bess efficiency", f.BESSEfficiencyPct)

	return b.String()
}
