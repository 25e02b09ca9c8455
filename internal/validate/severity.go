package validate

// Severity classifies one validation finding. Order matters: higher is worse,
// and an aggregate's overall severity is the worst of its records.
type Severity int

const (
	SeverityValid Severity = iota
	SeverityWarning
	SeverityError
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityValid:
		return "Valid"
	case SeverityWarning:
		return "Warning"
	case SeverityError:
		return "Error"
	case SeverityCritical:
		return "Critical"
	default:
		return "Unknown"
	}
}

// Marker is the status prefix used in plain-text reports.
func (s Severity) Marker() string {
	switch s {
	case SeverityValid:
		return "[OK]"
	case SeverityWarning:
		return "[WARN]"
	case SeverityError:
		return "[ERR]"
	case SeverityCritical:
		return "[CRIT]"
	default:
		return "[?]"
	}
}

// Record is one checked property. Domain findings are carried as records,
// never as Go errors, so a sweep can keep going past a failing configuration.
type Record struct {
	Severity   Severity
	Check      string
	Message    string
	Measured   float64
	Threshold  float64
	Suggestion string
}

// Validation aggregates the records of one validator invocation.
type Validation struct {
	Records []Record
	Flows   Flows
	Overall Severity
}

// Flows are the derived energy quantities the balance checks compare.
type Flows struct {
	SolarEnergyMWh       float64
	BessEnergyMWh        float64
	ExportedEnergyMWh    float64
	TheoreticalEnergyMWh float64
	ChargeEnergyMWh      float64
	DischargeEnergyMWh   float64
	TotalLossMWh         float64
	CurtailedEnergyMWh   float64
	StoredDeltaMWh       float64

	LossPct           float64
	BESSEfficiencyPct float64
}

func (v *Validation) add(r Record) {
	v.Records = append(v.Records, r)
	if r.Severity > v.Overall {
		v.Overall = r.Severity
	}
}

// Merge folds another validation's records into this one.
func (v *Validation) Merge(other *Validation) {
	if other == nil {
		return
	}
	for _, r := range other.Records {
		v.add(r)
	}
}
