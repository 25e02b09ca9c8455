package sim

import (
	"encoding/csv"
	"os"
	"strconv"
)

func WriteLedgerCSV(path string, ledger []LedgerRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"index",
		"solar_mw",
		"grid_mw",
		"battery_mw",
		"curtailed_mw",
		"loss_mwh",
		"action",
		"soc_start",
		"soc_end",
		"cum_curtailed_mwh",
		"cum_loss_mwh",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range ledger {
		row := []string{
			strconv.Itoa(r.Index),
			fmtFloat(r.SolarMW),
			fmtFloat(r.GridMW),
			fmtFloat(r.BatteryMW),
			fmtFloat(r.CurtailedMW),
			fmtFloat(r.LossMWh),
			string(r.Action),
			fmtFloat(r.SOCStart),
			fmtFloat(r.SOCEnd),
			fmtFloat(r.CumCurtailedMWh),
			fmtFloat(r.CumLossMWh),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
