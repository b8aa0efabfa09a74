package process

import (
	"encoding/csv"
	"io"
	"strconv"

	"gonum.org/v1/gonum/floats"
)

// ExportRow is one sampled line of the debug table.
type ExportRow struct {
	Time  float64
	Phase Phase
	Feed  float64
	Pitch float64
	Cut   float64
	Coils float64
}

// Export samples p at n evenly spaced times across [0, TotalCycleTime],
// both ends included. n < 2 yields a single row at t=0.
func Export(p *CompressionSpringProcess, n int) []ExportRow {
	if p == nil || n < 1 {
		return nil
	}
	times := []float64{0}
	if n >= 2 {
		times = floats.Span(make([]float64, n), 0, p.TotalCycleTime)
	}

	rows := make([]ExportRow, len(times))
	for i, t := range times {
		pos := Sample(p, t)
		rows[i] = ExportRow{
			Time:  t,
			Phase: pos.CurrentPhase,
			Feed:  pos.Feed,
			Pitch: pos.Pitch,
			Cut:   pos.Cut,
			Coils: pos.CurrentCoils,
		}
	}
	return rows
}

// WriteExport writes rows as CSV with a header line.
func WriteExport(w io.Writer, rows []ExportRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"time", "phase", "feed", "pitch", "cut", "coils"}); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			formatFloat(r.Time),
			string(r.Phase),
			formatFloat(r.Feed),
			formatFloat(r.Pitch),
			formatFloat(r.Cut),
			formatFloat(r.Coils),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
