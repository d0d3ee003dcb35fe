package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/san-kum/driftfield/internal/automation"
)

// Report is the exported summary of one headless run.
type Report struct {
	Scenario  string             `json:"scenario"`
	Seed      int64              `json:"seed"`
	Frames    int                `json:"frames"`
	Particles int                `json:"particles"`
	IDsIssued uint64             `json:"ids_issued"`
	Metrics   map[string]float64 `json:"metrics"`
	Energy    []float64          `json:"energy"`
	Respawns  []int              `json:"respawns"`
}

func FromResult(r *automation.Result) Report {
	return Report{
		Scenario:  r.Scenario,
		Seed:      r.Seed,
		Frames:    r.Frames,
		Particles: len(r.Last.Particles),
		IDsIssued: r.IDsIssued,
		Metrics:   r.Metrics,
		Energy:    r.Energy,
		Respawns:  r.Respawns,
	}
}

func WriteJSON(w io.Writer, rep Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

// WriteCSV writes one row per frame: index, field energy and respawns.
func WriteCSV(w io.Writer, rep Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"frame", "energy", "respawned"}); err != nil {
		return err
	}
	for i, e := range rep.Energy {
		respawned := 0
		if i < len(rep.Respawns) {
			respawned = rep.Respawns[i]
		}
		row := []string{
			strconv.Itoa(i + 1),
			strconv.FormatFloat(e, 'f', 6, 64),
			strconv.Itoa(respawned),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Export writes rep to path in the given format, "json" or "csv".
func Export(path, format string, rep Report) error {
	var write func(io.Writer, Report) error
	switch format {
	case "json":
		write = WriteJSON
	case "csv":
		write = WriteCSV
	default:
		return fmt.Errorf("unknown report format: %s", format)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	return writeAndClose(file, write, rep)
}

// writeAndClose returns the close error when the write itself succeeded.
func writeAndClose(wc io.WriteCloser, write func(io.Writer, Report) error, rep Report) (err error) {
	defer func() {
		if cerr := wc.Close(); err == nil {
			err = cerr
		}
	}()
	return write(wc, rep)
}
