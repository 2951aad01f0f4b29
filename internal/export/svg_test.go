package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/dynfba/internal/sim"
)

func sampleSeries() *sim.TimeSeries {
	ts := sim.NewTimeSeries(sim.Concentrations{"glc_e": 10})
	ts.Append(0, 2.0, sim.Concentrations{"glc_e": 10})
	ts.Append(1, 2.1, sim.Concentrations{"glc_e": 9.5})
	ts.Append(2, 2.2, sim.Concentrations{"glc_e": 9.0})
	return ts
}

func TestSeriesToSVG(t *testing.T) {
	svg := SeriesToSVG(sampleSeries(), "biomass", 800, 400, "#00ff88")
	if svg == "" {
		t.Fatal("empty svg")
	}
	if !strings.Contains(svg, "<svg") || !strings.Contains(svg, "<path") {
		t.Error("svg missing expected elements")
	}
	if !strings.Contains(svg, ">biomass</text>") {
		t.Error("svg missing column label")
	}
}

func TestSeriesToSVGUnknownColumn(t *testing.T) {
	if svg := SeriesToSVG(sampleSeries(), "nope", 800, 400, "#fff"); svg != "" {
		t.Error("expected empty svg for unknown column")
	}
}

func TestSeriesToSVGTooShort(t *testing.T) {
	ts := sim.NewTimeSeries(sim.Concentrations{})
	ts.Append(0, 1, sim.Concentrations{})
	if svg := SeriesToSVG(ts, "biomass", 800, 400, "#fff"); svg != "" {
		t.Error("expected empty svg for single point")
	}
}

func TestWriteSVG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.svg")
	if err := WriteSVG(path, sampleSeries(), "glc_e", 400, 200); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "<?xml") {
		t.Error("file does not start with xml header")
	}

	if err := WriteSVG(path, sampleSeries(), "nope", 400, 200); err == nil {
		t.Error("expected error for unknown column")
	}
}
