package main

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/sudorandom/gateway-los-map/pkg/gwmap"
)

type staticDataset gwmap.Dataset

func (s staticDataset) FetchDataset(ctx context.Context) (gwmap.Dataset, error) {
	return gwmap.Dataset(s), nil
}

func newReport(t *testing.T, raw string) report {
	t.Helper()
	var ds gwmap.Dataset
	if err := json.Unmarshal([]byte(raw), &ds); err != nil {
		t.Fatal(err)
	}
	cache := gwmap.NewCache(zerolog.Nop())
	if _, err := cache.LoadAll(context.Background(), staticDataset(ds)); err != nil {
		t.Fatal(err)
	}
	return report{config: gwmap.FallbackConfig, cache: cache, presenter: gwmap.NewPresenter(time.UTC)}
}

const dumpDataset = `{
	"2024-01-02": {
		"b": {"name": "bravo", "lat": 45.69, "lon": 13.74, "visibility": "NLOS"},
		"a": {"name": "alpha", "lat": 45.72, "lon": 13.70, "visibility": "LOS", "graph_path": "/g/a.png",
			"measurements": [{"gwTime": "2024-01-02T10:00:00Z", "rssi": -100, "snr": 5.5}]}
	},
	"2024-01-01": {}
}`

func TestReport(t *testing.T) {
	r := newReport(t, dumpDataset)
	r.stations = []gwmap.ReferenceStation{{ID: "ITM00016044", Lat: 45.65, Lon: 13.75}}

	var sb strings.Builder
	if err := r.write(&sb, "2024-01-02"); err != nil {
		t.Fatal(err)
	}
	out := sb.String()

	for _, want := range []string{
		"Center: 48.85660, 2.35220 (zoom 12)",
		"Dates (2):\n  2024-01-01\n  2024-01-02\n",
		"Stations (1):\n  ITM00016044",
		"Gateways on 2024-01-02 (2):",
		"[a] color=green graph=open /g/a.png",
		"[b] color=red graph=pending",
		"- 10:00 : RSSI=-100, SNR=5.5",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Output is missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "[a]") > strings.Index(out, "[b]") {
		t.Errorf("Gateways should be sorted by id")
	}
}

func TestReportDefaults(t *testing.T) {
	r := newReport(t, dumpDataset)
	var sb strings.Builder
	if err := r.write(&sb, ""); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(sb.String(), "Gateways on 2024-01-01 (0):") {
		t.Errorf("Expected the first date by default:\n%s", sb.String())
	}

	if err := r.write(&sb, "1999-01-01"); err == nil {
		t.Errorf("Expected an error for an unknown date")
	}

	empty := newReport(t, `{}`)
	sb.Reset()
	if err := empty.write(&sb, ""); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(sb.String(), gwmap.NoDatesLabel) {
		t.Errorf("Expected %q for an empty dataset:\n%s", gwmap.NoDatesLabel, sb.String())
	}
}

func TestGraphLabel(t *testing.T) {
	tests := []struct {
		in   gwmap.GraphAction
		want string
	}{
		{gwmap.GraphAction{Kind: gwmap.GraphOpen, Path: "/x.png"}, "open /x.png"},
		{gwmap.GraphAction{Kind: gwmap.GraphPending}, "pending"},
		{gwmap.GraphAction{Kind: gwmap.GraphNone}, "none"},
	}
	for _, tt := range tests {
		if got := graphLabel(tt.in); got != tt.want {
			t.Errorf("graphLabel(%v) = %q; want %q", tt.in, got, tt.want)
		}
	}
}
