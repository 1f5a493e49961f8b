package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/sudorandom/gateway-los-map/pkg/cli"
	"github.com/sudorandom/gateway-los-map/pkg/gwmap"
)

type dumpCmd struct {
	cli.Globals

	Date     string `help:"Date to print gateways for. Defaults to the first date."`
	Stations bool   `help:"Also print the IGRA reference stations."`
}

func main() {
	var cmd dumpCmd
	cli.Parse(&cmd, "gateway-dump", "Print what the gateway map would show for a date.")

	logger := cmd.Logger()
	loc, err := cmd.Location()
	if err != nil {
		logger.Fatal().Err(err).Msg("bad --tz")
	}
	client, err := cmd.Client(logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("bad --api-url")
	}
	ctx := context.Background()

	cfg := client.LoadConfig(ctx)
	cache := gwmap.NewCache(logger)
	if _, err := cache.LoadAll(ctx, client); err != nil {
		logger.Fatal().Err(err).Msg("failed to load gateway data")
	}

	var stations []gwmap.ReferenceStation
	if cmd.Stations {
		if stations, err = client.FetchStations(ctx); err != nil {
			logger.Error().Err(err).Msg("failed to load IGRA stations")
		}
	}

	r := report{config: cfg, cache: cache, presenter: gwmap.NewPresenter(loc), stations: stations}
	if err := r.write(os.Stdout, cmd.Date); err != nil {
		logger.Fatal().Err(err).Msg("dump failed")
	}
}

type report struct {
	config    gwmap.Config
	cache     *gwmap.Cache
	presenter *gwmap.Presenter
	stations  []gwmap.ReferenceStation
}

func (r report) write(w io.Writer, date string) error {
	center := r.config.Center()
	fmt.Fprintf(w, "Center: %.5f, %.5f (zoom %d)\n", center.Lat, center.Lon, r.config.Zoom)

	dates := r.cache.Dates()
	fmt.Fprintf(w, "Dates (%d):\n", len(dates))
	for _, d := range dates {
		fmt.Fprintf(w, "  %s\n", d)
	}

	if len(r.stations) > 0 {
		fmt.Fprintf(w, "Stations (%d):\n", len(r.stations))
		for _, s := range r.stations {
			fmt.Fprintf(w, "  %s %.4f, %.4f\n", s.ID, s.Lat, s.Lon)
		}
	}

	if len(dates) == 0 {
		fmt.Fprintln(w, gwmap.NoDatesLabel)
		return nil
	}
	if date == "" {
		date = dates[0]
	}
	record, ok := r.cache.Record(date)
	if !ok {
		return fmt.Errorf("date %q not in dataset", date)
	}

	ids := make([]string, 0, len(record))
	for id := range record {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Fprintf(w, "\nGateways on %s (%d):\n", date, len(ids))
	for _, id := range ids {
		pm := r.presenter.Present(id, record[id], date, center)
		fmt.Fprintf(w, "\n[%s] color=%s graph=%s\n", id, pm.Color, graphLabel(pm.Graph))
		fmt.Fprintf(w, "  %s\n", strings.Join(pm.PopupText, "\n  "))
	}
	return nil
}

func graphLabel(g gwmap.GraphAction) string {
	switch g.Kind {
	case gwmap.GraphOpen:
		return "open " + g.Path
	case gwmap.GraphPending:
		return "pending"
	}
	return "none"
}
