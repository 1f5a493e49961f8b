package main

import (
	"context"

	"github.com/alecthomas/kong"
	"github.com/hajimehoshi/ebiten/v2"
	_ "github.com/silbinarywolf/preferdiscretegpu"
	"github.com/sudorandom/gateway-los-map/pkg/cli"
	"github.com/sudorandom/gateway-los-map/pkg/gwmap"
	"github.com/sudorandom/gateway-los-map/pkg/utils"
	"github.com/sudorandom/gateway-los-map/pkg/viewer"
)

type viewerCmd struct {
	cli.Globals

	Width        int    `default:"1280" help:"Internal rendering width."`
	Height       int    `default:"720" help:"Internal rendering height."`
	WindowWidth  int    `default:"1280" help:"Initial window width."`
	WindowHeight int    `default:"720" help:"Initial window height."`
	TPS          int    `name:"tps" default:"30" help:"Ticks per second."`
	Basemap      string `help:"GeoJSON world outline drawn under the tiles. A path or an http(s) URL."`
	CacheDir     string `default:"data" help:"Where downloaded basemaps are kept."`
	Tiles        string `default:"${osm_tiles}" help:"Raster tile URL template, or 'none'."`
	Attribution  string `default:"${osm_attribution}" help:"Attribution shown for the tile layer."`
	CaptureDir   string `help:"Write a PNG of the map to this directory every time the date changes."`
}

func main() {
	var cmd viewerCmd
	cli.Parse(&cmd, "gateway-viewer", "Desktop map of gateway line of sight per day.", kong.Vars{
		"osm_tiles":       gwmap.OpenStreetMap.URLTemplate,
		"osm_attribution": gwmap.OpenStreetMap.Attribution,
	})

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

	opts := viewer.Options{
		Width:      cmd.Width,
		Height:     cmd.Height,
		HTTPClient: client.HTTPClient(),
		CaptureDir: cmd.CaptureDir,
		ResolveURL: client.ResolveURL,
		Logger:     logger,
	}
	if cmd.Basemap != "" {
		r, err := utils.OpenCached(ctx, client.HTTPClient(), cmd.Basemap, cmd.CacheDir, logger)
		if err != nil {
			logger.Fatal().Err(err).Str("basemap", cmd.Basemap).Msg("failed to open basemap")
		}
		opts.Basemap, err = viewer.LoadBasemap(r)
		_ = r.Close()
		if err != nil {
			logger.Fatal().Err(err).Str("basemap", cmd.Basemap).Msg("failed to load basemap")
		}
	}

	v := viewer.New(opts)
	session := gwmap.NewSession(gwmap.SessionOptions{
		Canvas:    v,
		Sources:   client,
		Presenter: gwmap.NewPresenter(loc),
		Tiles:     gwmap.TileLayer{URLTemplate: cmd.Tiles, Attribution: cmd.Attribution},
		Logger:    logger,
	})
	v.Attach(session)
	v.Start(ctx)

	ebiten.SetTPS(cmd.TPS)
	ebiten.SetWindowSize(cmd.WindowWidth, cmd.WindowHeight)
	ebiten.SetWindowTitle("Gateway LOS Map")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(v); err != nil {
		logger.Fatal().Err(err).Msg("viewer exited")
	}
}
