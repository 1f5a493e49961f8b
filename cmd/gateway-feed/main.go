package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sudorandom/gateway-los-map/pkg/cli"
	"github.com/sudorandom/gateway-los-map/pkg/gwmap"
	"github.com/sudorandom/gateway-los-map/pkg/livefeed"
	"golang.org/x/sync/errgroup"
)

type feedCmd struct {
	cli.Globals

	Listen string `default:":8080" help:"Address to serve the feed on."`
}

func main() {
	var cmd feedCmd
	cli.Parse(&cmd, "gateway-feed", "Serve the gateway map over HTTP and websockets.")

	logger := cmd.Logger()
	loc, err := cmd.Location()
	if err != nil {
		logger.Fatal().Err(err).Msg("bad --tz")
	}
	client, err := cmd.Client(logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("bad --api-url")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	canvas := gwmap.NewGeoJSONCanvas()
	session := gwmap.NewSession(gwmap.SessionOptions{
		Canvas:    canvas,
		Sources:   client,
		Presenter: gwmap.NewPresenter(loc),
		Logger:    logger,
	})
	server := livefeed.NewServer(session, canvas, logger)
	session.Start(ctx)

	httpServer := &http.Server{
		Addr:              cmd.Listen,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return server.Run(ctx) })
	g.Go(func() error { return session.Run(ctx) })
	g.Go(func() error {
		logger.Info().Str("listen", cmd.Listen).Msg("serving live feed")
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal().Err(err).Msg("feed stopped")
	}
	logger.Info().Msg("shut down")
}
