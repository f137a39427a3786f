package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"minchess/api"
	"minchess/logging"
)

func main() {
	addr := flag.String("addr", ":3000", "listen address")
	depth := flag.Int("depth", 3, "default engine search depth")
	maxDepth := flag.Int("max-depth", 6, "largest depth clients may request")
	origins := flag.String("origins", "*", "allowed CORS origins")
	lenient := flag.Bool("lenient", false, "accept any well-formed move, not only generated ones")
	level := flag.String("log-level", "info", "log level")
	jsonLog := flag.Bool("log-json", false, "log as JSON instead of console text")
	flag.Parse()

	log := logging.New(*level, *jsonLog)
	srv, err := api.New(api.Config{
		Depth:        *depth,
		MaxDepth:     *maxDepth,
		AllowOrigins: *origins,
		Lenient:      *lenient,
		Log:          log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		log.Info().Msg("shutting down")
		if err := srv.Shutdown(); err != nil {
			log.Error().Err(err).Msg("shutdown")
		}
	}()

	if err := srv.Listen(*addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
