package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/wisp167/ShoppingList/internal/server"
)

func main() {
	app, err := server.SetupApplication(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("setup failed")
	}

	if err := app.Start(); err != nil {
		log.Fatal().Err(err).Msg("start failed")
	}

	quit := make(chan os.Signal, 1)
	// kill (no param) default send syscall.SIGTERM
	// kill -2 is syscall.SIGINT
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info().Str("signal", sig.String()).Msg("shutting down server")

	if err := app.Stop(); err != nil {
		log.Fatal().Err(err).Msg("shutdown failed")
	}
	log.Info().Msg("server exiting")
}
