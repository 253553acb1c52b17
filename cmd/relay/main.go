package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"sealbox/internal/relay"
	"sealbox/internal/services/directory"
	"sealbox/internal/services/mailbox"
	"sealbox/internal/services/session"
	"sealbox/internal/store"
)

func main() {
	addr := flag.String("addr", defaultAddr(), "listen address")
	data := flag.String("data", defaultData(), "data directory")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	st, err := store.OpenServer(*data)
	if err != nil {
		// First run or unreadable snapshot: start with empty state.
		log.Warn("starting with empty state", "err", err)
	}
	dir := directory.New(st)
	sessions := session.NewManager(dir)
	mail := mailbox.New(st, dir, nil)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	relay.NewServer(dir, sessions, mail, log).Register(e)

	log.Info("relay listening", "addr", *addr, "data", *data)
	if err := e.Start(*addr); err != nil {
		log.Error("relay stopped", "err", err)
		os.Exit(1)
	}
}

func defaultAddr() string {
	if port := os.Getenv("PORT"); port != "" {
		return ":" + port
	}
	return ":3008"
}

func defaultData() string {
	if dir := os.Getenv("DATA_DIR"); dir != "" {
		return dir
	}
	return "data"
}
