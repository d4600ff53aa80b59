package main

import (
	"flag"
	"net/http"
	"os"

	"golang.org/x/exp/slog"

	"github.com/transitgo/raptor/config"
	"github.com/transitgo/raptor/raptor"
	"github.com/transitgo/raptor/xlog"
)

func main() {
	configPath := flag.String("config", "./config.yaml", "path to config.yaml")
	flag.Parse()

	slog.SetDefault(slog.New(xlog.New(os.Stdout, nil)))

	cfg := config.ReadConfig(*configPath)
	slog.Info("config loaded", "timetable_source", cfg.Timetable.Source, "address", cfg.Server.Address)

	tt := buildDemoTimetable()
	slog.Info("demo timetable built", "stops", tt.StopCount())

	router := raptor.NewRouter(tt, raptor.IdentityStopsIndex{})
	handler := routeHandler{router: router}

	mux := http.NewServeMux()
	MapPost(mux, "/v1/route", handler.handle)

	addr := cfg.Server.Address
	if addr == "" {
		addr = ":5002"
	}
	slog.Info("listening", "address", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		slog.Error("server stopped", "error", err)
	}
}
