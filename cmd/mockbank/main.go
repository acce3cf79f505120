package main

import (
	"flag"

	"github.com/golang/glog"
	"github.com/lumabank/lumen/internal/mockbank"
)

func main() {
	// We need to parse flags for glog-related options to take effect
	flag.Parse()

	glog.Info("Starting mock bank API server")

	config, err := mockbank.GetConfigFromEnvironment()
	if err != nil {
		glog.Fatal(err)
	}

	store := mockbank.NewStore(config.AccessTokenTTL(), config.RefreshTokenTTL())
	if _, err := store.Seed(
		config.SeedEmail(),
		config.SeedUsername(),
		config.SeedPassword(),
	); err != nil {
		glog.Fatal(err)
	}

	baseEndpoints := &mockbank.BaseEndpoints{
		TokenAuthFilter: mockbank.NewTokenAuthFilter(store),
	}

	glog.Fatal(
		mockbank.NewServer(
			config,
			baseEndpoints,
			[]mockbank.Endpoints{
				mockbank.NewSessionsEndpoints(baseEndpoints, store),
				mockbank.NewUsersEndpoints(baseEndpoints, store),
				mockbank.NewAccountsEndpoints(baseEndpoints, store),
				mockbank.NewTransactionsEndpoints(baseEndpoints, store),
			},
		).ListenAndServe(),
	)
}
