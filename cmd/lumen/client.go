package main

import (
	"github.com/lumabank/lumen"
	"github.com/lumabank/lumen/session"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func getSecretStore() (session.SecretStore, error) {
	storePath, err := session.DefaultStorePath("lumen")
	if err != nil {
		return nil, errors.Wrap(err, "error locating lumen secret store")
	}
	return session.NewFileStore(storePath), nil
}

func getClient(c *cli.Context) (lumen.Client, error) {
	config, err := getConfig()
	if err != nil {
		return nil, errors.Wrap(err, "error retrieving configuration")
	}
	return getClientForAddress(c, config.APIAddress)
}

func getClientForAddress(
	c *cli.Context,
	apiAddress string,
) (lumen.Client, error) {
	store, err := getSecretStore()
	if err != nil {
		return nil, err
	}
	return lumen.NewClient(
		lumen.ClientConfig{
			APIAddress:    apiAddress,
			AllowInsecure: c.Bool(flagInsecure),
		},
		store,
	), nil
}
