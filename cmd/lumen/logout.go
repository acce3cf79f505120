package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func logout(c *cli.Context) error {
	// Args
	if c.Args().Len() != 0 {
		return errors.New("logout requires no arguments")
	}

	client, err := getClient(c)
	if err != nil {
		return errors.Wrap(err, "error getting lumen client")
	}

	// Even if the session can't be deleted server-side, we still want to
	// destroy the local credentials.
	if err := client.Sessions().Logout(c.Context); err != nil {
		client.Sessions().ClearTokens()
		fmt.Printf(
			"Server-side logout failed (%s); local credentials were "+
				"cleared anyway.\n",
			err,
		)
		return nil
	}

	fmt.Println("Logout was successful.")

	return nil
}
