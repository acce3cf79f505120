package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func login(c *cli.Context) error {
	// Args
	if c.Args().Len() != 1 {
		return errors.New(
			"login requires one argument-- the address of the banking API, " +
				`e.g. "http://localhost:8080/api/v1"`,
		)
	}
	address := c.Args().Get(0)

	// Command-specific flags
	username := c.String(flagUsername)
	password := c.String(flagPassword)

	reader := bufio.NewReader(os.Stdin)
	var err error
	for username == "" {
		fmt.Print("Username? ")
		if username, err = reader.ReadString('\n'); err != nil {
			return errors.Wrap(err, "error reading username from stdin")
		}
		username = strings.TrimSpace(username)
	}
	for password == "" {
		fmt.Print("Password? ")
		if password, err = reader.ReadString('\n'); err != nil {
			return errors.Wrap(err, "error reading password from stdin")
		}
		password = strings.TrimSpace(password)
	}

	client, err := getClientForAddress(c, address)
	if err != nil {
		return err
	}

	loginResp, err := client.Sessions().Login(c.Context, username, password)
	if err != nil {
		if loginResp.Message != "" {
			return errors.Errorf("login failed: %s", loginResp.Message)
		}
		return err
	}

	if err := saveConfig(
		&config{
			APIAddress: address,
		},
	); err != nil {
		return errors.Wrap(err, "error persisting configuration")
	}

	fmt.Printf("You are logged in as %s.\n", username)

	return nil
}
