package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func register(c *cli.Context) error {
	// Args
	if c.Args().Len() != 1 {
		return errors.New(
			"register requires one argument-- the address of the banking API",
		)
	}
	address := c.Args().Get(0)

	// Command-specific flags
	email := c.String(flagEmail)
	username := c.String(flagUsername)
	password := c.String(flagPassword)

	reader := bufio.NewReader(os.Stdin)
	var err error
	for email == "" {
		fmt.Print("Email? ")
		if email, err = reader.ReadString('\n'); err != nil {
			return errors.Wrap(err, "error reading email from stdin")
		}
		email = strings.TrimSpace(email)
	}
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

	if _, err = client.Users().Create(
		c.Context,
		email,
		username,
		password,
	); err != nil {
		return err
	}

	fmt.Printf(
		"User %s created. Use `lumen login` to start a session.\n",
		username,
	)

	return nil
}
