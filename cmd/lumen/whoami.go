package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/gosuri/uitable"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func whoami(c *cli.Context) error {
	// Args
	if c.Args().Len() != 0 {
		return errors.New("whoami requires no arguments")
	}

	// Command-specific flags
	output := c.String(flagOutput)

	if err := validateOutputFormat(output); err != nil {
		return err
	}

	client, err := getClient(c)
	if err != nil {
		return errors.Wrap(err, "error getting lumen client")
	}

	userInfo, err := client.Users().Info(c.Context)
	if err != nil {
		return err
	}

	switch strings.ToLower(output) {
	case "table":
		fmt.Printf(
			"Logged in as %s (%s)\n\n",
			userInfo.Profile.Username,
			userInfo.Profile.Email,
		)
		table := uitable.New()
		table.AddRow("ACCOUNT", "TYPE", "STATUS", "CURRENCY", "BALANCE")
		for _, account := range userInfo.Accounts.Accounts {
			table.AddRow(
				account.AccountNumber,
				account.Type,
				account.Status,
				account.Currency,
				fmt.Sprintf("%.2f", account.Balance),
			)
		}
		fmt.Println(table)

	case "yaml":
		yamlBytes, err := yaml.Marshal(userInfo)
		if err != nil {
			return errors.Wrap(
				err,
				"error formatting output from whoami operation",
			)
		}
		fmt.Println(string(yamlBytes))

	case "json":
		prettyJSON, err := json.MarshalIndent(userInfo, "", "  ")
		if err != nil {
			return errors.Wrap(
				err,
				"error formatting output from whoami operation",
			)
		}
		fmt.Println(string(prettyJSON))
	}

	return nil
}
