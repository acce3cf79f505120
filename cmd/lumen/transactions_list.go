package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/gosuri/uitable"
	"github.com/lumabank/lumen"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func transactionsList(c *cli.Context) error {
	// Args
	if c.Args().Len() != 0 {
		return errors.New("transactions list requires no arguments")
	}

	// Command-specific flags
	output := c.String(flagOutput)
	selector := lumen.TransactionsSelector{
		Limit:         c.Int(flagLimit),
		Offset:        c.Int(flagOffset),
		Type:          c.String(flagType),
		AccountNumber: c.String(flagAccount),
	}

	if err := validateOutputFormat(output); err != nil {
		return err
	}

	client, err := getClient(c)
	if err != nil {
		return errors.Wrap(err, "error getting lumen client")
	}

	transactionList, err := client.Transactions().List(c.Context, selector)
	if err != nil {
		return err
	}

	if len(transactionList.Transactions) == 0 {
		fmt.Println("No transactions found.")
		return nil
	}

	switch strings.ToLower(output) {
	case "table":
		table := uitable.New()
		table.AddRow("CREATED", "ACCOUNT", "TYPE", "AMOUNT", "DESCRIPTION")
		for _, transaction := range transactionList.Transactions {
			table.AddRow(
				transaction.CreatedAt,
				transaction.AccountNumber,
				transaction.Type,
				fmt.Sprintf("%.2f", transaction.Amount),
				transaction.Description,
			)
		}
		fmt.Println(table)
		fmt.Printf(
			"\nShowing %d of %d transaction(s)\n",
			len(transactionList.Transactions),
			transactionList.Total,
		)

	case "yaml":
		yamlBytes, err := yaml.Marshal(transactionList)
		if err != nil {
			return errors.Wrap(
				err,
				"error formatting output from list transactions operation",
			)
		}
		fmt.Println(string(yamlBytes))

	case "json":
		prettyJSON, err := json.MarshalIndent(transactionList, "", "  ")
		if err != nil {
			return errors.Wrap(
				err,
				"error formatting output from list transactions operation",
			)
		}
		fmt.Println(string(prettyJSON))
	}

	return nil
}
