package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/gosuri/uitable"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func accountGet(c *cli.Context) error {
	// Args
	if c.Args().Len() != 1 {
		return errors.New(
			"account get requires one argument-- an account number",
		)
	}
	accountNumber := c.Args().Get(0)

	// Command-specific flags
	fields := c.StringSlice(flagField)
	output := c.String(flagOutput)

	if err := validateOutputFormat(output); err != nil {
		return err
	}

	client, err := getClient(c)
	if err != nil {
		return errors.Wrap(err, "error getting lumen client")
	}

	accountFields, err := client.Accounts().GetFields(
		c.Context,
		accountNumber,
		fields...,
	)
	if err != nil {
		return err
	}

	switch strings.ToLower(output) {
	case "table":
		fieldNames := make([]string, 0, len(accountFields))
		for fieldName := range accountFields {
			fieldNames = append(fieldNames, fieldName)
		}
		sort.Strings(fieldNames)
		table := uitable.New()
		table.AddRow("FIELD", "VALUE")
		for _, fieldName := range fieldNames {
			table.AddRow(fieldName, accountFields[fieldName])
		}
		fmt.Println(table)

	case "yaml":
		yamlBytes, err := yaml.Marshal(accountFields)
		if err != nil {
			return errors.Wrap(
				err,
				"error formatting output from get account operation",
			)
		}
		fmt.Println(string(yamlBytes))

	case "json":
		prettyJSON, err := json.MarshalIndent(accountFields, "", "  ")
		if err != nil {
			return errors.Wrap(
				err,
				"error formatting output from get account operation",
			)
		}
		fmt.Println(string(prettyJSON))
	}

	return nil
}
