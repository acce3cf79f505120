package main

import "github.com/urfave/cli/v2"

const (
	flagAccount  = "account"
	flagEmail    = "email"
	flagField    = "field"
	flagInsecure = "insecure"
	flagLimit    = "limit"
	flagOffset   = "offset"
	flagOutput   = "output"
	flagPassword = "password"
	flagType     = "type"
	flagUsername = "username"
)

var cliFlagOutput = &cli.StringFlag{
	Name:    flagOutput,
	Aliases: []string{"o"},
	Usage: "Return output in another format. Supported formats: table, " +
		"yaml, json",
	Value: "table",
}
