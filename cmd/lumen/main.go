package main

import (
	"fmt"
	"os"

	"github.com/lumabank/lumen/internal/signals"
	"github.com/urfave/cli/v2"
)

func main() {
	app := cli.NewApp()
	app.Name = "lumen"
	app.Usage = "Bank from your terminal"
	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    flagInsecure,
			Aliases: []string{"k"},
			Usage:   "Allow insecure API server connections when using TLS",
		},
	}
	app.Commands = []*cli.Command{
		{
			Name:  "account",
			Usage: "Manage accounts",
			Subcommands: []*cli.Command{
				{
					Name:      "get",
					Usage:     "Get details of an account",
					ArgsUsage: "ACCOUNT_NUMBER",
					Flags: []cli.Flag{
						&cli.StringSliceFlag{
							Name:    flagField,
							Aliases: []string{"f"},
							Usage: "Return only the named field (may be " +
								"specified multiple times)",
						},
						cliFlagOutput,
					},
					Action: accountGet,
				},
			},
		},
		{
			Name:      "login",
			Usage:     "Log in to a banking API server",
			ArgsUsage: "API_SERVER_ADDRESS",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    flagUsername,
					Aliases: []string{"u"},
					Usage:   "Specify the username non-interactively",
				},
				&cli.StringFlag{
					Name:    flagPassword,
					Aliases: []string{"p"},
					Usage:   "Specify the password non-interactively",
				},
			},
			Action: login,
		},
		{
			Name:   "logout",
			Usage:  "End the current session",
			Action: logout,
		},
		{
			Name:      "register",
			Usage:     "Register a new user",
			ArgsUsage: "API_SERVER_ADDRESS",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    flagEmail,
					Aliases: []string{"e"},
					Usage:   "Specify the email address non-interactively",
				},
				&cli.StringFlag{
					Name:    flagUsername,
					Aliases: []string{"u"},
					Usage:   "Specify the username non-interactively",
				},
				&cli.StringFlag{
					Name:    flagPassword,
					Aliases: []string{"p"},
					Usage:   "Specify the password non-interactively",
				},
			},
			Action: register,
		},
		{
			Name:  "transactions",
			Usage: "Manage transactions",
			Subcommands: []*cli.Command{
				{
					Name:  "list",
					Usage: "List transactions",
					Flags: []cli.Flag{
						&cli.StringFlag{
							Name: flagAccount,
							Usage: "Return transactions only for the " +
								"specified account",
						},
						&cli.IntFlag{
							Name:  flagLimit,
							Usage: "Return at most this many transactions",
						},
						&cli.IntFlag{
							Name:  flagOffset,
							Usage: "Skip this many transactions",
						},
						&cli.StringFlag{
							Name:    flagType,
							Aliases: []string{"t"},
							Usage: "Return transactions only of the " +
								"specified type, e.g. DEPOSIT or WITHDRAWAL",
						},
						cliFlagOutput,
					},
					Action: transactionsList,
				},
			},
		},
		{
			Name:  "whoami",
			Usage: "Show the current user's profile and accounts",
			Flags: []cli.Flag{
				cliFlagOutput,
			},
			Action: whoami,
		},
	}
	if err := app.RunContext(signals.Context(), os.Args); err != nil {
		fmt.Printf("\n%s\n\n", err)
		os.Exit(1)
	}
}
