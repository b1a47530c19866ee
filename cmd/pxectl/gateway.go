package main

import (
	"fmt"

	"github.com/Aidin1998/pxegate/pkg/gatewayclient"
	"github.com/urfave/cli/v2"
)

var gatewayURLFlag = cli.StringFlag{
	Name:    "gateway-url",
	Usage:   "base URL of a running gateway",
	EnvVars: []string{"GATEWAY_URL"},
	Value:   "http://localhost:3001",
}

var GatewayCmd = cli.Command{
	Name:  "gateway",
	Usage: "call a running gateway the way the UI does",
	Flags: []cli.Flag{&gatewayURLFlag},
	Subcommands: []*cli.Command{
		{
			Name:  "start",
			Usage: "GET /start",
			Action: func(c *cli.Context) error {
				body, err := gatewayclient.New(c.String(gatewayURLFlag.Name), nil).Start(c.Context)
				if err != nil {
					return err
				}
				fmt.Fprintln(c.App.Writer, "Res:", body)
				return nil
			},
		},
		{
			Name:  "accounts",
			Usage: "GET /show_accounts",
			Action: func(c *cli.Context) error {
				body, err := gatewayclient.New(c.String(gatewayURLFlag.Name), nil).ShowAccounts(c.Context)
				if err != nil {
					return err
				}
				fmt.Fprintln(c.App.Writer, "Res:", body)
				return nil
			},
		},
	},
}
