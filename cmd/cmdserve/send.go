package main

import (
	"fmt"
	"strings"

	"cmdserve/client"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var sendAddr string

var sendCmd = &cobra.Command{
	Use:   "send <command> [argument...]",
	Short: "Send one command to a running server and print the reply",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := sendAddr
		if addr == "" {
			addr = fmt.Sprintf("127.0.0.1:%d", viper.GetInt("port"))
		}
		reply, err := client.Query(addr, strings.Join(args, " "), viper.GetDuration("send_timeout"))
		if err != nil {
			return err
		}
		fmt.Println(reply)
		return nil
	},
}

func init() {
	sendCmd.Flags().StringVar(&sendAddr, "addr", "", "server address (default 127.0.0.1:<port>)")
}
