package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yeisme/filevault/pkg/configs"
	"github.com/yeisme/filevault/pkg/internal/storage/mq"
)

var (
	mqCmd = &cobra.Command{
		Use:     "mq",
		Short:   "Event queue related commands",
		Aliases: []string{"messagequeue"},
	}

	mqListCmd = &cobra.Command{
		Use:     "list",
		Short:   "list all registered mq types, * marks the configured one",
		Aliases: []string{"ls", "l"},
		Run: func(cmd *cobra.Command, args []string) {
			cfg := configs.GetConfig()

			fmt.Fprintln(cmd.OutOrStdout(), "Registered mq types:")

			for _, t := range mq.GetRegisteredTypes() {
				fmt.Fprintln(cmd.OutOrStdout(), marker(cfg.Events.Enabled && t == cfg.MQ.Type)+string(t))
			}

			if !cfg.Events.Enabled {
				fmt.Fprintln(cmd.OutOrStdout(), "events disabled")
			}
		},
	}
)

// registerMQCommands 注册 MQ 相关命令.
func registerMQCommands() {
	rootCmd.AddCommand(mqCmd)
	mqCmd.AddCommand(mqListCmd)
}
