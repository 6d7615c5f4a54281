package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yeisme/filevault/pkg/configs"
	"github.com/yeisme/filevault/pkg/internal/storage/db"
)

var (
	dbCmd = &cobra.Command{
		Use:   "db",
		Short: "Document store related commands",
	}

	dbListCmd = &cobra.Command{
		Use:     "list",
		Short:   "list all supported document store types, * marks the configured one",
		Aliases: []string{"ls", "l"},
		Run: func(cmd *cobra.Command, args []string) {
			current := configs.GetConfig().DB

			fmt.Fprintln(cmd.OutOrStdout(), "Supported document store types:")
			fmt.Fprintln(cmd.OutOrStdout(), marker(current.IsMongo())+"mongodb")

			for _, t := range db.GetRegisteredDBTypes() {
				fmt.Fprintln(cmd.OutOrStdout(), marker(!current.IsMongo() && t == current.Type)+string(t))
			}
		},
	}
)

func marker(active bool) string {
	if active {
		return " * "
	}

	return "   "
}

// registerDBCommands 注册文档存储相关命令.
func registerDBCommands() {
	rootCmd.AddCommand(dbCmd)

	dbCmd.AddCommand(dbListCmd)
}
