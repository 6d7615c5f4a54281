// Package cmd contains the command line applications for the project.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yeisme/filevault/pkg/app"
	"github.com/yeisme/filevault/pkg/configs"
)

var (
	configPath string
	debug      bool

	rootCmd = &cobra.Command{
		Use:   "filevault",
		Short: "A file metadata registry with session tokens and content storage",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == versionCmd.Name() {
				return nil
			}

			return configs.InitConfig(configPath)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}

	workerCmd = &cobra.Command{
		Use:   "worker",
		Short: "consume file events from the message queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				return a.RunWorker(ctx)
			})
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "filevault", configs.AppVersion)
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", ".", "config file or directory")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "verbose output")

	rootCmd.AddCommand(serveCmd, workerCmd, versionCmd)

	registerConfigsCommands()
	registerDBCommands()
	registerKVCommands()
	registerMQCommands()
}

func serve(ctx context.Context) error {
	return withApp(ctx, func(ctx context.Context, a *app.App) error {
		return a.Run(ctx)
	})
}

// withApp 装配 App，在收到 SIGINT/SIGTERM 前运行 fn，结束后释放资源.
func withApp(parent context.Context, fn func(context.Context, *app.App) error) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := configs.GetConfig()
	if debug {
		cfg.Server.Debug = true
	}

	a, err := app.Setup(ctx, cfg)
	if err != nil {
		return err
	}

	defer func() {
		if cerr := a.Close(context.WithoutCancel(ctx)); cerr != nil {
			fmt.Fprintln(os.Stderr, "close:", cerr)
		}
	}()

	return fn(ctx, a)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}
