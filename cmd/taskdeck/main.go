package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:           "taskdeck",
		Short:         "Taskdeck - projects and to-do lists from the terminal",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.apiURL, "api-url", envOr("TASKDECK_API_URL", "http://localhost:8080/api/v1"), "server API base URL (env TASKDECK_API_URL)")
	cmd.PersistentFlags().StringVar(&opts.token, "token", os.Getenv("TASKDECK_TOKEN"), "session token (env TASKDECK_TOKEN)")
	cmd.PersistentFlags().BoolVar(&opts.json, "json", false, "output as JSON")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "verbose logging")

	cmd.AddCommand(tuiCmd(opts))
	cmd.AddCommand(projectsCmd(opts))
	cmd.AddCommand(tasksCmd(opts))
	cmd.AddCommand(searchCmd(opts))
	cmd.AddCommand(profileCmd(opts))
	cmd.AddCommand(loginCmd(opts))

	return cmd
}
