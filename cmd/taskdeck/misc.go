package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"taskdeck/internal/client/api"
	"taskdeck/internal/config"
	"taskdeck/internal/tui"
)

func tuiCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive terminal UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logFile, err := tuiLogFile()
			if err != nil {
				return fmt.Errorf("failed to open log file: %w", err)
			}
			defer logFile.Close()

			session, err := opts.session(config.NewLogger(logFile, opts.debug))
			if err != nil {
				return err
			}

			app := tui.NewApp(cmd.Context(), session)
			p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("tui: %w", err)
			}
			return nil
		},
	}
}

func searchCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search project names, tags and task contents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := opts.cliSession()
			if err != nil {
				return err
			}
			results, err := session.Search(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			if opts.json {
				return opts.printJSON(results)
			}

			fmt.Println("Projects:")
			for _, p := range results.ByProjectName {
				fmt.Printf("  %s  %s  %s\n", p.ID, p.Name, formatTags(p.Tags))
			}
			fmt.Println("Tasks:")
			for _, p := range results.ByTaskContent {
				for _, t := range p.Tasks {
					fmt.Printf("  %s %s  %s (%s)\n", checkbox(t.Resolved), t.ID, t.Content, p.Name)
				}
			}
			return nil
		},
	}
}

func profileCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := opts.cliSession()
			if err != nil {
				return err
			}
			user, err := session.Profile(cmd.Context())
			if err != nil {
				return err
			}
			if opts.json {
				return opts.printJSON(user)
			}
			printMessage("%s (%s), %d projects", user.Username, user.ExternalID, len(user.Projects))
			return nil
		},
	}
}

func loginCmd(opts *globalOptions) *cobra.Command {
	var provider string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Print the address that signs you in and issues a token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := api.NewClient(opts.apiURL, "", opts.cliLogger())
			printMessage("Open this address in a browser, then export the returned token as TASKDECK_TOKEN:")
			printMessage("  %s", c.LoginURL(provider))
			return nil
		},
	}

	cmd.Flags().StringVar(&provider, "provider", "github", "identity provider")
	return cmd
}
