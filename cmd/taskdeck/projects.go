package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"taskdeck/internal/domain/models"
)

func projectsCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"p"},
		Short:   "Manage projects",
	}

	cmd.AddCommand(projectsListCmd(opts))
	cmd.AddCommand(projectsPageCmd(opts))
	cmd.AddCommand(projectsShowCmd(opts))
	cmd.AddCommand(projectsCreateCmd(opts))
	cmd.AddCommand(projectsUpdateCmd(opts))
	cmd.AddCommand(projectsDeleteCmd(opts))
	cmd.AddCommand(projectsTagsCmd(opts))
	cmd.AddCommand(projectsTaggedCmd(opts))

	return cmd
}

func projectsListCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.api()
			if err != nil {
				return err
			}
			projects, err := c.ListProjects(cmd.Context())
			if err != nil {
				return err
			}
			return opts.printProjects(projects)
		},
	}
}

func projectsPageCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "page [n]",
		Short: "Show one page of projects",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			page := 1
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid page %q", args[0])
				}
				page = n
			}

			session, err := opts.cliSession()
			if err != nil {
				return err
			}
			if err := session.LoadPage(cmd.Context(), page); err != nil {
				return err
			}

			st := session.Store().State()
			if opts.json {
				return opts.printJSON(models.ProjectPage{Projects: st.Projects, CurrentPage: st.CurrentPage, TotalPages: st.TotalPages})
			}
			if err := opts.printProjects(st.Projects); err != nil {
				return err
			}
			printMessage("page %d of %d", st.CurrentPage, st.TotalPages)
			return nil
		},
	}
}

func projectsShowCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <project-id>",
		Short: "Show a project and its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.api()
			if err != nil {
				return err
			}
			project, err := c.GetProject(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if opts.json {
				return opts.printJSON(project)
			}

			printMessage("%s  %s", project.Name, formatTags(project.Tags))
			return opts.printTasks(project.Tasks)
		},
	}
}

func projectsCreateCmd(opts *globalOptions) *cobra.Command {
	var tags []string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a project",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := opts.cliSession()
			if err != nil {
				return err
			}
			project, err := session.CreateProject(cmd.Context(), strings.Join(args, " "), tags)
			if err != nil {
				return err
			}
			if opts.json {
				return opts.printJSON(project)
			}
			printMessage("created project %s (%s)", project.Name, project.ID)
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "tag the project (repeatable)")
	return cmd
}

func projectsUpdateCmd(opts *globalOptions) *cobra.Command {
	var tags []string

	cmd := &cobra.Command{
		Use:   "update <project-id> <name>",
		Short: "Rename a project and optionally replace its tags",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.api()
			if err != nil {
				return err
			}

			var newTags *[]string
			if cmd.Flags().Changed("tag") {
				newTags = &tags
			}
			project, err := c.UpdateProject(cmd.Context(), args[0], strings.Join(args[1:], " "), newTags)
			if err != nil {
				return err
			}
			if opts.json {
				return opts.printJSON(project)
			}
			printMessage("updated project %s", project.Name)
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "replace the project's tags (repeatable)")
	return cmd
}

func projectsDeleteCmd(opts *globalOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <project-id>",
		Short: "Delete a project and all of its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.api()
			if err != nil {
				return err
			}

			project, err := c.GetProject(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if open := project.UnresolvedCount(); open > 0 && !force {
				return fmt.Errorf("project %q has %d unresolved tasks; pass --force to delete it", project.Name, open)
			}

			if err := c.DeleteProject(cmd.Context(), project.ID); err != nil {
				return err
			}
			printMessage("deleted project %s", project.Name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "delete even with unresolved tasks")
	return cmd
}

func projectsTagsCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List the tags in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := opts.cliSession()
			if err != nil {
				return err
			}
			tags, err := session.Tags(cmd.Context())
			if err != nil {
				return err
			}
			if opts.json {
				return opts.printJSON(tags)
			}
			for _, t := range tags {
				fmt.Println(t)
			}
			return nil
		},
	}
}

func projectsTaggedCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tagged <tag>",
		Short: "List the projects carrying a tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := opts.cliSession()
			if err != nil {
				return err
			}
			if err := session.ProjectsByTag(cmd.Context(), args[0]); err != nil {
				return err
			}
			return opts.printProjects(session.Store().State().Projects)
		},
	}
}

func (o *globalOptions) printProjects(projects []models.Project) error {
	if o.json {
		return o.printJSON(projects)
	}

	tw := newTable()
	fmt.Fprintln(tw, "ID\tNAME\tOPEN\tTASKS\tTAGS")
	for _, p := range projects {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n", p.ID, p.Name, p.UnresolvedCount(), len(p.Tasks), formatTags(p.Tags))
	}
	return tw.Flush()
}

func formatTags(tags []string) string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = "#" + t
	}
	return strings.Join(out, " ")
}
