package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"taskdeck/internal/client/state"
	"taskdeck/internal/domain/models"
	"taskdeck/internal/domain/services"
)

func tasksCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tasks",
		Aliases: []string{"t"},
		Short:   "Manage the tasks of a project",
	}

	cmd.AddCommand(tasksListCmd(opts))
	cmd.AddCommand(tasksAddCmd(opts))
	cmd.AddCommand(tasksEditCmd(opts))
	cmd.AddCommand(tasksResolveCmd(opts, "done", "Mark tasks resolved", true))
	cmd.AddCommand(tasksResolveCmd(opts, "undo", "Mark tasks unresolved", false))
	cmd.AddCommand(tasksRemoveCmd(opts))
	cmd.AddCommand(tasksDoneAllCmd(opts))
	cmd.AddCommand(tasksClearCmd(opts))

	return cmd
}

func tasksListCmd(opts *globalOptions) *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "list <project-id>",
		Short: "List a project's tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.api()
			if err != nil {
				return err
			}
			tasks, err := c.ListTasks(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return opts.printTasks(state.FilterTasks(tasks, state.ParseFilter(filter)))
		},
	}

	cmd.Flags().StringVar(&filter, "filter", string(state.FilterAll), "all, remained or completed")
	return cmd
}

func tasksAddCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <project-id> <content>",
		Short: "Add a task to a project",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.api()
			if err != nil {
				return err
			}
			task, err := c.CreateTask(cmd.Context(), args[0], strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			if opts.json {
				return opts.printJSON(task)
			}
			printMessage("added task %s", task.ID)
			return nil
		},
	}
}

func tasksEditCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <task-id> <content>",
		Short: "Change a task's content",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.api()
			if err != nil {
				return err
			}
			content := strings.Join(args[1:], " ")
			task, err := c.UpdateTask(cmd.Context(), args[0], services.UpdateTaskRequest{Content: &content})
			if err != nil {
				return err
			}
			if opts.json {
				return opts.printJSON(task)
			}
			printMessage("updated task %s", task.ID)
			return nil
		},
	}
}

func tasksResolveCmd(opts *globalOptions, use, short string, resolved bool) *cobra.Command {
	var projectID string

	cmd := &cobra.Command{
		Use:   use + " <task-id>...",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.api()
			if err != nil {
				return err
			}

			if len(args) == 1 && projectID == "" {
				task, err := c.UpdateTask(cmd.Context(), args[0], services.UpdateTaskRequest{Resolved: &resolved})
				if err != nil {
					return err
				}
				if opts.json {
					return opts.printJSON(task)
				}
				printMessage("%s %s", checkbox(task.Resolved), task.Content)
				return nil
			}

			result, err := c.SetResolvedMany(cmd.Context(), projectID, args, resolved)
			if err != nil {
				return err
			}
			return opts.printBulk(result)
		},
	}

	cmd.Flags().StringVarP(&projectID, "project", "p", "", "only touch tasks of this project")
	return cmd
}

func tasksRemoveCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <project-id> <task-id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.api()
			if err != nil {
				return err
			}
			if err := c.DeleteTask(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			printMessage("deleted task %s", args[1])
			return nil
		},
	}
}

func tasksDoneAllCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "done-all <project-id>",
		Short: "Resolve every task of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.api()
			if err != nil {
				return err
			}
			tasks, err := c.ListTasks(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				printMessage("nothing to resolve")
				return nil
			}

			result, err := c.SetResolvedMany(cmd.Context(), args[0], state.TaskIDs(tasks), true)
			if err != nil {
				return err
			}
			return opts.printBulk(result)
		},
	}
}

func tasksClearCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear <project-id>",
		Short: "Delete a project's resolved tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.api()
			if err != nil {
				return err
			}
			tasks, err := c.ListTasks(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			ids := state.ResolvedIDs(tasks)
			if len(ids) == 0 {
				printMessage("no completed tasks")
				return nil
			}

			result, err := c.DeleteTasks(cmd.Context(), args[0], ids)
			if err != nil {
				return err
			}
			return opts.printBulk(result)
		},
	}
}

func (o *globalOptions) printTasks(tasks []models.Task) error {
	if o.json {
		return o.printJSON(tasks)
	}

	tw := newTable()
	for _, t := range tasks {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", checkbox(t.Resolved), t.ID, t.Content)
	}
	return tw.Flush()
}

func (o *globalOptions) printBulk(result *models.BulkResult) error {
	if o.json {
		return o.printJSON(result)
	}
	switch {
	case result.Result.Deleted > 0:
		printMessage("%s (%d deleted)", result.Message, result.Result.Deleted)
	default:
		printMessage("%s (%d matched, %d modified)", result.Message, result.Result.Matched, result.Result.Modified)
	}
	return nil
}
