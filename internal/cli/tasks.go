package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/KirillKCrypto/Trading-Journal-APP/internal/models"
)

func newTasksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Manage the journal task list",
	}

	cmd.AddCommand(newTasksListCmd(app))
	cmd.AddCommand(newTasksAddCmd(app))
	cmd.AddCommand(newTasksDoneCmd(app))
	cmd.AddCommand(newTasksRemoveCmd(app))

	return cmd
}

func taskContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

func newTasksListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := taskContext()
			defer cancel()

			if app.Store == nil {
				return fmt.Errorf("store not configured")
			}

			completed, _ := cmd.Flags().GetBool("completed")
			tasks, err := app.Store.GetTasks(ctx, completed)
			if err != nil {
				output.Error("Failed to load tasks: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(tasks)
			}

			if len(tasks) == 0 {
				output.Dim("No tasks")
				return nil
			}
			for _, t := range tasks {
				marker := "[ ]"
				if t.Completed {
					marker = "[x]"
				}
				output.Printf("%s %s  %s", marker, t.ID[:8], t.Title)
				if t.Priority != "" {
					output.Printf("  (%s)", t.Priority)
				}
				output.Println()
				if t.Description != "" {
					output.Dim("      %s", t.Description)
				}
			}
			return nil
		},
	}

	cmd.Flags().Bool("completed", false, "show completed tasks")
	return cmd
}

func newTasksAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := taskContext()
			defer cancel()

			if app.Store == nil {
				return fmt.Errorf("store not configured")
			}

			description, _ := cmd.Flags().GetString("description")
			priority, _ := cmd.Flags().GetString("priority")

			task := &models.Task{
				Title:       args[0],
				Description: description,
				Priority:    priority,
			}
			if err := app.Store.SaveTask(ctx, task); err != nil {
				output.Error("Failed to save task: %v", err)
				return err
			}
			output.Success("Task added: %s", task.ID[:8])
			return nil
		},
	}

	cmd.Flags().String("description", "", "task description")
	cmd.Flags().String("priority", "", "task priority (low, medium, high)")
	return cmd
}

func newTasksDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle a task's completion state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := taskContext()
			defer cancel()

			if app.Store == nil {
				return fmt.Errorf("store not configured")
			}

			if err := app.Store.ToggleTask(ctx, args[0]); err != nil {
				output.Error("Failed to update task: %v", err)
				return err
			}
			output.Success("Task updated")
			return nil
		},
	}
}

func newTasksRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := taskContext()
			defer cancel()

			if app.Store == nil {
				return fmt.Errorf("store not configured")
			}

			if err := app.Store.DeleteTask(ctx, args[0]); err != nil {
				output.Error("Failed to delete task: %v", err)
				return err
			}
			output.Success("Task deleted")
			return nil
		},
	}
}
