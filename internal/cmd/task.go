package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/renato0307/pomar/internal/domain"
)

// TaskCmd reports task activity
type TaskCmd struct {
	Complete TaskCompleteCmd `cmd:"" help:"Report a completed task and collect rewards"`
}

// TaskCompleteCmd reports a completed task
type TaskCompleteCmd struct {
	At     string `help:"Completion time in RFC 3339 (default: now)"`
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
	TaskID string `arg:"" help:"Identifier of the completed task"`
}

// Run executes the task complete command
func (t *TaskCompleteCmd) Run(ctx context.Context, cli *CLI) error {
	completedAt := time.Now()
	if t.At != "" {
		parsed, err := time.Parse(time.RFC3339, t.At)
		if err != nil {
			return fmt.Errorf("%w: invalid --at %q: %v", domain.ErrValidation, t.At, err)
		}
		completedAt = parsed
	}

	summary, err := cli.Container.RewardsService.OnTaskCompleted(ctx, cli.UserID(), t.TaskID, completedAt)
	if err != nil {
		return fmt.Errorf("failed to complete task: %w", err)
	}

	if t.Format == formatJSON {
		return printJSON(summary)
	}
	if summary.Duplicate {
		fmt.Fprintf(stdout, "Task %s was already completed\n", t.TaskID)
	} else {
		fmt.Fprintf(stdout, "Completed task %s\n", t.TaskID)
	}
	printSummary(summary)
	return nil
}
