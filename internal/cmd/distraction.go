package cmd

import (
	"context"
	"fmt"
	"iter"
	"maps"
	"slices"
	"time"

	"github.com/renato0307/pomar/internal/domain"
	"github.com/renato0307/pomar/internal/services"
	"github.com/renato0307/pomar/internal/theme"
)

// DistractionCmd records and lists distractions
type DistractionCmd struct {
	List   DistractionListCmd   `cmd:"" help:"List distractions by session or date range"`
	Record DistractionRecordCmd `cmd:"" help:"Record a distraction on the running session"`
}

// DistractionRecordCmd records a distraction
type DistractionRecordCmd struct {
	Session string `help:"Session id (default: the active session)"`
	Type    string `arg:"" help:"What interrupted you (e.g. phone, people, noise, thought)"`
}

// Run executes the record command
func (d *DistractionRecordCmd) Run(ctx context.Context, cli *CLI) error {
	event, err := cli.Container.DistractionService.Record(ctx, cli.UserID(), d.Session, d.Type)
	if err != nil {
		return fmt.Errorf("failed to record distraction: %w", err)
	}
	fmt.Fprintf(stdout, "Recorded %s distraction on session %s\n", event.Type, event.SessionID)
	return nil
}

// DistractionListCmd lists distractions
type DistractionListCmd struct {
	Format  string `help:"Output format: table or json" enum:"table,json" default:"table"`
	From    string `help:"First day (YYYY-MM-DD, default: today)" xor:"filter"`
	Session string `help:"Only distractions of this session" xor:"filter"`
	To      string `help:"Last day (YYYY-MM-DD, default: --from)"`
}

// distractionListOutput is the JSON shape of the list command
type distractionListOutput struct {
	Events  []domain.DistractionEvent
	Summary services.DistractionSummary
}

// Run executes the list command
func (d *DistractionListCmd) Run(ctx context.Context, cli *CLI) error {
	seq, err := d.sequence(ctx, cli)
	if err != nil {
		return err
	}

	events := []domain.DistractionEvent{}
	summary, err := services.SummarizeDistractions(func(yield func(domain.DistractionEvent, error) bool) {
		for event, err := range seq {
			if err == nil {
				events = append(events, event)
			}
			if !yield(event, err) {
				return
			}
		}
	})
	if err != nil {
		return fmt.Errorf("failed to list distractions: %w", err)
	}
	out := distractionListOutput{Events: events, Summary: summary}

	if d.Format == formatJSON {
		return printJSON(out)
	}
	if out.Summary.Total == 0 {
		fmt.Fprintln(stdout, "No distractions recorded.")
		return nil
	}

	w := newTabWriter()
	fmt.Fprintln(w, "TIME\tTYPE\tSESSION")
	for _, event := range out.Events {
		fmt.Fprintf(w, "%s\t%s\t%s\n", event.OccurredAt.Local().Format(timeLayout), event.Type, event.SessionID)
	}
	w.Flush()

	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, theme.TitleStyle.Render(fmt.Sprintf("Total: %d", out.Summary.Total)))
	for _, t := range slices.Sorted(maps.Keys(out.Summary.ByType)) {
		fmt.Fprintf(stdout, "  %s: %d\n", t, out.Summary.ByType[t])
	}
	return nil
}

func (d *DistractionListCmd) sequence(ctx context.Context, cli *CLI) (iter.Seq2[domain.DistractionEvent, error], error) {
	svc := cli.Container.DistractionService
	if d.Session != "" {
		return svc.BySession(ctx, cli.UserID(), d.Session), nil
	}

	from := domain.DateIn(time.Now(), cli.Container.Rules.Location)
	if d.From != "" {
		parsed, err := domain.ParseDate(d.From)
		if err != nil {
			return nil, err
		}
		from = parsed
	}
	to := from
	if d.To != "" {
		parsed, err := domain.ParseDate(d.To)
		if err != nil {
			return nil, err
		}
		to = parsed
	}
	return svc.ByDateRange(ctx, cli.UserID(), from, to), nil
}
