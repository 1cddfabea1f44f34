package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Kunal9797/artissales-sub001/cmd/artissales/cli"
	"github.com/Kunal9797/artissales-sub001/internal/app"
)

func runJobsCommand(ctx context.Context, cfg *app.Config, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: artissales jobs <trigger-compile|trigger-renew|stats|scheduled> [date|month]")
	}

	jobsCLI, err := cli.NewJobsCLI(cfg.RedisAddr)
	if err != nil {
		return err
	}
	defer func() { _ = jobsCLI.Close() }()

	arg := ""
	if len(args) > 1 {
		arg = args[1]
	}

	switch args[0] {
	case "trigger-compile":
		info, err := jobsCLI.TriggerCompile(ctx, arg)
		if err != nil {
			return err
		}
		fmt.Printf("enqueued %s id=%s\n", info.Type, info.ID)
	case "trigger-renew":
		info, err := jobsCLI.TriggerRenew(ctx, arg)
		if err != nil {
			return err
		}
		fmt.Printf("enqueued %s id=%s\n", info.Type, info.ID)
	case "stats":
		stats, err := jobsCLI.InspectQueue(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("queue=%s pending=%d active=%d scheduled=%d retry=%d\n",
			stats.Queue, stats.Pending, stats.Active, stats.Scheduled, stats.Retry)
	case "scheduled":
		tasks, err := jobsCLI.ListScheduled(ctx, 20)
		if err != nil {
			return err
		}
		for _, task := range tasks {
			fmt.Printf("%s id=%s next=%s\n", task.Type, task.ID, task.NextProcessAt.Format(time.RFC3339))
		}
	default:
		// Allow triggering any registered task by its type name.
		info, err := jobsCLI.Trigger(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("enqueued %s id=%s\n", info.Type, info.ID)
	}
	return nil
}
