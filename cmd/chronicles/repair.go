package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-chronicles/internal/config"
	"github.com/KirkDiggler/rpg-chronicles/internal/errors"
	"github.com/KirkDiggler/rpg-chronicles/internal/redis"
	characterrepo "github.com/KirkDiggler/rpg-chronicles/internal/repositories/character"
)

var repairDelete bool

var repairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Scan stored characters for unreadable records",
	Long: `Repair scans every character in Redis. Unreadable records are listed and,
with --delete, removed. Readable characters missing from the index are
added back.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		return runRepair(ctx, cfg, cmd.OutOrStdout(), repairDelete)
	},
}

func init() {
	repairCmd.Flags().BoolVar(&repairDelete, "delete", false, "delete the unreadable records")
}

func runRepair(ctx context.Context, c *config.Config, w io.Writer, del bool) error {
	if c.RedisAddr == "" {
		return errors.InvalidArgument("repair needs --redis or CHRONICLES_REDIS_ADDR")
	}

	client, err := redis.Connect(ctx, c.RedisAddr, &redis.Options{ConnMaxIdleTime: time.Minute})
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to connect to redis")
	}
	defer func() { _ = client.Close() }()

	out, err := characterrepo.Repair(ctx, characterrepo.RepairInput{Client: client, Delete: del})
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Checked %d characters\n", out.Checked)
	for _, id := range out.Unindexed {
		fmt.Fprintf(w, "  re-indexed %s\n", id)
	}
	if len(out.Corrupt) == 0 {
		fmt.Fprintln(w, "No unreadable records found")
		return nil
	}
	for _, key := range out.Corrupt {
		fmt.Fprintf(w, "  unreadable %s\n", key)
	}
	if del {
		fmt.Fprintf(w, "Deleted %d records\n", out.Deleted)
	} else {
		fmt.Fprintln(w, "Run again with --delete to remove them")
	}
	return nil
}
