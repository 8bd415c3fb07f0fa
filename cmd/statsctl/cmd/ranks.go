package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/g5stats/stats-api/internal/models"
)

var ranksCmd = &cobra.Command{
	Use:                "ranks",
	Short:              "Inspect and adjust season ranks",
	PersistentPreRunE:  connect,
	PersistentPostRunE: disconnect,
}

var ranksShowCmd = &cobra.Command{
	Use:   "show <steam-id>",
	Short: "Show a player's lifetime aggregate and every season row",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := ranks()

		total, err := svc.PlayerAggregate(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		seasons, err := svc.PlayerSeasons(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		renderRankRecord(out, *total)
		fmt.Fprintln(out)
		renderRankTable(out, seasons)
		return nil
	},
}

var ranksSeasonCmd = &cobra.Command{
	Use:   "season <season-id>",
	Short: "List every rank row of a season",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		seasonID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid season id %q", args[0])
		}

		rows, err := ranks().SeasonSlice(cmd.Context(), seasonID)
		if err != nil {
			return err
		}
		renderRankTable(cmd.OutOrStdout(), rows)
		return nil
	},
}

var ranksApplyCmd = &cobra.Command{
	Use:   "apply <steam-id> <season-id> field=value...",
	Short: "Apply a rank delta to a player's season row",
	Long: `Apply a rank delta to a player's season row.

score and lastconnect replace the stored value; every other field is added
to it. The row is created with the default score when missing.

  statsctl ranks apply 76561198000000001 3 kills=2 deaths=1 score=1012`,
	Args: cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		seasonID, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid season id %q", args[1])
		}
		delta, err := parseDelta(args[2:])
		if err != nil {
			return err
		}

		if err := ranks().ApplyDelta(cmd.Context(), args[0], seasonID, delta); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Rank stats for player %s successfully updated\n", args[0])
		return nil
	},
}

var ranksResetCmd = &cobra.Command{
	Use:   "reset <steam-id>",
	Short: "Delete every season row of a player",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := ranks().ResetPlayer(cmd.Context(), args[0], operator)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted %d season rows of player %s\n", n, args[0])
		return nil
	},
}

func init() {
	ranksCmd.AddCommand(ranksShowCmd)
	ranksCmd.AddCommand(ranksSeasonCmd)
	ranksCmd.AddCommand(ranksApplyCmd)
	ranksCmd.AddCommand(ranksResetCmd)
}

// parseDelta reads field=value pairs. A value of "null" sends the field as
// null, which the delta fold skips.
func parseDelta(pairs []string) (models.RankDelta, error) {
	delta := make(models.RankDelta, len(pairs))
	for _, pair := range pairs {
		field, raw, ok := strings.Cut(pair, "=")
		if !ok || field == "" {
			return nil, fmt.Errorf("expected field=value, got %q", pair)
		}
		if raw == "null" {
			delta[field] = nil
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("field %s: %q is not a number", field, raw)
		}
		delta[field] = &v
	}
	return delta, nil
}

// rankSummaryColumns are the fields shown in rank tables.
var rankSummaryColumns = []string{"season_id", "score", "kills", "deaths", "assists", "headshots", "mvp", "match_win", "match_lose"}

func renderRankTable(w io.Writer, records []models.RankRecord) {
	header := []any{"STEAM"}
	for _, c := range rankSummaryColumns {
		header = append(header, strings.ToUpper(c))
	}

	table := tablewriter.NewTable(w)
	table.Header(header...)
	for _, r := range records {
		row := []any{r.Steam}
		for _, c := range rankSummaryColumns {
			if v, ok := r.Get(c); ok {
				row = append(row, formatRankValue(v))
			} else {
				row = append(row, "-")
			}
		}
		table.Append(row...)
	}
	table.Render()
	fmt.Fprintf(w, "\n(%d rows)\n", len(records))
}

// renderRankRecord prints every field of one record, skipping zero counters.
func renderRankRecord(w io.Writer, r models.RankRecord) {
	table := tablewriter.NewTable(w)
	table.Header("FIELD", "VALUE")
	table.Append("steam", r.Steam)
	for _, f := range r.Fields {
		if f.Value == 0 && f.Name != "score" {
			continue
		}
		table.Append(f.Name, formatRankValue(f.Value))
	}
	table.Render()
}

func formatRankValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
