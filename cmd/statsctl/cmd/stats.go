package cmd

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/g5stats/stats-api/internal/models"
)

var (
	statsMatchID int64
	statsSteamID string
)

var statsCmd = &cobra.Command{
	Use:                "stats",
	Short:              "Inspect and purge per-match player stats",
	PersistentPreRunE:  connect,
	PersistentPostRunE: disconnect,
}

var statsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List player stat rows, optionally for one match or player",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := playerStats()

		var (
			rows []models.PlayerMatchStat
			err  error
		)
		switch {
		case statsMatchID != 0:
			rows, err = svc.ListByMatch(cmd.Context(), statsMatchID)
		case statsSteamID != "":
			rows, err = svc.ListBySteamID(cmd.Context(), statsSteamID)
		default:
			rows, err = svc.ListAll(cmd.Context())
		}
		if err != nil {
			return err
		}

		renderPlayerStats(cmd.OutOrStdout(), rows)
		return nil
	},
}

var statsPurgeCmd = &cobra.Command{
	Use:   "purge <match-id>",
	Short: "Delete every player stat row of a finished match",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var matchID int64
		if _, err := fmt.Sscan(args[0], &matchID); err != nil {
			return fmt.Errorf("invalid match id %q", args[0])
		}

		n, err := playerStats().DeleteMatchStats(cmd.Context(), matchID, operator)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted %d rows of match %d\n", n, matchID)
		return nil
	},
}

func init() {
	statsListCmd.Flags().Int64Var(&statsMatchID, "match", 0, "only rows of this match")
	statsListCmd.Flags().StringVar(&statsSteamID, "steam", "", "only rows of this player")
	statsListCmd.MarkFlagsMutuallyExclusive("match", "steam")

	statsCmd.AddCommand(statsListCmd)
	statsCmd.AddCommand(statsPurgeCmd)
}

func renderPlayerStats(w io.Writer, rows []models.PlayerMatchStat) {
	table := tablewriter.NewTable(w)
	table.Header("MATCH", "MAP", "TEAM", "STEAM", "NAME", "K", "D", "A", "HS", "DMG", "RNDS")
	for _, r := range rows {
		table.Append(r.MatchID, r.MapID, r.TeamID, r.SteamID, r.Name,
			r.Kills, r.Deaths, r.Assists, r.HeadshotKills, r.Damage, r.RoundsPlayed)
	}
	table.Render()
	fmt.Fprintf(w, "\n(%d rows)\n", len(rows))
}
