package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/llehouerou/storyreel/internal/catalog"
	"github.com/llehouerou/storyreel/internal/errmsg"
	"github.com/llehouerou/storyreel/internal/state"
	"github.com/llehouerou/storyreel/internal/ui/progressbar"
)

var resetState bool

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the episodes and branches of the catalog",
	Long: `List every episode of the catalog with its branches and how many times
it was watched. With --reset, forget the saved position and view counts.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cat, err := loadCatalog()
		if err != nil {
			return err
		}

		stateMgr, err := state.Open()
		if err != nil {
			return errors.New(errmsg.Format(errmsg.OpStateLoad, err))
		}
		defer stateMgr.Close()

		if resetState {
			if err := stateMgr.Forget(cat.Title); err != nil {
				return errors.New(errmsg.Format(errmsg.OpStateReset, err))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Forgot saved state for %q\n", cat.Title)
			return nil
		}

		views, err := stateMgr.Views(cat.Title)
		if err != nil {
			return errors.New(errmsg.Format(errmsg.OpStateLoad, err))
		}
		saved, err := stateMgr.GetResume(cat.Title)
		if err != nil {
			return errors.New(errmsg.Format(errmsg.OpStateLoad, err))
		}
		printCatalog(cmd.OutOrStdout(), cat, views, saved)
		return nil
	},
}

func init() {
	catalogCmd.Flags().BoolVar(&resetState, "reset", false, "Forget the saved position and view counts")
}

// printCatalog writes one block per episode: its label, length and views,
// then its numbered branches. The resumed episode is marked with '>'.
func printCatalog(w io.Writer, cat *catalog.Catalog, views map[string]int, saved *state.ResumeState) {
	fmt.Fprintf(w, "%s (%d episodes)\n", cat.Title, len(cat.Episodes))
	var resumeID string
	if saved != nil {
		resumeID = saved.EpisodeID
		if !saved.UpdatedAt.IsZero() {
			fmt.Fprintf(w, "Last watched %s\n", humanize.Time(saved.UpdatedAt))
		}
	}
	for i, ep := range cat.Episodes {
		marker := " "
		if ep.ID == resumeID {
			marker = ">"
		}
		fmt.Fprintf(w, "%s %2d. %-8s %-6s %s", marker, i+1, ep.Label, episodeLength(ep.Length()), ep.ID)
		if n := views[ep.ID]; n > 0 {
			fmt.Fprintf(w, "  (seen %d)", n)
		}
		fmt.Fprintln(w)

		for j, tr := range ep.Triggers {
			name := tr.CharacterID
			if ch, ok := cat.Character(tr.CharacterID); ok {
				name = ch.Name
			}
			fmt.Fprintf(w, "       %d) %s [%s]\n", j+1, tr.Label, name)
		}
	}
}

func episodeLength(d time.Duration) string {
	if d <= 0 {
		return "-:--"
	}
	return progressbar.FormatDuration(d)
}
