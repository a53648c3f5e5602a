/*
Copyright © 2025 Ambor <saltbo@foxmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eslsoft/vocnote/internal/adapter/mapping"
	"github.com/eslsoft/vocnote/internal/app"
	"github.com/eslsoft/vocnote/internal/entity"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		history, _ := cmd.Flags().GetBool("history")
		refresh, _ := cmd.Flags().GetBool("refresh")

		return withApp(cmd, func(ctx context.Context, c *app.Container) error {
			stats := c.Vocabulary.Stats()
			var saveErr error
			if refresh {
				change, err := c.Vocabulary.RecomputeStats(ctx)
				if change == nil {
					return err
				}
				stats, saveErr = change.Stats, err
			}

			out := cmd.OutOrStdout()
			renderDetail(out, mapping.StatsDetail(stats, c.Vocabulary.Settings().DailyGoal, c.Options.Location))
			if history {
				printHistory(cmd, stats)
			}
			return saveErr
		})
	},
}

func printHistory(cmd *cobra.Command, stats entity.Stats) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	if len(stats.LearningHistory) == 0 {
		fmt.Fprintln(out, "No study days recorded yet.")
		return
	}
	renderTable(out, []string{"Day", "Added", "Reviewed"}, mapping.HistoryRows(stats.LearningHistory))
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().Bool("history", false, "also print the daily learning history")
	statsCmd.Flags().Bool("refresh", false, "recompute the statistics before printing them")
}
