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
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/eslsoft/vocnote/internal/app"
	"github.com/eslsoft/vocnote/internal/entity"
	"github.com/eslsoft/vocnote/internal/usecase"
)

var reviewCmd = &cobra.Command{
	Use:   "review ID [easy|normal|hard]",
	Short: "Record one review of a word",
	Long: `Record how well you remembered a word. Easy stretches the next interval
by half, hard shortens it, and normal keeps the base interval. The
difficulty defaults to normal.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		difficulty := entity.DifficultyNormal
		if len(args) == 2 {
			difficulty = entity.ParseDifficulty(args[1])
		}

		return withApp(cmd, func(ctx context.Context, c *app.Container) error {
			id, err := resolveID(c.Vocabulary, args[0])
			if err != nil {
				return err
			}
			change, err := c.Vocabulary.Review(ctx, id, difficulty)
			if change != nil {
				printReviewOutcome(cmd.OutOrStdout(), change, c.Options.Location)
			}
			return err
		})
	},
}

func printReviewOutcome(out io.Writer, change *usecase.Change, loc *time.Location) {
	outcome := change.Review
	fmt.Fprintf(out, "%s: mastery %d%%, next review in %d day(s) on %s.\n",
		change.Entry.Word, outcome.Mastery, outcome.IntervalDays, entity.DayKey(outcome.NextReview, loc))
}

func init() {
	rootCmd.AddCommand(reviewCmd)
}
