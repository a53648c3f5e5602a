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
	"time"

	"github.com/spf13/cobra"

	"github.com/eslsoft/vocnote/internal/adapter/mapping"
	"github.com/eslsoft/vocnote/internal/app"
)

var dueCmd = &cobra.Command{
	Use:   "due",
	Short: "List the words waiting for review",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, c *app.Container) error {
			now := time.Now()
			words := c.Vocabulary.DueForReview(now)
			out := cmd.OutOrStdout()
			if len(words) == 0 {
				fmt.Fprintln(out, "Nothing to review right now.")
				return nil
			}
			renderTable(out, mapping.WordHeader, mapping.WordRows(words, now, c.Options.Location))
			fmt.Fprintf(out, "\n%d words due. Run `vocnote study` to review them.\n", len(words))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(dueCmd)
}
