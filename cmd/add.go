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

var addCmd = &cobra.Command{
	Use:   "add WORD MEANING",
	Short: "Add a word to the notebook",
	Example: `  vocnote add ephemeral "lasting a very short time" --example "Fame is ephemeral." --tags adjective,literary`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		example, _ := cmd.Flags().GetString("example")
		tags, _ := cmd.Flags().GetString("tags")
		draft := entity.WordDraft{
			Word:    args[0],
			Meaning: args[1],
			Example: example,
			Tags:    entity.ParseTags(tags),
		}

		return withApp(cmd, func(ctx context.Context, c *app.Container) error {
			change, err := c.Vocabulary.Add(ctx, draft)
			if change != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Added %q (%s). %d words in the notebook.\n",
					change.Entry.Word, mapping.ShortID(change.Entry.ID), change.Stats.TotalWords)
			}
			return err
		})
	},
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringP("example", "e", "", "example sentence")
	addCmd.Flags().StringP("tags", "t", "", "comma separated tags")
}
