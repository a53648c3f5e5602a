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

	"github.com/eslsoft/vocnote/internal/app"
	"github.com/eslsoft/vocnote/internal/entity"
)

var updateCmd = &cobra.Command{
	Use:   "update ID",
	Short: "Change the word, meaning, example or tags of an entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		patch, err := patchFromFlags(cmd)
		if err != nil {
			return err
		}
		if patch.IsEmpty() {
			return fmt.Errorf("nothing to update: pass at least one of --word, --meaning, --example or --tags")
		}

		return withApp(cmd, func(ctx context.Context, c *app.Container) error {
			id, err := resolveID(c.Vocabulary, args[0])
			if err != nil {
				return err
			}
			change, err := c.Vocabulary.Update(ctx, id, patch)
			if change != nil {
				renderDetail(cmd.OutOrStdout(), wordDetail(c, *change.Entry))
			}
			return err
		})
	},
}

func patchFromFlags(cmd *cobra.Command) (entity.WordPatch, error) {
	var patch entity.WordPatch
	flags := cmd.Flags()
	for name, dst := range map[string]**string{
		"word":    &patch.Word,
		"meaning": &patch.Meaning,
		"example": &patch.Example,
	} {
		if !flags.Changed(name) {
			continue
		}
		value, err := flags.GetString(name)
		if err != nil {
			return patch, err
		}
		*dst = &value
	}
	if flags.Changed("tags") {
		raw, err := flags.GetString("tags")
		if err != nil {
			return patch, err
		}
		tags := entity.ParseTags(raw)
		patch.Tags = &tags
	}
	return patch, nil
}

func init() {
	rootCmd.AddCommand(updateCmd)

	updateCmd.Flags().String("word", "", "new spelling of the word")
	updateCmd.Flags().String("meaning", "", "new meaning")
	updateCmd.Flags().String("example", "", "new example sentence, empty to remove it")
	updateCmd.Flags().String("tags", "", "replace the tags with this comma separated list")
}
