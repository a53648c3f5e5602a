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
	"time"

	"github.com/spf13/cobra"

	"github.com/eslsoft/vocnote/internal/adapter/mapping"
	"github.com/eslsoft/vocnote/internal/app"
	"github.com/eslsoft/vocnote/internal/entity"
)

var getCmd = &cobra.Command{
	Use:   "get ID",
	Short: "Show every field of an entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, c *app.Container) error {
			id, err := resolveID(c.Vocabulary, args[0])
			if err != nil {
				return err
			}
			entry, err := c.Vocabulary.Get(id)
			if err != nil {
				return err
			}
			renderDetail(cmd.OutOrStdout(), wordDetail(c, *entry))
			return nil
		})
	},
}

func wordDetail(c *app.Container, w entity.WordEntry) [][]string {
	return mapping.WordDetail(w, time.Now(), c.Options.Location)
}

func init() {
	rootCmd.AddCommand(getCmd)
}
