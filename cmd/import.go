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
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eslsoft/vocnote/internal/app"
)

const (
	importInputKey = "backup.import.input"
	importGzipKey  = "backup.import.gzip"
)

var errImportAborted = errors.New("import aborted")

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Replace the notebook with the contents of a backup",
	Long: `Replace the notebook with the contents of a JSON backup written by
export. The file is validated as a whole first: when any part of it is
malformed nothing is imported and the notebook stays as it was.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		inputPath := viper.GetString(importInputKey)
		gzipEnabled := viper.GetBool(importGzipKey)
		yes, _ := cmd.Flags().GetBool("yes")

		if inputPath == "" {
			return fmt.Errorf("pass the backup file with --input, or - for standard input")
		}
		// Standard input carries the backup, so there is nothing left to answer a prompt.
		if !yes && inputPath != "-" &&
			!confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), "Importing replaces every word, setting and statistic. Continue?") {
			return errImportAborted
		}

		return withApp(cmd, func(ctx context.Context, c *app.Container) (err error) {
			reader, closeFn, err := openInput(inputPath, gzipEnabled, cmd.InOrStdin())
			if err != nil {
				return err
			}
			defer func() {
				if cerr := closeFn(); cerr != nil && err == nil {
					err = cerr
				}
			}()

			change, err := c.Vocabulary.Import(ctx, reader)
			if change != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d words, %d mastered.\n",
					change.Stats.TotalWords, change.Stats.MasteredWords)
			}
			return err
		})
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringP("input", "i", "", "backup file path, - for standard input")
	importCmd.Flags().Bool("gzip", false, "the backup is gzip compressed")
	importCmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation")

	bindImportConfig()
}

func bindImportConfig() {
	bindFlagToViper(importInputKey, importCmd.Flags().Lookup("input"))
	bindFlagToViper(importGzipKey, importCmd.Flags().Lookup("gzip"))
}
