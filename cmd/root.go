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
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/eslsoft/vocnote/internal/infrastructure/config"
)

var rootCmd = &cobra.Command{
	Use:   "vocnote",
	Short: "A vocabulary notebook with spaced review",
	Long: `vocnote keeps the words you are learning together with their meaning,
an example sentence and tags, and schedules flashcard reviews on a fixed
1, 3, 7, 14, 30 day ladder.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		var notice *noticeError
		if errors.As(err, &notice) {
			fmt.Fprintln(os.Stderr, notice.msg)
		} else {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default ./vocnote.yaml or <user config dir>/vocnote/vocnote.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("storage-driver", "", "storage driver: sqlite3, postgres or pgx")
	rootCmd.PersistentFlags().String("storage-dsn", "", "storage connection string")
	rootCmd.PersistentFlags().Bool("replace-unreadable", false, "start from an empty notebook when the saved one cannot be read; the next save overwrites it")

	bindFlagToViper(config.FileKey, rootCmd.PersistentFlags().Lookup("config"))
	bindFlagToViper("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	bindFlagToViper("storage.driver", rootCmd.PersistentFlags().Lookup("storage-driver"))
	bindFlagToViper("storage.dsn", rootCmd.PersistentFlags().Lookup("storage-dsn"))
	bindFlagToViper("storage.replace_unreadable", rootCmd.PersistentFlags().Lookup("replace-unreadable"))
}
