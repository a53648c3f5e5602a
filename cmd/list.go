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
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/eslsoft/vocnote/internal/adapter/mapping"
	"github.com/eslsoft/vocnote/internal/app"
	"github.com/eslsoft/vocnote/internal/entity"
	"github.com/eslsoft/vocnote/internal/repository"
	"github.com/eslsoft/vocnote/internal/usecase"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List words, optionally searched, filtered and ordered",
	Example: `  vocnote list --search fruit
  vocnote list --tag noun --order-by "mastery desc"
  vocnote list --filter 'mastery >= 80 && word.startsWith("re")'
  vocnote list --filter 'next_review <= timestamp("2025-06-01T00:00:00Z")' --order-by next_review`,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		search, _ := flags.GetString("search")
		tag, _ := flags.GetString("tag")
		filter, _ := flags.GetString("filter")
		orderBy, _ := flags.GetString("order-by")
		page, _ := flags.GetInt32("page")
		pageSize, _ := flags.GetInt32("page-size")

		query := &repository.ListWordQuery{
			Pagination: repository.Pagination{PageNo: page, PageSize: pageSize},
			FilterOrder: repository.FilterOrder{
				Filter:  buildListFilter(search, tag, filter),
				OrderBy: orderBy,
			},
		}

		return withApp(cmd, func(ctx context.Context, c *app.Container) error {
			words, total, err := listWords(ctx, c.Vocabulary, search, query)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if total == 0 {
				fmt.Fprintln(out, "No words found.")
				return nil
			}
			renderTable(out, mapping.WordHeader, mapping.WordRows(words, time.Now(), c.Options.Location))
			fmt.Fprintf(out, "\n%d of %d words\n", len(words), total)
			return nil
		})
	},
}

// listWords uses the plain search when --search is the only option and Query otherwise.
func listWords(ctx context.Context, vocab usecase.VocabularyUsecase, search string, query *repository.ListWordQuery) ([]entity.WordEntry, int, error) {
	plain := strings.TrimSpace(search)
	if plain != "" && query.Filter == "keyword == "+strconv.Quote(plain) &&
		query.OrderBy == "" && query.PageSize <= 0 {
		words := vocab.Search(plain)
		return words, len(words), nil
	}
	return vocab.Query(ctx, query)
}

// buildListFilter joins the shortcut flags and the raw filter into one AND chain.
func buildListFilter(search, tag, filter string) string {
	var parts []string
	if s := strings.TrimSpace(search); s != "" {
		parts = append(parts, "keyword == "+strconv.Quote(s))
	}
	if t := strings.TrimSpace(tag); t != "" {
		parts = append(parts, "tag == "+strconv.Quote(t))
	}
	if f := strings.TrimSpace(filter); f != "" {
		if len(parts) > 0 {
			f = "(" + f + ")"
		}
		parts = append(parts, f)
	}
	return strings.Join(parts, " && ")
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringP("search", "s", "", "case-insensitive text in the word, meaning, example or tags")
	listCmd.Flags().StringP("tag", "t", "", "only words carrying this tag")
	listCmd.Flags().String("filter", "", "filter expression over keyword, tag, word, mastery, next_review and created_at")
	listCmd.Flags().String("order-by", "", "comma separated sort keys with optional asc/desc")
	listCmd.Flags().Int32("page", 1, "page number")
	listCmd.Flags().Int32("page-size", 0, "words per page, 0 for all")
}
