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
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/eslsoft/vocnote/internal/app"
	"github.com/eslsoft/vocnote/internal/entity"
	"github.com/eslsoft/vocnote/internal/usecase"
)

const reviewModeRandom = "random"

var errStudyQuit = errors.New("quit")

var studyCmd = &cobra.Command{
	Use:   "study",
	Short: "Walk through due words as flashcards",
	Long: `Show each due word, reveal its meaning on Enter and record how well you
remembered it: e for easy, n or Enter for normal, h for hard, s to skip
and q to stop. Progress is saved after every answer and periodically
while the session is open.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		all, _ := flags.GetBool("all")
		tag, _ := flags.GetString("tag")
		shuffle, _ := flags.GetBool("shuffle")
		limit, _ := flags.GetInt("limit")

		return withApp(cmd, func(ctx context.Context, c *app.Container) error {
			words := c.Vocabulary.DueForReview(time.Now())
			if all {
				words = c.Vocabulary.List()
			}
			if tag = strings.TrimSpace(tag); tag != "" {
				words = lo.Filter(words, func(w entity.WordEntry, _ int) bool { return w.HasTag(tag) })
			}
			if shuffle || c.Vocabulary.Settings().ReviewMode == reviewModeRandom {
				words = lo.Shuffle(words)
			}
			if limit > 0 && len(words) > limit {
				words = words[:limit]
			}

			out := cmd.OutOrStdout()
			if len(words) == 0 {
				fmt.Fprintln(out, "Nothing to study right now.")
				return nil
			}

			sessionCtx, cancel := context.WithCancel(ctx)
			var wg sync.WaitGroup
			autosaver := usecase.NewAutosaver(c.Vocabulary, c.Config.Autosave.Interval, c.Logger)
			wg.Add(1)
			go func() {
				defer wg.Done()
				autosaver.Run(sessionCtx)
			}()
			defer wg.Wait()
			defer cancel()

			events := usecase.NewBus(len(words))
			c.Vocabulary.Subscribe(events)

			session := &studySession{
				vocab:  c.Vocabulary,
				events: events,
				in:     bufio.NewScanner(cmd.InOrStdin()),
				out:    out,
				loc:    c.Options.Location,
			}
			return session.run(sessionCtx, words)
		})
	},
}

type studySession struct {
	vocab  usecase.VocabularyUsecase
	events *usecase.Bus
	in     *bufio.Scanner
	out    io.Writer
	loc    *time.Location

	reviewed int
	skipped  int
}

func (s *studySession) run(ctx context.Context, words []entity.WordEntry) error {
	var unsaved error
	for i, w := range words {
		if ctx.Err() != nil {
			break
		}
		difficulty, err := s.ask(i+1, len(words), w)
		if errors.Is(err, errStudyQuit) {
			break
		}
		if err != nil {
			return err
		}
		if difficulty == "" {
			s.skipped++
			continue
		}

		change, err := s.vocab.Review(ctx, w.ID, difficulty)
		if change != nil {
			s.reviewed++
			printReviewOutcome(s.out, change, s.loc)
		}
		switch {
		case errors.Is(err, entity.ErrPersistence):
			unsaved = err
		case err != nil:
			return err
		}
	}

	fmt.Fprintf(s.out, "\nReviewed %d, skipped %d.\n", s.reviewed, s.skipped)
	if n := s.masteredThisSession(); n > 0 {
		fmt.Fprintf(s.out, "%d word(s) now mastered.\n", n)
	}
	return unsaved
}

// ask shows one card and returns the chosen difficulty, empty for a skip.
func (s *studySession) ask(n, total int, w entity.WordEntry) (entity.Difficulty, error) {
	fmt.Fprintf(s.out, "\n[%d/%d] %s\n", n, total, w.Word)
	fmt.Fprint(s.out, "Press Enter to reveal (q to quit) ")
	answer, err := s.readLine()
	if err != nil {
		return "", err
	}
	if answer == "q" {
		return "", errStudyQuit
	}

	fmt.Fprintf(s.out, "  %s\n", w.Meaning)
	if w.Example != "" {
		fmt.Fprintf(s.out, "  e.g. %s\n", w.Example)
	}
	if len(w.Tags) > 0 {
		fmt.Fprintf(s.out, "  tags: %s\n", strings.Join(w.Tags, ", "))
	}

	fmt.Fprint(s.out, "[e]asy / [n]ormal / [h]ard / [s]kip / [q]uit: ")
	answer, err = s.readLine()
	if err != nil {
		return "", err
	}
	switch answer {
	case "q":
		return "", errStudyQuit
	case "s":
		return "", nil
	case "e":
		return entity.DifficultyEasy, nil
	case "h":
		return entity.DifficultyHard, nil
	default:
		return entity.ParseDifficulty(answer), nil
	}
}

// masteredThisSession counts the reviewed entries that reached the mastery threshold.
func (s *studySession) masteredThisSession() int {
	return lo.CountBy(s.events.Drain(), func(evt entity.Event) bool {
		return evt.Kind == entity.EventEntryUpdated && evt.Entry != nil && evt.Entry.IsMastered()
	})
}

// readLine treats the end of input like a quit.
func (s *studySession) readLine() (string, error) {
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", errStudyQuit
	}
	return strings.ToLower(strings.TrimSpace(s.in.Text())), nil
}

func init() {
	rootCmd.AddCommand(studyCmd)

	studyCmd.Flags().Bool("all", false, "study every word, not only the due ones")
	studyCmd.Flags().StringP("tag", "t", "", "only words carrying this tag")
	studyCmd.Flags().Bool("shuffle", false, "randomize the card order")
	studyCmd.Flags().IntP("limit", "n", 0, "stop after this many cards, 0 for no limit")
}
