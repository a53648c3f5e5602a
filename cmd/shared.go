package cmd

import (
	"bufio"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/eslsoft/vocnote/internal/adapter/mapping"
	"github.com/eslsoft/vocnote/internal/app"
	"github.com/eslsoft/vocnote/internal/entity"
	"github.com/eslsoft/vocnote/internal/usecase"
)

// noticeError carries a short message meant for the terminal.
type noticeError struct {
	msg string
	err error
}

func (e *noticeError) Error() string { return e.msg }
func (e *noticeError) Unwrap() error { return e.err }

func notice(err error) error {
	if err == nil {
		return nil
	}
	return &noticeError{msg: mapping.UserMessage(err), err: err}
}

// withApp builds the container, runs fn and turns its failure into a short notice.
// The technical detail is logged at debug level.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, c *app.Container) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	c, cleanup, err := app.Initialize(ctx)
	if err != nil {
		if errors.Is(err, entity.ErrPersistence) || errors.Is(err, entity.ErrUnreadableStore) {
			return notice(err)
		}
		return fmt.Errorf("start vocnote: %w", err)
	}
	defer cleanup()

	c.Vocabulary.Subscribe(usecase.LogObserver(c.Logger))
	if err := fn(ctx, c); err != nil {
		c.Logger.WithError(err).WithField("command", cmd.Name()).Debug("command failed")
		return notice(err)
	}
	return nil
}

func bindFlagToViper(key string, flag *pflag.Flag) {
	if flag == nil {
		return
	}
	cobra.CheckErr(viper.BindPFlag(key, flag))
}

func renderTable(w io.Writer, header []string, rows [][]string) {
	table := tablewriter.NewWriter(w)
	if len(header) > 0 {
		table.SetHeader(header)
	}
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	table.AppendBulk(rows)
	table.Render()
}

func renderDetail(w io.Writer, rows [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	table.SetColumnSeparator(" ")
	table.AppendBulk(rows)
	table.Render()
}

// openOutput resolves "-" to out and compresses when gzipEnabled is set or the path ends in .gz.
// The returned close function flushes the gzip stream before closing the file.
func openOutput(path string, gzipEnabled bool, out io.Writer) (io.Writer, func() error, error) {
	var (
		writer   = out
		closeFns []func() error
	)
	if path != "-" && strings.HasSuffix(strings.ToLower(path), ".gz") {
		gzipEnabled = true
	}

	if path != "-" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create output directory: %w", err)
		}
		file, err := os.Create(path)
		if err != nil {
			return nil, nil, fmt.Errorf("create export file: %w", err)
		}
		writer = file
		closeFns = append(closeFns, file.Close)
	}

	if gzipEnabled {
		gz := gzip.NewWriter(writer)
		writer = gz
		closeFns = append([]func() error{gz.Close}, closeFns...)
	}

	return writer, closeAll(closeFns), nil
}

// openInput resolves "-" to in and decompresses when gzipEnabled is set or the path ends in .gz.
func openInput(path string, gzipEnabled bool, in io.Reader) (io.Reader, func() error, error) {
	var (
		reader  = in
		closers []func() error
	)
	if path != "-" && strings.HasSuffix(strings.ToLower(path), ".gz") {
		gzipEnabled = true
	}

	if path != "-" {
		file, err := os.Open(filepath.Clean(path))
		if err != nil {
			return nil, nil, fmt.Errorf("open import file: %w", err)
		}
		reader = file
		closers = append(closers, file.Close)
	}

	if gzipEnabled {
		gzr, err := gzip.NewReader(reader)
		if err != nil {
			_ = closeAll(closers)()
			return nil, nil, fmt.Errorf("%w: not a gzip stream: %w", entity.ErrParse, err)
		}
		reader = gzr
		closers = append([]func() error{gzr.Close}, closers...)
	}

	return reader, closeAll(closers), nil
}

func closeAll(fns []func() error) func() error {
	return func() error {
		var first error
		for _, fn := range fns {
			if err := fn(); err != nil && first == nil {
				first = err
			}
		}
		return first
	}
}

// confirm asks a yes/no question on out and reads the answer from in.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// resolveID accepts a full id or a unique prefix of one, as printed by list.
func resolveID(vocab usecase.VocabularyUsecase, raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", entity.NotFound(raw)
	}
	if entry, err := vocab.Get(raw); err == nil {
		return entry.ID, nil
	}
	var matches []string
	for _, w := range vocab.List() {
		if strings.HasPrefix(w.ID, raw) {
			matches = append(matches, w.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", entity.NotFound(raw)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%w: id prefix %q matches %d words", entity.ErrValidation, raw, len(matches))
	}
}
