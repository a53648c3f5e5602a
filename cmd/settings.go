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
	"strconv"

	"github.com/spf13/cobra"

	"github.com/eslsoft/vocnote/internal/app"
	"github.com/eslsoft/vocnote/internal/entity"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change the notebook settings",
	Example: `  vocnote settings
  vocnote settings --daily-goal 20 --review-mode random`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		patch, err := settingsPatchFromFlags(cmd)
		if err != nil {
			return err
		}

		return withApp(cmd, func(ctx context.Context, c *app.Container) error {
			settings := c.Vocabulary.Settings()
			var err error
			if patch != (entity.SettingsPatch{}) {
				settings, err = c.Vocabulary.UpdateSettings(ctx, patch)
			}
			renderDetail(cmd.OutOrStdout(), settingsDetail(settings))
			return err
		})
	},
}

func settingsPatchFromFlags(cmd *cobra.Command) (entity.SettingsPatch, error) {
	var patch entity.SettingsPatch
	flags := cmd.Flags()
	if flags.Changed("theme") {
		v, err := flags.GetString("theme")
		if err != nil {
			return patch, err
		}
		patch.Theme = &v
	}
	if flags.Changed("review-mode") {
		v, err := flags.GetString("review-mode")
		if err != nil {
			return patch, err
		}
		patch.ReviewMode = &v
	}
	if flags.Changed("daily-goal") {
		v, err := flags.GetInt("daily-goal")
		if err != nil {
			return patch, err
		}
		patch.DailyGoal = &v
	}
	if flags.Changed("notifications") {
		v, err := flags.GetBool("notifications")
		if err != nil {
			return patch, err
		}
		patch.Notifications = &v
	}
	return patch, nil
}

func settingsDetail(s entity.Settings) [][]string {
	return [][]string{
		{"Theme", s.Theme},
		{"Review mode", s.ReviewMode},
		{"Daily goal", strconv.Itoa(s.DailyGoal)},
		{"Notifications", strconv.FormatBool(s.Notifications)},
	}
}

func init() {
	rootCmd.AddCommand(settingsCmd)

	settingsCmd.Flags().String("theme", "", "color theme: auto, light or dark")
	settingsCmd.Flags().String("review-mode", "", "study order: spaced or random")
	settingsCmd.Flags().Int("daily-goal", 0, "words to study per day")
	settingsCmd.Flags().Bool("notifications", true, "enable review reminders")
}
