package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"jornada/internal/bootstrap"
	progressdto "jornada/internal/modules/progress/dto"
	"jornada/internal/platform/config"
	apperrors "jornada/internal/platform/errors"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type globalFlags struct {
	dataDir string
	verbose bool
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "jornada",
		Short:         "Bible reading companion: plan, progress, devotionals",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.dataDir, "data", config.DefaultDataDir(), "data directory")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "debug logging on stderr")

	root.AddCommand(newTUICmd(flags))
	root.AddCommand(newInitCmd(flags))
	root.AddCommand(newTodayCmd(flags))
	root.AddCommand(newStatusCmd(flags))
	root.AddCommand(newCompleteCmd(flags))
	root.AddCommand(newPlanCmd(flags))
	root.AddCommand(newGoalsCmd(flags))
	root.AddCommand(newBadgesCmd(flags))
	root.AddCommand(newSettingsCmd(flags))
	root.AddCommand(newRemindersCmd(flags))
	root.AddCommand(newResetCmd(flags))
	root.AddCommand(newReadCmd(flags))
	root.AddCommand(newDevotionalCmd(flags))
	root.AddCommand(newPhraseCmd(flags))
	root.AddCommand(newMessiahCmd(flags))
	root.AddCommand(newOfflineCmd(flags))
	root.AddCommand(newDictCmd(flags))
	root.AddCommand(newJournalCmd(flags))
	return root
}

// withApp builds the application, runs fn and releases resources.
func withApp(flags *globalFlags, console io.Writer, fn func(*bootstrap.App) error) error {
	cfg, err := config.New(flags.dataDir)
	if err != nil {
		return err
	}
	app, err := bootstrap.New(context.Background(), cfg, bootstrap.Options{Verbose: flags.verbose, Console: console})
	if err != nil {
		return err
	}
	return errors.Join(fn(app), app.Close())
}

func newTUICmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			return withApp(flags, nil, bootstrap.RunTUI)
		},
	}
}

func newInitCmd(flags *globalFlags) *cobra.Command {
	var name string
	initCmd := &cobra.Command{
		Use:   "init --name <name>",
		Short: "Start the journey today",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				name = strings.Join(args, " ")
			}
			if strings.TrimSpace(name) == "" {
				return fmt.Errorf("%w: --name is required", apperrors.ErrInvalidInput)
			}
			return withApp(flags, cmd.ErrOrStderr(), func(app *bootstrap.App) error {
				out, err := app.ProgressCLI.Init(context.Background(), name)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "welcome, %s. journey started %s (edition %s)\n",
					out.Progress.UserName, out.Progress.StartDate, out.Progress.Version)
				return nil
			})
		},
	}
	initCmd.Flags().StringVar(&name, "name", "", "your name")
	return initCmd
}

func newTodayCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's reading",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, cmd.ErrOrStderr(), func(app *bootstrap.App) error {
				out, err := app.PlanCLI.Today(context.Background())
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				if !out.Found {
					_, _ = fmt.Fprintf(w, "%s: no reading scheduled today\n", out.Today.Format("2006-01-02"))
					return nil
				}
				printEntry(w, out.Entry.Date, out.Entry.Reading, out.Entry.IsMeditationDay, out.Entry.PhaseName, out.Entry.Focus)
				_, _ = fmt.Fprintf(w, "quarter: %s %s\n", out.Quarter.Tag, out.Quarter.Title)
				return nil
			})
		},
	}
}

func printEntry(w io.Writer, date, reading string, meditation bool, phase, focus string) {
	marker := ""
	if meditation {
		marker = " (meditação)"
	}
	_, _ = fmt.Fprintf(w, "%s  %s%s\nphase: %s\nfocus: %s\n", date, reading, marker, phase, focus)
}

func newStatusCmd(flags *globalFlags) *cobra.Command {
	var asJSON bool
	status := &cobra.Command{
		Use:   "status",
		Short: "Show overall progress, streaks and phases",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, cmd.ErrOrStderr(), func(app *bootstrap.App) error {
				out, err := app.ProgressCLI.Status(context.Background())
				if err != nil {
					return hintOnboarding(err)
				}
				w := cmd.OutOrStdout()
				if asJSON {
					enc := json.NewEncoder(w)
					enc.SetIndent("", "  ")
					return enc.Encode(out)
				}
				_, _ = fmt.Fprintf(w, "%s: %d/%d readings (%d%%)\n", out.Progress.UserName, out.Completed, out.Total, out.Percentage)
				_, _ = fmt.Fprintf(w, "streak: %d current, %d longest\n", out.CurrentStreak, out.LongestStreak)
				_, _ = fmt.Fprintf(w, "daily goals: %d/3\n", out.GoalsDone)
				for _, p := range out.Phases {
					_, _ = fmt.Fprintf(w, "  %d. %-28s %3d/%-3d %3d%%\n", p.ID, p.Name, p.Completed, p.Total, p.Percentage)
				}
				if len(out.WeekPending) > 0 {
					_, _ = fmt.Fprintf(w, "pending this week: %s\n", strings.Join(out.WeekPending, ", "))
				}
				return nil
			})
		},
	}
	status.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return status
}

func hintOnboarding(err error) error {
	if errors.Is(err, apperrors.ErrNoProgress) {
		return fmt.Errorf("%w: run `jornada init <name>` first", err)
	}
	return err
}

func newCompleteCmd(flags *globalFlags) *cobra.Command {
	var reflection, date string
	complete := &cobra.Command{
		Use:   "complete [--date MM-DD]",
		Short: "Mark a reading as completed (today when omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, cmd.ErrOrStderr(), func(app *bootstrap.App) error {
				ctx := context.Background()
				key := dateKey(date, args)
				if key == "" {
					today, err := app.PlanCLI.Today(ctx)
					if err != nil {
						return err
					}
					if !today.Found {
						return fmt.Errorf("%w: no reading scheduled today", apperrors.ErrNotFound)
					}
					key = today.Entry.Date
				}
				note := reflection
				if !cmd.Flags().Changed("reflection") {
					// Completing again must not wipe an earlier note.
					if p, err := app.ProgressCLI.Load(ctx); err == nil {
						note = p.Reflections[key]
					}
				}
				out, err := app.ProgressCLI.Complete(ctx, key, note)
				if err != nil {
					return hintOnboarding(err)
				}
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(w, "completed %s (%d readings)\n", key, len(out.Progress.CompletedDates))
				for _, b := range out.NewBadges {
					_, _ = fmt.Fprintf(w, "new badge: %s\n", b)
				}
				return nil
			})
		},
	}
	complete.Flags().StringVar(&reflection, "reflection", "", "personal reflection for the reading (kept when omitted)")
	addDateFlag(complete, &date)
	return complete
}

func newPlanCmd(flags *globalFlags) *cobra.Command {
	plan := &cobra.Command{Use: "plan", Short: "Reading plan queries"}

	var showDate string
	show := &cobra.Command{
		Use:   "show --date <MM-DD>",
		Short: "Show one plan entry",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := dateKey(showDate, args)
			if key == "" {
				return fmt.Errorf("%w: --date is required", apperrors.ErrInvalidInput)
			}
			return withApp(flags, cmd.ErrOrStderr(), func(app *bootstrap.App) error {
				e, err := app.PlanCLI.Show(context.Background(), key)
				if err != nil {
					return err
				}
				printEntry(cmd.OutOrStdout(), e.Date, e.Reading, e.IsMeditationDay, e.PhaseName, e.Focus)
				return nil
			})
		},
	}
	addDateFlag(show, &showDate)
	plan.AddCommand(show)

	var quarter string
	schedule := &cobra.Command{
		Use:   "schedule",
		Short: "List entries, optionally for one quarter",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, cmd.ErrOrStderr(), func(app *bootstrap.App) error {
				ctx := context.Background()
				entries, err := app.PlanCLI.Schedule(ctx, quarter)
				if err != nil {
					return err
				}
				done := completedSet(ctx, app)
				for _, e := range entries {
					box := "[ ]"
					if done[e.Date] {
						box = "[x]"
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s  %s\n", box, e.Date, e.Reading)
				}
				return nil
			})
		},
	}
	schedule.Flags().StringVar(&quarter, "quarter", "", "quarter number 1-4 or its tag")
	plan.AddCommand(schedule)

	plan.AddCommand(&cobra.Command{
		Use:   "quarters",
		Short: "List quarters",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, cmd.ErrOrStderr(), func(app *bootstrap.App) error {
				quarters, err := app.PlanCLI.Quarters(context.Background())
				if err != nil {
					return err
				}
				for _, q := range quarters {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  %-40s %3d entries\n", q.Tag, q.Title, q.Entries)
				}
				return nil
			})
		},
	})

	plan.AddCommand(&cobra.Command{
		Use:   "phases",
		Short: "Show per-phase progress",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, cmd.ErrOrStderr(), func(app *bootstrap.App) error {
				ctx := context.Background()
				phases, err := app.PlanCLI.Phases(ctx, completedKeys(ctx, app))
				if err != nil {
					return err
				}
				for _, p := range phases {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d. %s  %d/%d (%d%%)\n   %s\n",
						p.ID, p.Name, p.Completed, p.Total, p.Percentage, p.Description)
				}
				return nil
			})
		},
	})

	var ref string
	week := &cobra.Command{
		Use:   "week",
		Short: "List pending readings for the week (Monday to Sunday)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			at := time.Now()
			if ref != "" {
				parsed, err := time.ParseInLocation("2006-01-02", ref, time.Local)
				if err != nil {
					return fmt.Errorf("%w: --date must be YYYY-MM-DD", apperrors.ErrInvalidInput)
				}
				at = parsed
			}
			return withApp(flags, cmd.ErrOrStderr(), func(app *bootstrap.App) error {
				ctx := context.Background()
				out, err := app.PlanCLI.Week(ctx, at, completedKeys(ctx, app))
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(w, "week %s to %s\n", out.From.Format("01-02"), out.To.Format("01-02"))
				if len(out.Pending) == 0 {
					_, _ = fmt.Fprintln(w, "nothing pending")
				}
				for _, e := range out.Pending {
					_, _ = fmt.Fprintf(w, "  %s  %s\n", e.Date, e.Reading)
				}
				return nil
			})
		},
	}
	week.Flags().StringVar(&ref, "date", "", "reference date YYYY-MM-DD (default today)")
	plan.AddCommand(week)
	return plan
}

// completedKeys returns the completed date keys, or none before onboarding.
func completedKeys(ctx context.Context, app *bootstrap.App) []string {
	p, err := app.ProgressCLI.Load(ctx)
	if err != nil {
		return nil
	}
	return p.CompletedDates
}

func completedSet(ctx context.Context, app *bootstrap.App) map[string]bool {
	keys := completedKeys(ctx, app)
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	return set
}

func newGoalsCmd(flags *globalFlags) *cobra.Command {
	goals := &cobra.Command{Use: "goals", Short: "Daily goals"}

	goals.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show today's goals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, cmd.ErrOrStderr(), func(app *bootstrap.App) error {
				p, err := app.ProgressCLI.Load(context.Background())
				if err != nil {
					return hintOnboarding(err)
				}
				printGoals(cmd.OutOrStdout(), p)
				return nil
			})
		},
	})

	goals.AddCommand(&cobra.Command{
		Use:   "toggle <reading|prayer|extra>",
		Short: "Toggle a daily goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, cmd.ErrOrStderr(), func(app *bootstrap.App) error {
				out, err := app.ProgressCLI.ToggleGoal(context.Background(), args[0])
				if err != nil {
					return hintOnboarding(err)
				}
				printGoals(cmd.OutOrStdout(), out.Progress)
				return nil
			})
		},
	})

	goals.AddCommand(&cobra.Command{
		Use:   "set <reading|prayer|extra> <value>",
		Short: "Set a goal target",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("%w: value must be an integer", apperrors.ErrInvalidInput)
			}
			return withApp(flags, cmd.ErrOrStderr(), func(app *bootstrap.App) error {
				out, err := app.ProgressCLI.SetGoal(context.Background(), args[0], value)
				if err != nil {
					return hintOnboarding(err)
				}
				printGoals(cmd.OutOrStdout(), out.Progress)
				return nil
			})
		},
	})

	goals.AddCommand(&cobra.Command{
		Use:   "adjust <reading|prayer|extra> <delta>",
		Short: "Raise or lower a goal target",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			delta, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("%w: delta must be an integer", apperrors.ErrInvalidInput)
			}
			return withApp(flags, cmd.ErrOrStderr(), func(app *bootstrap.App) error {
				out, err := app.ProgressCLI.AdjustGoal(context.Background(), args[0], delta)
				if err != nil {
					return hintOnboarding(err)
				}
				printGoals(cmd.OutOrStdout(), out.Progress)
				return nil
			})
		},
	})
	return goals
}

func printGoals(w io.Writer, p progressdto.ProgressOutput) {
	check := func(done bool) string {
		if done {
			return "[x]"
		}
		return "[ ]"
	}
	_, _ = fmt.Fprintf(w, "goals for %s\n", p.Daily.Date)
	_, _ = fmt.Fprintf(w, "%s reading  %d min\n", check(p.Daily.ReadingDone), p.Goals.ReadingMinutes)
	_, _ = fmt.Fprintf(w, "%s prayer   %d min\n", check(p.Daily.PrayerDone), p.Goals.PrayerMinutes)
	_, _ = fmt.Fprintf(w, "%s extra    %d chapters\n", check(p.Daily.ExtraDone), p.Goals.ExtraChapters)
}

func newBadgesCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "badges",
		Short: "List badges and which are earned",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, cmd.ErrOrStderr(), func(app *bootstrap.App) error {
				badges, err := app.ProgressCLI.Badges(context.Background())
				if err != nil {
					return hintOnboarding(err)
				}
				for _, b := range badges {
					mark := "  "
					if b.Earned {
						mark = "★ "
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s%-28s %s\n", mark, b.Name, b.Description)
				}
				return nil
			})
		},
	}
}

func newSettingsCmd(flags *globalFlags) *cobra.Command {
	settings := &cobra.Command{Use: "settings", Short: "User settings"}
	settings.AddCommand(&cobra.Command{
		Use:   "version <ARC|KJV|SCOFIELD>",
		Short: "Choose the Bible edition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, cmd.ErrOrStderr(), func(app *bootstrap.App) error {
				out, err := app.ProgressCLI.SetVersion(context.Background(), args[0])
				if err != nil {
					return hintOnboarding(err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "edition: %s\n", out.Progress.Version)
				return nil
			})
		},
	})
	return settings
}

func newRemindersCmd(flags *globalFlags) *cobra.Command {
	reminders := &cobra.Command{Use: "reminders", Short: "Prayer and reading reminders"}

	reminders.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List reminders",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, cmd.ErrOrStderr(), func(app *bootstrap.App) error {
				items, err := app.ProgressCLI.Reminders(context.Background())
				if err != nil {
					return hintOnboarding(err)
				}
				if len(items) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no reminders")
					return nil
				}
				for _, r := range items {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\tactive=%t\t%s\n", r.ID, r.Time, r.Type, r.Active, r.Label)
				}
				return nil
			})
		},
	})

	var kind string
	add := &cobra.Command{
		Use:   "add <HH:mm> <label>",
		Short: "Add a reminder",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, cmd.ErrOrStderr(), func(app *bootstrap.App) error {
				r, err := app.ProgressCLI.AddReminder(context.Background(), args[0], strings.Join(args[1:], " "), kind)
				if err != nil {
					return hintOnboarding(err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added %s at %s (%s)\n", r.ID, r.Time, r.Type)
				return nil
			})
		},
	}
	add.Flags().StringVar(&kind, "type", "prayer", "reminder type: prayer|reading")
	reminders.AddCommand(add)

	reminders.AddCommand(&cobra.Command{
		Use:   "toggle <id>",
		Short: "Switch a reminder on or off",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, cmd.ErrOrStderr(), func(app *bootstrap.App) error {
				r, err := app.ProgressCLI.ToggleReminder(context.Background(), args[0])
				if err != nil {
					return hintOnboarding(err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s active=%t\n", r.ID, r.Active)
				return nil
			})
		},
	})

	reminders.AddCommand(&cobra.Command{
		Use:   "remove <id>",
		Short: "Delete a reminder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, cmd.ErrOrStderr(), func(app *bootstrap.App) error {
				if err := app.ProgressCLI.RemoveReminder(context.Background(), args[0]); err != nil {
					return hintOnboarding(err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", args[0])
				return nil
			})
		},
	})
	return reminders
}

func newResetCmd(flags *globalFlags) *cobra.Command {
	var yes bool
	reset := &cobra.Command{
		Use:   "reset",
		Short: "Delete all progress and downloaded texts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return fmt.Errorf("%w: reset deletes everything; pass --yes to confirm", apperrors.ErrInvalidInput)
			}
			return withApp(flags, cmd.ErrOrStderr(), func(app *bootstrap.App) error {
				removed, err := app.ProgressCLI.Reset(context.Background())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "progress reset; %d downloaded texts removed\n", removed)
				return nil
			})
		},
	}
	reset.Flags().BoolVar(&yes, "yes", false, "confirm the reset")
	return reset
}

func newReadCmd(flags *globalFlags) *cobra.Command {
	var edition, date string
	read := &cobra.Command{
		Use:   "read [--date MM-DD]",
		Short: "Print the text of a reading (today when omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, cmd.ErrOrStderr(), func(app *bootstrap.App) error {
				out, err := app.ContentCLI.Read(context.Background(), dateKey(date, args), edition)
				if out.DateKey == "" && err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(w, "%s  %s  [%s]\n\n", out.DateKey, out.Reading, out.Edition)
				if out.IsMeditationDay {
					_, _ = fmt.Fprintf(w, "Dia de meditação: %s\n", out.Focus)
				} else {
					_, _ = fmt.Fprintln(w, out.Text)
				}
				if out.Cached {
					_, _ = fmt.Fprintln(w, "\n(offline copy)")
				}
				return err
			})
		},
	}
	read.Flags().StringVar(&edition, "edition", "", "override the edition: ARC|KJV|SCOFIELD")
	addDateFlag(read, &date)
	return read
}

func addDateFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVar(target, "date", "", "plan date key MM-DD (default today)")
}

// dateKey prefers the --date flag over a positional key.
func dateKey(flag string, args []string) string {
	if flag != "" {
		return flag
	}
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func newDevotionalCmd(flags *globalFlags) *cobra.Command {
	var date string
	devotional := &cobra.Command{
		Use:   "devotional [--date MM-DD]",
		Short: "Show the devotional for a reading",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, cmd.ErrOrStderr(), func(app *bootstrap.App) error {
				d, err := app.ContentCLI.Devotional(context.Background(), dateKey(date, args))
				if d.Title == "" && err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(w, "%s\n%s\n\n%s\n\n", d.Title, d.Verse, d.Reflection)
				for _, p := range d.PracticalPoints {
					_, _ = fmt.Fprintf(w, "  • %s\n", p)
				}
				_, _ = fmt.Fprintf(w, "\nOração: %s\n", d.Prayer)
				return err
			})
		},
	}
	addDateFlag(devotional, &date)
	return devotional
}

func newPhraseCmd(flags *globalFlags) *cobra.Command {
	var date string
	phrase := &cobra.Command{
		Use:   "phrase [--date MM-DD]",
		Short: "Show the inspirational phrase of the day",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, cmd.ErrOrStderr(), func(app *bootstrap.App) error {
				p, err := app.ContentCLI.Phrase(context.Background(), dateKey(date, args))
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", p.Phrase)
				return nil
			})
		},
	}
	addDateFlag(phrase, &date)
	return phrase
}

func newMessiahCmd(flags *globalFlags) *cobra.Command {
	var date string
	messiah := &cobra.Command{
		Use:   "messiah [--date MM-DD]",
		Short: "Explain how a reading points to the Messiah",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, cmd.ErrOrStderr(), func(app *bootstrap.App) error {
				m, err := app.ContentCLI.Messiah(context.Background(), dateKey(date, args))
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n%s\n", m.Reading, m.Text)
				return nil
			})
		},
	}
	addDateFlag(messiah, &date)
	return messiah
}

func newOfflineCmd(flags *globalFlags) *cobra.Command {
	offline := &cobra.Command{Use: "offline", Short: "Downloaded texts"}

	offline.AddCommand(&cobra.Command{
		Use:   "download [MM-DD...]",
		Short: "Save readings for offline use (today when omitted)",
		RunE: func(cmd *cobra.Command, args []string) error {
			keys := args
			if len(keys) == 0 {
				keys = []string{""}
			}
			return withApp(flags, cmd.ErrOrStderr(), func(app *bootstrap.App) error {
				var errs []error
				for _, k := range keys {
					out, err := app.ContentCLI.Download(context.Background(), k)
					if err != nil {
						errs = append(errs, fmt.Errorf("%s: %w", k, err))
						continue
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "saved %s (%s)\n", out.Reference, out.Edition)
				}
				return errors.Join(errs...)
			})
		},
	})

	offline.AddCommand(&cobra.Command{
		Use:   "remove <MM-DD>",
		Short: "Forget a downloaded reading",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, cmd.ErrOrStderr(), func(app *bootstrap.App) error {
				removed, err := app.ContentCLI.RemoveDownload(context.Background(), args[0])
				if err != nil {
					return err
				}
				if !removed {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s was not downloaded\n", args[0])
					return nil
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", args[0])
				return nil
			})
		},
	})

	offline.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List downloaded readings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, cmd.ErrOrStderr(), func(app *bootstrap.App) error {
				items, err := app.ContentCLI.Downloads(context.Background())
				if err != nil {
					return err
				}
				if len(items) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no downloads")
					return nil
				}
				for _, d := range items {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", d.SavedAt.Local().Format("2006-01-02 15:04"), d.Edition, d.Reference)
				}
				return nil
			})
		},
	})

	offline.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete every downloaded reading",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, cmd.ErrOrStderr(), func(app *bootstrap.App) error {
				n, err := app.ContentCLI.ClearDownloads(context.Background())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed %d downloads\n", n)
				return nil
			})
		},
	})
	return offline
}

func newDictCmd(flags *globalFlags) *cobra.Command {
	dict := &cobra.Command{Use: "dict", Short: "Theological dictionary"}

	dict.AddCommand(&cobra.Command{
		Use:   "search [query]",
		Short: "Search the built-in dictionary",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, cmd.ErrOrStderr(), func(app *bootstrap.App) error {
				terms, err := app.DictionaryCLI.Search(context.Background(), strings.Join(args, " "))
				if err != nil {
					return err
				}
				if len(terms) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no terms match; try `jornada dict lookup <term>`")
					return nil
				}
				for _, t := range terms {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n  %s\n\n", t.Term, t.Definition)
				}
				return nil
			})
		},
	})

	dict.AddCommand(&cobra.Command{
		Use:   "lookup <term>",
		Short: "Define a term, asking the model when it is not built in",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, cmd.ErrOrStderr(), func(app *bootstrap.App) error {
				t, err := app.DictionaryCLI.Lookup(context.Background(), strings.Join(args, " "))
				if err != nil {
					return err
				}
				source := "dictionary"
				if t.Online {
					source = "generated"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n  %s\n", t.Term, source, t.Definition)
				return nil
			})
		},
	})
	return dict
}

func newJournalCmd(flags *globalFlags) *cobra.Command {
	journal := &cobra.Command{Use: "journal", Short: "Reflection journal"}

	var dir string
	export := &cobra.Command{
		Use:   "export",
		Short: "Write reflections as markdown notes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, cmd.ErrOrStderr(), func(app *bootstrap.App) error {
				out, err := app.JournalCLI.Export(context.Background(), dir)
				if err != nil {
					return hintOnboarding(err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %d notes to %s\nindex: %s\n", len(out.Notes), out.Dir, out.IndexPath)
				return nil
			})
		},
	}
	export.Flags().StringVar(&dir, "dir", "", "target directory (default <data>/journal)")
	journal.AddCommand(export)
	return journal
}
