package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/muurk/confsched/internal/config"
	"github.com/muurk/confsched/internal/model"
	"github.com/muurk/confsched/internal/ui"
)

// Command flags
var (
	showDay      int
	outputFormat string
	forceInit    bool
)

func init() {
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(schedulesCmd)

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	schedulesCmd.AddCommand(schedulesListCmd)
	schedulesCmd.AddCommand(schedulesDeleteCmd)
}

// showCmd prints the schedule without opening the interactive view
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the schedule",
	Long: `Print the week, or a single day, of the schedule and exit.

The detailed format draws one box per day and notes the recurrence and next
occurrence of every call. The compact format prints one tab-separated line
per call for scripting, and yaml prints the stored form.`,
	Example: `  # Print the whole week
  confsched show

  # Print Wednesday only
  confsched show --day 3

  # One line per call
  confsched show --format compact`,
	Args: cobra.NoArgs,
	RunE: runShow,
}

func init() {
	showCmd.Flags().IntVar(&showDay, "day", 0, "Day to show (1 = Monday ... 7 = Sunday, 0 = whole week)")
	showCmd.Flags().StringVar(&outputFormat, "format", "detailed", "Output format (detailed, compact, yaml)")
}

func runShow(cmd *cobra.Command, args []string) error {
	if showDay < 0 || showDay > model.DaysInWeek {
		return fmt.Errorf("--day must be between 0 and %d, got %d", model.DaysInWeek, showDay)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	p := ui.NewPrinter(cmd.OutOrStdout())

	st, err := openStore(cfg)
	if err != nil {
		p.PrintError("Cannot open the schedule store", err, []string{
			"Check that --data-dir points to a readable directory",
			"Check that --store matches the backend the data was written with",
		})
		return err
	}
	defer st.Close()

	schedule, err := st.LoadSchedule(cmd.Context(), cfg.ScheduleName)
	if err != nil {
		p.PrintError("Cannot load schedule "+strconv.Quote(cfg.ScheduleName), err, []string{
			"Run 'confsched schedules list' to see the stored schedules",
		})
		return err
	}

	var days []int
	if showDay > 0 {
		days = []int{showDay}
	}

	switch outputFormat {
	case "compact":
		p.Print(ui.FormatCompact(schedule, days...))
	case "yaml":
		data, err := yaml.Marshal(weekDocument(schedule, days))
		if err != nil {
			return fmt.Errorf("failed to marshal YAML: %w", err)
		}
		p.Print(string(data))
	case "detailed":
		settings, err := st.LoadSettings(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}
		autostart := "off"
		if settings.Autostart {
			autostart = fmt.Sprintf("on, %d min early", settings.EarlyJoinMinutes)
		}
		p.PrintHeader("Weekly schedule", "confsched show", []ui.Param{
			{Key: "Schedule", Value: schedule.Name},
			{Key: "Backend", Value: st.Backend()},
			{Key: "Autostart", Value: autostart},
		})
		now := time.Now()
		if showDay > 0 {
			p.PrintDay(schedule, showDay, now)
		} else {
			p.PrintWeek(schedule, now)
		}
	default:
		return fmt.Errorf("unknown format %q (want detailed, compact or yaml)", outputFormat)
	}
	return nil
}

// weekDocument maps day names to conferences for YAML output.
func weekDocument(s *model.Schedule, days []int) map[string][]model.Conference {
	if len(days) == 0 {
		for d := 1; d <= model.DaysInWeek; d++ {
			days = append(days, d)
		}
	}
	doc := make(map[string][]model.Conference, len(days))
	for _, d := range days {
		if confs := s.Day(d); len(confs) > 0 {
			doc[model.DayName(d)] = confs
		}
	}
	return doc
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	Long: `Write a configuration file holding the defaults and the flags given on
the command line. An existing file is kept unless --force is set.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolvedConfigPath()
		if err != nil {
			return err
		}
		if _, err := os.Stat(path); err == nil && !forceInit {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if err := cfg.Save(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing file")
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolvedConfigPath()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func resolvedConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return config.GetConfigPath()
}

var schedulesCmd = &cobra.Command{
	Use:   "schedules",
	Short: "Manage stored schedules",
}

var schedulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the stored schedules",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		names, err := st.ListSchedules(cmd.Context())
		if err != nil {
			return err
		}
		for _, name := range names {
			marker := "  "
			if name == cfg.ScheduleName {
				marker = "* "
			}
			fmt.Fprintln(cmd.OutOrStdout(), marker+name)
		}
		return nil
	},
}

var schedulesDeleteCmd = &cobra.Command{
	Use:   "delete NAME",
	Short: "Delete a stored schedule",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.DeleteSchedule(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted schedule %s\n", args[0])
		return nil
	},
}
