package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/doeshing/synora-ui/internal/app"
	appconfig "github.com/doeshing/synora-ui/internal/application/config"
	"github.com/doeshing/synora-ui/internal/application/console"
	"github.com/doeshing/synora-ui/internal/application/render"
	"github.com/doeshing/synora-ui/internal/domain"
)

// ============================================================================
// History Command
// ============================================================================

func newHistoryCommand(container *app.Container) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recent commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			NewPresenter(cmd.OutOrStdout()).History(container.HistoryStore.List(), container.Locale)
			return nil
		},
	}

	var limit int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recent commands, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			records := container.HistoryStore.List()
			if limit > 0 && len(records) > limit {
				records = records[:limit]
			}
			NewPresenter(cmd.OutOrStdout()).History(records, container.Locale)
			return nil
		},
	}
	listCmd.Flags().IntVar(&limit, "limit", domain.HistoryCapacity, "Max entries to show")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear command history",
		RunE: func(cmd *cobra.Command, args []string) error {
			return container.HistoryStore.Clear()
		},
	}

	historyCmd.AddCommand(listCmd, clearCmd)
	return historyCmd
}

// ============================================================================
// Language and Settings Commands
// ============================================================================

func newLangCommand(container *app.Container, con *console.Console) *cobra.Command {
	return &cobra.Command{
		Use:       "lang [zh|en]",
		Short:     "Show or switch the display language",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{domain.LangZH, domain.LangEN},
		RunE: func(cmd *cobra.Command, args []string) error {
			lang := container.Locale.Language()
			if len(args) == 1 {
				st, err := con.SetLanguage(args[0])
				if err != nil {
					return err
				}
				lang = st.Language
			}
			NewPresenter(cmd.OutOrStdout()).Meta(container.Locale.Format("prompts.languageSet", map[string]any{"lang": lang}))
			return nil
		},
	}
}

func newSettingsCommand(container *app.Container) *cobra.Command {
	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Show policy flags",
		RunE: func(cmd *cobra.Command, args []string) error {
			NewPresenter(cmd.OutOrStdout()).Settings(container.Settings.Load(), container.Locale)
			return nil
		},
	}

	setCmd := &cobra.Command{
		Use:       "set <flag> <on|off>",
		Short:     "Toggle a policy flag",
		Args:      cobra.ExactArgs(2),
		ValidArgs: domain.KnownFlags,
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := parseSwitch(args[1])
			if err != nil {
				return err
			}
			s, err := container.Settings.SetFlag(args[0], value)
			if err != nil {
				return err
			}
			NewPresenter(cmd.OutOrStdout()).Settings(s, container.Locale)
			return nil
		},
	}

	settingsCmd.AddCommand(setCmd)
	return settingsCmd
}

func parseSwitch(v string) (bool, error) {
	switch strings.ToLower(v) {
	case "on", "yes":
		return true, nil
	case "off", "no":
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("expected on|off, got %q", v)
	}
	return b, nil
}

func newCapabilitiesCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "capabilities",
		Short: "Show the feature overview",
		RunE: func(cmd *cobra.Command, args []string) error {
			view := render.RenderCapabilities(render.Capabilities, container.Locale)
			NewPresenter(cmd.OutOrStdout()).Capabilities(container.Locale.Resolve("capabilityTitle"), view)
			return nil
		},
	}
}

// ============================================================================
// Doctor Command
// ============================================================================

func newDoctorCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose config, storage and the UI service",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := container.DoctorService.Run(cmd.Context())
			NewPresenter(cmd.OutOrStdout()).Doctor(report)
			if err == nil && report.HasErrors() {
				return reported(fmt.Errorf("doctor found problems"))
			}
			return err
		},
	}
}

// ============================================================================
// Config Command
// ============================================================================

func newConfigCommand(container *app.Container) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect synora-ui configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd.Context(), cmd.OutOrStdout(), container)
		},
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show full configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd.Context(), cmd.OutOrStdout(), container)
		},
	}

	getCmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Get a specific configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigGet(cmd.Context(), cmd.OutOrStdout(), container, args[0])
		},
	}

	setCmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value (value accepts YAML syntax)",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(cmd.Context(), container, args[0], strings.Join(args[1:], " "))
		},
	}

	editCmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit configuration in $EDITOR",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigEdit(container)
		},
	}

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := container.ConfigProvider.Load(cmd.Context())
			if err != nil {
				return err
			}
			if err := appconfig.Validate(cfg); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Configuration valid")
			return nil
		},
	}

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), container.ConfigLoader.Path())
			return nil
		},
	}

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset configuration to defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := container.ConfigLoader.Reset()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration reset at %s\n", container.ConfigLoader.Path())
			data, _ := yaml.Marshal(cfg)
			fmt.Fprint(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	configCmd.AddCommand(showCmd, getCmd, setCmd, editCmd, validateCmd, pathCmd, resetCmd)
	return configCmd
}

func runConfigShow(ctx context.Context, out io.Writer, container *app.Container) error {
	cfg, err := container.ConfigProvider.Load(ctx)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Fprint(out, string(data))
	return nil
}

func runConfigGet(ctx context.Context, out io.Writer, container *app.Container, key string) error {
	cfgMap, err := configAsMap(ctx, container)
	if err != nil {
		return err
	}
	value, ok := traverseKey(cfgMap, strings.Split(key, "."))
	if !ok {
		return fmt.Errorf("key %s not found", key)
	}
	data, err := yaml.Marshal(value)
	if err != nil {
		return err
	}
	fmt.Fprint(out, string(data))
	return nil
}

func runConfigSet(ctx context.Context, container *app.Container, key, value string) error {
	cfgMap, err := configAsMap(ctx, container)
	if err != nil {
		return err
	}
	if !setMapValue(cfgMap, strings.Split(key, "."), parseValue(value)) {
		return fmt.Errorf("invalid key %q", key)
	}

	updatedRaw, err := yaml.Marshal(cfgMap)
	if err != nil {
		return err
	}
	var updated domain.Config
	if err := yaml.Unmarshal(updatedRaw, &updated); err != nil {
		return err
	}
	if err := appconfig.Validate(updated); err != nil {
		return err
	}
	return container.ConfigLoader.Save(updated)
}

// configAsMap round-trips the config through YAML so keys match the file.
func configAsMap(ctx context.Context, container *app.Container) (map[string]interface{}, error) {
	cfg, err := container.ConfigProvider.Load(ctx)
	if err != nil {
		return nil, err
	}
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	cfgMap := map[string]interface{}{}
	if err := yaml.Unmarshal(raw, &cfgMap); err != nil {
		return nil, err
	}
	return cfgMap, nil
}

func runConfigEdit(container *app.Container) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}
	cmd := exec.Command(editor, container.ConfigLoader.Path())
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func traverseKey(data interface{}, path []string) (interface{}, bool) {
	if len(path) == 0 {
		return data, true
	}
	switch node := data.(type) {
	case map[string]interface{}:
		next, ok := node[path[0]]
		if !ok {
			return nil, false
		}
		return traverseKey(next, path[1:])
	default:
		return nil, false
	}
}

func parseValue(input string) interface{} {
	var parsed interface{}
	if err := yaml.Unmarshal([]byte(input), &parsed); err != nil {
		return input
	}
	return parsed
}

func setMapValue(root map[string]interface{}, path []string, value interface{}) bool {
	if len(path) == 0 {
		return false
	}
	current := root
	for i := 0; i < len(path)-1; i++ {
		key := path[i]
		next, ok := current[key]
		if !ok {
			newChild := map[string]interface{}{}
			current[key] = newChild
			current = newChild
			continue
		}
		child, ok := next.(map[string]interface{})
		if !ok {
			child = map[string]interface{}{}
			current[key] = child
		}
		current = child
	}
	current[path[len(path)-1]] = value
	return true
}
