package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/hubuum-io/hubuum-go/pkg/hubuum"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"

	defaultJSONIndent = 2
)

// Common static errors used throughout the commands package.
var (
	ErrServerRequired = errors.New("API server is required (use --server or run login)")
	ErrNotLoggedIn    = errors.New("not logged in (use --token or run login)")
)

// CreateClient builds an authenticated client from the configured server
// and token. The token is validated before any command runs.
func CreateClient(ctx context.Context) (*hubuum.AuthenticatedClient, error) {
	server := viper.GetString("server")
	if server == "" {
		return nil, ErrServerRequired
	}

	token := viper.GetString("token")
	if token == "" {
		return nil, ErrNotLoggedIn
	}

	base, err := hubuum.ParseBaseURL(server)
	if err != nil {
		return nil, err
	}

	var opts []hubuum.Option
	if viper.GetBool("verbose") {
		opts = append(opts, hubuum.WithDebug(true), hubuum.WithLogger(stderrLogger{}))
	}

	client, err := hubuum.New(base, opts...).LoginWithToken(ctx, hubuum.Token{Token: token})
	if err != nil {
		return nil, fmt.Errorf("authenticating against %s: %w", server, err)
	}

	return client, nil
}

// stderrLogger prints structured log lines to stderr for --verbose runs.
type stderrLogger struct{}

func (stderrLogger) log(level, msg string, fields map[string]interface{}) {
	fmt.Fprintf(os.Stderr, "%s: %s %v\n", level, msg, fields)
}

func (l stderrLogger) Debug(msg string, fields map[string]interface{}) { l.log("debug", msg, fields) }
func (l stderrLogger) Info(msg string, fields map[string]interface{})  { l.log("info", msg, fields) }
func (l stderrLogger) Warn(msg string, fields map[string]interface{})  { l.log("warn", msg, fields) }
func (l stderrLogger) Error(msg string, fields map[string]interface{}) { l.log("error", msg, fields) }

// StandardJSONRenderer writes the value as indented JSON to stdout.
func StandardJSONRenderer(value any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	return encoder.Encode(value)
}

// StandardYAMLRenderer writes the value as YAML to stdout.
func StandardYAMLRenderer(value any) error {
	data, err := yaml.Marshal(value)
	if err != nil {
		return err
	}

	_, err = os.Stdout.Write(data)

	return err
}

// renderList prints records in the selected output format.
func renderList[R hubuum.ApiResource](records []R) error {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		return StandardJSONRenderer(records)
	case OutputFormatYAML:
		return StandardYAMLRenderer(records)
	default:
		if len(records) == 0 {
			_, _ = os.Stdout.WriteString("No results\n")

			return nil
		}

		return hubuum.RenderTable(os.Stdout, records)
	}
}

// renderOne prints a single record in the selected output format.
func renderOne[R hubuum.ApiResource](record *R) error {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		return StandardJSONRenderer(record)
	case OutputFormatYAML:
		return StandardYAMLRenderer(record)
	default:
		return hubuum.RenderTable(os.Stdout, []R{*record})
	}
}

// applyFilters parses --filter fragments of the form field__operator=value
// and adds them to the builder in order.
func applyFilters[R hubuum.ApiResource](builder *hubuum.FilterBuilder[R], raw []string) error {
	for _, fragment := range raw {
		filters, err := hubuum.ParseFilters(fragment)
		if err != nil {
			return fmt.Errorf("parsing filter %q: %w", fragment, err)
		}

		for _, filter := range filters {
			builder.AddFilter(filter.Key, filter.Operator, filter.Value)
		}
	}

	return nil
}

// parseID parses a numeric id argument.
func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", arg, err)
	}

	return id, nil
}

// configFilePath returns the active config file, defaulting to
// $HOME/.hubuum/config.yaml.
func configFilePath() (string, error) {
	if used := viper.ConfigFileUsed(); used != "" {
		return used, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".hubuum", "config.yaml"), nil
}

// saveLoginConfig persists the server and token so later invocations can
// authenticate without flags. Existing config keys are preserved.
func saveLoginConfig(server, token string) error {
	path, err := configFilePath()
	if err != nil {
		return err
	}

	config := map[string]any{}

	if data, err := os.ReadFile(path); err == nil {
		_ = yaml.Unmarshal(data, &config)
	}

	config["server"] = server
	config["token"] = token

	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o600)
}
