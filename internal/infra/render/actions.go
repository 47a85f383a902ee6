package render

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
)

// EnvGitHubOutput names the file GitHub Actions reads step outputs from.
const EnvGitHubOutput = "GITHUB_OUTPUT"

// WriteActionsOutput appends the step output name=value to the file at path
// using the multiline delimiter syntax.
func WriteActionsOutput(path, name, value string) error {
	if path == "" {
		return fmt.Errorf("%s is not set", EnvGitHubOutput)
	}

	delimiter := "ghadelimiter_" + uuid.New().String()
	if strings.Contains(name, delimiter) || strings.Contains(value, delimiter) {
		return fmt.Errorf("output %s contains the delimiter", name)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	if _, err := fmt.Fprintf(f, "%s<<%s\n%s\n%s\n", name, delimiter, value, delimiter); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
