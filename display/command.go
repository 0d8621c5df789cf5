package display

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// OutputEnv forces JSON output for every command that supports it, e.g. in CI.
const OutputEnv = "ENTMIRROR_OUTPUT"

// ShouldOutputJSON determines if a command should output JSON based on flags
// and the environment
func ShouldOutputJSON(cmd *cobra.Command) bool {
	if cmd == nil {
		return os.Getenv(OutputEnv) == FormatJSON
	}

	// Check if --json flag was explicitly set
	if cmd.Flags().Changed("json") {
		jsonFlag, _ := cmd.Flags().GetBool("json")
		return jsonFlag
	}

	// Check global --json flag
	if globalFlag, _ := cmd.Root().PersistentFlags().GetBool("json"); globalFlag {
		return true
	}

	return os.Getenv(OutputEnv) == FormatJSON
}

// OutputJSON marshals and prints JSON using display.MarshalJSON
func OutputJSON(w io.Writer, v interface{}) error {
	data, err := MarshalJSON(v)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
