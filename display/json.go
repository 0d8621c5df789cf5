package display

import (
	"encoding/json"
	"os"
)

// MarshalJSON marshals JSON with pretty formatting for terminals and compact
// formatting when ENTMIRROR_OUTPUT=json asks for machine output
func MarshalJSON(v interface{}) ([]byte, error) {
	if os.Getenv(OutputEnv) == FormatJSON {
		return json.Marshal(v)
	}
	return json.MarshalIndent(v, "", "  ")
}
