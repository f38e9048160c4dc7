package cmd

import (
	"encoding/json"
	"fmt"
)

// printJSON renders v as indented JSON to stdout, the uniform output shape
// every read/write subcommand here uses.
func printJSON(v any) error {
	result, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to format result: %w", err)
	}
	fmt.Println(string(result))
	return nil
}
