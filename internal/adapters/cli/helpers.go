package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cmmcleod/coriolis-sub002/internal/infrastructure/config"
)

// resolveShip returns the ship from --ship, falling back to the default ship
// in the user config. Returns an error only if required and nothing is set.
func resolveShip(required bool) (string, error) {
	if shipFlag != "" {
		return shipFlag, nil
	}

	userConfigHandler, err := config.NewUserConfigHandler()
	if err != nil {
		return "", fmt.Errorf("no ship specified and failed to load user config: %w", err)
	}

	userCfg, err := userConfigHandler.Load()
	if err != nil {
		return "", fmt.Errorf("no ship specified and failed to load user config: %w", err)
	}

	if userCfg.DefaultShip == "" && required {
		return "", fmt.Errorf("no ship specified: use --ship, or set default with 'coriolis config set-ship'")
	}
	return userCfg.DefaultShip, nil
}

// readCode returns the build code from args, or from stdin when args[0] is "-"
func readCode(args []string) (string, error) {
	if len(args) == 0 {
		return "", nil
	}
	if args[0] != "-" {
		return strings.TrimSpace(args[0]), nil
	}
	raw, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read build code from stdin: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}

// formatCredits formats credits with thousands separators
func formatCredits(credits int64) string {
	if credits < 0 {
		return "-" + addThousandsSeparator(-credits)
	}
	return addThousandsSeparator(credits)
}

// addThousandsSeparator adds commas to a number (e.g., 1234567 -> "1,234,567")
func addThousandsSeparator(n int64) string {
	str := fmt.Sprintf("%d", n)
	if len(str) <= 3 {
		return str
	}

	// Insert commas from right to left
	var result []byte
	for i, c := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, byte(c))
	}
	return string(result)
}

// formatFlag renders a boolean slot flag as a table cell
func formatFlag(on bool) string {
	if on {
		return "yes"
	}
	return "no"
}
