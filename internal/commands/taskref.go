package commands

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"tasksync/internal/service"
)

// ErrTaskIDRequired indicates no task id was provided.
var ErrTaskIDRequired = errors.New("task id required")

// ParseTaskID parses the leading task id from args and returns the rest.
//
// Ids are opaque, so any token is accepted except:
// 1. an empty or whitespace-only token → error: task id required
// 2. a token containing '/', '?', '#' or whitespace → error: invalid task id: <id>
// A leading '#' (as printed by the list command) is stripped.
func ParseTaskID(args []string) (service.TaskID, []string, error) {
	if len(args) == 0 {
		return "", nil, ErrTaskIDRequired
	}

	raw := strings.TrimPrefix(strings.TrimSpace(args[0]), "#")
	if raw == "" {
		return "", nil, ErrTaskIDRequired
	}

	for _, r := range raw {
		if r == '/' || r == '?' || r == '#' || unicode.IsSpace(r) {
			return "", nil, fmt.Errorf("invalid task id: %s", args[0])
		}
	}

	return service.TaskID(raw), args[1:], nil
}
