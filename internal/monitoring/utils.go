package monitoring

import (
	"strings"
)

// getSegmentName shortens a runtime function name to package.receiver.method,
// e.g. ".../internal/services.(*sink).Process" becomes "services.sink.Process".
func getSegmentName(fullFuncName string) string {
	name := fullFuncName
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}

	parts := strings.Split(name, ".")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSuffix(strings.TrimPrefix(part, "(*"), ")")
		part = strings.Trim(part, "()")
		if part != "" {
			result = append(result, part)
		}
	}

	if len(result) == 0 {
		return fullFuncName
	}

	return strings.Join(result, ".")
}
