package directoryclient

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// ErrUnavailable wraps transport failures reaching the directory
var ErrUnavailable = errors.New("directory unavailable")

// APIError is a non-2xx response from the directory. The body is either
// {"detail": "..."} or a map of field name to messages.
type APIError struct {
	StatusCode int
	Detail     string
	Fields     map[string][]string
}

// Error renders the directory's own message, e.g.
// "email: customer with this email already exists."
func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	if len(e.Fields) > 0 {
		names := make([]string, 0, len(e.Fields))
		for name := range e.Fields {
			names = append(names, name)
		}
		sort.Strings(names)

		parts := make([]string, 0, len(names))
		for _, name := range names {
			parts = append(parts, name+": "+strings.Join(e.Fields[name], " "))
		}
		return strings.Join(parts, "; ")
	}
	return fmt.Sprintf("directory returned HTTP %d", e.StatusCode)
}

// IsNotFound reports whether err is a 404 from the directory
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

func parseAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}
	if len(body) == 0 {
		return apiErr
	}

	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		apiErr.Detail = strings.TrimSpace(string(body))
		if len(apiErr.Detail) > 200 {
			apiErr.Detail = apiErr.Detail[:200]
		}
		return apiErr
	}

	if detail, ok := raw["detail"].(string); ok {
		apiErr.Detail = detail
		return apiErr
	}

	apiErr.Fields = make(map[string][]string, len(raw))
	for field, value := range raw {
		switch v := value.(type) {
		case string:
			apiErr.Fields[field] = []string{v}
		case []any:
			for _, m := range v {
				apiErr.Fields[field] = append(apiErr.Fields[field], fmt.Sprint(m))
			}
		default:
			apiErr.Fields[field] = []string{fmt.Sprint(v)}
		}
	}
	return apiErr
}
