package planner

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/pkordes/eld-planner/backend/internal/domain"
)

// ServiceError describes a failed call to the planner service. StatusCode is
// 0 when no response was received. Detail carries the service's own message
// when the response body had one.
//
// ServiceError matches domain.ErrUpstream with errors.Is.
type ServiceError struct {
	Op         string
	StatusCode int
	Detail     string
	Err        error
}

func (e *ServiceError) Error() string {
	var b strings.Builder
	b.WriteString("planner ")
	b.WriteString(e.Op)
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, ": status %d", e.StatusCode)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *ServiceError) Unwrap() []error {
	if e.Err == nil {
		return []error{domain.ErrUpstream}
	}
	return []error{domain.ErrUpstream, e.Err}
}

// Temporary reports whether retrying the same request could succeed.
func (e *ServiceError) Temporary() bool {
	switch e.StatusCode {
	case 0, 429, 500, 502, 503, 504:
		return true
	}
	return false
}

// parseDetail extracts a human-readable message from an error body. The
// planner answers either {"detail": "..."} or a field map such as
// {"current_cycle_hours": ["Ensure this value is less than or equal to 70."]}.
// Anything else yields "".
func parseDetail(body []byte) string {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return ""
	}

	if d, ok := raw["detail"]; ok {
		var s string
		if json.Unmarshal(d, &s) == nil {
			return s
		}
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var parts []string
	for _, k := range keys {
		var msgs []string
		if err := json.Unmarshal(raw[k], &msgs); err != nil || len(msgs) == 0 {
			continue
		}
		if k == "non_field_errors" {
			parts = append(parts, strings.Join(msgs, " "))
			continue
		}
		parts = append(parts, k+": "+strings.Join(msgs, " "))
	}
	return strings.Join(parts, "; ")
}
