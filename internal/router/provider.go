// Package router escalates extraction requests through a chain of providers:
// deterministic pattern matching first, then a local model, then a cloud
// model, each gated by availability checks and confidence thresholds.
package router

import "context"

// ExtractionType names the kind of structured data requested
type ExtractionType string

const (
	TypeHeader     ExtractionType = "header"
	TypeAttendees  ExtractionType = "attendees"
	TypeAbsent     ExtractionType = "absent"
	TypeStaff      ExtractionType = "staff"
	TypeDiscussion ExtractionType = "discussion"
	TypeVote       ExtractionType = "vote"
	TypeDecision   ExtractionType = "decision"
	TypeNameMatch  ExtractionType = "name_match"
	TypeGeneral    ExtractionType = "general"
)

// Method identifies which provider produced a result
type Method string

const (
	MethodPattern Method = "pattern"
	MethodOllama  Method = "ollama"
	MethodOpenAI  Method = "openai"
)

// Result of one extraction attempt. The router never returns a Go error:
// failures are carried in Success/Error so a bad span cannot abort a
// document.
type Result struct {
	Success     bool
	Data        map[string]any
	Confidence  float64
	Method      Method
	RawResponse string
	Error       string
	TokensUsed  int
}

// GoodEnough reports whether the result clears a confidence threshold
func (r Result) GoodEnough(threshold float64) bool {
	return r.Success && r.Confidence >= threshold
}

// Int reads an integer field from the result data, tolerating the float64
// and string shapes JSON decoding produces.
func (r Result) Int(key string) int {
	switch v := r.Data[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		n := 0
		for _, c := range v {
			if c < '0' || c > '9' {
				return 0
			}
			n = n*10 + int(c-'0')
		}
		return n
	default:
		return 0
	}
}

// String reads a string field from the result data
func (r Result) String(key string) string {
	if s, ok := r.Data[key].(string); ok {
		return s
	}
	return ""
}

// Provider is one extraction strategy in the fallback chain
type Provider interface {
	// Name returns the provider name
	Name() Method

	// Available reports whether the provider can serve requests. Results
	// are cached after the first probe; a provider that recovers later is
	// not retried without an explicit reset.
	Available(ctx context.Context) bool

	// Extract attempts extraction. Transport and parse failures come back
	// as failed Results, never as panics or errors.
	Extract(ctx context.Context, text string, typ ExtractionType) Result
}
