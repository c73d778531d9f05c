// Package provider holds result types shared by adapters that call external
// text APIs (chat completion for translation and content generation).
package provider

import "fmt"

// Failure classifies why an external call produced no usable text.
type Failure string

const (
	FailureNone      Failure = ""
	FailureDisabled  Failure = "disabled"
	FailureTimeout   Failure = "timeout"
	FailureHTTP      Failure = "http_error"
	FailureTransport Failure = "transport"
	FailureMalformed Failure = "malformed"
	FailureEmpty     Failure = "empty"
)

// Outcome is the result of one external call. Exactly one of Text (on
// success) or Failure is meaningful; Err carries the cause when there is one.
type Outcome struct {
	Text    string
	Failure Failure
	Err     error
}

// Success wraps usable text.
func Success(text string) Outcome {
	return Outcome{Text: text}
}

// Failed builds a failed outcome. err may be nil.
func Failed(f Failure, err error) Outcome {
	return Outcome{Failure: f, Err: err}
}

// OK reports whether the call produced usable text.
func (o Outcome) OK() bool {
	return o.Failure == FailureNone
}

// Reason renders the failure for logs.
func (o Outcome) Reason() string {
	switch {
	case o.OK():
		return "ok"
	case o.Err != nil:
		return fmt.Sprintf("%s: %v", o.Failure, o.Err)
	default:
		return string(o.Failure)
	}
}
