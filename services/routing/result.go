package routing

import "fmt"

// ResultKind tags the shape of an executor result.
type ResultKind int

const (
	// ResultText is directly usable text.
	ResultText ResultKind = iota

	// ResultOutput exposes a raw output and a primary output field.
	ResultOutput

	// ResultValue is an arbitrary value that can only be stringified.
	ResultValue
)

func (k ResultKind) String() string {
	switch k {
	case ResultText:
		return "text"
	case ResultOutput:
		return "output"
	case ResultValue:
		return "value"
	default:
		return "unknown"
	}
}

// Result is what an Executor hands back. Build it with TextResult,
// OutputResult or ValueResult.
type Result struct {
	Kind   ResultKind
	text   string
	raw    string
	output string
	value  any
}

// TextResult wraps plain text.
func TextResult(text string) Result {
	return Result{Kind: ResultText, text: text}
}

// OutputResult wraps an object exposing raw and primary output fields.
// value is stringified when both fields are empty.
func OutputResult(raw, output string, value any) Result {
	return Result{Kind: ResultOutput, raw: raw, output: output, value: value}
}

// ValueResult wraps any other value.
func ValueResult(value any) Result {
	return Result{Kind: ResultValue, value: value}
}

// Text extracts the result text. Priority: direct text, then the raw output
// field, then the primary output field, then string conversion.
func (r Result) Text() string {
	switch r.Kind {
	case ResultText:
		return r.text
	case ResultOutput:
		if r.raw != "" {
			return r.raw
		}
		if r.output != "" {
			return r.output
		}
	}
	if r.value == nil {
		return ""
	}
	return fmt.Sprint(r.value)
}
