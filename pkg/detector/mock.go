package detector

import (
	"context"

	"lidbench/pkg/core"
)

// Mock returns scripted verdicts, for tests and dry runs. ByText
// overrides win over the fixed Code; an empty resolved code is an
// unknown verdict.
type Mock struct {
	NameValue  string
	CodesValue []string
	Code       string
	ByText     map[string]string
}

func (m Mock) Name() string {
	if m.NameValue == "" {
		return "mock"
	}
	return m.NameValue
}

func (m Mock) Codes() []string {
	out := make([]string, len(m.CodesValue))
	copy(out, m.CodesValue)
	return out
}

func (m Mock) Identify(_ context.Context, text string) (core.Detection, error) {
	code := m.Code
	if override, ok := m.ByText[text]; ok {
		code = override
	}
	if code == "" {
		return core.Detection{Code: core.Unknown}, nil
	}
	return core.Detection{Code: code, Confidence: 1}, nil
}
