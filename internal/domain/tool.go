package domain

import "encoding/json"

// ToolSpec is what the voice model sees of a tool. Parameters is a JSON Schema
// object describing the call arguments.
type ToolSpec struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  json.RawMessage `json:"parameters"`
}

type ToolCall struct {
	ID        string          `json:"call_id"`
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

type ToolResult struct {
	CallID string          `json:"call_id"`
	Name   string          `json:"name"`
	OK     bool            `json:"ok"`
	Output json.RawMessage `json:"output,omitempty"`
	Error  string          `json:"error,omitempty"`
}

func ToolFailure(call ToolCall, err error) ToolResult {
	return ToolResult{CallID: call.ID, Name: call.Name, OK: false, Error: err.Error()}
}

func ToolSuccess(call ToolCall, output json.RawMessage) ToolResult {
	return ToolResult{CallID: call.ID, Name: call.Name, OK: true, Output: output}
}
