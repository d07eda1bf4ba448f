package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/bnema/alexis-agent/internal/domain"
	"github.com/google/jsonschema-go/jsonschema"
	"github.com/xeipuuv/gojsonschema"
)

// ToolHandler receives arguments that already passed schema validation.
type ToolHandler func(ctx context.Context, args json.RawMessage) (json.RawMessage, error)

type Tool struct {
	Spec    domain.ToolSpec
	Handler ToolHandler
}

// NewTool derives the parameter schema from Args and decodes validated
// arguments into it before calling handle.
func NewTool[Args any](name, description string, handle func(ctx context.Context, args Args) (json.RawMessage, error)) (Tool, error) {
	schema, err := jsonschema.For[Args](nil)
	if err != nil {
		return Tool{}, fmt.Errorf("derive parameter schema for tool %q: %w", name, err)
	}

	parameters, err := json.Marshal(schema)
	if err != nil {
		return Tool{}, fmt.Errorf("encode parameter schema for tool %q: %w", name, err)
	}

	return Tool{
		Spec: domain.ToolSpec{
			Name:        name,
			Description: description,
			Parameters:  parameters,
		},
		Handler: func(ctx context.Context, raw json.RawMessage) (json.RawMessage, error) {
			var args Args
			if err := json.Unmarshal(normalizeArguments(raw), &args); err != nil {
				return nil, fmt.Errorf("decode arguments: %w", err)
			}
			return handle(ctx, args)
		},
	}, nil
}

type registeredTool struct {
	tool   Tool
	schema *gojsonschema.Schema
}

// ToolRegistry maps tool names to handlers. It is immutable once built and
// safe for concurrent Invoke calls.
type ToolRegistry struct {
	tools map[string]registeredTool
}

func RegisterTools(tools ...Tool) (*ToolRegistry, error) {
	registry := &ToolRegistry{tools: make(map[string]registeredTool, len(tools))}

	for _, tool := range tools {
		name := strings.TrimSpace(tool.Spec.Name)
		if name == "" {
			return nil, &domain.ConfigurationError{Fields: []string{"tool name"}, Err: errors.New("tool name is empty")}
		}
		if tool.Handler == nil {
			return nil, &domain.ConfigurationError{Fields: []string{"tool handler"}, Err: fmt.Errorf("tool %q has no handler", name)}
		}
		if _, exists := registry.tools[name]; exists {
			return nil, &domain.DuplicateToolError{Name: name}
		}

		parameters := tool.Spec.Parameters
		if len(parameters) == 0 {
			parameters = json.RawMessage(`{"type":"object"}`)
		}
		schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(parameters))
		if err != nil {
			return nil, &domain.ConfigurationError{
				Fields: []string{"tool parameters"},
				Err:    fmt.Errorf("compile parameter schema for tool %q: %w", name, err),
			}
		}

		tool.Spec.Name = name
		tool.Spec.Parameters = parameters
		registry.tools[name] = registeredTool{tool: tool, schema: schema}
	}

	return registry, nil
}

func (r *ToolRegistry) Len() int {
	return len(r.tools)
}

func (r *ToolRegistry) Has(name string) bool {
	_, ok := r.tools[name]
	return ok
}

// Specs returns the registered tool specs sorted by name.
func (r *ToolRegistry) Specs() []domain.ToolSpec {
	specs := make([]domain.ToolSpec, 0, len(r.tools))
	for _, entry := range r.tools {
		specs = append(specs, entry.tool.Spec)
	}
	sort.Slice(specs, func(i, j int) bool { return specs[i].Name < specs[j].Name })
	return specs
}

// Invoke validates the call arguments and runs the handler. Every failure is
// returned as *domain.ToolExecutionError.
func (r *ToolRegistry) Invoke(ctx context.Context, call domain.ToolCall) (json.RawMessage, error) {
	entry, ok := r.tools[call.Name]
	if !ok {
		return nil, &domain.ToolExecutionError{Tool: call.Name, CallID: call.ID, Err: domain.ErrToolNotFound}
	}

	args := normalizeArguments(call.Arguments)
	result, err := entry.schema.Validate(gojsonschema.NewBytesLoader(args))
	if err != nil {
		return nil, &domain.ToolExecutionError{Tool: call.Name, CallID: call.ID, Err: fmt.Errorf("validate arguments: %w", err)}
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return nil, &domain.ToolExecutionError{
			Tool:   call.Name,
			CallID: call.ID,
			Err:    fmt.Errorf("invalid arguments: %s", strings.Join(details, "; ")),
		}
	}

	output, err := entry.tool.Handler(ctx, args)
	if err != nil {
		var toolErr *domain.ToolExecutionError
		if errors.As(err, &toolErr) {
			return nil, err
		}
		return nil, &domain.ToolExecutionError{Tool: call.Name, CallID: call.ID, Err: err}
	}
	if len(output) == 0 {
		output = json.RawMessage(`null`)
	}

	return output, nil
}

func normalizeArguments(raw json.RawMessage) json.RawMessage {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return json.RawMessage(`{}`)
	}
	return raw
}
