package tools

import (
	"context"
	"fmt"
	"sort"
)

// Property — описание одного аргумента инструмента (JSON-schema-подобное)
type Property struct {
	Type        string   `json:"type"`
	Description string   `json:"description,omitempty"`
	Default     any      `json:"default,omitempty"`
	Enum        []string `json:"enum,omitempty"`
}

// InputSchema — схема входных аргументов инструмента
type InputSchema struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties"`
	Required   []string            `json:"required,omitempty"`
}

// Handler выполняет инструмент и возвращает текстовый результат
type Handler func(ctx context.Context, ownerUserID string, args map[string]any) (string, error)

// Tool — именованная операция каталога
type Tool struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	InputSchema InputSchema `json:"input_schema"`

	handler Handler
}

// ContentBlock — один блок ответа (только текстовый тип)
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Result — единый конверт ответа инструмента. Ошибки не выходят за
// границу диспетчера: любая ошибка превращается в текст с IsError=true.
type Result struct {
	Content []ContentBlock `json:"content"`
	IsError bool           `json:"is_error,omitempty"`
}

func textResult(text string) *Result {
	return &Result{Content: []ContentBlock{{Type: "text", Text: text}}}
}

func errorResult(text string) *Result {
	return &Result{Content: []ContentBlock{{Type: "text", Text: text}}, IsError: true}
}

// Registry — статический каталог инструментов
type Registry struct {
	tools map[string]*Tool
	order []string
}

func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]*Tool)}
}

// Register добавляет инструмент; повторная регистрация имени — паника
// (каталог собирается один раз при старте)
func (r *Registry) Register(tool *Tool) {
	if _, exists := r.tools[tool.Name]; exists {
		panic(fmt.Sprintf("tool %q registered twice", tool.Name))
	}
	if tool.InputSchema.Type == "" {
		tool.InputSchema.Type = "object"
	}
	if tool.InputSchema.Properties == nil {
		tool.InputSchema.Properties = map[string]Property{}
	}
	r.tools[tool.Name] = tool
	r.order = append(r.order, tool.Name)
}

// List возвращает каталог в порядке регистрации
func (r *Registry) List() []*Tool {
	out := make([]*Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name])
	}
	return out
}

// Dispatch выполняет инструмент по имени. Обязательные аргументы
// проверяются до вызова обработчика; все ошибки — в текстовый конверт.
func (r *Registry) Dispatch(ctx context.Context, ownerUserID, name string, args map[string]any) *Result {
	tool, ok := r.tools[name]
	if !ok {
		return errorResult(fmt.Sprintf("Unknown tool: %s", name))
	}
	if args == nil {
		args = map[string]any{}
	}

	if missing := missingRequired(tool.InputSchema, args); len(missing) > 0 {
		sort.Strings(missing)
		return errorResult(fmt.Sprintf("Validation error: missing required argument(s): %v", missing))
	}

	text, err := tool.handler(ctx, ownerUserID, args)
	if err != nil {
		return errorResult(fmt.Sprintf("Error: %v", err))
	}
	return textResult(text)
}

func missingRequired(schema InputSchema, args map[string]any) []string {
	var missing []string
	for _, key := range schema.Required {
		value, ok := args[key]
		if !ok || value == nil {
			missing = append(missing, key)
			continue
		}
		if s, isString := value.(string); isString && s == "" {
			missing = append(missing, key)
		}
	}
	return missing
}
