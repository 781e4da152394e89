// Package tools implements the callable tools Ellie exposes to the model.
package tools

import (
	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"
)

// ToolSpec describes a single tool exposed to the model.
type ToolSpec struct {
	Name        string
	Description string
	Parameters  map[string]ParamSpec
}

// ParamSpec describes a single tool parameter.
type ParamSpec struct {
	Type        string // "string", "number", "boolean", "integer", "array", "object"
	Description string
	Required    bool
	Enum        []string
}

// toolSpecToToolInfo converts a ToolSpec to an Eino schema.ToolInfo.
func toolSpecToToolInfo(spec ToolSpec) *schema.ToolInfo {
	info := &schema.ToolInfo{
		Name: spec.Name,
		Desc: spec.Description,
	}

	if len(spec.Parameters) > 0 {
		params := make(map[string]*schema.ParameterInfo, len(spec.Parameters))
		for name, p := range spec.Parameters {
			params[name] = &schema.ParameterInfo{
				Type:     paramTypeToDataType(p.Type),
				Desc:     p.Description,
				Required: p.Required,
				Enum:     p.Enum,
			}
		}
		info.ParamsOneOf = schema.NewParamsOneOfByParams(params)
	}

	return info
}

// paramTypeToDataType maps string type names to Eino DataType constants.
func paramTypeToDataType(t string) schema.DataType {
	switch t {
	case "string":
		return schema.String
	case "number":
		return schema.Number
	case "integer":
		return schema.Integer
	case "boolean":
		return schema.Boolean
	case "array":
		return schema.Array
	case "object":
		return schema.Object
	default:
		return schema.String
	}
}

// Default returns the tool set offered on every turn: calculator and web_search.
func Default(searcher Searcher) []tool.InvokableTool {
	return []tool.InvokableTool{
		NewCalculatorTool(),
		NewWebSearchTool(searcher),
	}
}
