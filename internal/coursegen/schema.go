package coursegen

import "github.com/kulugbekwork/lema/internal/llm"

// OutlineSchema defines the JSON schema for course outline generation.
var OutlineSchema = &llm.Schema{
	Name:        "course-outline",
	Description: "A course outline with modules and lesson stubs, no slide content",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "Course title (3-10 words)",
			},
			"description": map[string]any{
				"type":        "string",
				"description": "One-paragraph course description",
			},
			"modules": map[string]any{
				"type":        "array",
				"description": "4-6 modules that progressively build knowledge",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"title": map[string]any{
							"type":        "string",
							"description": "Module title",
						},
						"description": map[string]any{
							"type":        "string",
							"description": "Short module description",
						},
						"lessons": map[string]any{
							"type":        "array",
							"description": "3-5 lessons per module",
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"title": map[string]any{
										"type":        "string",
										"description": "Lesson title",
									},
									"estimated_duration_minutes": map[string]any{
										"type":        "integer",
										"description": "Estimated lesson duration in minutes",
									},
								},
								"required":             []any{"title", "estimated_duration_minutes"},
								"additionalProperties": false,
							},
						},
					},
					"required":             []any{"title", "description", "lessons"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"title", "description", "modules"},
		"additionalProperties": false,
	},
}
