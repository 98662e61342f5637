package lessongen

import "github.com/kulugbekwork/lema/internal/llm"

// ContentSchema defines the JSON schema for lesson content generation.
var ContentSchema = &llm.Schema{
	Name:        "lesson-content",
	Description: "Lesson content as teaching slides with interleaved quiz questions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"slides": map[string]any{
				"type":        "array",
				"description": "5-8 slides that teach the topic progressively",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"slide_number": map[string]any{
							"type":        "integer",
							"description": "1-based slide position",
							"minimum":     1,
						},
						"title": map[string]any{
							"type":        "string",
							"description": "Slide title",
						},
						"content": map[string]any{
							"type":        "string",
							"description": "Slide body in markdown, 2-4 paragraphs max",
						},
					},
					"required":             []any{"slide_number", "title", "content"},
					"additionalProperties": false,
				},
			},
			"questions": map[string]any{
				"type":        "array",
				"description": "Quiz questions, one after every 2-3 slides",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"slide_number": map[string]any{
							"type":        "integer",
							"description": "Slide this question follows",
							"minimum":     1,
						},
						"question_text": map[string]any{
							"type":        "string",
							"description": "Question text",
						},
						"option_a": map[string]any{"type": "string"},
						"option_b": map[string]any{"type": "string"},
						"option_c": map[string]any{"type": "string"},
						"option_d": map[string]any{"type": "string"},
						"correct_answer": map[string]any{
							"type": "string",
							"enum": []any{"a", "b", "c", "d"},
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "Why the correct answer is correct",
						},
					},
					"required": []any{
						"slide_number", "question_text",
						"option_a", "option_b", "option_c", "option_d",
						"correct_answer", "explanation",
					},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"slides", "questions"},
		"additionalProperties": false,
	},
}
