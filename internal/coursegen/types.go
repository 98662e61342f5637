package coursegen

// Outline is the LLM-generated course structure. Only titles and
// durations at this stage; slide content is generated lazily when a
// lesson is first opened.
type Outline struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Modules     []ModuleOutline `json:"modules"`
}

// ModuleOutline is one module in a course outline.
type ModuleOutline struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Lessons     []LessonOutline `json:"lessons"`
}

// LessonOutline is one lesson stub inside a module.
type LessonOutline struct {
	Title                    string `json:"title"`
	EstimatedDurationMinutes int    `json:"estimated_duration_minutes"`
}
