package coursegen

import (
	"fmt"
	"strings"
)

const outlineSystemPrompt = `You are an expert curriculum designer. You create structured, progressive learning courses for self-directed adult learners.`

func buildOutlineUserMessage(goal string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Learning goal: %q\n", goal))

	b.WriteString(`
Instructions:
Create a course structure for this goal:
1. A clear title and a one-paragraph description.
2. 4-6 modules that progressively build knowledge, each with a short description.
3. Each module has 3-5 lessons. Provide ONLY lesson titles and estimated
   duration in minutes. Do not write any lesson content; content is
   generated later when the learner opens a lesson.
4. Order modules and lessons from fundamentals to advanced topics.`)

	return b.String()
}
