package lessongen

import (
	"fmt"
	"strings"
)

const contentSystemPrompt = `You are an expert educational content designer. You write focused, progressive lesson slides with quiz questions that check understanding.`

func buildContentUserMessage(lessonTitle, courseContext, moduleContext string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Lesson: %q\n", lessonTitle))
	b.WriteString(fmt.Sprintf("Course context: %s\n", courseContext))
	b.WriteString(fmt.Sprintf("Module context: %s\n", moduleContext))

	b.WriteString(`
Instructions:
Create the full lesson content:
1. 5-8 slides that teach the topic progressively. Keep each slide
   focused, 2-4 paragraphs at most. Write slide content in markdown
   using headings, bold, italics and lists where helpful.
2. After every 2-3 slides, add a quiz question testing what was just
   taught. Set each question's slide_number to the slide it follows.
3. Every question has exactly 4 options (a, b, c, d), one correct
   answer, and a clear explanation of why it is correct.`)

	return b.String()
}
