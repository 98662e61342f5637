package lessongen

// Content is the LLM-generated body of a lesson: teaching slides plus
// quiz questions anchored to slides.
type Content struct {
	Slides    []SlideContent    `json:"slides"`
	Questions []QuestionContent `json:"questions"`
}

// SlideContent is one teaching slide. Content is markdown.
type SlideContent struct {
	SlideNumber int    `json:"slide_number"`
	Title       string `json:"title"`
	Content     string `json:"content"`
}

// QuestionContent is one multiple-choice quiz question. SlideNumber is
// the slide the question follows in the lesson flow.
type QuestionContent struct {
	SlideNumber   int    `json:"slide_number"`
	QuestionText  string `json:"question_text"`
	OptionA       string `json:"option_a"`
	OptionB       string `json:"option_b"`
	OptionC       string `json:"option_c"`
	OptionD       string `json:"option_d"`
	CorrectAnswer string `json:"correct_answer"`
	Explanation   string `json:"explanation"`
}
