package lesson

import (
	"time"

	"github.com/kulugbekwork/lema/internal/store"
)

// contentReadyMsg is sent when slides, questions and saved answers for
// the lesson have been loaded, generating them first if needed.
type contentReadyMsg struct {
	Slides    []store.Slide
	Questions []store.Question
	Answers   map[string]store.Answer
	Err       error
}

// answerSavedMsg confirms an answer write completed.
type answerSavedMsg struct {
	Err error
}

// completedMsg confirms the lesson was marked complete.
type completedMsg struct {
	Err error
}

// spinnerTickMsg animates the loading spinner during generation.
type spinnerTickMsg time.Time
