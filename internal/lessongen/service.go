package lessongen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kulugbekwork/lema/internal/llm"
	"github.com/kulugbekwork/lema/internal/logger"
	"github.com/kulugbekwork/lema/internal/store"
)

// Service generates lesson slides and quiz questions on first open.
type Service struct {
	provider llm.Provider
	lessons  store.LessonRepo
	cfg      Config
	log      *logger.Logger
}

// NewService creates a lesson content generation service.
func NewService(provider llm.Provider, lessons store.LessonRepo, cfg Config, log *logger.Logger) *Service {
	return &Service{
		provider: provider,
		lessons:  lessons,
		cfg:      cfg,
		log:      log,
	}
}

// Ensure generates and persists content for the lesson unless it
// already has content, then returns the stored slides and questions.
// Safe to call on every lesson open.
func (s *Service) Ensure(ctx context.Context, lessonID string) ([]store.Slide, []store.Question, error) {
	lc, err := s.lessons.Context(ctx, lessonID)
	if err != nil {
		return nil, nil, fmt.Errorf("load lesson: %w", err)
	}

	if !lc.Lesson.ContentGenerated {
		if err := s.generateAndPersist(ctx, lc); err != nil {
			return nil, nil, err
		}
	}

	slides, err := s.lessons.Slides(ctx, lessonID)
	if err != nil {
		return nil, nil, fmt.Errorf("load slides: %w", err)
	}
	questions, err := s.lessons.Questions(ctx, lessonID)
	if err != nil {
		return nil, nil, fmt.Errorf("load questions: %w", err)
	}
	return slides, questions, nil
}

func (s *Service) generateAndPersist(ctx context.Context, lc *store.LessonContext) error {
	content, err := s.generate(ctx, lc)
	if err != nil {
		return err
	}

	for _, sl := range content.Slides {
		row := &store.Slide{
			LessonID:    lc.Lesson.ID,
			SlideNumber: sl.SlideNumber,
			Title:       sl.Title,
			Content:     sl.Content,
		}
		if err := s.lessons.InsertSlide(ctx, row); err != nil {
			return fmt.Errorf("insert slide %d: %w", sl.SlideNumber, err)
		}
	}

	for i, q := range content.Questions {
		row := &store.Question{
			LessonID:      lc.Lesson.ID,
			SlideNumber:   q.SlideNumber,
			QuestionText:  q.QuestionText,
			OptionA:       q.OptionA,
			OptionB:       q.OptionB,
			OptionC:       q.OptionC,
			OptionD:       q.OptionD,
			CorrectAnswer: strings.ToLower(q.CorrectAnswer),
			Explanation:   q.Explanation,
		}
		if err := s.lessons.InsertQuestion(ctx, row); err != nil {
			return fmt.Errorf("insert question %d: %w", i, err)
		}
	}

	if err := s.lessons.MarkContentGenerated(ctx, lc.Lesson.ID); err != nil {
		return fmt.Errorf("mark content generated: %w", err)
	}

	s.log.Info("lesson content generated",
		"lesson_id", lc.Lesson.ID,
		"slides", len(content.Slides),
		"questions", len(content.Questions),
	)
	return nil
}

func (s *Service) generate(ctx context.Context, lc *store.LessonContext) (*Content, error) {
	ctx = llm.WithPurpose(ctx, "lesson-content")

	courseCtx := lc.Course.Title
	if lc.Course.Description != "" {
		courseCtx += ": " + lc.Course.Description
	}
	moduleCtx := lc.Module.Title
	if lc.Module.Description != "" {
		moduleCtx += ": " + lc.Module.Description
	}

	req := llm.Request{
		System: contentSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildContentUserMessage(lc.Lesson.Title, courseCtx, moduleCtx)},
		},
		Schema:      ContentSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("lesson content generation: %w", err)
	}

	var content Content
	if err := json.Unmarshal(resp.Content, &content); err != nil {
		return nil, fmt.Errorf("parse lesson content: %w", err)
	}
	if len(content.Slides) == 0 {
		return nil, fmt.Errorf("lesson content has no slides")
	}

	return &content, nil
}
