package coursegen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/kulugbekwork/lema/internal/llm"
	"github.com/kulugbekwork/lema/internal/logger"
	"github.com/kulugbekwork/lema/internal/store"
)

// ErrCourseLimit is returned when a free profile tries to create a
// second course.
var ErrCourseLimit = errors.New("free course limit reached, upgrade to premium for unlimited courses")

// ErrEmptyGoal is returned when the learning goal is blank.
var ErrEmptyGoal = errors.New("learning goal must not be empty")

// Service generates course outlines and persists them.
type Service struct {
	provider llm.Provider
	profiles store.ProfileRepo
	courses  store.CourseRepo
	cfg      Config
	log      *logger.Logger
}

// NewService creates a course generation service.
func NewService(provider llm.Provider, profiles store.ProfileRepo, courses store.CourseRepo, cfg Config, log *logger.Logger) *Service {
	return &Service{
		provider: provider,
		profiles: profiles,
		courses:  courses,
		cfg:      cfg,
		log:      log,
	}
}

// Create generates a course outline for the goal and persists the full
// course, module and lesson tree. Free profiles are limited to
// FreeCourseLimit courses; premium profiles are unlimited.
//
// Persistence is not transactional. A failure mid-tree leaves the rows
// written so far and is surfaced to the caller rather than rolled back.
func (s *Service) Create(ctx context.Context, profileID, goal string) (*store.Course, error) {
	goal = strings.TrimSpace(goal)
	if goal == "" {
		return nil, ErrEmptyGoal
	}

	profile, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	if !profile.Premium {
		n, err := s.courses.CountByProfile(ctx, profileID)
		if err != nil {
			return nil, fmt.Errorf("count courses: %w", err)
		}
		if n >= FreeCourseLimit {
			return nil, ErrCourseLimit
		}
	}

	outline, err := s.generate(ctx, goal)
	if err != nil {
		return nil, err
	}

	course, err := s.persist(ctx, profileID, goal, outline)
	if err != nil {
		return nil, err
	}

	if err := s.profiles.IncrementCoursesCreated(ctx, profileID); err != nil {
		s.log.Warn("increment courses created", "profile_id", profileID, "error", err)
	}

	s.log.Info("course created",
		"course_id", course.ID,
		"modules", len(outline.Modules),
	)
	return course, nil
}

func (s *Service) generate(ctx context.Context, goal string) (*Outline, error) {
	ctx = llm.WithPurpose(ctx, "course-outline")

	req := llm.Request{
		System: outlineSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildOutlineUserMessage(goal)},
		},
		Schema:      OutlineSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("course outline generation: %w", err)
	}

	var outline Outline
	if err := json.Unmarshal(resp.Content, &outline); err != nil {
		return nil, fmt.Errorf("parse course outline: %w", err)
	}
	if len(outline.Modules) == 0 {
		return nil, fmt.Errorf("course outline has no modules")
	}

	return &outline, nil
}

func (s *Service) persist(ctx context.Context, profileID, goal string, outline *Outline) (*store.Course, error) {
	course := &store.Course{
		ProfileID:   profileID,
		Title:       outline.Title,
		Description: outline.Description,
		Goal:        goal,
		Status:      "ready",
	}
	if err := s.courses.Create(ctx, course); err != nil {
		return nil, fmt.Errorf("create course: %w", err)
	}

	for mi, mo := range outline.Modules {
		mod := &store.Module{
			CourseID:    course.ID,
			Title:       mo.Title,
			Description: mo.Description,
			OrderIndex:  mi,
		}
		if err := s.courses.CreateModule(ctx, mod); err != nil {
			return nil, fmt.Errorf("create module %d: %w", mi, err)
		}

		for li, lo := range mo.Lessons {
			lesson := &store.Lesson{
				ModuleID:        mod.ID,
				Title:           lo.Title,
				OrderIndex:      li,
				DurationMinutes: lo.EstimatedDurationMinutes,
			}
			if err := s.courses.CreateLesson(ctx, lesson); err != nil {
				return nil, fmt.Errorf("create lesson %d.%d: %w", mi, li, err)
			}
		}
	}

	return course, nil
}
