package store

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile is the owner of courses and answers. The TUI uses a single local
// profile; the serve path may hold one per billing account. The Premium flag
// is mutated only by the billing reconciler.
type Profile struct {
	ID                    string    `gorm:"primaryKey" json:"id"`
	Email                 string    `gorm:"uniqueIndex" json:"email"`
	FullName              string    `json:"full_name"`
	Premium               bool      `gorm:"not null;default:false" json:"is_premium"`
	CoursesCreated        int       `gorm:"not null;default:0" json:"courses_created"`
	BillingCustomerID     string    `json:"billing_customer_id"`
	BillingSubscriptionID string    `json:"billing_subscription_id"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

type Course struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	ProfileID   string    `gorm:"index;not null" json:"profile_id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	Goal        string    `json:"goal"`
	Status      string    `gorm:"not null;default:'active'" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Module struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	CourseID    string    `gorm:"index;not null" json:"course_id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	OrderIndex  int       `gorm:"not null" json:"order_index"`
	CreatedAt   time.Time `json:"created_at"`
}

type Lesson struct {
	ID               string    `gorm:"primaryKey" json:"id"`
	ModuleID         string    `gorm:"index;not null" json:"module_id"`
	Title            string    `gorm:"not null" json:"title"`
	ContentGenerated bool      `gorm:"not null;default:false" json:"content_generated"`
	OrderIndex       int       `gorm:"not null" json:"order_index"`
	DurationMinutes  int       `gorm:"not null;default:15" json:"estimated_duration_minutes"`
	CreatedAt        time.Time `json:"created_at"`
}

// Slide numbers are 1-based and monotonic within a lesson. Gaps are fine;
// ordering only requires monotonicity.
type Slide struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	LessonID    string    `gorm:"index;not null" json:"lesson_id"`
	SlideNumber int       `gorm:"not null" json:"slide_number"`
	Title       string    `gorm:"not null" json:"title"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
}

// Question.SlideNumber names the slide the question follows; its display
// position is SlideNumber + 0.5.
type Question struct {
	ID            string    `gorm:"primaryKey" json:"id"`
	LessonID      string    `gorm:"index;not null" json:"lesson_id"`
	SlideNumber   int       `gorm:"not null" json:"slide_number"`
	QuestionText  string    `gorm:"not null" json:"question_text"`
	OptionA       string    `json:"option_a"`
	OptionB       string    `json:"option_b"`
	OptionC       string    `json:"option_c"`
	OptionD       string    `json:"option_d"`
	CorrectAnswer string    `gorm:"not null" json:"correct_answer"`
	Explanation   string    `json:"explanation"`
	CreatedAt     time.Time `json:"created_at"`
}

// Answer identity is (profile, question); a resubmission overwrites the row
// instead of creating a second one. IsCorrect is recomputed at submission
// time, never taken from the caller.
type Answer struct {
	ProfileID      string    `gorm:"primaryKey" json:"profile_id"`
	QuestionID     string    `gorm:"primaryKey" json:"question_id"`
	SelectedAnswer string    `gorm:"not null" json:"selected_answer"`
	IsCorrect      bool      `gorm:"not null" json:"is_correct"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Progress records lesson completion per profile, upserted on
// (profile, lesson).
type Progress struct {
	ProfileID      string     `gorm:"primaryKey" json:"profile_id"`
	LessonID       string     `gorm:"primaryKey" json:"lesson_id"`
	Completed      bool       `gorm:"not null;default:false" json:"completed"`
	CompletedAt    *time.Time `json:"completed_at"`
	LastAccessedAt time.Time  `json:"last_accessed_at"`
}

// AICall is an audit row written for every LLM request.
type AICall struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Provider     string    `json:"provider"`
	Model        string    `json:"model"`
	Purpose      string    `json:"purpose"`
	InputTokens  int       `json:"input_tokens"`
	OutputTokens int       `json:"output_tokens"`
	LatencyMs    int64     `json:"latency_ms"`
	Success      bool      `json:"success"`
	ErrorMessage string    `json:"error_message"`
	CreatedAt    time.Time `json:"created_at"`
}

func (p *Profile) BeforeCreate(*gorm.DB) error  { ensureID(&p.ID); return nil }
func (c *Course) BeforeCreate(*gorm.DB) error   { ensureID(&c.ID); return nil }
func (m *Module) BeforeCreate(*gorm.DB) error   { ensureID(&m.ID); return nil }
func (l *Lesson) BeforeCreate(*gorm.DB) error   { ensureID(&l.ID); return nil }
func (s *Slide) BeforeCreate(*gorm.DB) error    { ensureID(&s.ID); return nil }
func (q *Question) BeforeCreate(*gorm.DB) error { ensureID(&q.ID); return nil }

// ensureID assigns a UUID when the caller did not provide one. String keys
// keep the schema portable between SQLite and Postgres.
func ensureID(id *string) {
	if *id == "" {
		*id = uuid.New().String()
	}
}
