// internal/infrastructure/portal/types.go
package portal

import "encoding/json"

// Profile represents the user attributes the portal returns on login
type Profile struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Gender    string `json:"gender"`
	CountryID int64  `json:"country_id"`
}

// loginResponse is the raw login wire shape. Depending on the portal version
// the profile arrives either nested under "user" or flattened onto the top
// level next to the token, so both forms are captured here.
type loginResponse struct {
	Message string   `json:"message"`
	Token   string   `json:"token"`
	User    *Profile `json:"user"`

	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Gender    string `json:"gender"`
	CountryID int64  `json:"country_id"`
}

// LoginResult is the validated outcome of a successful login
type LoginResult struct {
	Token   string
	Profile *Profile
}

// RegisterRequest represents the enrollment request body
type RegisterRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Gender    string `json:"gender"`
	CountryID int64  `json:"country_id"`
}

// statusResponse is the portal's generic {status, message, data} envelope.
// "status" is a number in some responses and a string ("success") in others.
type statusResponse struct {
	Status  json.RawMessage `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Course represents a catalog entry
type Course struct {
	CourseID       int64  `json:"course_id"`
	FullCourseName string `json:"full_course_name"`
	GradeID        int64  `json:"grade_id"`
	GradeName      string `json:"grade_name"`
	SubjectID      int64  `json:"subject_id"`
	SubjectName    string `json:"subject_name"`
	Image          string `json:"image,omitempty"`
}

// Lecture represents a single lecture inside a lesson
type Lecture struct {
	LectureID int64  `json:"lecture_id"`
	Title     string `json:"title"`
	OrderID   int64  `json:"order_id"`
	VideoURL  string `json:"video_url,omitempty"`
}

// Lesson represents a unit of course content
type Lesson struct {
	LessonID int64     `json:"lesson_id"`
	Unit     string    `json:"unit"`
	Title    string    `json:"title"`
	Lectures []Lecture `json:"lectures"`
}

// CourseContent represents the lessons of one course
type CourseContent struct {
	Lessons []Lesson `json:"lessons"`
}

// QuizOption represents one answer choice. IsCorrectAnswer is the literal
// "Yes"/"No" the portal sends; grading compares it case-insensitively.
type QuizOption struct {
	OptionID        int64  `json:"option_id"`
	OptionName      string `json:"option_name"`
	Images          string `json:"images,omitempty"`
	IsCorrectAnswer string `json:"is_correct_answer"`
}

// QuizQuestion represents a single quiz question with its choices
type QuizQuestion struct {
	QuestionID   int64        `json:"question_id"`
	QuestionName string       `json:"question_name"`
	Images       []string     `json:"image,omitempty"`
	Options      []QuizOption `json:"options"`
}

// Quiz represents one exam attached to a lesson
type Quiz struct {
	ExamID    int64          `json:"exam_id"`
	ExamName  string         `json:"exam_name"`
	Questions []QuizQuestion `json:"questions"`
}

// QuizAnswer is one graded answer in a quiz submission
type QuizAnswer struct {
	ExamID     int64 `json:"exam_id"`
	QuestionID int64 `json:"question_id"`
	OptionID   int64 `json:"option_id"`
	IsPassed   int   `json:"isPassed"`
}

// QuizSubmission is the quiz submit request body
type QuizSubmission struct {
	LessonID  int64        `json:"lesson_id"`
	Questions []QuizAnswer `json:"questions"`
	UUID      string       `json:"uuid"`
}

// quizEnvelope is the quiz endpoints' response wrapper; success is the
// literal string "Success"
type quizEnvelope struct {
	Success string          `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Blog represents a published blog post
type Blog struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Image       string `json:"image,omitempty"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// Country represents a country option for enrollment
type Country struct {
	ID          int64  `json:"id"`
	CountryName string `json:"country_name"`
}

// OrderLine represents one purchased grade+subject combination
type OrderLine struct {
	GradeID     int64  `json:"grade_id"`
	GradeName   string `json:"grade_name"`
	SubjectID   int64  `json:"subject_id"`
	SubjectName string `json:"subject_name"`
	UnitPrice   int64  `json:"unit_price"`
}

// OrderPayload is the checkout request body sent to the portal
type OrderPayload struct {
	CountryID     int64       `json:"country_id"`
	Name          string      `json:"name"`
	FirstName     string      `json:"first_name"`
	LastName      string      `json:"last_name"`
	Email         string      `json:"email"`
	Gender        string      `json:"gender"`
	Phone         string      `json:"phone"`
	PaymentMethod string      `json:"payment_method"`
	PhoneNumber   string      `json:"phone_number"`
	TotalPrice    int64       `json:"total_price"`
	Amount        int64       `json:"amount"`
	ProjectName   string      `json:"project_name"`
	OrderItems    []OrderLine `json:"order_items"`
}
