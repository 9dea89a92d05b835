package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Application status values. New applications start as pending; the
// employer's shortlist action moves them to one of the other two.
const (
	StatusPending       = "pending"
	StatusShortlisted   = "shortlisted"
	StatusUnshortlisted = "unshortlisted"
)

// JobClass says which store a posting was resolved from. Plan credits are
// debited against the matching counter, so this must come from the store
// that answered, never from a field on the posting itself.
type JobClass string

const (
	JobClassPaid JobClass = "paid"
	JobClassFree JobClass = "free"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name        string `gorm:"not null" json:"name"`
	Email       string `gorm:"uniqueIndex;not null" json:"email"`
	Role        string `gorm:"index" json:"role"`
	DeviceToken string `json:"device_token,omitempty"`
}

// Plan is a subscription record owned by billing. This service only ever
// touches the three counters; everything else is read-only here.
type Plan struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	StartDate time.Time `gorm:"not null" json:"start_date"`
	EndDate   time.Time `gorm:"not null" json:"end_date"`

	// Remaining application credits. Never negative: every debit goes
	// through a conditional update that checks the counter first.
	ApplyPaidJobs int `gorm:"not null;default:0" json:"apply_paid_jobs"`
	ApplyFreeJobs int `gorm:"not null;default:0" json:"apply_free_jobs"`

	// Remaining free job postings the plan owner may publish.
	FreeJobs int `gorm:"not null;default:0" json:"free_jobs"`
}

// Active reports whether now falls inside the plan's date range.
func (p *Plan) Active(now time.Time) bool {
	return !p.StartDate.After(now) && !p.EndDate.Before(now)
}

// Application links a candidate to a posting and to the plan credit the
// apply consumed. The composite unique index is the real guard against
// double-applies; the pre-check in the service is only there for a
// friendlier error message.
type Application struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_applications_user_post" json:"user_id"`
	PostID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_applications_user_post" json:"post_id"`
	PlanID    *uuid.UUID `gorm:"type:uuid" json:"plan_id"`
	Seen      bool       `gorm:"not null;default:false" json:"seen"`
	Status    string     `gorm:"not null;default:'pending'" json:"status"`
	Timestamp time.Time  `gorm:"not null" json:"timestamp"`
}

func (a *Application) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Timestamp.IsZero() {
		a.Timestamp = time.Now()
	}
	if a.Status == "" {
		a.Status = StatusPending
	}
	return nil
}

// Job is the paid store. FreeJob is the free store. They stay two disjoint
// tables on purpose: credit classification depends on which one answers a
// lookup, and lookups always try Job first.
type Job struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`

	JobTitle       string `gorm:"not null" json:"jobTitle"`
	JobCategory    string `json:"jobCategory"`
	JobType        string `json:"jobType"`
	JobDescription string `gorm:"type:text" json:"jobDescription"`
	OfferedSalary  string `json:"offeredSalary"`
	CompanyName    string `json:"companyName"`
	City           string `json:"city"`
	Country        string `json:"country"`
}

type FreeJob struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	PlanID uuid.UUID `gorm:"type:uuid;not null" json:"plan_id"`

	JobTitle                string         `gorm:"not null" json:"jobTitle"`
	JobCategory             string         `json:"jobCategory"`
	JobDescription          string         `gorm:"type:text" json:"jobDescription"`
	Email                   string         `json:"email"`
	Username                string         `json:"username"`
	Specialisms             pq.StringArray `gorm:"type:text[]" json:"specialisms"`
	JobType                 string         `json:"jobType"`
	KeyResponsibilities     string         `gorm:"type:text" json:"keyResponsibilities"`
	SkillsAndExperience     string         `gorm:"type:text" json:"skillsAndExperience"`
	OfferedSalary           string         `json:"offeredSalary"`
	CareerLevel             string         `json:"careerLevel"`
	ExperienceYears         string         `json:"experienceYears"`
	ExperienceMonths        string         `json:"experienceMonths"`
	Gender                  string         `json:"gender"`
	Industry                string         `json:"industry"`
	Qualification           string         `json:"qualification"`
	ApplicationDeadlineDate string         `json:"applicationDeadlineDate"`
	Country                 string         `json:"country"`
	City                    string         `json:"city"`
	CompleteAddress         string         `json:"completeAddress"`
	EmploymentStatus        string         `json:"employmentStatus"`
	Vacancies               string         `json:"vacancies"`
	CompanyName             string         `json:"companyName"`
}

func (j *FreeJob) BeforeCreate(tx *gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return nil
}

// Posting is the store-agnostic view of a job a resolve returns. OwnerID is
// the employer who posted it (push notifications on apply go there).
type Posting struct {
	ID             uuid.UUID `json:"id"`
	OwnerID        uuid.UUID `json:"user_id"`
	JobTitle       string    `json:"jobTitle"`
	JobType        string    `json:"jobType"`
	JobDescription string    `json:"jobDescription"`
	OfferedSalary  string    `json:"offeredSalary"`
	CompanyName    string    `json:"companyName"`
	City           string    `json:"city"`
	Country        string    `json:"country"`
}

// Notification log types.
const (
	NotificationTypeJob                = "job"
	NotificationTypeInterview          = "interview"
	NotificationTypeInterviewUpdated   = "interviewUpdated"
	NotificationTypeInterviewCancelled = "interviewCancelled"
)

type Interview struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	PostID             uuid.UUID `gorm:"type:uuid;not null;index" json:"post_id"`
	UserID             uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	EmployeeID         uuid.UUID `gorm:"type:uuid;not null;index" json:"employee_id"`
	MeetDetails        string    `gorm:"not null" json:"meet_details"`
	InterviewTimestamp time.Time `gorm:"not null" json:"interview_timestamp"`
}

func (i *Interview) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

type NotificationLog struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Timestamp time.Time `gorm:"not null" json:"timestamp"`

	UserIDs     pq.StringArray `gorm:"type:text[]" json:"user_ids"`
	JobID       *uuid.UUID     `gorm:"type:uuid;index" json:"job_id"`
	InterviewID *uuid.UUID     `gorm:"type:uuid;index" json:"interview_id"`
	Type        string         `gorm:"column:notification_type;not null" json:"notification_type"`
	Emails      pq.StringArray `gorm:"type:text[]" json:"emails"`

	// Per-recipient read flags, one row each.
	EmailStatus []NotificationEmailStatus `gorm:"foreignKey:NotificationLogID" json:"email_status"`
}

func (n *NotificationLog) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	if n.Timestamp.IsZero() {
		n.Timestamp = time.Now()
	}
	return nil
}

type NotificationEmailStatus struct {
	ID                uint      `gorm:"primaryKey" json:"-"`
	NotificationLogID uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Email             string    `gorm:"not null" json:"email"`
	Read              bool      `gorm:"not null;default:false" json:"read"`
}
