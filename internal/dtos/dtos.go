package dtos

import (
	"time"

	"github.com/google/uuid"

	"github.com/hirenest/jobboard-api/internal/models"
)

type ApplyRequest struct {
	UserID string `json:"user_id" binding:"required"`
	PostID string `json:"post_id" binding:"required"`
}

type WithdrawRequest struct {
	UserID string `json:"user_id" binding:"required"`
	PostID string `json:"post_id" binding:"required"`
}

type StatusRequest struct {
	Action string `json:"action" binding:"required"`
}

type ValidateRequest struct {
	UserID string `json:"user_id" binding:"required"`
	PostID string `json:"post_id" binding:"required"`
}

type SeenRequest struct {
	PostID string `json:"post_id" binding:"required"`
}

type MarkReadRequest struct {
	Email string `json:"email" binding:"required"`
}

type FreeJobRequest struct {
	JobTitle                string   `json:"jobTitle" binding:"required"`
	JobCategory             string   `json:"jobCategory" binding:"required"`
	JobDescription          string   `json:"jobDescription" binding:"required"`
	Email                   string   `json:"email" binding:"required"`
	Username                string   `json:"username" binding:"required"`
	Specialisms             []string `json:"specialisms" binding:"required"`
	JobType                 string   `json:"jobType" binding:"required"`
	KeyResponsibilities     string   `json:"keyResponsibilities" binding:"required"`
	SkillsAndExperience     string   `json:"skillsAndExperience" binding:"required"`
	OfferedSalary           string   `json:"offeredSalary" binding:"required"`
	CareerLevel             string   `json:"careerLevel" binding:"required"`
	ExperienceYears         string   `json:"experienceYears" binding:"required"`
	ExperienceMonths        string   `json:"experienceMonths" binding:"required"`
	Gender                  string   `json:"gender" binding:"required"`
	Industry                string   `json:"industry" binding:"required"`
	Qualification           string   `json:"qualification" binding:"required"`
	ApplicationDeadlineDate string   `json:"applicationDeadlineDate" binding:"required"`
	Country                 string   `json:"country" binding:"required"`
	City                    string   `json:"city" binding:"required"`
	CompleteAddress         string   `json:"completeAddress" binding:"required"`
	UserID                  string   `json:"user_id" binding:"required"`
	PlanID                  string   `json:"plan_id" binding:"required"`
	EmploymentStatus        string   `json:"employmentStatus" binding:"required"`
	Vacancies               string   `json:"vacancies" binding:"required"`
	CompanyName             string   `json:"companyName" binding:"required"`
}

type InterviewCreateRequest struct {
	PostID             string    `json:"postId" binding:"required"`
	UserID             string    `json:"userId" binding:"required"`
	EmployeeID         string    `json:"employeeId" binding:"required"`
	MeetDetails        string    `json:"meetDetails" binding:"required"`
	InterviewTimestamp time.Time `json:"interviewTimestamp" binding:"required"`
}

type InterviewUpdateRequest struct {
	MeetDetails        string    `json:"meetDetails" binding:"required"`
	InterviewTimestamp time.Time `json:"interviewTimestamp" binding:"required"`
}

// EnrichedApplication is an application joined with the applicant's and the
// posting's display fields. Missing collaborator data degrades to "N/A"
// instead of failing the read.
type EnrichedApplication struct {
	ID        uuid.UUID  `json:"id"`
	PostID    uuid.UUID  `json:"post_id"`
	UserID    uuid.UUID  `json:"user_id"`
	PlanID    *uuid.UUID `json:"plan_id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	JobTitle  string     `json:"jobTitle"`
	JobType   string     `json:"jobType"`
	Seen      bool       `json:"seen"`
	Timestamp time.Time  `json:"timestamp"`
	Status    string     `json:"status"`
}

type ApplicantInfo struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

type PosterInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type JobDetails struct {
	ID          uuid.UUID   `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Salary      string      `json:"salary"`
	CompanyName string      `json:"companyName"`
	City        string      `json:"city"`
	Country     string      `json:"country"`
	Poster      *PosterInfo `json:"poster"`
}

// ApplicationDetails is the consolidated view for the admin listing.
type ApplicationDetails struct {
	AppliedJobID uuid.UUID     `json:"appliedJobId"`
	Seen         bool          `json:"seen"`
	Timestamp    time.Time     `json:"timestamp"`
	Status       string        `json:"status"`
	Applicant    ApplicantInfo `json:"applicant"`
	Job          *JobDetails   `json:"job"`
}

// OwnedJob labels a posting with the store it came from.
type OwnedJob struct {
	ID          uuid.UUID `json:"id"`
	JobTitle    string    `json:"jobTitle"`
	JobType     string    `json:"jobType"`
	CompanyName string    `json:"companyName"`
	City        string    `json:"city"`
	Country     string    `json:"country"`
	Label       string    `json:"label"`
}

type InterviewView struct {
	Interview *models.Interview `json:"interview"`
	User      *ApplicantInfo    `json:"user,omitempty"`
	Employee  *ApplicantInfo    `json:"employee,omitempty"`
	Job       *JobDetails       `json:"job"`
}

type InterviewNotification struct {
	InterviewID *uuid.UUID `json:"interviewId"`
	JobID       *uuid.UUID `json:"jobId"`
	JobTitle    string     `json:"jobTitle"`
	Type        string     `json:"type"`
	Time        time.Time  `json:"time"`
}

type JobNotification struct {
	JobID    uuid.UUID `json:"jobId"`
	JobTitle string    `json:"jobTitle"`
	JobType  string    `json:"jobType"`
}

type CandidateNotifications struct {
	Jobs       []JobNotification       `json:"jobs"`
	Interviews []InterviewNotification `json:"interviews"`
}

type AppliedJobNotification struct {
	AppliedJobID  uuid.UUID `json:"appliedJobId"`
	AppliedUserID uuid.UUID `json:"appliedUserId"`
	UserName      string    `json:"userName"`
	UserEmail     string    `json:"userEmail"`
	JobTitle      string    `json:"jobTitle"`
	PostID        uuid.UUID `json:"postId"`
}

type EmployerNotifications struct {
	AppliedJobs []AppliedJobNotification `json:"appliedJobNotifications"`
	Interviews  []InterviewNotification  `json:"interviewNotifications"`
}
