package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hirenest/jobboard-api/internal/dtos"
	"github.com/hirenest/jobboard-api/internal/models"
	"github.com/hirenest/jobboard-api/internal/notify"
)

// InterviewService schedules interviews between a candidate and an
// employer. Every mutation emails both parties, pushes to the candidate
// and writes a notification-log row; all of that is best-effort.
type InterviewService struct {
	interviews InterviewStore
	jobs       JobStore
	users      UserStore
	logs       NotificationStore
	notifier   Notifier
	log        *zap.Logger
}

func NewInterviewService(interviews InterviewStore, jobs JobStore, users UserStore, logs NotificationStore, notifier Notifier, log *zap.Logger) *InterviewService {
	return &InterviewService{
		interviews: interviews,
		jobs:       jobs,
		users:      users,
		logs:       logs,
		notifier:   notifier,
		log:        log,
	}
}

func (s *InterviewService) Create(ctx context.Context, req *dtos.InterviewCreateRequest) (*models.Interview, error) {
	postID, err := parseID(req.PostID, "postId")
	if err != nil {
		return nil, err
	}
	userID, err := parseID(req.UserID, "userId")
	if err != nil {
		return nil, err
	}
	employeeID, err := parseID(req.EmployeeID, "employeeId")
	if err != nil {
		return nil, err
	}

	posting, _, err := s.jobs.Resolve(ctx, postID)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	employee, err := s.users.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	interview := &models.Interview{
		PostID:             postID,
		UserID:             userID,
		EmployeeID:         employeeID,
		MeetDetails:        req.MeetDetails,
		InterviewTimestamp: req.InterviewTimestamp,
	}
	if err := s.interviews.Create(ctx, interview); err != nil {
		return nil, err
	}

	s.recordLog(ctx, interview, models.NotificationTypeInterview, user.Email, employee.Email)

	formatted := interview.InterviewTimestamp.Format("Jan 2, 2006 3:04 PM")
	body := "Interview Scheduled\nJob: " + posting.JobTitle +
		"\nMeet: " + interview.MeetDetails +
		"\nTime: " + formatted
	s.notifier.Email(notify.Email{To: user.Email, Subject: "Interview Scheduled", Body: body})
	s.notifier.Email(notify.Email{To: employee.Email, Subject: "Interview Scheduled", Body: body})

	if user.DeviceToken != "" {
		s.notifier.Push(notify.Push{
			Token: user.DeviceToken,
			Title: "Interview Scheduled",
			Body:  "For " + posting.JobTitle + " at " + formatted,
			Data: map[string]string{
				"type":               "interview",
				"jobTitle":           posting.JobTitle,
				"meetDetails":        interview.MeetDetails,
				"interviewTimestamp": interview.InterviewTimestamp.Format("2006-01-02T15:04:05Z07:00"),
				"interviewId":        interview.ID.String(),
				"postId":             postID.String(),
			},
		})
	}

	return interview, nil
}

func (s *InterviewService) Update(ctx context.Context, rawID string, req *dtos.InterviewUpdateRequest) (*models.Interview, error) {
	id, err := parseID(rawID, "interview id")
	if err != nil {
		return nil, err
	}
	interview, err := s.interviews.Update(ctx, id, req.MeetDetails, req.InterviewTimestamp)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, interview.UserID)
	if err != nil {
		return nil, err
	}
	employee, err := s.users.GetByID(ctx, interview.EmployeeID)
	if err != nil {
		return nil, err
	}

	s.recordLog(ctx, interview, models.NotificationTypeInterviewUpdated, user.Email, employee.Email)

	body := "Interview Updated\nNew Meet: " + interview.MeetDetails +
		"\nNew Time: " + interview.InterviewTimestamp.Format("Jan 2, 2006 3:04 PM")
	s.notifier.Email(notify.Email{To: user.Email, Subject: "Interview Updated", Body: body})
	s.notifier.Email(notify.Email{To: employee.Email, Subject: "Interview Updated", Body: body})

	return interview, nil
}

func (s *InterviewService) Delete(ctx context.Context, rawID string) error {
	id, err := parseID(rawID, "interview id")
	if err != nil {
		return err
	}
	interview, err := s.interviews.Delete(ctx, id)
	if err != nil {
		return err
	}

	user, uerr := s.users.GetByID(ctx, interview.UserID)
	employee, eerr := s.users.GetByID(ctx, interview.EmployeeID)
	if uerr != nil || eerr != nil {
		// The interview is gone; party lookups only gate the courtesy mail.
		s.log.Warn("participant lookup failed after interview delete")
		return nil
	}

	s.recordLog(ctx, interview, models.NotificationTypeInterviewCancelled, user.Email, employee.Email)

	body := "Interview Cancelled\nPrevious Time: " +
		interview.InterviewTimestamp.Format("Jan 2, 2006 3:04 PM")
	s.notifier.Email(notify.Email{To: user.Email, Subject: "Interview Cancelled", Body: body})
	s.notifier.Email(notify.Email{To: employee.Email, Subject: "Interview Cancelled", Body: body})

	return nil
}

func (s *InterviewService) recordLog(ctx context.Context, interview *models.Interview, notifType string, emails ...string) {
	jobID := interview.PostID
	interviewID := interview.ID
	entry := &models.NotificationLog{
		UserIDs:     []string{interview.UserID.String(), interview.EmployeeID.String()},
		JobID:       &jobID,
		InterviewID: &interviewID,
		Type:        notifType,
		Emails:      emails,
	}
	if err := s.logs.Create(ctx, entry); err != nil {
		s.log.Error("failed to write notification log", zap.Error(err))
	}
}

func (s *InterviewService) GetByID(ctx context.Context, rawID string) (*dtos.InterviewView, error) {
	id, err := parseID(rawID, "interview id")
	if err != nil {
		return nil, err
	}
	interview, err := s.interviews.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	view := &dtos.InterviewView{Interview: interview}
	if user, err := s.users.GetByID(ctx, interview.UserID); err == nil {
		view.User = &dtos.ApplicantInfo{ID: user.ID, Name: user.Name, Email: user.Email}
	}
	view.Job = s.jobView(ctx, interview.PostID)
	return view, nil
}

func (s *InterviewService) ListByUser(ctx context.Context, rawUserID string) ([]dtos.InterviewView, error) {
	userID, err := parseID(rawUserID, "userId")
	if err != nil {
		return nil, err
	}
	interviews, err := s.interviews.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, interviews, true), nil
}

func (s *InterviewService) ListByEmployee(ctx context.Context, rawEmployeeID string) ([]dtos.InterviewView, error) {
	employeeID, err := parseID(rawEmployeeID, "employeeId")
	if err != nil {
		return nil, err
	}
	interviews, err := s.interviews.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, interviews, false), nil
}

// views joins interviews with the counterparty and the posting. For a
// candidate's listing the counterparty is the employer and vice versa.
func (s *InterviewService) views(ctx context.Context, interviews []models.Interview, forCandidate bool) []dtos.InterviewView {
	out := make([]dtos.InterviewView, 0, len(interviews))
	for i := range interviews {
		interview := interviews[i]
		view := dtos.InterviewView{Interview: &interview}
		if forCandidate {
			if employee, err := s.users.GetByID(ctx, interview.EmployeeID); err == nil {
				view.Employee = &dtos.ApplicantInfo{ID: employee.ID, Name: employee.Name, Email: employee.Email}
			}
		} else {
			if user, err := s.users.GetByID(ctx, interview.UserID); err == nil {
				view.User = &dtos.ApplicantInfo{ID: user.ID, Name: user.Name, Email: user.Email}
			}
		}
		view.Job = s.jobView(ctx, interview.PostID)
		out = append(out, view)
	}
	return out
}

func (s *InterviewService) jobView(ctx context.Context, postID uuid.UUID) *dtos.JobDetails {
	posting, _, err := s.jobs.Resolve(ctx, postID)
	if err != nil {
		return nil
	}
	return &dtos.JobDetails{
		ID:          posting.ID,
		Title:       posting.JobTitle,
		Description: posting.JobDescription,
		Salary:      posting.OfferedSalary,
		CompanyName: posting.CompanyName,
		City:        posting.City,
		Country:     posting.Country,
	}
}
