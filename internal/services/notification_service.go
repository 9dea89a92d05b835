package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/hirenest/jobboard-api/internal/dtos"
	"github.com/hirenest/jobboard-api/internal/models"
)

var interviewLogTypes = []string{
	models.NotificationTypeInterview,
	models.NotificationTypeInterviewUpdated,
	models.NotificationTypeInterviewCancelled,
}

// NotificationService reads and maintains the notification log: the
// unread/read bookkeeping behind the candidate and employer feeds.
type NotificationService struct {
	logs  NotificationStore
	users UserStore
	jobs  JobStore
	apps  ApplicationStore
	log   *zap.Logger
}

func NewNotificationService(logs NotificationStore, users UserStore, jobs JobStore, apps ApplicationStore, log *zap.Logger) *NotificationService {
	return &NotificationService{
		logs:  logs,
		users: users,
		jobs:  jobs,
		apps:  apps,
		log:   log,
	}
}

func (s *NotificationService) ListAll(ctx context.Context) ([]models.NotificationLog, error) {
	return s.logs.ListAll(ctx)
}

func (s *NotificationService) GetByID(ctx context.Context, rawID string) (*models.NotificationLog, error) {
	id, err := parseID(rawID, "notification ID format")
	if err != nil {
		return nil, err
	}
	return s.logs.GetByID(ctx, id)
}

// CandidateFeed aggregates the candidate's unread notifications: new job
// alerts plus interview events.
func (s *NotificationService) CandidateFeed(ctx context.Context, rawUserID string) (*dtos.CandidateNotifications, error) {
	userID, err := parseID(rawUserID, "candidate ID format")
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	logs, err := s.logs.ListUnreadByEmail(ctx, user.Email)
	if err != nil {
		return nil, err
	}

	feed := &dtos.CandidateNotifications{
		Jobs:       []dtos.JobNotification{},
		Interviews: []dtos.InterviewNotification{},
	}
	for _, entry := range logs {
		switch entry.Type {
		case models.NotificationTypeJob:
			if entry.JobID == nil {
				continue
			}
			jn := dtos.JobNotification{JobID: *entry.JobID, JobTitle: "N/A"}
			if posting, _, err := s.jobs.Resolve(ctx, *entry.JobID); err == nil {
				jn.JobTitle = posting.JobTitle
				jn.JobType = posting.JobType
			}
			feed.Jobs = append(feed.Jobs, jn)
		case models.NotificationTypeInterview,
			models.NotificationTypeInterviewUpdated,
			models.NotificationTypeInterviewCancelled:
			feed.Interviews = append(feed.Interviews, s.interviewNotification(ctx, entry))
		}
	}
	return feed, nil
}

// EmployerFeed aggregates the employer's unseen applications and unread
// interview events across everything they posted.
func (s *NotificationService) EmployerFeed(ctx context.Context, rawUserID string) (*dtos.EmployerNotifications, error) {
	userID, err := parseID(rawUserID, "employer ID format")
	if err != nil {
		return nil, err
	}

	postIDs, err := s.jobs.AllIDsByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	feed := &dtos.EmployerNotifications{
		AppliedJobs: []dtos.AppliedJobNotification{},
		Interviews:  []dtos.InterviewNotification{},
	}

	if len(postIDs) > 0 {
		apps, err := s.apps.ListUnseenByPosts(ctx, postIDs)
		if err != nil {
			return nil, err
		}
		for _, app := range apps {
			user, err := s.users.GetByID(ctx, app.UserID)
			if err != nil {
				continue
			}
			posting, _, err := s.jobs.Resolve(ctx, app.PostID)
			if err != nil {
				continue
			}
			feed.AppliedJobs = append(feed.AppliedJobs, dtos.AppliedJobNotification{
				AppliedJobID:  app.ID,
				AppliedUserID: app.UserID,
				UserName:      user.Name,
				UserEmail:     user.Email,
				JobTitle:      posting.JobTitle,
				PostID:        app.PostID,
			})
		}
	}

	logs, err := s.logs.ListUnreadByUser(ctx, userID, interviewLogTypes)
	if err != nil {
		return nil, err
	}
	for _, entry := range logs {
		feed.Interviews = append(feed.Interviews, s.interviewNotification(ctx, entry))
	}

	return feed, nil
}

func (s *NotificationService) interviewNotification(ctx context.Context, entry models.NotificationLog) dtos.InterviewNotification {
	n := dtos.InterviewNotification{
		InterviewID: entry.InterviewID,
		JobID:       entry.JobID,
		JobTitle:    "N/A",
		Type:        entry.Type,
		Time:        entry.Timestamp,
	}
	if entry.JobID != nil {
		if posting, _, err := s.jobs.Resolve(ctx, *entry.JobID); err == nil {
			n.JobTitle = posting.JobTitle
		}
	}
	return n
}

// MarkRead flips one recipient's read flag on a log entry.
func (s *NotificationService) MarkRead(ctx context.Context, rawID, email string) error {
	id, err := parseID(rawID, "notification ID format")
	if err != nil {
		return err
	}
	return s.logs.MarkRead(ctx, id, email)
}
