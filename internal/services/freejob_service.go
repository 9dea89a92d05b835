package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/hirenest/jobboard-api/internal/apperr"
	"github.com/hirenest/jobboard-api/internal/dtos"
	"github.com/hirenest/jobboard-api/internal/models"
	"github.com/hirenest/jobboard-api/internal/notify"
)

// FreeJobService publishes free postings against a plan's posting credits
// and broadcasts new-job alerts to candidates.
type FreeJobService struct {
	plans    PlanStore
	jobs     JobStore
	users    UserStore
	notifier Notifier
	log      *zap.Logger
}

func NewFreeJobService(plans PlanStore, jobs JobStore, users UserStore, notifier Notifier, log *zap.Logger) *FreeJobService {
	return &FreeJobService{
		plans:    plans,
		jobs:     jobs,
		users:    users,
		notifier: notifier,
		log:      log,
	}
}

func (s *FreeJobService) List(ctx context.Context) ([]models.FreeJob, error) {
	return s.jobs.ListFree(ctx)
}

// Post validates the plan, publishes the posting with a conditional debit
// of the plan's free_jobs counter, then fans a push alert out to every
// candidate with a registered device. The broadcast is best-effort.
func (s *FreeJobService) Post(ctx context.Context, req *dtos.FreeJobRequest) (*models.FreeJob, error) {
	userID, err := parseID(req.UserID, "user_id")
	if err != nil {
		return nil, err
	}
	planID, err := parseID(req.PlanID, "plan_id")
	if err != nil {
		return nil, err
	}

	if _, err := s.plans.GetByID(ctx, planID); err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return nil, apperr.Validation("invalid plan_id")
		}
		return nil, err
	}

	job := &models.FreeJob{
		UserID:                  userID,
		PlanID:                  planID,
		JobTitle:                req.JobTitle,
		JobCategory:             req.JobCategory,
		JobDescription:          req.JobDescription,
		Email:                   req.Email,
		Username:                req.Username,
		Specialisms:             req.Specialisms,
		JobType:                 req.JobType,
		KeyResponsibilities:     req.KeyResponsibilities,
		SkillsAndExperience:     req.SkillsAndExperience,
		OfferedSalary:           req.OfferedSalary,
		CareerLevel:             req.CareerLevel,
		ExperienceYears:         req.ExperienceYears,
		ExperienceMonths:        req.ExperienceMonths,
		Gender:                  req.Gender,
		Industry:                req.Industry,
		Qualification:           req.Qualification,
		ApplicationDeadlineDate: req.ApplicationDeadlineDate,
		Country:                 req.Country,
		City:                    req.City,
		CompleteAddress:         req.CompleteAddress,
		EmploymentStatus:        req.EmploymentStatus,
		Vacancies:               req.Vacancies,
		CompanyName:             req.CompanyName,
	}

	if err := s.jobs.CreateFreeWithDebit(ctx, job); err != nil {
		return nil, err
	}

	s.broadcastNewJob(ctx, job)
	return job, nil
}

func (s *FreeJobService) broadcastNewJob(ctx context.Context, job *models.FreeJob) {
	tokens, err := s.users.ListCandidateTokens(ctx)
	if err != nil {
		s.log.Warn("token lookup failed, skipping job broadcast", zap.Error(err))
		return
	}
	if len(tokens) == 0 {
		s.log.Warn("no valid candidate device tokens found")
		return
	}

	for _, token := range tokens {
		s.notifier.Push(notify.Push{
			Token: token,
			Title: "New Job Alert!",
			Body:  job.JobTitle + " at " + job.CompanyName,
			Data: map[string]string{
				"jobId":   job.ID.String(),
				"jobType": job.JobType,
			},
		})
	}
}
