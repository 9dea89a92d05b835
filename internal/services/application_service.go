package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hirenest/jobboard-api/internal/apperr"
	"github.com/hirenest/jobboard-api/internal/dtos"
	"github.com/hirenest/jobboard-api/internal/models"
	"github.com/hirenest/jobboard-api/internal/notify"
)

// refundWindow is how long after applying a withdrawal still returns the
// consumed plan credit.
const refundWindow = 10 * time.Minute

// ApplicationService owns the apply/withdraw/shortlist lifecycle and the
// read-side enrichment queries around it.
type ApplicationService struct {
	plans    PlanStore
	apps     ApplicationStore
	jobs     JobStore
	users    UserStore
	notifier Notifier
	log      *zap.Logger
}

func NewApplicationService(plans PlanStore, apps ApplicationStore, jobs JobStore, users UserStore, notifier Notifier, log *zap.Logger) *ApplicationService {
	return &ApplicationService{
		plans:    plans,
		apps:     apps,
		jobs:     jobs,
		users:    users,
		notifier: notifier,
		log:      log,
	}
}

func parseID(raw, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperr.Validation("invalid " + field)
	}
	return id, nil
}

// Apply consumes one credit from the user's first eligible plan and records
// the application. The debit and the insert commit atomically in the store;
// notifications afterwards are best-effort and never affect the outcome.
func (s *ApplicationService) Apply(ctx context.Context, rawUserID, rawPostID string) error {
	userID, err := parseID(rawUserID, "user_id")
	if err != nil {
		return err
	}
	postID, err := parseID(rawPostID, "post_id")
	if err != nil {
		return err
	}

	plans, err := s.plans.ListByUser(ctx, userID)
	if err != nil {
		return err
	}
	if len(plans) == 0 {
		return apperr.Validation("user does not have any active plans")
	}

	posting, class, err := s.jobs.Resolve(ctx, postID)
	if err != nil {
		return err
	}

	// Pre-check for the friendly error; the unique index is what actually
	// guards against a race.
	if _, err := s.apps.Find(ctx, userID, postID); err == nil {
		return apperr.Conflict("user has already applied for this job")
	} else if !apperr.IsKind(err, apperr.KindNotFound) {
		return err
	}

	selected := selectPlan(plans, class, time.Now())
	if selected == nil {
		return apperr.InsufficientBalance("user does not have sufficient plan balance")
	}

	app := &models.Application{
		UserID: userID,
		PostID: postID,
		PlanID: &selected.ID,
	}
	if err := s.apps.CreateWithDebit(ctx, app, class); err != nil {
		return err
	}

	s.notifyApplied(ctx, userID, posting)
	return nil
}

// selectPlan returns the first plan, in enumeration order, whose date range
// contains now and whose counter for the job class is positive. First match
// wins even when a later plan has a larger balance; callers observe and
// depend on that order.
func selectPlan(plans []models.Plan, class models.JobClass, now time.Time) *models.Plan {
	for i := range plans {
		p := &plans[i]
		if !p.Active(now) {
			continue
		}
		if class == models.JobClassPaid && p.ApplyPaidJobs > 0 {
			return p
		}
		if class == models.JobClassFree && p.ApplyFreeJobs > 0 {
			return p
		}
	}
	return nil
}

// notifyApplied emails the applicant and pushes an alert to the posting's
// owner. Every failure here is logged and swallowed.
func (s *ApplicationService) notifyApplied(ctx context.Context, userID uuid.UUID, posting *models.Posting) {
	applicant, err := s.users.GetByID(ctx, userID)
	if err != nil {
		s.log.Warn("applicant lookup failed, skipping notifications", zap.Error(err))
		return
	}

	if applicant.Email != "" {
		s.notifier.Email(notify.Email{
			To:      applicant.Email,
			Subject: "Job Application Confirmation",
			Body:    "Your application was successful!",
		})
	}

	employer, err := s.users.GetByID(ctx, posting.OwnerID)
	if err != nil {
		s.log.Warn("employer lookup failed, skipping push", zap.Error(err))
		return
	}
	if employer.DeviceToken == "" {
		return
	}

	name := applicant.Name
	if name == "" {
		name = "A candidate"
	}
	s.notifier.Push(notify.Push{
		Token: employer.DeviceToken,
		Title: "New Job Application",
		Body:  name + " applied to your job: " + posting.JobTitle,
		Data: map[string]string{
			"type":          "appliedJob",
			"applicantName": name,
			"jobTitle":      posting.JobTitle,
			"userId":        userID.String(),
			"postId":        posting.ID.String(),
		},
	})
}

// Withdraw deletes the application, refunding the consumed credit when the
// withdrawal lands within the refund window. The application is removed
// either way.
func (s *ApplicationService) Withdraw(ctx context.Context, rawUserID, rawPostID string) error {
	userID, err := parseID(rawUserID, "user_id")
	if err != nil {
		return err
	}
	postID, err := parseID(rawPostID, "post_id")
	if err != nil {
		return err
	}

	app, err := s.apps.Find(ctx, userID, postID)
	if err != nil {
		return err
	}

	// Legacy records without a plan link: nothing to refund.
	if app.PlanID == nil {
		return s.apps.Delete(ctx, userID, postID)
	}

	// A missing plan means the ledger is corrupt upstream; surface it
	// instead of silently succeeding.
	plan, err := s.plans.GetByID(ctx, *app.PlanID)
	if err != nil {
		return err
	}

	if time.Since(app.Timestamp) <= refundWindow {
		_, class, err := s.jobs.Resolve(ctx, postID)
		if err != nil {
			return err
		}
		return s.apps.DeleteWithRefund(ctx, userID, postID, plan.ID, class)
	}

	// Outside the window the credit is forfeited.
	return s.apps.Delete(ctx, userID, postID)
}

// SetStatus applies the employer's shortlist decision and pushes the
// verdict to the candidate.
func (s *ApplicationService) SetStatus(ctx context.Context, rawID, action string) error {
	id, err := parseID(rawID, "candidate ID format")
	if err != nil {
		return err
	}

	var status string
	switch action {
	case "approve":
		status = models.StatusShortlisted
	case "disapprove":
		status = models.StatusUnshortlisted
	default:
		return apperr.Validation("invalid action")
	}

	app, err := s.apps.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.apps.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	s.notifyStatusChanged(ctx, app, status)
	return nil
}

func (s *ApplicationService) notifyStatusChanged(ctx context.Context, app *models.Application, status string) {
	candidate, err := s.users.GetByID(ctx, app.UserID)
	if err != nil {
		s.log.Warn("candidate lookup failed, skipping push", zap.Error(err))
		return
	}
	if candidate.DeviceToken == "" {
		return
	}

	jobTitle := "Your Job Application"
	postID := ""
	if posting, _, err := s.jobs.Resolve(ctx, app.PostID); err == nil {
		jobTitle = posting.JobTitle
		postID = posting.ID.String()
	}

	title := "Application Shortlisted"
	if status == models.StatusUnshortlisted {
		title = "Application Not Shortlisted"
	}
	s.notifier.Push(notify.Push{
		Token: candidate.DeviceToken,
		Title: title,
		Body:  "You have been " + status + " for the job: " + jobTitle,
		Data: map[string]string{
			"type":         "shortlistedJob",
			"status":       status,
			"jobTitle":     jobTitle,
			"postId":       postID,
			"appliedJobId": app.ID.String(),
		},
	})
}

// ValidatePair reports whether an application exists for (user, post).
func (s *ApplicationService) ValidatePair(ctx context.Context, rawUserID, rawPostID string) error {
	userID, err := parseID(rawUserID, "user_id")
	if err != nil {
		return err
	}
	postID, err := parseID(rawPostID, "post_id")
	if err != nil {
		return err
	}
	_, err = s.apps.Find(ctx, userID, postID)
	return err
}

// MarkSeen flags a posting's application as seen by the employer.
func (s *ApplicationService) MarkSeen(ctx context.Context, rawPostID string) error {
	postID, err := parseID(rawPostID, "post_id")
	if err != nil {
		return err
	}
	return s.apps.MarkSeenByPost(ctx, postID)
}

// enrich joins an application with applicant and posting display fields.
func (s *ApplicationService) enrich(ctx context.Context, app models.Application) dtos.EnrichedApplication {
	out := dtos.EnrichedApplication{
		ID:        app.ID,
		PostID:    app.PostID,
		UserID:    app.UserID,
		PlanID:    app.PlanID,
		Name:      "N/A",
		Email:     "N/A",
		JobTitle:  "N/A",
		JobType:   "N/A",
		Seen:      app.Seen,
		Timestamp: app.Timestamp,
		Status:    app.Status,
	}
	if user, err := s.users.GetByID(ctx, app.UserID); err == nil {
		out.Name = user.Name
		out.Email = user.Email
	}
	if posting, _, err := s.jobs.Resolve(ctx, app.PostID); err == nil {
		out.JobTitle = posting.JobTitle
		out.JobType = posting.JobType
	}
	return out
}

func (s *ApplicationService) enrichAll(ctx context.Context, apps []models.Application) []dtos.EnrichedApplication {
	enriched := make([]dtos.EnrichedApplication, 0, len(apps))
	for _, app := range apps {
		enriched = append(enriched, s.enrich(ctx, app))
	}
	return enriched
}

func (s *ApplicationService) ListByPost(ctx context.Context, rawPostID string) ([]dtos.EnrichedApplication, error) {
	postID, err := parseID(rawPostID, "post_id")
	if err != nil {
		return nil, err
	}
	apps, err := s.apps.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if len(apps) == 0 {
		return nil, apperr.NotFound("no applications found for the specified post_id")
	}
	return s.enrichAll(ctx, apps), nil
}

func (s *ApplicationService) ListByUser(ctx context.Context, rawUserID string) ([]dtos.EnrichedApplication, error) {
	userID, err := parseID(rawUserID, "user_id")
	if err != nil {
		return nil, err
	}
	apps, err := s.apps.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(apps) == 0 {
		return nil, apperr.NotFound("no applications found for the specified user_id")
	}
	return s.enrichAll(ctx, apps), nil
}

func (s *ApplicationService) CountByUser(ctx context.Context, rawUserID string) (int64, error) {
	userID, err := parseID(rawUserID, "user_id")
	if err != nil {
		return 0, err
	}
	count, err := s.apps.CountByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, apperr.NotFound("no applications found for the specified user_id")
	}
	return count, nil
}

func (s *ApplicationService) CountByPost(ctx context.Context, rawPostID string) (int64, error) {
	postID, err := parseID(rawPostID, "post_id")
	if err != nil {
		return 0, err
	}
	count, err := s.apps.CountByPost(ctx, postID)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, apperr.NotFound("no applications found for the specified post_id")
	}
	return count, nil
}

func (s *ApplicationService) ListAll(ctx context.Context) ([]models.Application, error) {
	return s.apps.ListAll(ctx)
}

// ListAllWithDetails is the consolidated admin listing: every application
// joined with applicant, posting and poster details via batched lookups.
func (s *ApplicationService) ListAllWithDetails(ctx context.Context) ([]dtos.ApplicationDetails, error) {
	apps, err := s.apps.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	userIDs := make([]uuid.UUID, 0, len(apps))
	for _, app := range apps {
		userIDs = append(userIDs, app.UserID)
	}
	users, err := s.users.ListByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	usersByID := make(map[uuid.UUID]models.User, len(users))
	for _, u := range users {
		usersByID[u.ID] = u
	}

	details := make([]dtos.ApplicationDetails, 0, len(apps))
	for _, app := range apps {
		d := dtos.ApplicationDetails{
			AppliedJobID: app.ID,
			Seen:         app.Seen,
			Timestamp:    app.Timestamp,
			Status:       app.Status,
		}
		if u, ok := usersByID[app.UserID]; ok {
			d.Applicant = dtos.ApplicantInfo{ID: u.ID, Name: u.Name, Email: u.Email}
		}
		if posting, class, err := s.jobs.Resolve(ctx, app.PostID); err == nil {
			job := &dtos.JobDetails{
				ID:          posting.ID,
				Title:       posting.JobTitle,
				Description: posting.JobDescription,
				Salary:      posting.OfferedSalary,
				CompanyName: posting.CompanyName,
				City:        posting.City,
				Country:     posting.Country,
			}
			// Poster contact is only exposed for paid postings, as before.
			if class == models.JobClassPaid {
				if poster, err := s.users.GetByID(ctx, posting.OwnerID); err == nil {
					job.Poster = &dtos.PosterInfo{Name: poster.Name, Email: poster.Email}
				}
			}
			d.Job = job
		}
		details = append(details, d)
	}
	return details, nil
}

// ShortlistedCandidates lists shortlisted applications across the
// employer's paid postings.
func (s *ApplicationService) ShortlistedCandidates(ctx context.Context, rawUserID string) ([]dtos.EnrichedApplication, error) {
	userID, err := parseID(rawUserID, "user_id")
	if err != nil {
		return nil, err
	}
	postIDs, err := s.jobs.ListPaidIDsByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(postIDs) == 0 {
		return nil, apperr.NotFound("no jobs found for this employer")
	}
	apps, err := s.apps.ListShortlistedByPosts(ctx, postIDs)
	if err != nil {
		return nil, err
	}
	if len(apps) == 0 {
		return nil, apperr.NotFound("no shortlisted candidates found for this employer")
	}
	return s.enrichAll(ctx, apps), nil
}

func (s *ApplicationService) ShortlistedCount(ctx context.Context, rawUserID string) (int64, error) {
	userID, err := parseID(rawUserID, "user_id")
	if err != nil {
		return 0, err
	}
	postIDs, err := s.jobs.ListPaidIDsByOwner(ctx, userID)
	if err != nil {
		return 0, err
	}
	if len(postIDs) == 0 {
		return 0, apperr.NotFound("no jobs found for this employer")
	}
	return s.apps.CountShortlistedByPosts(ctx, postIDs)
}

// JobsByOwner returns everything the employer has posted with a store
// label on each entry.
func (s *ApplicationService) JobsByOwner(ctx context.Context, rawUserID string) ([]dtos.OwnedJob, error) {
	userID, err := parseID(rawUserID, "user_id")
	if err != nil {
		return nil, err
	}
	jobs, freeJobs, err := s.jobs.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	owned := make([]dtos.OwnedJob, 0, len(jobs)+len(freeJobs))
	for _, j := range jobs {
		owned = append(owned, dtos.OwnedJob{
			ID:          j.ID,
			JobTitle:    j.JobTitle,
			JobType:     j.JobType,
			CompanyName: j.CompanyName,
			City:        j.City,
			Country:     j.Country,
			Label:       "Paid Job",
		})
	}
	for _, j := range freeJobs {
		owned = append(owned, dtos.OwnedJob{
			ID:          j.ID,
			JobTitle:    j.JobTitle,
			JobType:     j.JobType,
			CompanyName: j.CompanyName,
			City:        j.City,
			Country:     j.Country,
			Label:       "Free Job",
		})
	}
	if len(owned) == 0 {
		return nil, apperr.NotFound("no jobs found for this user")
	}
	return owned, nil
}
