package notification

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ulasan/company-review/internal/core/events"
)

// RegisterHandlers subscribes mail delivery to the domain events that
// warrant a notification.
func RegisterHandlers(bus *events.EventBus, mailer *Mailer, logger *slog.Logger) {
	bus.Subscribe(events.EventTypeApplicationSubmitted, func(ctx context.Context, event events.Event) error {
		e, ok := event.(*events.ApplicationSubmittedEvent)
		if !ok {
			return fmt.Errorf("unexpected payload for %s", event.EventType())
		}
		return notifyCompanyOfApplication(mailer, e)
	})

	bus.Subscribe(events.EventTypeApplicationReviewed, func(ctx context.Context, event events.Event) error {
		e, ok := event.(*events.ApplicationReviewedEvent)
		if !ok {
			return fmt.Errorf("unexpected payload for %s", event.EventType())
		}
		return notifyApplicantOfReview(mailer, e)
	})

	bus.Subscribe(events.EventTypeClaimReviewed, func(ctx context.Context, event events.Event) error {
		e, ok := event.(*events.ClaimReviewedEvent)
		if !ok {
			return fmt.Errorf("unexpected payload for %s", event.EventType())
		}
		return notifyClaimantOfReview(mailer, e)
	})

	logger.Info("notification handlers registered")
}

func notifyCompanyOfApplication(mailer *Mailer, e *events.ApplicationSubmittedEvent) error {
	if len(e.Recipients) == 0 {
		return nil
	}

	jobTitle := e.JobTitle
	if jobTitle == "" {
		jobTitle = "a job"
	}

	subject := fmt.Sprintf("New application for job at %s", jobTitle)
	var body strings.Builder
	fmt.Fprintf(&body, "<p>A new application was submitted for <b>%s</b>.</p>", jobTitle)
	fmt.Fprintf(&body, "<p><b>Job id:</b> %d</p>", e.JobID)
	fmt.Fprintf(&body, "<p><b>Applicant user id:</b> %d</p>", e.ApplicantID)
	body.WriteString("<p>Login to admin dashboard to view applications.</p>")

	return mailer.Send(e.Recipients, subject, body.String())
}

func notifyApplicantOfReview(mailer *Mailer, e *events.ApplicationReviewedEvent) error {
	if e.ApplicantEmail == "" {
		return nil
	}

	jobTitle := e.JobTitle
	if jobTitle == "" {
		jobTitle = "the job"
	}
	name := e.ApplicantName
	if name == "" {
		name = "Applicant"
	}

	subject := fmt.Sprintf("Update on your application for %q", jobTitle)
	var body strings.Builder
	fmt.Fprintf(&body, "<p>Hi %s,</p>", name)
	fmt.Fprintf(&body, "<p>Your application for <b>%s</b> has been updated: <b>%s</b>.</p>", jobTitle, e.NewStatus)
	if e.ReviewNote != "" {
		fmt.Fprintf(&body, "<p>Note from reviewer: %s</p>", e.ReviewNote)
	}
	body.WriteString("<p>Thanks,<br/>Company Review Team</p>")

	return mailer.Send([]string{e.ApplicantEmail}, subject, body.String())
}

func notifyClaimantOfReview(mailer *Mailer, e *events.ClaimReviewedEvent) error {
	if e.ClaimantEmail == "" {
		return nil
	}

	companyName := e.CompanyName
	if companyName == "" {
		companyName = "the company"
	}
	name := e.ClaimantName
	if name == "" {
		name = "User"
	}

	var subject string
	var body strings.Builder
	fmt.Fprintf(&body, "<p>Hi %s,</p>", name)
	if e.NewStatus == "approved" {
		subject = fmt.Sprintf("Your claim for %q has been approved", companyName)
		fmt.Fprintf(&body, "<p>Your claim for <b>%s</b> has been <b>approved</b>.</p>", companyName)
	} else {
		subject = fmt.Sprintf("Your claim for %q was rejected", companyName)
		fmt.Fprintf(&body, "<p>Your claim for <b>%s</b> has been <b>rejected</b>.</p>", companyName)
	}
	if e.ReviewNote != "" {
		fmt.Fprintf(&body, "<p>Note from admin: %s</p>", e.ReviewNote)
	}
	if e.NewStatus != "approved" {
		body.WriteString("<p>If you think this is a mistake, contact support.</p>")
	}
	body.WriteString("<p>Thanks,<br/>Company Review Team</p>")

	return mailer.Send([]string{e.ClaimantEmail}, subject, body.String())
}
