package notification_test

import (
	"context"
	"log/slog"
	"net/smtp"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ulasan/company-review/internal"
	"github.com/ulasan/company-review/internal/core/events"
	"github.com/ulasan/company-review/internal/notification"
)

func TestNotification(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Notification Module Suite")
}

type sentMail struct {
	addr string
	from string
	to   []string
	msg  string
}

var _ = Describe("Notification", func() {
	var (
		mailer *notification.Mailer
		sent   []sentMail
		logger *slog.Logger
	)

	capture := func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		sent = append(sent, sentMail{addr: addr, from: from, to: to, msg: string(msg)})
		return nil
	}

	BeforeEach(func() {
		sent = nil
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		cfg := internal.SMTPConfig{
			Host: "smtp.example.com",
			Port: 587,
			From: "no-reply@companyreview.local",
		}
		mailer = notification.NewMailer(cfg, logger).WithSendFunc(capture)
	})

	Describe("Mailer", func() {
		It("should build an HTML message with standard headers", func() {
			err := mailer.Send([]string{"a@example.com", "b@example.com"}, "Hello", "<p>Hi</p>")

			Expect(err).ToNot(HaveOccurred())
			Expect(sent).To(HaveLen(1))
			Expect(sent[0].addr).To(Equal("smtp.example.com:587"))
			Expect(sent[0].to).To(Equal([]string{"a@example.com", "b@example.com"}))
			Expect(sent[0].msg).To(ContainSubstring("Subject: Hello\r\n"))
			Expect(sent[0].msg).To(ContainSubstring("Content-Type: text/html"))
			Expect(sent[0].msg).To(ContainSubstring("<p>Hi</p>"))
		})

		It("should drop mail silently when no host is configured", func() {
			disabled := notification.NewMailer(internal.SMTPConfig{}, logger).WithSendFunc(capture)

			err := disabled.Send([]string{"a@example.com"}, "Hello", "<p>Hi</p>")

			Expect(err).ToNot(HaveOccurred())
			Expect(sent).To(BeEmpty())
		})

		It("should do nothing for an empty recipient list", func() {
			Expect(mailer.Send(nil, "Hello", "<p>Hi</p>")).To(Succeed())
			Expect(sent).To(BeEmpty())
		})
	})

	Describe("event handlers", func() {
		var bus *events.EventBus

		BeforeEach(func() {
			bus = events.NewEventBus(logger)
			notification.RegisterHandlers(bus, mailer, logger)
		})

		It("should mail company members when an application arrives", func() {
			event := events.NewApplicationSubmittedEvent(1, 100, "Go Engineer", 5, []string{"hr@company.com"})

			err := bus.PublishSync(context.Background(), event)

			Expect(err).ToNot(HaveOccurred())
			Expect(sent).To(HaveLen(1))
			Expect(sent[0].to).To(Equal([]string{"hr@company.com"}))
			Expect(sent[0].msg).To(ContainSubstring("A new application was submitted for <b>Go Engineer</b>"))
		})

		It("should mail the applicant when their application is reviewed", func() {
			event := events.NewApplicationReviewedEvent(1, "Go Engineer", "Jane", "jane@example.com", "shortlisted", "strong CV")

			err := bus.PublishSync(context.Background(), event)

			Expect(err).ToNot(HaveOccurred())
			Expect(sent).To(HaveLen(1))
			Expect(sent[0].to).To(Equal([]string{"jane@example.com"}))
			Expect(sent[0].msg).To(ContainSubstring("<b>shortlisted</b>"))
			Expect(sent[0].msg).To(ContainSubstring("Note from reviewer: strong CV"))
		})

		It("should skip applicant mail when no address is known", func() {
			event := events.NewApplicationReviewedEvent(1, "Go Engineer", "Jane", "", "rejected", "")

			Expect(bus.PublishSync(context.Background(), event)).To(Succeed())
			Expect(sent).To(BeEmpty())
		})

		It("should mail the claimant on approval", func() {
			event := events.NewClaimReviewedEvent(1, "Acme Software", "Jane", "jane@example.com", "approved", "")

			err := bus.PublishSync(context.Background(), event)

			Expect(err).ToNot(HaveOccurred())
			Expect(sent).To(HaveLen(1))
			Expect(sent[0].msg).To(ContainSubstring("has been <b>approved</b>"))
			Expect(sent[0].msg).ToNot(ContainSubstring("contact support"))
		})

		It("should point a rejected claimant at support", func() {
			event := events.NewClaimReviewedEvent(1, "Acme Software", "Jane", "jane@example.com", "rejected", "no proof of ownership")

			err := bus.PublishSync(context.Background(), event)

			Expect(err).ToNot(HaveOccurred())
			Expect(sent).To(HaveLen(1))
			Expect(sent[0].msg).To(ContainSubstring("has been <b>rejected</b>"))
			Expect(sent[0].msg).To(ContainSubstring("Note from admin: no proof of ownership"))
			Expect(sent[0].msg).To(ContainSubstring("If you think this is a mistake, contact support."))
		})
	})
})
