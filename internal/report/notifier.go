package report

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/fatih/color"

	"pws/internal/config"
	"pws/internal/domain"
)

// ErrReportNotFound is returned when the runner left no report behind
var ErrReportNotFound = errors.New("test report not found")

// Sender delivers an encoded mail
type Sender interface {
	Send(ctx context.Context, from string, to []string, msg []byte) error
}

// Notifier mails the generated test report
type Notifier struct {
	reportPath string
	report     config.ReportConfig
	mail       config.MailConfig
	sender     Sender
	now        func() time.Time
}

// NewNotifier creates a new Notifier
func NewNotifier(cfg *config.Config, sender Sender) *Notifier {
	return &Notifier{
		reportPath: cfg.GetReportPath(),
		report:     cfg.Report,
		mail:       cfg.Mail,
		sender:     sender,
		now:        time.Now,
	}
}

// SendReport mails the report artifact. run describes the run being reported and may be nil.
func (n *Notifier) SendReport(ctx context.Context, run *domain.RunRecord) error {
	data, err := os.ReadFile(n.reportPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrReportNotFound, n.reportPath)
		}
		return fmt.Errorf("read report: %w", err)
	}

	if !n.mail.Enabled {
		color.Yellow("⚠️ Mail delivery disabled; report left at %s", n.reportPath)
		return nil
	}

	msg := Message{
		From:           n.mail.From,
		To:             n.mail.To,
		Cc:             n.mail.Cc,
		Subject:        n.report.Subject,
		Markdown:       Summary(run),
		AttachmentName: n.report.AttachmentName,
		Attachment:     data,
		Date:           n.now(),
	}
	raw, err := msg.Build()
	if err != nil {
		return err
	}

	recipients := append(append([]string(nil), n.mail.To...), n.mail.Cc...)
	if err := n.sender.Send(ctx, n.mail.From, recipients, raw); err != nil {
		return fmt.Errorf("error sending email: %w", err)
	}

	color.Green("📧 Email sent successfully to %d recipient(s)", len(recipients))
	return nil
}
