package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/emersion/go-message/mail"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"pws/internal/domain"
)

// Message is a report mail before MIME encoding
type Message struct {
	From           string
	To             []string
	Cc             []string
	Subject        string
	Markdown       string
	AttachmentName string
	Attachment     []byte
	Date           time.Time
}

// Build encodes the message as multipart MIME: an HTML body rendered from the
// markdown, plus the report as an attachment
func (m Message) Build() ([]byte, error) {
	htmlBody, err := renderMarkdown(m.Markdown)
	if err != nil {
		return nil, err
	}

	var h mail.Header
	h.SetDate(m.Date)
	h.SetSubject(m.Subject)
	h.SetAddressList("From", []*mail.Address{{Address: m.From}})
	h.SetAddressList("To", addressList(m.To))
	if len(m.Cc) > 0 {
		h.SetAddressList("Cc", addressList(m.Cc))
	}

	var buf bytes.Buffer
	mw, err := mail.CreateWriter(&buf, h)
	if err != nil {
		return nil, fmt.Errorf("create mail writer: %w", err)
	}

	tw, err := mw.CreateInline()
	if err != nil {
		return nil, fmt.Errorf("create inline part: %w", err)
	}
	var th mail.InlineHeader
	th.SetContentType("text/html", map[string]string{"charset": "utf-8"})
	w, err := tw.CreatePart(th)
	if err != nil {
		return nil, fmt.Errorf("create html part: %w", err)
	}
	if _, err := w.Write(htmlBody); err != nil {
		return nil, fmt.Errorf("write html part: %w", err)
	}
	w.Close()
	tw.Close()

	if m.Attachment != nil {
		var ah mail.AttachmentHeader
		ah.SetContentType("text/html", nil)
		ah.SetFilename(m.AttachmentName)
		aw, err := mw.CreateAttachment(ah)
		if err != nil {
			return nil, fmt.Errorf("create attachment: %w", err)
		}
		if _, err := aw.Write(m.Attachment); err != nil {
			return nil, fmt.Errorf("write attachment: %w", err)
		}
		aw.Close()
	}

	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close mail writer: %w", err)
	}
	return buf.Bytes(), nil
}

func addressList(addrs []string) []*mail.Address {
	list := make([]*mail.Address, 0, len(addrs))
	for _, a := range addrs {
		list = append(list, &mail.Address{Address: a})
	}
	return list
}

func renderMarkdown(src string) ([]byte, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return nil, fmt.Errorf("render mail body: %w", err)
	}
	return buf.Bytes(), nil
}

// Summary renders the markdown mail body. run may be nil when the report is sent by hand.
func Summary(run *domain.RunRecord) string {
	var b strings.Builder
	b.WriteString("Hi Team,\n\nPlease find the attached Playwright test report.\n\n")

	if run != nil {
		verdict := "✅ passed"
		if !run.Success {
			verdict = "❌ failed"
		}
		files := "all"
		if !run.All {
			files = strings.Join(run.Files, ", ")
		}
		tags := "none"
		if len(run.Tags) > 0 {
			tags = strings.Join(run.Tags, ", ")
		}

		b.WriteString("| Run | Details |\n|---|---|\n")
		fmt.Fprintf(&b, "| Environment | %s |\n", run.Environment)
		fmt.Fprintf(&b, "| Result | %s |\n", verdict)
		fmt.Fprintf(&b, "| Files | %s |\n", files)
		fmt.Fprintf(&b, "| Tag | %s |\n", tags)
		if run.Command != "" {
			fmt.Fprintf(&b, "| Command | `%s` |\n", strings.ReplaceAll(run.Command, "|", "\\|"))
		}
		fmt.Fprintf(&b, "| Duration | %s |\n\n", run.Duration.Round(time.Second))
	}

	b.WriteString("Best regards,\n\nYour Automation Team\n")
	return b.String()
}
