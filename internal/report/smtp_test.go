package report

import (
	"bufio"
	"context"
	"net"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pws/internal/config"
)

// smtpServer is a minimal SMTP endpoint that records one session
type smtpServer struct {
	ln       net.Listener
	mu       sync.Mutex
	commands []string
	data     string
	done     chan struct{}
}

func newSMTPServer(t *testing.T) *smtpServer {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	s := &smtpServer{ln: ln, done: make(chan struct{})}
	t.Cleanup(func() { ln.Close() })
	go s.serve()
	return s
}

func (s *smtpServer) port() int {
	return s.ln.Addr().(*net.TCPAddr).Port
}

func (s *smtpServer) serve() {
	defer close(s.done)
	conn, err := s.ln.Accept()
	if err != nil {
		return
	}
	defer conn.Close()

	r := bufio.NewReader(conn)
	write := func(line string) { conn.Write([]byte(line + "\r\n")) }
	write("220 localhost ESMTP")

	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return
		}
		line = strings.TrimRight(line, "\r\n")
		s.mu.Lock()
		s.commands = append(s.commands, line)
		s.mu.Unlock()

		verb := strings.ToUpper(strings.SplitN(line, " ", 2)[0])
		switch verb {
		case "EHLO", "HELO":
			write("250 localhost")
		case "MAIL", "RCPT", "RSET", "NOOP":
			write("250 OK")
		case "DATA":
			write("354 go ahead")
			var b strings.Builder
			for {
				l, err := r.ReadString('\n')
				if err != nil {
					return
				}
				if l == ".\r\n" {
					break
				}
				b.WriteString(l)
			}
			s.mu.Lock()
			s.data = b.String()
			s.mu.Unlock()
			write("250 queued")
		case "QUIT":
			write("221 bye")
			return
		default:
			write("502 unsupported")
		}
	}
}

func TestSMTPSenderSend(t *testing.T) {
	srv := newSMTPServer(t)

	sender := NewSMTPSender(config.MailConfig{
		Host: "127.0.0.1",
		Port: srv.port(),
		TLS:  "none",
	})

	err := sender.Send(context.Background(), "qa@example.com",
		[]string{"team@example.com", "lead@example.com"}, []byte("Subject: hi\r\n\r\nbody\r\n"))
	require.NoError(t, err)
	<-srv.done

	srv.mu.Lock()
	defer srv.mu.Unlock()
	assert.Contains(t, srv.commands, "MAIL FROM:<qa@example.com>")
	assert.Contains(t, srv.commands, "RCPT TO:<team@example.com>")
	assert.Contains(t, srv.commands, "RCPT TO:<lead@example.com>")
	assert.Contains(t, srv.data, "body")
}

func TestSMTPSenderNoRecipients(t *testing.T) {
	sender := NewSMTPSender(config.MailConfig{Host: "127.0.0.1", Port: 1})
	err := sender.Send(context.Background(), "qa@example.com", nil, []byte("x"))
	require.Error(t, err)
}

func TestSMTPSenderConnectError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	ln.Close()

	sender := NewSMTPSender(config.MailConfig{Host: "127.0.0.1", Port: port, TLS: "none"})
	err = sender.Send(context.Background(), "qa@example.com", []string{"a@example.com"}, []byte("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "127.0.0.1:"+strconv.Itoa(port))
}
