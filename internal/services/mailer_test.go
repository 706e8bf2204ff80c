package services

import (
	"bufio"
	"fmt"
	"net"
	"strings"
	"sync"
	"testing"

	"github.com/eminenthub/eminenthub-api/internal/config"
)

// fakeSMTPServer speaks just enough SMTP for one delivery. When
// starttls is set it advertises the extension and drops the connection
// after the upgrade command instead of negotiating a real handshake.
type fakeSMTPServer struct {
	listener net.Listener
	starttls bool

	mu       sync.Mutex
	commands []string
	data     string
}

func newFakeSMTPServer(t *testing.T, starttls bool) *fakeSMTPServer {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to listen: %v", err)
	}

	s := &fakeSMTPServer{listener: listener, starttls: starttls}
	go s.serve()
	t.Cleanup(func() { listener.Close() })
	return s
}

func (s *fakeSMTPServer) port() string {
	_, port, _ := net.SplitHostPort(s.listener.Addr().String())
	return port
}

func (s *fakeSMTPServer) sawCommand(prefix string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, cmd := range s.commands {
		if strings.HasPrefix(strings.ToUpper(cmd), prefix) {
			return true
		}
	}
	return false
}

func (s *fakeSMTPServer) message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data
}

func (s *fakeSMTPServer) serve() {
	conn, err := s.listener.Accept()
	if err != nil {
		return
	}
	defer conn.Close()

	reader := bufio.NewReader(conn)
	fmt.Fprintf(conn, "220 fake ready\r\n")

	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		line = strings.TrimRight(line, "\r\n")

		verb := ""
		if fields := strings.Fields(line); len(fields) > 0 {
			verb = strings.ToUpper(fields[0])
		}

		s.mu.Lock()
		s.commands = append(s.commands, line)
		s.mu.Unlock()

		switch verb {
		case "EHLO", "HELO":
			if s.starttls {
				fmt.Fprintf(conn, "250-fake\r\n250 STARTTLS\r\n")
			} else {
				fmt.Fprintf(conn, "250 fake\r\n")
			}
		case "STARTTLS":
			// Acknowledge, then hang up rather than handshake.
			fmt.Fprintf(conn, "220 go ahead\r\n")
			return
		case "MAIL", "RCPT":
			fmt.Fprintf(conn, "250 ok\r\n")
		case "DATA":
			fmt.Fprintf(conn, "354 go\r\n")
			for {
				dataLine, err := reader.ReadString('\n')
				if err != nil {
					return
				}
				if strings.TrimRight(dataLine, "\r\n") == "." {
					break
				}
				s.mu.Lock()
				s.data += dataLine
				s.mu.Unlock()
			}
			fmt.Fprintf(conn, "250 queued\r\n")
		case "QUIT":
			fmt.Fprintf(conn, "221 bye\r\n")
			return
		default:
			fmt.Fprintf(conn, "250 ok\r\n")
		}
	}
}

func TestSendMail_PlainDelivery(t *testing.T) {
	server := newFakeSMTPServer(t, false)

	cfg := &config.Config{
		SMTPHost: "127.0.0.1",
		SMTPPort: server.port(),
		SMTPFrom: "noreply@example.com",
	}

	if err := sendMail(cfg, "admin@example.com", "Test subject", "Body"); err != nil {
		t.Fatalf("Failed to deliver mail: %v", err)
	}

	if !strings.Contains(server.message(), "Subject: Test subject") {
		t.Errorf("Delivered message missing subject: %q", server.message())
	}
}

func TestSendMail_ImplicitTLSRequiresTLSServer(t *testing.T) {
	server := newFakeSMTPServer(t, false)

	// SMTP_SECURE dials TLS on connect; a plaintext greeting is not a
	// handshake, so the connection must be rejected.
	cfg := &config.Config{
		SMTPHost:   "127.0.0.1",
		SMTPPort:   server.port(),
		SMTPSecure: true,
		SMTPFrom:   "noreply@example.com",
	}

	if err := sendMail(cfg, "admin@example.com", "Subject", "Body"); err == nil {
		t.Error("Expected a TLS error against a plaintext server")
	}
}

func TestSendMail_StartTLSBeforeAuth(t *testing.T) {
	server := newFakeSMTPServer(t, true)

	cfg := &config.Config{
		SMTPHost:     "127.0.0.1",
		SMTPPort:     server.port(),
		SMTPUser:     "mailer",
		SMTPPassword: "secret",
		SMTPFrom:     "noreply@example.com",
	}

	// The server acknowledges STARTTLS and hangs up, so delivery fails,
	// but the upgrade must have been attempted before any credentials.
	if err := sendMail(cfg, "admin@example.com", "Subject", "Body"); err == nil {
		t.Error("Expected an error from the aborted TLS upgrade")
	}

	if !server.sawCommand("STARTTLS") {
		t.Error("Expected a STARTTLS attempt when the server offers it")
	}
	if server.sawCommand("AUTH") {
		t.Error("Credentials were sent over the unencrypted connection")
	}
}
