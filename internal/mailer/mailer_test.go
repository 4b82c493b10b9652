package mailer

import (
	"context"
	"errors"
	"testing"
)

func TestLogSender(t *testing.T) {
	var s Sender = LogSender{}

	err := s.Send(context.Background(), &Message{
		Subject: "Hello",
		Body:    "Body",
		From:    "blog@example.com",
		To:      []string{"bob@example.com"},
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
}

func TestLogSenderNoRecipients(t *testing.T) {
	err := LogSender{}.Send(context.Background(), &Message{Subject: "Hello"})
	if !errors.Is(err, ErrNoRecipients) {
		t.Errorf("got %v, want ErrNoRecipients", err)
	}
}

func TestNewSMTPSender(t *testing.T) {
	s, err := NewSMTPSender(SMTPConfig{Host: "localhost", Port: 2525, Username: "user", Password: "secret"})
	if err != nil {
		t.Fatalf("NewSMTPSender: %v", err)
	}
	if s.host != "localhost" {
		t.Errorf("host: got %q, want %q", s.host, "localhost")
	}
}

func TestNewSMTPSenderRequiresHost(t *testing.T) {
	if _, err := NewSMTPSender(SMTPConfig{Port: 25}); err == nil {
		t.Error("expected error for empty host")
	}
}

func TestSMTPSenderRejectsBadAddresses(t *testing.T) {
	s, err := NewSMTPSender(SMTPConfig{Host: "localhost", Port: 2525})
	if err != nil {
		t.Fatalf("NewSMTPSender: %v", err)
	}

	tests := []struct {
		name string
		msg  *Message
	}{
		{"no recipients", &Message{From: "blog@example.com"}},
		{"bad from", &Message{From: "not an address", To: []string{"bob@example.com"}}},
		{"bad to", &Message{From: "blog@example.com", To: []string{"not an address"}}},
	}

	// All of these fail before any network dial.
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.Send(context.Background(), tt.msg); err == nil {
				t.Error("expected error")
			}
		})
	}
}
