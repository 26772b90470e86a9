package sender

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/investwisepro/admin-console/internal/lib/smtp"
	"github.com/investwisepro/admin-console/internal/models"
)

type MockClient struct {
	mock.Mock
	data bytes.Buffer
}

func (m *MockClient) Mail(from string) error {
	args := m.Called(from)
	return args.Error(0)
}

func (m *MockClient) Rcpt(to string) error {
	args := m.Called(to)
	return args.Error(0)
}

func (m *MockClient) Data() (io.WriteCloser, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.WriteCloser), args.Error(1)
}

func (m *MockClient) Quit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockClient) Close() error {
	args := m.Called()
	return args.Error(0)
}

type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Connect() (smtp.Client, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(smtp.Client), args.Error(1)
}

func (m *MockTransport) GetSMTPUser() string {
	args := m.Called()
	return args.String(0)
}

type nopWriteCloser struct {
	*bytes.Buffer
}

func (nopWriteCloser) Close() error { return nil }

func newTestService(transport smtp.TransportInterface) *Service {
	log := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	return New(transport, "admin@investwisepro.com", log)
}

func broadcastBody(t *testing.T, priority string) []byte {
	t.Helper()
	body, err := json.Marshal(models.BroadcastMessage{
		Type: "new_notification",
		Notification: models.Notification{
			ID:        "notif_1",
			Type:      models.NotificationTypeSystem,
			Message:   "Subsystem api degraded to error",
			Timestamp: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
			Priority:  priority,
		},
	})
	require.NoError(t, err)
	return body
}

func TestHandleMessageSendsHighPriority(t *testing.T) {
	buf := nopWriteCloser{Buffer: &bytes.Buffer{}}
	client := &MockClient{}
	client.On("Mail", "noreply@investwisepro.com").Return(nil)
	client.On("Rcpt", "admin@investwisepro.com").Return(nil)
	client.On("Data").Return(buf, nil)
	client.On("Quit").Return(nil)
	client.On("Close").Return(nil)

	transport := &MockTransport{}
	transport.On("Connect").Return(client, nil)
	transport.On("GetSMTPUser").Return("noreply@investwisepro.com")

	s := newTestService(transport)
	err := s.HandleMessage(broadcastBody(t, models.PriorityHigh))
	require.NoError(t, err)

	email := buf.String()
	assert.Contains(t, email, "To: admin@investwisepro.com")
	assert.Contains(t, email, "Subsystem api degraded to error")
	client.AssertExpectations(t)
	transport.AssertExpectations(t)
}

func TestHandleMessageSkipsLowPriority(t *testing.T) {
	transport := &MockTransport{}
	s := newTestService(transport)

	require.NoError(t, s.HandleMessage(broadcastBody(t, models.PriorityLow)))
	transport.AssertNotCalled(t, "Connect")
}

func TestHandleMessageMalformedBody(t *testing.T) {
	transport := &MockTransport{}
	s := newTestService(transport)

	// нечитаемое сообщение подтверждается, а не возвращается в очередь
	require.NoError(t, s.HandleMessage([]byte("{not json")))
	transport.AssertNotCalled(t, "Connect")
}

func TestHandleMessageConnectError(t *testing.T) {
	transport := &MockTransport{}
	transport.On("Connect").Return(nil, assert.AnError)
	transport.On("GetSMTPUser").Return("noreply@investwisepro.com").Maybe()

	s := newTestService(transport)
	err := s.HandleMessage(broadcastBody(t, models.PriorityHigh))
	assert.Error(t, err)
}
