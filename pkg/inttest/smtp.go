package inttest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"testing"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const natSMTPPort = "1025/tcp"
const natMailAPIPort = "8025/tcp"

// SMTP is a mail server capturing every message sent to it. Captured messages are inspected through
// its HTTP API.
type SMTP struct {
	Host    string
	Port    int
	apiURL  string
	httpCli *http.Client
}

// SetupSMTP creates a Mailpit container accepting any SMTP credentials.
func SetupSMTP(t *testing.T) *SMTP {
	t.Helper()
	ctx := context.TODO()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "axllent/mailpit:v1.21",
			ExposedPorts: []string{natSMTPPort, natMailAPIPort},
			Env: map[string]string{
				"MP_SMTP_AUTH_ACCEPT_ANY":     "true",
				"MP_SMTP_AUTH_ALLOW_INSECURE": "true",
			},
			WaitingFor: wait.ForHTTP("/api/v1/messages").WithPort(nat.Port(natMailAPIPort)),
		},
		Started: true,
	})
	require.NoError(t, err, "failed to start SMTP server")
	t.Cleanup(func() { require.NoError(t, container.Terminate(ctx), "failed to terminate SMTP server") })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	smtpPort, err := container.MappedPort(ctx, nat.Port(natSMTPPort))
	require.NoError(t, err)
	apiPort, err := container.MappedPort(ctx, nat.Port(natMailAPIPort))
	require.NoError(t, err)

	port, err := strconv.Atoi(smtpPort.Port())
	require.NoError(t, err)

	return &SMTP{
		Host:    host,
		Port:    port,
		apiURL:  fmt.Sprintf("http://%s:%s/api/v1", host, apiPort.Port()),
		httpCli: &http.Client{},
	}
}

// Message is a captured mail as listed by the Mailpit API.
type Message struct {
	ID      string `json:"ID"`
	Subject string `json:"Subject"`
	To      []struct {
		Address string `json:"Address"`
	} `json:"To"`
	Attachments int `json:"Attachments"`
}

// Messages returns every mail captured so far, newest first.
func (s *SMTP) Messages(t *testing.T) []Message {
	t.Helper()

	res, err := s.httpCli.Get(s.apiURL + "/messages")
	require.NoError(t, err, "failed to list messages")
	defer func() { _ = res.Body.Close() }()
	require.Equal(t, http.StatusOK, res.StatusCode)

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	var list struct {
		Messages []Message `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(body, &list), "failed to unmarshal messages")
	return list.Messages
}
