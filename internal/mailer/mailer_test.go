package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"blogiq/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrevoMailerSend(t *testing.T) {
	var got brevoRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "brevo-key", r.Header.Get("api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"messageId":"<1@brevo>"}`))
	}))
	defer server.Close()

	m := NewBrevoMailer(config.MailConfig{
		BrevoURL: server.URL, BrevoAPIKey: "brevo-key",
		SenderEmail: "admin@blogiq.example", SenderName: "BlogIQ Admin",
	})

	err := m.Send(context.Background(), Message{ToEmail: "ada@example.com", ToName: "Ada", Subject: "Hi", HTML: "<p>hi</p>"})
	require.NoError(t, err)
	assert.Equal(t, "admin@blogiq.example", got.Sender.Email)
	assert.Equal(t, []contact{{Email: "ada@example.com", Name: "Ada"}}, got.To)
	assert.Equal(t, "<p>hi</p>", got.HTMLContent)
}

func TestBrevoMailerErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"code":"unauthorized"}`))
	}))
	defer server.Close()

	m := NewBrevoMailer(config.MailConfig{BrevoURL: server.URL, BrevoAPIKey: "bad", SenderEmail: "a@b.c"})
	err := m.Send(context.Background(), Message{ToEmail: "x@y.z"})
	assert.EqualError(t, err, `brevo returned status 401: {"code":"unauthorized"}`)
}

func TestNewSelectsProvider(t *testing.T) {
	_, err := New(config.MailConfig{Provider: "brevo"})
	assert.Error(t, err)

	m, err := New(config.MailConfig{Provider: "smtp", SenderEmail: "a@b.c", SMTPHost: "smtp-relay.brevo.com", SMTPPort: "587"})
	require.NoError(t, err)
	assert.IsType(t, &SMTPMailer{}, m)

	_, err = New(config.MailConfig{Provider: "pigeon", SenderEmail: "a@b.c"})
	assert.EqualError(t, err, `unknown mail provider "pigeon"`)
}

func TestSMTPBuildMessage(t *testing.T) {
	m := NewSMTPMailer(config.MailConfig{SMTPHost: "h", SenderEmail: "admin@blogiq.example", SenderName: "BlogIQ"})
	raw := string(m.buildMessage(Message{ToEmail: "ada@example.com", Subject: "Hello", HTML: "<p>x</p>"}))

	assert.Contains(t, raw, "From: BlogIQ <admin@blogiq.example>\r\n")
	assert.Contains(t, raw, "To: ada@example.com\r\n")
	assert.Contains(t, raw, "Content-Type: text/html; charset=\"UTF-8\"\r\n")
	assert.True(t, strings.HasSuffix(raw, "\r\n\r\n<p>x</p>"))
}

func TestTemplates(t *testing.T) {
	tpl := NewTemplates("BlogIQ", "https://blogiq.example")

	msg, err := tpl.PostApproved("Ada", "Engines & <Analytics>", "/blog/engines/details/42")
	require.NoError(t, err)
	assert.Equal(t, "Your blog post has been approved!", msg.Subject)
	assert.Contains(t, msg.HTML, `href="https://blogiq.example/blog/engines/details/42"`)
	assert.Contains(t, msg.HTML, "Engines &amp; &lt;Analytics&gt;")

	msg, err = tpl.PostRejected("Ada", "Spam post", "spam")
	require.NoError(t, err)
	assert.Contains(t, msg.HTML, "spam")

	msg, err = tpl.PostRejected("Ada", "Spam post", "")
	require.NoError(t, err)
	assert.Contains(t, msg.HTML, "category tags and featured images")

	msg, err = tpl.CreatorApproved("Ada")
	require.NoError(t, err)
	assert.Contains(t, msg.HTML, "Congratulations, Ada!")

	msg, err = tpl.CreatorRejected("Ada")
	require.NoError(t, err)
	assert.Equal(t, "Update on your BlogIQ Creator Application", msg.Subject)
}
