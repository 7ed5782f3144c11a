package commands

import (
	"bytes"
	"context"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/balkashynov/landing/internal/config"
	"github.com/balkashynov/landing/internal/contact"
	"github.com/balkashynov/landing/internal/db"
	"github.com/balkashynov/landing/internal/logger"
	"github.com/balkashynov/landing/internal/theme"
)

func newTestApp(t *testing.T, relayURL string) *app {
	t.Helper()

	conn, err := db.Open(filepath.Join(t.TempDir(), "landing.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := conn.DB()
		_ = sqlDB.Close()
	})

	cfg := config.DefaultConfig()
	cfg.AccessKey = "cli-key"
	cfg.AccessKeySource = config.SourceEnv
	if relayURL != "" {
		cfg.Relay.Endpoint = relayURL
	}

	a := &app{cfg: cfg, log: logger.Nop()}
	a.attach(conn)
	return a
}

// relay answers every submission with body and records the parsed form
func relay(t *testing.T, body string) (*httptest.Server, *[]map[string]string) {
	t.Helper()
	var got []map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if !assert.NoError(t, err) {
			return
		}
		reader := multipart.NewReader(r.Body, params["boundary"])
		form := map[string]string{}
		for {
			part, err := reader.NextPart()
			if err != nil {
				break
			}
			value, _ := io.ReadAll(part)
			form[part.FormName()] = string(value)
		}
		got = append(got, form)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &got
}

func TestRunTheme_ShowsDefault(t *testing.T) {
	a := newTestApp(t, "")
	var out bytes.Buffer

	require.NoError(t, runTheme(&out, a, nil))
	assert.Equal(t, "Current theme: light\n", out.String())
}

func TestRunTheme_SetAndToggleArePersisted(t *testing.T) {
	a := newTestApp(t, "")
	var out bytes.Buffer

	require.NoError(t, runTheme(&out, a, []string{"dark"}))
	stored, ok, err := a.store.Get(theme.StorageKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "dark", stored)

	require.NoError(t, runTheme(&out, a, []string{"toggle"}))
	stored, _, _ = a.store.Get(theme.StorageKey)
	assert.Equal(t, "light", stored)
	assert.Contains(t, out.String(), "Theme set to light")
}

func TestRunTheme_RejectsUnknown(t *testing.T) {
	a := newTestApp(t, "")
	err := runTheme(io.Discard, a, []string{"sepia"})
	assert.Error(t, err)

	_, ok, _ := a.store.Get(theme.StorageKey)
	assert.False(t, ok)
}

func TestRunDirectContact_Success(t *testing.T) {
	srv, got := relay(t, `{"success":true,"message":"Email sent"}`)
	a := newTestApp(t, srv.URL)
	var out bytes.Buffer

	err := runDirectContact(context.Background(), &out, a, map[string]string{
		contact.FieldName:  "Ada",
		contact.FieldEmail: "ada@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "✅ "+contact.DefaultSuccessMessage+"\n", out.String())
	require.Len(t, *got, 1)
	assert.Equal(t, map[string]string{
		contact.FieldName:      "Ada",
		contact.FieldEmail:     "ada@example.com",
		contact.FieldMessage:   "",
		contact.FieldAccessKey: "cli-key",
	}, (*got)[0])
}

func TestRunDirectContact_RejectionIsPrinted(t *testing.T) {
	srv, _ := relay(t, `{"success":false,"message":"Invalid key"}`)
	a := newTestApp(t, srv.URL)
	var out bytes.Buffer

	err := runDirectContact(context.Background(), &out, a, map[string]string{
		contact.FieldName:    "Ada",
		contact.FieldEmail:   "ada@example.com",
		contact.FieldMessage: "Hi",
	})
	require.NoError(t, err)
	assert.Equal(t, "❌ Invalid key\n", out.String())
}

func TestMissingRequired(t *testing.T) {
	assert.Equal(t, []string{"--name", "--email"}, missingRequired(map[string]string{}))
	assert.Equal(t, []string{"--email"}, missingRequired(map[string]string{contact.FieldName: "Ada"}))
	assert.Empty(t, missingRequired(map[string]string{
		contact.FieldName:  "Ada",
		contact.FieldEmail: "a@b.c",
	}))
}

func TestContactFlagFields(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().StringP("name", "n", "", "")
	cmd.Flags().StringP("email", "e", "", "")
	cmd.Flags().StringP("message", "m", "", "")
	require.NoError(t, cmd.Flags().Parse([]string{"-n", "Ada", "-m", "Hello"}))

	assert.Equal(t, map[string]string{
		contact.FieldName:    "Ada",
		contact.FieldMessage: "Hello",
	}, contactFlagFields(cmd))
}

func TestKeyCommands(t *testing.T) {
	keyring.MockInit()
	var out bytes.Buffer

	require.NoError(t, runKeySet(&out, "  abcdef123456  "))
	assert.Contains(t, out.String(), "****3456")

	stored, err := config.LoadAccessKey()
	require.NoError(t, err)
	assert.Equal(t, "abcdef123456", stored)

	out.Reset()
	require.NoError(t, runKeyDelete(&out))
	assert.Contains(t, out.String(), "removed")

	out.Reset()
	require.NoError(t, runKeyDelete(&out))
	assert.Equal(t, "No access key in keyring\n", out.String())

	assert.Error(t, runKeySet(&out, "   "))
}

func TestRunKeyShow(t *testing.T) {
	var out bytes.Buffer
	cfg := config.DefaultConfig()

	runKeyShow(&out, cfg)
	assert.Contains(t, out.String(), "No access key configured")

	out.Reset()
	cfg.AccessKey = "abcdef123456"
	cfg.AccessKeySource = config.SourceKeyring
	runKeyShow(&out, cfg)
	assert.Equal(t, "Access key: ****3456 (from keyring)\n", out.String())
}

func TestReadKey(t *testing.T) {
	key, err := readKey(strings.NewReader("secret-key\n"))
	require.NoError(t, err)
	assert.Equal(t, "secret-key", key)

	key, err = readKey(strings.NewReader("no-newline"))
	require.NoError(t, err)
	assert.Equal(t, "no-newline", key)
}

func TestVersionAndHelp(t *testing.T) {
	SetVersion("1.2.3", "abc", "today")
	t.Cleanup(func() { SetVersion("dev", "none", "unknown") })

	var out bytes.Buffer
	versionCmd.SetOut(&out)
	versionCmd.Run(versionCmd, nil)
	assert.Equal(t, "landing 1.2.3 (commit abc, built today)\n", out.String())

	out.Reset()
	showCustomHelp(&out)
	assert.Contains(t, out.String(), config.EnvAccessKey)
	assert.Contains(t, out.String(), "landing contact")
}
