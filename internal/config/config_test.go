package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "folio_db", cfg.DBName)
	assert.Equal(t, 10080, cfg.TokenTTLMinutes)
	assert.Equal(t, 10, cfg.OTPTTLMinutes)
	assert.Equal(t, "smtp.gmail.com", cfg.SMTPHost)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.False(t, cfg.UseMemoryStore)
}

func TestLoad_StripsSpacesFromSMTPPassword(t *testing.T) {
	// Gmail app passwords render with spaces in the Google UI.
	t.Setenv("SMTP_PASSWORD", "abcd efgh ijkl mnop")
	t.Setenv("SMTP_EMAIL", "folio@example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "abcdefghijklmnop", cfg.SMTPPassword)
	assert.True(t, cfg.MailConfigured())
}

func TestMailConfigured_RequiresBothCredentials(t *testing.T) {
	t.Setenv("SMTP_EMAIL", "folio@example.com")
	t.Setenv("SMTP_PASSWORD", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.MailConfigured())
}
