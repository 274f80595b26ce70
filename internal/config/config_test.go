package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddr(t *testing.T) {
	testCases := []struct {
		port string
		want string
	}{
		{"", ":8080"},
		{"9000", ":9000"},
		{"localhost:9000", "localhost:9000"},
	}
	for _, test := range testCases {
		t.Setenv("APP_PORT", test.port)
		assert.Equal(t, test.want, Addr())
	}
}

func TestSessionTTL(t *testing.T) {
	os.Unsetenv("SESSION_TTL")
	ttl, err := SessionTTL()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, ttl)

	t.Setenv("SESSION_TTL", "5m")
	ttl, err = SessionTTL()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, ttl)

	t.Setenv("SESSION_TTL", "soon")
	_, err = SessionTTL()
	assert.Error(t, err)

	t.Setenv("SESSION_TTL", "-1s")
	_, err = SessionTTL()
	assert.Error(t, err)
}

func TestAllowedOrigins(t *testing.T) {
	t.Setenv("CORS_ORIGINS", " https://a.example, ,https://b.example")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, AllowedOrigins())

	t.Setenv("CORS_ORIGINS", "")
	assert.Nil(t, AllowedOrigins())
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("MINES_TEST_VALUE=from-file\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("MINES_TEST_VALUE") })

	require.NoError(t, LoadDotEnv(path, filepath.Join(dir, "missing.env")))
	assert.Equal(t, "from-file", os.Getenv("MINES_TEST_VALUE"))
}

func TestSessionTokens(t *testing.T) {
	j := NewJWTWithSecret([]byte("0123456789abcdef0123"), time.Hour)

	token, err := j.IssueSessionToken("abc")
	require.NoError(t, err)

	claims, err := j.ParseSessionClaims(token)
	require.NoError(t, err)
	assert.Equal(t, "abc", claims.SessionID)
	assert.Equal(t, "abc", claims.Subject)

	other := NewJWTWithSecret([]byte("another-secret-of-length"), time.Hour)
	_, err = other.ParseSessionClaims(token)
	assert.Error(t, err)

	expired := NewJWTWithSecret([]byte("0123456789abcdef0123"), -time.Minute)
	token, err = expired.IssueSessionToken("abc")
	require.NoError(t, err)
	_, err = j.ParseSessionClaims(token)
	assert.Error(t, err)
}

func TestSessionTokenClock(t *testing.T) {
	j := NewJWTWithSecret([]byte("0123456789abcdef0123"), time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	j.SetClock(func() time.Time { return now })

	token, err := j.IssueSessionToken("abc")
	require.NoError(t, err)

	now = now.Add(59 * time.Second)
	_, err = j.ParseSessionClaims(token)
	require.NoError(t, err)

	now = now.Add(2 * time.Second)
	_, err = j.ParseSessionClaims(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestNewJWTRequiresSecret(t *testing.T) {
	t.Setenv("DEVELOPMENT", "0")
	os.Unsetenv("SESSION_SECRET")
	os.Unsetenv("SESSION_SECRET_FILE")
	_, err := NewJWT(time.Hour)
	assert.Error(t, err)

	t.Setenv("SESSION_SECRET", "short")
	_, err = NewJWT(time.Hour)
	assert.Error(t, err)

	t.Setenv("DEVELOPMENT", "1")
	os.Unsetenv("SESSION_SECRET")
	_, err = NewJWT(time.Hour)
	assert.NoError(t, err)
}

func TestSetupLogging(t *testing.T) {
	t.Setenv("DEVELOPMENT", "0")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_FILE", filepath.Join(t.TempDir(), "mines.log"))

	a, b := logrus.New(), logrus.New()
	require.NoError(t, SetupLogging(a, b))
	assert.Equal(t, logrus.WarnLevel, a.GetLevel())
	assert.Equal(t, logrus.WarnLevel, b.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, a.Formatter)
	assert.Len(t, a.Hooks[logrus.WarnLevel], 1)

	t.Setenv("LOG_LEVEL", "loud")
	assert.Error(t, SetupLogging(logrus.New()))
}
