package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyToken(t *testing.T) {
	token := GenerateToken("purpose", 1700000000, "secret")
	assert.True(t, VerifyToken("purpose", 1700000000, token, "secret"))
	assert.False(t, VerifyToken("purpose", 1700000001, token, "secret"))
	assert.False(t, VerifyToken("purpose", 1700000000, token, "other"))
}

func TestState(t *testing.T) {
	now := time.Unix(1700000000, 0)
	state := NewState(now, 10*time.Minute, "secret")

	tests := []struct {
		name   string
		state  string
		now    time.Time
		secret string
		want   bool
	}{
		{name: "valid", state: state, now: now, secret: "secret", want: true},
		{name: "expired", state: state, now: now.Add(11 * time.Minute), secret: "secret", want: false},
		{name: "wrong secret", state: state, now: now, secret: "other", want: false},
		{name: "tampered expiry", state: "1800000000" + state[strings.Index(state, "."):], now: now, secret: "secret", want: false},
		{name: "garbage", state: "not-a-state", now: now, secret: "secret", want: false},
		{name: "non-numeric expiry", state: "abc.def", now: now, secret: "secret", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VerifyState(tt.state, tt.now, tt.secret))
		})
	}
}

func TestSessionRoundTrip(t *testing.T) {
	now := time.Now()
	user := SessionUser{VKID: 42, Name: "Иван Петров", Avatar: "https://vk.example/a.jpg", ScreenName: "ivan"}

	token, err := IssueSession(user, now, "secret")
	require.NoError(t, err)

	got, err := ParseSession(token, now.Add(time.Hour), "secret")
	require.NoError(t, err)
	assert.Equal(t, user, got)
}

func TestParseSessionRejects(t *testing.T) {
	now := time.Now()
	token, err := IssueSession(SessionUser{VKID: 1, Name: "A"}, now, "secret")
	require.NoError(t, err)

	_, err = ParseSession(token, now, "other")
	assert.ErrorIs(t, err, ErrInvalidSession)

	_, err = ParseSession(token, now.Add(SessionTTL+time.Minute), "secret")
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestIssueSessionRequiresSecret(t *testing.T) {
	_, err := IssueSession(SessionUser{VKID: 1}, time.Now(), "")
	require.Error(t, err)
}
