package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IrfanSethi/WikiTalk/internal/core/domain"
)

func TestSessionList_Empty(t *testing.T) {
	withFakeServices(t, &fakeChatService{}, &fakeSessionService{})

	out, err := runCommand(t, "session", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No sessions yet")
}

func TestSessionList_ShowsArticles(t *testing.T) {
	sessions := &fakeSessionService{sessions: []domain.Session{
		{ID: "s1", Name: "Turing", Language: "en", ArticleTitle: "Alan Turing"},
		{ID: "s2", Name: "Fresh", Language: "de"},
	}}
	withFakeServices(t, &fakeChatService{}, sessions)

	out, err := runCommand(t, "session", "list")
	require.NoError(t, err)

	assert.Contains(t, out, "Alan Turing")
	assert.Contains(t, out, "(no article)")
	assert.Contains(t, out, "[de]")
}

func TestSessionNew(t *testing.T) {
	withFakeServices(t, &fakeChatService{}, &fakeSessionService{})
	t.Cleanup(func() { sessionNewLanguage = "" })

	out, err := runCommand(t, "session", "new", "My research", "--language", "de")
	require.NoError(t, err)
	assert.Contains(t, out, `Created session "My research"`)
}

func TestSessionSelect(t *testing.T) {
	withFakeServices(t, &fakeChatService{}, &fakeSessionService{})

	out, err := runCommand(t, "session", "select", "s1", "Alan Turing")
	require.NoError(t, err)
	assert.Contains(t, out, `"Alan Turing"`)
}

func TestSessionError_MapsNotFound(t *testing.T) {
	err := sessionError("missing", domain.ErrNotFound)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no session with ID "missing"`)
}
