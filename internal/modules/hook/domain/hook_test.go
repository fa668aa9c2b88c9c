package domain_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focustrack/internal/modules/hook/domain"
)

func validManifest() domain.Manifest {
	return domain.Manifest{
		Name:    "csvsink",
		Version: "1.0.0",
		Binary:  "/opt/hooks/csvsink",
		SHA256:  strings.Repeat("a", 64),
		Enabled: true,
		Events:  []string{domain.EventSessionRecorded},
	}
}

func TestManifestValidate(t *testing.T) {
	t.Parallel()
	cases := map[string]func(m *domain.Manifest){
		"missing name":     func(m *domain.Manifest) { m.Name = "" },
		"missing version":  func(m *domain.Manifest) { m.Version = "" },
		"missing binary":   func(m *domain.Manifest) { m.Binary = "" },
		"uppercase sha":    func(m *domain.Manifest) { m.SHA256 = strings.Repeat("A", 64) },
		"short sha":        func(m *domain.Manifest) { m.SHA256 = "abc" },
		"no events":        func(m *domain.Manifest) { m.Events = nil },
		"unknown event":    func(m *domain.Manifest) { m.Events = []string{"timer_started"} },
		"duplicate event":  func(m *domain.Manifest) { m.Events = []string{"session_cleared", "session_cleared"} },
		"negative timeout": func(m *domain.Manifest) { m.TimeoutMS = -1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			m := validManifest()
			mutate(&m)
			assert.Error(t, m.Validate())
		})
	}
	require.NoError(t, validManifest().Validate())
}

func TestManifestTimeoutDefaultsAndCaps(t *testing.T) {
	t.Parallel()
	m := validManifest()
	assert.Equal(t, domain.DefaultTimeout, m.Timeout())
	m.TimeoutMS = 1500
	assert.Equal(t, 1500*time.Millisecond, m.Timeout())
	m.TimeoutMS = 120000
	assert.Equal(t, domain.MaxTimeout, m.Timeout())
}

func TestManifestSubscribes(t *testing.T) {
	t.Parallel()
	m := validManifest()
	assert.True(t, m.Subscribes(domain.EventSessionRecorded))
	assert.False(t, m.Subscribes(domain.EventSessionCleared))
}

func TestEventValidate(t *testing.T) {
	t.Parallel()
	assert.Error(t, domain.Event{Name: domain.EventSessionRecorded}.Validate())
	assert.NoError(t, domain.Event{Name: domain.EventSessionCleared}.Validate())
	assert.NoError(t, domain.Event{Name: domain.EventSessionRecorded, Session: &domain.Session{ID: "s1"}}.Validate())
	assert.Error(t, domain.Event{Name: "bogus"}.Validate())
}
