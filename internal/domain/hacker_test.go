package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplicationResumeKey(t *testing.T) {
	tests := []struct {
		name    string
		app     Application
		wantKey string
		wantOK  bool
	}{
		{name: "nil application", app: nil},
		{name: "no portfolio", app: Application{"essay": "hi"}},
		{name: "portfolio wrong type", app: Application{"portfolioURL": "https://x"}},
		{name: "no resume", app: Application{"portfolioURL": map[string]any{"github": "gh"}}},
		{name: "resume wrong type", app: Application{"portfolioURL": map[string]any{"resume": 42}}},
		{name: "empty resume", app: Application{"portfolioURL": map[string]any{"resume": ""}}},
		{
			name:    "resume present",
			app:     Application{"portfolioURL": map[string]any{"resume": "resumes/1-abc"}},
			wantKey: "resumes/1-abc",
			wantOK:  true,
		},
		{
			name:    "nested application value",
			app:     Application{"portfolioURL": Application{"resume": "resumes/2-abc"}},
			wantKey: "resumes/2-abc",
			wantOK:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, ok := tt.app.ResumeKey()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantKey, key)
		})
	}
}

func TestHackerPatchIsEmpty(t *testing.T) {
	assert.True(t, HackerPatch{}.IsEmpty())

	status := HackerStatusAccepted
	assert.False(t, HackerPatch{Status: &status}.IsEmpty())
	assert.False(t, HackerPatch{Application: Application{}}.IsEmpty())
}

func TestApplicationWithoutResumeKey(t *testing.T) {
	tests := []struct {
		name string
		app  Application
		want Application
	}{
		{name: "nil application", app: nil, want: nil},
		{name: "no portfolio", app: Application{"essay": "hi"}, want: Application{"essay": "hi"}},
		{
			name: "resume among other links",
			app:  Application{"essay": "hi", "portfolioURL": map[string]any{"github": "gh", "resume": "resumes/1-other"}},
			want: Application{"essay": "hi", "portfolioURL": map[string]any{"github": "gh"}},
		},
		{
			name: "resume is the only link",
			app:  Application{"essay": "hi", "portfolioURL": map[string]any{"resume": "resumes/1-other"}},
			want: Application{"essay": "hi"},
		},
		{name: "nothing left", app: Application{"portfolioURL": Application{"resume": "x"}}, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.app.WithoutResumeKey())
		})
	}
}

func TestApplicationWithoutResumeKey_LeavesInputUntouched(t *testing.T) {
	app := Application{"portfolioURL": map[string]any{"github": "gh", "resume": "resumes/1-h1"}}

	_ = app.WithoutResumeKey()

	key, ok := app.ResumeKey()
	assert.True(t, ok)
	assert.Equal(t, "resumes/1-h1", key)
}
