package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackforge/hackathon-service/internal/domain"
)

func TestCreateHackerRequest_NeedsBusForms(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    bool
		wantErr bool
	}{
		{name: "bool true", body: `{"needsBus": true}`, want: true},
		{name: "string true", body: `{"needsBus": "true"}`, want: true},
		{name: "string false", body: `{"needsBus": "false"}`, want: false},
		{name: "absent", body: `{}`, want: false},
		{name: "garbage", body: `{"needsBus": "maybe"}`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req CreateHackerRequest
			err := json.Unmarshal([]byte(tt.body), &req)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, bool(req.NeedsBus))
		})
	}
}

func TestUpdateHackerRequest_IgnoresIDs(t *testing.T) {
	var req UpdateHackerRequest
	require.NoError(t, json.Unmarshal([]byte(`{"id":"other","accountId":"a2","school":"McGill","status":"Accepted"}`), &req))

	patch := req.Patch()
	require.NotNil(t, patch.School)
	assert.Equal(t, "McGill", *patch.School)
	require.NotNil(t, patch.Status)
	assert.Equal(t, domain.HackerStatusAccepted, *patch.Status)
	assert.Nil(t, patch.NeedsBus)
}

func TestUpdateHackerRequest_DropsResumeKey(t *testing.T) {
	var req UpdateHackerRequest
	require.NoError(t, json.Unmarshal([]byte(`{"application":{"essay":"hi","portfolioURL":{"github":"gh","resume":"resumes/1-other"}}}`), &req))

	patch := req.Patch()

	assert.Equal(t, domain.Application{"essay": "hi", "portfolioURL": map[string]any{"github": "gh"}}, patch.Application)
	_, ok := patch.Application.ResumeKey()
	assert.False(t, ok)
}

func TestUpdateHackerRequest_BlankStatusIsAbsent(t *testing.T) {
	for _, body := range []string{`{"school":"McGill","status":""}`, `{"school":"McGill","status":"  "}`, `{"school":"McGill","status":null}`} {
		var req UpdateHackerRequest
		require.NoError(t, json.Unmarshal([]byte(body), &req))

		patch := req.Patch()
		assert.Nil(t, patch.Status, body)
		require.NotNil(t, patch.School)
	}
}
