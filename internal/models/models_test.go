package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestValidation(t *testing.T) {
	tests := []struct {
		name    string
		req     interface{ Validate() error }
		wantErr bool
	}{
		{"sports ok", &SportsRequest{Username: "u", Password: "p"}, false},
		{"sports missing password", &SportsRequest{Username: "u"}, true},
		{"sports missing username", &SportsRequest{Password: "p"}, true},
		{"events ok", &EventsRequest{Username: "u", Password: "p", Sport: "Swimming - Boys"}, false},
		{"events missing sport", &EventsRequest{Username: "u", Password: "p"}, true},
		{"submit ok", &SubmitRequest{
			Username: "u", Password: "p",
			Sport: "Swimming - Boys", EventDate: "12/4 4:00pm",
		}, false},
		{"submit missing event date", &SubmitRequest{
			Username: "u", Password: "p", Sport: "Swimming - Boys",
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSubmitRequestEmptyResultSetIsValid(t *testing.T) {
	req := &SubmitRequest{
		Username:  "u",
		Password:  "p",
		Sport:     "Swimming - Boys",
		EventDate: "12/4 4:00pm",
		Data:      []RaceResult{},
	}
	assert.NoError(t, req.Validate())
}

func TestRaceResultValidation(t *testing.T) {
	rr := &RaceResult{
		Race: "200 MR",
		Results: []ResultItem{
			{Swimmers: []string{"A B", "C D", "E F", "G H"}, Place: 1, Time: "1:45.20"},
		},
	}
	assert.NoError(t, rr.Validate())

	assert.Error(t, (&RaceResult{}).Validate())
}

func TestSubmitRequestJSONShape(t *testing.T) {
	body := `{
		"username": "coach",
		"password": "hunter2",
		"sport": "Swimming - Boys",
		"eventDate": "12/4 4:00pm",
		"requestId": "abc-123",
		"data": [
			{"race": "200 Free", "results": [
				{"swimmers": ["John Smith"], "place": 1, "time": "1:23.45"}
			]}
		]
	}`

	var req SubmitRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	assert.Equal(t, "abc-123", req.CorrelationID)
	require.Len(t, req.Data, 1)
	assert.Equal(t, "200 Free", req.Data[0].Race)
	require.Len(t, req.Data[0].Results, 1)
	assert.Equal(t, []string{"John Smith"}, req.Data[0].Results[0].Swimmers)
}
