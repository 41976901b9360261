package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportForm_CountAcceptsStringsAndNumbers(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Count
	}{
		{name: "string", body: `{"jumlah_awal":"12"}`, want: "12"},
		{name: "number", body: `{"jumlah_awal":12}`, want: "12"},
		{name: "negative number", body: `{"jumlah_awal":-3}`, want: "-3"},
		{name: "fraction kept for validation", body: `{"jumlah_awal":1.5}`, want: "1.5"},
		{name: "null", body: `{"jumlah_awal":null}`, want: ""},
		{name: "absent", body: `{}`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f ReportForm
			require.NoError(t, json.Unmarshal([]byte(tt.body), &f))
			assert.Equal(t, tt.want, f.InitialCount)
		})
	}
}

func TestReportForm_CountRejectsOtherTypes(t *testing.T) {
	var f ReportForm
	assert.Error(t, json.Unmarshal([]byte(`{"jumlah_awal":true}`), &f))
	assert.Error(t, json.Unmarshal([]byte(`{"jumlah_awal":[1]}`), &f))
}
