package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDueDateUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    *time.Time
		wantErr bool
	}{
		{
			name:  "date only becomes start of day UTC",
			input: `"2026-09-15"`,
			want:  timePtr(time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)),
		},
		{
			name:  "rfc3339 kept as-is",
			input: `"2026-09-15T10:30:00Z"`,
			want:  timePtr(time.Date(2026, 9, 15, 10, 30, 0, 0, time.UTC)),
		},
		{name: "null means unset", input: `null`, want: nil},
		{name: "empty string means unset", input: `""`, want: nil},
		{name: "garbage rejected", input: `"next tuesday"`, wantErr: true},
		{name: "number rejected", input: `1757894400`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d DueDate
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.want == nil {
				assert.Nil(t, d.Ptr())
				return
			}
			require.NotNil(t, d.Ptr())
			assert.True(t, tt.want.Equal(*d.Ptr()))
		})
	}
}

func timePtr(t time.Time) *time.Time { return &t }
