package status

import (
	"testing"
)

func TestIconFor(t *testing.T) {
	tests := []struct {
		name   string
		arg    Type
		want   Icon
		wantOk bool
	}{
		{
			name:   "success",
			arg:    Success,
			want:   "check circle",
			wantOk: true,
		},
		{
			name:   "error",
			arg:    Error,
			want:   "times circle",
			wantOk: true,
		},
		{
			name:   "warning",
			arg:    Warning,
			want:   "exclamation triangle",
			wantOk: true,
		},
		{
			name:   "unknown type",
			arg:    Type("progress"),
			want:   "",
			wantOk: false,
		},
		{
			name:   "empty type",
			arg:    Type(""),
			want:   "",
			wantOk: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := IconFor(tt.arg)
			if got != tt.want || ok != tt.wantOk {
				t.Errorf("IconFor() = (%v, %v), want (%v, %v)", got, ok, tt.want, tt.wantOk)
			}
		})
	}
}
