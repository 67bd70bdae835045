package deposit

import (
	"fmt"
	"testing"

	"github.com/openrds/depositsync/internal/domain/research"
)

func TestNotFound_Error(t *testing.T) {
	type fields struct {
		Port          Port
		ResearchIndex string
	}
	tests := []struct {
		name   string
		fields fields
		want   string
	}{
		{
			name: "error string",
			fields: fields{
				Port:          "2",
				ResearchIndex: "42",
			},
			want: "Could not find a deposit for port [2] in research index [42]",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NotFound{
				Port:          tt.fields.Port,
				ResearchIndex: research.Index(tt.fields.ResearchIndex),
			}
			if got := e.Error(); got != tt.want {
				t.Errorf("Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRemoteRejected_Error(t *testing.T) {
	e := RemoteRejected{StatusCode: 500, Body: "boom"}
	want := "Remote metadata service rejected the request: status [500], body [boom]"
	if got := e.Error(); got != want {
		t.Errorf("Error() = %v, want %v", got, want)
	}
}

func TestMalformedResponse_Error(t *testing.T) {
	e := MalformedResponse{Reason: "missing list"}
	want := "Remote metadata service returned an unexpected body: [missing list]"
	if got := e.Error(); got != want {
		t.Errorf("Error() = %v, want %v", got, want)
	}
}

func TestTransportFailure_Unwrap(t *testing.T) {
	underlying := fmt.Errorf("connection refused")
	e := TransportFailure{Underlying: underlying}
	if got := e.Unwrap(); got != underlying {
		t.Errorf("Unwrap() = %v, want %v", got, underlying)
	}
	if len(e.Error()) == 0 {
		t.Error("Error() should not be empty")
	}
}
