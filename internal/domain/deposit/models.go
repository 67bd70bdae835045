package deposit

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/openrds/depositsync/internal/domain/research"
	"github.com/openrds/depositsync/internal/domain/user"
)

// Port disambiguates a Deposit instance within a (user, research index)
// scope. The remote service sends it as either a JSON number or a string, so
// we canonicalise to the string form and compare by value from there on.
type Port string

// PortFromValue canonicalises a decoded JSON value into a Port.
//
// Returns an UnsupportedPortValue error for anything that is not a string or
// a number.
func PortFromValue(v interface{}) (*Port, error) {
	switch typed := v.(type) {
	case string:
		p := Port(typed)
		return &p, nil
	case json.Number:
		p := Port(typed.String())
		return &p, nil
	case float64:
		p := Port(strconv.FormatFloat(typed, 'f', -1, 64))
		return &p, nil
	case int:
		p := Port(strconv.Itoa(typed))
		return &p, nil
	default:
		return nil, &UnsupportedPortValue{Value: v}
	}
}

type UnsupportedPortValue struct {
	Value interface{}
}

func (u *UnsupportedPortValue) Error() string {
	return fmt.Sprintf("Port value is neither string nor number: [%v]", u.Value)
}

// Fields is the arbitrary JSON object holding a Deposit's descriptive
// metadata. Its shape is governed by the remote schema document; this
// component relays it without validating.
type Fields map[string]interface{}

// A Deposit is a single metadata record mirrored in the remote research-data
// repository. It is a DTO: built per remote read or write, never persisted
// locally.
type Deposit struct {
	UserId        user.Id
	ResearchIndex research.Index
	Port          Port
	Fields        Fields
}

// Schema is the JSON Schema document that Deposit Fields payloads must
// satisfy. Raw is relayed verbatim to callers for client-side validation;
// KernelVersion is lifted out of the payload for observability only.
type Schema struct {
	Raw           json.RawMessage
	KernelVersion string
}
