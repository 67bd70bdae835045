package research

import (
	"fmt"
	"strings"
)

// Index identifies the research project/container a Deposit belongs to
type Index string

// Index values get interpolated into remote URL paths, so anything that
// could change the meaning of a path is rejected up front.
var invalidChars = `\/*?"<>|#, `

// IndexFromString takes a string and returns an Index if valid, otherwise returns an
// InvalidIndex error.
func IndexFromString(s string) (*Index, error) {
	var errs []error

	if len(s) == 0 {
		errs = append(errs, fmt.Errorf("empty string"))
	}
	if strings.ContainsAny(s, invalidChars) {
		errs = append(errs, fmt.Errorf("contains invalid chars [%v]", invalidChars))
	}
	if s == "." || s == ".." {
		errs = append(errs, fmt.Errorf("equal to illegal string sequence [%v]", s))
	}
	if len(errs) == 0 {
		idx := Index(s)
		return &idx, nil
	} else {
		return nil, &InvalidIndex{
			Errors: errs,
		}
	}
}

type InvalidIndex struct {
	Errors []error
}

func (i *InvalidIndex) Error() string {
	return fmt.Sprintf("Illegal research Index: [%v]", i.Errors)
}
