package validation

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"gopkg.in/go-playground/validator.v9"

	"github.com/openrds/depositsync/internal/domain/research"
)

type holder struct {
	Index research.Index `json:"index" binding:"required,researchIndex"`
}

func TestResearchIndexValidator(t *testing.T) {
	SetUpValidators()
	engine, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		t.Fatal("gin binding validator engine is not validator.v9")
	}
	tests := []struct {
		name    string
		index   string
		wantErr bool
	}{
		{
			name:    "valid index",
			index:   "42",
			wantErr: false,
		},
		{
			name:    "valid named index",
			index:   "project-abc",
			wantErr: false,
		},
		{
			name:    "index with slash",
			index:   "a/b",
			wantErr: true,
		},
		{
			name:    "index with space",
			index:   "a b",
			wantErr: true,
		},
		{
			name:    "empty index",
			index:   "",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := engine.Struct(holder{Index: research.Index(tt.index)})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
