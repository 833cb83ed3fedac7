package val_test

import (
	"testing"

	"github.com/code19m/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rise-and-shine/filestorage/internal/val"
)

type pathParams struct {
	FileID  int64  `params:"file_id"  validate:"gt=0"`
	DirName string `params:"dir_name" validate:"omitempty,path_element"`
}

func TestValidateSchema(t *testing.T) {
	tests := []struct {
		name       string
		in         pathParams
		wantFields map[string]string
	}{
		{
			name: "valid",
			in:   pathParams{FileID: 1, DirName: "docs"},
		},
		{
			name: "empty dir is allowed",
			in:   pathParams{FileID: 1},
		},
		{
			name:       "non positive id",
			in:         pathParams{FileID: 0, DirName: "docs"},
			wantFields: map[string]string{"file_id": "Must be greater than 0"},
		},
		{
			name: "traversal",
			in:   pathParams{FileID: 3, DirName: ".."},
			wantFields: map[string]string{
				"dir_name": "Must be a single path element without separators",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := val.ValidateSchema(&tc.in)
			if tc.wantFields == nil {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			e := errx.AsErrorX(err)
			assert.Equal(t, val.CodeValidationFailed, e.Code())
			assert.Equal(t, errx.T_Validation, e.Type())
			for k, v := range tc.wantFields {
				assert.Equal(t, v, e.Fields()[k])
			}
		})
	}
}

func TestPathElement(t *testing.T) {
	tests := map[string]bool{
		"report.txt":  true,
		"Звіт.txt":    true,
		".":           true,
		"":            false,
		"..":          false,
		"a/b":         false,
		`a\b`:         false,
		"nul\x00byte": false,
	}

	for name, want := range tests {
		assert.Equal(t, want, val.PathElement(name), name)
	}
}
