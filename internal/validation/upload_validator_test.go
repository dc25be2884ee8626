package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"wealthgap/internal/shared/testutil"
)

func TestUploadValidator(t *testing.T) {
	v := NewUploadValidator(testutil.NewTestLogger(t), 1024, []string{".csv", ".xlsx"})

	tests := []struct {
		name     string
		filename string
		size     int64
		wantErr  string
	}{
		{name: "valid csv", filename: "poverty.csv", size: 100},
		{name: "valid xlsx", filename: "poverty.xlsx", size: 1024},
		{name: "extension case insensitive", filename: "POVERTY.CSV", size: 100},
		{name: "no filename", filename: "", size: 100, wantErr: "no filename"},
		{name: "empty file", filename: "poverty.csv", size: 0, wantErr: "is empty"},
		{name: "too large", filename: "poverty.csv", size: 2048, wantErr: "exceeds"},
		{name: "bad extension", filename: "poverty.exe", size: 100, wantErr: "not supported"},
		{name: "no extension", filename: "poverty", size: 100, wantErr: "not supported"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.filename, tt.size)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestUploadValidatorTooLargeSentinel(t *testing.T) {
	v := NewUploadValidator(testutil.NewTestLogger(t), 1024, []string{".csv"})

	err := v.Validate("poverty.csv", 2048)
	assert.ErrorIs(t, err, ErrTooLarge)

	// Other rejections are not size failures.
	assert.NotErrorIs(t, v.Validate("poverty.exe", 100), ErrTooLarge)
}

func TestUploadValidatorNoExtensionFilter(t *testing.T) {
	v := NewUploadValidator(nil, 0, nil)

	// Without an allow-list or size cap anything non-empty passes.
	assert.NoError(t, v.Validate("anything.bin", 1<<30))
}
