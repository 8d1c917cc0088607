package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "github.com/illustspace/gsr/pkg/domain-errors"
)

func TestParseMintPolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    MintPolicy
		wantErr bool
	}{
		{in: "", want: MintPolicyOpen},
		{in: "open", want: MintPolicyOpen},
		{in: " Admin ", want: MintPolicyAdmin},
		{in: "allowlist", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMintPolicy(tt.in)
			if tt.wantErr {
				assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateMetadataKey(t *testing.T) {
	assert.NoError(t, ValidateMetadataKey("name"))
	assert.True(t, dErrors.HasCode(ValidateMetadataKey(""), dErrors.CodeValidation))
	assert.True(t, dErrors.HasCode(ValidateMetadataKey(strings.Repeat("k", MaxMetadataKeyLength+1)), dErrors.CodeValidation))
}

func TestSetAdministratorRequest(t *testing.T) {
	req := &SetAdministratorRequest{Administrator: "tz1VSUr8wwNhLAzempoch5d6hLRiTh8Cjcjb"}
	require.NoError(t, req.Validate())
	assert.Equal(t, "tz1VSUr8wwNhLAzempoch5d6hLRiTh8Cjcjb", req.Address().String())

	bad := &SetAdministratorRequest{Administrator: "nope"}
	assert.True(t, dErrors.HasCode(bad.Validate(), dErrors.CodeValidation))
}
