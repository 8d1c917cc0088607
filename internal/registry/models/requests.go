package models

import (
	"fmt"

	id "github.com/illustspace/gsr/pkg/domain"
	dErrors "github.com/illustspace/gsr/pkg/domain-errors"
)

// ClaimRequest is one element of a mint request body. Metadata values are
// carried as text and accepted as raw bytes.
type ClaimRequest struct {
	SecondaryAddress string            `json:"secondary_address"`
	Metadata         map[string]string `json:"metadata,omitempty"`
}

// MintRequest is the body of POST /registry/mint.
type MintRequest struct {
	Claims []ClaimRequest `json:"claims"`

	parsed []Claim
}

func (r *MintRequest) Validate() error {
	if len(r.Claims) == 0 {
		return dErrors.New(dErrors.CodeBadRequest, "claims must contain at least one entry")
	}
	if len(r.Claims) > MaxClaimsPerBatch {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("at most %d claims per request", MaxClaimsPerBatch))
	}
	parsed := make([]Claim, 0, len(r.Claims))
	for i, c := range r.Claims {
		secondary, err := id.ParseSecondaryAddress(c.SecondaryAddress)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeValidation, fmt.Sprintf("claims[%d].secondary_address: %s", i, dErrors.Message(err)))
		}
		var md map[string][]byte
		if len(c.Metadata) > 0 {
			md = make(map[string][]byte, len(c.Metadata))
			for k, v := range c.Metadata {
				md[k] = []byte(v)
			}
		}
		parsed = append(parsed, Claim{SecondaryAddress: secondary, Metadata: md})
	}
	r.parsed = parsed
	return nil
}

// ToClaims returns the claims parsed by Validate.
func (r *MintRequest) ToClaims() []Claim {
	return r.parsed
}

type BalanceOfEntry struct {
	Owner   string `json:"owner"`
	TokenID uint64 `json:"token_id"`
}

// BalanceOfRequest is the body of POST /registry/balance_of.
type BalanceOfRequest struct {
	Requests []BalanceOfEntry `json:"requests"`

	parsed []BalanceRequest
}

// MaxBalanceRequests bounds one balance_of call.
const MaxBalanceRequests = 100

func (r *BalanceOfRequest) Validate() error {
	if len(r.Requests) == 0 {
		return dErrors.New(dErrors.CodeBadRequest, "requests must contain at least one entry")
	}
	if len(r.Requests) > MaxBalanceRequests {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("at most %d requests per call", MaxBalanceRequests))
	}
	parsed := make([]BalanceRequest, 0, len(r.Requests))
	for i, e := range r.Requests {
		owner, err := id.ParsePrimaryAddress(e.Owner)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeValidation, fmt.Sprintf("requests[%d].owner: %s", i, dErrors.Message(err)))
		}
		if e.TokenID == 0 {
			return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("requests[%d].token_id must be positive", i))
		}
		parsed = append(parsed, BalanceRequest{Owner: owner, TokenID: id.TokenID(e.TokenID)})
	}
	r.parsed = parsed
	return nil
}

func (r *BalanceOfRequest) ToRequests() []BalanceRequest {
	return r.parsed
}
