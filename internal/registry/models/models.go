package models

import (
	id "github.com/illustspace/gsr/pkg/domain"
	dErrors "github.com/illustspace/gsr/pkg/domain-errors"
)

// Token info persisted for every receipt. The values are fixed: the metadata a
// caller sends with a claim is accepted but not stored.
const (
	TokenInfoName       = "name"
	TokenInfoDecimals   = "decimals"
	TokenInfoDisplayURI = "displayUri"

	TokenName       = "EVM Tezos Alias Account"
	TokenDecimals   = "0"
	TokenDisplayURI = "https://ar.illust.space"
)

// MaxClaimsPerBatch bounds a single mint invocation.
const MaxClaimsPerBatch = 100

// Claim is one entry of a mint batch.
type Claim struct {
	SecondaryAddress id.SecondaryAddress
	Metadata         map[string][]byte
}

// TokenInfo holds the descriptive byte-string fields of a receipt token.
type TokenInfo map[string][]byte

// FixedTokenInfo returns a fresh copy of the info written for every receipt.
func FixedTokenInfo() TokenInfo {
	return TokenInfo{
		TokenInfoDecimals:   []byte(TokenDecimals),
		TokenInfoName:       []byte(TokenName),
		TokenInfoDisplayURI: []byte(TokenDisplayURI),
	}
}

// Clone deep-copies the info so stored values cannot be mutated through a caller's map.
func (ti TokenInfo) Clone() TokenInfo {
	if ti == nil {
		return nil
	}
	out := make(TokenInfo, len(ti))
	for k, v := range ti {
		out[k] = append([]byte(nil), v...)
	}
	return out
}

// TokenMetadata is the immutable record stored per token id.
type TokenMetadata struct {
	TokenID   id.TokenID
	TokenInfo TokenInfo
}

// NewTokenMetadata builds the metadata record for a freshly issued token.
func NewTokenMetadata(tokenID id.TokenID) (*TokenMetadata, error) {
	if tokenID == 0 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "token id must be positive")
	}
	return &TokenMetadata{TokenID: tokenID, TokenInfo: FixedTokenInfo()}, nil
}

// Receipt reports one token issued by a mint.
type Receipt struct {
	TokenID          id.TokenID
	Owner            id.PrimaryAddress
	SecondaryAddress id.SecondaryAddress
}

// Token is the read model combining ledger and metadata for one id.
type Token struct {
	Metadata TokenMetadata
	Owner    id.PrimaryAddress
}

// BalanceRequest asks whether Owner holds TokenID.
type BalanceRequest struct {
	Owner   id.PrimaryAddress
	TokenID id.TokenID
}

// BalanceResponse answers a BalanceRequest. Balance is 0 or 1.
type BalanceResponse struct {
	Request BalanceRequest
	Balance uint64
}
