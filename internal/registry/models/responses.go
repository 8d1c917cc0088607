package models

// MintResponse reports the receipts issued by a mint.
type MintResponse struct {
	Owner    string   `json:"owner"`
	TokenIDs []uint64 `json:"token_ids"`
}

func NewMintResponse(receipts []*Receipt) *MintResponse {
	resp := &MintResponse{TokenIDs: make([]uint64, 0, len(receipts))}
	for _, r := range receipts {
		resp.Owner = r.Owner.String()
		resp.TokenIDs = append(resp.TokenIDs, uint64(r.TokenID))
	}
	return resp
}

// VerifyAliasResponse is returned when a claimed alias matches the record.
type VerifyAliasResponse struct {
	PrimaryAddress   string `json:"primary_address"`
	SecondaryAddress string `json:"secondary_address"`
	Verified         bool   `json:"verified"`
}

type TokenResponse struct {
	TokenID   uint64            `json:"token_id"`
	Owner     string            `json:"owner"`
	TokenInfo map[string]string `json:"token_info"`
}

func NewTokenResponse(t *Token) *TokenResponse {
	info := make(map[string]string, len(t.Metadata.TokenInfo))
	for k, v := range t.Metadata.TokenInfo {
		info[k] = string(v)
	}
	return &TokenResponse{
		TokenID:   uint64(t.Metadata.TokenID),
		Owner:     t.Owner.String(),
		TokenInfo: info,
	}
}

type BalanceOfResult struct {
	Owner   string `json:"owner"`
	TokenID uint64 `json:"token_id"`
	Balance uint64 `json:"balance"`
}

type BalanceOfResponse struct {
	Balances []BalanceOfResult `json:"balances"`
}

func NewBalanceOfResponse(responses []BalanceResponse) *BalanceOfResponse {
	out := &BalanceOfResponse{Balances: make([]BalanceOfResult, 0, len(responses))}
	for _, r := range responses {
		out.Balances = append(out.Balances, BalanceOfResult{
			Owner:   r.Request.Owner.String(),
			TokenID: uint64(r.Request.TokenID),
			Balance: r.Balance,
		})
	}
	return out
}

type StatsResponse struct {
	LastTokenID uint64 `json:"last_token_id"`
}
