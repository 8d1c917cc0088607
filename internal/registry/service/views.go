package service

import (
	"context"
	"errors"

	"github.com/illustspace/gsr/internal/registry/models"
	id "github.com/illustspace/gsr/pkg/domain"
	dErrors "github.com/illustspace/gsr/pkg/domain-errors"
	"github.com/illustspace/gsr/pkg/platform/sentinel"
)

// ErrTokenUndefined is the message for reads of an id that was never issued.
const ErrTokenUndefined = "FA2_TOKEN_UNDEFINED"

func (s *Service) LastTokenID(ctx context.Context) (id.TokenID, error) {
	last, err := s.store.LastTokenID(ctx)
	if err != nil {
		return 0, translateStoreErr(err, "failed to read token counter")
	}
	return last, nil
}

func (s *Service) TokenMetadata(ctx context.Context, tokenID id.TokenID) (*models.TokenMetadata, error) {
	md, err := s.store.FindTokenMetadata(ctx, tokenID)
	if err != nil {
		return nil, translateTokenErr(err, "failed to load token metadata")
	}
	return md, nil
}

func (s *Service) Owner(ctx context.Context, tokenID id.TokenID) (id.PrimaryAddress, error) {
	owner, err := s.store.FindOwner(ctx, tokenID)
	if err != nil {
		return "", translateTokenErr(err, "failed to load token owner")
	}
	return owner, nil
}

// Token returns the metadata and owner of an issued token.
func (s *Service) Token(ctx context.Context, tokenID id.TokenID) (*models.Token, error) {
	md, err := s.TokenMetadata(ctx, tokenID)
	if err != nil {
		return nil, err
	}
	owner, err := s.Owner(ctx, tokenID)
	if err != nil {
		return nil, err
	}
	return &models.Token{Metadata: *md, Owner: owner}, nil
}

// BalanceOf answers each request with 1 when the owner holds the token and 0
// otherwise. Any request naming an unissued token fails the whole call.
func (s *Service) BalanceOf(ctx context.Context, requests []models.BalanceRequest) ([]models.BalanceResponse, error) {
	responses := make([]models.BalanceResponse, 0, len(requests))
	for _, req := range requests {
		owner, err := s.Owner(ctx, req.TokenID)
		if err != nil {
			return nil, err
		}
		var balance uint64
		if owner == req.Owner {
			balance = 1
		}
		responses = append(responses, models.BalanceResponse{Request: req, Balance: balance})
	}
	return responses, nil
}

func translateTokenErr(err error, msg string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, ErrTokenUndefined)
	}
	return translateStoreErr(err, msg)
}
