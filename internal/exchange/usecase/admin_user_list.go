package usecase

import (
	"context"
	"log/slog"

	"github.com/asnswap/asnswap/internal/exchange/entity"
	"github.com/asnswap/asnswap/internal/pkg/goerror"
	"github.com/asnswap/asnswap/internal/shared/constant"
)

type AdminUserListOutput struct {
	Profiles []entity.Profile
}

func (s *Usecase) AdminUserList(ctx context.Context) (*AdminUserListOutput, error) {
	ctx, span := s.startSpan(ctx, "AdminUserList")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, constant.PermExchangeAdmin, constant.PermActRead); err != nil {
		return nil, err
	}

	profiles, err := s.repoDB.ListProfiles(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list profiles", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &AdminUserListOutput{Profiles: profiles}, nil
}
