package usecase

import (
	"context"

	"github.com/asnswap/asnswap/internal/pkg/goerror"
	"github.com/asnswap/asnswap/internal/pkg/jwt"
)

type MeOutput struct {
	Email string
}

// Me returns the identity of the authenticated caller.
func (s *Usecase) Me(ctx context.Context) (*MeOutput, error) {
	_, span := s.startSpan(ctx, "Me")
	defer span.End()

	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	return &MeOutput{Email: clm.Subject}, nil
}
