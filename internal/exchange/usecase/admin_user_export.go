package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/asnswap/asnswap/internal/exchange/entity"
	"github.com/asnswap/asnswap/internal/pkg/goerror"
	"github.com/asnswap/asnswap/internal/pkg/storage"
	"github.com/asnswap/asnswap/internal/shared/constant"
)

type AdminUserExportOutput struct {
	URL string
}

// AdminUserExport writes every profile to a CSV object and returns a
// presigned download URL.
func (s *Usecase) AdminUserExport(ctx context.Context) (*AdminUserExportOutput, error) {
	ctx, span := s.startSpan(ctx, "AdminUserExport")
	defer span.End()

	admin, err := s.authenticatedAndAuthorized(ctx, constant.PermExchangeAdmin, constant.PermActRead)
	if err != nil {
		return nil, err
	}

	profiles, err := s.repoDB.ListProfiles(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list profiles", "error", err)
		return nil, goerror.NewServer(err)
	}

	body, err := profilesCSV(profiles)
	if err != nil {
		slog.ErrorContext(ctx, "failed to encode export csv", "error", err)
		return nil, goerror.NewServer(err)
	}

	bucket := s.cfg.GetString("modules.exchange.export.bucket")
	key := fmt.Sprintf("exports/profiles-%s.csv", s.oid.Generate())

	if _, err := s.storage.PutObject(ctx, bucket, key, bytes.NewReader(body), storage.PutOptions{
		Size:        int64(len(body)),
		ContentType: "text/csv",
		Metadata:    map[string]string{"exported_by": admin},
	}); err != nil {
		slog.ErrorContext(ctx, "failed to upload export", "bucket", bucket, "key", key, "error", err)
		return nil, goerror.NewServer(err)
	}

	url, err := s.storage.PresignGet(ctx, bucket, key,
		s.cfg.GetMinute("modules.exchange.export.url_ttl_minutes"))
	if err != nil {
		slog.ErrorContext(ctx, "failed to presign export url", "bucket", bucket, "key", key, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &AdminUserExportOutput{URL: url}, nil
}

func profilesCSV(profiles []entity.Profile) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	records := [][]string{{
		"email", "name", "nip", "agency", "position", "grade",
		"current_region", "desired_region", "is_subscribed", "is_verified",
	}}
	for _, p := range profiles {
		records = append(records, []string{
			p.Email, p.Name, p.NIP, p.Agency, p.Position, p.Grade,
			p.CurrentRegion, p.DesiredRegion,
			strconv.FormatBool(p.IsSubscribed), strconv.FormatBool(p.IsVerified),
		})
	}

	if err := w.WriteAll(records); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
