package inbound

import (
	"context"

	"github.com/asnswap/asnswap/internal/exchange/usecase"
	"github.com/asnswap/asnswap/internal/pkg/router"
)

type uc interface {
	ProfileUpsert(ctx context.Context, in usecase.ProfileUpsertInput) error
	ProfileGet(ctx context.Context, in usecase.ProfileGetInput) (*usecase.ProfileGetOutput, error)
	Search(ctx context.Context, in usecase.SearchInput) (*usecase.SearchOutput, error)

	ChatSend(ctx context.Context, in usecase.ChatSendInput) error
	ChatHistory(ctx context.Context, in usecase.ChatHistoryInput) (*usecase.ChatHistoryOutput, error)

	MatchRequest(ctx context.Context, in usecase.MatchRequestInput) error
	MatchList(ctx context.Context) (*usecase.MatchListOutput, error)

	AdminUserList(ctx context.Context) (*usecase.AdminUserListOutput, error)
	AdminVerify(ctx context.Context, in usecase.AdminVerifyInput) error
	AdminUserDelete(ctx context.Context, in usecase.AdminUserDeleteInput) error
	AdminUserExport(ctx context.Context) (*usecase.AdminUserExportOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Profiles (need authenticated)
	r.POST("/api/profile", end.ProfileUpsert)
	r.GET("/api/profile/:email", end.ProfileGet)
	r.GET("/api/search", end.Search)

	// Chat (need authenticated)
	r.POST("/api/chat/send", end.ChatSend)
	r.GET("/api/chat/history", end.ChatHistory)

	// Match requests (need authenticated)
	r.POST("/api/match/request", end.MatchRequest)
	r.GET("/api/match/requests", end.MatchList)

	// Admin (need authenticated & authorization)
	r.GET("/api/admin/users", end.AdminUserList)
	r.POST("/api/admin/verify", end.AdminVerify)
	r.DELETE("/api/admin/users/:email", end.AdminUserDelete)
	r.GET("/api/admin/users-export", end.AdminUserExport)
}
