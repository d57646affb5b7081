package service

import (
	"context"
	"log/slog"

	"github.com/NogiBatia/BOT2/core/logger"
	"github.com/NogiBatia/BOT2/internal/model"
	"github.com/NogiBatia/BOT2/internal/store"
)

// Support manages the ticket queue between users and admins.
type Support struct {
	store store.Store
}

// NewSupport constructs the support service.
func NewSupport(st store.Store) *Support {
	return &Support{store: st}
}

// Open files a new ticket.
func (s *Support) Open(ctx context.Context, userID int64, message string) (*model.SupportTicket, error) {
	t := &model.SupportTicket{UserID: userID, Message: message}
	if err := s.store.CreateTicket(ctx, t); err != nil {
		return nil, err
	}
	logOr(logger.SVCSupport).LogAttrs(ctx, slog.LevelInfo, "ticket.opened",
		slog.Int64("ticket_id", t.ID),
		slog.Int64("user_id", userID),
	)
	return t, nil
}

// Answer closes an open ticket with the admin's reply and returns the
// ticket so the caller can notify its author.
func (s *Support) Answer(ctx context.Context, id int64, answer string) (*model.SupportTicket, error) {
	if err := s.store.AnswerTicket(ctx, id, answer); err != nil {
		return nil, err
	}
	t, err := s.store.GetTicket(ctx, id)
	if err != nil {
		return nil, err
	}
	logOr(logger.SVCSupport).LogAttrs(ctx, slog.LevelInfo, "ticket.answered",
		slog.Int64("ticket_id", id),
		slog.Int64("user_id", t.UserID),
	)
	return t, nil
}

// OpenTickets lists all tickets awaiting a reply.
func (s *Support) OpenTickets(ctx context.Context) ([]model.SupportTicket, error) {
	return s.store.ListOpenTickets(ctx)
}

// Get returns one ticket by id.
func (s *Support) Get(ctx context.Context, id int64) (*model.SupportTicket, error) {
	return s.store.GetTicket(ctx, id)
}
