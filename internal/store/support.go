package store

import (
	"context"
	"fmt"

	"github.com/NogiBatia/BOT2/internal/model"
)

func (s *SQLStore) CreateTicket(ctx context.Context, t *model.SupportTicket) error {
	err := sqlxGet(ctx, s.ext, &t.ID, `
		INSERT INTO support_tickets (user_id, message, status)
		VALUES ($1, $2, $3)
		RETURNING id`,
		t.UserID, t.Message, model.TicketOpen,
	)
	if err != nil {
		return fmt.Errorf("create ticket: %w", err)
	}
	t.Status = model.TicketOpen
	return nil
}

func (s *SQLStore) GetTicket(ctx context.Context, id int64) (*model.SupportTicket, error) {
	var t model.SupportTicket
	err := sqlxGet(ctx, s.ext, &t, `SELECT * FROM support_tickets WHERE id = $1`, id)
	if err != nil {
		return nil, notFoundOr(err, "get ticket")
	}
	return &t, nil
}

func (s *SQLStore) ListOpenTickets(ctx context.Context) ([]model.SupportTicket, error) {
	var out []model.SupportTicket
	err := sqlxSelect(ctx, s.ext, &out, `
		SELECT * FROM support_tickets WHERE status = $1 ORDER BY created_at`,
		model.TicketOpen,
	)
	if err != nil {
		return nil, fmt.Errorf("list open tickets: %w", err)
	}
	return out, nil
}

func (s *SQLStore) AnswerTicket(ctx context.Context, id int64, answer string) error {
	res, err := s.ext.ExecContext(ctx, `
		UPDATE support_tickets
		SET status = $2, answer = $3, answered_at = NOW()
		WHERE id = $1 AND status = $4`,
		id, model.TicketAnswered, answer, model.TicketOpen,
	)
	if err != nil {
		return fmt.Errorf("answer ticket: %w", err)
	}
	return requireAffected(res)
}

func (s *SQLStore) CreateWithdraw(ctx context.Context, w *model.WithdrawRequest) error {
	err := sqlxGet(ctx, s.ext, &w.ID, `
		INSERT INTO withdraw_requests (user_id, amount, card, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		w.UserID, w.Amount, w.Card, model.WithdrawPending,
	)
	if err != nil {
		return fmt.Errorf("create withdraw: %w", err)
	}
	w.Status = model.WithdrawPending
	return nil
}

func (s *SQLStore) GetWithdraw(ctx context.Context, id int64) (*model.WithdrawRequest, error) {
	var w model.WithdrawRequest
	err := sqlxGet(ctx, s.ext, &w, `SELECT * FROM withdraw_requests WHERE id = $1`, id)
	if err != nil {
		return nil, notFoundOr(err, "get withdraw")
	}
	return &w, nil
}

func (s *SQLStore) ListPendingWithdraws(ctx context.Context) ([]model.WithdrawRequest, error) {
	var out []model.WithdrawRequest
	err := sqlxSelect(ctx, s.ext, &out, `
		SELECT * FROM withdraw_requests WHERE status = $1 ORDER BY created_at`,
		model.WithdrawPending,
	)
	if err != nil {
		return nil, fmt.Errorf("list pending withdraws: %w", err)
	}
	return out, nil
}

func (s *SQLStore) SetWithdrawStatus(ctx context.Context, id int64, status model.WithdrawStatus, reason string) error {
	res, err := s.ext.ExecContext(ctx, `
		UPDATE withdraw_requests
		SET status = $2, reason = $3, processed_at = NOW()
		WHERE id = $1 AND status = $4`,
		id, status, reason, model.WithdrawPending,
	)
	if err != nil {
		return fmt.Errorf("set withdraw status: %w", err)
	}
	return requireAffected(res)
}
