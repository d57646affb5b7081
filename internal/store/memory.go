package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/NogiBatia/BOT2/core/telegram/state"
	"github.com/NogiBatia/BOT2/internal/model"
)

// MemStore is an in-memory Store for tests and development, mirroring
// the Postgres implementation's semantics including its sentinel errors
// and rows-affected guards. WithTx snapshots the whole dataset and
// restores it when fn fails.
type MemStore struct {
	mu   *sync.Mutex
	d    *memData
	inTx bool
}

type memData struct {
	users       map[int64]*model.User
	slots       map[int64]*model.Slot
	purchases   map[int64]*model.Purchase
	reviews     []model.Review
	txs         []model.Transaction
	promos      map[string]*model.PromoCode
	activations map[string]map[int64]bool
	tickets     map[int64]*model.SupportTicket
	withdraws   map[int64]*model.WithdrawRequest
	states      map[int64]state.Record

	nextSlotID     int64
	nextPurchaseID int64
	nextReviewID   int64
	nextTxID       int64
	nextTicketID   int64
	nextWithdrawID int64
}

// NewMemStore constructs an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		mu: &sync.Mutex{},
		d: &memData{
			users:       make(map[int64]*model.User),
			slots:       make(map[int64]*model.Slot),
			purchases:   make(map[int64]*model.Purchase),
			promos:      make(map[string]*model.PromoCode),
			activations: make(map[string]map[int64]bool),
			tickets:     make(map[int64]*model.SupportTicket),
			withdraws:   make(map[int64]*model.WithdrawRequest),
			states:      make(map[int64]state.Record),
		},
	}
}

// lock is a no-op inside a transaction, where the outer WithTx already
// holds the mutex.
func (m *MemStore) lock() func() {
	if m.inTx {
		return func() {}
	}
	m.mu.Lock()
	return m.mu.Unlock
}

func (m *MemStore) WithTx(_ context.Context, fn func(Store) error) error {
	if m.inTx {
		return fn(m)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := m.d.clone()
	tx := &MemStore{mu: m.mu, d: m.d, inTx: true}
	if err := fn(tx); err != nil {
		*m.d = *snapshot
		return err
	}
	return nil
}

func (d *memData) clone() *memData {
	c := &memData{
		users:       make(map[int64]*model.User, len(d.users)),
		slots:       make(map[int64]*model.Slot, len(d.slots)),
		purchases:   make(map[int64]*model.Purchase, len(d.purchases)),
		reviews:     append([]model.Review(nil), d.reviews...),
		txs:         append([]model.Transaction(nil), d.txs...),
		promos:      make(map[string]*model.PromoCode, len(d.promos)),
		activations: make(map[string]map[int64]bool, len(d.activations)),
		tickets:     make(map[int64]*model.SupportTicket, len(d.tickets)),
		withdraws:   make(map[int64]*model.WithdrawRequest, len(d.withdraws)),
		states:      make(map[int64]state.Record, len(d.states)),

		nextSlotID:     d.nextSlotID,
		nextPurchaseID: d.nextPurchaseID,
		nextReviewID:   d.nextReviewID,
		nextTxID:       d.nextTxID,
		nextTicketID:   d.nextTicketID,
		nextWithdrawID: d.nextWithdrawID,
	}
	for id, u := range d.users {
		cp := *u
		c.users[id] = &cp
	}
	for id, s := range d.slots {
		cp := *s
		c.slots[id] = &cp
	}
	for id, p := range d.purchases {
		cp := *p
		c.purchases[id] = &cp
	}
	for code, p := range d.promos {
		cp := *p
		c.promos[code] = &cp
	}
	for code, byUser := range d.activations {
		cp := make(map[int64]bool, len(byUser))
		for id, v := range byUser {
			cp[id] = v
		}
		c.activations[code] = cp
	}
	for id, t := range d.tickets {
		cp := *t
		c.tickets[id] = &cp
	}
	for id, w := range d.withdraws {
		cp := *w
		c.withdraws[id] = &cp
	}
	for id, rec := range d.states {
		c.states[id] = rec
	}
	return c
}

// Users

func (m *MemStore) GetUser(_ context.Context, telegramID int64) (*model.User, error) {
	defer m.lock()()
	u, ok := m.d.users[telegramID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *MemStore) CreateUser(_ context.Context, u *model.User) error {
	defer m.lock()()
	if _, ok := m.d.users[u.TelegramID]; ok {
		return nil
	}
	cp := *u
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now()
	}
	m.d.users[u.TelegramID] = &cp
	return nil
}

func (m *MemStore) UpdateUserProfile(_ context.Context, telegramID int64, username, fullName string) error {
	defer m.lock()()
	if u, ok := m.d.users[telegramID]; ok {
		u.Username = username
		u.FullName = fullName
	}
	return nil
}

func (m *MemStore) UpdateUserName(_ context.Context, telegramID int64, fullName string) error {
	defer m.lock()()
	u, ok := m.d.users[telegramID]
	if !ok {
		return ErrNotFound
	}
	u.FullName = fullName
	return nil
}

func (m *MemStore) AdjustBalance(_ context.Context, telegramID int64, delta float64) error {
	defer m.lock()()
	u, ok := m.d.users[telegramID]
	if !ok {
		return ErrNotFound
	}
	if u.Balance+delta < 0 {
		return ErrInsufficientFunds
	}
	u.Balance += delta
	return nil
}

func (m *MemStore) SetBanned(_ context.Context, telegramID int64, banned bool) error {
	defer m.lock()()
	u, ok := m.d.users[telegramID]
	if !ok {
		return ErrNotFound
	}
	u.IsBanned = banned
	return nil
}

func (m *MemStore) SetAdmin(_ context.Context, telegramID int64, admin bool) error {
	defer m.lock()()
	u, ok := m.d.users[telegramID]
	if !ok {
		return ErrNotFound
	}
	u.IsAdmin = admin
	return nil
}

func (m *MemStore) SetSubscribed(_ context.Context, telegramID int64, subscribed bool) error {
	defer m.lock()()
	if u, ok := m.d.users[telegramID]; ok {
		u.HasSubscribed = subscribed
	}
	return nil
}

func (m *MemStore) IsAdmin(_ context.Context, telegramID int64) (bool, error) {
	defer m.lock()()
	u, ok := m.d.users[telegramID]
	if !ok {
		return false, ErrNotFound
	}
	return u.IsAdmin, nil
}

func (m *MemStore) BumpSaleCounters(_ context.Context, telegramID int64, success bool) error {
	defer m.lock()()
	u, ok := m.d.users[telegramID]
	if !ok {
		return nil
	}
	if success {
		u.TotalSales++
		u.SuccessfulSales++
	} else {
		u.FailedSales++
	}
	return nil
}

func (m *MemStore) BumpPurchaseCounters(_ context.Context, telegramID int64, success bool) error {
	defer m.lock()()
	u, ok := m.d.users[telegramID]
	if !ok {
		return nil
	}
	if success {
		u.TotalPurchases++
		u.SuccessfulPurchases++
	} else {
		u.FailedPurchases++
	}
	return nil
}

func (m *MemStore) SetRating(_ context.Context, telegramID int64, role model.Role, value float64) error {
	defer m.lock()()
	u, ok := m.d.users[telegramID]
	if !ok {
		return nil
	}
	if role == model.RoleBuyer {
		u.RatingBuyer = value
	} else {
		u.RatingSeller = value
	}
	return nil
}

func (m *MemStore) ListUsers(_ context.Context) ([]model.User, error) {
	defer m.lock()()
	out := make([]model.User, 0, len(m.d.users))
	for _, u := range m.d.users {
		out = append(out, *u)
	}
	sortBy(out, func(a, b model.User) bool { return a.CreatedAt.Before(b.CreatedAt) })
	return out, nil
}

func (m *MemStore) ListAdminIDs(_ context.Context) ([]int64, error) {
	defer m.lock()()
	var ids []int64
	for id, u := range m.d.users {
		if u.IsAdmin {
			ids = append(ids, id)
		}
	}
	sortBy(ids, func(a, b int64) bool { return a < b })
	return ids, nil
}

// Slots

func (m *MemStore) CreateSlot(_ context.Context, s *model.Slot) error {
	defer m.lock()()
	m.d.nextSlotID++
	s.ID = m.d.nextSlotID
	s.IsActive = true
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	cp := *s
	m.d.slots[s.ID] = &cp
	return nil
}

func (m *MemStore) GetSlot(_ context.Context, id int64) (*model.Slot, error) {
	defer m.lock()()
	s, ok := m.d.slots[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *MemStore) ListActiveSlots(_ context.Context, excludeSeller int64) ([]model.Slot, error) {
	defer m.lock()()
	var out []model.Slot
	for _, s := range m.d.slots {
		if s.IsActive && s.SellerID != excludeSeller {
			out = append(out, *s)
		}
	}
	sortBy(out, func(a, b model.Slot) bool { return a.ID < b.ID })
	return out, nil
}

func (m *MemStore) ListSlotsBySeller(_ context.Context, sellerID int64) ([]model.Slot, error) {
	defer m.lock()()
	var out []model.Slot
	for _, s := range m.d.slots {
		if s.SellerID == sellerID {
			out = append(out, *s)
		}
	}
	sortBy(out, func(a, b model.Slot) bool { return a.ID < b.ID })
	return out, nil
}

func (m *MemStore) DeactivateSlot(_ context.Context, id int64) (bool, error) {
	defer m.lock()()
	s, ok := m.d.slots[id]
	if !ok || !s.IsActive {
		return false, nil
	}
	s.IsActive = false
	return true, nil
}

func (m *MemStore) ReactivateSlot(_ context.Context, id int64) error {
	defer m.lock()()
	s, ok := m.d.slots[id]
	if !ok {
		return ErrNotFound
	}
	s.IsActive = true
	return nil
}

func (m *MemStore) DeleteSlot(_ context.Context, id int64) error {
	defer m.lock()()
	if _, ok := m.d.slots[id]; !ok {
		return ErrNotFound
	}
	delete(m.d.slots, id)
	return nil
}

// Purchases

func (m *MemStore) CreatePurchase(_ context.Context, p *model.Purchase) error {
	defer m.lock()()
	m.d.nextPurchaseID++
	p.ID = m.d.nextPurchaseID
	p.Status = model.PurchasePending
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	cp := *p
	m.d.purchases[p.ID] = &cp
	return nil
}

func (m *MemStore) GetPurchase(_ context.Context, id int64) (*model.Purchase, error) {
	defer m.lock()()
	p, ok := m.d.purchases[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *MemStore) ListPurchasesByBuyer(_ context.Context, buyerID int64, status model.PurchaseStatus) ([]model.Purchase, error) {
	defer m.lock()()
	var out []model.Purchase
	for _, p := range m.d.purchases {
		if p.BuyerID == buyerID && p.Status == status {
			out = append(out, *p)
		}
	}
	sortBy(out, func(a, b model.Purchase) bool { return a.ID < b.ID })
	return out, nil
}

func (m *MemStore) ListPurchasesBySeller(_ context.Context, sellerID int64, status model.PurchaseStatus) ([]model.Purchase, error) {
	defer m.lock()()
	var out []model.Purchase
	for _, p := range m.d.purchases {
		if p.SellerID == sellerID && p.Status == status {
			out = append(out, *p)
		}
	}
	sortBy(out, func(a, b model.Purchase) bool { return a.ID < b.ID })
	return out, nil
}

func (m *MemStore) MarkPurchaseSent(_ context.Context, id int64) error {
	defer m.lock()()
	p, ok := m.d.purchases[id]
	if !ok || p.Status != model.PurchasePending {
		return ErrNotFound
	}
	p.NFTSent = true
	return nil
}

func (m *MemStore) CompletePurchase(_ context.Context, id int64) error {
	defer m.lock()()
	p, ok := m.d.purchases[id]
	if !ok || p.Status != model.PurchasePending {
		return ErrNotFound
	}
	p.Status = model.PurchaseCompleted
	p.NFTReceived = true
	return nil
}

func (m *MemStore) SetPurchaseRated(_ context.Context, id int64, role model.Role, rating int, text string) error {
	defer m.lock()()
	p, ok := m.d.purchases[id]
	if !ok {
		return ErrNotFound
	}
	if role == model.RoleSeller {
		p.BuyerRated = true
		p.BuyerRating = rating
		p.BuyerReview = text
	} else {
		p.SellerRated = true
		p.SellerRating = rating
		p.SellerReview = text
	}
	return nil
}

func (m *MemStore) DeletePurchase(_ context.Context, id int64) error {
	defer m.lock()()
	if _, ok := m.d.purchases[id]; !ok {
		return ErrNotFound
	}
	delete(m.d.purchases, id)
	return nil
}

// Reviews and ledger

func (m *MemStore) CreateReview(_ context.Context, r *model.Review) error {
	defer m.lock()()
	m.d.nextReviewID++
	r.ID = m.d.nextReviewID
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	m.d.reviews = append(m.d.reviews, *r)
	return nil
}

func (m *MemStore) ListReviewsForUser(_ context.Context, userID int64, role model.Role) ([]model.Review, error) {
	defer m.lock()()
	var out []model.Review
	for _, r := range m.d.reviews {
		if r.UserID == userID && r.Role == role {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *MemStore) AverageRating(_ context.Context, userID int64, role model.Role) (float64, error) {
	defer m.lock()()
	var sum, n int
	for _, r := range m.d.reviews {
		if r.UserID == userID && r.Role == role {
			sum += r.Rating
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return float64(sum) / float64(n), nil
}

func (m *MemStore) AddTransaction(_ context.Context, t *model.Transaction) error {
	defer m.lock()()
	m.d.nextTxID++
	t.ID = m.d.nextTxID
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	m.d.txs = append(m.d.txs, *t)
	return nil
}

func (m *MemStore) ListTransactions(_ context.Context, userID int64, limit int) ([]model.Transaction, error) {
	defer m.lock()()
	if limit <= 0 {
		limit = 20
	}
	var out []model.Transaction
	for i := len(m.d.txs) - 1; i >= 0 && len(out) < limit; i-- {
		if m.d.txs[i].UserID == userID {
			out = append(out, m.d.txs[i])
		}
	}
	return out, nil
}

// Promo codes

func (m *MemStore) CreatePromo(_ context.Context, p *model.PromoCode) error {
	defer m.lock()()
	if _, ok := m.d.promos[p.Code]; ok {
		return ErrAlreadyExists
	}
	cp := *p
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now()
	}
	m.d.promos[p.Code] = &cp
	return nil
}

func (m *MemStore) GetPromo(_ context.Context, code string) (*model.PromoCode, error) {
	defer m.lock()()
	p, ok := m.d.promos[code]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *MemStore) ListPromos(_ context.Context) ([]model.PromoCode, error) {
	defer m.lock()()
	out := make([]model.PromoCode, 0, len(m.d.promos))
	for _, p := range m.d.promos {
		out = append(out, *p)
	}
	sortBy(out, func(a, b model.PromoCode) bool { return a.CreatedAt.Before(b.CreatedAt) })
	return out, nil
}

func (m *MemStore) ConsumePromoActivation(_ context.Context, code string) error {
	defer m.lock()()
	p, ok := m.d.promos[code]
	if !ok || p.UsedCount >= p.MaxActivations {
		return ErrPromoExhausted
	}
	p.UsedCount++
	return nil
}

func (m *MemStore) HasPromoActivation(_ context.Context, code string, userID int64) (bool, error) {
	defer m.lock()()
	return m.d.activations[code][userID], nil
}

func (m *MemStore) AddPromoActivation(_ context.Context, code string, userID int64) error {
	defer m.lock()()
	byUser, ok := m.d.activations[code]
	if !ok {
		byUser = make(map[int64]bool)
		m.d.activations[code] = byUser
	}
	if byUser[userID] {
		return ErrAlreadyExists
	}
	byUser[userID] = true
	return nil
}

// Support tickets

func (m *MemStore) CreateTicket(_ context.Context, t *model.SupportTicket) error {
	defer m.lock()()
	m.d.nextTicketID++
	t.ID = m.d.nextTicketID
	t.Status = model.TicketOpen
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	cp := *t
	m.d.tickets[t.ID] = &cp
	return nil
}

func (m *MemStore) GetTicket(_ context.Context, id int64) (*model.SupportTicket, error) {
	defer m.lock()()
	t, ok := m.d.tickets[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *MemStore) ListOpenTickets(_ context.Context) ([]model.SupportTicket, error) {
	defer m.lock()()
	var out []model.SupportTicket
	for _, t := range m.d.tickets {
		if t.Status == model.TicketOpen {
			out = append(out, *t)
		}
	}
	sortBy(out, func(a, b model.SupportTicket) bool { return a.ID < b.ID })
	return out, nil
}

func (m *MemStore) AnswerTicket(_ context.Context, id int64, answer string) error {
	defer m.lock()()
	t, ok := m.d.tickets[id]
	if !ok || t.Status != model.TicketOpen {
		return ErrNotFound
	}
	now := time.Now()
	t.Status = model.TicketAnswered
	t.Answer = answer
	t.AnsweredAt = &now
	return nil
}

// Withdrawals

func (m *MemStore) CreateWithdraw(_ context.Context, w *model.WithdrawRequest) error {
	defer m.lock()()
	m.d.nextWithdrawID++
	w.ID = m.d.nextWithdrawID
	w.Status = model.WithdrawPending
	if w.CreatedAt.IsZero() {
		w.CreatedAt = time.Now()
	}
	cp := *w
	m.d.withdraws[w.ID] = &cp
	return nil
}

func (m *MemStore) GetWithdraw(_ context.Context, id int64) (*model.WithdrawRequest, error) {
	defer m.lock()()
	w, ok := m.d.withdraws[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *w
	return &cp, nil
}

func (m *MemStore) ListPendingWithdraws(_ context.Context) ([]model.WithdrawRequest, error) {
	defer m.lock()()
	var out []model.WithdrawRequest
	for _, w := range m.d.withdraws {
		if w.Status == model.WithdrawPending {
			out = append(out, *w)
		}
	}
	sortBy(out, func(a, b model.WithdrawRequest) bool { return a.ID < b.ID })
	return out, nil
}

func (m *MemStore) SetWithdrawStatus(_ context.Context, id int64, status model.WithdrawStatus, reason string) error {
	defer m.lock()()
	w, ok := m.d.withdraws[id]
	if !ok || w.Status != model.WithdrawPending {
		return ErrNotFound
	}
	now := time.Now()
	w.Status = status
	w.Reason = reason
	w.ProcessedAt = &now
	return nil
}

// Conversation state

func (m *MemStore) Load(_ context.Context, userID int64) (state.Record, bool, error) {
	defer m.lock()()
	rec, ok := m.d.states[userID]
	return rec, ok, nil
}

func (m *MemStore) Save(_ context.Context, userID int64, rec state.Record) error {
	defer m.lock()()
	m.d.states[userID] = rec
	return nil
}

func (m *MemStore) Delete(_ context.Context, userID int64) error {
	defer m.lock()()
	delete(m.d.states, userID)
	return nil
}

// Stats

func (m *MemStore) Stats(_ context.Context) (*model.Stats, error) {
	defer m.lock()()
	st := &model.Stats{}
	for _, u := range m.d.users {
		st.Users++
		if u.IsBanned {
			st.BannedUsers++
		}
		st.TotalBalance += u.Balance
	}
	for _, s := range m.d.slots {
		if s.IsActive {
			st.ActiveSlots++
		}
	}
	for _, p := range m.d.purchases {
		if p.Status == model.PurchaseCompleted {
			st.CompletedPurchases++
		} else {
			st.PendingPurchases++
		}
	}
	for _, t := range m.d.tickets {
		if t.Status == model.TicketOpen {
			st.OpenTickets++
		}
	}
	for _, w := range m.d.withdraws {
		if w.Status == model.WithdrawPending {
			st.PendingWithdrawals++
		}
	}
	return st, nil
}

func sortBy[T any](s []T, less func(a, b T) bool) {
	sort.Slice(s, func(i, j int) bool { return less(s[i], s[j]) })
}
