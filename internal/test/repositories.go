package test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	domainErrors "github.com/ordesk/backoffice/internal/domain/errors"
	"github.com/ordesk/backoffice/internal/domain/model"
	"github.com/ordesk/backoffice/internal/domain/repository"
)

type orderKey struct {
	Market model.Market
	DocID  string
}

// OrderRepositoryStub stores live orders in-memory with the same claim and
// confirm semantics the SQL implementation provides.
type OrderRepositoryStub struct {
	mu       sync.Mutex
	Orders   map[orderKey]*model.Order
	Archived []model.SentOrder
	Audited  []model.AuditEntry
	Err      error

	ClaimFn  func(context.Context, model.Market, string, string, time.Time) (*model.Order, error)
	UpdateFn func(context.Context, model.Market, *model.Order) error
}

// NewOrderRepositoryStub constructs the stub with initialized storage.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{Orders: make(map[orderKey]*model.Order)}
}

// Put seeds an order, bypassing uniqueness checks.
func (s *OrderRepositoryStub) Put(market model.Market, order *model.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *order
	s.Orders[orderKey{market, order.DocID}] = &clone
}

func (s *OrderRepositoryStub) Create(ctx context.Context, market model.Market, order *model.Order) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, existing := range s.Orders {
		if key.Market == market && existing.ID == order.ID {
			return domainErrors.ErrAlreadyExists
		}
	}
	clone := *order
	s.Orders[orderKey{market, order.DocID}] = &clone
	return nil
}

func (s *OrderRepositoryStub) Get(ctx context.Context, market model.Market, docID string) (*model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.Orders[orderKey{market, docID}]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	clone := *order
	return &clone, nil
}

func (s *OrderRepositoryStub) Update(ctx context.Context, market model.Market, order *model.Order) error {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, market, order)
	}
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := orderKey{market, order.DocID}
	if _, ok := s.Orders[key]; !ok {
		return domainErrors.ErrNotFound
	}
	clone := *order
	s.Orders[key] = &clone
	return nil
}

func (s *OrderRepositoryStub) Delete(ctx context.Context, market model.Market, docID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := orderKey{market, docID}
	if _, ok := s.Orders[key]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.Orders, key)
	return nil
}

func (s *OrderRepositoryStub) ListQueue(ctx context.Context, market model.Market, filter repository.QueueFilter) ([]model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.Order
	for key, order := range s.Orders {
		if key.Market != market || order.Status != model.OrderStatusPending {
			continue
		}
		if filter.Type != nil && order.Type != *filter.Type {
			continue
		}
		if filter.CallCount != nil && order.CallCount != *filter.CallCount {
			continue
		}
		result = append(result, *order)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].OrderTime.Before(result[j].OrderTime) })
	return result, nil
}

func (s *OrderRepositoryStub) List(ctx context.Context, market model.Market, filter repository.ListFilter) ([]model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.Order
	for key, order := range s.Orders {
		if key.Market != market {
			continue
		}
		if filter.Status != nil && order.Status != *filter.Status {
			continue
		}
		if filter.CallCount != nil && order.CallCount != *filter.CallCount {
			continue
		}
		result = append(result, *order)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].OrderTime.After(result[j].OrderTime) })
	return result, nil
}

func (s *OrderRepositoryStub) GetHeldByOperator(ctx context.Context, market model.Market, operator string) (*model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, order := range s.Orders {
		if key.Market == market && order.HeldBy(operator) {
			clone := *order
			return &clone, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (s *OrderRepositoryStub) HoldsAnyOrder(ctx context.Context, operator string) (bool, error) {
	if s.Err != nil {
		return false, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, order := range s.Orders {
		if order.HeldBy(operator) {
			return true, nil
		}
	}
	return false, nil
}

func (s *OrderRepositoryStub) Claim(ctx context.Context, market model.Market, docID, operator string, now time.Time) (*model.Order, error) {
	if s.ClaimFn != nil {
		return s.ClaimFn(ctx, market, docID, operator, now)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.Orders[orderKey{market, docID}]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if order.Status != model.OrderStatusPending {
		return nil, domainErrors.ErrOrderNotAvailable
	}
	order.Status = model.OrderStatusInProgress
	order.AssignedOperator = &operator
	order.UpdatedAt = now
	clone := *order
	return &clone, nil
}

func (s *OrderRepositoryStub) Confirm(ctx context.Context, market model.Market, order *model.Order, archived *model.SentOrder, entry *model.AuditEntry) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := orderKey{market, order.DocID}
	if _, ok := s.Orders[key]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.Orders, key)
	s.Archived = append(s.Archived, *archived)
	s.Audited = append(s.Audited, *entry)
	return nil
}

func (s *OrderRepositoryStub) MaxOrderID(ctx context.Context, market model.Market) (int64, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var max int64
	for key, order := range s.Orders {
		if key.Market == market && order.ID > max {
			max = order.ID
		}
	}
	return max, nil
}

// ArchiveRepositoryStub stores archive records in-memory.
type ArchiveRepositoryStub struct {
	mu      sync.Mutex
	Records map[model.Market][]model.SentOrder
	Err     error
}

// NewArchiveRepositoryStub constructs the stub with initialized storage.
func NewArchiveRepositoryStub() *ArchiveRepositoryStub {
	return &ArchiveRepositoryStub{Records: make(map[model.Market][]model.SentOrder)}
}

// Put seeds an archive record.
func (s *ArchiveRepositoryStub) Put(market model.Market, record model.SentOrder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Records[market] = append(s.Records[market], record)
}

func (s *ArchiveRepositoryStub) GetByOrderID(ctx context.Context, market model.Market, orderID int64) (*model.SentOrder, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, record := range s.Records[market] {
		if record.ID == orderID {
			clone := record
			return &clone, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (s *ArchiveRepositoryStub) GetByAWB(ctx context.Context, market model.Market, code string) (*model.SentOrder, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, record := range s.Records[market] {
		if record.AWB == code {
			clone := record
			return &clone, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (s *ArchiveRepositoryStub) ListByPhone(ctx context.Context, market model.Market, phone string) ([]model.SentOrder, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.SentOrder
	for _, record := range s.Records[market] {
		if record.Phone == phone {
			result = append(result, record)
		}
	}
	return result, nil
}

func (s *ArchiveRepositoryStub) ListByOperatorAndInterval(ctx context.Context, market model.Market, operator string, from, to time.Time) ([]model.SentOrder, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.SentOrder
	for _, record := range s.Records[market] {
		if record.UpdatedAt.Before(from) || record.UpdatedAt.After(to) {
			continue
		}
		if operator != "" && (record.ResolvedBy == nil || *record.ResolvedBy != operator) {
			continue
		}
		result = append(result, record)
	}
	return result, nil
}

func (s *ArchiveRepositoryStub) ListUndelivered(ctx context.Context, market model.Market, limit int) ([]model.SentOrder, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.SentOrder
	for _, record := range s.Records[market] {
		if record.AWB == "" || record.AWBStatus == model.AWBStatusDelivered || record.AWBStatus == model.AWBStatusReturned {
			continue
		}
		result = append(result, record)
		if len(result) == limit {
			break
		}
	}
	return result, nil
}

func (s *ArchiveRepositoryStub) SetAWB(ctx context.Context, market model.Market, orderID int64, awb string) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, record := range s.Records[market] {
		if record.ID != orderID {
			continue
		}
		if record.AWB != "" {
			return domainErrors.ErrAlreadyExists
		}
		s.Records[market][i].AWB = awb
		s.Records[market][i].AWBStatus = model.AWBStatusInProgress
		return nil
	}
	return domainErrors.ErrNotFound
}

func (s *ArchiveRepositoryStub) UpdateAWBStatus(ctx context.Context, market model.Market, orderID int64, status model.AWBStatus) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, record := range s.Records[market] {
		if record.ID == orderID {
			s.Records[market][i].AWBStatus = status
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// UserRepositoryStub stores accounts in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

func (s *UserRepositoryStub) Create(ctx context.Context, user *model.User) error {
	if s.Err != nil {
		return s.Err
	}
	key := strings.ToLower(user.Email)
	if _, exists := s.Users[key]; exists {
		return domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user.ID = s.Next
	s.Next++
	clone := *user
	s.Users[key] = &clone
	s.ByID[user.ID] = &clone
	return nil
}

func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[strings.ToLower(email)]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *UserRepositoryStub) List(ctx context.Context) ([]model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.User
	for _, user := range s.ByID {
		result = append(result, *user)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *UserRepositoryStub) UpdateRole(ctx context.Context, id int64, role model.Role) error {
	if s.Err != nil {
		return s.Err
	}
	user, ok := s.ByID[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	user.Role = role
	return nil
}

func (s *UserRepositoryStub) TouchLastLogin(ctx context.Context, id int64, at time.Time) error {
	if user, ok := s.ByID[id]; ok {
		user.LastLogin = at
	}
	return nil
}

func (s *UserRepositoryStub) Delete(ctx context.Context, id int64) error {
	user, ok := s.ByID[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.ByID, id)
	delete(s.Users, strings.ToLower(user.Email))
	return nil
}

// ProductRepositoryStub stores catalog entries in-memory.
type ProductRepositoryStub struct {
	Products map[model.Market][]model.Product
	Next     int64
	Err      error
}

// NewProductRepositoryStub constructs the stub with initialized storage.
func NewProductRepositoryStub() *ProductRepositoryStub {
	return &ProductRepositoryStub{Products: make(map[model.Market][]model.Product), Next: 1}
}

func (s *ProductRepositoryStub) Create(ctx context.Context, market model.Market, product *model.Product) error {
	if s.Err != nil {
		return s.Err
	}
	product.ID = s.Next
	s.Next++
	s.Products[market] = append(s.Products[market], *product)
	return nil
}

func (s *ProductRepositoryStub) Get(ctx context.Context, market model.Market, id int64) (*model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, product := range s.Products[market] {
		if product.ID == id {
			clone := product
			return &clone, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (s *ProductRepositoryStub) List(ctx context.Context, market model.Market) ([]model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Products[market], nil
}

func (s *ProductRepositoryStub) Update(ctx context.Context, market model.Market, product *model.Product) error {
	if s.Err != nil {
		return s.Err
	}
	for i, existing := range s.Products[market] {
		if existing.ID == product.ID {
			s.Products[market][i] = *product
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

func (s *ProductRepositoryStub) Delete(ctx context.Context, market model.Market, id int64) error {
	if s.Err != nil {
		return s.Err
	}
	for i, existing := range s.Products[market] {
		if existing.ID == id {
			s.Products[market] = append(s.Products[market][:i], s.Products[market][i+1:]...)
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// AuditRepositoryStub records appended entries in order.
type AuditRepositoryStub struct {
	mu      sync.Mutex
	Entries []model.AuditEntry
	Err     error
}

func (s *AuditRepositoryStub) Append(ctx context.Context, entry *model.AuditEntry) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	entry.ID = int64(len(s.Entries) + 1)
	s.Entries = append(s.Entries, *entry)
	return nil
}

func (s *AuditRepositoryStub) ListByUserAndInterval(ctx context.Context, user string, from, to time.Time) ([]model.AuditEntry, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.AuditEntry
	for _, entry := range s.Entries {
		if entry.User != user {
			continue
		}
		if entry.ActionDate.Before(from) || entry.ActionDate.After(to) {
			continue
		}
		result = append(result, entry)
	}
	return result, nil
}
