// Package servicetest provides in-memory implementations of the storage
// ports for tests.
package servicetest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/perkhub/loyalty/internal/apperr"
	"github.com/perkhub/loyalty/internal/model"
	"github.com/perkhub/loyalty/internal/pagination"
)

// clock hands out strictly increasing creation timestamps so list ordering
// and cursors are deterministic in tests.
type clock struct {
	mu  sync.Mutex
	seq int64
}

func (c *clock) next() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	return time.Unix(0, c.seq*int64(time.Millisecond)).UTC()
}

// Members is an in-memory MemberStore.
type Members struct {
	mu    sync.Mutex
	clock clock
	items map[string]model.Member
}

// NewMembers creates an empty member store.
func NewMembers() *Members {
	return &Members{items: make(map[string]model.Member)}
}

func (s *Members) Create(_ context.Context, member *model.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.items {
		if m.Username == member.Username {
			return apperr.Newf(apperr.CodeExistingMember, "member %q already exists", member.Username)
		}
	}
	now := s.clock.next()
	member.CreatedAt = now
	member.UpdatedAt = now
	member.Cursor = pagination.CursorBytes(now)
	s.items[member.ID] = *member
	return nil
}

func (s *Members) GetByID(_ context.Context, id string) (*model.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.items[id]
	if !ok {
		return nil, apperr.Newf(apperr.CodeMemberNotFound, "member %s not found", id)
	}
	return &m, nil
}

func (s *Members) GetByUsername(_ context.Context, username string) (*model.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.items {
		if m.Username == username {
			m := m
			return &m, nil
		}
	}
	return nil, apperr.Newf(apperr.CodeMemberNotFound, "member %q not found", username)
}

func (s *Members) ExistsByUsername(_ context.Context, username string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.items {
		if m.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (s *Members) Update(_ context.Context, member *model.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[member.ID]; !ok {
		return apperr.Newf(apperr.CodeMemberNotFound, "member %s not found", member.ID)
	}
	member.UpdatedAt = s.clock.next()
	s.items[member.ID] = *member
	return nil
}

func (s *Members) Delete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return false, nil
	}
	delete(s.items, id)
	return true, nil
}

func (s *Members) Window(_ context.Context, since *time.Time) ([]model.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Member
	for _, m := range s.items {
		if since == nil || !m.CreatedAt.Before(*since) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// Vendors is an in-memory VendorStore.
type Vendors struct {
	mu    sync.Mutex
	clock clock
	items map[string]model.Vendor
}

// NewVendors creates an empty vendor store.
func NewVendors() *Vendors {
	return &Vendors{items: make(map[string]model.Vendor)}
}

func (s *Vendors) Create(_ context.Context, vendor *model.Vendor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.items {
		if v.Name == vendor.Name {
			return apperr.Newf(apperr.CodeExistingVendor, "vendor %q already exists", vendor.Name)
		}
	}
	now := s.clock.next()
	vendor.CreatedAt = now
	vendor.UpdatedAt = now
	vendor.Cursor = pagination.CursorBytes(now)
	s.items[vendor.ID] = *vendor
	return nil
}

func (s *Vendors) GetByID(_ context.Context, id string) (*model.Vendor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.items[id]
	if !ok {
		return nil, apperr.Newf(apperr.CodeVendorNotFound, "vendor %s not found", id)
	}
	return &v, nil
}

func (s *Vendors) ExistsByName(_ context.Context, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.items {
		if v.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (s *Vendors) Update(_ context.Context, vendor *model.Vendor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[vendor.ID]; !ok {
		return apperr.Newf(apperr.CodeVendorNotFound, "vendor %s not found", vendor.ID)
	}
	vendor.UpdatedAt = s.clock.next()
	s.items[vendor.ID] = *vendor
	return nil
}

func (s *Vendors) Delete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return false, nil
	}
	delete(s.items, id)
	return true, nil
}

func (s *Vendors) Window(_ context.Context, since *time.Time) ([]model.Vendor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Vendor
	for _, v := range s.items {
		if since == nil || !v.CreatedAt.Before(*since) {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// Promotions is an in-memory PromotionStore.
type Promotions struct {
	mu    sync.Mutex
	clock clock
	items map[string]model.Promotion
}

// NewPromotions creates an empty promotion store.
func NewPromotions() *Promotions {
	return &Promotions{items: make(map[string]model.Promotion)}
}

func (s *Promotions) Create(_ context.Context, promo *model.Promotion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock.next()
	promo.CreatedAt = now
	promo.UpdatedAt = now
	promo.Cursor = pagination.CursorBytes(now)
	s.items[promo.ID] = *promo
	return nil
}

func (s *Promotions) GetByID(_ context.Context, id string) (*model.Promotion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.items[id]
	if !ok {
		return nil, apperr.Newf(apperr.CodePromoNotFound, "promo %s not found", id)
	}
	return &p, nil
}

func (s *Promotions) Update(_ context.Context, promo *model.Promotion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[promo.ID]; !ok {
		return apperr.Newf(apperr.CodePromoNotFound, "promo %s not found", promo.ID)
	}
	promo.UpdatedAt = s.clock.next()
	s.items[promo.ID] = *promo
	return nil
}

func (s *Promotions) Delete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return false, nil
	}
	delete(s.items, id)
	return true, nil
}

func (s *Promotions) Window(_ context.Context, since *time.Time) ([]model.Promotion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Promotion
	for _, p := range s.items {
		if since == nil || !p.CreatedAt.Before(*since) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// Enrollments is an in-memory EnrollmentStore. Create enforces the same
// unique (member, promotion) pair rule the schema does.
type Enrollments struct {
	mu    sync.Mutex
	clock clock
	items map[string]model.EnrollmentRequest
}

// NewEnrollments creates an empty enrollment request store.
func NewEnrollments() *Enrollments {
	return &Enrollments{items: make(map[string]model.EnrollmentRequest)}
}

func (s *Enrollments) Create(_ context.Context, req *model.EnrollmentRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.items {
		if r.MemberID == req.MemberID && r.PromotionID == req.PromotionID {
			return apperr.Newf(apperr.CodeExistingEnrollment,
				"enrollment request for member %s and promo %s already exists", req.MemberID, req.PromotionID)
		}
	}
	now := s.clock.next()
	req.CreatedAt = now
	req.UpdatedAt = now
	req.Cursor = pagination.CursorBytes(now)
	s.items[req.ID] = *req
	return nil
}

func (s *Enrollments) GetByID(_ context.Context, id string) (*model.EnrollmentRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.items[id]
	if !ok {
		return nil, apperr.Newf(apperr.CodeEnrollmentRequestNotFound, "enrollment request %s not found", id)
	}
	return &r, nil
}

func (s *Enrollments) ExistsForPair(_ context.Context, memberID, promotionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.items {
		if r.MemberID == memberID && r.PromotionID == promotionID {
			return true, nil
		}
	}
	return false, nil
}

func (s *Enrollments) SetStatus(_ context.Context, id string, status model.EnrollmentStatus) (*model.EnrollmentRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.items[id]
	if !ok {
		return nil, apperr.Newf(apperr.CodeEnrollmentRequestNotFound, "enrollment request %s not found", id)
	}
	r.Status = status
	r.UpdatedAt = s.clock.next()
	s.items[id] = r
	return &r, nil
}

func (s *Enrollments) Delete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return false, nil
	}
	delete(s.items, id)
	return true, nil
}

func (s *Enrollments) Window(_ context.Context, since *time.Time) ([]model.EnrollmentRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.EnrollmentRequest
	for _, r := range s.items {
		if since == nil || !r.CreatedAt.Before(*since) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
