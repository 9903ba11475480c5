package service

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/nourtech/storefront/internal/core/domain"
	"github.com/nourtech/storefront/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID      map[string]*domain.User
	seq       int
	findErr   error
	updateErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Username == domain.NormalizeUsername(user.Username) {
			return nil, domain.ErrUserExists
		}
	}
	r.seq++
	c := cloneUser(user)
	c.ID = fmt.Sprintf("u-%d", r.seq)
	c.Username = domain.NormalizeUsername(c.Username)
	r.byID[c.ID] = c
	return cloneUser(c), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.byID {
		if u.Username == domain.NormalizeUsername(username) {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) List(context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (r *stubUserRepo) UpdatePasswordHash(_ context.Context, id, hash string) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.byID, id)
	return nil
}

type stubBrandRepo struct {
	byID map[string]*domain.Brand
	seq  int
}

func newStubBrandRepo(brands ...*domain.Brand) *stubBrandRepo {
	r := &stubBrandRepo{byID: make(map[string]*domain.Brand)}
	for _, b := range brands {
		r.byID[b.ID] = b
	}
	return r
}

func (r *stubBrandRepo) List(context.Context) ([]*domain.Brand, error) {
	out := make([]*domain.Brand, 0, len(r.byID))
	for _, b := range r.byID {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubBrandRepo) FindByID(_ context.Context, id string) (*domain.Brand, error) {
	b, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrBrandNotFound
	}
	return b, nil
}

func (r *stubBrandRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.Brand, error) {
	var out []*domain.Brand
	for _, id := range ids {
		if b, ok := r.byID[id]; ok {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *stubBrandRepo) Create(_ context.Context, b *domain.Brand) error {
	r.seq++
	b.ID = fmt.Sprintf("b-%d", r.seq)
	r.byID[b.ID] = b
	return nil
}

func (r *stubBrandRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrBrandNotFound
	}
	delete(r.byID, id)
	return nil
}

type stubProductRepo struct {
	byID      map[string]*domain.Product
	seq       int
	lastQuery ports.ProductQuery
	updates   int
}

func newStubProductRepo(products ...*domain.Product) *stubProductRepo {
	r := &stubProductRepo{byID: make(map[string]*domain.Product)}
	for _, p := range products {
		r.byID[p.ID] = p
	}
	return r
}

func cloneProduct(p *domain.Product) *domain.Product {
	c := *p
	c.Images = slices.Clone(p.Images)
	return &c
}

func (r *stubProductRepo) Find(_ context.Context, q ports.ProductQuery) ([]*domain.Product, error) {
	r.lastQuery = q
	var out []*domain.Product
	for _, p := range r.byID {
		if len(q.IDs) > 0 && !slices.Contains(q.IDs, p.ID) {
			continue
		}
		if q.Type != "" && p.Type != q.Type {
			continue
		}
		if q.BrandID != "" && p.BrandID != q.BrandID {
			continue
		}
		out = append(out, cloneProduct(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return cloneProduct(p), nil
}

func (r *stubProductRepo) Create(_ context.Context, p *domain.Product) error {
	r.seq++
	p.ID = fmt.Sprintf("p-%d", r.seq)
	r.byID[p.ID] = cloneProduct(p)
	return nil
}

func (r *stubProductRepo) Update(_ context.Context, id string, patch domain.ProductPatch) (*domain.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	r.updates++
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&p.BrandID, patch.BrandID)
	set(&p.ShortName, patch.ShortName)
	set(&p.Title, patch.Title)
	set(&p.Description, patch.Description)
	set(&p.Specs.GPU, patch.GPU)
	set(&p.Specs.CPU, patch.CPU)
	set(&p.Specs.RAM, patch.RAM)
	set(&p.Specs.Storage, patch.Storage)
	set(&p.Specs.Display, patch.Display)
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Warranty != nil {
		p.Warranty = *patch.Warranty
	}
	if patch.ImagesSet {
		p.Images = slices.Clone(patch.Images)
	}
	return cloneProduct(p), nil
}

func (r *stubProductRepo) Delete(_ context.Context, id string) (*domain.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	delete(r.byID, id)
	return p, nil
}

func (r *stubProductRepo) DeleteByBrand(_ context.Context, brandID string) ([]*domain.Product, error) {
	var out []*domain.Product
	for id, p := range r.byID {
		if p.BrandID == brandID {
			out = append(out, p)
			delete(r.byID, id)
		}
	}
	return out, nil
}

type stubOrderRepo struct {
	byID      map[string]*domain.Order
	seq       int
	lastQuery ports.OrderQuery
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{byID: make(map[string]*domain.Order)}
}

func cloneOrder(o *domain.Order) *domain.Order {
	c := *o
	c.Items = make([]domain.OrderItem, len(o.Items))
	for i, it := range o.Items {
		c.Items[i] = domain.OrderItem{ProductID: it.ProductID, Quantity: it.Quantity}
	}
	return &c
}

func (r *stubOrderRepo) List(_ context.Context, q ports.OrderQuery) ([]*domain.Order, error) {
	r.lastQuery = q
	var out []*domain.Order
	for _, o := range r.byID {
		if q.UserID != "" && o.UserID != q.UserID {
			continue
		}
		if q.Status != "" && o.Status != q.Status {
			continue
		}
		out = append(out, cloneOrder(o))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id string) (*domain.Order, error) {
	o, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return cloneOrder(o), nil
}

func (r *stubOrderRepo) Create(_ context.Context, o *domain.Order) error {
	r.seq++
	o.ID = fmt.Sprintf("o-%d", r.seq)
	r.byID[o.ID] = cloneOrder(o)
	return nil
}

func (r *stubOrderRepo) UpdateStatus(_ context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	o, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	o.Status = status
	return cloneOrder(o), nil
}

type stubContactRepo struct {
	saved *domain.Contact
}

func (r *stubContactRepo) Get(context.Context) (*domain.Contact, error) {
	if r.saved == nil {
		return nil, domain.ErrContactNotFound
	}
	c := *r.saved
	return &c, nil
}

func (r *stubContactRepo) Save(_ context.Context, c *domain.Contact) error {
	clone := *c
	r.saved = &clone
	return nil
}

// ---------------------------------------------------------------------------
// Side-effect recorders
// ---------------------------------------------------------------------------

type recordingCleaner struct {
	mu   sync.Mutex
	urls []string
}

func (c *recordingCleaner) Enqueue(urls ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.urls = append(c.urls, urls...)
}

type stubRevocations struct {
	revoked map[string]time.Time
	err     error
}

func newStubRevocations() *stubRevocations {
	return &stubRevocations{revoked: make(map[string]time.Time)}
}

func (s *stubRevocations) RevokeUser(_ context.Context, userID string, at time.Time) error {
	if s.err != nil {
		return s.err
	}
	s.revoked[userID] = at
	return nil
}

func (s *stubRevocations) RevokedSince(_ context.Context, userID string) (time.Time, bool, error) {
	at, ok := s.revoked[userID]
	return at, ok, nil
}

func (s *stubRevocations) Ping(context.Context) error { return nil }

type stubImageStore struct {
	name        string
	data        []byte
	contentType string
	err         error
}

func (s *stubImageStore) Upload(_ context.Context, name string, data []byte, contentType string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.name, s.data, s.contentType = name, data, contentType
	return "https://cdn.test/" + name, nil
}

func (s *stubImageStore) Delete(context.Context, string) error { return nil }
