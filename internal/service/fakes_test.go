package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dealmarket/bff/internal/identity"
	"github.com/dealmarket/bff/internal/model"
	"github.com/dealmarket/bff/internal/repository"
)

// sequenceStamper hands out 1000, 1001, ... so tests can predict keys.
type sequenceStamper struct {
	next int
}

func (s *sequenceStamper) Stamp(key string) string {
	if s.next == 0 {
		s.next = 1000
	}
	n := s.next
	s.next++
	return fmt.Sprintf("%s_%d", key, n)
}

type fakePresigner struct {
	mu   sync.Mutex
	keys []string
	err  error
}

func (p *fakePresigner) PresignPut(_ context.Context, key string, expiry time.Duration) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, key)
	if p.err != nil {
		return "", p.err
	}
	return fmt.Sprintf("https://storage.test/%s?expires=%d", key, int(expiry.Seconds())), nil
}

func newIssuer(presigner *fakePresigner) *ImageIssuer {
	return NewImageIssuer(&sequenceStamper{}, presigner, 15*time.Minute)
}

type fakeDealRepo struct {
	deals   map[string]*model.Deal
	creates int
	updates int
	failOn  error
}

func newFakeDealRepo(deals ...*model.Deal) *fakeDealRepo {
	r := &fakeDealRepo{deals: map[string]*model.Deal{}}
	for _, d := range deals {
		r.deals[d.ID] = d
	}
	return r
}

func (r *fakeDealRepo) Create(_ context.Context, deal *model.Deal) error {
	if r.failOn != nil {
		return r.failOn
	}
	r.creates++
	r.deals[deal.ID] = cloneDeal(deal)
	return nil
}

func (r *fakeDealRepo) ByID(_ context.Context, id string) (*model.Deal, error) {
	deal, ok := r.deals[id]
	if !ok {
		return nil, repository.ErrDealNotFound
	}
	return cloneDeal(deal), nil
}

func (r *fakeDealRepo) List(_ context.Context, filter repository.DealFilter) ([]*model.Deal, error) {
	var deals []*model.Deal
	for _, d := range r.deals {
		if filter.Status != "" && d.Status != filter.Status {
			continue
		}
		if filter.CreatorID != "" && d.CreatorID != filter.CreatorID {
			continue
		}
		if filter.CategoryID != "" && d.CategoryID != filter.CategoryID {
			continue
		}
		deals = append(deals, cloneDeal(d))
	}
	sort.Slice(deals, func(i, j int) bool { return deals[i].ID < deals[j].ID })
	return deals, nil
}

func (r *fakeDealRepo) Update(_ context.Context, deal *model.Deal) error {
	if _, ok := r.deals[deal.ID]; !ok {
		return repository.ErrDealNotFound
	}
	r.updates++
	r.deals[deal.ID] = cloneDeal(deal)
	return nil
}

func (r *fakeDealRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.deals[id]; !ok {
		return repository.ErrDealNotFound
	}
	delete(r.deals, id)
	return nil
}

// cloneDeal copies the deal and its images so the fake behaves like a
// database: later mutations by the caller do not leak into storage.
func cloneDeal(d *model.Deal) *model.Deal {
	c := *d
	c.Images = make([]*model.Image, len(d.Images))
	for i, img := range d.Images {
		copied := *img
		copied.PresignURL = ""
		c.Images[i] = &copied
	}
	return &c
}

type fakeImageRepo struct {
	images    map[string]*model.Image
	updates   int
	lookupErr error
}

func newFakeImageRepo(images ...*model.Image) *fakeImageRepo {
	r := &fakeImageRepo{images: map[string]*model.Image{}}
	for _, img := range images {
		r.images[img.ID] = img
	}
	return r
}

func (r *fakeImageRepo) ByOwner(_ context.Context, ownerID string) ([]*model.Image, error) {
	var images []*model.Image
	for _, img := range r.images {
		if img.OwnerID == ownerID {
			copied := *img
			images = append(images, &copied)
		}
	}
	return images, nil
}

func (r *fakeImageRepo) ByStorageKey(_ context.Context, storageKey string) (*model.Image, error) {
	if r.lookupErr != nil {
		return nil, r.lookupErr
	}
	for _, img := range r.images {
		if img.StorageKey == storageKey {
			copied := *img
			return &copied, nil
		}
	}
	return nil, repository.ErrImageNotFound
}

func (r *fakeImageRepo) Save(_ context.Context, ownerID string, images []*model.Image) error {
	for _, img := range images {
		copied := *img
		copied.OwnerID = ownerID
		copied.PresignURL = ""
		r.images[img.ID] = &copied
	}
	return nil
}

func (r *fakeImageRepo) UpdateStatus(_ context.Context, id, status string) error {
	img, ok := r.images[id]
	if !ok {
		return repository.ErrImageNotFound
	}
	r.updates++
	img.Status = status
	return nil
}

type fakeCategoryRepo struct {
	categories map[string]*model.Category
	saves      int
}

func newFakeCategoryRepo(categories ...*model.Category) *fakeCategoryRepo {
	r := &fakeCategoryRepo{categories: map[string]*model.Category{}}
	for _, c := range categories {
		r.categories[c.ID] = c
	}
	return r
}

func (r *fakeCategoryRepo) Create(_ context.Context, category *model.Category) error {
	r.saves++
	copied := *category
	r.categories[category.ID] = &copied
	return nil
}

func (r *fakeCategoryRepo) ByID(_ context.Context, id string) (*model.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, repository.ErrCategoryNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *fakeCategoryRepo) ByName(_ context.Context, name string) (*model.Category, error) {
	for _, c := range r.categories {
		if c.Name == name {
			copied := *c
			return &copied, nil
		}
	}
	return nil, repository.ErrCategoryNotFound
}

func (r *fakeCategoryRepo) List(_ context.Context) ([]*model.Category, error) {
	var categories []*model.Category
	for _, c := range r.categories {
		categories = append(categories, c)
	}
	return categories, nil
}

func (r *fakeCategoryRepo) Update(_ context.Context, category *model.Category) error {
	r.saves++
	copied := *category
	r.categories[category.ID] = &copied
	return nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, id string) error {
	delete(r.categories, id)
	return nil
}

type fakeUserRepo struct {
	users map[string]*model.User
}

func newFakeUserRepo(users ...*model.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[string]*model.User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) find(match func(*model.User) bool) (*model.User, error) {
	for _, u := range r.users {
		if match(u) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) ByID(_ context.Context, id string) (*model.User, error) {
	return r.find(func(u *model.User) bool { return u.ID == id })
}

func (r *fakeUserRepo) ByIdentityID(_ context.Context, identityID string) (*model.User, error) {
	return r.find(func(u *model.User) bool { return u.IdentityID == identityID })
}

func (r *fakeUserRepo) ByEmail(_ context.Context, email string) (*model.User, error) {
	return r.find(func(u *model.User) bool { return u.Email == email })
}

func (r *fakeUserRepo) List(_ context.Context) ([]*model.User, error) {
	var users []*model.User
	for _, u := range r.users {
		users = append(users, u)
	}
	return users, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *model.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	copied := *user
	copied.Avatar = nil
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	delete(r.users, id)
	return nil
}

type fakeAccounts struct {
	created  []identity.Account
	roles    map[string]string
	enabled  map[string]bool
	password map[string]string
	err      error
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{
		roles:    map[string]string{},
		enabled:  map[string]bool{},
		password: map[string]string{},
	}
}

func (a *fakeAccounts) CreateAccount(_ context.Context, account identity.Account, _ string) (string, error) {
	if a.err != nil {
		return "", a.err
	}
	a.created = append(a.created, account)
	return fmt.Sprintf("kc-%d", len(a.created)), nil
}

func (a *fakeAccounts) SetEnabled(_ context.Context, subject string, enabled bool) error {
	a.enabled[subject] = enabled
	return a.err
}

func (a *fakeAccounts) AssignRole(_ context.Context, subject, role string) error {
	a.roles[subject] = role
	return a.err
}

func (a *fakeAccounts) ResetPassword(_ context.Context, subject, password string) error {
	a.password[subject] = password
	return a.err
}

type fakeObjects struct {
	deleted []string
}

func (o *fakeObjects) PresignGet(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://storage.test/" + key + "?get", nil
}

func (o *fakeObjects) Delete(_ context.Context, key string) error {
	o.deleted = append(o.deleted, key)
	return nil
}

var errStorageDown = errors.New("storage unavailable")
