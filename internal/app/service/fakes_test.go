package service

import (
	"context"
	"fmt"
	"time"
	"wastetrack/internal/common"
	"wastetrack/internal/domain/model"
)

// In-memory repository fakes. They mirror the uniqueness and not-found
// semantics of the pg implementations.

type fakeUserRepo struct {
	users  []*model.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	for _, existing := range r.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return fmt.Errorf("user with given username or email already exists: %w", common.ErrConflict)
		}
	}
	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now()
	copied := *user
	r.users = append(r.users, &copied)
	return nil
}

func (r *fakeUserRepo) FindByUsernameOrEmail(ctx context.Context, identity string) (*model.User, error) {
	for _, user := range r.users {
		if user.Username == identity || user.Email == identity {
			copied := *user
			return &copied, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id int64) (*model.User, error) {
	for _, user := range r.users {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, common.ErrNotFound
}

type fakeAdminRepo struct {
	admins []*model.Admin
}

func (r *fakeAdminRepo) FindByUsername(ctx context.Context, username string) (*model.Admin, error) {
	for _, admin := range r.admins {
		if admin.Username == username {
			copied := *admin
			return &copied, nil
		}
	}
	return nil, common.ErrNotFound
}

type fakeRequestRepo struct {
	requests []*model.WasteRequest
	owners   map[int64]*model.User
	nextID   int64
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{owners: make(map[int64]*model.User), nextID: 1}
}

func (r *fakeRequestRepo) Create(ctx context.Context, req *model.WasteRequest) error {
	req.ID = r.nextID
	r.nextID++
	req.CreatedAt = time.Now()
	copied := *req
	r.requests = append(r.requests, &copied)
	return nil
}

func (r *fakeRequestRepo) ListByUser(ctx context.Context, userID int64) ([]model.WasteRequest, error) {
	out := []model.WasteRequest{}
	for i := len(r.requests) - 1; i >= 0; i-- { // newest first
		if r.requests[i].UserID == userID {
			out = append(out, *r.requests[i])
		}
	}
	return out, nil
}

func (r *fakeRequestRepo) ListAllWithOwners(ctx context.Context) ([]model.AdminRequestView, error) {
	out := []model.AdminRequestView{}
	for i := len(r.requests) - 1; i >= 0; i-- {
		view := model.AdminRequestView{WasteRequest: *r.requests[i]}
		if owner, ok := r.owners[r.requests[i].UserID]; ok {
			view.OwnerUsername = owner.Username
			view.OwnerFullName = owner.FullName
			view.OwnerPhone = owner.Phone
			view.OwnerAddress = owner.Address
		}
		out = append(out, view)
	}
	return out, nil
}

func (r *fakeRequestRepo) UpdateStatus(ctx context.Context, id int64, status model.RequestStatus) error {
	for _, req := range r.requests {
		if req.ID == id {
			req.Status = status
			return nil
		}
	}
	return common.ErrNotFound
}
