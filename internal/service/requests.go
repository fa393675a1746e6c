package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cdah-platform/access-hub/internal/ids"
	"github.com/cdah-platform/access-hub/internal/store"
)

// SubmitRequestParams are the fields collected by the access request form.
type SubmitRequestParams struct {
	Name   string
	Email  string
	Org    string
	Role   store.Role
	Reason string
}

// SubmitRequest records a pending access request for admin review.
func (s *Service) SubmitRequest(ctx context.Context, p SubmitRequestParams) (store.AccessRequest, error) {
	email := strings.TrimSpace(p.Email)
	if email == "" || strings.TrimSpace(p.Name) == "" {
		return store.AccessRequest{}, fmt.Errorf("%w: name and email are required", ErrInvalidCredentials)
	}
	role := p.Role
	if role == "" {
		role = store.RoleUser
	}
	if !role.Valid() {
		return store.AccessRequest{}, fmt.Errorf("%w: %s", ErrInvalidRole, role)
	}

	request := store.AccessRequest{
		ID:        ids.New(),
		Name:      strings.TrimSpace(p.Name),
		Email:     email,
		Org:       strings.TrimSpace(p.Org),
		Role:      role,
		Reason:    strings.TrimSpace(p.Reason),
		Status:    store.StatusPending,
		CreatedAt: s.now().UTC(),
	}
	if err := s.requests.CreateRequest(ctx, request); err != nil {
		return store.AccessRequest{}, fmt.Errorf("%w: failed to record request: %v", ErrInternal, err)
	}
	return request, nil
}

// ListRequests returns every access request for the admin review queue.
func (s *Service) ListRequests(ctx context.Context) ([]store.AccessRequest, error) {
	requests, err := s.requests.ListRequests(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list requests: %v", ErrInternal, err)
	}
	return requests, nil
}

// ApproveRequest marks a request approved and, when an account with the
// request's email exists, marks that account approved too.
func (s *Service) ApproveRequest(ctx context.Context, id string) error {
	request, err := s.requests.FindRequest(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrRequestNotFound, id)
		}
		return fmt.Errorf("%w: failed to look up request: %v", ErrInternal, err)
	}

	if err := s.requests.SetRequestStatus(ctx, id, store.StatusApproved); err != nil {
		return fmt.Errorf("%w: failed to update request: %v", ErrInternal, err)
	}

	user, err := s.users.FindUserByEmail(ctx, request.Email)
	if errors.Is(err, store.ErrNotFound) {
		// no account yet; approval takes effect when they register
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: failed to look up account: %v", ErrInternal, err)
	}
	if err := s.users.SetApproved(ctx, user.ID, true); err != nil {
		return fmt.Errorf("%w: failed to approve account: %v", ErrInternal, err)
	}
	return nil
}

// DenyRequest marks a request denied.
func (s *Service) DenyRequest(ctx context.Context, id string) error {
	err := s.requests.SetRequestStatus(ctx, id, store.StatusDenied)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrRequestNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("%w: failed to update request: %v", ErrInternal, err)
	}
	return nil
}
