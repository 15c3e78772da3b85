package group

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrGroupNotFound = errors.New("group not found")
	ErrAlreadyMember = errors.New("already a member of this group")
	ErrEmptyName     = errors.New("name must not be empty")
)

const (
	codeLength  = 5
	codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// How many collisions we tolerate before giving up on code generation.
	codeAttempts = 10
)

// Repository is the persistence boundary for groups.
type Repository interface {
	Create(ctx context.Context, g *Group) error
	GetByID(ctx context.Context, id string) (*Group, error)
	GetByCode(ctx context.Context, code string) (*Group, error)
	ListByMember(ctx context.Context, member string) ([]*Group, error)
	UpdateMembers(ctx context.Context, id string, members []string) error
}

// Service handles group business logic.
type Service struct {
	repo Repository
}

// NewService creates a new group service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create creates a group with a fresh unique join code and the creator as
// its first member.
func (s *Service) Create(ctx context.Context, creator string, req *CreateGroupRequest) (*Group, error) {
	if req.Name == "" || creator == "" {
		return nil, ErrEmptyName
	}

	code, err := s.uniqueCode(ctx)
	if err != nil {
		return nil, err
	}

	g := &Group{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Code:      code,
		Members:   []string{creator},
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// Join adds a participant to the group matching the join code.
func (s *Service) Join(ctx context.Context, member string, req *JoinGroupRequest) (*Group, error) {
	if member == "" {
		return nil, ErrEmptyName
	}

	g, err := s.repo.GetByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGroupNotFound
	}
	if g.HasMember(member) {
		return nil, ErrAlreadyMember
	}

	g.Members = append(g.Members, member)
	if err := s.repo.UpdateMembers(ctx, g.ID, g.Members); err != nil {
		return nil, err
	}
	return g, nil
}

// GetByID retrieves a group by its ID.
func (s *Service) GetByID(ctx context.Context, id string) (*Group, error) {
	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGroupNotFound
	}
	return g, nil
}

// ListByMember retrieves every group the participant belongs to.
func (s *Service) ListByMember(ctx context.Context, member string) ([]*Group, error) {
	return s.repo.ListByMember(ctx, member)
}

// uniqueCode generates a join code and retries on collision.
func (s *Service) uniqueCode(ctx context.Context) (string, error) {
	for range codeAttempts {
		code := randomCode()
		existing, err := s.repo.GetByCode(ctx, code)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return code, nil
		}
	}
	return "", errors.New("could not generate a unique join code")
}

func randomCode() string {
	buf := make([]byte, codeLength)
	for i := range buf {
		buf[i] = codeCharset[rand.IntN(len(codeCharset))]
	}
	return string(buf)
}
