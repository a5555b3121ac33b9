package affiliate

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var ErrEmptyCreatorCode = errors.New("creator code must not be empty")

// Affiliate is a creator who promotes routines and earns attribution for
// carts created through their links.
type Affiliate struct {
	id          uuid.UUID
	creatorCode string
	displayName string
	isActive    bool
}

func NewAffiliate(id uuid.UUID, creatorCode, displayName string, isActive bool) (*Affiliate, error) {
	code := strings.TrimSpace(creatorCode)
	if code == "" {
		return nil, ErrEmptyCreatorCode
	}
	return &Affiliate{
		id:          id,
		creatorCode: code,
		displayName: displayName,
		isActive:    isActive,
	}, nil
}

func (a *Affiliate) ID() uuid.UUID {
	return a.id
}

func (a *Affiliate) CreatorCode() string {
	return a.creatorCode
}

func (a *Affiliate) DisplayName() string {
	return a.displayName
}

func (a *Affiliate) IsActive() bool {
	return a.isActive
}
