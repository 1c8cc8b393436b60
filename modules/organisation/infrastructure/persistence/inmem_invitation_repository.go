package persistence

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/yoku/guildmaster/modules/organisation/domain/aggregates/invitation"
)

type InmemInvitationRepository struct {
	storage *SafeMap[uuid.UUID, invitation.Invitation]
}

func NewInmemInvitationRepository() *InmemInvitationRepository {
	return &InmemInvitationRepository{
		storage: NewSafeMap[uuid.UUID, invitation.Invitation](),
	}
}

func (r *InmemInvitationRepository) GetByID(_ context.Context, id uuid.UUID) (invitation.Invitation, error) {
	inv, found := r.storage.Get(id)
	if !found {
		return invitation.Invitation{}, invitation.ErrNotFound
	}
	return inv, nil
}

func (r *InmemInvitationRepository) GetPendingByToken(_ context.Context, token string) (invitation.Invitation, error) {
	for _, inv := range r.storage.Values() {
		if inv.Token() == token && inv.Status() == invitation.StatusPending {
			return inv, nil
		}
	}
	return invitation.Invitation{}, invitation.ErrNotFound
}

func (r *InmemInvitationRepository) FindPending(_ context.Context, organisationID uuid.UUID, email string) (invitation.Invitation, error) {
	for _, inv := range r.storage.Values() {
		if inv.OrganisationID() == organisationID &&
			strings.EqualFold(inv.Email(), email) &&
			inv.Status() == invitation.StatusPending {
			return inv, nil
		}
	}
	return invitation.Invitation{}, invitation.ErrNotFound
}

func (r *InmemInvitationRepository) GetByOrganisationID(_ context.Context, organisationID uuid.UUID) ([]invitation.Invitation, error) {
	out := make([]invitation.Invitation, 0)
	for _, inv := range r.storage.Values() {
		if inv.OrganisationID() == organisationID {
			out = append(out, inv)
		}
	}
	sortInvitations(out)
	return out, nil
}

func (r *InmemInvitationRepository) GetByEmail(_ context.Context, email string) ([]invitation.Invitation, error) {
	out := make([]invitation.Invitation, 0)
	for _, inv := range r.storage.Values() {
		if strings.EqualFold(inv.Email(), email) {
			out = append(out, inv)
		}
	}
	sortInvitations(out)
	return out, nil
}

func (r *InmemInvitationRepository) GetByUserID(_ context.Context, userID uuid.UUID) ([]invitation.Invitation, error) {
	out := make([]invitation.Invitation, 0)
	for _, inv := range r.storage.Values() {
		if inv.UserID() == userID {
			out = append(out, inv)
		}
	}
	sortInvitations(out)
	return out, nil
}

func (r *InmemInvitationRepository) Create(_ context.Context, data invitation.Invitation) (invitation.Invitation, error) {
	for _, inv := range r.storage.Values() {
		if inv.OrganisationID() == data.OrganisationID() &&
			strings.EqualFold(inv.Email(), data.Email()) &&
			inv.Status() == invitation.StatusPending {
			return invitation.Invitation{}, invitation.ErrActiveInviteExists
		}
	}
	r.storage.Set(data.ID(), data)
	return data, nil
}

func (r *InmemInvitationRepository) UpdateStatus(_ context.Context, id uuid.UUID, status invitation.Status) error {
	inv, found := r.storage.Get(id)
	if !found {
		return invitation.ErrNotFound
	}
	r.storage.Set(id, inv.Settled(status))
	return nil
}

func (r *InmemInvitationRepository) Delete(_ context.Context, id uuid.UUID) error {
	if _, found := r.storage.Get(id); !found {
		return invitation.ErrNotFound
	}
	r.storage.Delete(id)
	return nil
}

func (r *InmemInvitationRepository) ExpireStale(_ context.Context) (int64, error) {
	var expired int64
	for _, inv := range r.storage.Values() {
		if inv.Status() == invitation.StatusPending && inv.IsExpired() {
			r.storage.Set(inv.ID(), inv.Settled(invitation.StatusExpired))
			expired++
		}
	}
	return expired, nil
}

func sortInvitations(invs []invitation.Invitation) {
	sort.Slice(invs, func(i, j int) bool {
		return invs[i].CreatedAt().After(invs[j].CreatedAt())
	})
}
