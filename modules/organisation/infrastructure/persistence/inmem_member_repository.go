package persistence

import (
	"context"

	"github.com/google/uuid"

	"github.com/yoku/guildmaster/modules/organisation/domain/aggregates/member"
)

type memberKey struct {
	organisationID uuid.UUID
	userID         uuid.UUID
}

type InmemMemberRepository struct {
	storage *SafeMap[memberKey, member.Member]
}

func NewInmemMemberRepository() *InmemMemberRepository {
	return &InmemMemberRepository{
		storage: NewSafeMap[memberKey, member.Member](),
	}
}

func (r *InmemMemberRepository) Get(_ context.Context, organisationID, userID uuid.UUID) (member.Member, error) {
	m, found := r.storage.Get(memberKey{organisationID: organisationID, userID: userID})
	if !found {
		return member.Member{}, member.ErrNotFound
	}
	return m, nil
}

func (r *InmemMemberRepository) GetByOrganisationID(_ context.Context, organisationID uuid.UUID) ([]member.Member, error) {
	out := make([]member.Member, 0)
	for _, m := range r.storage.Values() {
		if m.OrganisationID() == organisationID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *InmemMemberRepository) GetByPositionID(_ context.Context, positionID uuid.UUID) ([]member.Member, error) {
	out := make([]member.Member, 0)
	for _, m := range r.storage.Values() {
		if m.PositionID() == positionID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *InmemMemberRepository) GetByUserID(_ context.Context, userID uuid.UUID) ([]member.Member, error) {
	out := make([]member.Member, 0)
	for _, m := range r.storage.Values() {
		if m.UserID() == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *InmemMemberRepository) Create(_ context.Context, data member.Member) (member.Member, error) {
	key := memberKey{organisationID: data.OrganisationID(), userID: data.UserID()}
	if _, found := r.storage.Get(key); found {
		return member.Member{}, member.ErrAlreadyExists
	}
	r.storage.Set(key, data)
	return data, nil
}

func (r *InmemMemberRepository) UpdatePosition(_ context.Context, organisationID, userID, positionID uuid.UUID) error {
	key := memberKey{organisationID: organisationID, userID: userID}
	m, found := r.storage.Get(key)
	if !found {
		return member.ErrNotFound
	}
	r.storage.Set(key, m.MovedTo(positionID))
	return nil
}

func (r *InmemMemberRepository) MoveAllToPosition(_ context.Context, fromPositionID, toPositionID uuid.UUID) (int64, error) {
	var moved int64
	for _, m := range r.storage.Values() {
		if m.PositionID() == fromPositionID {
			r.storage.Set(memberKey{organisationID: m.OrganisationID(), userID: m.UserID()}, m.MovedTo(toPositionID))
			moved++
		}
	}
	return moved, nil
}

func (r *InmemMemberRepository) Delete(_ context.Context, organisationID, userID uuid.UUID) error {
	key := memberKey{organisationID: organisationID, userID: userID}
	if _, found := r.storage.Get(key); !found {
		return member.ErrNotFound
	}
	r.storage.Delete(key)
	return nil
}
