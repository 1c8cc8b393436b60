package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/yoku/guildmaster/modules/organisation/domain/aggregates/organisation"
)

type InmemOrganisationRepository struct {
	storage *SafeMap[uuid.UUID, organisation.Organisation]
}

func NewInmemOrganisationRepository() *InmemOrganisationRepository {
	return &InmemOrganisationRepository{
		storage: NewSafeMap[uuid.UUID, organisation.Organisation](),
	}
}

func (r *InmemOrganisationRepository) GetByID(_ context.Context, id uuid.UUID) (organisation.Organisation, error) {
	org, found := r.storage.Get(id)
	if !found {
		return organisation.Organisation{}, organisation.ErrNotFound
	}
	return org, nil
}

func (r *InmemOrganisationRepository) GetByName(_ context.Context, name string) (organisation.Organisation, error) {
	for _, org := range r.storage.Values() {
		if strings.EqualFold(org.Name(), name) {
			return org, nil
		}
	}
	return organisation.Organisation{}, organisation.ErrNotFound
}

func (r *InmemOrganisationRepository) Create(_ context.Context, data organisation.Organisation) (organisation.Organisation, error) {
	for _, org := range r.storage.Values() {
		if strings.EqualFold(org.Name(), data.Name()) {
			return organisation.Organisation{}, organisation.ErrNameTaken
		}
		if strings.EqualFold(org.Email(), data.Email()) {
			return organisation.Organisation{}, organisation.ErrEmailTaken
		}
	}
	r.storage.Set(data.ID(), data)
	return data, nil
}

func (r *InmemOrganisationRepository) Update(_ context.Context, data organisation.Organisation) (organisation.Organisation, error) {
	if _, found := r.storage.Get(data.ID()); !found {
		return organisation.Organisation{}, organisation.ErrNotFound
	}
	r.storage.Set(data.ID(), data)
	return data, nil
}

func (r *InmemOrganisationRepository) Delete(_ context.Context, id uuid.UUID) error {
	if _, found := r.storage.Get(id); !found {
		return organisation.ErrNotFound
	}
	r.storage.Delete(id)
	return nil
}
