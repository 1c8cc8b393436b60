package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yoku/guildmaster/modules/organisation/domain/aggregates/invitation"
	"github.com/yoku/guildmaster/modules/organisation/domain/aggregates/member"
	"github.com/yoku/guildmaster/modules/organisation/domain/aggregates/organisation"
	"github.com/yoku/guildmaster/modules/organisation/domain/entities/userprofile"
	"github.com/yoku/guildmaster/modules/organisation/permissions"
	"github.com/yoku/guildmaster/pkg/composables"
	"github.com/yoku/guildmaster/pkg/eventbus"
	"github.com/yoku/guildmaster/pkg/serrors"
)

var (
	// ErrUnknownUser rejects accepting an invitation with an email the user
	// directory cannot resolve.
	ErrUnknownUser = serrors.InvalidArgument("INVITATION_UNKNOWN_USER", "no user is registered for this email")
	// ErrNoPendingInvite rejects revoking when no pending invitation exists
	// for the organisation and email.
	ErrNoPendingInvite = serrors.InvalidArgument("INVITATION_NO_PENDING", "no pending invitation exists for this email")
)

// InvitationWithProfile pairs an invitation with the best-effort directory
// profile of the invited user. Profile is nil for emails unknown to the
// directory.
type InvitationWithProfile struct {
	Invitation invitation.Invitation
	User       *userprofile.Profile
}

type InvitationService struct {
	repo      invitation.Repository
	orgs      organisation.Repository
	members   *MemberService
	perms     *PermissionService
	directory userprofile.Directory
	publisher eventbus.EventBus
	validity  time.Duration
}

func NewInvitationService(
	repo invitation.Repository,
	orgs organisation.Repository,
	members *MemberService,
	perms *PermissionService,
	directory userprofile.Directory,
	publisher eventbus.EventBus,
	validity time.Duration,
) *InvitationService {
	return &InvitationService{
		repo:      repo,
		orgs:      orgs,
		members:   members,
		perms:     perms,
		directory: directory,
		publisher: publisher,
		validity:  validity,
	}
}

// Create issues a PENDING invitation for the email. At most one pending
// invitation per (organisation, email) may exist; the pre-check race is
// closed by the storage unique constraint, which surfaces as the same error.
// knownUserID optionally pins the invitation to a directory user whose email
// must match.
func (s *InvitationService) Create(ctx context.Context, organisationID uuid.UUID, email string, knownUserID uuid.UUID) (InvitationWithProfile, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var known *userprofile.Profile
	if knownUserID != uuid.Nil {
		profiles, err := s.directory.FindByIDs(ctx, []uuid.UUID{knownUserID})
		if err != nil {
			composables.UseLogger(ctx).WithError(err).Warn("user directory lookup failed during invitation create")
		} else if len(profiles) > 0 {
			if !strings.EqualFold(profiles[0].Email, email) {
				return InvitationWithProfile{}, invitation.ErrEmailMismatch
			}
			known = &profiles[0]
		}
	}

	if _, err := s.orgs.GetByID(ctx, organisationID); err != nil {
		return InvitationWithProfile{}, err
	}
	if _, err := s.perms.Require(ctx, organisationID, permissions.MemberInvite); err != nil {
		return InvitationWithProfile{}, err
	}

	if _, err := s.repo.FindPending(ctx, organisationID, email); err == nil {
		return InvitationWithProfile{}, invitation.ErrActiveInviteExists
	}

	var opts []invitation.Option
	if knownUserID != uuid.Nil {
		opts = append(opts, invitation.WithUserID(knownUserID))
	}

	var created invitation.Invitation
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.repo.Create(txCtx, invitation.New(organisationID, email, s.validity, opts...))
		return err
	})
	if err != nil {
		return InvitationWithProfile{}, err
	}

	s.publisher.Publish(invitation.CreatedEvent{Result: created})
	return InvitationWithProfile{Invitation: created, User: known}, nil
}

// Accept settles a pending invitation and creates the membership in the same
// transaction. The token only matches pending invitations, so settled
// invitations cannot be replayed.
func (s *InvitationService) Accept(ctx context.Context, token, email string) (member.Member, error) {
	inv, err := s.repo.GetPendingByToken(ctx, token)
	if err != nil {
		return member.Member{}, err
	}

	user, err := s.directory.FindByEmail(ctx, email)
	if err != nil {
		return member.Member{}, ErrUnknownUser
	}

	if err := validateSettlement(inv, email); err != nil {
		return member.Member{}, err
	}

	var added member.Member
	err = composables.InTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.UpdateStatus(txCtx, inv.ID(), invitation.StatusAccepted); err != nil {
			return err
		}
		var err error
		added, err = s.members.AddFromInvitation(txCtx, inv, user)
		return err
	})
	if err != nil {
		return member.Member{}, err
	}

	s.publisher.Publish(invitation.SettledEvent{Result: inv.Settled(invitation.StatusAccepted)})
	return added, nil
}

// Reject settles a pending invitation without creating a membership.
func (s *InvitationService) Reject(ctx context.Context, token, email string) error {
	inv, err := s.repo.GetPendingByToken(ctx, token)
	if err != nil {
		return err
	}
	if err := validateSettlement(inv, email); err != nil {
		return err
	}

	err = composables.InTx(ctx, func(txCtx context.Context) error {
		return s.repo.UpdateStatus(txCtx, inv.ID(), invitation.StatusRejected)
	})
	if err != nil {
		return err
	}

	s.publisher.Publish(invitation.SettledEvent{Result: inv.Settled(invitation.StatusRejected)})
	return nil
}

// Revoke hard-deletes the pending invitation for the email. Distinct from
// rejection: no terminal status is recorded.
func (s *InvitationService) Revoke(ctx context.Context, organisationID uuid.UUID, email string) error {
	if _, err := s.perms.Require(ctx, organisationID, permissions.MemberInvite); err != nil {
		return err
	}

	inv, err := s.repo.FindPending(ctx, organisationID, email)
	if err != nil {
		return ErrNoPendingInvite
	}

	return composables.InTx(ctx, func(txCtx context.Context) error {
		return s.repo.Delete(txCtx, inv.ID())
	})
}

func (s *InvitationService) GetByOrganisationID(ctx context.Context, organisationID uuid.UUID, status invitation.Status) ([]InvitationWithProfile, error) {
	invs, err := s.repo.GetByOrganisationID(ctx, organisationID)
	if err != nil {
		return nil, err
	}
	return s.withProfiles(ctx, filterByStatus(invs, status)), nil
}

// GetByUserID lists the invitations addressed to the user: those pinned to
// the user ID at creation plus, best-effort, those matching the email the
// directory has on file. A failing directory degrades to the pinned set.
func (s *InvitationService) GetByUserID(ctx context.Context, userID uuid.UUID, status invitation.Status) ([]InvitationWithProfile, error) {
	invs, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if profiles, err := s.directory.FindByIDs(ctx, []uuid.UUID{userID}); err != nil {
		composables.UseLogger(ctx).WithError(err).Warn("user directory lookup failed while listing invitations")
	} else if len(profiles) > 0 {
		byEmail, err := s.repo.GetByEmail(ctx, profiles[0].Email)
		if err != nil {
			return nil, err
		}
		seen := make(map[uuid.UUID]struct{}, len(invs))
		for _, inv := range invs {
			seen[inv.ID()] = struct{}{}
		}
		for _, inv := range byEmail {
			if _, ok := seen[inv.ID()]; !ok {
				invs = append(invs, inv)
			}
		}
	}

	return s.withProfiles(ctx, filterByStatus(invs, status)), nil
}

// ExpireStalePending transitions pending invitations past their expiry to
// EXPIRED. Idempotent; safe to re-run on a schedule.
func (s *InvitationService) ExpireStalePending(ctx context.Context) (int64, error) {
	var expired int64
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		var err error
		expired, err = s.repo.ExpireStale(txCtx)
		return err
	})
	if err != nil {
		return 0, err
	}
	if expired > 0 {
		composables.UseLogger(ctx).WithField("count", expired).Info("expired stale invitations")
	}
	return expired, nil
}

func validateSettlement(inv invitation.Invitation, email string) error {
	if !inv.IsAcceptable() {
		return invitation.ErrNoLongerValid
	}
	if !strings.EqualFold(inv.Email(), email) {
		return invitation.ErrEmailMismatch
	}
	return nil
}

func filterByStatus(invs []invitation.Invitation, status invitation.Status) []invitation.Invitation {
	if status == "" {
		return invs
	}
	out := make([]invitation.Invitation, 0, len(invs))
	for _, inv := range invs {
		if inv.Status() == status {
			out = append(out, inv)
		}
	}
	return out
}

func (s *InvitationService) withProfiles(ctx context.Context, invs []invitation.Invitation) []InvitationWithProfile {
	out := make([]InvitationWithProfile, 0, len(invs))
	for _, inv := range invs {
		enriched := InvitationWithProfile{Invitation: inv}
		if profile, err := s.directory.FindByEmail(ctx, inv.Email()); err == nil {
			p := profile
			enriched.User = &p
		}
		out = append(out, enriched)
	}
	return out
}
