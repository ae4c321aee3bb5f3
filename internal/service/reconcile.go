package service

import (
	"fmt"

	"teamup-backend/internal/logger"
	"teamup-backend/internal/repository"

	"github.com/google/uuid"
)

// ReconcileService detects divergence between the team_members rows and the
// denormalized team back-references on profiles. The two are written as
// independent atomic updates with no cross-document transaction, so a crash
// between them (or a deleted team) leaves orphans on one side. This job
// detects both directions; repair stays a manual decision.
type ReconcileService struct {
	teamRepo    repository.TeamRepositoryInterface
	profileRepo repository.ProfileRepositoryInterface
	log         *logger.Logger
}

// NewReconcileService creates a new reconcile service
func NewReconcileService(teamRepo repository.TeamRepositoryInterface, profileRepo repository.ProfileRepositoryInterface) *ReconcileService {
	return &ReconcileService{
		teamRepo:    teamRepo,
		profileRepo: profileRepo,
		log:         logger.New(),
	}
}

// Divergence is one inconsistency between a profile and the membership rows
type Divergence struct {
	// UserID is uuid.Nil for team-level divergence kinds.
	UserID uuid.UUID `json:"user_id"`
	TeamID uuid.UUID `json:"team_id"`
	// "orphaned_profile_ref": the profile lists a team the user is not a
	// member of (or that no longer exists).
	// "missing_profile_ref": the user is a member of a team the profile
	// does not list.
	// "memberless_team": a team row with zero membership rows, e.g. a crash
	// between team insert and the owner membership insert.
	Kind string `json:"kind"`
}

// ReconcileReport summarizes a full divergence scan
type ReconcileReport struct {
	ProfilesScanned int          `json:"profiles_scanned"`
	TeamsScanned    int          `json:"teams_scanned"`
	Divergences     []Divergence `json:"divergences"`
}

const reconcileBatchSize = 200

// Run scans every profile against the membership rows and reports
// divergence in both directions, then scans the teams themselves for rows
// no profile can reach (a memberless team never appears in any profile's
// back-references, so the profile-driven pass alone would miss it).
func (s *ReconcileService) Run() (*ReconcileReport, error) {
	report := &ReconcileReport{Divergences: []Divergence{}}

	offset := 0
	for {
		profiles, _, err := s.profileRepo.GetAll(reconcileBatchSize, offset)
		if err != nil {
			return nil, fmt.Errorf("failed to load profiles: %w", err)
		}
		if len(profiles) == 0 {
			break
		}

		for _, profile := range profiles {
			report.ProfilesScanned++

			refs, err := decodeTeamRefs(profile.Teams)
			if err != nil {
				return nil, fmt.Errorf("failed to parse teams for profile %s: %w", profile.ID, err)
			}
			memberships, err := s.teamRepo.GetMembershipsByUser(profile.UserID)
			if err != nil {
				return nil, fmt.Errorf("failed to load memberships for user %s: %w", profile.UserID, err)
			}

			memberOf := make(map[uuid.UUID]bool, len(memberships))
			for _, m := range memberships {
				memberOf[m.TeamID] = true
			}
			referenced := make(map[uuid.UUID]bool, len(refs))
			for _, ref := range refs {
				referenced[ref.TeamID] = true
				if !memberOf[ref.TeamID] {
					report.Divergences = append(report.Divergences, Divergence{
						UserID: profile.UserID,
						TeamID: ref.TeamID,
						Kind:   "orphaned_profile_ref",
					})
				}
			}
			for _, m := range memberships {
				if !referenced[m.TeamID] {
					report.Divergences = append(report.Divergences, Divergence{
						UserID: profile.UserID,
						TeamID: m.TeamID,
						Kind:   "missing_profile_ref",
					})
				}
			}
		}

		offset += len(profiles)
	}

	offset = 0
	for {
		teams, _, err := s.teamRepo.GetAll(reconcileBatchSize, offset)
		if err != nil {
			return nil, fmt.Errorf("failed to load teams: %w", err)
		}
		if len(teams) == 0 {
			break
		}

		for _, team := range teams {
			report.TeamsScanned++

			count, err := s.teamRepo.GetMemberCount(team.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to count members for team %s: %w", team.ID, err)
			}
			if count == 0 {
				report.Divergences = append(report.Divergences, Divergence{
					TeamID: team.ID,
					Kind:   "memberless_team",
				})
			}
		}

		offset += len(teams)
	}

	if len(report.Divergences) > 0 {
		s.log.WithField("count", len(report.Divergences)).Warn("profile/membership divergence detected")
	}
	return report, nil
}
