package auth

import "github.com/supplychainlens/monitoring-api/internal/models"

// Context is the resolved identity attached to a request after the full
// validation chain succeeds. Downstream handlers treat it as read-only.
type Context struct {
	UserID     uint64
	Email      string
	GlobalRole models.GlobalRole

	// Working organization, when the caller has exactly one membership or
	// named one explicitly. Nil otherwise.
	OrganizationID   *uint64
	OrganizationRole *models.OrganizationRole

	// All active memberships, loaded fresh per request.
	Memberships []models.OrganizationMember
}

// MembershipFor returns the caller's membership in the given organization.
func (a *Context) MembershipFor(organizationID uint64) (*models.OrganizationMember, bool) {
	for i := range a.Memberships {
		if a.Memberships[i].OrganizationID == organizationID {
			return &a.Memberships[i], true
		}
	}
	return nil, false
}

// OrganizationIDs returns every organization the caller belongs to.
func (a *Context) OrganizationIDs() []uint64 {
	ids := make([]uint64, len(a.Memberships))
	for i, m := range a.Memberships {
		ids[i] = m.OrganizationID
	}
	return ids
}
