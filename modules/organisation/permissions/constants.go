package permissions

import "github.com/yoku/guildmaster/modules/organisation/domain/entities/permission"

var (
	OrganisationEdit = &permission.Permission{
		ID:          1,
		Name:        "ORGANISATION_EDIT",
		Description: "Edit organisation profile and settings",
	}
	OrganisationDelete = &permission.Permission{
		ID:          2,
		Name:        "ORGANISATION_DELETE",
		Description: "Delete the organisation",
	}
	OrganisationViewBilling = &permission.Permission{
		ID:          3,
		Name:        "ORGANISATION_VIEW_BILLING",
		Description: "View organisation billing details",
	}
	OrganisationManageBilling = &permission.Permission{
		ID:          4,
		Name:        "ORGANISATION_MANAGE_BILLING",
		Description: "Manage organisation billing details",
	}
	MemberInvite = &permission.Permission{
		ID:          5,
		Name:        "MEMBER_INVITE",
		Description: "Invite new members to the organisation",
	}
	MemberRemove = &permission.Permission{
		ID:                6,
		Name:              "MEMBER_REMOVE",
		Description:       "Remove members from the organisation",
		RequiresHierarchy: true,
	}
	MemberUpdateRole = &permission.Permission{
		ID:          7,
		Name:        "MEMBER_UPDATE_ROLE",
		Description: "Move members between positions",
	}
	RoleCreate = &permission.Permission{
		ID:          8,
		Name:        "ROLE_CREATE",
		Description: "Create organisation positions",
	}
	RoleDelete = &permission.Permission{
		ID:          9,
		Name:        "ROLE_DELETE",
		Description: "Delete organisation positions",
	}
	RoleUpdate = &permission.Permission{
		ID:          10,
		Name:        "ROLE_UPDATE",
		Description: "Update organisation positions",
	}
	RoleAssignPermission = &permission.Permission{
		ID:          11,
		Name:        "ROLE_ASSIGN_PERMISSION",
		Description: "Assign permissions to positions",
	}
	SurveyCreate = &permission.Permission{
		ID:          12,
		Name:        "SURVEY_CREATE",
		Description: "Create surveys on behalf of the organisation",
	}
	SurveyDelete = &permission.Permission{
		ID:          13,
		Name:        "SURVEY_DELETE",
		Description: "Delete organisation surveys",
	}
	SurveyEdit = &permission.Permission{
		ID:          14,
		Name:        "SURVEY_EDIT",
		Description: "Edit organisation surveys",
	}
	SurveyViewResults = &permission.Permission{
		ID:          15,
		Name:        "SURVEY_VIEW_RESULTS",
		Description: "View organisation survey results",
	}
	AuditView = &permission.Permission{
		ID:          16,
		Name:        "AUDIT_VIEW",
		Description: "View the organisation audit log",
	}
	AuditDownload = &permission.Permission{
		ID:          17,
		Name:        "AUDIT_DOWNLOAD",
		Description: "Download the organisation audit log",
	}
)

// Permissions is the closed catalog; the lookup table is validated against it
// on startup.
var Permissions = []*permission.Permission{
	OrganisationEdit,
	OrganisationDelete,
	OrganisationViewBilling,
	OrganisationManageBilling,
	MemberInvite,
	MemberRemove,
	MemberUpdateRole,
	RoleCreate,
	RoleDelete,
	RoleUpdate,
	RoleAssignPermission,
	SurveyCreate,
	SurveyDelete,
	SurveyEdit,
	SurveyViewResults,
	AuditView,
	AuditDownload,
}

// ByID returns the catalog permission with the given id, or nil.
func ByID(id int) *permission.Permission {
	for _, p := range Permissions {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// ByName returns the catalog permission with the given name, or nil.
func ByName(name string) *permission.Permission {
	for _, p := range Permissions {
		if p.Name == name {
			return p
		}
	}
	return nil
}
