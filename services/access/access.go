package access

import "grandstay/models"

// Action is a coarse operation class checked against the capability table.
type Action string

const (
	ActionRead    Action = "read"
	ActionCreate  Action = "create"
	ActionUpdate  Action = "update"
	ActionDelete  Action = "delete"
	ActionApprove Action = "approve"
)

// Resource names an entity class guarded by permissions.
type Resource string

const (
	ResourceBooking      Resource = "booking"
	ResourceRoom         Resource = "room"
	ResourceUser         Resource = "user"
	ResourceReport       Resource = "report"
	ResourceNotification Resource = "notification"
	ResourcePayment      Resource = "payment"
)

type grant struct {
	action   Action
	resource Resource
}

// grants is the precomputed capability set per role. Roles do not inherit at
// runtime; the superadmin set is a strict superset of admin, which is a strict
// superset of user.
var grants = map[models.Role]map[grant]bool{
	models.RoleUser:       buildGrants(userGrants),
	models.RoleAdmin:      buildGrants(append(userGrants, adminGrants...)),
	models.RoleSuperAdmin: buildGrants(append(append(userGrants, adminGrants...), superAdminGrants...)),
}

var userGrants = []grant{
	{ActionRead, ResourceRoom},
	{ActionCreate, ResourceBooking},
	{ActionRead, ResourceBooking},
	{ActionCreate, ResourcePayment},
	{ActionRead, ResourceNotification},
	{ActionUpdate, ResourceNotification},
	{ActionRead, ResourceUser},
	{ActionUpdate, ResourceUser},
}

var adminGrants = []grant{
	{ActionCreate, ResourceRoom},
	{ActionUpdate, ResourceRoom},
	{ActionDelete, ResourceRoom},
	{ActionUpdate, ResourceBooking},
	{ActionApprove, ResourceBooking},
	{ActionUpdate, ResourcePayment},
	{ActionRead, ResourceReport},
}

var superAdminGrants = []grant{
	{ActionCreate, ResourceUser},
	{ActionDelete, ResourceUser},
}

func buildGrants(list []grant) map[grant]bool {
	m := make(map[grant]bool, len(list))
	for _, g := range list {
		m[g] = true
	}
	return m
}

// HasPermission reports whether the role may perform action on resource.
func HasPermission(role models.Role, action Action, resource Resource) bool {
	set, ok := grants[role]
	if !ok {
		return false
	}
	return set[grant{action, resource}]
}
