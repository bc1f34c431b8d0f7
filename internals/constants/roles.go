package constants

import "fmt"

const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
)

// Role error message templates
const (
	ErrOnlyAdminsCanAccess   = "Only admins may access %s."
	ErrOnlyStaffCanAccess    = "Only admins or operators may access %s."
	ErrPortalPasswordInvalid = "Customer ID or password is incorrect."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorStaff(feature string) string {
	return fmt.Sprintf(ErrOnlyStaffCanAccess, feature)
}
