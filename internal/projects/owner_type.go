package projects

import (
	"fmt"
	"strings"
)

const (
	ownerTypeUserConstant              OwnerType = "user"
	ownerTypeOrganizationConstant      OwnerType = "org"
	ownerTypeEmptyErrorMessageConstant           = "owner type must be provided"
	ownerTypeInvalidTemplateConstant             = "owner type %q is not supported"
)

// OwnerType enumerates the account namespaces a project board can live under.
type OwnerType string

// UserOwnerType identifies boards owned by a personal account.
const UserOwnerType OwnerType = ownerTypeUserConstant

// OrganizationOwnerType identifies boards owned by an organization account.
const OrganizationOwnerType OwnerType = ownerTypeOrganizationConstant

// ParseOwnerType normalizes textual owner type values.
func ParseOwnerType(ownerTypeValue string) (OwnerType, error) {
	trimmedValue := strings.TrimSpace(ownerTypeValue)
	if len(trimmedValue) == 0 {
		return "", fmt.Errorf(ownerTypeEmptyErrorMessageConstant)
	}

	lowerCasedValue := strings.ToLower(trimmedValue)
	switch OwnerType(lowerCasedValue) {
	case UserOwnerType:
		return UserOwnerType, nil
	case OrganizationOwnerType:
		return OrganizationOwnerType, nil
	default:
		return "", fmt.Errorf(ownerTypeInvalidTemplateConstant, ownerTypeValue)
	}
}
