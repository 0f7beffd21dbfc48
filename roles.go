package authclient

// IsValidRole checks if the role is one of the predefined platform roles
func IsValidRole(r Role) bool {
	switch r {
	case RoleTenant, RoleLandlord, RoleOwner, RoleBroker, RoleAdmin:
		return true
	default:
		return false
	}
}

// ParseRole safely parses a string into a Role
func ParseRole(roleStr string) (Role, bool) {
	role := Role(roleStr)
	return role, IsValidRole(role)
}

// GetAllRoles returns all predefined roles
func GetAllRoles() []Role {
	return []Role{
		RoleTenant,
		RoleLandlord,
		RoleOwner,
		RoleBroker,
		RoleAdmin,
	}
}

// IsValidLanguage checks a preferred language code
func IsValidLanguage(l Language) bool {
	switch l {
	case LanguageEnglish, LanguageAmharic, LanguageOromo:
		return true
	default:
		return false
	}
}

// IsValidCurrency checks a preferred currency code
func IsValidCurrency(c Currency) bool {
	switch c {
	case CurrencyETB, CurrencyUSD:
		return true
	default:
		return false
	}
}
