// Package access define los roles, la tabla de permisos por ruta y el guard que decide
// si un rol puede entrar a una pantalla. Todo es puro: sin I/O.
package access

// Role rol de aplicación de un perfil.
type Role string

const (
	RoleUser    Role = "user"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// Identificadores de ruta (pantallas) de la aplicación.
const (
	PathDashboard   = "/dashboard"
	PathIngredients = "/ingredients"
	PathPurchases   = "/purchases"
	PathSuppliers   = "/suppliers"
	PathClients     = "/clients"
	PathProduction  = "/production"
	PathWaste       = "/waste"
	PathCashFlow    = "/cash-flow"
	PathReports     = "/reports"
	PathAudit       = "/audit"
	PathUsers       = "/users"
	PathProfile     = "/profile"
)

// FallbackPath destino de redirección cuando la lista del rol está vacía.
const FallbackPath = PathProfile

// PermissionTable rutas permitidas por rol. El orden importa: el primer elemento es el
// destino de redirección al denegar. Las listas son independientes entre sí.
type PermissionTable map[Role][]string

// DefaultPermissions tabla de permisos de la aplicación.
func DefaultPermissions() PermissionTable {
	return PermissionTable{
		RoleUser: {
			PathIngredients, PathPurchases, PathSuppliers, PathClients, PathProduction, PathProfile,
		},
		RoleManager: {
			PathDashboard, PathIngredients, PathPurchases, PathSuppliers, PathClients,
			PathProduction, PathCashFlow, PathProfile,
		},
		RoleAdmin: {
			PathDashboard, PathIngredients, PathPurchases, PathSuppliers, PathClients,
			PathProduction, PathWaste, PathCashFlow, PathReports, PathAudit,
			PathUsers, PathProfile,
		},
	}
}

// ParseRole interpreta el rol almacenado en el perfil. Valores vacíos o desconocidos → user.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin
	case RoleManager:
		return RoleManager
	default:
		return RoleUser
	}
}

// Valid indica si r es uno de los roles conocidos.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// Allowed devuelve la lista de rutas del rol. Un rol fuera del enum usa la lista de user.
func (t PermissionTable) Allowed(role Role) []string {
	switch role {
	case RoleAdmin, RoleManager, RoleUser:
		return t[role]
	default:
		return t[RoleUser]
	}
}

// Decision resultado del guard: Allow o Deny con destino de redirección.
type Decision struct {
	Allow    bool   `json:"allow"`
	Redirect string `json:"redirect,omitempty"`
}

// Guard decide si role puede entrar a path (comparación exacta de strings).
func (t PermissionTable) Guard(role Role, path string) Decision {
	allowed := t.Allowed(role)
	for _, p := range allowed {
		if p == path {
			return Decision{Allow: true}
		}
	}
	if len(allowed) == 0 {
		return Decision{Redirect: FallbackPath}
	}
	return Decision{Redirect: allowed[0]}
}

// KnownPaths todas las rutas presentes en la tabla, sin repetir y en orden de aparición.
func (t PermissionTable) KnownPaths() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, role := range []Role{RoleAdmin, RoleManager, RoleUser} {
		for _, p := range t[role] {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			out = append(out, p)
		}
	}
	return out
}
