package rbac

// Module codes gating endpoint access.
// Seeded in internal/database/migrations/00005_seed_reference_data.sql
const (
	ModuleSales               = "SALES"
	ModuleInventory           = "INVENTORY"
	ModuleReports             = "REPORTS"
	ModuleUserManagement      = "USER_MANAGEMENT"
	ModuleCopypointManagement = "COPYPOINT_MANAGEMENT"
	ModuleStoreManagement     = "STORE_MANAGEMENT"
)

// Role names
const (
	RoleStoreAdministrator = "store_administrator" // store-level administrator
	RoleCopypointEmployee  = "copypoint_employee"  // copypoint-level employee
	RoleCopypointManager   = "copypoint_manager"   // copypoint employee with management modules
)

// Account statuses
const (
	StatusActive  = "active"
	StatusLocked  = "locked"
	StatusExpired = "expired"
	StatusBlocked = "blocked"
)
