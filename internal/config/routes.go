package config

// defaultRoutes is the hand-maintained table of primary API routes.
// Function names are uniqueness-assumed, not verified; the provisioner
// creates one POST route per entry.
func defaultRoutes() []Route {
	return []Route{
		// Auth (public)
		{Function: "register", Path: "/api/auth/register"},
		{Function: "refresh-token", Path: "/api/auth/refresh"},
		{Function: "forgot-password", Path: "/api/auth/forgot-password"},
		{Function: "reset-password", Path: "/api/auth/reset-password"},
		{Function: "mfa-verify-login", Path: "/api/auth/mfa/verify"},

		// Auth (JWT)
		{Function: "logout", Path: "/api/auth/logout", Auth: true},
		{Function: "change-password", Path: "/api/auth/change-password", Auth: true},
		{Function: "mfa-enroll", Path: "/api/auth/mfa/enroll", Auth: true},
		{Function: "mfa-check", Path: "/api/auth/mfa/check", Auth: true},
		{Function: "mfa-list-factors", Path: "/api/auth/mfa/factors", Auth: true},

		// AWS credentials
		{Function: "save-aws-credentials", Path: "/api/aws/credentials", Auth: true},
		{Function: "list-aws-credentials", Path: "/api/aws/credentials/list", Auth: true},
		{Function: "validate-aws-credentials", Path: "/api/aws/credentials/validate", Auth: true},
		{Function: "delete-aws-credentials", Path: "/api/aws/credentials/delete", Auth: true},

		// Azure credentials
		{Function: "save-azure-credentials", Path: "/api/azure/credentials", Auth: true},
		{Function: "list-azure-credentials", Path: "/api/azure/credentials/list", Auth: true},
		{Function: "validate-azure-credentials", Path: "/api/azure/credentials/validate", Auth: true},

		// Security
		{Function: "security-scan", Path: "/api/security/scan", Auth: true},
		{Function: "list-security-scans", Path: "/api/security/scans", Auth: true},
		{Function: "compliance-scan", Path: "/api/security/compliance", Auth: true},

		// Costs
		{Function: "fetch-daily-costs", Path: "/api/costs/daily", Auth: true},
		{Function: "cost-optimization", Path: "/api/costs/optimization", Auth: true},

		// Dashboards
		{Function: "dashboard-metrics", Path: "/api/dashboard/metrics", Auth: true},
		{Function: "executive-dashboard", Path: "/api/dashboard/executive", Auth: true},

		// Organizations, users, licenses
		{Function: "list-organizations", Path: "/api/organizations", Auth: true},
		{Function: "list-users", Path: "/api/users", Auth: true},
		{Function: "validate-license", Path: "/api/licenses/validate", Auth: true},
	}
}
