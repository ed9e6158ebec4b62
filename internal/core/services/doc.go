// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Every write to the data store goes through DashboardService, which
// serialises load-modify-save cycles so concurrent callers in one
// process never lose each other's updates.
package services
