// Package authorization implements the role registry and authorization guard.
//
// Roles are global permission bundles shared by name across tenants; the
// registry is an explicit injected service, never a process global, and role
// name uniqueness is enforced by the storage layer. Admin-gated queries
// (role listing, company user listing, role assignment) live here; the
// caller identity arrives as an explicit authctx.Context built once per
// request.
//
// Layering:
// - domain: core entities, invariants, errors
// - application: commands/queries/registry using explicit ports
// - ports: stable boundaries for persistence and the user directory
// - adapters: concrete HTTP, memory, and postgres implementations
// - transport: module-private DTOs for HTTP contracts
//
// Boundary notes:
// - Keep this module self-contained under the identity-access context.
// - Do not import other context adapters into domain/application.
// - User rows are owned by the auth service; the postgres adapter reads them
//   through a read-only projection, the memory adapter through directory
//   glue wired in the composition root.
package authorization
