// Package auth implements identity for the CRM: companies, users,
// credentials, and server-side sessions.
//
// Layering:
// - domain: core entities, invariants, errors
// - application: commands/queries using explicit ports
// - ports: stable boundaries for persistence, hashing, sessions
// - adapters: concrete HTTP, memory, postgres, and security implementations
// - transport: module-private DTOs for HTTP contracts
//
// Boundary notes:
// - Keep this module self-contained under the identity-access context.
// - Do not import other context adapters into domain/application.
// - Role bootstrap during registration goes through the RoleRegistry port,
//   wired to the authorization service in the composition root.
package auth
