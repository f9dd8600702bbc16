// Package object is the crm-catalog object-service: tenant-scoped CRM
// records with free-form typed fields, typed links between records, and a
// type catalog.
//
// Boundary notes:
//   - Every read and write is scoped by the caller's company; a record id is
//     only meaningful inside its tenant.
//   - Caller identity and permission flags arrive as an immutable auth
//     context resolved by identity-access; this service never consults the
//     role store directly.
//   - Field values are a closed union of string, number, bool, and date. On
//     the wire they are bare JSON values; the kind is inferred on decode.
package object
