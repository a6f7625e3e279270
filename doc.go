// Package inkstudio is the content backend for the Bestemiy Ink studio
// site: a public marketing site plus a password-gated admin console.
//
// The root package holds the domain model and the pieces with real
// contracts:
//
//   - Service: CRUD and filtered listing over tattoos, site content and
//     testimonials, plus the image upload/release lifecycle
//   - Guard: stateless constant-time admin-secret check gating every
//     mutating operation
//   - TattooRepo, ContentRepo, TestimonialRepo: persistence interfaces
//     (SQLite and PostgreSQL backends live under database/)
//   - ImageStore: binary asset storage interface (local filesystem and
//     remote object-store backends live under imagestore/)
//
// The http package exposes the JSON API, config loads configuration, and
// cmd/inkstudio wires everything together.
package inkstudio
