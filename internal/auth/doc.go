// Package auth provides the authentication and authorization gate of the service.
//
// Two credential paths exist:
//   - Bearer tokens ("Authorization: Bearer <token>"), where the token is
//     either a user id or the configured demo admin token. Resolver turns
//     the header into an Identity; RequireAdmin layers the ADMIN role check
//     on top of it.
//   - Signed sessions issued after an email/password login. LocalProvider
//     verifies the credentials and SessionIssuer signs the claims
//     {sub, role, verified, graduationYear, major}. The claims are read back
//     verbatim on every request; role changes take effect on the next login.
//
// # Errors
//
// Gate failures are returned as *Error, carrying the HTTP status and the
// public message. The wrapped cause is only ever logged.
//
// # Middleware
//
// Fiber middleware functions are provided for route protection:
//   - RequireBearer: resolve the bearer token and store the Identity in locals
//   - RequireAdminBearer: like RequireBearer, but only ADMIN identities pass
//   - RequireSession: verify the signed session cookie and store its Claims
//
// Example usage:
//
//	resolver := auth.NewResolver(auth.NewGormLookup(db), cfg.Auth)
//
//	app.Get("/api/admin/users",
//	    auth.RequireAdminBearer(resolver),
//	    handler,
//	)
package auth
