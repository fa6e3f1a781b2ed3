// Package portalsdk is a Go client for the SPIMS backend that mirrors the
// behaviour of the web portal's session handling: it logs in, caches the
// bearer token together with the user profile and dashboard route, attaches
// the token to every request, and drops the session the moment the server
// answers 401.
//
// The route guard here is advisory. It exists so a client can route users to
// the right dashboard without a round trip; the server-side access gate
// remains the authority on every request.
package portalsdk
