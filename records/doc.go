// Package records is the typed client for the academic-records REST API
// that sits behind the same backend as the auth endpoints.
//
// The client does no authentication of its own. It is handed the HTTP
// client of the session oracle so the session cookie rides along on every
// request, and a 401 surfaces as [ErrUnauthorized] for the caller's auth
// gate to handle. Wire field names follow the backend's Spanish JSON
// contract; the Go names do not.
//
// Filtering, sorting, and CSV export operate on already-fetched slices.
// The backend offers a handful of server-side professor searches and those
// are exposed as client methods, but the table-style search the console
// performs is a client-side concern and stays here.
package records
