// Package gate implements the archive's shared-secret access gate.
//
// A submitted secret is compared against two configured keys: the admin key
// grants the admin role, the viewer key grants the viewer role, and anything
// else is rejected with a generic invalid-credentials error. A granted role
// persists as a JSON session record until explicit logout, so daemon
// restarts keep the established session.
//
// The gate gates which operations the surfaces permit; it is not a security
// boundary. Real confidentiality would require enforcement at the store.
package gate
