// Package identity models who acts on shipments.
//
// The identity provider authenticates a person and yields an email (and maybe a
// display name). The service keeps a User record per email holding the Role,
// defaulted to RoleUser at first sign-in and changeable only by an admin.
// A Principal is the immutable snapshot handed into every operation.
package identity
