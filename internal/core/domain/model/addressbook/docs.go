// Package addressbook holds the saved contacts a user picks receivers from.
package addressbook
