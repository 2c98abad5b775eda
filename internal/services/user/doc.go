// Package user manages the locally stored login and profile.
//
// There are no credentials: Login accepts any record and stores it under the
// "user-storage" key. The only state machine is the login flag:
//
//	logged out --Login--> logged in --Logout--> logged out
//
// UpdateProfile is a self-loop on logged in and does nothing when logged out.
package user
