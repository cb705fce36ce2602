// Package main provides the entry point of AlumniConnect.
// It starts a Fiber based JSON service where students and alumni register
// and log in, the public can browse recently verified alumni and admins
// review alumni profiles. The application uses gorm for persistence and
// a bearer token and signed session gate for authentication.
package main
