// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the response messages written by the HTTP layer.
//
// Keeping them in one place keeps the wording of the API stable; clients
// and the web front end match on some of these strings.
package app

const (
	// MsgWelcome prefixes the application name on the root endpoint.
	MsgWelcome = "Welcome to the %s API"

	// MsgOK is the message of plain informational responses.
	MsgOK = "OK"

	MsgAuthRouteWorking = "Auth route is working fine"

	// MsgUserRegistered is returned after the registration transaction
	// committed.
	MsgUserRegistered = "User registered successfully"

	MsgLoginSuccess = "User Login Success"

	// MsgTokenRefreshed is returned when a refresh token was exchanged for a
	// new access token.
	MsgTokenRefreshed = "New access token retrieved successfully"

	MsgUsersRetrieved = "Users retrieved successfully"

	// MsgEmailAlreadyRegistered replaces the store conflict error text.
	MsgEmailAlreadyRegistered = "Email already registered"

	// MsgUserDoesNotExist replaces the store not-found error text.
	MsgUserDoesNotExist = "User does not exist"

	// MsgAPINotFound is returned for unknown paths and for known paths
	// requested with an unregistered method.
	MsgAPINotFound = "API Not Found"

	// MsgInternalServerError is returned for every 5xx response. The cause
	// is only logged.
	MsgInternalServerError = "Something Went Wrong!!"
)
