// Package api is the HTTP client for the task tracker server.
//
// A Client keeps the bearer token obtained by Login and attaches it to
// every task request. Failed requests come back as *Error values carrying
// the server's error code, message and field messages; network failures
// wrap ErrUnavailable.
package api
