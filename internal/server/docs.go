package server

//go:generate swag init -g internal/server/server.go -o docs/swagger

// @title cookie-trac API
// @version 0.1
// @description Interactive documentation for the cookie-trac scan API surface.
// @BasePath /
