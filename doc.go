// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Open Ballot API server.

Open Ballot is an election-voting service: administrators create
time-bounded elections with candidates, citizens register as voters
subject to admin approval, and approved voters cast exactly one vote per
election while live tallies stay continuously available to pollers.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... TOKEN_SECRET=... go run main.go

Or with flags:

	go run main.go -p 5000 -d "postgres://..." --token-secret "..."

# Configuration

Required settings:

  - DATABASE_URL (-d): PostgreSQL connection string
  - TOKEN_SECRET (--token-secret): HMAC secret for bearer-token verification

Optional settings:

  - PORT (-p): Server port (default: 5000)

A .env file in the working directory is loaded if present.

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (elections, voters, votes, results)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers, bearer-token auth
  - models: Request/response and domain types
  - apperr: Caller-visible error taxonomy
  - auth: Bearer-token principal parsing
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
