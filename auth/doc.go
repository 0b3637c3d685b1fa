// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides the bearer-token identity contract.

# Principals

Callers authenticate upstream and present an HS256 JWT in the
Authorization header. The server verifies the signature and reads the
claims into a Principal:

	p, err := auth.ParsePrincipal(tokenString, secret)

The user ID rides in the "sub" claim and the admin flag in "adm". The
core trusts this identity; it never checks credentials itself.

# Token Minting

IssueToken mints tokens for the identity gateway's tooling and for
tests:

	token, err := auth.IssueToken(auth.Principal{UserID: id, IsAdmin: true}, secret, time.Hour)

# IP Hashing

HashIP produces a salted one-way hash of a client IP, recorded on vote
rows for audit without storing raw addresses.
*/
package auth
