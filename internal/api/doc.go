// Package api serves the bookmarks JSON API. Every /bookmarks route requires
// "Authorization: Bearer <token>"; /healthz and /metrics are public.
package api
