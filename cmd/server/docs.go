// Toolrank - Hybrid Recommendations for AI Tool Listings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolrank

// Package main provides the Toolrank HTTP server
//
// Toolrank ranks AI tool listings for a user from their likes, bookmarks,
// comments and shares, blending collaborative, content-based and popularity
// signals.
//
// @title Toolrank API
// @version 1.0
// @description Hybrid recommendations for AI tool listings.
// @description
// @description ## Recommenders
// @description
// @description - **hybrid** (default): merges the three channels below by share
// @description - **collaborative**: tools liked by users with overlapping taste
// @description - **content**: tools in the user's favorite categories and tags
// @description - **popular**: most popular tools the user has not interacted with
// @description
// @description Each channel falls back to popularity when its signal is empty or
// @description the behavior store is unavailable. The `outcomes` array reports how
// @description each channel contributed.
// @description
// @description ## Rate Limiting
// @description
// @description Default rate limit: 100 requests per minute per IP address.
// @description
// @description ## Error Responses
// @description
// @description All error responses follow this format:
// @description ```json
// @description {
// @description   "success": false,
// @description   "error": {
// @description     "code": "VALIDATION_FAILED",
// @description     "message": "Human-readable error message",
// @description     "request_id": "..."
// @description   },
// @description   "meta": {
// @description     "timestamp": "2026-03-01T12:34:56Z"
// @description   }
// @description }
// @description ```
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/toolrank/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
//
// @tag.name Recommendations
// @tag.description Personalized AI tool recommendations
//
// @tag.name Health
// @tag.description Liveness, readiness and status probes
package main
