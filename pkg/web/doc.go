// Package web serves a Bio-Pass over HTTP.
//
// Routes (see NewRouter):
//
//	GET    /                  page driven by Datastar signals
//	GET    /pass              current lifecycle.View as JSON
//	POST   /pass              generate a session
//	POST   /pass/regenerate   destroy and generate
//	DELETE /pass              destroy the session
//	GET    /pass/qr.png       QR code of the live token
//	GET    /pass/events       SSE stream of view signals
//	GET    /healthz           readiness of the session store
//
// Mutating routes answer Datastar requests with a signal patch and everyone
// else with JSON. Every response carries an X-Request-ID; the id is put in
// the request context so log lines pick it up through RequestIDExtractor.
package web
