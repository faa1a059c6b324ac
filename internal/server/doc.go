// Package server implements the HTTP API for grayscale frame conversion.
//
// # Routes
//
//   - GET /: liveness text "Video Grayscale API is running!"
//   - POST /process_frame: raw image bytes in, {"processed_frame": "<base64 JPEG>"} out
//
// POST /process_frame accepts an optional ?mirror=true query parameter that
// flips the frame horizontally before conversion.
//
// # Error Handling
//
// Every error response is a JSON object with a single "error" field:
//   - 400: empty body ("No frame received") or an invalid query parameter
//   - 413: body larger than the configured limit
//   - 500: the frame could not be decoded, converted or encoded, or its
//     declared dimensions exceed the configured pixel limit
//
// Conversion diagnostics are passed through to the client unless the server
// is configured with RedactErrors, in which case they are only logged.
//
// # Cross-Origin Requests
//
// CORS is open: any origin, any method and any requested header.
//
// # Usage
//
// The server is normally run under fx via Module:
//
//	fx.New(
//	    fx.Supply(cfg, logger),
//	    server.Module,
//	).Run()
package server
