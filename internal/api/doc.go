// Package api is the HTTP client for the remote processing service.
//
// It covers the four endpoints the lifecycle manager consumes: the liveness
// probe (GET /status/test), task creation (POST /download), status by id
// (GET /status/{task_id}) and the file URL (GET /file/{task_id}).
//
// All requests take a context, carry an X-Request-ID header and return
// wrapped errors. A 404 on the status endpoint is reported as ErrTaskNotFound;
// other non-2xx responses are reported as *Error with the service message.
// The client does not retry; retry policy belongs to its callers.
package api
