// Package middleware holds the request pipeline of the file storage API,
// outermost first:
//
//	1000 recovery       panics become 500 responses
//	 900 tracing        one server span per request
//	 800 timeout        deadline on the request context
//	 700 meta inject    trace id and client info in the context, X-Trace-ID header
//	 500 logger         one entry per request, level by status
//	 400 error handler  errx errors rendered as translated JSON
//
// The handler of a storage route runs inside all of them, so a failed upload
// is logged with the trace id that its error response carries.
package middleware
