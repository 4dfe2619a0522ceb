// Package server exposes the view pipeline over HTTP. It is a thin
// collaborator: request parameters are parsed into pipeline options, the
// stateless core produces the view, and handlers serialize the result.
package server
