// Package store persists named full graphs in MongoDB. It backs the
// "switch data source" flow in server deployments: graphs are uploaded
// once under a name and loaded wholesale when a session selects them.
package store
