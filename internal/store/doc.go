// Package store persists the learned posting-time grid.
//
// All drivers serialize slots under structured composite keys
// (platform + hour + day-of-week); there is no string-tuple parsing.
package store
