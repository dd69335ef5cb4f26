// Package kv provides the durable key/value storage behind the session store.
//
// Values are opaque byte slices kept in the SQLite table "kv" created by the
// embedded migrations. A missing key reads as (nil, nil) so callers can tell
// "absent" from "failed" without a sentinel.
//
//	repo := kv.NewSQLiteRepository(db)
//	_ = repo.Set(ctx, "authToken", []byte(token))
//	v, _ := repo.Get(ctx, "authToken")
package kv
