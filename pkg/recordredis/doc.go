// Package recordredis serves locale records stored as Redis strings.
//
// Each record lives under {prefix}:{id} and holds a JSON (default) or YAML
// document using the localedata alias conventions. Listing uses SCAN, so it
// is safe to run against a shared instance.
//
// # Connecting
//
// Open parses a redis:// or rediss:// URL, tunes the pool and retries the
// first PING with a linear backoff:
//
//	client, err := recordredis.Open(ctx, os.Getenv("REDIS_URL"),
//	    recordredis.WithPoolSize(20),
//	    recordredis.WithRetry(5, 3*time.Second),
//	)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
// # Reading records
//
//	src, err := recordredis.New(client, recordredis.WithPrefix("cldr"))
//	if err != nil {
//	    return err
//	}
//	cache := localedata.New(src)
//
// Put writes a record and is meant for seeding; the cache never writes.
package recordredis
