// Package recordpg stores locale records in PostgreSQL.
//
// Records live in a single locale_records table keyed by identifier, with the
// document kept as jsonb. Migrate creates the table from an embedded goose
// migration.
//
//	pool, err := recordpg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	if err := recordpg.Migrate(ctx, pool, cfg.MigrationsTable, log); err != nil {
//		return err
//	}
//	src, err := recordpg.New(pool)
//	if err != nil {
//		return err
//	}
//	cache := localedata.New(src)
//
// Source accepts any Querier, so a pgx.Tx works too when seeding records
// alongside other writes.
package recordpg
