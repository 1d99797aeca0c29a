// Package assetsearch provides a Go client for the assetsearch product and map point
// search, backed by Valkey or Redis.
//
// # Pure functions, no storage
//
// The matcher and ranker work on in-memory data:
//
//	hits := assetsearch.SearchProducts(catalog, "smazka valera")
//	ranked := assetsearch.RankRecords(records, "невский")
//
// # Client, backed by a store
//
//	client, _ := assetsearch.New(ctx, assetsearch.WithValkey("localhost:6379", ""))
//	defer client.Close()
//	_ = client.Assets().UpsertBatch(ctx, assets)
//	hits, _ := client.Products().Search(ctx, "фильтр", assetsearch.ForContent("Товар"))
//	points, _ := client.Points().List(ctx, "минск")
package assetsearch
