/*
Package tree holds the snippet tree service: lookup, structural mutations,
ordering, id allocation, repair, and import/export of whole subtrees.

	          +--------------+
	          |   Service    |
	          | (in-memory)  |
	          +------+-------+
	                 |
	      load / save|
	                 v
	          +--------------+
	          |  DataStore   |
	          | file/sqlite  |
	          +--------------+

Ids are allocated from the root's LastID: IncrementLastID proposes the next
id, AddNode commits it. Moves go through AddExistingNode so ids never churn.

Lookups walk the tree in pre-order and return the first match, so a
duplicated id resolves to its first occurrence until FixCorruption runs.

	svc, err := tree.NewService(ctx, store.NewFileStore(path))
	if err != nil {
		return err
	}
	leaf := snippet.NewLeaf(svc.IncrementLastID(), snippet.RootID, "hello", "fmt.Println()")
	svc.AddNode(leaf)
	if err := svc.SaveSnippets(ctx); err != nil {
		return err
	}
*/
package tree
