package mongo

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestIndexModels_UniqueEmailAndUsername(t *testing.T) {
	models := indexModels()

	for _, coll := range []string{accountsCollection, directoryCollection} {
		got := map[string]bool{}
		for _, m := range models[coll] {
			keys, ok := m.Keys.(bson.D)
			if !ok || len(keys) != 1 {
				t.Fatalf("%s: unexpected index keys %v", coll, m.Keys)
			}
			if m.Options == nil || m.Options.Unique == nil || !*m.Options.Unique {
				t.Fatalf("%s: index on %s is not unique", coll, keys[0].Key)
			}
			got[keys[0].Key] = true
		}
		if !got["email"] || !got["username"] {
			t.Fatalf("%s: expected unique email and username indexes, got %v", coll, got)
		}
	}
}
