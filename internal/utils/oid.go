package utils

import "go.mongodb.org/mongo-driver/v2/bson"

// DedupeObjectIDs keeps the first occurrence of every id, preserving order.
func DedupeObjectIDs(ids []bson.ObjectID) []bson.ObjectID {
	seen := make(map[bson.ObjectID]struct{}, len(ids))
	out := make([]bson.ObjectID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// ParseObjectIDs converts hex strings; the first bad value is returned with the error.
func ParseObjectIDs(hexes []string) ([]bson.ObjectID, string, error) {
	out := make([]bson.ObjectID, 0, len(hexes))
	for _, h := range hexes {
		oid, err := bson.ObjectIDFromHex(h)
		if err != nil {
			return nil, h, err
		}
		out = append(out, oid)
	}
	return out, "", nil
}
