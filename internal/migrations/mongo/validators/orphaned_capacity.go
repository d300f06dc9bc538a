package validators

import "go.mongodb.org/mongo-driver/bson"

var OrphanedCapacityValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"order_id",
			"experience_id",
			"slot",
			"quantity",
			"reason",
			"detected_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"order_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"experience_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"slot": slotKeySchema,

			"quantity": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  1,
			},

			"reason": bson.M{
				"bsonType": "string",
			},

			"detected_at": bson.M{
				"bsonType": "date",
			},

			"resolved": bson.M{
				"bsonType": "bool",
			},
		},
	},
}
