package validators

import "go.mongodb.org/mongo-driver/bson"

var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"order_id",
			"name",
			"email",
			"experience_id",
			"slot",
			"quantity",
			"total_price",
			"status",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"order_id": bson.M{
				"bsonType": "string",
				"pattern":  `^[A-Z]{2,10}-[0-9]{8}-[A-Z0-9]{5}$`,
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 100,
			},

			"email": bson.M{
				"bsonType":  "string",
				"maxLength": 254,
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

			"total_price": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  0,
			},

			"promo_code": bson.M{
				"bsonType":  "string",
				"maxLength": 50,
			},

			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"confirmed",
					"failed",
				},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
