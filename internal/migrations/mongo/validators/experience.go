package validators

import "go.mongodb.org/mongo-driver/bson"

const (
	slotDatePattern = `^[0-9]{4}-[0-9]{2}-[0-9]{2}$`
	slotTimePattern = `^(1[0-2]|0?[1-9]):[0-5][0-9] (AM|PM)$`
)

var slotKeySchema = bson.M{
	"bsonType": "object",
	"required": []string{"date", "time"},
	"properties": bson.M{
		"date": bson.M{
			"bsonType": "string",
			"pattern":  slotDatePattern,
		},
		"time": bson.M{
			"bsonType": "string",
			"pattern":  slotTimePattern,
		},
	},
}

// ExperienceValidator also rejects any write that leaves a slot with more
// seats booked than it has capacity.
var ExperienceValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"title",
			"price",
			"slots",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"title": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 200,
			},

			"description": bson.M{
				"bsonType":  "string",
				"maxLength": 2000,
			},

			"image": bson.M{
				"bsonType": "string",
			},

			"location": bson.M{
				"bsonType":  "string",
				"maxLength": 200,
			},

			"price": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  0,
			},

			"slots": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType": "object",
					"required": []string{"date", "time", "capacity", "booked"},
					"properties": bson.M{
						"date": bson.M{
							"bsonType": "string",
							"pattern":  slotDatePattern,
						},
						"time": bson.M{
							"bsonType": "string",
							"pattern":  slotTimePattern,
						},
						"capacity": bson.M{
							"bsonType": []string{"int", "long"},
							"minimum":  1,
						},
						"booked": bson.M{
							"bsonType": []string{"int", "long"},
							"minimum":  0,
						},
					},
				},
			},
		},
	},
	"$expr": bson.M{
		"$allElementsTrue": bson.A{
			bson.M{
				"$map": bson.M{
					"input": bson.M{"$ifNull": bson.A{"$slots", bson.A{}}},
					"as":    "s",
					"in":    bson.M{"$lte": bson.A{"$$s.booked", "$$s.capacity"}},
				},
			},
		},
	},
}
