package validators

import "go.mongodb.org/mongo-driver/bson"

var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"partner_id",
			"check_in",
			"check_out",
			"status",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"partner_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 64,
			},

			"check_in": bson.M{
				"bsonType": "date",
			},

			"check_out": bson.M{
				"bsonType": "date",
			},

			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"initial",
					"confirmed",
					"checkin",
					"checkout",
					"cleaning_needed",
					"room_ready",
					"cancelled",
					"no_show",
				},
			},

			"lines": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType": "object",
					"required": []string{"room_id"},
					"properties": bson.M{
						"room_id": bson.M{
							"bsonType":  "string",
							"minLength": 1,
						},
						"price": bson.M{
							"bsonType": []string{"double", "int", "long", "decimal"},
							"minimum":  0,
						},
						"discount": bson.M{
							"bsonType": []string{"double", "int", "long", "decimal"},
							"minimum":  0,
							"maximum":  100,
						},
					},
				},
			},

			"split_from_booking_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"connected_booking_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"created_at": bson.M{
				"bsonType": "date",
			},

			"write_date": bson.M{
				"bsonType": "date",
			},
		},
	},
}
