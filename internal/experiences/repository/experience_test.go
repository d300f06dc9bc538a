package repository

import (
	"bookit/pkg/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestReserveFilter(t *testing.T) {
	id := primitive.NewObjectID()
	slot := model.Slot{Date: "2030-11-01", Time: "10:00 AM", Capacity: 5, Booked: 3}

	filter := ReserveFilter(id, slot, 2)

	assert.Equal(t, id, filter["_id"])
	slots, ok := filter["slots"].(bson.M)
	require.True(t, ok)
	match, ok := slots["$elemMatch"].(bson.M)
	require.True(t, ok)

	assert.Equal(t, "2030-11-01", match["date"])
	assert.Equal(t, "10:00 AM", match["time"])
	assert.Equal(t, 5, match["capacity"])
	assert.Equal(t, bson.M{"$lte": 3}, match["booked"])
}

func TestReserveFilter_UsesCapacityNotBooked(t *testing.T) {
	// The stale booked value read by the caller must not appear in the filter;
	// only capacity and quantity decide whether the increment fits.
	slot := model.Slot{Date: "2030-11-01", Time: "10:00 AM", Capacity: 5, Booked: 0}

	match := ReserveFilter(primitive.NewObjectID(), slot, 5)["slots"].(bson.M)["$elemMatch"].(bson.M)

	assert.Equal(t, bson.M{"$lte": 0}, match["booked"])
}

func TestReserveUpdate(t *testing.T) {
	assert.Equal(t, bson.M{"$inc": bson.M{"slots.$.booked": 2}}, ReserveUpdate(2))
}
