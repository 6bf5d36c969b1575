package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/stignatiusparish/massbook-gobackend/internal/models"
)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestListFilterEmpty(t *testing.T) {
	assert.Equal(t, bson.M{}, listFilter(ListOptions{}))
}

func TestListFilterStatusOnly(t *testing.T) {
	query := listFilter(ListOptions{Status: "office_pending"})

	assert.Equal(t, bson.M{"status": "office_pending"}, query)
}

func TestListFilterDateWindow(t *testing.T) {
	from := datePtr(2024, time.January, 11)
	to := datePtr(2024, time.January, 20)
	query := listFilter(ListOptions{From: from, To: to})

	upper, ok := query["start_date"].(bson.M)
	require.True(t, ok, "expected a start_date clause")
	assert.Equal(t, models.EndOfDay(*to), upper["$lte"], "dateTo must be normalized to end of day")

	lower, ok := query["$or"].([]bson.M)
	require.True(t, ok, "expected an $or clause for the lower bound")
	require.Len(t, lower, 2)
	assert.Equal(t, bson.M{"end_date": bson.M{"$gte": *from}}, lower[0])
	assert.Equal(t, bson.M{"end_date": nil}, lower[1], "bookings without end_date bypass the lower bound")
}

func TestListFilterFromOnly(t *testing.T) {
	from := datePtr(2024, time.June, 1)
	query := listFilter(ListOptions{From: from})

	_, hasUpper := query["start_date"]
	assert.False(t, hasUpper, "no upper bound without dateTo")
	_, hasLower := query["$or"]
	assert.True(t, hasLower)
}

func TestListSort(t *testing.T) {
	byCreated := listSort(ListOptions{Status: "paid"})
	assert.Equal(t, bson.D{{Key: "created_at", Value: -1}}, byCreated)

	byStart := listSort(ListOptions{To: datePtr(2024, time.January, 1)})
	assert.Equal(t, bson.D{{Key: "start_date", Value: 1}}, byStart)
}
