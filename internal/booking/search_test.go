package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"airbook/pkg/airapi"
)

func validOneWayInput() SearchInput {
	return SearchInput{
		Origin:        "MCO",
		Destination:   "SFO",
		DepartureDate: "2025-04-28",
		TripType:      TripOneWay,
		Adults:        1,
		CabinClass:    "economy",
	}
}

func TestBuildSearchCriteria_OneWay(t *testing.T) {
	criteria, warnings, err := BuildSearchCriteria(validOneWayInput())
	require.NoError(t, err)
	assert.Empty(t, warnings)

	require.Len(t, criteria.Slices, 1)
	assert.Equal(t, Slice{Origin: "MCO", Destination: "SFO", DepartureDate: "2025-04-28"}, criteria.Slices[0])

	passengers := criteria.SearchPassengers()
	require.Len(t, passengers, 1)
	assert.Equal(t, airapi.PassengerCount{Type: "adult", Count: 1}, passengers[0])
}

func TestBuildSearchCriteria_ReturnSliceIsMirrored(t *testing.T) {
	input := validOneWayInput()
	input.TripType = TripReturn
	input.ReturnDate = "2025-05-05"

	criteria, _, err := BuildSearchCriteria(input)
	require.NoError(t, err)

	require.Len(t, criteria.Slices, 2)
	outbound := criteria.Slices[0]
	ret := criteria.Slices[1]
	assert.Equal(t, outbound.Destination, ret.Origin)
	assert.Equal(t, outbound.Origin, ret.Destination)
	assert.Equal(t, "2025-05-05", ret.DepartureDate)
}

func TestBuildSearchCriteria_ReturnWithoutDate(t *testing.T) {
	input := validOneWayInput()
	input.TripType = TripReturn

	_, _, err := BuildSearchCriteria(input)

	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, ErrorCodeValidation, appErr.Code)
	assert.Contains(t, appErr.Message, "return_date")
}

func TestBuildSearchCriteria_MissingFields(t *testing.T) {
	input := validOneWayInput()
	input.Origin = ""
	input.DepartureDate = ""

	_, _, err := BuildSearchCriteria(input)

	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Message, "origin")
	assert.Contains(t, appErr.Message, "departure_date")
}

func TestBuildSearchCriteria_InfantsExceedAdults(t *testing.T) {
	input := validOneWayInput()
	input.Adults = 1
	input.Infants = 2

	_, _, err := BuildSearchCriteria(input)

	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "infants cannot exceed adults", appErr.Message)
}

func TestBuildSearchCriteria_TooManyPassengers(t *testing.T) {
	input := validOneWayInput()
	input.Adults = 5
	input.Children = 5

	_, _, err := BuildSearchCriteria(input)

	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Message, "exceed 9")
}

func TestBuildSearchCriteria_MultiCitySkipsMalformedSegments(t *testing.T) {
	input := validOneWayInput()
	input.TripType = TripMultiCity
	input.RawSegments = []string{
		`{"origin":"JFK","destination":"LHR","date":"2025-06-01"}`,
		`not json at all`,
		`{"origin":"LHR","destination":"CDG"}`, // missing date
		`{"origin":"CDG","destination":"JFK","date":"2025-06-10"}`,
	}

	criteria, warnings, err := BuildSearchCriteria(input)
	require.NoError(t, err)

	require.Len(t, criteria.Slices, 2)
	assert.Equal(t, "JFK", criteria.Slices[0].Origin)
	assert.Equal(t, "CDG", criteria.Slices[1].Origin)
	assert.Len(t, warnings, 2, "each skipped segment produces a warning")
}

func TestBuildSearchCriteria_MultiCityAllSegmentsMalformed(t *testing.T) {
	input := validOneWayInput()
	input.TripType = TripMultiCity
	input.RawSegments = []string{`{`, `{}`}

	_, warnings, err := BuildSearchCriteria(input)

	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, ErrorCodeValidation, appErr.Code)
	assert.Len(t, warnings, 2)
}

func TestSearchPassengers_AllTypes(t *testing.T) {
	input := validOneWayInput()
	input.Adults = 2
	input.Children = 1
	input.Infants = 1

	criteria, _, err := BuildSearchCriteria(input)
	require.NoError(t, err)

	assert.Equal(t, []airapi.PassengerCount{
		{Type: "adult", Count: 2},
		{Type: "child", Count: 1},
		{Type: "infant_without_seat", Count: 1},
	}, criteria.SearchPassengers())
}

func TestBuildSearchCriteria_DefaultsToOneWay(t *testing.T) {
	input := validOneWayInput()
	input.TripType = ""

	criteria, _, err := BuildSearchCriteria(input)
	require.NoError(t, err)
	assert.Equal(t, TripOneWay, criteria.TripType)
	assert.Len(t, criteria.Slices, 1)
}

func TestBuildSearchCriteria_ValidationIsLocal(t *testing.T) {
	// A validation failure must be an AppError, never a wrapped network error.
	_, _, err := BuildSearchCriteria(SearchInput{})
	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Nil(t, appErr.Err)
}
