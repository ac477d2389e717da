package service

import (
	"context"
	"math"
	"testing"

	"github.com/healthai/riskpanel/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alice := f.register(t, "alice", "secret1", "alice@x.com")
	p, err := f.predictions.Record(ctx, alice.Id, "Diabetes", "Not Diabetic", ptr(82.5))
	require.NoError(t, err)
	assert.NotZero(t, p.Id)
	assert.False(t, p.CreatedAt.IsZero())

	history, err := f.predictions.ListForUser(ctx, alice.Id)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, p.Id, history[0].Id)
	assert.Equal(t, alice.Id, history[0].UserId)
	assert.Equal(t, "Diabetes", history[0].DiseaseType)
	assert.Equal(t, "Not Diabetic", history[0].Result)
	require.NotNil(t, history[0].Confidence)
	assert.InDelta(t, 82.5, *history[0].Confidence, 1e-9)
}

func TestRecordOrdering(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alice := f.register(t, "alice", "p", "")
	var ids []int
	for _, r := range []string{"R1", "R2", "R3"} {
		p, err := f.predictions.Record(ctx, alice.Id, "Heart Disease", r, nil)
		require.NoError(t, err)
		ids = append(ids, p.Id)
	}

	history, err := f.predictions.ListForUser(ctx, alice.Id)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, []string{"R3", "R2", "R1"}, []string{history[0].Result, history[1].Result, history[2].Result})
	assert.Equal(t, ids[2], history[0].Id)
	assert.Nil(t, history[0].Confidence)
}

func TestRecordUnknownUser(t *testing.T) {
	f := newFixture(t)

	_, err := f.predictions.Record(context.Background(), 4242, "Diabetes", "Diabetic", ptr(50))
	require.ErrorIs(t, err, database.ErrForeignKeyViolation)

	all, err := f.predictions.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestRecordValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.register(t, "alice", "p", "")

	tests := []struct {
		name       string
		category   string
		result     string
		confidence *float64
		wantErr    error
	}{
		{name: "empty category", category: " ", result: "Diabetic", wantErr: ErrInvalidPrediction},
		{name: "empty result", category: "Diabetes", result: "", wantErr: ErrInvalidPrediction},
		{name: "negative", category: "Diabetes", result: "Diabetic", confidence: ptr(-0.1), wantErr: ErrConfidenceOutOfRange},
		{name: "over 100", category: "Diabetes", result: "Diabetic", confidence: ptr(100.01), wantErr: ErrConfidenceOutOfRange},
		{name: "NaN", category: "Diabetes", result: "Diabetic", confidence: ptr(math.NaN()), wantErr: ErrConfidenceOutOfRange},
		{name: "zero", category: "Diabetes", result: "Diabetic", confidence: ptr(0)},
		{name: "hundred", category: "Diabetes", result: "Diabetic", confidence: ptr(100)},
		{name: "absent", category: "Diabetes", result: "Diabetic"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.predictions.Record(ctx, alice.Id, tt.category, tt.result, tt.confidence)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestListAll(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alice := f.register(t, "alice", "p", "")
	bob := f.register(t, "bob", "p", "")
	_, err := f.predictions.Record(ctx, alice.Id, "Diabetes", "Diabetic", ptr(70))
	require.NoError(t, err)
	_, err = f.predictions.Record(ctx, bob.Id, "Parkinson's", "No Parkinson's Disease", ptr(91))
	require.NoError(t, err)
	_, err = f.predictions.Record(ctx, alice.Id, "Heart Disease", "Heart Disease", nil)
	require.NoError(t, err)

	all, err := f.predictions.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)

	assert.Equal(t, "alice", all[0].Username)
	assert.Equal(t, "Heart Disease", all[0].DiseaseType)
	assert.Nil(t, all[0].Confidence)
	assert.Equal(t, "bob", all[1].Username)
	require.NotNil(t, all[1].Confidence)
	assert.InDelta(t, 91, *all[1].Confidence, 1e-9)
	assert.Equal(t, "alice", all[2].Username)
	assert.Equal(t, alice.Id, all[2].UserId)
}

func TestSummary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alice := f.register(t, "alice", "p", "")
	records := []struct {
		category, result string
		confidence       *float64
	}{
		{"Diabetes", "Diabetic", ptr(80)},
		{"Diabetes", "Not Diabetic", ptr(60)},
		{"Heart Disease", "No Heart Disease", ptr(90)},
		{"Heart Disease", "Heart Disease", nil},
	}
	for _, r := range records {
		_, err := f.predictions.Record(ctx, alice.Id, r.category, r.result, r.confidence)
		require.NoError(t, err)
	}

	s, err := f.predictions.Summary(ctx, alice.Id)
	require.NoError(t, err)
	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 2, s.Positive)
	require.NotNil(t, s.AverageConfidence)
	assert.InDelta(t, 230.0/3, *s.AverageConfidence, 1e-9)

	require.Len(t, s.ByDiseaseType, 2)
	d := s.ByDiseaseType[0]
	assert.Equal(t, "Diabetes", d.DiseaseType)
	assert.Equal(t, 2, d.Count)
	assert.Equal(t, 1, d.Positive)
	require.NotNil(t, d.AverageConfidence)
	assert.InDelta(t, 70, *d.AverageConfidence, 1e-9)

	h := s.ByDiseaseType[1]
	assert.Equal(t, "Heart Disease", h.DiseaseType)
	require.NotNil(t, h.AverageConfidence)
	assert.InDelta(t, 90, *h.AverageConfidence, 1e-9)
}

func TestSummaryEmpty(t *testing.T) {
	f := newFixture(t)
	alice := f.register(t, "alice", "p", "")

	s, err := f.predictions.Summary(context.Background(), alice.Id)
	require.NoError(t, err)
	assert.Zero(t, s.Total)
	assert.Nil(t, s.AverageConfidence)
	assert.Empty(t, s.ByDiseaseType)
}
