package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/healthai/riskpanel/database"
	"github.com/healthai/riskpanel/database/model"

	"gorm.io/gorm"
)

var (
	ErrInvalidPrediction    = errors.New("prediction needs a disease type and a result")
	ErrConfidenceOutOfRange = errors.New("confidence must be between 0 and 100")
)

// PredictionService is the append-only ledger of prediction results.
type PredictionService struct {
	db *gorm.DB
}

func NewPredictionService(db *gorm.DB) *PredictionService {
	return &PredictionService{db: db}
}

// Record appends a prediction for userId. It fails with
// database.ErrForeignKeyViolation when userId does not name an existing identity.
func (s *PredictionService) Record(ctx context.Context, userId int, diseaseType, result string, confidence *float64) (*model.Prediction, error) {
	diseaseType = strings.TrimSpace(diseaseType)
	result = strings.TrimSpace(result)
	if diseaseType == "" || result == "" {
		return nil, ErrInvalidPrediction
	}
	if confidence != nil {
		c := *confidence
		if math.IsNaN(c) || c < 0 || c > 100 {
			return nil, ErrConfidenceOutOfRange
		}
	}

	p := &model.Prediction{
		UserId:      userId,
		DiseaseType: diseaseType,
		Result:      result,
		Confidence:  confidence,
	}
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, database.TranslateError(err)
	}
	return p, nil
}

// ListForUser returns the predictions of userId, newest first.
func (s *PredictionService) ListForUser(ctx context.Context, userId int) ([]model.Prediction, error) {
	var predictions []model.Prediction
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userId).
		Order("created_at DESC").
		Order("id DESC").
		Find(&predictions).
		Error
	if err != nil {
		return nil, fmt.Errorf("list predictions of user %d: %w", userId, err)
	}
	return predictions, nil
}

// ListAll returns every prediction with its owner's login, newest first.
func (s *PredictionService) ListAll(ctx context.Context) ([]model.PredictionWithOwner, error) {
	var rows []model.PredictionWithOwner
	err := s.db.WithContext(ctx).
		Table("predictions").
		Select("predictions.*, COALESCE(users.username, '') AS username").
		Joins("LEFT JOIN users ON users.id = predictions.user_id").
		Order("predictions.created_at DESC").
		Order("predictions.id DESC").
		Scan(&rows).
		Error
	if err != nil {
		return nil, fmt.Errorf("list predictions: %w", err)
	}
	return rows, nil
}

// CategorySummary aggregates the predictions of one disease type.
type CategorySummary struct {
	DiseaseType       string   `json:"diseaseType"`
	Count             int      `json:"count"`
	Positive          int      `json:"positive"`
	AverageConfidence *float64 `json:"averageConfidence"`
}

// Summary aggregates a user's prediction history. Averages only cover records
// that carry a confidence and are nil when none do.
type Summary struct {
	Total             int               `json:"total"`
	Positive          int               `json:"positive"`
	AverageConfidence *float64          `json:"averageConfidence"`
	ByDiseaseType     []CategorySummary `json:"byDiseaseType"`
}

type confidenceAcc struct {
	sum float64
	n   int
}

func (a *confidenceAcc) add(c *float64) {
	if c != nil {
		a.sum += *c
		a.n++
	}
}

func (a *confidenceAcc) mean() *float64 {
	if a.n == 0 {
		return nil
	}
	m := a.sum / float64(a.n)
	return &m
}

func (s *PredictionService) Summary(ctx context.Context, userId int) (*Summary, error) {
	predictions, err := s.ListForUser(ctx, userId)
	if err != nil {
		return nil, err
	}

	sum := &Summary{ByDiseaseType: []CategorySummary{}}
	var all confidenceAcc
	perType := make(map[string]*CategorySummary)
	perTypeConf := make(map[string]*confidenceAcc)

	for i := range predictions {
		p := &predictions[i]
		sum.Total++
		all.add(p.Confidence)

		cs, ok := perType[p.DiseaseType]
		if !ok {
			cs = &CategorySummary{DiseaseType: p.DiseaseType}
			perType[p.DiseaseType] = cs
			perTypeConf[p.DiseaseType] = &confidenceAcc{}
		}
		cs.Count++
		perTypeConf[p.DiseaseType].add(p.Confidence)

		if p.IsPositive() {
			sum.Positive++
			cs.Positive++
		}
	}

	sum.AverageConfidence = all.mean()
	for name, cs := range perType {
		cs.AverageConfidence = perTypeConf[name].mean()
		sum.ByDiseaseType = append(sum.ByDiseaseType, *cs)
	}
	sort.Slice(sum.ByDiseaseType, func(i, j int) bool {
		return sum.ByDiseaseType[i].DiseaseType < sum.ByDiseaseType[j].DiseaseType
	})
	return sum, nil
}
