package training

import (
	"time"

	domain "fitness-tracker/internal/domain/training"
	userhandler "fitness-tracker/internal/handler/user"
)

// TrainingRequest описывает тело запроса на создание или полную замену тренировки.
type TrainingRequest struct {
	ID           *int64  `json:"id,omitempty"`
	UserID       int64   `json:"user_id" binding:"required"`
	StartTime    string  `json:"start_time" binding:"required,datetime=2006-01-02"`
	EndTime      string  `json:"end_time" binding:"required,datetime=2006-01-02"`
	ActivityType string  `json:"activity_type" binding:"required"`
	Distance     float64 `json:"distance"`
	AverageSpeed float64 `json:"average_speed"`
}

// TrainingResponse описывает тренировку в ответах API.
type TrainingResponse struct {
	ID                  int64                     `json:"id"`
	UserID              int64                     `json:"user_id"`
	User                *userhandler.UserResponse `json:"user,omitempty"`
	StartTime           string                    `json:"start_time"`
	EndTime             string                    `json:"end_time"`
	ActivityType        string                    `json:"activity_type"`
	ActivityDisplayName string                    `json:"activity_type_display"`
	Distance            float64                   `json:"distance"`
	AverageSpeed        float64                   `json:"average_speed"`
}

// toDomain строит доменную тренировку из запроса. Даты уже проверены биндингом.
func (r TrainingRequest) toDomain() (*domain.Training, error) {
	activity, err := domain.ParseActivityType(r.ActivityType)
	if err != nil {
		return nil, err
	}
	start, err := time.ParseInLocation(userhandler.DateLayout, r.StartTime, time.UTC)
	if err != nil {
		return nil, err
	}
	end, err := time.ParseInLocation(userhandler.DateLayout, r.EndTime, time.UTC)
	if err != nil {
		return nil, err
	}

	t := &domain.Training{
		StartTime:    start,
		EndTime:      end,
		ActivityType: activity,
		Distance:     r.Distance,
		AverageSpeed: r.AverageSpeed,
	}
	if r.ID != nil {
		t.ID = *r.ID
	}
	return t, nil
}

// ToTrainingResponse маппит доменную модель в DTO.
func ToTrainingResponse(t *domain.Training) TrainingResponse {
	resp := TrainingResponse{
		ID:                  t.ID,
		UserID:              t.UserID,
		StartTime:           t.StartTime.Format(userhandler.DateLayout),
		EndTime:             t.EndTime.Format(userhandler.DateLayout),
		ActivityType:        string(t.ActivityType),
		ActivityDisplayName: t.ActivityType.DisplayName(),
		Distance:            t.Distance,
		AverageSpeed:        t.AverageSpeed,
	}
	if t.User != nil {
		u := userhandler.ToUserResponse(t.User)
		resp.User = &u
	}
	return resp
}

func toTrainingResponses(trainings []*domain.Training) []TrainingResponse {
	out := make([]TrainingResponse, 0, len(trainings))
	for _, t := range trainings {
		out = append(out, ToTrainingResponse(t))
	}
	return out
}
