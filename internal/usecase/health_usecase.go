package usecase

import (
	"context"
	"portfolio-backend/internal/domain"
)

type healthUsecase struct{}

func NewHealthUsecase() domain.HealthUsecase {
	return &healthUsecase{}
}

// Check reports liveness only; relay credentials and reachability are not probed
func (u *healthUsecase) Check(ctx context.Context) domain.HealthStatus {
	return domain.HealthStatus{
		Status:  "OK",
		Message: "Server is running",
	}
}
