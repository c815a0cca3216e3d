package service

import (
	"context"
	"wastetrack/internal/common"
	"wastetrack/internal/domain/model"
	"wastetrack/internal/domain/repository"

	"go.uber.org/zap"
)

type RequestService struct {
	requestRepo repository.RequestRepository
	logger      *zap.Logger
}

func NewRequestService(requestRepo repository.RequestRepository, logger *zap.Logger) *RequestService {
	return &RequestService{requestRepo: requestRepo, logger: logger}
}

type SubmitRequest struct {
	WasteType   string  `json:"wasteType"`
	Quantity    string  `json:"quantity"`
	Description *string `json:"description,omitempty"`
	PickupDate  string  `json:"pickupDate"`
}

func (s *RequestService) Submit(ctx context.Context, userID int64, req SubmitRequest) (*model.WasteRequest, error) {
	if req.WasteType == "" || req.Quantity == "" || req.PickupDate == "" {
		return nil, common.Errorf("missing required request fields: %w", common.ErrBadRequest)
	}

	request := &model.WasteRequest{
		UserID:      userID,
		WasteType:   req.WasteType,
		Quantity:    req.Quantity,
		Description: req.Description,
		PickupDate:  req.PickupDate,
		Status:      model.StatusPending,
	}

	if err := s.requestRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	s.logger.Info("waste request submitted",
		zap.Int64("request_id", request.ID),
		zap.Int64("user_id", userID),
		zap.String("waste_type", request.WasteType))
	return request, nil
}

func (s *RequestService) ListMine(ctx context.Context, userID int64) ([]model.WasteRequest, error) {
	return s.requestRepo.ListByUser(ctx, userID)
}

func (s *RequestService) ListAll(ctx context.Context) ([]model.AdminRequestView, error) {
	return s.requestRepo.ListAllWithOwners(ctx)
}

// UpdateStatus constrains the status to the enumerated set before touching the
// repository; the repository contract does not validate it.
func (s *RequestService) UpdateStatus(ctx context.Context, id int64, status model.RequestStatus) error {
	if !model.ValidStatus(status) {
		return common.Errorf("unknown request status %q: %w", status, common.ErrBadRequest)
	}
	if err := s.requestRepo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	s.logger.Info("request status updated", zap.Int64("request_id", id), zap.String("status", string(status)))
	return nil
}
