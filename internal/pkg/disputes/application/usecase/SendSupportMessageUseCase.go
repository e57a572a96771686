package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	disputes "rentdesk/internal/pkg/disputes/application/domain"
	repository "rentdesk/internal/pkg/disputes/persistence/repository/port"
)

var ErrEmptySupportMessage = errors.New("disputes: support message is empty")

type SendSupportMessageInput struct {
	DisputeID string
	Message   string
}

// SendSupportMessageUseCase records a lender-to-support message on the
// dispute's timeline.
type SendSupportMessageUseCase struct {
	Repo repository.DisputeRepository
}

func NewSendSupportMessageUseCase(repo repository.DisputeRepository) *SendSupportMessageUseCase {
	return &SendSupportMessageUseCase{Repo: repo}
}

func (uc *SendSupportMessageUseCase) Execute(ctx context.Context, in SendSupportMessageInput) (*disputes.Dispute, error) {
	msg := strings.TrimSpace(in.Message)
	if msg == "" {
		return nil, ErrEmptySupportMessage
	}

	d, err := uc.Repo.GetDispute(ctx, in.DisputeID)
	if err != nil {
		return nil, err
	}

	d.RecordMessage(msg, time.Now())

	if err := uc.Repo.SaveDispute(ctx, *d); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return d, nil
}
