package handler

import (
	"soulbound/internal/badge/models"
	id "soulbound/pkg/domain"
	dErrors "soulbound/pkg/domain-errors"
)

const maxBatchRecipients = 500

type CreateEventRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Date        string `json:"date"`
	Organizer   string `json:"organizer"`
}

func (req CreateEventRequest) ToInput() (models.EventInput, error) {
	organizer, err := id.ParseAddress(req.Organizer)
	if err != nil {
		return models.EventInput{}, dErrors.Wrap(err, dErrors.CodeValidation, "organizer must be an address")
	}
	return models.EventInput{
		Name:        req.Name,
		Description: req.Description,
		ImageRef:    req.Image,
		Date:        req.Date,
		Organizer:   organizer,
	}, nil
}

type MinterRequest struct {
	Minter string `json:"minter"`
}

type IssueRequest struct {
	Recipient string `json:"recipient"`
}

type BatchIssueRequest struct {
	Recipients []string `json:"recipients"`
}

func (req BatchIssueRequest) Addresses() ([]id.Address, error) {
	if len(req.Recipients) > maxBatchRecipients {
		return nil, dErrors.New(dErrors.CodeValidation, "too many recipients in one batch")
	}
	out := make([]id.Address, 0, len(req.Recipients))
	for _, raw := range req.Recipients {
		addr, err := id.ParseAddress(raw)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeValidation, "recipient "+raw+" is not an address")
		}
		out = append(out, addr)
	}
	return out, nil
}

type TransferOwnershipRequest struct {
	NewOwner string `json:"new_owner"`
}

type TransferRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
	Safe bool   `json:"safe"`
	Data string `json:"data"`
}

type ApproveRequest struct {
	Approved string `json:"approved"`
}

type OperatorRequest struct {
	Operator string `json:"operator"`
	Approved bool   `json:"approved"`
}

// parseAddressField parses a body field, reporting which field was wrong.
func parseAddressField(field, raw string) (id.Address, error) {
	addr, err := id.ParseAddress(raw)
	if err != nil {
		return id.ZeroAddress, dErrors.Wrap(err, dErrors.CodeValidation, field+" must be an address")
	}
	return addr, nil
}
