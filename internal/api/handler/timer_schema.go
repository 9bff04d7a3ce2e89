package handler

import "github.com/timekeep/timer-system/internal/core/domain"

type createTimerRequest struct {
	Description string `json:"description" validate:"required,max=255"`
}

type createTimerResponse struct {
	ID string `json:"id"`
}

// timerResponse mirrors the WebSocket wire shape: millisecond epoch
// timestamps, end omitted while the timer runs.
type timerResponse struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Start       int64  `json:"start"`
	End         *int64 `json:"end,omitempty"`
	IsActive    bool   `json:"isActive"`
}

func toTimerResponse(t domain.Timer) timerResponse {
	resp := timerResponse{
		ID:          t.ID,
		Description: t.Description,
		Start:       t.Start.UnixMilli(),
		IsActive:    t.IsActive,
	}
	if t.End != nil {
		end := t.End.UnixMilli()
		resp.End = &end
	}
	return resp
}

func toTimerResponses(timers []domain.Timer) []timerResponse {
	out := make([]timerResponse, len(timers))
	for i, t := range timers {
		out[i] = toTimerResponse(t)
	}
	return out
}
