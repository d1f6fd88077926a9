package schedule

type ShiftResponse struct {
	ID        string  `json:"id"`
	Date      string  `json:"date"`
	OutletID  *string `json:"outlet_id,omitempty"`
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
}

func NewShiftResponse(s Shift) ShiftResponse {
	return ShiftResponse{
		ID:        s.ID,
		Date:      s.Date.Format("2006-01-02"),
		OutletID:  s.OutletID,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
	}
}

func NewShiftResponses(ss []Shift) []ShiftResponse {
	out := make([]ShiftResponse, 0, len(ss))
	for _, s := range ss {
		out = append(out, NewShiftResponse(s))
	}
	return out
}
